package chunk

// Package chunk persists base64-encoded payloads handed over by the web UI,
// one chunk per call, by appending the decoded bytes to a file on disk.
