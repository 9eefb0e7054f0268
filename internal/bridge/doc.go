package bridge

// Package bridge is the host bridge between the embedded web UI and native
// code: a registry of named commands and the loopback HTTP transport the UI
// calls them through (POST /invoke/{command} with a JSON argument object).
