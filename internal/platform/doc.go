package platform

// Package platform contains OS integration used by the opener commands:
// opening URLs and files with the default application, revealing files in
// the system file manager, and locating the user's downloads directory.
