package model

// Package model defines the data structures the host bridge reports to the
// shell UI: invocation records and their status enum. Records are plain
// values so the UI can copy them into list bindings.
