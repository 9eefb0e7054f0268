package ui

// Package ui contains the Fyne window of the desktop shell. It shows where
// the host bridge is listening, lists recent command invocations from the
// bridge registry, and exposes shell settings. All UI strings are localized
// via Localization.
