// Package main provides the entry point for kvcli.
//
// kvcli is an interactive client for a remote key/value record service.
// Without a subcommand it checks that the service is usable, offers an
// admin login and then shows a menu to upload, delete, list and look up
// records. Escape cancels any prompt.
//
// Usage:
//
//	kvcli [--server URL] [--config FILE]
//	kvcli diagnose
//	kvcli list -o json
//	kvcli get score
package main
