// Package output renders records for the one-shot commands and the
// interactive listing.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned tables
//   - json.go, yaml.go: machine-readable output
//   - records.go: record layouts shared by every format
package output
