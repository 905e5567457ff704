// Package diagnose runs the startup health checks against the record
// service. The checks run in order and stop at the first failure; the
// interactive session starts only when every check passed.
package diagnose
