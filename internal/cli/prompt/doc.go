// Package prompt reads interactive input one keystroke at a time.
//
// Every prompt of the client goes through Reader.ReadLine, which is the
// single place where Escape cancels the current operation. Keys come from
// a KeySource: Terminal for a real console, ByteSource for pipes and tests.
package prompt
