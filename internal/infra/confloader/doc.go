// Package confloader provides configuration loading mechanism.
//
// It is a thin layer over koanf that merges, in increasing priority:
//
//  1. Default values (a flat key map)
//  2. A YAML configuration file (optional when missing)
//  3. Environment variables
//  4. Overrides (command-line flags)
//
// Environment variables use a double underscore to separate nesting
// levels so that single underscores survive inside key names:
// KVCLI_RECORDS__MAX_KEY_LENGTH maps to records.max_key_length.
package confloader
