// Package cli renders ccu command results for the terminal.
//
// Printer supports three output formats:
//   - Table: rounded go-pretty tables with coloured headers
//   - JSON: indented JSON for scripts
//   - YAML: YAML documents for humans and diff tools
//
// Status reports, pass results and recovery outcomes each have a Print
// method. Structured formats encode the value as is, so the field names are
// the json and yaml tags of the underlying types.
package cli
