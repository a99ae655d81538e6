// Package logging builds the diagnostic logger and manages per-run JSONL log
// files and tail output.
package logging
