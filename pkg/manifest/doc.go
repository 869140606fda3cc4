// Package manifest reads and writes result.json, the record of a backup run.
//
// The file is a JSON array of {"file_name", "size"} objects indented with four
// spaces. It is written to a temporary sibling and renamed into place, so a
// failed run never leaves a half-written manifest behind.
package manifest
