// Package file provides record writers that persist classified repositories
// to local files.
//
// JSONWriter writes the full record array and is used for both the batch
// checkpoint and the final output. CSVWriter writes the tabular summary.
// Both replace the target atomically: data goes to a uniquely named temp file
// in the same directory, is synced, then renamed over the target. The temp
// file is removed on every failure path, so a reader always sees either the
// previous complete file or the new one.
package file
