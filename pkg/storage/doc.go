// Package storage manages the directory that receives comparison images.
//
// Images are written to a temporary file in the same directory and renamed
// into place, so an interrupted run never leaves a truncated PNG under its
// final name. On startup the directory is scanned so that images without a
// matching record log row can be reported.
package storage
