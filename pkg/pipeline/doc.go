// Package pipeline runs a resumable comparison over an input file.
//
// For every page pair, in input order, the pipeline computes the output
// file name and skips the pair if the record log already lists it.
// Otherwise it captures both environments concurrently, places the two
// screenshots side by side, writes the PNG and appends a row to the record
// log. A run that is interrupted or fails part way can simply be started
// again: finished pairs are skipped and the rest are processed.
//
// A failed capture does not stop the run; its half of the image shows a
// placeholder and the record carries the observed status. Input, image and
// record log failures are fatal.
package pipeline
