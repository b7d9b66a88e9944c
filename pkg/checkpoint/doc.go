// Package checkpoint tracks which page pairs have already been composited.
//
// Progress lives in the record log, a header-less CSV file with one row per
// completed pair:
//
//	index,leftURL,rightURL,outputFileName,leftStatus,rightStatus
//
// The log is read once when a Store is opened and only appended to
// afterwards. A pair counts as done when its output file name appears in
// the log. An exclusive lock on "<log>.lock" keeps a second run from
// appending to the same log. A final row without a trailing newline is the
// remains of an interrupted write and is truncated away on open.
package checkpoint
