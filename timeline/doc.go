// Package timeline provides the time-segmented command log.
//
// A Log is written by a single producer goroutine and read by a single
// render goroutine. The producer appends encoded records to a private
// staging buffer; Flush moves the staged bytes into the shared log under a
// mutex. NewTime flushes and starts a new frame by appending a FrameMarker
// record stamped with the log's own counter.
//
// Frames are delimited exclusively by FrameMarker records. The frame index
// holds the byte offset of every committed marker, in commit order, so
// frame i is the record span from Index[i] to Index[i+1] (or the end of the
// log).
//
// # Thread Safety
//
// Append, Flush and NewTime must be called from one goroutine (the
// producer). Snapshot and the cursor methods may be called from any
// goroutine. A Snapshot stays valid after the lock is released: the log is
// append-only, so the bytes a snapshot covers are never written again.
package timeline
