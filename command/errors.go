package command

import (
	"errors"
	"fmt"
)

// ErrCorruptLog is matched by every decoding failure.
var ErrCorruptLog = errors.New("command: corrupt log")

// CorruptLogError describes where and why decoding failed.
type CorruptLogError struct {
	// Offset is the byte offset of the record that could not be decoded.
	Offset int
	// Tag is the tag byte found at Offset (zero if Offset is past the end).
	Tag Tag
	// Reason is a short description of the failure.
	Reason string
}

func (e *CorruptLogError) Error() string {
	return fmt.Sprintf("command: corrupt log at offset %d (tag %q): %s", e.Offset, byte(e.Tag), e.Reason)
}

// Is reports whether target is ErrCorruptLog.
func (e *CorruptLogError) Is(target error) bool {
	return target == ErrCorruptLog
}
