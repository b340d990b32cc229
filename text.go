package gv

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/message"
)

// MaxTextBytes bounds the formatted text of one Text record. Longer output
// is truncated at a rune boundary.
const MaxTextBytes = 1024

// ErrFormat is matched by every *FormatError.
var ErrFormat = errors.New("gv: bad format")

// FormatError reports a format string that did not match its arguments:
// an unknown verb, a missing or extra argument, or a bad width.
type FormatError struct {
	Format string
	// Problem names the mismatch: "MISSING", "EXTRA", "NOVERB",
	// "BADINDEX", "BADWIDTH", "BADPREC" or "%!d(string)" for a verb
	// the argument's type does not support.
	Problem string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("gv: bad format %q: %s", e.Format, e.Problem)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// FormatText formats like fmt.Sprintf. A nil p gives exactly fmt's output;
// a non-nil p applies its language's number formatting (digit grouping).
// The result is truncated to MaxTextBytes. A format that does not match its
// arguments returns a *FormatError and no text.
//
// Mismatches are found from format and args alone, so arguments whose own
// text looks like fmt's error markers ("%!(EXTRA") format normally.
func FormatText(p *message.Printer, format string, args ...any) (string, error) {
	if problem := checkFormat(format, args); problem != "" {
		return "", &FormatError{Format: format, Problem: problem}
	}
	var s string
	if p == nil {
		s = fmt.Sprintf(format, args...)
	} else {
		s = p.Sprintf(format, args...)
	}
	return truncate(s, MaxTextBytes), nil
}

// checkFormat walks format the way fmt.Sprintf does and returns the first
// mismatch with args, or "" when every verb has a usable argument.
func checkFormat(format string, args []any) string {
	argNum := 0
	reordered := false
	end := len(format)
	for i := 0; i < end; {
		if format[i] != '%' {
			i++
			continue
		}
		i++

		start := i
		for i < end && strings.IndexByte("#0+- ", format[i]) >= 0 {
			i++
		}
		flags := format[start:i]

		var ok bool
		if argNum, i, ok = argIndex(format, i, argNum, len(args), &reordered); !ok {
			return "BADINDEX"
		}
		if i < end && format[i] == '*' {
			i++
			if argNum >= len(args) || !isInt(args[argNum]) {
				return "BADWIDTH"
			}
			argNum++
		} else {
			for i < end && '0' <= format[i] && format[i] <= '9' {
				i++
			}
		}
		if i < end && format[i] == '.' {
			i++
			if argNum, i, ok = argIndex(format, i, argNum, len(args), &reordered); !ok {
				return "BADINDEX"
			}
			if i < end && format[i] == '*' {
				i++
				if argNum >= len(args) || !isInt(args[argNum]) {
					return "BADPREC"
				}
				argNum++
			} else {
				for i < end && '0' <= format[i] && format[i] <= '9' {
					i++
				}
			}
		}
		if argNum, i, ok = argIndex(format, i, argNum, len(args), &reordered); !ok {
			return "BADINDEX"
		}

		if i >= end {
			return "NOVERB"
		}
		verb, size := utf8.DecodeRuneInString(format[i:])
		i += size

		if verb == '%' {
			continue
		}
		if argNum >= len(args) {
			return "MISSING"
		}
		if bad := badVerb(flags, verb, args[argNum]); bad != "" {
			return bad
		}
		argNum++
	}
	if !reordered && argNum < len(args) {
		return "EXTRA"
	}
	return ""
}

// argIndex parses an explicit argument index such as [2] at format[i].
// Without one it returns argNum and i unchanged.
func argIndex(format string, i, argNum, numArgs int, reordered *bool) (int, int, bool) {
	if i >= len(format) || format[i] != '[' {
		return argNum, i, true
	}
	closing := strings.IndexByte(format[i:], ']')
	if closing < 0 {
		return argNum, i, false
	}
	n, err := strconv.Atoi(format[i+1 : i+closing])
	if err != nil || n < 1 || n > numArgs {
		return argNum, i, false
	}
	*reordered = true
	return n - 1, i + closing + 1, true
}

// badVerb formats arg alone with the verb and compares it with its %v
// text: fmt writes an extra "%!" marker only when the type rejects the
// verb, so markers that are part of the argument's own text cancel out.
func badVerb(flags string, verb rune, arg any) string {
	got := fmt.Sprintf("%"+flags+string(verb), arg)
	plain := fmt.Sprint(arg)
	if strings.Count(got, "%!") > strings.Count(plain, "%!") {
		return fmt.Sprintf("%%!%c(%T)", verb, arg)
	}
	return ""
}

func isInt(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
