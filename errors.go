package rtfde

import "fmt"

// MalformedRtfError signals a lexical or structural problem: unbalanced
// braces, a truncated escape, an unregistered codepage, or a decode failure
// that was not routed through the ASCII-fallback option.
type MalformedRtfError struct {
	Offset int
	Msg    string
}

func (e *MalformedRtfError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("malformed rtf at offset %d: %s", e.Offset, e.Msg)
	}
	return fmt.Sprintf("malformed rtf: %s", e.Msg)
}

// NotEncapsulatedRtfError signals a structurally valid RTF stream that
// carries no `\fromhtml1`/`\fromtext` encapsulation marker.
type NotEncapsulatedRtfError struct {
	Msg string
}

func (e *NotEncapsulatedRtfError) Error() string {
	return "rtf stream is not encapsulated: " + e.Msg
}

// MalformedEncapsulatedRtfError signals an encapsulation marker that is
// present but misordered or duplicated.
type MalformedEncapsulatedRtfError struct {
	Offset int
	Msg    string
}

func (e *MalformedEncapsulatedRtfError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("malformed encapsulated rtf at offset %d: %s", e.Offset, e.Msg)
	}
	return "malformed encapsulated rtf: " + e.Msg
}

func malformed(offset int, format string, args ...interface{}) error {
	return &MalformedRtfError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func malformedEncapsulated(offset int, format string, args ...interface{}) error {
	return &MalformedEncapsulatedRtfError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func notEncapsulated(format string, args ...interface{}) error {
	return &NotEncapsulatedRtfError{Msg: fmt.Sprintf(format, args...)}
}
