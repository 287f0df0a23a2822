package classfile

import (
	"fmt"
	"strings"
)

// ClassFileError describes a structural or value violation found while
// decoding. It names the offending field and formats values in hexadecimal.
type ClassFileError struct {
	File string
	Msg  string
}

func (e *ClassFileError) Error() string {
	return fmt.Sprintf("malformed class file %s: %s", e.File, e.Msg)
}

func errWrongValue(file, field string, expected, got uint32) *ClassFileError {
	return &ClassFileError{
		File: file,
		Msg:  fmt.Sprintf("wrong value for %s: expected %#x, got %#x", field, expected, got),
	}
}

func errNotOneOf(file, field string, allowed []uint8, got uint8) *ClassFileError {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range allowed {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%#x", v)
	}
	sb.WriteString("]")
	return &ClassFileError{
		File: file,
		Msg:  fmt.Sprintf("wrong value for %s: expected one of %s, got %#x", field, sb.String(), got),
	}
}

func errUnknownTag(file, kind string, got uint8) *ClassFileError {
	return &ClassFileError{
		File: file,
		Msg:  fmt.Sprintf("unknown %s: %#x", kind, got),
	}
}

func errNotUtf8(file string, index uint16) *ClassFileError {
	return &ClassFileError{
		File: file,
		Msg:  fmt.Sprintf("attribute_name_index %d does not resolve to a UTF8 constant", index),
	}
}

func errUnknownAttribute(file, name string) *ClassFileError {
	return &ClassFileError{
		File: file,
		Msg:  fmt.Sprintf("unknown attribute name: %s", name),
	}
}

// Utf8Error describes a malformed modified UTF-8 sequence inside a constant
// pool entry.
type Utf8Error struct {
	Msg string
}

func (e *Utf8Error) Error() string {
	return "malformed modified UTF-8: " + e.Msg
}
