// Package format renders decoded class files for human or machine
// consumption.
package format

import (
	"encoding"

	"github.com/Karim632/diploma/classfile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *classfile.ClassFile) error
}
