package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/Karim632/diploma/classfile"
)

// TextEncoder writes a javap-style summary of a class file.
type TextEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(class *classfile.ClassFile) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	cf := e.class
	cp := cf.ConstantPool
	var sb strings.Builder

	fmt.Fprintf(&sb, "class %s\n", classfile.InternalToSourceName(cf.ClassName()))
	fmt.Fprintf(&sb, "  version: %d.%d\n", cf.MajorVersion, cf.MinorVersion)
	fmt.Fprintf(&sb, "  flags: 0x%04X\n", uint16(cf.AccessFlags))
	if super := cf.SuperClassName(); super != "" {
		fmt.Fprintf(&sb, "  super: %s\n", classfile.InternalToSourceName(super))
	}
	for _, name := range cf.InterfaceNames() {
		fmt.Fprintf(&sb, "  implements: %s\n", classfile.InternalToSourceName(name))
	}
	if source := cf.SourceFile(); source != "" {
		fmt.Fprintf(&sb, "  source: %s\n", source)
	}

	fmt.Fprintf(&sb, "\nConstant pool (%d entries):\n", len(cp))
	for i, entry := range cp {
		if entry == nil {
			continue
		}
		value := poolValue(cp, uint16(i), entry)
		if value == "" {
			fmt.Fprintf(&sb, "  #%d = %s\n", i, tagName(entry.Tag()))
		} else {
			fmt.Fprintf(&sb, "  #%d = %s %s\n", i, tagName(entry.Tag()), value)
		}
	}

	if len(cf.Fields) > 0 {
		fmt.Fprintf(&sb, "\nFields:\n")
		for i := range cf.Fields {
			f := &cf.Fields[i]
			fmt.Fprintf(&sb, "  %s %s", f.Descriptor(cp), f.Name(cp))
			if names := attributeNames(f.Attributes); len(names) > 0 {
				fmt.Fprintf(&sb, " [%s]", strings.Join(names, ", "))
			}
			sb.WriteString("\n")
		}
	}

	if len(cf.Methods) > 0 {
		fmt.Fprintf(&sb, "\nMethods:\n")
		for i := range cf.Methods {
			m := &cf.Methods[i]
			fmt.Fprintf(&sb, "  %s%s", m.Name(cp), m.Descriptor(cp))
			if names := attributeNames(m.Attributes); len(names) > 0 {
				fmt.Fprintf(&sb, " [%s]", strings.Join(names, ", "))
			}
			sb.WriteString("\n")
			if code := m.GetCodeAttribute(); code != nil {
				fmt.Fprintf(&sb, "    stack=%d, locals=%d, code=%d bytes\n",
					code.MaxStack, code.MaxLocals, len(code.Code))
			}
		}
	}

	if names := attributeNames(cf.Attributes); len(names) > 0 {
		fmt.Fprintf(&sb, "\nAttributes: %s\n", strings.Join(names, ", "))
	}

	return []byte(sb.String()), nil
}
