package classfile

import (
	"fmt"
	"strings"
)

type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

func (ft *FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else if ft.ClassName != "" {
		sb.WriteString(strings.ReplaceAll(ft.ClassName, "/", "."))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (ft *FieldType) IsArray() bool {
	return ft.ArrayDepth > 0
}

func (ft *FieldType) IsPrimitive() bool {
	return ft.BaseType != "" && ft.ClassName == ""
}

func (ft *FieldType) IsReference() bool {
	return ft.ClassName != "" || ft.ArrayDepth > 0
}

// MethodDescriptor is a parsed method descriptor such as "(IJ)V". A nil
// ReturnType means void.
type MethodDescriptor struct {
	Parameters []FieldType
	ReturnType *FieldType
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if md.ReturnType != nil {
		sb.WriteString(" ")
		sb.WriteString(md.ReturnType.String())
	} else {
		sb.WriteString(" void")
	}
	return sb.String()
}

func ParseFieldDescriptor(desc string) (*FieldType, error) {
	ft, consumed, err := parseFieldType(desc, 0)
	if err != nil {
		return nil, err
	}
	if consumed != len(desc) {
		return nil, fmt.Errorf("invalid field descriptor %q: trailing characters", desc)
	}
	return ft, nil
}

func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, fmt.Errorf("invalid method descriptor %q: missing '('", desc)
	}

	md := &MethodDescriptor{}
	i := 1

	for i < len(desc) && desc[i] != ')' {
		ft, consumed, err := parseFieldType(desc, i)
		if err != nil {
			return nil, fmt.Errorf("invalid method descriptor %q: %w", desc, err)
		}
		md.Parameters = append(md.Parameters, *ft)
		i += consumed
	}

	if i >= len(desc) || desc[i] != ')' {
		return nil, fmt.Errorf("invalid method descriptor %q: missing ')'", desc)
	}
	i++

	if i >= len(desc) {
		return nil, fmt.Errorf("invalid method descriptor %q: missing return type", desc)
	}
	if desc[i] == 'V' {
		if i+1 != len(desc) {
			return nil, fmt.Errorf("invalid method descriptor %q: trailing characters", desc)
		}
		return md, nil
	}

	ft, consumed, err := parseFieldType(desc, i)
	if err != nil {
		return nil, fmt.Errorf("invalid method descriptor %q: %w", desc, err)
	}
	if i+consumed != len(desc) {
		return nil, fmt.Errorf("invalid method descriptor %q: trailing characters", desc)
	}
	md.ReturnType = ft
	return md, nil
}

func parseFieldType(desc string, start int) (*FieldType, int, error) {
	if start >= len(desc) {
		return nil, 0, fmt.Errorf("unexpected end of descriptor")
	}

	ft := &FieldType{}
	i := start

	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}

	if i >= len(desc) {
		return nil, 0, fmt.Errorf("unexpected end of descriptor after '['")
	}

	switch desc[i] {
	case 'B':
		ft.BaseType = "byte"
	case 'C':
		ft.BaseType = "char"
	case 'D':
		ft.BaseType = "double"
	case 'F':
		ft.BaseType = "float"
	case 'I':
		ft.BaseType = "int"
	case 'J':
		ft.BaseType = "long"
	case 'S':
		ft.BaseType = "short"
	case 'Z':
		ft.BaseType = "boolean"
	case 'L':
		semicolon := strings.IndexByte(desc[i:], ';')
		if semicolon == -1 {
			return nil, 0, fmt.Errorf("unterminated class type at offset %d", i)
		}
		ft.ClassName = desc[i+1 : i+semicolon]
		return ft, i - start + semicolon + 1, nil
	default:
		return nil, 0, fmt.Errorf("unknown type character %q at offset %d", desc[i], i)
	}
	return ft, i - start + 1, nil
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
