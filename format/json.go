package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Karim632/diploma/classfile"
)

type JSONEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(class *classfile.ClassFile) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildClassData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonClass struct {
	Name         string       `json:"name"`
	SuperClass   string       `json:"superClass,omitempty"`
	Interfaces   []string     `json:"interfaces,omitempty"`
	MinorVersion uint16       `json:"minorVersion"`
	MajorVersion uint16       `json:"majorVersion"`
	AccessFlags  string       `json:"accessFlags"`
	SourceFile   string       `json:"sourceFile,omitempty"`
	ConstantPool []jsonPool   `json:"constantPool"`
	Fields       []jsonField  `json:"fields,omitempty"`
	Methods      []jsonMethod `json:"methods,omitempty"`
	Attributes   []string     `json:"attributes,omitempty"`
}

type jsonPool struct {
	Index int    `json:"index"`
	Tag   string `json:"tag"`
	Value string `json:"value,omitempty"`
}

type jsonField struct {
	Name        string   `json:"name"`
	Descriptor  string   `json:"descriptor"`
	AccessFlags string   `json:"accessFlags"`
	Attributes  []string `json:"attributes,omitempty"`
}

type jsonMethod struct {
	Name        string   `json:"name"`
	Descriptor  string   `json:"descriptor"`
	AccessFlags string   `json:"accessFlags"`
	MaxStack    uint16   `json:"maxStack,omitempty"`
	MaxLocals   uint16   `json:"maxLocals,omitempty"`
	CodeLength  int      `json:"codeLength,omitempty"`
	Attributes  []string `json:"attributes,omitempty"`
}

func (e *JSONEncoder) buildClassData() *jsonClass {
	cf := e.class
	cp := cf.ConstantPool

	data := &jsonClass{
		Name:         classfile.InternalToSourceName(cf.ClassName()),
		SuperClass:   classfile.InternalToSourceName(cf.SuperClassName()),
		MinorVersion: cf.MinorVersion,
		MajorVersion: cf.MajorVersion,
		AccessFlags:  fmt.Sprintf("0x%04X", uint16(cf.AccessFlags)),
		SourceFile:   cf.SourceFile(),
		Attributes:   attributeNames(cf.Attributes),
	}

	for _, name := range cf.InterfaceNames() {
		data.Interfaces = append(data.Interfaces, classfile.InternalToSourceName(name))
	}

	for i, entry := range cp {
		if entry == nil {
			continue
		}
		data.ConstantPool = append(data.ConstantPool, jsonPool{
			Index: i,
			Tag:   tagName(entry.Tag()),
			Value: poolValue(cp, uint16(i), entry),
		})
	}

	for i := range cf.Fields {
		f := &cf.Fields[i]
		data.Fields = append(data.Fields, jsonField{
			Name:        f.Name(cp),
			Descriptor:  f.Descriptor(cp),
			AccessFlags: fmt.Sprintf("0x%04X", uint16(f.AccessFlags)),
			Attributes:  attributeNames(f.Attributes),
		})
	}

	for i := range cf.Methods {
		m := &cf.Methods[i]
		jm := jsonMethod{
			Name:        m.Name(cp),
			Descriptor:  m.Descriptor(cp),
			AccessFlags: fmt.Sprintf("0x%04X", uint16(m.AccessFlags)),
			Attributes:  attributeNames(m.Attributes),
		}
		if code := m.GetCodeAttribute(); code != nil {
			jm.MaxStack = code.MaxStack
			jm.MaxLocals = code.MaxLocals
			jm.CodeLength = len(code.Code)
		}
		data.Methods = append(data.Methods, jm)
	}

	return data
}

func attributeNames(attributes []classfile.Attribute) []string {
	names := make([]string, 0, len(attributes))
	for _, a := range attributes {
		names = append(names, a.Name())
	}
	return names
}

func tagName(tag classfile.ConstantTag) string {
	switch tag {
	case classfile.ConstantUtf8:
		return "Utf8"
	case classfile.ConstantInteger:
		return "Integer"
	case classfile.ConstantFloat:
		return "Float"
	case classfile.ConstantLong:
		return "Long"
	case classfile.ConstantDouble:
		return "Double"
	case classfile.ConstantClass:
		return "Class"
	case classfile.ConstantString:
		return "String"
	case classfile.ConstantFieldref:
		return "Fieldref"
	case classfile.ConstantMethodref:
		return "Methodref"
	case classfile.ConstantInterfaceMethodref:
		return "InterfaceMethodref"
	case classfile.ConstantNameAndType:
		return "NameAndType"
	case classfile.ConstantMethodHandle:
		return "MethodHandle"
	case classfile.ConstantMethodType:
		return "MethodType"
	case classfile.ConstantDynamic:
		return "Dynamic"
	case classfile.ConstantInvokeDynamic:
		return "InvokeDynamic"
	case classfile.ConstantModule:
		return "Module"
	case classfile.ConstantPackage:
		return "Package"
	default:
		return fmt.Sprintf("Unknown(%d)", tag)
	}
}

func poolValue(cp classfile.ConstantPool, index uint16, entry classfile.ConstantPoolEntry) string {
	switch e := entry.(type) {
	case *classfile.ConstantUtf8Info:
		return e.Value
	case *classfile.ConstantIntegerInfo:
		v, _ := cp.GetInteger(index)
		return fmt.Sprintf("%d", v)
	case *classfile.ConstantFloatInfo:
		v, _ := cp.GetFloat(index)
		return fmt.Sprintf("%g", v)
	case *classfile.ConstantLongInfo:
		v, _ := cp.GetLong(index)
		return fmt.Sprintf("%d", v)
	case *classfile.ConstantDoubleInfo:
		v, _ := cp.GetDouble(index)
		return fmt.Sprintf("%g", v)
	case *classfile.ConstantClassInfo:
		return cp.GetUtf8(e.NameIndex)
	case *classfile.ConstantStringInfo:
		return cp.GetUtf8(e.StringIndex)
	case *classfile.ConstantFieldrefInfo:
		className, name, descriptor := cp.GetFieldref(index)
		return fmt.Sprintf("%s.%s:%s", className, name, descriptor)
	case *classfile.ConstantMethodrefInfo:
		className, name, descriptor := cp.GetMethodref(index)
		return fmt.Sprintf("%s.%s%s", className, name, descriptor)
	case *classfile.ConstantInterfaceMethodrefInfo:
		className, name, descriptor := cp.GetInterfaceMethodref(index)
		return fmt.Sprintf("%s.%s%s", className, name, descriptor)
	case *classfile.ConstantNameAndTypeInfo:
		name, descriptor := cp.GetNameAndType(index)
		return fmt.Sprintf("%s:%s", name, descriptor)
	case *classfile.ConstantMethodHandleInfo:
		return fmt.Sprintf("kind=%d ref=%d", e.ReferenceKind, e.ReferenceIndex)
	case *classfile.ConstantMethodTypeInfo:
		return cp.GetUtf8(e.DescriptorIndex)
	case *classfile.ConstantDynamicInfo:
		return fmt.Sprintf("bootstrap=%d nameAndType=%d", e.BootstrapMethodAttrIndex, e.NameAndTypeIndex)
	case *classfile.ConstantInvokeDynamicInfo:
		return fmt.Sprintf("bootstrap=%d nameAndType=%d", e.BootstrapMethodAttrIndex, e.NameAndTypeIndex)
	case *classfile.ConstantModuleInfo:
		return cp.GetUtf8(e.NameIndex)
	case *classfile.ConstantPackageInfo:
		return cp.GetUtf8(e.NameIndex)
	default:
		return ""
	}
}
