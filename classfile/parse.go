package classfile

import (
	"io"
	"os"
)

// ParseFile opens path and decodes it as a class file. The file is closed
// before ParseFile returns, on success and on failure alike.
func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse decodes one complete class file from rd. Bytes are consumed strictly
// forward; the first error at any nesting depth aborts the decode and no
// partial structure is returned. file identifies the input in diagnostics.
func Parse(rd io.Reader, file string) (*ClassFile, error) {
	r := newReader(rd, file)

	magic := r.readU4()
	if r.err != nil {
		return nil, r.err
	}
	if magic != Magic {
		return nil, errWrongValue(file, "MAGIC", Magic, magic)
	}

	cf := &ClassFile{
		Magic:        magic,
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}

	constantPoolCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}

	// Index 0 is the permanent placeholder; the file carries count-1 entries.
	cf.ConstantPool = append(make(ConstantPool, 0, constantPoolCount), nil)
	for i := uint16(1); i < constantPoolCount; i++ {
		entry, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, err
		}
		cf.ConstantPool = append(cf.ConstantPool, entry)
	}

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()

	interfacesCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	cf.Interfaces = make([]uint16, 0, interfacesCount)
	for i := uint16(0); i < interfacesCount; i++ {
		cf.Interfaces = append(cf.Interfaces, r.readU2())
	}

	fieldsCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	cf.Fields = make([]FieldInfo, 0, fieldsCount)
	for i := uint16(0); i < fieldsCount; i++ {
		field, err := readFieldInfo(r, cf.ConstantPool)
		if err != nil {
			return nil, err
		}
		cf.Fields = append(cf.Fields, *field)
	}

	methodsCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	cf.Methods = make([]MethodInfo, 0, methodsCount)
	for i := uint16(0); i < methodsCount; i++ {
		method, err := readMethodInfo(r, cf.ConstantPool)
		if err != nil {
			return nil, err
		}
		cf.Methods = append(cf.Methods, *method)
	}

	attributes, err := readAttributes(r, cf.ConstantPool)
	if err != nil {
		return nil, err
	}
	cf.Attributes = attributes

	return cf, nil
}

func readConstantPoolEntry(r *reader) (ConstantPoolEntry, error) {
	tag := r.readU1()
	if r.err != nil {
		return nil, r.err
	}

	switch ConstantTag(tag) {
	case ConstantUtf8:
		length := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		bytes := r.readBytes(int(length))
		if r.err != nil {
			return nil, r.err
		}
		value, err := decodeModifiedUTF8(bytes)
		if err != nil {
			return nil, err
		}
		return &ConstantUtf8Info{Bytes: bytes, Value: value}, nil

	case ConstantInteger:
		entry := &ConstantIntegerInfo{}
		copy(entry.Bytes[:], r.readBytes(4))
		return entry, r.err

	case ConstantFloat:
		entry := &ConstantFloatInfo{}
		copy(entry.Bytes[:], r.readBytes(4))
		return entry, r.err

	case ConstantLong:
		entry := &ConstantLongInfo{
			HighBytes: r.readU4(),
			LowBytes:  r.readU4(),
		}
		return entry, r.err

	case ConstantDouble:
		entry := &ConstantDoubleInfo{
			HighBytes: r.readU4(),
			LowBytes:  r.readU4(),
		}
		return entry, r.err

	case ConstantClass:
		entry := &ConstantClassInfo{NameIndex: r.readU2()}
		return entry, r.err

	case ConstantString:
		entry := &ConstantStringInfo{StringIndex: r.readU2()}
		return entry, r.err

	case ConstantFieldref:
		entry := &ConstantFieldrefInfo{
			ClassIndex:       r.readU2(),
			NameAndTypeIndex: r.readU2(),
		}
		return entry, r.err

	case ConstantMethodref:
		entry := &ConstantMethodrefInfo{
			ClassIndex:       r.readU2(),
			NameAndTypeIndex: r.readU2(),
		}
		return entry, r.err

	case ConstantInterfaceMethodref:
		entry := &ConstantInterfaceMethodrefInfo{
			ClassIndex:       r.readU2(),
			NameAndTypeIndex: r.readU2(),
		}
		return entry, r.err

	case ConstantNameAndType:
		entry := &ConstantNameAndTypeInfo{
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
		}
		return entry, r.err

	case ConstantMethodHandle:
		kind := r.readU1()
		if r.err != nil {
			return nil, r.err
		}
		if kind < 1 || kind > 9 {
			return nil, errNotOneOf(r.file, "CONSTANT_POOL_METHOD_HANDLE_REFERENCE_KIND", methodHandleKinds, kind)
		}
		entry := &ConstantMethodHandleInfo{
			ReferenceKind:  MethodHandleKind(kind),
			ReferenceIndex: r.readU2(),
		}
		return entry, r.err

	case ConstantMethodType:
		entry := &ConstantMethodTypeInfo{DescriptorIndex: r.readU2()}
		return entry, r.err

	case ConstantDynamic:
		entry := &ConstantDynamicInfo{
			BootstrapMethodAttrIndex: r.readU2(),
			NameAndTypeIndex:         r.readU2(),
		}
		return entry, r.err

	case ConstantInvokeDynamic:
		entry := &ConstantInvokeDynamicInfo{
			BootstrapMethodAttrIndex: r.readU2(),
			NameAndTypeIndex:         r.readU2(),
		}
		return entry, r.err

	case ConstantModule:
		entry := &ConstantModuleInfo{NameIndex: r.readU2()}
		return entry, r.err

	case ConstantPackage:
		entry := &ConstantPackageInfo{NameIndex: r.readU2()}
		return entry, r.err

	default:
		return nil, errNotOneOf(r.file, "CONSTANT_POOL_TAG", constantTags, tag)
	}
}

func readFieldInfo(r *reader, cp ConstantPool) (*FieldInfo, error) {
	field := &FieldInfo{
		AccessFlags:     AccessFlags(r.readU2()),
		NameIndex:       r.readU2(),
		DescriptorIndex: r.readU2(),
	}
	if r.err != nil {
		return nil, r.err
	}

	attributes, err := readAttributes(r, cp)
	if err != nil {
		return nil, err
	}
	field.Attributes = attributes

	return field, nil
}

func readMethodInfo(r *reader, cp ConstantPool) (*MethodInfo, error) {
	method := &MethodInfo{
		AccessFlags:     AccessFlags(r.readU2()),
		NameIndex:       r.readU2(),
		DescriptorIndex: r.readU2(),
	}
	if r.err != nil {
		return nil, r.err
	}

	attributes, err := readAttributes(r, cp)
	if err != nil {
		return nil, err
	}
	method.Attributes = attributes

	return method, nil
}
