package classfile

// Attribute is a decoded attribute record. The concrete type is selected by
// the attribute's name, resolved through the constant pool; there is no
// raw-bytes fallback for unrecognized names.
type Attribute interface {
	// Name returns the attribute name as it appears in the class file,
	// e.g. "Code" or "RuntimeVisibleAnnotations".
	Name() string
}

type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

func (*ConstantValueAttribute) Name() string { return "ConstantValue" }

type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

type CodeAttribute struct {
	AttributeLength uint32
	MaxStack        uint16
	MaxLocals       uint16
	Code            []byte
	ExceptionTable  []ExceptionTableEntry
	Attributes      []Attribute
}

func (*CodeAttribute) Name() string { return "Code" }

type StackMapTableAttribute struct {
	AttributeLength uint32
	Entries         []StackMapFrame
}

func (*StackMapTableAttribute) Name() string { return "StackMapTable" }

type ExceptionsAttribute struct {
	AttributeLength     uint32
	ExceptionIndexTable []uint16
}

func (*ExceptionsAttribute) Name() string { return "Exceptions" }

type InnerClass struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags uint16
}

type InnerClassesAttribute struct {
	AttributeLength uint32
	Classes         []InnerClass
}

func (*InnerClassesAttribute) Name() string { return "InnerClasses" }

type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16
}

func (*EnclosingMethodAttribute) Name() string { return "EnclosingMethod" }

type SyntheticAttribute struct{}

func (*SyntheticAttribute) Name() string { return "Synthetic" }

type SignatureAttribute struct {
	SignatureIndex uint16
}

func (*SignatureAttribute) Name() string { return "Signature" }

type SourceFileAttribute struct {
	SourceFileIndex uint16
}

func (*SourceFileAttribute) Name() string { return "SourceFile" }

type SourceDebugExtensionAttribute struct {
	DebugExtension []byte
}

func (*SourceDebugExtensionAttribute) Name() string { return "SourceDebugExtension" }

type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

type LineNumberTableAttribute struct {
	AttributeLength uint32
	LineNumberTable []LineNumberEntry
}

func (*LineNumberTableAttribute) Name() string { return "LineNumberTable" }

type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

type LocalVariableTableAttribute struct {
	AttributeLength    uint32
	LocalVariableTable []LocalVariableEntry
}

func (*LocalVariableTableAttribute) Name() string { return "LocalVariableTable" }

type LocalVariableTypeEntry struct {
	StartPC        uint16
	Length         uint16
	NameIndex      uint16
	SignatureIndex uint16
	Index          uint16
}

type LocalVariableTypeTableAttribute struct {
	AttributeLength        uint32
	LocalVariableTypeTable []LocalVariableTypeEntry
}

func (*LocalVariableTypeTableAttribute) Name() string { return "LocalVariableTypeTable" }

type DeprecatedAttribute struct{}

func (*DeprecatedAttribute) Name() string { return "Deprecated" }

type RuntimeVisibleAnnotationsAttribute struct {
	AttributeLength uint32
	Annotations     []Annotation
}

func (*RuntimeVisibleAnnotationsAttribute) Name() string { return "RuntimeVisibleAnnotations" }

type RuntimeInvisibleAnnotationsAttribute struct {
	AttributeLength uint32
	Annotations     []Annotation
}

func (*RuntimeInvisibleAnnotationsAttribute) Name() string { return "RuntimeInvisibleAnnotations" }

type RuntimeVisibleParameterAnnotationsAttribute struct {
	AttributeLength      uint32
	ParameterAnnotations [][]Annotation
}

func (*RuntimeVisibleParameterAnnotationsAttribute) Name() string {
	return "RuntimeVisibleParameterAnnotations"
}

type RuntimeInvisibleParameterAnnotationsAttribute struct {
	AttributeLength      uint32
	ParameterAnnotations [][]Annotation
}

func (*RuntimeInvisibleParameterAnnotationsAttribute) Name() string {
	return "RuntimeInvisibleParameterAnnotations"
}

type RuntimeVisibleTypeAnnotationsAttribute struct {
	AttributeLength uint32
	Annotations     []TypeAnnotation
}

func (*RuntimeVisibleTypeAnnotationsAttribute) Name() string {
	return "RuntimeVisibleTypeAnnotations"
}

type RuntimeInvisibleTypeAnnotationsAttribute struct {
	AttributeLength uint32
	Annotations     []TypeAnnotation
}

func (*RuntimeInvisibleTypeAnnotationsAttribute) Name() string {
	return "RuntimeInvisibleTypeAnnotations"
}

type AnnotationDefaultAttribute struct {
	AttributeLength uint32
	DefaultValue    ElementValue
}

func (*AnnotationDefaultAttribute) Name() string { return "AnnotationDefault" }

type BootstrapMethod struct {
	BootstrapMethodRef uint16
	BootstrapArguments []uint16
}

type BootstrapMethodsAttribute struct {
	AttributeLength  uint32
	BootstrapMethods []BootstrapMethod
}

func (*BootstrapMethodsAttribute) Name() string { return "BootstrapMethods" }

type MethodParameter struct {
	NameIndex   uint16
	AccessFlags uint16
}

type MethodParametersAttribute struct {
	AttributeLength uint32
	Parameters      []MethodParameter
}

func (*MethodParametersAttribute) Name() string { return "MethodParameters" }

type ModuleRequires struct {
	RequiresIndex        uint16
	RequiresFlags        uint16
	RequiresVersionIndex uint16
}

type ModuleExports struct {
	ExportsIndex   uint16
	ExportsFlags   uint16
	ExportsToIndex []uint16
}

type ModuleOpens struct {
	OpensIndex   uint16
	OpensFlags   uint16
	OpensToIndex []uint16
}

type ModuleProvides struct {
	ProvidesIndex     uint16
	ProvidesWithIndex []uint16
}

type ModuleAttribute struct {
	AttributeLength    uint32
	ModuleNameIndex    uint16
	ModuleFlags        uint16
	ModuleVersionIndex uint16
	Requires           []ModuleRequires
	Exports            []ModuleExports
	Opens              []ModuleOpens
	UsesIndex          []uint16
	Provides           []ModuleProvides
}

func (*ModuleAttribute) Name() string { return "Module" }

type ModulePackagesAttribute struct {
	AttributeLength uint32
	PackageIndex    []uint16
}

func (*ModulePackagesAttribute) Name() string { return "ModulePackages" }

type ModuleMainClassAttribute struct {
	MainClassIndex uint16
}

func (*ModuleMainClassAttribute) Name() string { return "ModuleMainClass" }

type NestHostAttribute struct {
	HostClassIndex uint16
}

func (*NestHostAttribute) Name() string { return "NestHost" }

type NestMembersAttribute struct {
	AttributeLength uint32
	Classes         []uint16
}

func (*NestMembersAttribute) Name() string { return "NestMembers" }

type RecordComponent struct {
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

type RecordAttribute struct {
	AttributeLength uint32
	Components      []RecordComponent
}

func (*RecordAttribute) Name() string { return "Record" }

type PermittedSubclassesAttribute struct {
	AttributeLength uint32
	Classes         []uint16
}

func (*PermittedSubclassesAttribute) Name() string { return "PermittedSubclasses" }

// readAttributes reads a count-prefixed attribute sequence.
func readAttributes(r *reader, cp ConstantPool) ([]Attribute, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	attributes := make([]Attribute, 0, count)
	for i := uint16(0); i < count; i++ {
		attribute, err := readAttribute(r, cp)
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, attribute)
	}
	return attributes, nil
}

// readAttribute decodes one attribute record. The declared attribute_length
// is carried along on variable-length attributes but never cross-checked
// against the bytes actually consumed.
func readAttribute(r *reader, cp ConstantPool) (Attribute, error) {
	nameIndex := r.readU2()
	length := r.readU4()
	if r.err != nil {
		return nil, r.err
	}

	utf8, ok := cp.at(nameIndex).(*ConstantUtf8Info)
	if !ok {
		return nil, errNotUtf8(r.file, nameIndex)
	}

	switch utf8.Value {
	case "ConstantValue":
		a := &ConstantValueAttribute{ConstantValueIndex: r.readU2()}
		return a, r.err

	case "Code":
		return readCodeAttribute(r, cp, length)

	case "StackMapTable":
		numberOfEntries := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		entries := make([]StackMapFrame, 0, numberOfEntries)
		for i := uint16(0); i < numberOfEntries; i++ {
			frame, err := readStackMapFrame(r)
			if err != nil {
				return nil, err
			}
			entries = append(entries, frame)
		}
		return &StackMapTableAttribute{AttributeLength: length, Entries: entries}, nil

	case "Exceptions":
		numberOfExceptions := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		table := make([]uint16, 0, numberOfExceptions)
		for i := uint16(0); i < numberOfExceptions; i++ {
			table = append(table, r.readU2())
		}
		a := &ExceptionsAttribute{AttributeLength: length, ExceptionIndexTable: table}
		return a, r.err

	case "InnerClasses":
		numberOfClasses := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		classes := make([]InnerClass, 0, numberOfClasses)
		for i := uint16(0); i < numberOfClasses; i++ {
			classes = append(classes, InnerClass{
				InnerClassInfoIndex:   r.readU2(),
				OuterClassInfoIndex:   r.readU2(),
				InnerNameIndex:        r.readU2(),
				InnerClassAccessFlags: r.readU2(),
			})
		}
		a := &InnerClassesAttribute{AttributeLength: length, Classes: classes}
		return a, r.err

	case "EnclosingMethod":
		a := &EnclosingMethodAttribute{
			ClassIndex:  r.readU2(),
			MethodIndex: r.readU2(),
		}
		return a, r.err

	case "Synthetic":
		return &SyntheticAttribute{}, nil

	case "Signature":
		a := &SignatureAttribute{SignatureIndex: r.readU2()}
		return a, r.err

	case "SourceFile":
		a := &SourceFileAttribute{SourceFileIndex: r.readU2()}
		return a, r.err

	case "SourceDebugExtension":
		debugExtension := r.readBytes(int(length))
		a := &SourceDebugExtensionAttribute{DebugExtension: debugExtension}
		return a, r.err

	case "LineNumberTable":
		tableLength := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		table := make([]LineNumberEntry, 0, tableLength)
		for i := uint16(0); i < tableLength; i++ {
			table = append(table, LineNumberEntry{
				StartPC:    r.readU2(),
				LineNumber: r.readU2(),
			})
		}
		a := &LineNumberTableAttribute{AttributeLength: length, LineNumberTable: table}
		return a, r.err

	case "LocalVariableTable":
		tableLength := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		table := make([]LocalVariableEntry, 0, tableLength)
		for i := uint16(0); i < tableLength; i++ {
			table = append(table, LocalVariableEntry{
				StartPC:         r.readU2(),
				Length:          r.readU2(),
				NameIndex:       r.readU2(),
				DescriptorIndex: r.readU2(),
				Index:           r.readU2(),
			})
		}
		a := &LocalVariableTableAttribute{AttributeLength: length, LocalVariableTable: table}
		return a, r.err

	case "LocalVariableTypeTable":
		tableLength := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		table := make([]LocalVariableTypeEntry, 0, tableLength)
		for i := uint16(0); i < tableLength; i++ {
			table = append(table, LocalVariableTypeEntry{
				StartPC:        r.readU2(),
				Length:         r.readU2(),
				NameIndex:      r.readU2(),
				SignatureIndex: r.readU2(),
				Index:          r.readU2(),
			})
		}
		a := &LocalVariableTypeTableAttribute{AttributeLength: length, LocalVariableTypeTable: table}
		return a, r.err

	case "Deprecated":
		return &DeprecatedAttribute{}, nil

	case "RuntimeVisibleAnnotations":
		annotations, err := readAnnotations(r)
		if err != nil {
			return nil, err
		}
		return &RuntimeVisibleAnnotationsAttribute{AttributeLength: length, Annotations: annotations}, nil

	case "RuntimeInvisibleAnnotations":
		annotations, err := readAnnotations(r)
		if err != nil {
			return nil, err
		}
		return &RuntimeInvisibleAnnotationsAttribute{AttributeLength: length, Annotations: annotations}, nil

	case "RuntimeVisibleParameterAnnotations":
		parameterAnnotations, err := readParameterAnnotations(r)
		if err != nil {
			return nil, err
		}
		return &RuntimeVisibleParameterAnnotationsAttribute{
			AttributeLength:      length,
			ParameterAnnotations: parameterAnnotations,
		}, nil

	case "RuntimeInvisibleParameterAnnotations":
		parameterAnnotations, err := readParameterAnnotations(r)
		if err != nil {
			return nil, err
		}
		return &RuntimeInvisibleParameterAnnotationsAttribute{
			AttributeLength:      length,
			ParameterAnnotations: parameterAnnotations,
		}, nil

	case "RuntimeVisibleTypeAnnotations":
		annotations, err := readTypeAnnotations(r)
		if err != nil {
			return nil, err
		}
		return &RuntimeVisibleTypeAnnotationsAttribute{AttributeLength: length, Annotations: annotations}, nil

	case "RuntimeInvisibleTypeAnnotations":
		annotations, err := readTypeAnnotations(r)
		if err != nil {
			return nil, err
		}
		return &RuntimeInvisibleTypeAnnotationsAttribute{AttributeLength: length, Annotations: annotations}, nil

	case "AnnotationDefault":
		defaultValue, err := readElementValue(r)
		if err != nil {
			return nil, err
		}
		return &AnnotationDefaultAttribute{AttributeLength: length, DefaultValue: defaultValue}, nil

	case "BootstrapMethods":
		numBootstrapMethods := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		methods := make([]BootstrapMethod, 0, numBootstrapMethods)
		for i := uint16(0); i < numBootstrapMethods; i++ {
			bootstrapMethodRef := r.readU2()
			numArguments := r.readU2()
			if r.err != nil {
				return nil, r.err
			}
			arguments := make([]uint16, 0, numArguments)
			for j := uint16(0); j < numArguments; j++ {
				arguments = append(arguments, r.readU2())
			}
			methods = append(methods, BootstrapMethod{
				BootstrapMethodRef: bootstrapMethodRef,
				BootstrapArguments: arguments,
			})
		}
		a := &BootstrapMethodsAttribute{AttributeLength: length, BootstrapMethods: methods}
		return a, r.err

	case "MethodParameters":
		parametersCount := r.readU1()
		if r.err != nil {
			return nil, r.err
		}
		parameters := make([]MethodParameter, 0, parametersCount)
		for i := uint8(0); i < parametersCount; i++ {
			parameters = append(parameters, MethodParameter{
				NameIndex:   r.readU2(),
				AccessFlags: r.readU2(),
			})
		}
		a := &MethodParametersAttribute{AttributeLength: length, Parameters: parameters}
		return a, r.err

	case "Module":
		return readModuleAttribute(r, length)

	case "ModulePackages":
		packageCount := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		packageIndex := make([]uint16, 0, packageCount)
		for i := uint16(0); i < packageCount; i++ {
			packageIndex = append(packageIndex, r.readU2())
		}
		a := &ModulePackagesAttribute{AttributeLength: length, PackageIndex: packageIndex}
		return a, r.err

	case "ModuleMainClass":
		a := &ModuleMainClassAttribute{MainClassIndex: r.readU2()}
		return a, r.err

	case "NestHost":
		a := &NestHostAttribute{HostClassIndex: r.readU2()}
		return a, r.err

	case "NestMembers":
		numberOfClasses := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		classes := make([]uint16, 0, numberOfClasses)
		for i := uint16(0); i < numberOfClasses; i++ {
			classes = append(classes, r.readU2())
		}
		a := &NestMembersAttribute{AttributeLength: length, Classes: classes}
		return a, r.err

	case "Record":
		componentsCount := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		components := make([]RecordComponent, 0, componentsCount)
		for i := uint16(0); i < componentsCount; i++ {
			nameIndex := r.readU2()
			descriptorIndex := r.readU2()
			if r.err != nil {
				return nil, r.err
			}
			attributes, err := readAttributes(r, cp)
			if err != nil {
				return nil, err
			}
			components = append(components, RecordComponent{
				NameIndex:       nameIndex,
				DescriptorIndex: descriptorIndex,
				Attributes:      attributes,
			})
		}
		return &RecordAttribute{AttributeLength: length, Components: components}, nil

	case "PermittedSubclasses":
		numberOfClasses := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		classes := make([]uint16, 0, numberOfClasses)
		for i := uint16(0); i < numberOfClasses; i++ {
			classes = append(classes, r.readU2())
		}
		a := &PermittedSubclassesAttribute{AttributeLength: length, Classes: classes}
		return a, r.err

	default:
		return nil, errUnknownAttribute(r.file, utf8.Value)
	}
}

func readCodeAttribute(r *reader, cp ConstantPool, length uint32) (*CodeAttribute, error) {
	maxStack := r.readU2()
	maxLocals := r.readU2()
	codeLength := r.readU4()
	if r.err != nil {
		return nil, r.err
	}
	code := r.readBytes(int(codeLength))

	exceptionTableLength := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	exceptionTable := make([]ExceptionTableEntry, 0, exceptionTableLength)
	for i := uint16(0); i < exceptionTableLength; i++ {
		exceptionTable = append(exceptionTable, ExceptionTableEntry{
			StartPC:   r.readU2(),
			EndPC:     r.readU2(),
			HandlerPC: r.readU2(),
			CatchType: r.readU2(),
		})
	}
	if r.err != nil {
		return nil, r.err
	}

	attributes, err := readAttributes(r, cp)
	if err != nil {
		return nil, err
	}

	return &CodeAttribute{
		AttributeLength: length,
		MaxStack:        maxStack,
		MaxLocals:       maxLocals,
		Code:            code,
		ExceptionTable:  exceptionTable,
		Attributes:      attributes,
	}, nil
}

func readModuleAttribute(r *reader, length uint32) (*ModuleAttribute, error) {
	moduleNameIndex := r.readU2()
	moduleFlags := r.readU2()
	moduleVersionIndex := r.readU2()

	requiresCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	requires := make([]ModuleRequires, 0, requiresCount)
	for i := uint16(0); i < requiresCount; i++ {
		requires = append(requires, ModuleRequires{
			RequiresIndex:        r.readU2(),
			RequiresFlags:        r.readU2(),
			RequiresVersionIndex: r.readU2(),
		})
	}

	exportsCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	exports := make([]ModuleExports, 0, exportsCount)
	for i := uint16(0); i < exportsCount; i++ {
		exportsIndex := r.readU2()
		exportsFlags := r.readU2()
		exportsToCount := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		exportsTo := make([]uint16, 0, exportsToCount)
		for j := uint16(0); j < exportsToCount; j++ {
			exportsTo = append(exportsTo, r.readU2())
		}
		exports = append(exports, ModuleExports{
			ExportsIndex:   exportsIndex,
			ExportsFlags:   exportsFlags,
			ExportsToIndex: exportsTo,
		})
	}

	opensCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	opens := make([]ModuleOpens, 0, opensCount)
	for i := uint16(0); i < opensCount; i++ {
		opensIndex := r.readU2()
		opensFlags := r.readU2()
		opensToCount := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		opensTo := make([]uint16, 0, opensToCount)
		for j := uint16(0); j < opensToCount; j++ {
			opensTo = append(opensTo, r.readU2())
		}
		opens = append(opens, ModuleOpens{
			OpensIndex:   opensIndex,
			OpensFlags:   opensFlags,
			OpensToIndex: opensTo,
		})
	}

	usesCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	usesIndex := make([]uint16, 0, usesCount)
	for i := uint16(0); i < usesCount; i++ {
		usesIndex = append(usesIndex, r.readU2())
	}

	providesCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	provides := make([]ModuleProvides, 0, providesCount)
	for i := uint16(0); i < providesCount; i++ {
		providesIndex := r.readU2()
		providesWithCount := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		providesWith := make([]uint16, 0, providesWithCount)
		for j := uint16(0); j < providesWithCount; j++ {
			providesWith = append(providesWith, r.readU2())
		}
		provides = append(provides, ModuleProvides{
			ProvidesIndex:     providesIndex,
			ProvidesWithIndex: providesWith,
		})
	}
	if r.err != nil {
		return nil, r.err
	}

	return &ModuleAttribute{
		AttributeLength:    length,
		ModuleNameIndex:    moduleNameIndex,
		ModuleFlags:        moduleFlags,
		ModuleVersionIndex: moduleVersionIndex,
		Requires:           requires,
		Exports:            exports,
		Opens:              opens,
		UsesIndex:          usesIndex,
		Provides:           provides,
	}, nil
}

func readAnnotations(r *reader) ([]Annotation, error) {
	numAnnotations := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	annotations := make([]Annotation, 0, numAnnotations)
	for i := uint16(0); i < numAnnotations; i++ {
		annotation, err := readAnnotation(r)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, annotation)
	}
	return annotations, nil
}

func readParameterAnnotations(r *reader) ([][]Annotation, error) {
	numParameters := r.readU1()
	if r.err != nil {
		return nil, r.err
	}
	parameterAnnotations := make([][]Annotation, 0, numParameters)
	for i := uint8(0); i < numParameters; i++ {
		annotations, err := readAnnotations(r)
		if err != nil {
			return nil, err
		}
		parameterAnnotations = append(parameterAnnotations, annotations)
	}
	return parameterAnnotations, nil
}

func readTypeAnnotations(r *reader) ([]TypeAnnotation, error) {
	numAnnotations := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	annotations := make([]TypeAnnotation, 0, numAnnotations)
	for i := uint16(0); i < numAnnotations; i++ {
		annotation, err := readTypeAnnotation(r)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, annotation)
	}
	return annotations, nil
}
