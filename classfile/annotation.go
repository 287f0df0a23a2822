package classfile

// Annotation is one annotation entry as used by the four Runtime*Annotations
// attribute kinds and by nested element values.
type Annotation struct {
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

type ElementValuePair struct {
	ElementNameIndex uint16
	Value            ElementValue
}

// ElementValue is an annotation element value, selected by a one-byte ASCII
// tag. The variant set is closed; ArrayElementValue is recursive and
// AnnotationElementValue nests a full annotation.
type ElementValue interface {
	elementValue()
}

type ByteElementValue struct {
	ConstValueIndex uint16
}

type CharElementValue struct {
	ConstValueIndex uint16
}

type DoubleElementValue struct {
	ConstValueIndex uint16
}

type FloatElementValue struct {
	ConstValueIndex uint16
}

type IntElementValue struct {
	ConstValueIndex uint16
}

type LongElementValue struct {
	ConstValueIndex uint16
}

type ShortElementValue struct {
	ConstValueIndex uint16
}

type BooleanElementValue struct {
	ConstValueIndex uint16
}

type StringElementValue struct {
	ConstValueIndex uint16
}

type EnumElementValue struct {
	TypeNameIndex  uint16
	ConstNameIndex uint16
}

type ClassElementValue struct {
	ClassInfoIndex uint16
}

type AnnotationElementValue struct {
	Annotation Annotation
}

type ArrayElementValue struct {
	Values []ElementValue
}

func (*ByteElementValue) elementValue()       {}
func (*CharElementValue) elementValue()       {}
func (*DoubleElementValue) elementValue()     {}
func (*FloatElementValue) elementValue()      {}
func (*IntElementValue) elementValue()        {}
func (*LongElementValue) elementValue()       {}
func (*ShortElementValue) elementValue()      {}
func (*BooleanElementValue) elementValue()    {}
func (*StringElementValue) elementValue()     {}
func (*EnumElementValue) elementValue()       {}
func (*ClassElementValue) elementValue()      {}
func (*AnnotationElementValue) elementValue() {}
func (*ArrayElementValue) elementValue()      {}

// TypeAnnotation is one entry of a Runtime*TypeAnnotations attribute: a
// regular annotation body preceded by a target descriptor and a type path.
type TypeAnnotation struct {
	TargetType        uint8
	TargetInfo        TargetInfo
	TargetPath        []TypePathEntry
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

type TypePathEntry struct {
	TypePathKind      uint8
	TypeArgumentIndex uint8
}

// TargetInfo describes where a type annotation applies, selected by the
// target_type byte.
type TargetInfo interface {
	targetInfo()
}

// TypeParameterTarget covers target_type 0x00-0x01.
type TypeParameterTarget struct {
	TypeParameterIndex uint8
}

// SupertypeTarget covers target_type 0x10.
type SupertypeTarget struct {
	SupertypeIndex uint16
}

// TypeParameterBoundTarget covers target_type 0x11-0x12.
type TypeParameterBoundTarget struct {
	TypeParameterIndex uint8
	BoundIndex         uint8
}

// EmptyTarget covers target_type 0x13-0x15.
type EmptyTarget struct{}

// FormalParameterTarget covers target_type 0x16.
type FormalParameterTarget struct {
	FormalParameterIndex uint8
}

// ThrowsTarget covers target_type 0x17.
type ThrowsTarget struct {
	ThrowsTypeIndex uint16
}

// LocalvarTarget covers target_type 0x40-0x41.
type LocalvarTarget struct {
	Table []LocalvarTargetEntry
}

type LocalvarTargetEntry struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

// CatchTarget covers target_type 0x42.
type CatchTarget struct {
	ExceptionTableIndex uint16
}

// OffsetTarget covers target_type 0x43-0x46.
type OffsetTarget struct {
	Offset uint16
}

// TypeArgumentTarget covers target_type 0x47-0x4B.
type TypeArgumentTarget struct {
	Offset            uint16
	TypeArgumentIndex uint8
}

func (*TypeParameterTarget) targetInfo()      {}
func (*SupertypeTarget) targetInfo()          {}
func (*TypeParameterBoundTarget) targetInfo() {}
func (*EmptyTarget) targetInfo()              {}
func (*FormalParameterTarget) targetInfo()    {}
func (*ThrowsTarget) targetInfo()             {}
func (*LocalvarTarget) targetInfo()           {}
func (*CatchTarget) targetInfo()              {}
func (*OffsetTarget) targetInfo()             {}
func (*TypeArgumentTarget) targetInfo()       {}

func readAnnotation(r *reader) (Annotation, error) {
	typeIndex := r.readU2()
	numPairs := r.readU2()
	if r.err != nil {
		return Annotation{}, r.err
	}

	pairs := make([]ElementValuePair, 0, numPairs)
	for i := uint16(0); i < numPairs; i++ {
		pair, err := readElementValuePair(r)
		if err != nil {
			return Annotation{}, err
		}
		pairs = append(pairs, pair)
	}

	return Annotation{TypeIndex: typeIndex, ElementValuePairs: pairs}, nil
}

func readElementValuePair(r *reader) (ElementValuePair, error) {
	elementNameIndex := r.readU2()
	if r.err != nil {
		return ElementValuePair{}, r.err
	}
	value, err := readElementValue(r)
	if err != nil {
		return ElementValuePair{}, err
	}
	return ElementValuePair{ElementNameIndex: elementNameIndex, Value: value}, nil
}

func readElementValue(r *reader) (ElementValue, error) {
	tag := r.readU1()
	if r.err != nil {
		return nil, r.err
	}

	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		constValueIndex := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		switch tag {
		case 'B':
			return &ByteElementValue{ConstValueIndex: constValueIndex}, nil
		case 'C':
			return &CharElementValue{ConstValueIndex: constValueIndex}, nil
		case 'D':
			return &DoubleElementValue{ConstValueIndex: constValueIndex}, nil
		case 'F':
			return &FloatElementValue{ConstValueIndex: constValueIndex}, nil
		case 'I':
			return &IntElementValue{ConstValueIndex: constValueIndex}, nil
		case 'J':
			return &LongElementValue{ConstValueIndex: constValueIndex}, nil
		case 'S':
			return &ShortElementValue{ConstValueIndex: constValueIndex}, nil
		case 'Z':
			return &BooleanElementValue{ConstValueIndex: constValueIndex}, nil
		default:
			return &StringElementValue{ConstValueIndex: constValueIndex}, nil
		}

	case 'e':
		typeNameIndex := r.readU2()
		constNameIndex := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		return &EnumElementValue{TypeNameIndex: typeNameIndex, ConstNameIndex: constNameIndex}, nil

	case 'c':
		classInfoIndex := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		return &ClassElementValue{ClassInfoIndex: classInfoIndex}, nil

	case '@':
		annotation, err := readAnnotation(r)
		if err != nil {
			return nil, err
		}
		return &AnnotationElementValue{Annotation: annotation}, nil

	case '[':
		numValues := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		values := make([]ElementValue, 0, numValues)
		for i := uint16(0); i < numValues; i++ {
			value, err := readElementValue(r)
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return &ArrayElementValue{Values: values}, nil

	default:
		return nil, errUnknownTag(r.file, "element_value tag", tag)
	}
}

func readTypeAnnotation(r *reader) (TypeAnnotation, error) {
	targetType := r.readU1()
	if r.err != nil {
		return TypeAnnotation{}, r.err
	}

	var targetInfo TargetInfo
	switch {
	case targetType <= 0x01:
		typeParameterIndex := r.readU1()
		targetInfo = &TypeParameterTarget{TypeParameterIndex: typeParameterIndex}

	case targetType == 0x10:
		supertypeIndex := r.readU2()
		targetInfo = &SupertypeTarget{SupertypeIndex: supertypeIndex}

	case targetType == 0x11 || targetType == 0x12:
		typeParameterIndex := r.readU1()
		boundIndex := r.readU1()
		targetInfo = &TypeParameterBoundTarget{TypeParameterIndex: typeParameterIndex, BoundIndex: boundIndex}

	case targetType >= 0x13 && targetType <= 0x15:
		targetInfo = &EmptyTarget{}

	case targetType == 0x16:
		formalParameterIndex := r.readU1()
		targetInfo = &FormalParameterTarget{FormalParameterIndex: formalParameterIndex}

	case targetType == 0x17:
		throwsTypeIndex := r.readU2()
		targetInfo = &ThrowsTarget{ThrowsTypeIndex: throwsTypeIndex}

	case targetType == 0x40 || targetType == 0x41:
		tableLength := r.readU2()
		if r.err != nil {
			return TypeAnnotation{}, r.err
		}
		table := make([]LocalvarTargetEntry, 0, tableLength)
		for i := uint16(0); i < tableLength; i++ {
			table = append(table, LocalvarTargetEntry{
				StartPC: r.readU2(),
				Length:  r.readU2(),
				Index:   r.readU2(),
			})
		}
		targetInfo = &LocalvarTarget{Table: table}

	case targetType == 0x42:
		exceptionTableIndex := r.readU2()
		targetInfo = &CatchTarget{ExceptionTableIndex: exceptionTableIndex}

	case targetType >= 0x43 && targetType <= 0x46:
		offset := r.readU2()
		targetInfo = &OffsetTarget{Offset: offset}

	case targetType >= 0x47 && targetType <= 0x4B:
		offset := r.readU2()
		typeArgumentIndex := r.readU1()
		targetInfo = &TypeArgumentTarget{Offset: offset, TypeArgumentIndex: typeArgumentIndex}

	default:
		return TypeAnnotation{}, errUnknownTag(r.file, "type annotation target_type", targetType)
	}
	if r.err != nil {
		return TypeAnnotation{}, r.err
	}

	pathLength := r.readU1()
	if r.err != nil {
		return TypeAnnotation{}, r.err
	}
	targetPath := make([]TypePathEntry, 0, pathLength)
	for i := uint8(0); i < pathLength; i++ {
		targetPath = append(targetPath, TypePathEntry{
			TypePathKind:      r.readU1(),
			TypeArgumentIndex: r.readU1(),
		})
	}

	typeIndex := r.readU2()
	numPairs := r.readU2()
	if r.err != nil {
		return TypeAnnotation{}, r.err
	}
	pairs := make([]ElementValuePair, 0, numPairs)
	for i := uint16(0); i < numPairs; i++ {
		pair, err := readElementValuePair(r)
		if err != nil {
			return TypeAnnotation{}, err
		}
		pairs = append(pairs, pair)
	}

	return TypeAnnotation{
		TargetType:        targetType,
		TargetInfo:        targetInfo,
		TargetPath:        targetPath,
		TypeIndex:         typeIndex,
		ElementValuePairs: pairs,
	}, nil
}
