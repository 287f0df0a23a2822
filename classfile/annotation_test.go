package classfile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valueReader(data ...byte) *reader {
	return newReader(bytes.NewReader(data), "T.class")
}

func TestReadElementValueConstants(t *testing.T) {
	cases := []struct {
		tag  byte
		want ElementValue
	}{
		{'B', &ByteElementValue{ConstValueIndex: 5}},
		{'C', &CharElementValue{ConstValueIndex: 5}},
		{'D', &DoubleElementValue{ConstValueIndex: 5}},
		{'F', &FloatElementValue{ConstValueIndex: 5}},
		{'I', &IntElementValue{ConstValueIndex: 5}},
		{'J', &LongElementValue{ConstValueIndex: 5}},
		{'S', &ShortElementValue{ConstValueIndex: 5}},
		{'Z', &BooleanElementValue{ConstValueIndex: 5}},
		{'s', &StringElementValue{ConstValueIndex: 5}},
	}
	for _, tc := range cases {
		t.Run(string(tc.tag), func(t *testing.T) {
			value, err := readElementValue(valueReader(tc.tag, 0x00, 0x05))
			require.NoError(t, err)
			assert.Equal(t, tc.want, value)
		})
	}
}

func TestReadElementValueEnum(t *testing.T) {
	value, err := readElementValue(valueReader('e', 0x00, 0x03, 0x00, 0x04))
	require.NoError(t, err)
	assert.Equal(t, &EnumElementValue{TypeNameIndex: 3, ConstNameIndex: 4}, value)
}

func TestReadElementValueClass(t *testing.T) {
	value, err := readElementValue(valueReader('c', 0x00, 0x08))
	require.NoError(t, err)
	assert.Equal(t, &ClassElementValue{ClassInfoIndex: 8}, value)
}

func TestReadElementValueNestedAnnotation(t *testing.T) {
	value, err := readElementValue(valueReader(
		'@',
		0x00, 0x02, // type index
		0x00, 0x01, // one pair
		0x00, 0x03, // element name
		'Z', 0x00, 0x04,
	))
	require.NoError(t, err)
	nested := value.(*AnnotationElementValue)
	assert.Equal(t, uint16(2), nested.Annotation.TypeIndex)
	require.Len(t, nested.Annotation.ElementValuePairs, 1)
	assert.Equal(t, &BooleanElementValue{ConstValueIndex: 4}, nested.Annotation.ElementValuePairs[0].Value)
}

func TestReadElementValueArray(t *testing.T) {
	value, err := readElementValue(valueReader(
		'[',
		0x00, 0x02,
		'I', 0x00, 0x05,
		'I', 0x00, 0x06,
	))
	require.NoError(t, err)
	assert.Equal(t, &ArrayElementValue{Values: []ElementValue{
		&IntElementValue{ConstValueIndex: 5},
		&IntElementValue{ConstValueIndex: 6},
	}}, value)
}

func TestReadElementValueArrayOfArrays(t *testing.T) {
	value, err := readElementValue(valueReader(
		'[',
		0x00, 0x01,
		'[', 0x00, 0x01,
		's', 0x00, 0x09,
	))
	require.NoError(t, err)
	outer := value.(*ArrayElementValue)
	require.Len(t, outer.Values, 1)
	inner := outer.Values[0].(*ArrayElementValue)
	assert.Equal(t, []ElementValue{&StringElementValue{ConstValueIndex: 9}}, inner.Values)
}

func TestReadElementValueUnknownTag(t *testing.T) {
	_, err := readElementValue(valueReader('X'))
	require.Error(t, err)
	assert.Equal(t, "malformed class file T.class: unknown element_value tag: 0x58", err.Error())
}

func TestReadAnnotation(t *testing.T) {
	annotation, err := readAnnotation(valueReader(
		0x00, 0x07, // type index
		0x00, 0x02, // two pairs
		0x00, 0x01, 'I', 0x00, 0x05,
		0x00, 0x02, 's', 0x00, 0x06,
	))
	require.NoError(t, err)
	assert.Equal(t, uint16(7), annotation.TypeIndex)
	require.Len(t, annotation.ElementValuePairs, 2)
	assert.Equal(t, uint16(1), annotation.ElementValuePairs[0].ElementNameIndex)
	assert.Equal(t, uint16(2), annotation.ElementValuePairs[1].ElementNameIndex)
}

func TestReadTypeAnnotationTargets(t *testing.T) {
	// Every entry ends with an empty type path and an annotation body with
	// type index 9 and no pairs.
	tail := []byte{0x00, 0x00, 0x09, 0x00, 0x00}

	cases := []struct {
		name string
		data []byte
		want TargetInfo
	}{
		{"type parameter 0x00", []byte{0x00, 2}, &TypeParameterTarget{TypeParameterIndex: 2}},
		{"type parameter 0x01", []byte{0x01, 3}, &TypeParameterTarget{TypeParameterIndex: 3}},
		{"supertype", []byte{0x10, 0x00, 0x04}, &SupertypeTarget{SupertypeIndex: 4}},
		{"type parameter bound 0x11", []byte{0x11, 1, 2}, &TypeParameterBoundTarget{TypeParameterIndex: 1, BoundIndex: 2}},
		{"type parameter bound 0x12", []byte{0x12, 0, 1}, &TypeParameterBoundTarget{TypeParameterIndex: 0, BoundIndex: 1}},
		{"empty 0x13", []byte{0x13}, &EmptyTarget{}},
		{"empty 0x14", []byte{0x14}, &EmptyTarget{}},
		{"empty 0x15", []byte{0x15}, &EmptyTarget{}},
		{"formal parameter", []byte{0x16, 1}, &FormalParameterTarget{FormalParameterIndex: 1}},
		{"throws", []byte{0x17, 0x00, 0x02}, &ThrowsTarget{ThrowsTypeIndex: 2}},
		{"localvar 0x40", []byte{0x40, 0x00, 0x01, 0x00, 0x02, 0x00, 0x08, 0x00, 0x01},
			&LocalvarTarget{Table: []LocalvarTargetEntry{{StartPC: 2, Length: 8, Index: 1}}}},
		{"localvar 0x41", []byte{0x41, 0x00, 0x00}, &LocalvarTarget{Table: []LocalvarTargetEntry{}}},
		{"catch", []byte{0x42, 0x00, 0x03}, &CatchTarget{ExceptionTableIndex: 3}},
		{"offset 0x43", []byte{0x43, 0x00, 0x06}, &OffsetTarget{Offset: 6}},
		{"offset 0x46", []byte{0x46, 0x00, 0x07}, &OffsetTarget{Offset: 7}},
		{"type argument 0x47", []byte{0x47, 0x00, 0x05, 1}, &TypeArgumentTarget{Offset: 5, TypeArgumentIndex: 1}},
		{"type argument 0x4B", []byte{0x4B, 0x00, 0x09, 0}, &TypeArgumentTarget{Offset: 9, TypeArgumentIndex: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := append(append([]byte{}, tc.data...), tail...)
			annotation, err := readTypeAnnotation(valueReader(data...))
			require.NoError(t, err)
			assert.Equal(t, tc.data[0], annotation.TargetType)
			assert.Equal(t, tc.want, annotation.TargetInfo)
			assert.Empty(t, annotation.TargetPath)
			assert.Equal(t, uint16(9), annotation.TypeIndex)
			assert.Empty(t, annotation.ElementValuePairs)
		})
	}
}

func TestReadTypeAnnotationWithPath(t *testing.T) {
	annotation, err := readTypeAnnotation(valueReader(
		0x13,
		0x02, // two path entries
		3, 0,
		0, 1,
		0x00, 0x09,
		0x00, 0x01,
		0x00, 0x02, 'I', 0x00, 0x05,
	))
	require.NoError(t, err)
	assert.Equal(t, []TypePathEntry{
		{TypePathKind: 3, TypeArgumentIndex: 0},
		{TypePathKind: 0, TypeArgumentIndex: 1},
	}, annotation.TargetPath)
	require.Len(t, annotation.ElementValuePairs, 1)
	assert.Equal(t, &IntElementValue{ConstValueIndex: 5}, annotation.ElementValuePairs[0].Value)
}

func TestReadTypeAnnotationUnknownTargetType(t *testing.T) {
	_, err := readTypeAnnotation(valueReader(0x90))
	require.Error(t, err)
	assert.Equal(t, "malformed class file T.class: unknown type annotation target_type: 0x90", err.Error())
}
