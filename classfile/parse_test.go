package classfile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureWriter builds class file byte fixtures.
type fixtureWriter struct {
	bytes.Buffer
}

func (w *fixtureWriter) u1(v uint8) {
	w.WriteByte(v)
}

func (w *fixtureWriter) u2(v uint16) {
	w.WriteByte(byte(v >> 8))
	w.WriteByte(byte(v))
}

func (w *fixtureWriter) u4(v uint32) {
	w.WriteByte(byte(v >> 24))
	w.WriteByte(byte(v >> 16))
	w.WriteByte(byte(v >> 8))
	w.WriteByte(byte(v))
}

// utf8Entry writes a CONSTANT_Utf8_info entry.
func (w *fixtureWriter) utf8Entry(s string) {
	w.u1(uint8(ConstantUtf8))
	w.u2(uint16(len(s)))
	w.WriteString(s)
}

// buildMinimalClass returns the bytes of a class with one private int field,
// one static method with a Code attribute, and a SourceFile attribute.
func buildMinimalClass() []byte {
	var w fixtureWriter
	w.u4(Magic)
	w.u2(0)  // minor
	w.u2(61) // major

	w.u2(12)                   // constant pool count, 11 entries
	w.utf8Entry("Test")        // 1
	w.u1(uint8(ConstantClass)) // 2
	w.u2(1)
	w.utf8Entry("java/lang/Object") // 3
	w.u1(uint8(ConstantClass))      // 4
	w.u2(3)
	w.utf8Entry("x")          // 5
	w.utf8Entry("I")          // 6
	w.utf8Entry("main")       // 7
	w.utf8Entry("()V")        // 8
	w.utf8Entry("Code")       // 9
	w.utf8Entry("SourceFile") // 10
	w.utf8Entry("Test.java")  // 11

	w.u2(0x0021) // access flags
	w.u2(2)      // this
	w.u2(4)      // super
	w.u2(0)      // interfaces

	w.u2(1) // fields
	w.u2(0x0002)
	w.u2(5)
	w.u2(6)
	w.u2(0) // field attributes

	w.u2(1) // methods
	w.u2(0x0009)
	w.u2(7)
	w.u2(8)
	w.u2(1)  // method attributes
	w.u2(9)  // Code
	w.u4(15) // attribute length
	w.u2(4)  // max_stack
	w.u2(2)  // max_locals
	w.u4(3)  // code length
	w.u1(0x03)
	w.u1(0x3B)
	w.u1(0xB1)
	w.u2(0) // exception table
	w.u2(0) // nested attributes

	w.u2(1) // class attributes
	w.u2(10)
	w.u4(2)
	w.u2(11)

	return w.Bytes()
}

func TestParseMinimalClass(t *testing.T) {
	cf, err := Parse(bytes.NewReader(buildMinimalClass()), "Test.class")
	require.NoError(t, err)

	assert.Equal(t, uint32(Magic), cf.Magic)
	assert.Equal(t, uint16(0), cf.MinorVersion)
	assert.Equal(t, uint16(61), cf.MajorVersion)
	assert.Equal(t, "Test", cf.ClassName())
	assert.Equal(t, "java/lang/Object", cf.SuperClassName())
	assert.Empty(t, cf.Interfaces)
	assert.True(t, cf.AccessFlags.IsPublic())
	assert.True(t, cf.IsClass())
	assert.Equal(t, "Test.java", cf.SourceFile())

	require.Len(t, cf.Fields, 1)
	field := cf.GetField("x")
	require.NotNil(t, field)
	assert.Equal(t, "I", field.Descriptor(cf.ConstantPool))
	assert.True(t, field.IsPrivate())

	require.Len(t, cf.Methods, 1)
	method := cf.GetMethod("main", "()V")
	require.NotNil(t, method)
	assert.True(t, method.IsStatic())

	code := method.GetCodeAttribute()
	require.NotNil(t, code)
	assert.Equal(t, uint16(4), code.MaxStack)
	assert.Equal(t, uint16(2), code.MaxLocals)
	assert.Equal(t, []byte{0x03, 0x3B, 0xB1}, code.Code)
	assert.Empty(t, code.ExceptionTable)
	assert.Empty(t, code.Attributes)
}

func TestParseWrongMagic(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte{0xDE, 0xAD, 0xBE, 0xEF}), "bad.class")
	require.Error(t, err)
	assert.Equal(t, "malformed class file bad.class: wrong value for MAGIC: expected 0xcafebabe, got 0xdeadbeef", err.Error())
}

func TestParseTruncatedAtEveryOffset(t *testing.T) {
	data := buildMinimalClass()
	for i := 0; i < len(data); i++ {
		_, err := Parse(bytes.NewReader(data[:i]), "Test.class")
		assert.Error(t, err, "prefix of %d bytes", i)
	}
}

func TestParseConstantPoolIndexing(t *testing.T) {
	cf, err := Parse(bytes.NewReader(buildMinimalClass()), "Test.class")
	require.NoError(t, err)

	// Declared count 12 yields 12 slots, entry 0 being the placeholder.
	assert.Len(t, cf.ConstantPool, 12)
	assert.Nil(t, cf.ConstantPool[0])
	for i := 1; i < len(cf.ConstantPool); i++ {
		assert.NotNil(t, cf.ConstantPool[i], "entry %d", i)
	}
}

// buildPoolOnlyClass wraps the given pool entries in a class with no
// fields, methods, interfaces or attributes.
func buildPoolOnlyClass(count uint16, entries func(w *fixtureWriter)) []byte {
	var w fixtureWriter
	w.u4(Magic)
	w.u2(0)
	w.u2(61)
	w.u2(count)
	entries(&w)
	w.u2(0x0021)
	w.u2(0)
	w.u2(0)
	w.u2(0) // interfaces
	w.u2(0) // fields
	w.u2(0) // methods
	w.u2(0) // attributes
	return w.Bytes()
}

func TestParseAllConstantPoolTags(t *testing.T) {
	data := buildPoolOnlyClass(19, func(w *fixtureWriter) {
		w.utf8Entry("hello")         // 1
		w.u1(uint8(ConstantInteger)) // 2
		w.u4(0xFFFFFFFF)
		w.u1(uint8(ConstantFloat)) // 3
		w.u4(0x3F800000)
		w.u1(uint8(ConstantLong)) // 4
		w.u4(0x00000001)
		w.u4(0x00000002)
		w.u1(uint8(ConstantDouble)) // 5
		w.u4(0x3FF00000)
		w.u4(0x00000000)
		w.u1(uint8(ConstantClass)) // 6
		w.u2(1)
		w.u1(uint8(ConstantString)) // 7
		w.u2(1)
		w.u1(uint8(ConstantFieldref)) // 8
		w.u2(6)
		w.u2(10)
		w.u1(uint8(ConstantMethodref)) // 9
		w.u2(6)
		w.u2(10)
		w.u1(uint8(ConstantNameAndType)) // 10
		w.u2(1)
		w.u2(1)
		w.u1(uint8(ConstantInterfaceMethodref)) // 11
		w.u2(6)
		w.u2(10)
		w.u1(uint8(ConstantMethodHandle)) // 12
		w.u1(uint8(RefInvokeStatic))
		w.u2(9)
		w.u1(uint8(ConstantMethodType)) // 13
		w.u2(1)
		w.u1(uint8(ConstantDynamic)) // 14
		w.u2(0)
		w.u2(10)
		w.u1(uint8(ConstantInvokeDynamic)) // 15
		w.u2(0)
		w.u2(10)
		w.u1(uint8(ConstantModule)) // 16
		w.u2(1)
		w.u1(uint8(ConstantPackage)) // 17
		w.u2(1)
		w.utf8Entry("world") // 18
	})

	cf, err := Parse(bytes.NewReader(data), "Pool.class")
	require.NoError(t, err)
	cp := cf.ConstantPool
	require.Len(t, cp, 19)

	assert.Equal(t, "hello", cp.GetUtf8(1))

	i, ok := cp.GetInteger(2)
	require.True(t, ok)
	assert.Equal(t, int32(-1), i)

	f, ok := cp.GetFloat(3)
	require.True(t, ok)
	assert.Equal(t, float32(1.0), f)

	l, ok := cp.GetLong(4)
	require.True(t, ok)
	assert.Equal(t, int64(0x100000002), l)

	d, ok := cp.GetDouble(5)
	require.True(t, ok)
	assert.Equal(t, 1.0, d)

	// Long and Double occupy a single slot here; the entry after them is
	// decoded normally.
	assert.Equal(t, ConstantClass, cp[6].Tag())
	assert.Equal(t, "hello", cp.GetClassName(6))
	assert.Equal(t, "hello", cp.GetString(7))

	className, name, descriptor := cp.GetFieldref(8)
	assert.Equal(t, "hello", className)
	assert.Equal(t, "hello", name)
	assert.Equal(t, "hello", descriptor)

	_, name, _ = cp.GetMethodref(9)
	assert.Equal(t, "hello", name)
	_, name, _ = cp.GetInterfaceMethodref(11)
	assert.Equal(t, "hello", name)

	handle := cp.GetMethodHandle(12)
	require.NotNil(t, handle)
	assert.Equal(t, RefInvokeStatic, handle.ReferenceKind)
	assert.Equal(t, uint16(9), handle.ReferenceIndex)

	assert.Equal(t, "hello", cp.GetMethodType(13))

	dynamic := cp.GetDynamic(14)
	require.NotNil(t, dynamic)
	assert.Equal(t, uint16(10), dynamic.NameAndTypeIndex)

	invokeDynamic := cp.GetInvokeDynamic(15)
	require.NotNil(t, invokeDynamic)
	assert.Equal(t, uint16(10), invokeDynamic.NameAndTypeIndex)

	assert.Equal(t, "hello", cp.GetModuleName(16))
	assert.Equal(t, "hello", cp.GetPackageName(17))
	assert.Equal(t, "world", cp.GetUtf8(18))
}

func TestParseUnknownConstantPoolTag(t *testing.T) {
	data := buildPoolOnlyClass(2, func(w *fixtureWriter) {
		w.u1(2) // tag 2 is unassigned
	})
	_, err := Parse(bytes.NewReader(data), "Bad.class")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong value for CONSTANT_POOL_TAG")
	assert.Contains(t, err.Error(), "expected one of [0x1, 0x3, 0x4, 0x5, 0x6, 0x7, 0x8, 0x9, 0xa, 0xb, 0xc, 0xf, 0x10, 0x11, 0x12, 0x13, 0x14]")
	assert.Contains(t, err.Error(), "got 0x2")
}

func TestParseInvalidMethodHandleKind(t *testing.T) {
	data := buildPoolOnlyClass(2, func(w *fixtureWriter) {
		w.u1(uint8(ConstantMethodHandle))
		w.u1(0x0A)
		w.u2(1)
	})
	_, err := Parse(bytes.NewReader(data), "Handle.class")
	require.Error(t, err)
	assert.Equal(t,
		"malformed class file Handle.class: wrong value for CONSTANT_POOL_METHOD_HANDLE_REFERENCE_KIND: "+
			"expected one of [0x1, 0x2, 0x3, 0x4, 0x5, 0x6, 0x7, 0x8, 0x9], got 0xa",
		err.Error())
}

func TestParseInvalidUtf8Constant(t *testing.T) {
	data := buildPoolOnlyClass(2, func(w *fixtureWriter) {
		w.u1(uint8(ConstantUtf8))
		w.u2(1)
		w.u1(0x00)
	})
	_, err := Parse(bytes.NewReader(data), "Utf8.class")
	require.Error(t, err)
	var utf8Err *Utf8Error
	require.ErrorAs(t, err, &utf8Err)
}

func TestParseInterfaces(t *testing.T) {
	var w fixtureWriter
	w.u4(Magic)
	w.u2(0)
	w.u2(61)
	w.u2(5)
	w.utf8Entry("Runnable")    // 1
	w.u1(uint8(ConstantClass)) // 2
	w.u2(1)
	w.utf8Entry("java/lang/Comparable") // 3
	w.u1(uint8(ConstantClass))          // 4
	w.u2(3)
	w.u2(0x0021)
	w.u2(0)
	w.u2(0)
	w.u2(2) // interfaces
	w.u2(2)
	w.u2(4)
	w.u2(0)
	w.u2(0)
	w.u2(0)

	cf, err := Parse(bytes.NewReader(w.Bytes()), "Iface.class")
	require.NoError(t, err)
	assert.Equal(t, []uint16{2, 4}, cf.Interfaces)
	assert.Equal(t, []string{"Runnable", "java/lang/Comparable"}, cf.InterfaceNames())
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("testdata/does-not-exist.class")
	require.Error(t, err)
}
