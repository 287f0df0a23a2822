package classfile

// VerificationTypeInfo is one entry of a stack map frame's locals or stack
// type list. The variant set is closed.
type VerificationTypeInfo interface {
	verificationTypeInfo()
}

type TopVariableInfo struct{}

type IntegerVariableInfo struct{}

type FloatVariableInfo struct{}

type DoubleVariableInfo struct{}

type LongVariableInfo struct{}

type NullVariableInfo struct{}

type UninitializedThisVariableInfo struct{}

type ObjectVariableInfo struct {
	CpoolIndex uint16
}

type UninitializedVariableInfo struct {
	Offset uint16
}

func (*TopVariableInfo) verificationTypeInfo()               {}
func (*IntegerVariableInfo) verificationTypeInfo()           {}
func (*FloatVariableInfo) verificationTypeInfo()             {}
func (*DoubleVariableInfo) verificationTypeInfo()            {}
func (*LongVariableInfo) verificationTypeInfo()              {}
func (*NullVariableInfo) verificationTypeInfo()              {}
func (*UninitializedThisVariableInfo) verificationTypeInfo() {}
func (*ObjectVariableInfo) verificationTypeInfo()            {}
func (*UninitializedVariableInfo) verificationTypeInfo()     {}

// StackMapFrame is one entry of a StackMapTable attribute. The concrete type
// is selected by the frame_type byte, by exact value or range.
type StackMapFrame interface {
	stackMapFrame()
}

// SameFrame covers frame_type 0-63.
type SameFrame struct {
	FrameType uint8
}

// SameLocals1StackItemFrame covers frame_type 64-127.
type SameLocals1StackItemFrame struct {
	FrameType  uint8
	StackEntry VerificationTypeInfo
}

// SameLocals1StackItemFrameExtended covers frame_type 247.
type SameLocals1StackItemFrameExtended struct {
	FrameType   uint8
	OffsetDelta uint16
	StackEntry  VerificationTypeInfo
}

// ChopFrame covers frame_type 248-250.
type ChopFrame struct {
	FrameType   uint8
	OffsetDelta uint16
}

// SameFrameExtended covers frame_type 251.
type SameFrameExtended struct {
	FrameType   uint8
	OffsetDelta uint16
}

// AppendFrame covers frame_type 252-254 and carries frame_type-251 locals.
type AppendFrame struct {
	FrameType   uint8
	OffsetDelta uint16
	Locals      []VerificationTypeInfo
}

// FullFrame covers frame_type 255.
type FullFrame struct {
	FrameType   uint8
	OffsetDelta uint16
	Locals      []VerificationTypeInfo
	Stack       []VerificationTypeInfo
}

func (*SameFrame) stackMapFrame()                         {}
func (*SameLocals1StackItemFrame) stackMapFrame()         {}
func (*SameLocals1StackItemFrameExtended) stackMapFrame() {}
func (*ChopFrame) stackMapFrame()                         {}
func (*SameFrameExtended) stackMapFrame()                 {}
func (*AppendFrame) stackMapFrame()                       {}
func (*FullFrame) stackMapFrame()                         {}

func readStackMapFrame(r *reader) (StackMapFrame, error) {
	frameType := r.readU1()
	if r.err != nil {
		return nil, r.err
	}

	switch {
	case frameType <= 63:
		return &SameFrame{FrameType: frameType}, nil

	case frameType <= 127:
		stackEntry, err := readVerificationTypeInfo(r)
		if err != nil {
			return nil, err
		}
		return &SameLocals1StackItemFrame{FrameType: frameType, StackEntry: stackEntry}, nil

	case frameType == 247:
		offsetDelta := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		stackEntry, err := readVerificationTypeInfo(r)
		if err != nil {
			return nil, err
		}
		return &SameLocals1StackItemFrameExtended{
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			StackEntry:  stackEntry,
		}, nil

	case frameType >= 248 && frameType <= 250:
		offsetDelta := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		return &ChopFrame{FrameType: frameType, OffsetDelta: offsetDelta}, nil

	case frameType == 251:
		offsetDelta := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		return &SameFrameExtended{FrameType: frameType, OffsetDelta: offsetDelta}, nil

	case frameType >= 252 && frameType <= 254:
		offsetDelta := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		numLocals := int(frameType) - 251
		locals := make([]VerificationTypeInfo, 0, numLocals)
		for i := 0; i < numLocals; i++ {
			local, err := readVerificationTypeInfo(r)
			if err != nil {
				return nil, err
			}
			locals = append(locals, local)
		}
		return &AppendFrame{FrameType: frameType, OffsetDelta: offsetDelta, Locals: locals}, nil

	case frameType == 255:
		offsetDelta := r.readU2()
		numLocals := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		locals := make([]VerificationTypeInfo, 0, numLocals)
		for i := uint16(0); i < numLocals; i++ {
			local, err := readVerificationTypeInfo(r)
			if err != nil {
				return nil, err
			}
			locals = append(locals, local)
		}
		numStack := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		stack := make([]VerificationTypeInfo, 0, numStack)
		for i := uint16(0); i < numStack; i++ {
			entry, err := readVerificationTypeInfo(r)
			if err != nil {
				return nil, err
			}
			stack = append(stack, entry)
		}
		return &FullFrame{FrameType: frameType, OffsetDelta: offsetDelta, Locals: locals, Stack: stack}, nil

	default:
		return nil, errUnknownTag(r.file, "StackMapFrame frame_type", frameType)
	}
}

func readVerificationTypeInfo(r *reader) (VerificationTypeInfo, error) {
	tag := r.readU1()
	if r.err != nil {
		return nil, r.err
	}

	switch tag {
	case 0:
		return &TopVariableInfo{}, nil
	case 1:
		return &IntegerVariableInfo{}, nil
	case 2:
		return &FloatVariableInfo{}, nil
	case 3:
		return &DoubleVariableInfo{}, nil
	case 4:
		return &LongVariableInfo{}, nil
	case 5:
		return &NullVariableInfo{}, nil
	case 6:
		return &UninitializedThisVariableInfo{}, nil
	case 7:
		cpoolIndex := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		return &ObjectVariableInfo{CpoolIndex: cpoolIndex}, nil
	case 8:
		offset := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		return &UninitializedVariableInfo{Offset: offset}, nil
	default:
		return nil, errUnknownTag(r.file, "VerificationTypeInfo tag", tag)
	}
}
