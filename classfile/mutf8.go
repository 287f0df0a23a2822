package classfile

import (
	"fmt"
	"unicode/utf8"
)

// decodeModifiedUTF8 converts the class file's modified UTF-8 encoding to a
// Go string. The encoding is ASCII-compatible but never emits a zero byte or
// a byte in 0xF0-0xFF, and represents supplementary-plane characters as a
// six-byte sequence instead of standard UTF-8's four-byte form.
//
// See https://docs.oracle.com/javase/specs/jvms/se22/html/jvms-4.html#jvms-4.4.7
func decodeModifiedUTF8(b []byte) (string, error) {
	runes := make([]rune, 0, len(b))
	i := 0
	for i < len(b) {
		b1 := b[i]
		if b1 == 0 || b1 >= 0xF0 {
			return "", &Utf8Error{Msg: fmt.Sprintf("byte at offset %d is zero or in the range 0xF0-0xFF", i)}
		}
		if b1 <= 0x7F {
			runes = append(runes, rune(b1))
			i++
			continue
		}

		start := i
		if i+1 >= len(b) {
			return "", &Utf8Error{Msg: fmt.Sprintf("byte %#x cannot be the last byte", b1)}
		}
		i++
		b2 := b[i]

		var cp rune
		if b1&0b1110_0000 == 0b1100_0000 {
			cp = rune(b1&0x1F)<<6 | rune(b2&0x3F)
		} else {
			if i+1 >= len(b) {
				return "", &Utf8Error{Msg: fmt.Sprintf("bytes %#x and %#x cannot be the last bytes", b1, b2)}
			}
			i++
			b3 := b[i]
			if b1&0b1111_0000 == 0b1110_0000 {
				cp = rune(b1&0x0F)<<12 | rune(b2&0x3F)<<6 | rune(b3&0x3F)
			} else {
				if i+3 >= len(b) {
					return "", &Utf8Error{Msg: fmt.Sprintf("3 more bytes expected after %#x, %#x and %#x, found %d", b1, b2, b3, len(b)-i-1)}
				}
				// Six-byte supplementary form. The fourth byte carries no
				// codepoint bits and is not validated.
				b5 := b[i+2]
				b6 := b[i+3]
				i += 3
				cp = 0x10000 + rune(b2&0x0F)<<16 + rune(b3&0x3F)<<10 + rune(b5&0x0F)<<6 + rune(b6&0x3F)
			}
		}

		if !utf8.ValidRune(cp) {
			return "", &Utf8Error{Msg: fmt.Sprintf("invalid codepoint %#x at offset %d", cp, start)}
		}
		runes = append(runes, cp)
		i++
	}
	return string(runes), nil
}
