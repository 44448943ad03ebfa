package port

import (
	"fmt"
	"strings"
)

// Width is the number of bits in a Register.
const Width = 8

// Glyphs used by Pattern for set and clear bits.
const (
	GlyphSet   = '*'
	GlyphClear = '_'
)

// Register is an 8-bit port register.
type Register uint8

// mask returns the single-bit mask for bit, or 0 when bit is out of range.
func mask(bit int) Register {
	if bit < 0 || bit >= Width {
		return 0
	}
	return 1 << bit
}

// Set returns r with bit set (OR).
func (r Register) Set(bit int) Register {
	return r | mask(bit)
}

// Toggle returns r with bit flipped (XOR).
func (r Register) Toggle(bit int) Register {
	return r ^ mask(bit)
}

// Clear returns r with bit cleared (AND NOT).
func (r Register) Clear(bit int) Register {
	return r &^ mask(bit)
}

// IsSet reports whether bit is set.
func (r Register) IsSet(bit int) bool {
	m := mask(bit)
	return m != 0 && r&m != 0
}

// Invert returns the bitwise complement of r.
func (r Register) Invert() Register {
	return ^r
}

// String returns the register as upper-case hex without padding, e.g. "0xC".
func (r Register) String() string {
	return fmt.Sprintf("0x%X", uint8(r))
}

// Pattern renders the register MSB first, one glyph per bit, each glyph
// followed by a single space.
func (r Register) Pattern() string {
	var b strings.Builder
	b.Grow(Width * 2)
	for bit := Width - 1; bit >= 0; bit-- {
		if r.IsSet(bit) {
			b.WriteByte(GlyphSet)
		} else {
			b.WriteByte(GlyphClear)
		}
		b.WriteByte(' ')
	}
	return b.String()
}
