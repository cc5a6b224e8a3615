// Package endian provides the byte order engine used to read and write
// container indexes and macro dictionary headers.
//
// Every container shipped with the game stores its offsets little-endian, so
// Default is the engine used throughout dedit. The big-endian engine exists
// for hand-built fixtures and for tools that inspect console dumps.
//
//	engine := endian.Default()
//	first := engine.Uint16(buf[0:2])
//	buf = engine.AppendUint16(buf, uint16(offset))
//
// All engines are immutable and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary so a
// single value can both parse fixed-width fields and append them to a buffer.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Default returns the byte order of the game's container formats.
func Default() EndianEngine {
	return GetLittleEndianEngine()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// PutOffset writes v into b using width bytes (2 or 4).
// It returns false if width is unsupported, b is too short or v does not fit.
func PutOffset(engine EndianEngine, b []byte, width int, v uint32) bool {
	if len(b) < width {
		return false
	}

	switch width {
	case 2:
		if v > 0xFFFF {
			return false
		}
		engine.PutUint16(b, uint16(v))
	case 4:
		engine.PutUint32(b, v)
	default:
		return false
	}

	return true
}

// Offset reads a width-byte (2 or 4) unsigned value from b.
// It returns false if width is unsupported or b is too short.
func Offset(engine EndianEngine, b []byte, width int) (uint32, bool) {
	if len(b) < width {
		return 0, false
	}

	switch width {
	case 2:
		return uint32(engine.Uint16(b)), true
	case 4:
		return engine.Uint32(b), true
	default:
		return 0, false
	}
}
