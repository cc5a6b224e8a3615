package record

import (
	"fmt"
	"strconv"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/arloliu/dedit/charset"
	"github.com/arloliu/dedit/errs"
	"github.com/arloliu/dedit/format"
	"github.com/arloliu/dedit/internal/pool"
)

// Decoder turns record bytes into DEdit text.
type Decoder struct {
	encoding format.Encoding
	cs       charset.Charset
	bufPool  *pool.BufferPool
}

// NewDecoder creates a decoder for the given record encoding.
// Game encoding requires a charset; passthrough encodings ignore it.
func NewDecoder(encoding format.Encoding, cs charset.Charset) (*Decoder, error) {
	if err := checkEncoding(encoding, cs); err != nil {
		return nil, err
	}

	return &Decoder{
		encoding: encoding,
		cs:       cs,
		bufPool:  pool.NewRecordBufferPool(),
	}, nil
}

// Decode converts one record to DEdit text.
//
// With a non-nil tbl every macro reference is replaced by its text; a
// reference missing from tbl fails with ErrUnresolvedMacroRef. With a nil tbl
// references render as {MACRO:s:n} tokens. Every end byte renders as
// EndMarker followed by LineBreak.
//
// Returns:
//   - string: Decoded text
//   - error: ErrTruncatedRead if an opcode misses its operands, ErrMalformedRecord
//     if an operand byte is below 0x30, ErrUnresolvedMacroRef as described above
func (d *Decoder) Decode(src []byte, tbl MacroLookup) (string, error) {
	switch d.encoding {
	case format.EncodingUTF8:
		return string(src) + EndMarker + LineBreak, nil
	case format.EncodingANSI:
		text, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), src)
		if err != nil {
			return "", fmt.Errorf("%w: windows-1252: %v", errs.ErrMalformedRecord, err)
		}

		return string(text) + EndMarker + LineBreak, nil
	}

	buf := d.bufPool.Get(DecodeBufferSize(src))
	defer d.bufPool.Put(buf)

	if err := d.decodeGame(buf, src, tbl); err != nil {
		return "", err
	}

	return string(buf.Bytes()), nil
}

func (d *Decoder) decodeGame(buf *pool.ByteBuffer, src []byte, tbl MacroLookup) error {
	for i := 0; i < len(src); {
		b := src[i]

		if name, ok := bareOps[b]; ok {
			writeToken(buf, name)
			if b == opEnd {
				_, _ = buf.WriteString(LineBreak)
			}
			i++

			continue
		}

		switch {
		case isOperandOp(b):
			a, err := operand(src, i+1)
			if err != nil {
				return err
			}
			writeToken(buf, operandOps[b], a)
			i += 2

		case isMacroOp(b):
			hi, err := operand(src, i+1)
			if err != nil {
				return err
			}
			lo, err := operand(src, i+2)
			if err != nil {
				return err
			}

			sect, slot := int(b-opMacro), hi*codeBlock+lo
			if tbl == nil {
				writeToken(buf, tokMacro, sect, slot)
			} else {
				text, ok := tbl.Lookup(sect, slot)
				if !ok {
					return fmt.Errorf("%w: (%d, %d) at byte %d", errs.ErrUnresolvedMacroRef, sect, slot, i)
				}
				_, _ = buf.WriteString(text)
			}
			i += 3

		case isLead(b):
			t, err := operand(src, i+1)
			if err != nil {
				return err
			}
			code := codeBlock + int(b-leadFirst)*codeBlock + t
			d.writeChar(buf, uint16(code), src[i:i+2]) //nolint:gosec
			i += 2

		case b >= operandBase:
			d.writeChar(buf, uint16(b-operandBase), src[i:i+1])
			i++

		default:
			writeRaw(buf, b)
			i++
		}
	}

	return nil
}

func (d *Decoder) writeChar(buf *pool.ByteBuffer, code uint16, raw []byte) {
	r, ok := d.cs.DecodeChar(code)
	if !ok {
		writeRaw(buf, raw...)
		return
	}
	_, _ = buf.WriteString(string(r))
}

// operand returns the value of the operand byte at pos.
func operand(src []byte, pos int) (int, error) {
	if pos >= len(src) {
		return 0, fmt.Errorf("%w: operand at byte %d past record end %d", errs.ErrTruncatedRead, pos, len(src))
	}
	if src[pos] < operandBase {
		return 0, fmt.Errorf("%w: operand 0x%02X at byte %d below 0x%02X", errs.ErrMalformedRecord, src[pos], pos, operandBase)
	}

	return int(src[pos] - operandBase), nil
}

func writeToken(buf *pool.ByteBuffer, name string, args ...int) {
	_ = buf.WriteByte('{')
	_, _ = buf.WriteString(name)
	for _, a := range args {
		_ = buf.WriteByte(':')
		buf.B = strconv.AppendInt(buf.B, int64(a), 10)
	}
	_ = buf.WriteByte('}')
}

func checkEncoding(encoding format.Encoding, cs charset.Charset) error {
	switch encoding {
	case format.EncodingUTF8, format.EncodingANSI:
		return nil
	case format.EncodingGame:
		if cs == nil {
			return fmt.Errorf("%w: game encoding needs a charset", errs.ErrUnsupportedCharset)
		}

		return nil
	default:
		return fmt.Errorf("%w: unknown encoding %d", errs.ErrInvalidOption, encoding)
	}
}
