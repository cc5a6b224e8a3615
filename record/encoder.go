package record

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/arloliu/dedit/charset"
	"github.com/arloliu/dedit/errs"
	"github.com/arloliu/dedit/format"
	"github.com/arloliu/dedit/internal/pool"
	"github.com/arloliu/dedit/section"
)

// Encoder turns DEdit text back into record bytes.
type Encoder struct {
	encoding format.Encoding
	cs       charset.Charset
	bufPool  *pool.BufferPool
}

// NewEncoder creates an encoder for the given record encoding.
// Game encoding requires a charset; passthrough encodings ignore it.
func NewEncoder(encoding format.Encoding, cs charset.Charset) (*Encoder, error) {
	if err := checkEncoding(encoding, cs); err != nil {
		return nil, err
	}

	return &Encoder{
		encoding: encoding,
		cs:       cs,
		bufPool:  pool.NewRecordBufferPool(),
	}, nil
}

// Encode converts one DEdit record to bytes.
//
// In game encoding the text is NFC normalised first and literal CR and LF
// characters are skipped. A {MACRO:s:n} token must exist in tbl when tbl is
// non-nil. Passthrough encodings strip a trailing EndMarker and write no end byte.
//
// Returns:
//   - []byte: Encoded record, owned by the caller
//   - error: ErrMalformedRecord for unknown tokens or operands out of range,
//     ErrUnencodableCharacter for characters the charset cannot express,
//     ErrUnresolvedMacroRef for references missing from tbl
func (e *Encoder) Encode(text string, tbl MacroLookup) ([]byte, error) {
	switch e.encoding {
	case format.EncodingUTF8:
		return []byte(TrimEnd(text)), nil
	case format.EncodingANSI:
		out, _, err := transform.Bytes(charmap.Windows1252.NewEncoder(), []byte(TrimEnd(text)))
		if err != nil {
			return nil, fmt.Errorf("%w: windows-1252: %v", errs.ErrUnencodableCharacter, err)
		}

		return out, nil
	}

	text = norm.NFC.String(text)

	buf := e.bufPool.Get(EncodeBufferSize(text))
	defer e.bufPool.Put(buf)

	if err := e.encodeGame(buf, text, tbl); err != nil {
		return nil, err
	}

	return bytes.Clone(buf.Bytes()), nil
}

func (e *Encoder) encodeGame(buf *pool.ByteBuffer, text string, tbl MacroLookup) error {
	for i := 0; i < len(text); {
		switch text[i] {
		case '\r', '\n':
			i++

		case '{':
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				return fmt.Errorf("%w: unterminated token at offset %d", errs.ErrMalformedRecord, i)
			}
			if err := encodeToken(buf, text[i+1:i+end], tbl); err != nil {
				return fmt.Errorf("token at offset %d: %w", i, err)
			}
			i += end + 1

		default:
			r, size := utf8.DecodeRuneInString(text[i:])
			if r == utf8.RuneError && size <= 1 {
				return fmt.Errorf("%w: invalid UTF-8 at offset %d", errs.ErrMalformedRecord, i)
			}

			code, ok := e.cs.EncodeChar(r)
			if !ok || int(code) >= charset.CodeSpace {
				return fmt.Errorf("%w: %q at offset %d (%s/%s)",
					errs.ErrUnencodableCharacter, r, i, e.cs.Lang(), e.cs.Game())
			}
			appendChar(buf, code)
			i += size
		}
	}

	return nil
}

// encodeToken writes the bytes of one token; body excludes the braces.
func encodeToken(buf *pool.ByteBuffer, body string, tbl MacroLookup) error {
	name, args, hasArgs := strings.Cut(body, ":")

	if op, ok := tokenOps[name]; ok {
		if _, bare := bareOps[op]; bare {
			if hasArgs {
				return fmt.Errorf("%w: {%s} takes no operand", errs.ErrMalformedRecord, body)
			}

			return buf.WriteByte(op)
		}

		n, err := parseOperand(body, args, maxOperand)
		if err != nil {
			return err
		}
		_ = buf.WriteByte(op)

		return buf.WriteByte(operandBase + byte(n)) //nolint:gosec
	}

	switch name {
	case tokMacro:
		sectArg, slotArg, ok := strings.Cut(args, ":")
		if !ok {
			return fmt.Errorf("%w: {%s} needs section and slot", errs.ErrMalformedRecord, body)
		}
		sect, err := parseOperand(body, sectArg, section.MacroDictMaxSections-1)
		if err != nil {
			return err
		}
		slot, err := parseOperand(body, slotArg, maxMacroRef)
		if err != nil {
			return err
		}
		if tbl != nil {
			if _, ok := tbl.Lookup(sect, slot); !ok {
				return fmt.Errorf("%w: (%d, %d)", errs.ErrUnresolvedMacroRef, sect, slot)
			}
		}

		_ = buf.WriteByte(opMacro + byte(sect))                  //nolint:gosec
		_ = buf.WriteByte(operandBase + byte(slot/codeBlock))    //nolint:gosec
		return buf.WriteByte(operandBase + byte(slot%codeBlock)) //nolint:gosec

	case tokRaw:
		if len(args) != 2 {
			return fmt.Errorf("%w: {%s} needs two hex digits", errs.ErrMalformedRecord, body)
		}
		b, err := strconv.ParseUint(args, 16, 8)
		if err != nil {
			return fmt.Errorf("%w: {%s}: %v", errs.ErrMalformedRecord, body, err)
		}

		return buf.WriteByte(byte(b))

	default:
		return fmt.Errorf("%w: unknown token {%s}", errs.ErrMalformedRecord, body)
	}
}

func parseOperand(body, arg string, maxValue int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || n > maxValue {
		return 0, fmt.Errorf("%w: {%s} operand %q outside [0, %d]", errs.ErrMalformedRecord, body, arg, maxValue)
	}

	return n, nil
}
