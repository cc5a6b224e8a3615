// Package record converts single dialogue records between game bytes and
// DEdit text.
//
// A record in game encoding is a run of opcodes and character bytes (see
// the table in opcode.go). Passthrough encodings copy record bytes as text
// and only add or strip the end-of-record marker.
//
// Decoders and encoders own a buffer pool scoped to the operation that
// created them; they are safe for sequential use only.
package record

import (
	"strings"
)

const (
	// EndMarker terminates every record in DEdit text.
	EndMarker = "{END}"
	// LineBreak follows every EndMarker produced by a Decoder.
	LineBreak = "\r\n"
)

// MacroLookup resolves macro references to their replacement text.
// *macro.Table implements it.
type MacroLookup interface {
	Lookup(section, slot int) (string, bool)
}

// SplitRecords splits DEdit text into logical records.
//
// Each record ends with EndMarker inclusive. The single line break following a
// marker, CRLF or LF, belongs to the layout and is dropped. Text after the last
// marker becomes a final record unless it is blank.
func SplitRecords(text string) []string {
	var records []string
	for {
		idx := strings.Index(text, EndMarker)
		if idx < 0 {
			break
		}

		cut := idx + len(EndMarker)
		records = append(records, text[:cut])
		text = text[cut:]

		switch {
		case strings.HasPrefix(text, "\r\n"):
			text = text[2:]
		case strings.HasPrefix(text, "\n"):
			text = text[1:]
		}
	}

	if strings.TrimSpace(text) != "" {
		records = append(records, text)
	}

	return records
}

// TrimEnd strips a trailing EndMarker from a record.
func TrimEnd(record string) string {
	return strings.TrimSuffix(record, EndMarker)
}

// DecodeBufferSize estimates the text size produced by decoding src.
func DecodeBufferSize(src []byte) int {
	// Most bytes decode to one or two UTF-8 bytes; tokens are rarer but longer.
	return len(src)*3 + len(EndMarker) + len(LineBreak)
}

// EncodeBufferSize estimates the number of bytes produced by encoding text.
func EncodeBufferSize(text string) int {
	return len(text) + 1
}
