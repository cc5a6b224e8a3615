package format

import (
	"fmt"
	"strings"
)

type (
	IndexType       uint8
	Encoding        uint8
	LangID          uint8
	GameID          uint8
	CompressionType uint8
)

const (
	IndexI16X2 IndexType = 0x1 // IndexI16X2 stores one uint16 offset per 2-byte entry.
	IndexI16X4 IndexType = 0x2 // IndexI16X4 stores a uint16 offset and its uint16 mirror per 4-byte entry.
	IndexI32X4 IndexType = 0x3 // IndexI32X4 stores one uint32 offset per 4-byte entry.
	IndexI32X8 IndexType = 0x4 // IndexI32X8 stores a uint32 offset and its uint32 mirror per 8-byte entry.

	EncodingGame Encoding = 0x1 // EncodingGame decodes records through the game charset.
	EncodingUTF8 Encoding = 0x2 // EncodingUTF8 passes UTF-8 records through verbatim.
	EncodingANSI Encoding = 0x3 // EncodingANSI passes Windows-1252 records through, transcoded to UTF-8.

	LangUS LangID = 0x1
	LangDE LangID = 0x2
	LangFR LangID = 0x3
	LangES LangID = 0x4
	LangIT LangID = 0x5
	LangJP LangID = 0x6

	GameFFX  GameID = 0x1
	GameFFX2 GameID = 0x2

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// EntryWidth returns the number of bytes one index entry occupies, or 0 for an unknown type.
func (t IndexType) EntryWidth() int {
	switch t {
	case IndexI16X2:
		return 2
	case IndexI16X4, IndexI32X4:
		return 4
	case IndexI32X8:
		return 8
	default:
		return 0
	}
}

// OffsetWidth returns the number of bytes of the offset value inside one entry.
func (t IndexType) OffsetWidth() int {
	switch t {
	case IndexI16X2, IndexI16X4:
		return 2
	case IndexI32X4, IndexI32X8:
		return 4
	default:
		return 0
	}
}

// Mirrored reports whether each entry carries a second copy of its offset.
func (t IndexType) Mirrored() bool {
	return t == IndexI16X4 || t == IndexI32X8
}

func (t IndexType) String() string {
	switch t {
	case IndexI16X2:
		return "i16x2"
	case IndexI16X4:
		return "i16x4"
	case IndexI32X4:
		return "i32x4"
	case IndexI32X8:
		return "i32x8"
	default:
		return "Unknown"
	}
}

func (e Encoding) String() string {
	switch e {
	case EncodingGame:
		return "game"
	case EncodingUTF8:
		return "utf8"
	case EncodingANSI:
		return "ansi"
	default:
		return "Unknown"
	}
}

// Passthrough reports whether records are copied rather than mapped through a game charset.
func (e Encoding) Passthrough() bool {
	return e == EncodingUTF8 || e == EncodingANSI
}

func (l LangID) String() string {
	switch l {
	case LangUS:
		return "us"
	case LangDE:
		return "de"
	case LangFR:
		return "fr"
	case LangES:
		return "es"
	case LangIT:
		return "it"
	case LangJP:
		return "jp"
	default:
		return "Unknown"
	}
}

func (g GameID) String() string {
	switch g {
	case GameFFX:
		return "ffx"
	case GameFFX2:
		return "ffx2"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file name suffix used for DEdit text archives of this type.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseIndexType parses an index type name such as "i16x2" or "I16_X2".
func ParseIndexType(s string) (IndexType, error) {
	switch normalize(s) {
	case "i16x2":
		return IndexI16X2, nil
	case "i16x4":
		return IndexI16X4, nil
	case "i32x4":
		return IndexI32X4, nil
	case "i32x8":
		return IndexI32X8, nil
	default:
		return 0, fmt.Errorf("unknown index type %q", s)
	}
}

// ParseEncoding parses a record encoding name.
func ParseEncoding(s string) (Encoding, error) {
	switch normalize(s) {
	case "game":
		return EncodingGame, nil
	case "utf8":
		return EncodingUTF8, nil
	case "ansi", "cp1252", "windows1252":
		return EncodingANSI, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q", s)
	}
}

// ParseLang parses a language identifier.
func ParseLang(s string) (LangID, error) {
	switch normalize(s) {
	case "us", "en":
		return LangUS, nil
	case "de":
		return LangDE, nil
	case "fr":
		return LangFR, nil
	case "es", "sp":
		return LangES, nil
	case "it":
		return LangIT, nil
	case "jp", "ja":
		return LangJP, nil
	default:
		return 0, fmt.Errorf("unknown language %q", s)
	}
}

// ParseGame parses a game identifier.
func ParseGame(s string) (GameID, error) {
	switch normalize(s) {
	case "ffx":
		return GameFFX, nil
	case "ffx2":
		return GameFFX2, nil
	default:
		return 0, fmt.Errorf("unknown game %q", s)
	}
}

// ParseCompression parses an archive compression name.
func ParseCompression(s string) (CompressionType, error) {
	switch normalize(s) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "").Replace(s)
}
