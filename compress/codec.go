package compress

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/dedit/format"
)

// Compressor compresses a whole DEdit text file.
type Compressor interface {
	// Compress returns a newly allocated archive of data.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a whole DEdit text file.
type Decompressor interface {
	// Decompress returns the original bytes of an archive. It fails on
	// corrupted input or input written by another codec.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one archive format.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in codec for a compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// TypeOf detects the compression type of path from its extension.
//
// Returns:
//   - format.CompressionType: CompressionNone when no archive extension matches
//   - string: path without the archive extension
func TypeOf(path string) (format.CompressionType, string) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		if ext == ct.Extension() {
			return ct, path[:len(path)-len(ext)]
		}
	}

	return format.CompressionNone, path
}

// ArchiveName appends the archive extension of compressionType to name.
func ArchiveName(name string, compressionType format.CompressionType) string {
	return name + compressionType.Extension()
}

// Ratio returns compressed size divided by original size, or 0 for empty input.
func Ratio(original, compressed int) float64 {
	if original == 0 {
		return 0
	}

	return float64(compressed) / float64(original)
}
