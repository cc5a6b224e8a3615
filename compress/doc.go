// Package compress stores DEdit text files as compressed archives.
//
// Decompiled dialogue is highly repetitive text, so the CLI can write it as
// a .zst, .s2 or .lz4 archive and compile directly from such an archive.
// The codec is chosen from the file extension:
//
//	name.txt       format.CompressionNone
//	name.txt.zst   format.CompressionZstd
//	name.txt.s2    format.CompressionS2
//	name.txt.lz4   format.CompressionLZ4
//
// Every archive is a single self-contained frame or block holding the whole
// file; there is no streaming access.
//
// Codecs are stateless values and safe for concurrent use. The zstd and lz4
// codecs recycle their encoder state through sync.Pool.
package compress
