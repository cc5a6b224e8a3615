package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/arloliu/dedit/compress"
	"github.com/arloliu/dedit/format"
)

const textExt = ".txt"

// fileJob processes one input file and returns the fields to log on success.
type fileJob func(path string, logger log.FieldLogger) (log.Fields, error)

// runBatch runs job for every input. A failed file is logged and skipped;
// the returned error reports how many files failed.
func (g *GlobalOptions) runBatch(op string, job fileJob) error {
	if len(g.Inputs) == 0 {
		return errors.New("no input files, use -i")
	}

	start := time.Now()
	failed := 0
	for _, in := range g.Inputs {
		entry := g.logger.WithFields(log.Fields{"op": op, "file": in})

		fields, err := job(in, entry)
		if err != nil {
			entry.WithError(err).Error("failed")
			failed++

			continue
		}
		entry.WithFields(fields).Info("done")
	}

	g.logger.WithFields(log.Fields{
		"op":      op,
		"files":   len(g.Inputs),
		"failed":  failed,
		"elapsed": time.Since(start).Round(time.Millisecond).String(),
	}).Info("batch finished")

	if failed > 0 {
		return errors.Errorf("%s: %d of %d files failed", op, failed, len(g.Inputs))
	}

	return nil
}

// outputPath places name in the output directory, or next to the input.
// It refuses a path that resolves to the input itself.
func (g *GlobalOptions) outputPath(in, name string) (string, error) {
	dir := g.Output
	if dir == "" {
		dir = filepath.Dir(in)
	}
	out := filepath.Join(dir, name)

	if name == "" || sameFile(in, out) {
		return "", errors.Errorf("output for %s would overwrite the input, use -o", in)
	}

	return out, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	if absA == absB {
		return true
	}

	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)

	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

// textOutputName is the name of the DEdit text written for input in.
func (g *GlobalOptions) textOutputName(in string) string {
	return compress.ArchiveName(filepath.Base(in)+textExt, g.compression)
}

// binaryOutputName strips the archive extension and then the last remaining
// extension from a text file name, so "dialog.bin.txt.zst" becomes "dialog.bin"
// and "macrodic.dump" becomes "macrodic". A name without extension maps to itself.
func binaryOutputName(in string) string {
	_, base := compress.TypeOf(filepath.Base(in))

	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	return data, nil
}

// readText reads a DEdit text file, decompressing it by extension.
func readText(path string) (string, error) {
	raw, err := readFile(path)
	if err != nil {
		return "", err
	}

	ct, _ := compress.TypeOf(path)
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return "", err
	}
	data, err := codec.Decompress(raw)
	if err != nil {
		return "", errors.Wrapf(err, "decompress %s", path)
	}

	return string(data), nil
}

// writeText writes a DEdit text file with the configured compression.
func (g *GlobalOptions) writeText(path, text string) (int, error) {
	codec, err := compress.GetCodec(g.compression)
	if err != nil {
		return 0, err
	}
	data, err := codec.Compress([]byte(text))
	if err != nil {
		return 0, errors.Wrapf(err, "compress %s", path)
	}
	if err := writeFile(path, data); err != nil {
		return 0, err
	}

	return len(data), nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return errors.Wrapf(err, "write %s", path)
	}

	return nil
}

func compressionField(ct format.CompressionType, original, written int) log.Fields {
	if ct == format.CompressionNone {
		return log.Fields{}
	}

	return log.Fields{"compression": ct, "ratio": compress.Ratio(original, written)}
}
