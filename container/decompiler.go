// Package container compiles and decompiles whole dialogue containers.
//
// A container is an index region followed by the records it addresses. The
// Decompiler reads the whole index before touching any record and renders one
// DEdit block per record in index order. The Compiler splits DEdit text into
// records, encodes them and writes the index for the resulting byte lengths.
package container

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/arloliu/dedit/errs"
	"github.com/arloliu/dedit/internal/hash"
	"github.com/arloliu/dedit/record"
	"github.com/arloliu/dedit/section"
)

// Decompiler converts containers to DEdit text.
type Decompiler struct {
	cfg *Config
	dec *record.Decoder
}

// NewDecompiler creates a decompiler. Without options it reads I16_X4
// containers in game encoding with the us/ffx charset.
func NewDecompiler(opts ...Option) (*Decompiler, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	dec, err := record.NewDecoder(cfg.Encoding, cfg.Charset)
	if err != nil {
		return nil, err
	}

	return &Decompiler{cfg: cfg, dec: dec}, nil
}

// Decompile converts buf to DEdit text.
//
// A container whose index declares no records decompiles to an empty string.
//
// Returns:
//   - string: One DEdit block per record, in index order
//   - error: ErrTruncatedRead for an empty buffer, index errors from the
//     section package, or record decoding errors annotated with the record number
func (d *Decompiler) Decompile(buf []byte) (string, error) {
	if len(buf) == 0 {
		return "", fmt.Errorf("%w: empty container", errs.ErrTruncatedRead)
	}

	idx, err := section.ReadIndexTable(buf, d.cfg.Segment.Start, d.cfg.IndexType)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(record.DecodeBufferSize(buf))

	tbl := d.cfg.lookup()
	for i := 0; i < idx.Count(); i++ {
		start, end := idx.Range(i)
		text, err := d.dec.Decode(buf[start:end], tbl)
		if err != nil {
			return "", fmt.Errorf("record %d at 0x%X: %w", i, start, err)
		}
		sb.WriteString(text)
	}

	d.cfg.Logger.WithFields(d.cfg.fields()).WithFields(log.Fields{
		"records":     idx.Count(),
		"bytes":       len(buf),
		"fingerprint": hash.Format(hash.Fingerprint(buf)),
	}).Debug("container decompiled")

	return sb.String(), nil
}
