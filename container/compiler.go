package container

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/arloliu/dedit/internal/hash"
	"github.com/arloliu/dedit/macro"
	"github.com/arloliu/dedit/record"
	"github.com/arloliu/dedit/section"
)

// Compiler converts DEdit text to containers.
type Compiler struct {
	cfg *Config
	enc *record.Encoder
}

// NewCompiler creates a compiler. Without options it writes I16_X4
// containers in game encoding with the us/ffx charset.
func NewCompiler(opts ...Option) (*Compiler, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	enc, err := record.NewEncoder(cfg.Encoding, cfg.Charset)
	if err != nil {
		return nil, err
	}

	return &Compiler{cfg: cfg, enc: enc}, nil
}

// Compile converts DEdit text into a container.
//
// The text is split into records, each record is encoded, and the index is
// written for the encoded lengths. The container is the index followed by the
// records in order. The segment setting does not apply: compiled containers
// always start at offset 0.
func (c *Compiler) Compile(text string) ([]byte, error) {
	texts := record.SplitRecords(text)

	tbl := c.cfg.lookup()
	records := make([][]byte, 0, len(texts))
	size := 0
	for i, t := range texts {
		rec, err := c.enc.Encode(t, tbl)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
		size += len(rec)
	}

	idx, err := section.WriteIndices(records, c.cfg.IndexType)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(idx)+size)
	out = append(out, idx...)
	for _, rec := range records {
		out = append(out, rec...)
	}

	c.cfg.Logger.WithFields(c.cfg.fields()).WithFields(log.Fields{
		"records":     len(records),
		"bytes":       len(out),
		"fingerprint": hash.Format(hash.Fingerprint(out)),
	}).Debug("container compiled")

	return out, nil
}

// CompileWithDictionary loads a fresh macro table from dict and compiles text
// against it. An invalid dictionary fails the whole compile.
func CompileWithDictionary(text string, dict []byte, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	tbl, err := macro.Build(dict, cfg.Charset,
		macro.WithSectionCount(cfg.SectionCount),
		macro.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("macro dictionary: %w", err)
	}

	opts = append(opts[:len(opts):len(opts)], WithMacroTable(tbl))
	c, err := NewCompiler(opts...)
	if err != nil {
		return nil, err
	}

	return c.Compile(text)
}
