package container

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/arloliu/dedit/errs"
	"github.com/arloliu/dedit/internal/hash"
	"github.com/arloliu/dedit/record"
)

// Report describes the outcome of Verify.
type Report struct {
	// Records is the number of records in the decompiled text.
	Records int
	// Original and Rebuilt are the xxHash64 fingerprints of both containers.
	Original uint64
	Rebuilt  uint64
	// Size and RebuiltSize are the container lengths in bytes.
	Size        int
	RebuiltSize int
	// FirstDiff is the first differing byte offset, or -1 when both match.
	FirstDiff int
}

// Match reports whether the rebuilt container equals the original.
func (r Report) Match() bool {
	return r.FirstDiff < 0
}

// Verify decompiles buf, compiles the result again and compares both containers.
//
// Macro references stay tokens during the round trip; a configured macro table
// only validates them on the compile side. A mismatch is reported through the
// Report, not as an error.
func Verify(buf []byte, opts ...Option) (Report, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return Report{}, err
	}
	if cfg.Segment.Start != 0 {
		return Report{}, fmt.Errorf("%w: verify needs the index at offset 0, got %s", errs.ErrInvalidSegment, cfg.Segment)
	}

	d, err := NewDecompiler(append(opts[:len(opts):len(opts)], WithMacroTable(nil))...)
	if err != nil {
		return Report{}, err
	}
	text, err := d.Decompile(buf)
	if err != nil {
		return Report{}, fmt.Errorf("decompile: %w", err)
	}

	c, err := NewCompiler(opts...)
	if err != nil {
		return Report{}, err
	}
	rebuilt, err := c.Compile(text)
	if err != nil {
		return Report{}, fmt.Errorf("compile: %w", err)
	}

	report := Report{
		Records:     len(record.SplitRecords(text)),
		Original:    hash.Fingerprint(buf),
		Rebuilt:     hash.Fingerprint(rebuilt),
		Size:        len(buf),
		RebuiltSize: len(rebuilt),
		FirstDiff:   firstDiff(buf, rebuilt),
	}

	cfg.Logger.WithFields(log.Fields{
		"records":  report.Records,
		"original": hash.Format(report.Original),
		"rebuilt":  hash.Format(report.Rebuilt),
		"match":    report.Match(),
	}).Debug("container verified")

	return report, nil
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}

	return -1
}
