// Package macro reads, writes and dumps macro dictionaries.
//
// A macro dictionary is a 64-byte header of section offsets followed by the
// sections themselves, each an I16_X2 container whose records are the macro
// texts of that section. Build turns a dictionary into the Table consumed by
// the record decoder; Decompile and Compile convert between a dictionary and
// its editable text dump.
package macro

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/arloliu/dedit/charset"
	"github.com/arloliu/dedit/errs"
	"github.com/arloliu/dedit/format"
	"github.com/arloliu/dedit/record"
	"github.com/arloliu/dedit/section"
)

// Build parses a macro dictionary into a fresh Table.
//
// Every present section is bounded by the next present offset, or by the end
// of dict for the last one. Slots past the configured section count are not
// offsets in that format generation and never bound a section, so the last
// honoured section runs to the end of dict. Each record is decoded without macro expansion and
// cut at its first end marker before it is stored under (section, record index).
//
// Returns:
//   - *Table: Table with one entry per record of every present section
//   - error: ErrMalformedMacroDict for a bad header, ErrUnresolvableSection when
//     a section has no usable closing boundary, or any record decoding error
func Build(dict []byte, cs charset.Charset, opts ...Option) (*Table, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	dec, err := record.NewDecoder(format.EncodingGame, cs)
	if err != nil {
		return nil, err
	}

	tbl := NewTable()
	err = walkSections(dict, cfg, func(sect int, idx section.IndexTable) error {
		for k := 0; k < idx.Count(); k++ {
			start, end := idx.Range(k)
			text, err := dec.Decode(dict[start:end], nil)
			if err != nil {
				return fmt.Errorf("slot %d: %w", k, err)
			}
			text, _, _ = strings.Cut(text, record.EndMarker)
			tbl.Set(sect, k, text)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	cfg.Logger.WithFields(log.Fields{"sections": len(tbl.Sections()), "macros": tbl.Len()}).Debug("macro table built")

	return tbl, nil
}

// walkSections parses the header of dict and calls fn with the absolute index
// table of every present section, in header order.
func walkSections(dict []byte, cfg *Config, fn func(sect int, idx section.IndexTable) error) error {
	hdr := section.MacroDictHeader{SectionCount: cfg.SectionCount}
	if err := hdr.Parse(dict); err != nil {
		return err
	}
	if err := hdr.Validate(len(dict)); err != nil {
		return err
	}

	bounds := hdr.Boundaries(len(dict))
	for _, i := range hdr.Present() {
		base := bounds[i]
		end, err := section.NextPresent(bounds[i+1:])
		if err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
		if end < base {
			return fmt.Errorf("%w: section %d starts at 0x%X but the next section starts at 0x%X",
				errs.ErrUnresolvableSection, i, base, end)
		}

		idx, err := section.ReadSectionIndex(dict, int(base), int(end))
		if err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
		if err := fn(i, idx); err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}

		cfg.Logger.WithFields(log.Fields{"section": i, "offset": base, "slots": idx.Count()}).Debug("macro section read")
	}

	return nil
}
