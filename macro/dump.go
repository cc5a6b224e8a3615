package macro

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/dedit/charset"
	"github.com/arloliu/dedit/errs"
	"github.com/arloliu/dedit/format"
	"github.com/arloliu/dedit/record"
	"github.com/arloliu/dedit/section"
)

const (
	sectionOpen  = "--- SECTION "
	sectionClose = "--- END SECTION "
	markerSuffix = " ---"
)

// Decompile renders every present section of dict as an editable text dump.
//
// Each section becomes a block opened by "--- SECTION i ---" and closed by
// "--- END SECTION i ---", holding the section's records in DEdit syntax.
// Records keep their end markers and nested macro references stay as tokens.
func Decompile(dict []byte, cs charset.Charset, opts ...Option) (string, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return "", err
	}

	dec, err := record.NewDecoder(format.EncodingGame, cs)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	err = walkSections(dict, cfg, func(sect int, idx section.IndexTable) error {
		fmt.Fprintf(&sb, "%s%d%s%s", sectionOpen, sect, markerSuffix, record.LineBreak)
		for k := 0; k < idx.Count(); k++ {
			start, end := idx.Range(k)
			text, err := dec.Decode(dict[start:end], nil)
			if err != nil {
				return fmt.Errorf("slot %d: %w", k, err)
			}
			sb.WriteString(text)
		}
		fmt.Fprintf(&sb, "%s%d%s%s", sectionClose, sect, markerSuffix, record.LineBreak)

		return nil
	})
	if err != nil {
		return "", err
	}

	return sb.String(), nil
}

// Compile builds a macro dictionary from a text dump produced by Decompile.
//
// Sections are laid out in ascending section order directly after the header,
// so a dictionary written in that order survives Decompile and Compile
// byte for byte.
//
// Returns:
//   - []byte: Complete dictionary
//   - error: ErrMalformedMacroDict for a malformed dump, record encoding errors,
//     or ErrIndexOverflow when a section outgrows its 16-bit index
func Compile(text string, cs charset.Charset, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	enc, err := record.NewEncoder(format.EncodingGame, cs)
	if err != nil {
		return nil, err
	}

	bodies, err := parseDump(text, cfg.SectionCount)
	if err != nil {
		return nil, err
	}
	if len(bodies) == 0 {
		return nil, fmt.Errorf("%w: dump holds no sections", errs.ErrMalformedMacroDict)
	}

	hdr, err := section.NewMacroDictHeader(cfg.SectionCount)
	if err != nil {
		return nil, err
	}

	var payload []byte
	for sect := 0; sect < cfg.SectionCount; sect++ {
		body, ok := bodies[sect]
		if !ok {
			continue
		}

		data, err := compileSection(enc, body)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", sect, err)
		}

		hdr.SectionOffsets[sect] = uint32(section.MacroDictHeaderSize + len(payload)) //nolint:gosec
		payload = append(payload, data...)
		cfg.Logger.WithField("section", sect).Debug("macro section compiled")
	}

	return append(hdr.Bytes(), payload...), nil
}

func compileSection(enc *record.Encoder, body string) ([]byte, error) {
	texts := record.SplitRecords(body)

	records := make([][]byte, 0, len(texts))
	for k, text := range texts {
		rec, err := enc.Encode(text, nil)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", k, err)
		}
		records = append(records, rec)
	}

	idx, err := section.WriteIndices(records, section.MacroSectionIndexType)
	if err != nil {
		return nil, err
	}

	out := idx
	for _, rec := range records {
		out = append(out, rec...)
	}

	return out, nil
}

// parseDump splits a dump into section bodies keyed by section index.
func parseDump(text string, sectionCount int) (map[int]string, error) {
	bodies := make(map[int]string)

	current := -1
	var body []string
	for n, line := range strings.Split(text, "\n") {
		marker := strings.TrimRight(line, "\r")

		if sect, ok := parseMarker(marker, sectionOpen); ok {
			if current >= 0 {
				return nil, fmt.Errorf("%w: line %d: section %d opened inside section %d",
					errs.ErrMalformedMacroDict, n+1, sect, current)
			}
			if sect >= sectionCount {
				return nil, fmt.Errorf("%w: line %d: section %d outside %d sections",
					errs.ErrMalformedMacroDict, n+1, sect, sectionCount)
			}
			if _, dup := bodies[sect]; dup {
				return nil, fmt.Errorf("%w: line %d: section %d repeated", errs.ErrMalformedMacroDict, n+1, sect)
			}
			current, body = sect, body[:0]

			continue
		}

		if sect, ok := parseMarker(marker, sectionClose); ok {
			if sect != current {
				return nil, fmt.Errorf("%w: line %d: end of section %d without matching start",
					errs.ErrMalformedMacroDict, n+1, sect)
			}
			bodies[sect] = strings.Join(body, "\n")
			current = -1

			continue
		}

		if current >= 0 {
			body = append(body, line)
		} else if strings.TrimSpace(line) != "" {
			return nil, fmt.Errorf("%w: line %d: text outside any section", errs.ErrMalformedMacroDict, n+1)
		}
	}

	if current >= 0 {
		return nil, fmt.Errorf("%w: section %d is not closed", errs.ErrMalformedMacroDict, current)
	}

	return bodies, nil
}

func parseMarker(line, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, markerSuffix)
	if !ok {
		return 0, false
	}

	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}
