package container

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/arloliu/dedit/charset"
	"github.com/arloliu/dedit/errs"
	"github.com/arloliu/dedit/format"
	"github.com/arloliu/dedit/internal/logging"
	"github.com/arloliu/dedit/internal/options"
	"github.com/arloliu/dedit/macro"
	"github.com/arloliu/dedit/record"
	"github.com/arloliu/dedit/section"
)

// Segment selects where the index region of a container begins.
//
// Offsets stored in the index stay absolute within the buffer. End is
// validated but has no effect on decoding.
type Segment struct {
	Start int
	End   int
}

// Validate checks that the segment bounds are non-negative and ordered.
func (s Segment) Validate() error {
	if s.Start < 0 || s.End < 0 {
		return fmt.Errorf("%w: negative bound in %s", errs.ErrInvalidSegment, s)
	}
	if s.End != 0 && s.End < s.Start {
		return fmt.Errorf("%w: end before start in %s", errs.ErrInvalidSegment, s)
	}

	return nil
}

func (s Segment) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

// ParseSegment parses "START:END" where each bound is decimal or 0x-prefixed hex.
// An empty string yields the zero segment.
func ParseSegment(s string) (Segment, error) {
	if strings.TrimSpace(s) == "" {
		return Segment{}, nil
	}

	startArg, endArg, ok := strings.Cut(s, ":")
	if !ok {
		return Segment{}, fmt.Errorf("%w: %q is not START:END", errs.ErrInvalidSegment, s)
	}

	start, err := parseBound(startArg)
	if err != nil {
		return Segment{}, fmt.Errorf("%w: start %q: %v", errs.ErrInvalidSegment, startArg, err)
	}
	end, err := parseBound(endArg)
	if err != nil {
		return Segment{}, fmt.Errorf("%w: end %q: %v", errs.ErrInvalidSegment, endArg, err)
	}

	seg := Segment{Start: start, End: end}

	return seg, seg.Validate()
}

func parseBound(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	// base 0 would read a leading zero as octal
	base := 10
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		s, base = rest, 16
	}

	n, err := strconv.ParseInt(s, base, 32)
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

// Config holds the settings shared by Decompiler, Compiler and Verify.
type Config struct {
	// IndexType is the index layout of the container.
	IndexType format.IndexType
	// Encoding selects game records or a passthrough encoding.
	Encoding format.Encoding
	// Charset maps characters in game encoding and in macro dictionaries.
	// Defaults to us/ffx for every encoding.
	Charset charset.Charset
	// Macros expands references on decompile and validates them on compile.
	Macros *macro.Table
	// Segment locates the index region for decompile.
	Segment Segment
	// SectionCount is used when a macro dictionary is loaded on the fly.
	SectionCount int
	// Logger receives debug entries per operation.
	Logger log.FieldLogger
}

// Option configures container operations.
type Option = options.Option[*Config]

// WithIndexType sets the index layout.
func WithIndexType(it format.IndexType) Option {
	return options.New(func(c *Config) error {
		if it.EntryWidth() == 0 {
			return fmt.Errorf("%w: index type %d", errs.ErrInvalidOption, it)
		}
		c.IndexType = it

		return nil
	})
}

// WithEncoding sets the record encoding.
func WithEncoding(enc format.Encoding) Option {
	return options.New(func(c *Config) error {
		switch enc {
		case format.EncodingGame, format.EncodingUTF8, format.EncodingANSI:
			c.Encoding = enc
			return nil
		default:
			return fmt.Errorf("%w: encoding %d", errs.ErrInvalidOption, enc)
		}
	})
}

// WithCharset sets the character set used in game encoding.
func WithCharset(cs charset.Charset) Option {
	return options.NoError(func(c *Config) {
		c.Charset = cs
	})
}

// WithMacroTable sets the macro table. Nil disables expansion and validation.
func WithMacroTable(tbl *macro.Table) Option {
	return options.NoError(func(c *Config) {
		c.Macros = tbl
	})
}

// WithSegment sets the segment that locates the index region.
func WithSegment(seg Segment) Option {
	return options.New(func(c *Config) error {
		if err := seg.Validate(); err != nil {
			return err
		}
		c.Segment = seg

		return nil
	})
}

// WithSectionCount sets the macro dictionary generation used by CompileWithDictionary.
func WithSectionCount(n int) Option {
	return options.New(func(c *Config) error {
		if !section.ValidSectionCount(n) {
			return fmt.Errorf("%w: section count %d", errs.ErrInvalidOption, n)
		}
		c.SectionCount = n

		return nil
	})
}

// WithLogger sets the logger for debug output.
func WithLogger(l log.FieldLogger) Option {
	return options.NoError(func(c *Config) {
		c.Logger = logging.OrDiscard(l)
	})
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		IndexType:    format.IndexI16X4,
		Encoding:     format.EncodingGame,
		SectionCount: section.SectionCountGen3,
		Logger:       logging.Discard(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	// passthrough records skip the charset, but a macro dictionary is always game encoded
	if cfg.Charset == nil {
		cs, err := charset.Lookup(format.LangUS, format.GameFFX)
		if err != nil {
			return nil, err
		}
		cfg.Charset = cs
	}

	return cfg, nil
}

// lookup returns the macro table as a MacroLookup, nil when no table is set.
func (c *Config) lookup() record.MacroLookup {
	if c.Macros == nil {
		return nil
	}

	return c.Macros
}

func (c *Config) fields() log.Fields {
	f := log.Fields{
		"index_type": c.IndexType,
		"encoding":   c.Encoding,
	}
	if c.Charset != nil {
		f["charset"] = c.Charset.Lang().String() + "/" + c.Charset.Game().String()
	}

	return f
}
