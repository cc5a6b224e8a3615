package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/arloliu/dedit/charset"
	"github.com/arloliu/dedit/container"
	"github.com/arloliu/dedit/format"
	"github.com/arloliu/dedit/macro"
	"github.com/arloliu/dedit/section"
)

// GlobalOptions holds the flags shared by every command.
type GlobalOptions struct {
	Inputs    []string
	Output    string
	Segment   string
	Encoding  string
	Lang      string
	IndexType string
	Game      string
	MacroDict string
	Sections  int
	Compress  string
	LogLevel  string

	// resolved from the flags above before a command runs
	segment     container.Segment
	encoding    format.Encoding
	indexType   format.IndexType
	compression format.CompressionType
	charset     charset.Charset
	logger      *log.Logger
}

func (g *GlobalOptions) addFlags(f *pflag.FlagSet) {
	f.StringArrayVarP(&g.Inputs, "input", "i", nil, "input `file` (repeatable)")
	f.StringVarP(&g.Output, "output", "o", "", "existing output `dir` (default: next to each input)")
	f.StringVarP(&g.Segment, "segment", "s", "0:0", "`START:END` of the index region, decimal or 0x hex; END is ignored")
	f.StringVarP(&g.Encoding, "encoding", "e", "game", "record encoding: game, utf8 or ansi")
	f.StringVarP(&g.Lang, "lang", "l", envOr("DEDIT_LANG", "us"), "charset language: us, de, fr, es, it or jp (default: $DEDIT_LANG or us)")
	f.StringVarP(&g.IndexType, "index-type", "t", "i16x4", "index layout: i16x2, i16x4, i32x4 or i32x8")
	f.StringVarP(&g.Game, "game", "g", envOr("DEDIT_GAME", "ffx"), "charset game: ffx or ffx2 (default: $DEDIT_GAME or ffx)")
	f.StringVarP(&g.MacroDict, "macro-dict", "m", "", "macro dictionary `file` (required by compile)")
	f.IntVar(&g.Sections, "sections", section.SectionCountGen3, "macro dictionary section count: 10, 11 or 16")
	f.StringVarP(&g.Compress, "compress", "z", "none", "compress text outputs: none, zstd, s2 or lz4")
	f.StringVar(&g.LogLevel, "log-level", "info", "log `level`: debug, info, warn or error")
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

// resolve parses the string flags and sets up the logger.
func (g *GlobalOptions) resolve(logOut io.Writer) error {
	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		return errors.Wrap(err, "--log-level")
	}
	g.logger = log.New()
	g.logger.SetOutput(logOut)
	g.logger.SetLevel(level)
	g.logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	if g.segment, err = container.ParseSegment(g.Segment); err != nil {
		return errors.Wrap(err, "--segment")
	}
	if g.encoding, err = format.ParseEncoding(g.Encoding); err != nil {
		return errors.Wrap(err, "--encoding")
	}
	if g.indexType, err = format.ParseIndexType(g.IndexType); err != nil {
		return errors.Wrap(err, "--index-type")
	}
	if g.compression, err = format.ParseCompression(g.Compress); err != nil {
		return errors.Wrap(err, "--compress")
	}
	if !section.ValidSectionCount(g.Sections) {
		return errors.Errorf("--sections: %d is not 10, 11 or 16", g.Sections)
	}

	lang, err := format.ParseLang(g.Lang)
	if err != nil {
		return errors.Wrap(err, "--lang")
	}
	game, err := format.ParseGame(g.Game)
	if err != nil {
		return errors.Wrap(err, "--game")
	}
	if g.charset, err = charset.Lookup(lang, game); err != nil {
		return errors.Wrap(err, "charset")
	}

	if g.Output != "" {
		fi, err := os.Stat(g.Output)
		if err != nil {
			return errors.Wrap(err, "--output")
		}
		if !fi.IsDir() {
			return errors.Errorf("--output: %s is not a directory", g.Output)
		}
	}

	return nil
}

func (g *GlobalOptions) containerOptions(logger log.FieldLogger) []container.Option {
	return []container.Option{
		container.WithIndexType(g.indexType),
		container.WithEncoding(g.encoding),
		container.WithCharset(g.charset),
		container.WithSegment(g.segment),
		container.WithSectionCount(g.Sections),
		container.WithLogger(logger),
	}
}

func (g *GlobalOptions) macroOptions(logger log.FieldLogger) []macro.Option {
	return []macro.Option{
		macro.WithSectionCount(g.Sections),
		macro.WithLogger(logger),
	}
}

// loadMacroTable builds a fresh macro table from --macro-dict, or returns nil
// when no dictionary is configured.
func (g *GlobalOptions) loadMacroTable(logger log.FieldLogger) (*macro.Table, error) {
	if g.MacroDict == "" {
		return nil, nil
	}

	dict, err := readFile(g.MacroDict)
	if err != nil {
		return nil, err
	}
	tbl, err := macro.Build(dict, g.charset, g.macroOptions(logger)...)
	if err != nil {
		return nil, errors.Wrapf(err, "macro dictionary %s", g.MacroDict)
	}

	return tbl, nil
}
