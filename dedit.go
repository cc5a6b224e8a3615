// Package dedit converts the dialogue containers of Final Fantasy X and X-2
// into editable DEdit text and back.
//
// A container is an offset index followed by variable-length records. Each
// record is game-encoded text with inline control codes and references into
// a companion macro dictionary. DEdit text spells every record out with
// {TOKEN} markers and terminates it with {END}:
//
//	Hi!{END}
//	{CLR:1}Yuna{CLR:0}: {MACRO:0:3}{PAUSE}{END}
//
// # Basic Usage
//
// Decompiling a container with the default us/ffx charset:
//
//	text, err := dedit.Decompile(buf, container.WithIndexType(format.IndexI16X4))
//
// Expanding macro references while decompiling:
//
//	tbl, err := dedit.LoadMacros(dict, format.LangUS, format.GameFFX)
//	text, err := dedit.Decompile(buf, container.WithMacroTable(tbl))
//
// Compiling edited text, validating macro tokens against the dictionary:
//
//	buf, err := dedit.Compile(text, dict)
//
// # Package Structure
//
// This package wraps the container, macro and charset packages for the most
// common cases. The section package holds the index codec, record the
// per-record codec, and compress the archive codecs used by the dedit CLI.
package dedit

import (
	"github.com/arloliu/dedit/charset"
	"github.com/arloliu/dedit/container"
	"github.com/arloliu/dedit/format"
	"github.com/arloliu/dedit/internal/hash"
	"github.com/arloliu/dedit/macro"
)

// Decompile converts a container to DEdit text.
func Decompile(buf []byte, opts ...container.Option) (string, error) {
	d, err := container.NewDecompiler(opts...)
	if err != nil {
		return "", err
	}

	return d.Decompile(buf)
}

// Compile converts DEdit text to a container. When dict is non-nil a fresh
// macro table is loaded from it and every macro token is checked against it.
func Compile(text string, dict []byte, opts ...container.Option) ([]byte, error) {
	if dict != nil {
		return container.CompileWithDictionary(text, dict, opts...)
	}

	c, err := container.NewCompiler(opts...)
	if err != nil {
		return nil, err
	}

	return c.Compile(text)
}

// LoadMacros builds a macro table from a dictionary using the charset of lang and game.
func LoadMacros(dict []byte, lang format.LangID, game format.GameID, opts ...macro.Option) (*macro.Table, error) {
	cs, err := charset.Lookup(lang, game)
	if err != nil {
		return nil, err
	}

	return macro.Build(dict, cs, opts...)
}

// Fingerprint returns the xxHash64 of a container or dictionary.
func Fingerprint(data []byte) uint64 {
	return hash.Fingerprint(data)
}
