// Package charset maps game character codes to Unicode runes and back.
//
// A Charset is selected once per operation with Lookup and handed to the
// record codec, which never dispatches on language or game itself.
//
// Tables are newline-delimited UTF-8 files: line i holds the rune for code i,
// and an empty line leaves that code unmapped. The base table is chosen by
// script (Latin for the western languages, Japanese for jp); FFX-2 appends
// its additional glyphs directly after the base table.
package charset

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/arloliu/dedit/errs"
	"github.com/arloliu/dedit/format"
)

// CodeSpace is the number of character codes the game byte format can address.
const CodeSpace = 0xD0 * 6

// Charset is the character mapping capability consumed by the record codec.
type Charset interface {
	// DecodeChar returns the rune for a game character code.
	DecodeChar(code uint16) (rune, bool)
	// EncodeChar returns the game character code for r.
	EncodeChar(r rune) (uint16, bool)
	Lang() format.LangID
	Game() format.GameID
}

// Table is a Charset backed by a code-indexed rune table.
type Table struct {
	lang  format.LangID
	game  format.GameID
	runes []rune
	codes map[rune]uint16
}

var _ Charset = (*Table)(nil)

// NewTable builds a Table from runes indexed by code; a zero rune leaves the code unmapped.
func NewTable(lang format.LangID, game format.GameID, runes []rune) (*Table, error) {
	if len(runes) > CodeSpace {
		return nil, fmt.Errorf("charset %s/%s: %d codes exceed code space of %d", lang, game, len(runes), CodeSpace)
	}

	t := &Table{
		lang:  lang,
		game:  game,
		runes: runes,
		codes: make(map[rune]uint16, len(runes)),
	}
	for code, r := range runes {
		if r == 0 {
			continue
		}
		if prev, dup := t.codes[r]; dup {
			return nil, fmt.Errorf("charset %s/%s: rune %q mapped by codes 0x%X and 0x%X", lang, game, r, prev, code)
		}
		t.codes[r] = uint16(code) //nolint:gosec
	}

	return t, nil
}

// DecodeChar returns the rune for code.
func (t *Table) DecodeChar(code uint16) (rune, bool) {
	if int(code) >= len(t.runes) || t.runes[code] == 0 {
		return 0, false
	}

	return t.runes[code], true
}

// EncodeChar returns the code for r.
func (t *Table) EncodeChar(r rune) (uint16, bool) {
	code, ok := t.codes[r]
	return code, ok
}

func (t *Table) Lang() format.LangID { return t.lang }
func (t *Table) Game() format.GameID { return t.game }

// Len returns the number of codes covered by the table, mapped or not.
func (t *Table) Len() int {
	return len(t.runes)
}

// ParseTable parses a newline-delimited table. Each line holds at most one rune.
func ParseTable(data []byte) ([]rune, error) {
	var runes []rune

	sc := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; sc.Scan(); line++ {
		text := bytes.TrimSuffix(sc.Bytes(), []byte{'\r'})
		switch utf8.RuneCount(text) {
		case 0:
			runes = append(runes, 0)
		case 1:
			r, _ := utf8.DecodeRune(text)
			if r == utf8.RuneError {
				return nil, fmt.Errorf("line %d: invalid UTF-8", line)
			}
			runes = append(runes, r)
		default:
			return nil, fmt.Errorf("line %d: %q holds more than one rune", line, text)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return runes, nil
}

//go:embed tables/*.txt
var tableFS embed.FS

type tableKey struct {
	script string
	game   format.GameID
}

var (
	cacheMu sync.Mutex
	cache   = map[tableKey][]rune{}
)

// Lookup returns the charset for a language and game.
//
// Returns:
//   - Charset: Immutable charset safe to share across operations
//   - error: ErrUnsupportedCharset if no table exists for the pair
func Lookup(lang format.LangID, game format.GameID) (Charset, error) {
	script, ok := scriptOf(lang)
	if !ok {
		return nil, fmt.Errorf("%w: language %s", errs.ErrUnsupportedCharset, lang)
	}
	if game != format.GameFFX && game != format.GameFFX2 {
		return nil, fmt.Errorf("%w: game %s", errs.ErrUnsupportedCharset, game)
	}

	runes, err := loadRunes(tableKey{script: script, game: game})
	if err != nil {
		return nil, err
	}

	return NewTable(lang, game, runes)
}

func scriptOf(lang format.LangID) (string, bool) {
	switch lang {
	case format.LangUS, format.LangDE, format.LangFR, format.LangES, format.LangIT:
		return "latin", true
	case format.LangJP:
		return "japanese", true
	default:
		return "", false
	}
}

func loadRunes(key tableKey) ([]rune, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if runes, ok := cache[key]; ok {
		return runes, nil
	}

	runes, err := readEmbedded(key.script + ".txt")
	if err != nil {
		return nil, err
	}
	if key.game == format.GameFFX2 {
		extra, err := readEmbedded("ffx2_extra.txt")
		if err != nil {
			return nil, err
		}
		runes = append(runes, extra...)
	}
	cache[key] = runes

	return runes, nil
}

func readEmbedded(name string) ([]rune, error) {
	data, err := tableFS.ReadFile("tables/" + name)
	if err != nil {
		return nil, fmt.Errorf("charset table %s: %w", name, err)
	}

	runes, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("charset table %s: %w", name, err)
	}

	return runes, nil
}
