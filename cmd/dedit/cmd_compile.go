package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arloliu/dedit/container"
	"github.com/arloliu/dedit/internal/hash"
)

func newCmdCompile(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compile -i FILE [-i FILE]... -m DICT",
		Short: "Convert DEdit text to dialogue containers",
		Long: `
The "compile" command reads DEdit text, optionally compressed as .zst, .s2 or
.lz4, and writes the container under the input name without its archive and
last extension. A file whose output would replace the input fails; pass -o to
write elsewhere. Every {MACRO:s:n} token must exist in the macro dictionary
given with --macro-dict.
`,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if g.MacroDict == "" {
				return errors.New("compile needs a macro dictionary, use -m")
			}

			return g.runBatch("compile", g.compileFile)
		},
	}
}

func (g *GlobalOptions) compileFile(in string, logger log.FieldLogger) (log.Fields, error) {
	text, err := readText(in)
	if err != nil {
		return nil, err
	}
	dict, err := readFile(g.MacroDict)
	if err != nil {
		return nil, err
	}

	buf, err := container.CompileWithDictionary(text, dict, g.containerOptions(logger)...)
	if err != nil {
		return nil, err
	}

	out, err := g.outputPath(in, binaryOutputName(in))
	if err != nil {
		return nil, err
	}
	if err := writeFile(out, buf); err != nil {
		return nil, err
	}

	return log.Fields{
		"output":      out,
		"bytes":       len(buf),
		"fingerprint": hash.Format(hash.Fingerprint(buf)),
	}, nil
}
