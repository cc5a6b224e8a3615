package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arloliu/dedit/internal/hash"
	"github.com/arloliu/dedit/macro"
)

func newCmdDecompileMacro(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decompile-macro -i DICT [-i DICT]...",
		Short: "Dump macro dictionaries as text",
		Long: `
The "decompile-macro" command writes every present section of a macro
dictionary between "--- SECTION i ---" and "--- END SECTION i ---" lines.
--sections selects how many header slots the dictionary format honours.
`,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return g.runBatch("decompile-macro", g.decompileMacroFile)
		},
	}
}

func newCmdCompileMacro(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compile-macro -i FILE [-i FILE]...",
		Short: "Build macro dictionaries from text dumps",
		Long: `
The "compile-macro" command builds a dictionary from every dump and writes it
under the dump name without its archive and last extension, so
"macrodic.dat.txt" becomes "macrodic.dat". A file whose output would replace
the dump itself fails; pass -o to write elsewhere.
`,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return g.runBatch("compile-macro", g.compileMacroFile)
		},
	}
}

func (g *GlobalOptions) decompileMacroFile(in string, logger log.FieldLogger) (log.Fields, error) {
	dict, err := readFile(in)
	if err != nil {
		return nil, err
	}

	text, err := macro.Decompile(dict, g.charset, g.macroOptions(logger)...)
	if err != nil {
		return nil, err
	}

	out, err := g.outputPath(in, g.textOutputName(in))
	if err != nil {
		return nil, err
	}
	written, err := g.writeText(out, text)
	if err != nil {
		return nil, err
	}

	fields := log.Fields{
		"output":      out,
		"bytes":       len(dict),
		"fingerprint": hash.Format(hash.Fingerprint(dict)),
	}
	for k, v := range compressionField(g.compression, len(text), written) {
		fields[k] = v
	}

	return fields, nil
}

func (g *GlobalOptions) compileMacroFile(in string, logger log.FieldLogger) (log.Fields, error) {
	text, err := readText(in)
	if err != nil {
		return nil, err
	}

	dict, err := macro.Compile(text, g.charset, g.macroOptions(logger)...)
	if err != nil {
		return nil, err
	}

	out, err := g.outputPath(in, binaryOutputName(in))
	if err != nil {
		return nil, err
	}
	if err := writeFile(out, dict); err != nil {
		return nil, err
	}

	return log.Fields{
		"output":      out,
		"bytes":       len(dict),
		"fingerprint": hash.Format(hash.Fingerprint(dict)),
	}, nil
}
