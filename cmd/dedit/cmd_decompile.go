package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arloliu/dedit/container"
	"github.com/arloliu/dedit/internal/hash"
	"github.com/arloliu/dedit/record"
)

func newCmdDecompile(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decompile -i FILE [-i FILE]...",
		Short: "Convert dialogue containers to DEdit text",
		Long: `
The "decompile" command writes <name>.txt for every input container, with an
archive extension appended when --compress is set. With --macro-dict, macro
references are expanded to their text; otherwise they stay {MACRO:s:n} tokens
so the text can be compiled again.
`,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return g.runBatch("decompile", g.decompileFile)
		},
	}
}

func (g *GlobalOptions) decompileFile(in string, logger log.FieldLogger) (log.Fields, error) {
	buf, err := readFile(in)
	if err != nil {
		return nil, err
	}

	tbl, err := g.loadMacroTable(logger)
	if err != nil {
		return nil, err
	}

	d, err := container.NewDecompiler(append(g.containerOptions(logger), container.WithMacroTable(tbl))...)
	if err != nil {
		return nil, err
	}
	text, err := d.Decompile(buf)
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
		"records":     len(record.SplitRecords(text)),
		"bytes":       len(buf),
		"fingerprint": hash.Format(hash.Fingerprint(buf)),
	}
	for k, v := range compressionField(g.compression, len(text), written) {
		fields[k] = v
	}

	return fields, nil
}
