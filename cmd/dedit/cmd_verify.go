package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arloliu/dedit/container"
	"github.com/arloliu/dedit/internal/hash"
)

func newCmdVerify(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify -i FILE [-i FILE]...",
		Short: "Check that containers survive decompile and compile unchanged",
		Long: `
The "verify" command decompiles each container, compiles the text again and
compares the xxHash64 fingerprints of both. A container that does not rebuild
byte for byte counts as a failed file. With --macro-dict, macro tokens are
checked against the dictionary during the rebuild.
`,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return g.runBatch("verify", g.verifyFile)
		},
	}
}

func (g *GlobalOptions) verifyFile(in string, logger log.FieldLogger) (log.Fields, error) {
	buf, err := readFile(in)
	if err != nil {
		return nil, err
	}

	tbl, err := g.loadMacroTable(logger)
	if err != nil {
		return nil, err
	}

	report, err := container.Verify(buf, append(g.containerOptions(logger), container.WithMacroTable(tbl))...)
	if err != nil {
		return nil, err
	}
	if !report.Match() {
		return nil, errors.Errorf("rebuilt container differs at byte %d (%s != %s, %d != %d bytes)",
			report.FirstDiff, hash.Format(report.Rebuilt), hash.Format(report.Original),
			report.RebuiltSize, report.Size)
	}

	return log.Fields{
		"records":     report.Records,
		"bytes":       report.Size,
		"fingerprint": hash.Format(report.Original),
	}, nil
}
