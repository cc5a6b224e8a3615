package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.3.0"

// newRootCommand builds the command tree around a fresh set of global options.
func newRootCommand() *cobra.Command {
	globals := &GlobalOptions{}

	cmdRoot := &cobra.Command{
		Use:   "dedit",
		Short: "Decompile and compile FFX/FFX-2 dialogue containers",
		Long: `
dedit converts the binary dialogue containers of Final Fantasy X and X-2 into
editable DEdit text and back. Records end with {END}, control codes appear as
{TOKEN:n} and macro references as {MACRO:section:slot}.

Every command processes each input file on its own; a failing file is logged
and the batch continues with the next one.

EXIT STATUS
===========

Exit status is 0 if all files were processed, and 1 if any file failed.
`,
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return globals.resolve(cmd.ErrOrStderr())
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	globals.addFlags(cmdRoot.PersistentFlags())

	cmdRoot.AddCommand(
		newCmdDecompile(globals),
		newCmdCompile(globals),
		newCmdDecompileMacro(globals),
		newCmdCompileMacro(globals),
		newCmdVerify(globals),
	)

	return cmdRoot
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
