package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/cli"
	"github.com/pythia-lang/pythia/internal/compat"
	"github.com/pythia-lang/pythia/internal/parser"
)

func newParseCmd() *cobra.Command {
	var asExpr bool
	var showMinVersion bool
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a file and dump its tree",
		Long: "Parse reads a source file (or stdin when the argument is omitted " +
			"or \"-\") and prints the parsed tree. Diagnostics go to stderr; the " +
			"tree is printed even for source with errors.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, content, err := readInput(args)
			if err != nil {
				return err
			}

			var program *parser.Program
			if asExpr {
				program = parser.ParseExpression(content)
			} else {
				program = parser.ParseModule(content)
			}

			fmt.Fprint(cmd.OutOrStdout(), ast.Dump(program.Syntax))
			if showMinVersion {
				v := compat.MinVersion(program.Syntax)
				fmt.Fprintf(cmd.OutOrStdout(), "minimum python: %d.%d\n", v.Major(), v.Minor())
			}

			diags := cli.FromProgram(name, content, program, nil)
			cli.Render(cmd.ErrOrStderr(), content, diags)
			if !program.Valid() {
				return fmt.Errorf("%s: %d syntax error(s)", name, len(program.Errors))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&asExpr, "expression", "e", false, "parse a single expression")
	cmd.Flags().BoolVar(&showMinVersion, "min-version", false, "report the minimum Python release the syntax requires")
	return cmd
}

func readInput(args []string) (name, content string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return args[0], string(data), nil
}
