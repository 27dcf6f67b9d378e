package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/cli"
	"github.com/pythia-lang/pythia/internal/parser"
)

const historyFileName = ".pythia_history"

func newReplCmd() *cobra.Command {
	var dumpTrees bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive parsing session",
		Long: "Repl reads statements interactively, including escape commands " +
			"(%magic, !shell, ?help) and trailing-? help, and reports how each " +
			"input parses.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line := liner.NewLiner()
			defer line.Close()
			line.SetCtrlCAborts(true)

			historyPath := historyFile()
			if f, err := os.Open(historyPath); err == nil {
				line.ReadHistory(f)
				f.Close()
			}
			defer saveHistory(line, historyPath)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pythia %s interactive session (ctrl-d to exit)\n", cli.Version)
			for {
				input, err := readStatement(line)
				if err == liner.ErrPromptAborted {
					continue
				}
				if err == io.EOF {
					fmt.Fprintln(out)
					return nil
				}
				if err != nil {
					return err
				}
				if strings.TrimSpace(input) == "" {
					continue
				}
				line.AppendHistory(strings.TrimRight(input, "\n"))
				evalInput(out, input, dumpTrees)
			}
		},
	}
	cmd.Flags().BoolVar(&dumpTrees, "dump", true, "print the parsed tree for each input")
	return cmd
}

// readStatement reads one logical input: a single line, or a block
// continued until a blank line when the first line opens a suite.
func readStatement(line *liner.State) (string, error) {
	first, err := line.Prompt(">>> ")
	if err != nil {
		return "", err
	}
	input := first + "\n"
	if !opensBlock(first) {
		return input, nil
	}
	for {
		next, err := line.Prompt("... ")
		if err == io.EOF || (err == nil && strings.TrimSpace(next) == "") {
			return input, nil
		}
		if err != nil {
			return "", err
		}
		input += next + "\n"
	}
}

func opensBlock(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasSuffix(trimmed, ":") || strings.HasSuffix(trimmed, "\\")
}

func evalInput(out io.Writer, input string, dumpTrees bool) {
	program := parser.ParseInteractive(input)

	for _, stmt := range program.Module().Body {
		if esc, ok := stmt.(*ast.EscapeCommand); ok {
			fmt.Fprintf(out, "escape %s: %s\n", esc.Kind, esc.Value)
		}
	}
	if dumpTrees {
		fmt.Fprint(out, ast.Dump(program.Syntax))
	}
	diags := cli.FromProgram("<input>", input, program, nil)
	cli.Render(out, input, diags)
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFileName
	}
	return filepath.Join(home, historyFileName)
}

func saveHistory(line *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
