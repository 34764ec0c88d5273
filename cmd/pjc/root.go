package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/npillmayer/parserjunior/lexer"
)

var rootFlags = struct {
	trace      *string
	lexmachine *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "pjc",
	Short: "Experiment with LALR(1) grammars and parsers",
	Long: `pjc provides a demo expression grammar and lets you
- tokenize input,
- inspect the grammar's LALR(1) action table,
- parse and evaluate expressions, on the command line or interactively.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "Error", "trace level [Debug|Info|Error]")
	rootFlags.lexmachine = rootCmd.PersistentFlags().Bool("lexmachine", false, "use the lexmachine scanner instead of the built-in lexer")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

// traceKeys are the tracers of the packages in use.
var traceKeys = []string{"pj.cli", "pj.lexer", "pj.lr", "pj.parser", "pj.runtime"}

// setup initializes tracing and the display.
func setup(cmd *cobra.Command, args []string) error {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	level := tracing.TraceLevelFromString(*rootFlags.trace)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("trace level is %s", *rootFlags.trace)
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// inputFrom joins the command line arguments or, if there are none,
// reads stdin.
func inputFrom(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("cannot read input: %w", err)
	}
	return string(b), nil
}

// tokenStream creates a token stream over input, using the scanner selected
// by flag --lexmachine.
func tokenStream(calc *Calculator, input string) (lexer.TokenStream, error) {
	if *rootFlags.lexmachine {
		return calc.LMScanner(input)
	}
	return calc.Lexer(input), nil
}
