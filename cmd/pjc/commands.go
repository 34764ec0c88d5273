package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/npillmayer/parserjunior/lexer"
	"github.com/npillmayer/parserjunior/lr"
)

var tableFlags = struct {
	html *string
	dot  *string
}{}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:     "tokens [input]",
		Short:   "Tokenize input with the lexemes of the demo grammar",
		Example: `  pjc tokens "1 + (2 * 3)"`,
		RunE:    runTokens,
	})
	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "Print the LALR(1) action table of the demo grammar",
		Args:  cobra.NoArgs,
		RunE:  runTable,
	}
	tableFlags.html = tableCmd.Flags().String("html", "", "write the action table as HTML to a file")
	tableFlags.dot = tableCmd.Flags().String("dot", "", "write the item set graph in Graphviz DOT format to a file")
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(&cobra.Command{
		Use:     "parse [input]",
		Short:   "Parse and evaluate an expression, printing its AST",
		Example: `  echo "2 * (3 + 4)" | pjc parse`,
		RunE:    runParse,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Parse and evaluate expressions interactively",
		Args:  cobra.NoArgs,
		RunE:  runREPL,
	})
}

func runTokens(cmd *cobra.Command, args []string) error {
	calc, err := NewCalculator()
	if err != nil {
		return err
	}
	input, err := inputFrom(args)
	if err != nil {
		return err
	}
	stream, err := tokenStream(calc, input)
	if err != nil {
		return err
	}
	tokens, err := lexer.Tokenize(stream)
	pterm.DefaultTable.WithHasHeader().WithData(tokenTable(tokens)).Render()
	return err
}

func tokenTable(tokens []lexer.Token) pterm.TableData {
	data := pterm.TableData{{"Position", "Type", "Text"}}
	for _, tok := range tokens {
		data = append(data, []string{tok.Pos.String(), tok.Type.Name(), fmt.Sprintf("%q", tok.Text)})
	}
	return data
}

func runTable(cmd *cobra.Command, args []string) error {
	calc, err := NewCalculator()
	if err != nil {
		return err
	}
	table := calc.Parser.Table()
	pterm.Info.Printf("grammar %s\n", calc.G.Name)
	for _, r := range calc.G.Rules() {
		pterm.Printf("%3d: %v\n", r.ID, r)
	}
	pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(table.Rows())).Render()
	if *tableFlags.html != "" {
		if err = writeFile(*tableFlags.html, func(f *os.File) error {
			return lr.ActionTableAsHTML(table, f)
		}); err != nil {
			return err
		}
	}
	if *tableFlags.dot != "" {
		if err = writeFile(*tableFlags.dot, func(f *os.File) error {
			return table.CFSM().CFSM2GraphViz(f)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(name string, write func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", name, err)
	}
	defer f.Close()
	if err = write(f); err != nil {
		return err
	}
	pterm.Info.Printf("wrote %s\n", name)
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	calc, err := NewCalculator()
	if err != nil {
		return err
	}
	input, err := inputFrom(args)
	if err != nil {
		return err
	}
	return evalAndPrint(calc, input)
}

// evalAndPrint evaluates an expression and prints its AST and value.
func evalAndPrint(calc *Calculator, input string) error {
	stream, err := tokenStream(calc, input)
	if err != nil {
		return err
	}
	ast, value, err := calc.Eval(stream)
	if err != nil {
		return err
	}
	printTree(ast)
	pterm.Info.Printf("%d\n", value)
	return nil
}
