package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Intp is our interpreter object.
type Intp struct {
	calc      *Calculator
	repl      *readline.Instance
	lastInput string
}

func runREPL(cmd *cobra.Command, args []string) error {
	calc, err := NewCalculator()
	if err != nil {
		return err
	}
	repl, err := readline.New("pjc> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to pjc") // colored welcome message
	pterm.Info.Println("Enter expressions, :lexmachine to toggle the scanner, quit with <ctrl>D")
	intp := &Intp{calc: calc, repl: repl}
	intp.REPL()
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	pterm.Println("Good bye!")
}

// Eval evaluates a line of input. It returns true if the user wants to quit.
func (intp *Intp) Eval(line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":lexmachine":
		*rootFlags.lexmachine = !*rootFlags.lexmachine
		pterm.Info.Printf("using lexmachine: %v\n", *rootFlags.lexmachine)
		return false
	case ":again":
		line = intp.lastInput
	}
	intp.lastInput = line
	tracer().Debugf("eval %q", line)
	if err := evalAndPrint(intp.calc, line); err != nil {
		pterm.Error.Println(err.Error())
	}
	return false
}
