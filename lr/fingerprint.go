package lr

import (
	"fmt"

	"github.com/cnf/structhash"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// grammarPrint is the hashable structure of a grammar. Names of grammars and
// semantic actions do not influence the parser table and are left out.
type grammarPrint struct {
	Target     int
	Rules      []string
	Precedence []string
}

// Fingerprint returns a hash over the structure of a grammar: its rules,
// its target rule and its precedence declarations. Grammars with equal
// fingerprints share the same action table.
func Fingerprint(g *Grammar) (string, error) {
	gp := grammarPrint{Target: -1}
	if g.target != nil {
		gp.Target = g.target.ID
	}
	for _, r := range g.rules {
		gp.Rules = append(gp.Rules, fmt.Sprintf("%s prec=%d arb=%d",
			ruleDumpString(r), r.precedence, r.arbitration))
	}
	names := maps.Keys(g.precedence)
	slices.Sort(names)
	for _, name := range names {
		p := g.precedence[name]
		gp.Precedence = append(gp.Precedence, fmt.Sprintf("%s:%d:%d", name, p.level, p.assoc))
	}
	return structhash.Hash(gp, 1)
}
