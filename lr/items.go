package lr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Item is an LR(0) item: a rule together with a position (the "dot")
// within its right hand side.
//
//    E ➞ E • + T
type Item struct {
	rule *Rule
	dot  int
}

// StartItem returns the item with the dot before the first symbol of r.
func StartItem(r *Rule) Item {
	return Item{rule: r}
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the position of the dot.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, or nil for complete items.
func (i Item) PeekSymbol() Symbol {
	if i.dot >= len(i.rule.Clause) {
		return nil
	}
	return i.rule.Clause[i.dot]
}

// Advance returns the item with the dot moved over the next symbol.
func (i Item) Advance() Item {
	if i.dot >= len(i.rule.Clause) {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

// IsComplete is true if the dot is behind the right hand side.
func (i Item) IsComplete() bool {
	return i.dot >= len(i.rule.Clause)
}

func (i Item) String() string {
	var b strings.Builder
	b.WriteString(i.rule.Target.Name())
	b.WriteString(" ➞")
	for k, sym := range i.rule.Clause {
		if k == i.dot {
			b.WriteString(" •")
		}
		b.WriteByte(' ')
		b.WriteString(sym.Name())
	}
	if i.IsComplete() {
		b.WriteString(" •")
	}
	return b.String()
}

// itemComparator sorts items by rule ID, then by dot position.
func itemComparator(i1, i2 interface{}) int {
	a, b := i1.(Item), i2.(Item)
	if c := utils.IntComparator(a.rule.ID, b.rule.ID); c != 0 {
		return c
	}
	return utils.IntComparator(a.dot, b.dot)
}

func newItemSet() *treeset.Set {
	return treeset.NewWith(itemComparator)
}

func asItem(x interface{}) Item {
	return x.(Item)
}

// ---------------------------------------------------------------------------

// ItemSet is a state of the CFSM. It is identified by its kernel items;
// the closure is derived from the kernel.
type ItemSet struct {
	ID      int
	kernel  *treeset.Set // of Item
	items   *treeset.Set // closure of kernel
	symbols []Symbol     // transition labels in order of creation
	next    map[symKey]*ItemSet
	Accept  bool // contains the completed start rule
}

// Kernel returns the kernel items, sorted.
func (s *ItemSet) Kernel() []Item {
	return itemsOf(s.kernel)
}

// Items returns all items of the closure, sorted.
func (s *ItemSet) Items() []Item {
	return itemsOf(s.items)
}

// Goto returns the successor state for a symbol, or nil.
func (s *ItemSet) Goto(sym Symbol) *ItemSet {
	return s.next[keyOf(sym)]
}

// Transitions returns the symbols with a successor state, in a stable order.
func (s *ItemSet) Transitions() []Symbol {
	return s.symbols
}

func (s *ItemSet) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

// Dump is a debugging helper
func (s *ItemSet) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, i := range s.Items() {
		tracer().Debugf("    %v", i)
	}
	tracer().Debugf("-------------------------")
}

func itemsOf(set *treeset.Set) []Item {
	items := make([]Item, 0, set.Size())
	for _, x := range set.Values() {
		items = append(items, asItem(x))
	}
	return items
}

// kernelKey is a canonical string for a kernel.
func kernelKey(kernel *treeset.Set) string {
	var b bytes.Buffer
	for k, x := range kernel.Values() {
		i := asItem(x)
		if k > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d.%d", i.rule.ID, i.dot)
	}
	return b.String()
}

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// closure computes the closure of a kernel.
func (c *CFSM) closure(kernel *treeset.Set) *treeset.Set {
	C := newItemSet()
	work := arraylist.New()
	for _, x := range kernel.Values() {
		C.Add(x)
		work.Add(x)
	}
	for !work.Empty() {
		x, _ := work.Get(0)
		work.Remove(0)
		A := asItem(x).PeekSymbol()
		if A == nil || A.IsTerminal() {
			continue
		}
		for _, r := range c.rulesFor[A.Name()] {
			i := StartItem(r)
			if !C.Contains(i) {
				C.Add(i)
				work.Add(i)
			}
		}
	}
	return C
}

// gotoKernel computes the kernel of the successor of s for symbol A.
func gotoKernel(s *ItemSet, A Symbol) *treeset.Set {
	kernel := newItemSet()
	for _, x := range s.items.Values() {
		i := asItem(x)
		if sameSymbol(i.PeekSymbol(), A) {
			kernel.Add(i.Advance())
		}
	}
	return kernel
}
