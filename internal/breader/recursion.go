package breader

import "github.com/wa-tools/wacodec/internal/errs"

// MaxDepth is the hard bound on decode/encode nesting depth (spec: 128).
const MaxDepth = 128

// Guard is a scoped depth counter. Enter decrements remaining depth and
// fails once it would go negative; Exit restores it. The zero value has no
// depth budget at all (its first Enter fails); NewGuard starts at MaxDepth.
type Guard struct {
	remaining int
}

// NewGuard starts a guard at MaxDepth.
func NewGuard() *Guard {
	return &Guard{remaining: MaxDepth}
}

// Enter descends one level. Pair every successful Enter with an Exit,
// typically via defer, so sibling subtrees see the same remaining budget.
func (g *Guard) Enter() error {
	if g.remaining == 0 {
		return errs.New(errs.RecursionLimit, "maximum nesting depth exceeded")
	}
	g.remaining--
	return nil
}

// Exit restores one level of depth budget.
func (g *Guard) Exit() {
	g.remaining++
}
