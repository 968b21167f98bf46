package editor

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/iw2rmb/lattice/block"
	"github.com/iw2rmb/lattice/internal/grapheme"
)

// KeyContext is the cursor context a rule predicates on. It is a read-only
// snapshot taken once per keystroke; rules never see partial mutation state.
type KeyContext struct {
	Doc    *block.Document
	Blocks []block.Block
	Index  int
	Block  block.Block
	Caret  block.Caret

	// BlockSelection is true when a structural (halo) selection is active.
	BlockSelection bool
}

func newKeyContext(d *block.Document) (KeyContext, bool) {
	c := KeyContext{Doc: d, Blocks: d.Blocks(), Caret: d.Caret()}
	c.Index = c.Caret.Index
	if c.Index < 0 || c.Index >= len(c.Blocks) {
		return KeyContext{}, false
	}
	c.Block = c.Blocks[c.Index]
	_, c.BlockSelection = d.BlockSelection()
	return c, true
}

func (c KeyContext) Empty() bool { return c.Block.Empty() }

func (c KeyContext) AtStart() bool { return c.Caret.Offset == 0 }

func (c KeyContext) AtEnd() bool {
	return c.Caret.Offset >= grapheme.Count(c.Block.Text)
}

func (c KeyContext) HasChildren() bool { return block.HasChildren(c.Blocks, c.Index) }

func (c KeyContext) IsContainer() bool { return c.Block.IsContainer() }

func (c KeyContext) IsExpandedContainer() bool {
	return c.Block.IsContainer() && !c.Block.Collapsed
}

// InsideWrapper reports whether any ancestor of the current block is a
// wrapper kind (quote or callout).
func (c KeyContext) InsideWrapper() bool {
	i := c.Index
	for {
		p, ok := block.ParentIndex(c.Blocks, i)
		if !ok {
			return false
		}
		if c.Blocks[p].Kind.IsWrapper() {
			return true
		}
		i = p
	}
}

// RuleResult is the normalized outcome of a rule's Execute.
type RuleResult struct {
	kind    resultKind
	intents []Intent
}

type resultKind uint8

const (
	resultPass resultKind = iota
	resultHandled
	resultIntents
)

// Pass declines the key; the engine moves on to the next rule.
func Pass() RuleResult { return RuleResult{kind: resultPass} }

// Handled claims the key without emitting intents.
func Handled() RuleResult { return RuleResult{kind: resultHandled} }

// Emit claims the key with one or more intents. All of them must resolve for
// the rule to count as successful.
func Emit(intents ...Intent) RuleResult {
	return RuleResult{kind: resultIntents, intents: intents}
}

// Rule is one prioritized key handler. Higher priority runs first. When is
// the sole cancellation point; once Execute starts, its intents run to
// completion. AllowFallthrough lets later rules see the key even after a
// successful Execute.
type Rule struct {
	ID               string
	Priority         int
	When             func(KeyContext) bool
	Execute          func(KeyContext) RuleResult
	AllowFallthrough bool
}

// Engine dispatches one key across an ordered rule list.
type Engine struct {
	rules  []Rule
	sorted bool
	log    zerolog.Logger
}

func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{log: log}
}

func (e *Engine) Register(r Rule) {
	e.rules = append(e.rules, r)
	e.sorted = false
}

// Handle walks the rules by descending priority. The first matching rule
// whose intents all resolve claims the key; a failing rule yields to the
// next. Returns false when no rule claims the key. A successful fallthrough
// rule counts as a claim even when no later rule fires.
func (e *Engine) Handle(ctx KeyContext, resolve func(Intent) bool) bool {
	if !e.sorted {
		sort.SliceStable(e.rules, func(i, j int) bool {
			return e.rules[i].Priority > e.rules[j].Priority
		})
		e.sorted = true
	}
	claimed := false
	for i := range e.rules {
		r := &e.rules[i]
		if r.When != nil && !r.When(ctx) {
			continue
		}
		res := r.Execute(ctx)
		switch res.kind {
		case resultPass:
			continue
		case resultHandled:
			if !r.AllowFallthrough {
				return true
			}
			claimed = true
		case resultIntents:
			ok := true
			for _, it := range res.intents {
				if !resolve(it) {
					ok = false
					break
				}
			}
			if !ok {
				e.log.Debug().Str("rule", r.ID).Msg("rule did not resolve, yielding")
				continue
			}
			if !r.AllowFallthrough {
				return true
			}
			claimed = true
		}
	}
	return claimed
}
