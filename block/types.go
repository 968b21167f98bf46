package block

// ID is the opaque, stable identity of a block. It is minted once at block
// creation and never reused; copies made by paste or duplicate get fresh IDs.
type ID string

// Kind is the closed set of block types.
type Kind uint8

const (
	KindParagraph Kind = iota
	KindHeading
	KindList
	KindQuote
	KindCallout
	KindCode
	KindDivider
	KindToggle
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindQuote:
		return "quote"
	case KindCallout:
		return "callout"
	case KindCode:
		return "code"
	case KindDivider:
		return "divider"
	case KindToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// IsWrapper reports whether the kind visually wraps its content
// (blockquote and callout chrome).
func (k Kind) IsWrapper() bool {
	return k == KindQuote || k == KindCallout
}

// IsStructural reports whether the kind is opaque to text merging. Backspace
// and Delete never splice text into or out of structural blocks.
func (k Kind) IsStructural() bool {
	return k == KindCode || k == KindDivider
}

// IsTextual reports whether the kind carries mergeable inline text.
func (k Kind) IsTextual() bool { return !k.IsStructural() }

// ListKind selects the variant of a KindList block.
type ListKind uint8

const (
	ListBullet ListKind = iota
	ListNumbered
	ListTask
	ListToggle
)

func (l ListKind) String() string {
	switch l {
	case ListBullet:
		return "bullet"
	case ListNumbered:
		return "numbered"
	case ListTask:
		return "task"
	case ListToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// Attrs carries type-specific block attributes. Only the fields matching the
// owning block's Kind are meaningful; the rest stay at their zero value.
type Attrs struct {
	List     ListKind // KindList variant
	Checked  bool     // task completion
	Priority int      // task urgency, 0 (none) to 3
	Level    int      // heading level, 1 to 3
	Callout  string   // callout variant tag
	Language string   // code block language
	Tags     []string // paragraph hashtags
}

// Block is the atomic unit of document structure.
type Block struct {
	ID        ID
	Kind      Kind
	Indent    int
	Collapsed bool
	Text      string
	Attrs     Attrs
}

// CanCollapse reports whether the block may own a collapsed subtree.
// Only toggles and task/toggle list items fold their children.
func (b Block) CanCollapse() bool {
	switch b.Kind {
	case KindToggle:
		return true
	case KindList:
		return b.Attrs.List == ListTask || b.Attrs.List == ListToggle
	}
	return false
}

// IsContainer reports whether Enter grows the block's own subtree instead of
// adding a sibling while the block is non-empty.
func (b Block) IsContainer() bool { return b.CanCollapse() }

// Empty reports whether the block has no inline text.
func (b Block) Empty() bool { return b.Text == "" }

func cloneAttrs(a Attrs) Attrs {
	out := a
	out.Tags = append([]string(nil), a.Tags...)
	return out
}

func cloneBlock(b Block) Block {
	out := b
	out.Attrs = cloneAttrs(b.Attrs)
	return out
}

// CloneBlocks deep-copies a block slice.
func CloneBlocks(blocks []Block) []Block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = cloneBlock(b)
	}
	return out
}

// Caret addresses a text position: the block's index in document order and a
// grapheme offset within that block's text.
type Caret struct {
	Index  int
	Offset int
}

// CompareCarets orders carets by document position.
func CompareCarets(a, b Caret) int {
	if a.Index < b.Index {
		return -1
	}
	if a.Index > b.Index {
		return 1
	}
	if a.Offset < b.Offset {
		return -1
	}
	if a.Offset > b.Offset {
		return 1
	}
	return 0
}

// CaretRange is a half-open text selection [Start, End) in document order.
type CaretRange struct {
	Start Caret
	End   Caret
}

func NormalizeCaretRange(r CaretRange) CaretRange {
	if CompareCarets(r.Start, r.End) <= 0 {
		return r
	}
	return CaretRange{Start: r.End, End: r.Start}
}

func (r CaretRange) IsEmpty() bool { return r.Start == r.End }

// BlockRange is an inclusive run of block indexes [From, To].
type BlockRange struct {
	From int
	To   int
}

func NormalizeBlockRange(r BlockRange) BlockRange {
	if r.From <= r.To {
		return r
	}
	return BlockRange{From: r.To, To: r.From}
}
