package editor

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/lattice/block"
	"github.com/iw2rmb/lattice/internal/grapheme"
)

func (m *Model) renderContent() string {
	blocks := m.doc.Blocks()
	vis := block.VisibleIndexes(blocks)
	caret := m.doc.Caret()
	bsel, bselOK := m.doc.BlockSelection()
	st := m.cfg.Style

	digits := 0
	if m.cfg.ShowGutter {
		digits = gutterDigits(len(vis))
	}
	width := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()

	out := make([]string, 0, len(vis))
	for row, i := range vis {
		b := blocks[i]
		var sb strings.Builder
		prefix := 0

		if m.cfg.ShowGutter {
			numStyle := st.LineNum
			if i == caret.Index {
				numStyle = st.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digits, row+1)))
			sb.WriteString(st.Gutter.Render(" │ "))
			prefix += digits + 3
		}

		sb.WriteString(strings.Repeat("  ", b.Indent))
		marker, markerWidth := m.renderMarker(blocks, i)
		sb.WriteString(marker)
		prefix += 2*b.Indent + markerWidth
		sb.WriteString(m.renderText(b, i == caret.Index && m.focused, caret.Offset, width-prefix))

		line := sb.String()
		if bselOK && i >= bsel.From && i <= bsel.To {
			line = st.Selection.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// renderMarker draws the per-kind prefix, including the fold arrow for
// parent-capable blocks, and reports its cell width for line budgeting.
func (m *Model) renderMarker(blocks []block.Block, i int) (string, int) {
	b := blocks[i]
	st := m.cfg.Style

	fold, foldWidth := "", 0
	if b.IsContainer() {
		foldWidth = 2
		switch {
		case b.Collapsed:
			fold = st.Collapsed.Render("▸ ")
		case block.HasChildren(blocks, i):
			fold = st.Collapsed.Render("▾ ")
		default:
			fold = "  "
		}
	}

	switch b.Kind {
	case block.KindHeading:
		level := b.Attrs.Level
		if level < 1 {
			level = 1
		}
		if level > 3 {
			level = 3
		}
		s := strings.Repeat("#", level) + " "
		return st.Marker.Render(s), grapheme.Width(s)
	case block.KindList:
		switch b.Attrs.List {
		case block.ListNumbered:
			s := fmt.Sprintf("%d. ", listOrdinal(blocks, i))
			return st.Marker.Render(s), grapheme.Width(s)
		case block.ListTask:
			box := "[ ] "
			if b.Attrs.Checked {
				box = "[x] "
			}
			prio, prioWidth := "", 0
			if b.Attrs.Priority > 0 {
				s := strings.Repeat("!", b.Attrs.Priority) + " "
				prio = st.Priority.Render(s)
				prioWidth = grapheme.Width(s)
			}
			return fold + st.Marker.Render(box) + prio, foldWidth + grapheme.Width(box) + prioWidth
		case block.ListToggle:
			return fold + st.Marker.Render("· "), foldWidth + 2
		default:
			return st.Marker.Render("• "), 2
		}
	case block.KindQuote:
		return st.Quote.Render("│ "), 2
	case block.KindCallout:
		return st.Callout.Render("▎ "), 2
	case block.KindCode:
		lang := b.Attrs.Language
		if lang != "" {
			lang = " " + lang
		}
		return st.Code.Render("▍" + lang + " "), grapheme.Width("▍"+lang+" ")
	case block.KindDivider:
		return st.Divider.Render(strings.Repeat("─", 24)), 24
	case block.KindToggle:
		return fold, foldWidth
	default:
		return "", 0
	}
}

func (m *Model) renderText(b block.Block, hasCaret bool, offset, maxWidth int) string {
	st := m.cfg.Style
	base := st.Text
	switch {
	case b.Kind == block.KindHeading:
		base = st.Heading
	case b.Kind == block.KindQuote:
		base = st.Quote
	case b.Kind == block.KindCode:
		base = st.Code
	case b.Kind == block.KindList && b.Attrs.List == block.ListTask && b.Attrs.Checked:
		base = st.TaskDone
	}

	if !hasCaret {
		// Inactive lines clip to the viewport; the viewport never wraps.
		return base.Render(truncateToWidth(b.Text, maxWidth))
	}

	clusters := grapheme.Split(b.Text)
	offset = grapheme.Clamp(b.Text, offset)
	left := strings.Join(clusters[:offset], "")
	if offset >= len(clusters) {
		return base.Render(left) + st.Cursor.Render(" ")
	}
	right := strings.Join(clusters[offset+1:], "")
	return base.Render(left) + st.Cursor.Render(clusters[offset]) + base.Render(right)
}

// truncateToWidth trims text to a cell budget, cutting at grapheme cluster
// boundaries and marking the cut with an ellipsis. A non-positive budget
// means the viewport width is unknown and leaves the text alone. The caret
// line bypasses this so the caret never lands past the cut.
func truncateToWidth(text string, width int) string {
	if width <= 0 || grapheme.Width(text) <= width {
		return text
	}
	var sb strings.Builder
	used := 0
	for _, cl := range grapheme.Split(text) {
		w := grapheme.Width(cl)
		if used+w > width-1 {
			break
		}
		sb.WriteString(cl)
		used += w
	}
	return sb.String() + "…"
}

// listOrdinal numbers a block within its contiguous run of numbered siblings
// at the same indent.
func listOrdinal(blocks []block.Block, i int) int {
	n := 1
	for j := i - 1; j >= 0; j-- {
		if blocks[j].Indent < blocks[i].Indent {
			break
		}
		if blocks[j].Indent > blocks[i].Indent {
			continue
		}
		if blocks[j].Kind != block.KindList || blocks[j].Attrs.List != block.ListNumbered {
			break
		}
		n++
	}
	return n
}

func gutterDigits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
