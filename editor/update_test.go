package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/lattice/block"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(blocks ...block.Block) Model {
	m := New(Config{Blocks: blocks})
	return m.SetSize(80, 24)
}

func TestUpdate_TypingInsertsText(t *testing.T) {
	m := newTestModel(para("a", 0, ""))

	for _, r := range "hi" {
		m, _ = m.Update(keyRunes(string(r)))
	}
	b, _ := m.Document().BlockAt(0)
	if b.Text != "hi" {
		t.Fatalf("text: got %q", b.Text)
	}
	if m.Modes().Current() != ModeTyping {
		t.Fatalf("typing must enter typing mode, got %v", m.Modes().Current())
	}
}

func TestUpdate_EnterSplitsThroughRuleEngine(t *testing.T) {
	m := newTestModel(para("a", 0, "hello"))
	m.Document().SetCaret(block.Caret{Index: 0, Offset: 3})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	d := m.Document()
	if d.Len() != 2 {
		t.Fatalf("len: got %d, want 2", d.Len())
	}
	b0, _ := d.BlockAt(0)
	b1, _ := d.BlockAt(1)
	if b0.Text != "hel" || b1.Text != "lo" {
		t.Fatalf("split: %q / %q", b0.Text, b1.Text)
	}
}

func TestUpdate_TabIndentsUnderPrecedingBlock(t *testing.T) {
	m := newTestModel(para("a", 0, "one"), para("b", 0, "two"))
	m.Document().SetCaret(block.Caret{Index: 1})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	b, _ := m.Document().BlockAt(1)
	if b.Indent != 1 {
		t.Fatalf("indent: got %d, want 1", b.Indent)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	b, _ = m.Document().BlockAt(1)
	if b.Indent != 0 {
		t.Fatalf("indent: got %d, want 0", b.Indent)
	}
}

func TestUpdate_UndoRedoKeys(t *testing.T) {
	m := newTestModel(para("a", 0, ""))
	m, _ = m.Update(keyRunes("x"))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	b, _ := m.Document().BlockAt(0)
	if b.Text != "" {
		t.Fatalf("after undo: %q", b.Text)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	b, _ = m.Document().BlockAt(0)
	if b.Text != "x" {
		t.Fatalf("after redo: %q", b.Text)
	}
}

func TestUpdate_TypingReplacesBlockSelection(t *testing.T) {
	m := newTestModel(para("a", 0, "one"), para("b", 0, "two"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if m.Modes().Current() != ModeBlockSelect {
		t.Fatalf("mode: %v", m.Modes().Current())
	}

	m, _ = m.Update(keyRunes("z"))
	d := m.Document()
	if d.Len() != 2 {
		t.Fatalf("len: got %d", d.Len())
	}
	b, _ := d.BlockAt(0)
	if b.Text != "z" {
		t.Fatalf("typed text must replace the selected block: %q", b.Text)
	}
	if m.Modes().Current() != ModeTyping {
		t.Fatalf("mode: %v", m.Modes().Current())
	}
}

func TestUpdate_ReadOnlyBlocksEdits(t *testing.T) {
	m := New(Config{Blocks: []block.Block{para("a", 0, "keep")}, ReadOnly: true})

	m, _ = m.Update(keyRunes("x"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	d := m.Document()
	b, _ := d.BlockAt(0)
	if d.Len() != 1 || b.Text != "keep" {
		t.Fatalf("read-only editor must not mutate: %q", b.Text)
	}
}

func TestUpdate_BracketedPasteBecomesParagraphs(t *testing.T) {
	m := newTestModel(para("a", 0, "start"))
	m.Document().SetCaret(block.Caret{Index: 0, Offset: 5})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("one\n\ntwo"), Paste: true})
	d := m.Document()
	if d.Len() != 3 {
		t.Fatalf("len: got %d, want 3", d.Len())
	}
	b1, _ := d.BlockAt(1)
	b2, _ := d.BlockAt(2)
	if b1.Text != "one" || b2.Text != "two" {
		t.Fatalf("chunks: %q %q", b1.Text, b2.Text)
	}
}

func TestUpdate_OnChangeFires(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{
		Blocks:   []block.Block{para("a", 0, "")},
		OnChange: func(ev ChangeEvent) { events = append(events, ev) },
	})
	m = m.SetSize(80, 24)

	m, _ = m.Update(keyRunes("a"))
	if len(events) != 1 {
		t.Fatalf("events: got %d, want 1", len(events))
	}
	if events[0].Version == 0 || len(events[0].Blocks) != 1 {
		t.Fatalf("event: %+v", events[0])
	}
}

func TestView_RendersVisibleBlocksOnly(t *testing.T) {
	m := newTestModel(
		task("a", 0, "parent", true),
		para("b", 1, "hidden text"),
		para("c", 0, "visible"),
	)

	view := m.View()
	if strings.Contains(view, "hidden text") {
		t.Fatalf("collapsed children must not render:\n%s", view)
	}
	if !strings.Contains(view, "parent") || !strings.Contains(view, "visible") {
		t.Fatalf("visible blocks missing:\n%s", view)
	}
}

func TestView_MarksCollapsedContainers(t *testing.T) {
	m := newTestModel(task("a", 0, "todo", true), para("b", 1, "x"))
	if !strings.Contains(m.View(), "▸") {
		t.Fatalf("collapsed marker missing:\n%s", m.View())
	}
}

func TestView_ClipsLongInactiveLines(t *testing.T) {
	long := strings.Repeat("abcdefghij", 10)
	m := newTestModel(para("a", 0, "short"), para("b", 0, long))
	m = m.SetSize(24, 5)

	content := m.renderContent()
	if strings.Contains(content, long) {
		t.Fatalf("inactive line wider than the viewport must clip:\n%s", content)
	}
	if !strings.Contains(content, "…") {
		t.Fatalf("clipped line must end in an ellipsis:\n%s", content)
	}
}

func TestView_CaretLineIsNeverClipped(t *testing.T) {
	long := strings.Repeat("abcdefghij", 10)
	m := newTestModel(para("a", 0, long))
	m = m.SetSize(24, 5)

	content := m.renderContent()
	if !strings.Contains(content, long[1:]) {
		t.Fatalf("the caret line renders in full:\n%s", content)
	}
}
