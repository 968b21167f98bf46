package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/lattice/block"
	"github.com/iw2rmb/lattice/editor"
)

func sampleBlocks() []block.Block {
	return []block.Block{
		{Kind: block.KindHeading, Text: "lattice demo", Attrs: block.Attrs{Level: 1}},
		{Kind: block.KindParagraph, Text: "A block outliner. Enter splits, Tab indents, Ctrl+T folds."},
		{Kind: block.KindList, Text: "groceries", Attrs: block.Attrs{List: block.ListTask}},
		{Kind: block.KindList, Indent: 1, Text: "oat milk", Attrs: block.Attrs{List: block.ListTask}},
		{Kind: block.KindList, Indent: 1, Text: "coffee", Attrs: block.Attrs{List: block.ListTask, Checked: true}},
		{Kind: block.KindQuote, Text: "Collapsed blocks hide their deeper-indented run."},
		{Kind: block.KindCode, Text: "go run ./cmd/lattice-demo", Attrs: block.Attrs{Language: "sh"}},
		{Kind: block.KindDivider},
		{Kind: block.KindParagraph, Text: "Ctrl+C quits."},
	}
}

type model struct {
	editor editor.Model
}

func newModel(log zerolog.Logger) model {
	cfg := editor.Config{
		Blocks:     sampleBlocks(),
		ShowGutter: true,
		Style:      editor.DefaultStyle(),
		Logger:     &log,
	}
	return model{editor: editor.New(cfg)}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor = m.editor.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.editor.View() }

func main() {
	log := zerolog.Nop()
	if path := os.Getenv("LATTICE_LOG"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			log = zerolog.New(f).With().Timestamp().Logger()
		}
	}

	p := tea.NewProgram(newModel(log), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
