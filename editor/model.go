package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/lattice/block"
)

// Model is a Bubble Tea component over a block document. All state it
// coordinates (document, clipboard payload, interaction mode) lives on the
// model instance, so multiple editors stay isolated.
type Model struct {
	cfg Config
	doc *block.Document

	modes    *ModeManager
	clip     *ClipboardManager
	resolver *Resolver

	enterRules     *Engine
	backspaceRules *Engine
	deleteRules    *Engine

	focused  bool
	viewport viewport.Model

	lastVersion uint64
	log         zerolog.Logger
}

func New(cfg Config) Model {
	if len(cfg.KeyMap.Enter.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	log := cfg.logger()

	doc := block.New(cfg.Blocks, block.Options{
		MaxIndent:    cfg.MaxIndent,
		HistoryLimit: cfg.HistoryLimit,
	})
	modes := NewModeManager(log)
	clip := NewClipboardManager(doc, cfg.Clipboard, log)

	m := Model{
		cfg:            cfg,
		doc:            doc,
		modes:          modes,
		clip:           clip,
		resolver:       NewResolver(doc, modes, clip, log),
		enterRules:     newEnterEngine(log),
		backspaceRules: newBackspaceEngine(log),
		deleteRules:    newDeleteEngine(log),
		focused:        true,
		viewport:       viewport.New(0, 0),
		log:            log,
	}
	m.lastVersion = doc.Version()
	m.rebuildContent()
	return m
}

// Document exposes the underlying document. Hosts may mutate it directly;
// the next Update picks the change up.
func (m Model) Document() *block.Document { return m.doc }

// Modes exposes the interaction mode manager.
func (m Model) Modes() *ModeManager { return m.modes }

// ClipboardManager exposes the block clipboard.
func (m Model) ClipboardManager() *ClipboardManager { return m.clip }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCaret()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCaret()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m = m.updateKey(msg)
		cmd := m.syncFromDoc(true)
		return m, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		// The host may have mutated the document outside the editor.
		// Don't force-follow the caret; allow manual wheel scrolling.
		m.syncFromDoc(false)
		return m, cmd
	default:
		cmd := m.syncFromDoc(true)
		return m, cmd
	}
}

func (m Model) View() string { return m.viewport.View() }

// syncFromDoc rebuilds the view after a document change and reports it to
// the host.
func (m *Model) syncFromDoc(follow bool) tea.Cmd {
	if m.doc.Version() == m.lastVersion {
		return nil
	}
	m.lastVersion = m.doc.Version()
	m.rebuildContent()
	if follow {
		m.followCaret()
	}
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.doc, m.modes.Current()))
	}
	return nil
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

// followCaret keeps the caret's visible row inside the viewport.
func (m *Model) followCaret() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	row := m.caretRow()
	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}

// caretRow is the caret block's row among visible blocks.
func (m *Model) caretRow() int {
	blocks := m.doc.Blocks()
	vis := block.VisibleIndexes(blocks)
	caret := m.doc.Caret()
	for row, i := range vis {
		if i >= caret.Index {
			return row
		}
	}
	if len(vis) > 0 {
		return len(vis) - 1
	}
	return 0
}
