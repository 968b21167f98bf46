package editor

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iw2rmb/lattice/block"
)

// testDoc builds a document with deterministic ids for minted blocks.
func testDoc(blocks ...block.Block) *block.Document {
	n := 0
	return block.New(blocks, block.Options{
		NewID: func() block.ID {
			n++
			return block.ID(fmt.Sprintf("n%d", n))
		},
	})
}

func para(id string, indent int, text string) block.Block {
	return block.Block{ID: block.ID(id), Kind: block.KindParagraph, Indent: indent, Text: text}
}

func task(id string, indent int, text string, collapsed bool) block.Block {
	return block.Block{
		ID: block.ID(id), Kind: block.KindList, Indent: indent, Collapsed: collapsed,
		Text: text, Attrs: block.Attrs{List: block.ListTask},
	}
}

func bullet(id string, indent int, text string) block.Block {
	return block.Block{
		ID: block.ID(id), Kind: block.KindList, Indent: indent,
		Text: text, Attrs: block.Attrs{List: block.ListBullet},
	}
}

// harness wires a document to a resolver the way the Model does.
type harness struct {
	doc   *block.Document
	modes *ModeManager
	clip  *ClipboardManager
	res   *Resolver

	enter     *Engine
	backspace *Engine
	del       *Engine
}

func newHarness(blocks ...block.Block) *harness {
	log := zerolog.Nop()
	doc := testDoc(blocks...)
	modes := NewModeManager(log)
	clip := NewClipboardManager(doc, nil, log)
	return &harness{
		doc:       doc,
		modes:     modes,
		clip:      clip,
		res:       NewResolver(doc, modes, clip, log),
		enter:     newEnterEngine(log),
		backspace: newBackspaceEngine(log),
		del:       newDeleteEngine(log),
	}
}

func (h *harness) handle(e *Engine) bool {
	ctx, ok := newKeyContext(h.doc)
	if !ok {
		return false
	}
	return e.Handle(ctx, h.res.Resolve)
}

func (h *harness) pressEnter() bool     { return h.handle(h.enter) }
func (h *harness) pressBackspace() bool { return h.handle(h.backspace) }
func (h *harness) pressDelete() bool    { return h.handle(h.del) }

func ids(blocks []block.Block) []block.ID {
	out := make([]block.ID, len(blocks))
	for i, b := range blocks {
		out[i] = b.ID
	}
	return out
}
