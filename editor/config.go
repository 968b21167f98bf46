package editor

import (
	"github.com/rs/zerolog"

	"github.com/iw2rmb/lattice/block"
)

// Config configures the editor Model.
type Config struct {
	// Initial document content. Nil yields a single empty paragraph.
	Blocks []block.Block

	// Forwarded to block.Options. Zero values pick the defaults.
	MaxIndent    int
	HistoryLimit int

	// Rendering options.
	ShowGutter bool
	Style      Style

	KeyMap KeyMap

	// Optional OS clipboard bridge. Without one, copy/paste stays in the
	// in-process payload.
	Clipboard Clipboard

	// Called after every document change.
	OnChange func(ChangeEvent)

	ReadOnly bool

	// Logger for diagnostics. Nil disables logging.
	Logger *zerolog.Logger
}

func (c Config) logger() zerolog.Logger {
	if c.Logger == nil {
		return zerolog.Nop()
	}
	return *c.Logger
}
