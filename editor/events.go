package editor

import "github.com/iw2rmb/lattice/block"

// ChangeEvent describes one committed document change. The host can diff
// Blocks against its own copy if it needs granular deltas.
type ChangeEvent struct {
	Version uint64
	Caret   block.Caret
	Mode    Mode

	Source block.ChangeSource
	Blocks []block.Block
}

func buildChangeEvent(d *block.Document, mode Mode) ChangeEvent {
	ev := ChangeEvent{
		Version: d.Version(),
		Caret:   d.Caret(),
		Mode:    mode,
		Blocks:  d.Blocks(),
	}
	if ch, ok := d.LastChange(); ok {
		ev.Source = ch.Source
	}
	return ev
}
