package block

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	ChangeSourceLocal ChangeSource = iota
	ChangeSourceClipboard
	ChangeSourceHistory
)

// Change is a normalized, versioned mutation summary for one transaction.
// Hosts use it to decide what to persist or re-render.
type Change struct {
	Source        ChangeSource
	VersionBefore uint64
	VersionAfter  uint64
	CaretBefore   Caret
	CaretAfter    Caret
	BlocksBefore  int
	BlocksAfter   int
}

// LastChange returns the most recent effective change.
func (d *Document) LastChange() (Change, bool) {
	if !d.hasLastChange {
		return Change{}, false
	}
	return d.lastChange, true
}

func (d *Document) commitChange(source ChangeSource, prev docSnapshot, versionBefore uint64) {
	d.lastChange = Change{
		Source:        source,
		VersionBefore: versionBefore,
		VersionAfter:  d.version,
		CaretBefore:   prev.caret,
		CaretAfter:    d.caret,
		BlocksBefore:  len(prev.blocks),
		BlocksAfter:   len(d.blocks),
	}
	d.hasLastChange = true
}
