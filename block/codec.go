package block

import (
	"encoding/json"
	"fmt"
)

// The persisted layout is the linear block sequence itself: indent is the
// only serialized hierarchy signal, the derived tree is never written out.

type blockJSON struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Indent    int      `json:"indent"`
	Collapsed bool     `json:"collapsed,omitempty"`
	Text      string   `json:"text,omitempty"`
	ListType  string   `json:"listType,omitempty"`
	Checked   bool     `json:"checked,omitempty"`
	Priority  int      `json:"priority,omitempty"`
	Level     int      `json:"headingLevel,omitempty"`
	Callout   string   `json:"calloutType,omitempty"`
	Language  string   `json:"language,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// MarshalBlocks serializes a block sequence to the persisted JSON layout.
func MarshalBlocks(blocks []Block) ([]byte, error) {
	out := make([]blockJSON, 0, len(blocks))
	for _, b := range blocks {
		j := blockJSON{
			ID:        string(b.ID),
			Type:      b.Kind.String(),
			Indent:    b.Indent,
			Collapsed: b.Collapsed,
			Text:      b.Text,
			Checked:   b.Attrs.Checked,
			Priority:  b.Attrs.Priority,
			Level:     b.Attrs.Level,
			Callout:   b.Attrs.Callout,
			Language:  b.Attrs.Language,
			Tags:      b.Attrs.Tags,
		}
		if b.Kind == KindList {
			j.ListType = b.Attrs.List.String()
		}
		out = append(out, j)
	}
	return json.Marshal(out)
}

// UnmarshalBlocks parses the persisted JSON layout. Unknown block or list
// types are an error; negative indents are clamped; blocks without an id
// keep an empty ID and are minted on adoption into a Document.
func UnmarshalBlocks(data []byte) ([]Block, error) {
	var raw []blockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("block: decode document: %w", err)
	}

	out := make([]Block, 0, len(raw))
	for i, j := range raw {
		kind, ok := kindFromName(j.Type)
		if !ok {
			return nil, fmt.Errorf("block: unknown block type %q at index %d", j.Type, i)
		}
		b := Block{
			ID:        ID(j.ID),
			Kind:      kind,
			Indent:    j.Indent,
			Collapsed: j.Collapsed,
			Text:      j.Text,
			Attrs: Attrs{
				Checked:  j.Checked,
				Priority: j.Priority,
				Level:    j.Level,
				Callout:  j.Callout,
				Language: j.Language,
				Tags:     j.Tags,
			},
		}
		if b.Indent < 0 {
			b.Indent = 0
		}
		if kind == KindList {
			list, ok := listFromName(j.ListType)
			if !ok {
				return nil, fmt.Errorf("block: unknown list type %q at index %d", j.ListType, i)
			}
			b.Attrs.List = list
		}
		if b.Collapsed && !b.CanCollapse() {
			b.Collapsed = false
		}
		out = append(out, b)
	}
	return out, nil
}

// MarshalDocument serializes the document's blocks.
func (d *Document) MarshalDocument() ([]byte, error) {
	return MarshalBlocks(d.blocks)
}

func kindFromName(name string) (Kind, bool) {
	switch name {
	case "paragraph":
		return KindParagraph, true
	case "heading":
		return KindHeading, true
	case "list":
		return KindList, true
	case "quote":
		return KindQuote, true
	case "callout":
		return KindCallout, true
	case "code":
		return KindCode, true
	case "divider":
		return KindDivider, true
	case "toggle":
		return KindToggle, true
	}
	return 0, false
}

func listFromName(name string) (ListKind, bool) {
	switch name {
	case "", "bullet":
		return ListBullet, true
	case "numbered":
		return ListNumbered, true
	case "task":
		return ListTask, true
	case "toggle":
		return ListToggle, true
	}
	return 0, false
}
