package block

// The forward hidden-indent scan below is the single source of truth for
// collapse visibility. IsHidden is a prefix walk of the same scan, so the two
// can never disagree on nested collapse cases.

// VisibleIndexes returns the document indexes of visible blocks, in order.
//
// Single forward pass: a collapsed parent-capable block hides the contiguous
// run of strictly deeper blocks that follows it. A visible block at or above
// the hiding threshold always resumes visibility, even when it is not the
// block that started the hide.
func VisibleIndexes(blocks []Block) []int {
	out := make([]int, 0, len(blocks))
	hiddenIndent := -1
	for i, b := range blocks {
		if hiddenIndent >= 0 && b.Indent > hiddenIndent {
			continue
		}
		hiddenIndent = -1
		out = append(out, i)
		if b.Collapsed && b.CanCollapse() {
			hiddenIndent = b.Indent
		}
	}
	return out
}

// VisibleBlocks returns the visible blocks under the collapse rules, in order.
func VisibleBlocks(blocks []Block) []Block {
	idx := VisibleIndexes(blocks)
	out := make([]Block, 0, len(idx))
	for _, i := range idx {
		out = append(out, blocks[i])
	}
	return out
}

// IsHidden reports whether blocks[i] is hidden by a collapsed ancestor.
func IsHidden(blocks []Block, i int) bool {
	if i < 0 || i >= len(blocks) {
		return false
	}
	hiddenIndent := -1
	for j := 0; j <= i; j++ {
		b := blocks[j]
		if hiddenIndent >= 0 && b.Indent > hiddenIndent {
			if j == i {
				return true
			}
			continue
		}
		hiddenIndent = -1
		if j == i {
			return false
		}
		if b.Collapsed && b.CanCollapse() {
			hiddenIndent = b.Indent
		}
	}
	return false
}

// HasChildren reports whether blocks[i] owns at least one following block.
func HasChildren(blocks []Block, i int) bool {
	return i >= 0 && i+1 < len(blocks) && blocks[i+1].Indent > blocks[i].Indent
}

// SubtreeEnd returns the index one past the last descendant of blocks[i].
// For a block without children this is i+1.
func SubtreeEnd(blocks []Block, i int) int {
	if i < 0 || i >= len(blocks) {
		return i + 1
	}
	j := i + 1
	for j < len(blocks) && blocks[j].Indent > blocks[i].Indent {
		j++
	}
	return j
}

// ParentIndex returns the index of the structural parent of blocks[i]: the
// nearest preceding block with strictly smaller indent. The second return is
// false for top-level blocks.
func ParentIndex(blocks []Block, i int) (int, bool) {
	if i < 0 || i >= len(blocks) {
		return 0, false
	}
	for j := i - 1; j >= 0; j-- {
		if blocks[j].Indent < blocks[i].Indent {
			return j, true
		}
	}
	return 0, false
}
