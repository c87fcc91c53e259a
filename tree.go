package lzss

// This file maintains the encoder's match trees: 256 binary search trees,
// one per possible first byte, whose nodes are window positions and whose
// keys are the maxMatch-byte strings starting at those positions. The root
// of the tree for strings beginning with byte c lives in rson[windowSize+1+c],
// so the descent can treat the root's child slot like any other node's.

// initTree empties all 256 trees and marks every window position as not
// being in a tree.
func (e *encoder) initTree() {
	for i := windowSize + 1; i <= windowSize+256; i++ {
		e.rson[i] = nilNode
	}
	for i := 0; i < windowSize; i++ {
		e.dad[i] = nilNode
	}
}

// insertNode inserts the string textBuf[r:r+maxMatch] into the tree selected
// by its first byte, and sets matchPos and matchLen to the longest match
// encountered during the descent. If the new string exactly duplicates an
// existing node, the old node is removed in favor of the new one: the newer
// position survives longer before it falls out of the window, so the tree
// stays representative of the freshest data. Note that r plays a double
// role, as tree node and as position in the window.
func (e *encoder) insertNode(r int) {
	cmp := 1
	p := windowSize + 1 + int(e.textBuf[r])
	e.rson[r] = nilNode
	e.lson[r] = nilNode
	e.matchLen = 0

	for {
		if cmp >= 0 {
			if e.rson[p] == nilNode {
				e.rson[p] = r
				e.dad[r] = p
				return
			}
			p = e.rson[p]
		} else {
			if e.lson[p] == nilNode {
				e.lson[p] = r
				e.dad[r] = p
				return
			}
			p = e.lson[p]
		}

		// All nodes in this tree share their first byte, so the
		// comparison starts at the second.
		i := 1
		for ; i < maxMatch; i++ {
			cmp = int(e.textBuf[r+i]) - int(e.textBuf[p+i])
			if cmp != 0 {
				break
			}
		}

		if i > e.matchLen {
			e.matchPos = p
			e.matchLen = i
			if i >= maxMatch {
				break
			}
		}
	}

	// The new string is byte-for-byte identical to node p.
	// Replace p with r in the tree.
	e.dad[r] = e.dad[p]
	e.lson[r] = e.lson[p]
	e.rson[r] = e.rson[p]
	e.dad[e.lson[p]] = r
	e.dad[e.rson[p]] = r
	if e.rson[e.dad[p]] == p {
		e.rson[e.dad[p]] = r
	} else {
		e.lson[e.dad[p]] = r
	}
	e.dad[p] = nilNode
}

// deleteNode removes the node at window position p from its tree.
// A position that is in no tree is left alone.
func (e *encoder) deleteNode(p int) {
	if e.dad[p] == nilNode {
		return
	}

	var q int
	switch {
	case e.rson[p] == nilNode:
		q = e.lson[p]
	case e.lson[p] == nilNode:
		q = e.rson[p]
	default:
		q = e.lson[p]
		if e.rson[q] != nilNode {
			// Splice out p's in-order predecessor and give it
			// p's left subtree.
			for e.rson[q] != nilNode {
				q = e.rson[q]
			}
			e.rson[e.dad[q]] = e.lson[q]
			e.dad[e.lson[q]] = e.dad[q]
			e.lson[q] = e.lson[p]
			e.dad[e.lson[p]] = q
		}
		e.rson[q] = e.rson[p]
		e.dad[e.rson[p]] = q
	}

	e.dad[q] = e.dad[p]
	if e.rson[e.dad[p]] == p {
		e.rson[e.dad[p]] = q
	} else {
		e.lson[e.dad[p]] = q
	}
	e.dad[p] = nilNode
}
