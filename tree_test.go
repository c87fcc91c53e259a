package lzss

import (
	"bytes"
	"math/rand"
	"testing"
)

// key returns the string a tree node stands for.
func key(e *encoder, p int) []byte {
	return e.textBuf[p : p+maxMatch]
}

// checkTrees verifies the structural invariants of the match trees: every
// reachable node's parent pointer agrees with the child pointer that leads
// to it, every node is in the tree of its first byte, in-order traversal
// yields keys in nondecreasing order, and no position is reachable twice or
// claims a parent without being reachable.
func checkTrees(t *testing.T, e *encoder) {
	t.Helper()
	seen := make(map[int]bool)

	var walk func(p, parent, c int, prev *[]byte)
	walk = func(p, parent, c int, prev *[]byte) {
		if p == nilNode {
			return
		}
		if seen[p] {
			t.Fatalf("node %d reachable twice", p)
		}
		seen[p] = true
		if e.dad[p] != parent {
			t.Fatalf("node %d has dad %d, reached from %d", p, e.dad[p], parent)
		}
		if int(e.textBuf[p]) != c {
			t.Fatalf("node %d starts with %#x but is in tree %#x", p, e.textBuf[p], c)
		}
		walk(e.lson[p], p, c, prev)
		if *prev != nil && bytes.Compare(*prev, key(e, p)) > 0 {
			t.Fatalf("tree %#x is out of order at node %d", c, p)
		}
		k := key(e, p)
		*prev = k
		walk(e.rson[p], p, c, prev)
	}

	for c := 0; c < 256; c++ {
		var prev []byte
		walk(e.rson[windowSize+1+c], windowSize+1+c, c, &prev)
	}

	for i := 0; i < windowSize; i++ {
		if e.dad[i] != nilNode && !seen[i] {
			t.Fatalf("node %d has a parent but is not reachable from any root", i)
		}
	}
}

func checkMirror(t *testing.T, e *encoder) {
	t.Helper()
	for p := 0; p < maxMatch-1; p++ {
		if e.textBuf[p] != e.textBuf[p+windowSize] {
			t.Fatalf("mirror out of sync at %d: %#x vs %#x",
				p, e.textBuf[p], e.textBuf[p+windowSize])
		}
	}
}

func checkMatch(t *testing.T, e *encoder, r int) {
	t.Helper()
	if e.matchLen == 0 {
		return
	}
	if e.matchLen > maxMatch {
		t.Fatalf("match length %d out of range", e.matchLen)
	}
	if e.matchPos < 0 || e.matchPos >= windowSize {
		t.Fatalf("match position %d out of range", e.matchPos)
	}
	if !bytes.Equal(e.textBuf[r:r+e.matchLen], e.textBuf[e.matchPos:e.matchPos+e.matchLen]) {
		t.Fatalf("reported match of %d bytes at %d for %d does not hold",
			e.matchLen, e.matchPos, r)
	}
}

// testInput builds data from a small alphabet with long repeats, so the
// trees see plenty of full-length matches and replacements.
func testInput(n int) []byte {
	rng := rand.New(rand.NewSource(5))
	data := make([]byte, 0, n)
	for len(data) < n {
		switch rng.Intn(3) {
		case 0:
			data = append(data, bytes.Repeat([]byte{byte(rng.Intn(3))}, rng.Intn(40)+1)...)
		case 1:
			data = append(data, []byte("abcabcabc")...)
		default:
			data = append(data, byte(rng.Intn(256)))
		}
	}
	return data[:n]
}

// TestTreeInvariants drives the window exactly the way the encoder does,
// checking the tree, mirror, and match invariants after every step.
func TestTreeInvariants(t *testing.T) {
	data := testInput(3 * windowSize)

	e := new(encoder)
	e.initTree()
	s := 0
	r := windowSize - maxMatch

	lookahead := 0
	for lookahead < maxMatch && lookahead < len(data) {
		e.textBuf[r+lookahead] = data[lookahead]
		lookahead++
	}
	pos := lookahead

	for i := 1; i <= maxMatch; i++ {
		e.insertNode(r - i)
		checkTrees(t, e)
	}
	e.insertNode(r)
	checkTrees(t, e)
	checkMatch(t, e, r)

	steps := 0
	for pos < len(data) {
		c := data[pos]
		pos++
		e.deleteNode(s)
		e.textBuf[s] = c
		if s < maxMatch-1 {
			e.textBuf[s+windowSize] = c
		}
		s = (s + 1) & windowMask
		r = (r + 1) & windowMask
		e.insertNode(r)

		checkMirror(t, e)
		checkMatch(t, e, r)
		// The full tree walk is expensive; do it often early on and
		// periodically after that.
		if steps < 256 || steps%97 == 0 {
			checkTrees(t, e)
		}
		steps++
	}
	checkTrees(t, e)
}

func TestReplaceOnFullMatch(t *testing.T) {
	e := new(encoder)
	e.initTree()
	// The zeroed window makes the strings at any two positions identical,
	// so the second insert must replace the first node.
	e.insertNode(100)
	e.insertNode(200)

	if e.matchLen != maxMatch {
		t.Fatalf("match length = %d, want %d", e.matchLen, maxMatch)
	}
	if e.matchPos != 100 {
		t.Fatalf("match position = %d, want 100", e.matchPos)
	}
	if e.dad[100] != nilNode {
		t.Fatal("replaced node is still in a tree")
	}
	if e.dad[200] == nilNode {
		t.Fatal("replacing node is not in a tree")
	}
	checkTrees(t, e)
}

func TestDeleteAbsentNode(t *testing.T) {
	e := new(encoder)
	e.initTree()
	e.deleteNode(17) // not in any tree; must be a no-op
	checkTrees(t, e)
}

func TestDeleteRebuildsTree(t *testing.T) {
	e := new(encoder)
	e.initTree()
	// Distinct strings in one tree: vary the second byte.
	seconds := []byte{5, 3, 9, 1, 4, 8, 12}
	for i, c := range seconds {
		p := 32 * (i + 1)
		e.textBuf[p] = 0x7f
		e.textBuf[p+1] = c
	}
	for i := range seconds {
		e.insertNode(32 * (i + 1))
		checkTrees(t, e)
	}
	// Delete in an order that exercises leaf, one-child, and two-child
	// cases.
	for _, i := range []int{4, 1, 7, 3, 2, 6, 5} {
		e.deleteNode(32 * i)
		checkTrees(t, e)
	}
	for c := 0; c < 256; c++ {
		if e.rson[windowSize+1+c] != nilNode {
			t.Fatalf("tree %#x not empty after all deletions", c)
		}
	}
}
