package corrector

// bkTree indexes words by Levenshtein distance. Each child edge is labelled
// with the distance between parent and child, so a query with radius r only
// descends into edges labelled within [d-r, d+r] of the query's distance d
// to the node.
type bkTree struct {
	root *bkNode
	size int
}

type bkNode struct {
	word     string
	children map[int]*bkNode
}

func (t *bkTree) add(word string) {
	if t.root == nil {
		t.root = &bkNode{word: word}
		t.size++
		return
	}
	n := t.root
	for {
		d := levenshtein(word, n.word)
		if d == 0 {
			return
		}
		child, ok := n.children[d]
		if !ok {
			if n.children == nil {
				n.children = make(map[int]*bkNode)
			}
			n.children[d] = &bkNode{word: word}
			t.size++
			return
		}
		n = child
	}
}

// nearest returns the closest word within maxDist, breaking ties
// lexicographically. accept filters out words that are no longer valid.
func (t *bkTree) nearest(word string, maxDist int, accept func(string) bool) (string, int, bool) {
	if t.root == nil {
		return "", 0, false
	}
	bestW, bestD, found := "", maxDist+1, false
	stack := []*bkNode{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		d := levenshtein(word, n.word)
		if d <= maxDist && better(d, n.word, bestD, bestW) && (accept == nil || accept(n.word)) {
			bestW, bestD, found = n.word, d, true
		}
		// Equal distances must still be explored for the lexicographic tie-break.
		r := maxDist
		if found && bestD < r {
			r = bestD
		}
		for k, child := range n.children {
			if abs(k-d) <= r {
				stack = append(stack, child)
			}
		}
	}
	return bestW, bestD, found
}
