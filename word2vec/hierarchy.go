package word2vec

import (
	"fmt"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/splaytree"
	"github.com/unixpickle/w2vgrad"
)

// Hierarchy is used to encode words for a hierarchical
// softmax layer.
//
// Each word is mapped to the list of tree nodes on its path
// from the root, identified by IDs starting at 1.
// A positive ID means the path goes right (positive) at
// that node; a negative ID means it goes left.
type Hierarchy map[string][]int

// BuildHierarchy builds a Huffman-coded hierarchy from a
// map of words to their frequencies.
//
// A hierarchy over n words uses the node IDs 1 through
// n-1, so node j can be scored with output row j-1.
func BuildHierarchy(words map[string]float64) Hierarchy {
	queue := &huffmanQueue{}
	for word, freq := range words {
		queue.Push(&huffmanNode{Word: word, First: word, Freq: freq})
	}
	if queue.Len() == 0 {
		panic("no words")
	}
	for queue.Len() > 1 {
		right := queue.Pop()
		left := queue.Pop()
		queue.Push(&huffmanNode{
			First: left.First,
			Freq:  left.Freq + right.Freq,
			Left:  left,
			Right: right,
		})
	}
	res := Hierarchy{}
	nextID := 1
	queue.Pop().assignPaths(res, nil, &nextID)
	return res
}

// NumNodes computes the total number of node IDs.
func (h Hierarchy) NumNodes() int {
	var max int
	for _, path := range h {
		for _, x := range path {
			if row := nodeRow(x); row+1 > max {
				max = row + 1
			}
		}
	}
	return max
}

// Steps converts a word's path into output rows and the
// sign each row's score is multiplied by.
func (h Hierarchy) Steps(word string) (rows []int, signs []float64, ok bool) {
	path, ok := h[word]
	if !ok {
		return nil, nil, false
	}
	rows = make([]int, len(path))
	signs = make([]float64, len(path))
	for i, x := range path {
		rows[i] = nodeRow(x)
		if x > 0 {
			signs[i] = 1
		} else {
			signs[i] = -1
		}
	}
	return rows, signs, true
}

// HierarchicalSoftmax is a CostFunc which predicts a token
// by walking its path through a Hierarchy.
type HierarchicalSoftmax struct {
	// Rows and Signs hold, for each token index, the
	// output rows on the token's path and the direction
	// taken at each of them.
	Rows  [][]int
	Signs [][]float64
}

// NewHierarchicalSoftmax creates a HierarchicalSoftmax
// that uses the paths from h for every token in tokens.
func NewHierarchicalSoftmax(h Hierarchy, tokens w2vgrad.TokenSet) (*HierarchicalSoftmax, error) {
	if h.NumNodes() > len(tokens) {
		return nil, fmt.Errorf("hierarchy has %d nodes for %d tokens", h.NumNodes(),
			len(tokens))
	}
	res := &HierarchicalSoftmax{
		Rows:  make([][]int, len(tokens)),
		Signs: make([][]float64, len(tokens)),
	}
	for i, tok := range tokens {
		rows, signs, ok := h.Steps(tok)
		if !ok {
			return nil, fmt.Errorf("%w: %q has no path", w2vgrad.ErrUnknownToken, tok)
		}
		res.Rows[i], res.Signs[i] = rows, signs
	}
	return res, nil
}

// CostAndGrad computes the sum of the sigmoid cross
// entropy costs along the target's path.
// It never uses its Source.
func (h *HierarchicalSoftmax) CostAndGrad(src *Source, predicted anyvec.Vector,
	target int, out *anyvec.Matrix) *Result {
	checkShapes(predicted, target, out)
	for _, row := range h.Rows[target] {
		if row >= out.Rows {
			panic("hierarchy node out of range")
		}
	}
	return sigmoidCost(predicted, out, h.Rows[target], h.Signs[target])
}

func nodeRow(pathElement int) int {
	if pathElement > 0 {
		return pathElement - 1
	}
	return -pathElement - 1
}

// huffmanQueue pops nodes in order of increasing
// frequency.
type huffmanQueue struct {
	tree splaytree.Tree
	size int
}

func (q *huffmanQueue) Len() int {
	return q.size
}

func (q *huffmanQueue) Push(n *huffmanNode) {
	q.tree.Insert(queueEntry{Node: n})
	q.size++
}

func (q *huffmanQueue) Pop() *huffmanNode {
	n := q.tree.Root
	for n.Left != nil {
		n = n.Left
	}
	q.tree.Delete(n.Value)
	q.size--
	return n.Value.(queueEntry).Node
}

type queueEntry struct {
	Node *huffmanNode
}

// Compare orders entries by frequency, breaking ties with
// the first word under each node.
func (q queueEntry) Compare(v splaytree.Value) int {
	other := v.(queueEntry).Node
	switch {
	case q.Node == other:
		return 0
	case q.Node.Freq < other.Freq:
		return -1
	case q.Node.Freq > other.Freq:
		return 1
	case q.Node.First < other.First:
		return -1
	case q.Node.First > other.First:
		return 1
	}
	panic("duplicate word in hierarchy")
}

type huffmanNode struct {
	Word string

	// First is the leftmost word under the node.
	First string
	Freq  float64

	Left  *huffmanNode
	Right *huffmanNode
}

func (h *huffmanNode) assignPaths(hier Hierarchy, path []int, nextID *int) {
	if h.Left == nil {
		hier[h.Word] = append([]int{}, path...)
		return
	}
	id := *nextID
	*nextID++
	h.Left.assignPaths(hier, append(path, -id), nextID)
	h.Right.assignPaths(hier, append(path[:len(path):len(path)], id), nextID)
}
