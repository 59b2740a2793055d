package btree

import (
	"slices"

	log "github.com/sirupsen/logrus"
)

type node[K, V any] struct {
	// capacities are reserved up front for 2t-1 items and 2t children, so inserts, borrows
	// and merges never have to grow the backing arrays.
	items    []item[K, V]
	children []*node[K, V]
	cfg      *config[K]
}

func newNode[K, V any](cfg *config[K]) *node[K, V] {
	return &node[K, V]{
		items: make([]item[K, V], 0, cfg.maxItems()),
		cfg:   cfg,
	}
}

func (n *node[K, V]) isLeaf() bool {
	return len(n.children) == 0
}

func (n *node[K, V]) isFull() bool {
	return len(n.items) >= n.cfg.maxItems()
}

// hasSurplus reports whether the node can give away an item and still hold t-1 of them.
func (n *node[K, V]) hasSurplus() bool {
	return len(n.items) > n.cfg.minItems()
}

/*
If data item with key k is found in node n, return its index i.
Else, return the index j where the key would have resided if it was present in the node.
Basically, lower bound of the key in the node -- this coincides with position of the child pointer !!
So, we can continue the traversal down the tree if the returned boolean value is false.
*/
func (n *node[K, V]) search(key K) (int, bool) {
	low, high := 0, len(n.items)
	var mid int
	for low < high {
		mid = (low + high) / 2
		cmp := n.cfg.compare(key, n.items[mid].key)
		switch {
		case cmp > 0:
			low = mid + 1
		case cmp < 0:
			high = mid
		case cmp == 0:
			return mid, true
		}
	}
	return low, false
}

// helper method to insert data item at an arbitrary position of a B-tree node
func (n *node[K, V]) insertItemAt(pos int, it item[K, V]) {
	n.items = slices.Insert(n.items, pos, it)
}

// helper method to insert child pointer at an arbitrary position of a B-tree node
func (n *node[K, V]) insertChildAt(pos int, child *node[K, V]) {
	if n.children == nil {
		n.children = make([]*node[K, V], 0, n.cfg.maxItems()+1)
	}
	n.children = slices.Insert(n.children, pos, child)
}

func (n *node[K, V]) removeItemAt(pos int) item[K, V] {
	it := n.items[pos]
	n.items = slices.Delete(n.items, pos, pos+1)
	return it
}

func (n *node[K, V]) removeChildAt(pos int) *node[K, V] {
	child := n.children[pos]
	n.children = slices.Delete(n.children, pos, pos+1)
	return child
}

/*
we split as soon as we reach the parent of a child that is already full.
split() returns the middle item and newly created right sibling, so we can link them to the parent.
The left half keeps t-1 items and the right half gets t, so both stay within bounds.
Note: This doesn't include splitting the root node. For that check splitRoot() in tree.go
*/
func (n *node[K, V]) split() (item[K, V], *node[K, V]) {
	mid := n.cfg.degree - 1
	midItem := n.items[mid]

	// Create a new node and move the items after the middle one into it.
	sibling := newNode[K, V](n.cfg)
	sibling.items = append(sibling.items, n.items[mid+1:]...)

	// Except for leaf nodes, move the matching child pointers as well.
	if !n.isLeaf() {
		sibling.children = make([]*node[K, V], 0, n.cfg.maxItems()+1)
		sibling.children = append(sibling.children, n.children[mid+1:]...)
		clear(n.children[mid+1:])
		n.children = n.children[:mid+1]
	}

	// Drop the middle item and everything that moved to the new node.
	clear(n.items[mid:])
	n.items = n.items[:mid]

	log.Debugf("NODE_SPLIT mid=%v, left=%d, right=%d", midItem.key, len(n.items), len(sibling.items))
	return midItem, sibling
}

/*
Returns the previous value and true if the key already existed; its value is replaced in place.
The algo will start traversing the tree from its root, recursively calling the insert() method until it reaches a
leaf node suitable for insertion. Full children are split before we descend into them.
*/
func (n *node[K, V]) insert(key K, val V) (V, bool) {
	pos, found := n.search(key)

	// The data item already exists, so just update its value.
	if found {
		old := n.items[pos].val
		n.items[pos].val = val
		return old, true
	}

	// If we reach a leaf node -> it has sufficient space for the new item so, insert the new item
	if n.isLeaf() {
		n.insertItemAt(pos, item[K, V]{key: key, val: val})
		var zero V
		return zero, false
	}

	// If the next node on the traversal path is already full, split it
	if n.children[pos].isFull() {
		midItem, sibling := n.children[pos].split()
		n.insertItemAt(pos, midItem)
		n.insertChildAt(pos+1, sibling)

		// We may need to change our direction after promoting the middle item to the parent, depending on its key.
		switch cmp := n.cfg.compare(key, n.items[pos].key); {
		case cmp < 0:
			// The key is still smaller than the promoted middle item, so keep the same direction.
		case cmp > 0:
			// The promoted middle item is smaller than the key, so move one child to the right.
			pos++
		default:
			// The promoted middle item is the one we are inserting, so just update its value.
			old := n.items[pos].val
			n.items[pos].val = val
			return old, true
		}
	}

	// Continue with the insertion process
	return n.children[pos].insert(key, val)
}

/*
remove deletes key from the subtree rooted at n and returns its value.
Before descending into a child we make sure that child holds more than t-1 items,
so a removal further down never leaves it below the minimum.
*/
func (n *node[K, V]) remove(key K) (V, bool) {
	pos, found := n.search(key)

	if n.isLeaf() {
		if found {
			return n.removeItemAt(pos).val, true
		}
		// The key is not in the tree.
		var zero V
		return zero, false
	}

	if found {
		return n.removeFromInternal(pos)
	}

	if !n.children[pos].hasSurplus() {
		n.fillChild(pos)
		// A merge may have shifted the child we have to follow.
		pos, _ = n.search(key)
	}
	return n.children[pos].remove(key)
}

/*
removeFromInternal removes the item at pos of an internal node.
The item is never cut out of n directly: its slot is refilled with the in-order predecessor or
successor, which is always taken from a leaf, or both neighbours are merged and the
removal continues one level down.
*/
func (n *node[K, V]) removeFromInternal(pos int) (V, bool) {
	out := n.items[pos]

	// Preceding child can spare an item, pull the predecessor up.
	if n.children[pos].hasSurplus() {
		n.items[pos] = n.children[pos].removeMax()
		return out.val, true
	}

	// Succeeding child can spare an item, pull the successor up.
	if n.children[pos+1].hasSurplus() {
		n.items[pos] = n.children[pos+1].removeMin()
		return out.val, true
	}

	// Both children are minimal: merge them around the item and remove it from the merged child.
	n.mergeChildren(pos)
	return n.children[pos].remove(out.key)
}

// removeMax removes and returns the largest item of the subtree rooted at n.
func (n *node[K, V]) removeMax() item[K, V] {
	if n.isLeaf() {
		return n.removeItemAt(len(n.items) - 1)
	}
	pos := len(n.children) - 1
	if !n.children[pos].hasSurplus() {
		pos = n.fillChild(pos)
	}
	return n.children[pos].removeMax()
}

// removeMin removes and returns the smallest item of the subtree rooted at n.
func (n *node[K, V]) removeMin() item[K, V] {
	if n.isLeaf() {
		return n.removeItemAt(0)
	}
	if !n.children[0].hasSurplus() {
		n.fillChild(0)
	}
	return n.children[0].removeMin()
}

/*
fillChild tops up child pos, which holds exactly t-1 items. It borrows through the parent from a
sibling with a surplus, left first, and merges with a sibling otherwise. It returns the index of
the child that now covers the range child pos covered before.
*/
func (n *node[K, V]) fillChild(pos int) int {
	switch {
	case pos > 0 && n.children[pos-1].hasSurplus():
		n.borrowFromLeft(pos)
	case pos < len(n.items) && n.children[pos+1].hasSurplus():
		n.borrowFromRight(pos)
	case pos == len(n.items):
		// Last child has no right sibling, merge it into its left one.
		n.mergeChildren(pos - 1)
		return pos - 1
	default:
		n.mergeChildren(pos)
	}
	return pos
}

// borrowFromLeft rotates the last item of the left sibling through the parent into child pos.
func (n *node[K, V]) borrowFromLeft(pos int) {
	child, sibling := n.children[pos], n.children[pos-1]

	stolen := sibling.removeItemAt(len(sibling.items) - 1)
	child.insertItemAt(0, n.items[pos-1])
	n.items[pos-1] = stolen

	if !sibling.isLeaf() {
		child.insertChildAt(0, sibling.removeChildAt(len(sibling.children)-1))
	}
	log.Debugf("BORROW_LEFT pos=%d, separator=%v", pos, stolen.key)
}

// borrowFromRight rotates the first item of the right sibling through the parent into child pos.
func (n *node[K, V]) borrowFromRight(pos int) {
	child, sibling := n.children[pos], n.children[pos+1]

	stolen := sibling.removeItemAt(0)
	child.items = append(child.items, n.items[pos])
	n.items[pos] = stolen

	if !sibling.isLeaf() {
		child.insertChildAt(len(child.children), sibling.removeChildAt(0))
	}
	log.Debugf("BORROW_RIGHT pos=%d, separator=%v", pos, stolen.key)
}

/*
mergeChildren folds child leftPos+1 and the separating item at leftPos into child leftPos.
This is the only operation that takes a child away from n, so n itself may drop to t-1 items
(or to zero when n is the root, which the Map collapses afterwards).
*/
func (n *node[K, V]) mergeChildren(leftPos int) {
	separator := n.removeItemAt(leftPos)
	right := n.removeChildAt(leftPos + 1)
	left := n.children[leftPos]

	left.items = append(left.items, separator)
	left.items = append(left.items, right.items...)
	if !right.isLeaf() {
		left.children = append(left.children, right.children...)
	}
	log.Debugf("NODE_MERGE separator=%v, items=%d", separator.key, len(left.items))
}

// get walks down from n without changing anything.
func (n *node[K, V]) get(key K) (V, bool) {
	for next := n; next != nil; {
		pos, found := next.search(key)
		if found {
			return next.items[pos].val, true
		}
		if next.isLeaf() {
			break
		}
		next = next.children[pos]
	}
	var zero V
	return zero, false
}
