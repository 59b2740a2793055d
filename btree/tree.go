package btree

import (
	"cmp"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// DefaultDegree is the minimum degree used by NewDefault.
const DefaultDegree = 6

// ErrInvalidDegree is returned when a map is created with a minimum degree below 2.
var ErrInvalidDegree = errors.New("minimum degree must be at least 2")

/*
Map is an ordered key-value container backed by a B-tree of minimum degree t.
Every node except the root holds between t-1 and 2t-1 items, and all leaves sit at the same depth.

The Map only keeps a pointer to the root node of the tree; it owns the two operations
a node cannot perform on itself: splitting a full root and collapsing an empty one.

A Map is not safe for concurrent use. Callers must serialize writers, and readers may only
run while no write is in flight.
*/
type Map[K, V any] struct {
	cfg    *config[K]
	root   *node[K, V]
	length int
}

// New returns an empty Map of the given minimum degree for naturally ordered keys.
func New[K cmp.Ordered, V any](degree int) (*Map[K, V], error) {
	return NewFunc[K, V](degree, cmp.Compare[K])
}

// NewFunc returns an empty Map ordered by compare, which must define a strict total order.
func NewFunc[K, V any](degree int, compare func(a, b K) int) (*Map[K, V], error) {
	if degree < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDegree, degree)
	}
	cfg := &config[K]{degree: degree, compare: compare}
	return &Map[K, V]{cfg: cfg, root: newNode[K, V](cfg)}, nil
}

// NewDefault returns an empty Map with DefaultDegree.
func NewDefault[K cmp.Ordered, V any]() *Map[K, V] {
	m, _ := New[K, V](DefaultDegree)
	return m
}

// Degree returns the minimum degree the map was created with.
func (t *Map[K, V]) Degree() int {
	return t.cfg.degree
}

// Len returns the number of entries in the map.
func (t *Map[K, V]) Len() int {
	return t.length
}

// Get returns the value stored for key, and false if there is none.
func (t *Map[K, V]) Get(key K) (V, bool) {
	return t.root.get(key)
}

// Has reports whether key is present.
func (t *Map[K, V]) Has(key K) bool {
	_, ok := t.root.get(key)
	return ok
}

/*
Create a new root node.
The existing root then becomes the new root's left child.
The new node created after splitting the existing root becomes new root's right child.
*/
func (t *Map[K, V]) splitRoot() {
	newRoot := newNode[K, V](t.cfg)
	midItem, sibling := t.root.split()
	newRoot.insertItemAt(0, midItem)
	newRoot.insertChildAt(0, t.root)
	newRoot.insertChildAt(1, sibling)
	t.root = newRoot
	log.Debugf("ROOT_SPLIT mid=%v", midItem.key)
}

// Insert stores val under key. If the key was already present its previous value is
// returned together with true.
func (t *Map[K, V]) Insert(key K, val V) (V, bool) {
	// The tree root is full, so perform a split on the root.
	if t.root.isFull() {
		t.splitRoot()
	}

	old, replaced := t.root.insert(key, val)
	if !replaced {
		t.length++
	}
	return old, replaced
}

// Remove deletes key and returns the value it held, and false if the key was absent.
func (t *Map[K, V]) Remove(key K) (V, bool) {
	if len(t.root.items) == 0 {
		var zero V
		return zero, false
	}

	val, removed := t.root.remove(key)
	if removed {
		t.length--
	}

	// The last root item went into a merged child, so that child becomes the root.
	if len(t.root.items) == 0 && !t.root.isLeaf() {
		t.root = t.root.children[0]
		log.Debugf("ROOT_COLLAPSE items=%d", len(t.root.items))
	}
	return val, removed
}

// height returns the number of levels in the tree; an empty map has height 1.
func (t *Map[K, V]) height() int {
	h := 1
	for n := t.root; !n.isLeaf(); n = n.children[0] {
		h++
	}
	return h
}

// walk visits every item in ascending key order until fn returns false.
func (t *Map[K, V]) walk(fn func(it item[K, V]) bool) {
	t.root.walk(fn)
}

func (n *node[K, V]) walk(fn func(it item[K, V]) bool) bool {
	for i, it := range n.items {
		if !n.isLeaf() && !n.children[i].walk(fn) {
			return false
		}
		if !fn(it) {
			return false
		}
	}
	if !n.isLeaf() {
		return n.children[len(n.children)-1].walk(fn)
	}
	return true
}
