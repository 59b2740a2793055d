package btree

import "fmt"

// Validate walks the whole tree and reports the first broken B-tree invariant:
// node occupancy, child count, leaf depth or key order. A nil error means the tree is well formed.
func (t *Map[K, V]) Validate() error {
	leafDepth := -1
	count, err := t.root.validate(t.cfg, true, 0, &leafDepth)
	if err != nil {
		return err
	}
	if count != t.length {
		return fmt.Errorf("tree holds %d items, map reports %d", count, t.length)
	}

	var prev *item[K, V]
	t.walk(func(it item[K, V]) bool {
		if prev != nil && t.cfg.compare(prev.key, it.key) >= 0 {
			err = fmt.Errorf("keys out of order: %v before %v", prev.key, it.key)
			return false
		}
		prev = &it
		return true
	})
	return err
}

func (n *node[K, V]) validate(cfg *config[K], isRoot bool, depth int, leafDepth *int) (int, error) {
	if len(n.items) > cfg.maxItems() {
		return 0, fmt.Errorf("node at depth %d holds %d items, max is %d", depth, len(n.items), cfg.maxItems())
	}
	if !isRoot && len(n.items) < cfg.minItems() {
		return 0, fmt.Errorf("node at depth %d holds %d items, min is %d", depth, len(n.items), cfg.minItems())
	}

	if n.isLeaf() {
		if *leafDepth < 0 {
			*leafDepth = depth
		} else if *leafDepth != depth {
			return 0, fmt.Errorf("leaf at depth %d, expected %d", depth, *leafDepth)
		}
		return len(n.items), nil
	}

	if len(n.children) != len(n.items)+1 {
		return 0, fmt.Errorf("node at depth %d has %d items and %d children", depth, len(n.items), len(n.children))
	}
	count := len(n.items)
	for _, child := range n.children {
		c, err := child.validate(cfg, false, depth+1, leafDepth)
		if err != nil {
			return 0, err
		}
		count += c
	}
	return count, nil
}
