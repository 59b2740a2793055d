package btree

/*
data item in a node.
key uniquely identifies a data item across the whole tree and is used for sorting them.
val contains the value associated with the key.
*/
type item[K, V any] struct {
	key K
	val V
}

// config holds the parameters shared by every node of one tree. It is fixed at construction.
type config[K any] struct {
	degree  int               // minimum degree t
	compare func(a, b K) int // three-way comparison, negative when a < b
}

func (c *config[K]) maxItems() int {
	return 2*c.degree - 1
}

func (c *config[K]) minItems() int {
	return c.degree - 1
}
