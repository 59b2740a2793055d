package memtable

import (
	"btreemap/btree"
	"btreemap/encoder"

	log "github.com/sirupsen/logrus"
)

// Memtable buffers writes in an ordered btree.Map until its size limit is reached.
// Deletes are stored as tombstones so they shadow older memtables.
type Memtable struct {
	tree      *btree.Map[string, []byte]
	sizeUsed  int // The approximate amount of space used by the Memtable so far (in bytes).
	sizeLimit int // The maximum allowed size of the Memtable (in bytes).
	encoder   *encoder.Encoder
}

func NewMemtable(sizeLimit int) *Memtable {
	m := &Memtable{
		tree:      btree.NewDefault[string, []byte](),
		sizeLimit: sizeLimit,
		encoder:   encoder.NewEncoder(),
	}
	return m
}

// check if memtable has room for new kv-pair
func (m *Memtable) HasRoomForWrite(key, val []byte) bool {
	sizeAvailable := m.sizeLimit - m.sizeUsed
	// +1 for OpKind
	return (len(key) + len(val) + 1) <= sizeAvailable
}

func (m *Memtable) put(key []byte, encodedVal []byte) {
	old, replaced := m.tree.Insert(string(key), encodedVal)
	if replaced {
		// the key is already accounted for, only the value changed size
		m.sizeUsed += len(encodedVal) - len(old)
		return
	}
	m.sizeUsed += len(key) + len(encodedVal)
}

func (m *Memtable) Insert(key, val []byte) {
	m.put(key, m.encoder.Encode(encoder.OpKindSet, val))
}

func (m *Memtable) InsertTombstone(key []byte) {
	m.put(key, m.encoder.Encode(encoder.OpKindDelete, nil))
}

func (m *Memtable) Get(key []byte) (*encoder.EncodedValue, bool) {
	encodedVal, found := m.tree.Get(string(key))
	if !found {
		return nil, false
	}
	ev, err := m.encoder.Parse(encodedVal)
	if err != nil {
		log.Errorf("memtable entry %q: %v", key, err)
		return nil, false
	}
	return ev, true
}

// Len returns the number of keys held, tombstones included.
func (m *Memtable) Len() int {
	return m.tree.Len()
}

func (m *Memtable) Size() int {
	return m.sizeUsed
}
