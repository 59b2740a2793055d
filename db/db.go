package db

import (
	"errors"
	"fmt"

	"btreemap/memtable"

	log "github.com/sirupsen/logrus"
)

const DefaultMemtableSize = 4 << 10 // 4 KiB

var ErrNotFound = errors.New("key not found")

type MemTables struct {
	mutable *memtable.Memtable   // current mutable (read-write) memtable
	queue   []*memtable.Memtable // every memtable, oldest first; all but the last are read-only
}

// DB is an in-memory key-value store made of size-bounded memtables.
// Like the memtables it is built on, it is not safe for concurrent use.
type DB struct {
	memtables MemTables
	sizeLimit int
}

func Open(sizeLimit int) *DB {
	if sizeLimit <= 0 {
		sizeLimit = DefaultMemtableSize
	}
	d := &DB{sizeLimit: sizeLimit}
	d.memtables.mutable = memtable.NewMemtable(sizeLimit)
	d.memtables.queue = append(d.memtables.queue, d.memtables.mutable)
	return d
}

func (d *DB) rotateMemtables() *memtable.Memtable {
	d.memtables.mutable = memtable.NewMemtable(d.sizeLimit)
	d.memtables.queue = append(d.memtables.queue, d.memtables.mutable)
	log.Debugf("MEMTABLE_ROTATE count=%d", len(d.memtables.queue))
	return d.memtables.mutable
}

func (d *DB) prepMemtableForKV(key, val []byte) *memtable.Memtable {
	m := d.memtables.mutable
	if !m.HasRoomForWrite(key, val) {
		m = d.rotateMemtables()
	}
	return m
}

func (d *DB) Set(key, val []byte) {
	m := d.prepMemtableForKV(key, val)
	m.Insert(key, val)
}

func (d *DB) Get(key []byte) ([]byte, error) {
	// scan memtables from newest to oldest
	for i := len(d.memtables.queue) - 1; i >= 0; i-- {
		m := d.memtables.queue[i]
		encodedVal, ok := m.Get(key)
		if !ok {
			continue
		}
		if encodedVal.IsTombstone() {
			log.Debugf("Found key %q marked as deleted in memtable %d", key, i)
			return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		log.Debugf("Found key %q in memtable %d with value %q", key, i, encodedVal.Value())
		return encodedVal.Value(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
}

func (d *DB) Delete(key []byte) {
	m := d.prepMemtableForKV(key, nil)
	m.InsertTombstone(key)
}

// Memtables returns how many memtables the DB holds, including the mutable one.
func (d *DB) Memtables() int {
	return len(d.memtables.queue)
}
