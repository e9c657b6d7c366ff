package ephemera

import (
	"time"

	"github.com/google/btree"
)

// indexDegree is the B-tree branching factor for the expiry index.
const indexDegree = 32

// bucket holds every key that expires at the same instant.
type bucket struct {
	at   time.Time
	keys map[string]struct{}
}

func bucketLess(a, b *bucket) bool {
	return a.at.Before(b.at)
}

// expiryIndex maps expiry instants to buckets of keys in ascending order, so
// a sweep can stop at the first instant that lies in the future.
//
// Like valueStore, it is not synchronized on its own.
type expiryIndex struct {
	tree *btree.BTreeG[*bucket]
}

func newExpiryIndex() *expiryIndex {
	return &expiryIndex{tree: btree.NewG[*bucket](indexDegree, bucketLess)}
}

func (x *expiryIndex) lookup(at time.Time) (*bucket, bool) {
	return x.tree.Get(&bucket{at: at})
}

// add records key under at, creating the bucket when it does not exist yet.
func (x *expiryIndex) add(at time.Time, key string) {
	b, ok := x.lookup(at)
	if !ok {
		b = &bucket{at: at, keys: make(map[string]struct{}, 1)}
		x.tree.ReplaceOrInsert(b)
	}
	b.keys[key] = struct{}{}
}

// remove drops key from the bucket at at. Empty buckets are deleted.
func (x *expiryIndex) remove(at time.Time, key string) bool {
	b, ok := x.lookup(at)
	if !ok {
		return false
	}
	if _, ok := b.keys[key]; !ok {
		return false
	}
	delete(b.keys, key)
	if len(b.keys) == 0 {
		x.tree.Delete(b)
	}
	return true
}

func (x *expiryIndex) contains(at time.Time, key string) bool {
	b, ok := x.lookup(at)
	if !ok {
		return false
	}
	_, ok = b.keys[key]
	return ok
}

// popExpired removes and returns, in ascending order, every bucket whose
// instant is at or before now.
func (x *expiryIndex) popExpired(now time.Time) []*bucket {
	var out []*bucket
	for {
		b, ok := x.tree.Min()
		if !ok || b.at.After(now) {
			return out
		}
		x.tree.DeleteMin()
		out = append(out, b)
	}
}

// ascend calls fn for each bucket in instant order until fn returns false.
func (x *expiryIndex) ascend(fn func(*bucket) bool) {
	x.tree.Ascend(fn)
}

// len returns the number of buckets.
func (x *expiryIndex) len() int {
	return x.tree.Len()
}

// size returns the number of keys across all buckets.
func (x *expiryIndex) size() int {
	n := 0
	x.tree.Ascend(func(b *bucket) bool {
		n += len(b.keys)
		return true
	})
	return n
}
