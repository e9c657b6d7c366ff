package ephemera

import "fmt"

// verify checks that the value store and the expiry index describe the same
// set of keys: each stored key sits in exactly the bucket of its instant, and
// each indexed key is stored.
func (c *Cache[V]) verify() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var err error
	c.store.each(func(ent *entry[V]) bool {
		if !c.index.contains(ent.expiresAt, ent.key) {
			err = fmt.Errorf("key %q missing from bucket %s", ent.key, ent.expiresAt)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}

	var prev *bucket
	c.index.ascend(func(b *bucket) bool {
		if len(b.keys) == 0 {
			err = fmt.Errorf("empty bucket %s", b.at)
			return false
		}
		if prev != nil && !prev.at.Before(b.at) {
			err = fmt.Errorf("bucket %s out of order after %s", b.at, prev.at)
			return false
		}
		prev = b
		for key := range b.keys {
			ent, ok := c.store.get(key)
			if !ok {
				err = fmt.Errorf("bucket %s references missing key %q", b.at, key)
				return false
			}
			if !ent.expiresAt.Equal(b.at) {
				err = fmt.Errorf("key %q in bucket %s expires at %s", key, b.at, ent.expiresAt)
				return false
			}
		}
		return true
	})
	if err != nil {
		return err
	}

	if n := c.index.size(); n != c.store.len() {
		return fmt.Errorf("index holds %d keys, store holds %d", n, c.store.len())
	}
	return nil
}
