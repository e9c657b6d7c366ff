package ephemera

// valueStore owns the canonical entries. It is not synchronized; the Cache
// guards it together with the expiry index.
type valueStore[V any] struct {
	entries map[string]*entry[V]
}

func newValueStore[V any]() *valueStore[V] {
	return &valueStore[V]{entries: make(map[string]*entry[V])}
}

func (s *valueStore[V]) get(key string) (*entry[V], bool) {
	ent, ok := s.entries[key]
	return ent, ok
}

func (s *valueStore[V]) put(ent *entry[V]) {
	s.entries[ent.key] = ent
}

func (s *valueStore[V]) remove(key string) (*entry[V], bool) {
	ent, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	return ent, ok
}

func (s *valueStore[V]) len() int {
	return len(s.entries)
}

// each calls fn for every entry until fn returns false.
func (s *valueStore[V]) each(fn func(*entry[V]) bool) {
	for _, ent := range s.entries {
		if !fn(ent) {
			return
		}
	}
}
