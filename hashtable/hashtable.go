// Package hashtable implements a chained hash table keyed by a 64-bit
// unsigned integer, generic over its value type. It is the building block
// for the doc table and the in-memory inverted index: both key their outer
// tables on an FNV-1a-64 hash and store the real key (name or word) inside
// the value for collision-safe lookup.
package hashtable

const initialBuckets = 2

// loadFactor and growthFactor mirror the resize policy: once the table holds
// loadFactor times as many elements as it has buckets, a fresh table with
// growthFactor times as many buckets is allocated and everything is
// reinserted.
const (
	loadFactor   = 3
	growthFactor = 9
)

type node[V any] struct {
	key   uint64
	value V
	next  *node[V]
}

// KeyValue is a read-only snapshot of one table entry.
type KeyValue[V any] struct {
	Key   uint64
	Value V
}

// Table is a chained hash table mapping uint64 keys to values of type V.
// The zero value is not usable; construct with New.
type Table[V any] struct {
	buckets []*node[V]
	count   int
}

// New returns an empty table with the initial bucket count.
func New[V any]() *Table[V] {
	return &Table[V]{buckets: make([]*node[V], initialBuckets)}
}

// Len returns the number of elements currently stored.
func (t *Table[V]) Len() int { return t.count }

// NumBuckets returns the current bucket count.
func (t *Table[V]) NumBuckets() int { return len(t.buckets) }

func (t *Table[V]) bucketIndex(key uint64) int {
	return int(key % uint64(len(t.buckets)))
}

// Insert adds or replaces the value stored under key. If a value was
// already present under key, it is returned along with true.
func (t *Table[V]) Insert(key uint64, value V) (prior V, hadPrior bool) {
	t.maybeResize()

	idx := t.bucketIndex(key)
	for n := t.buckets[idx]; n != nil; n = n.next {
		if n.key == key {
			prior = n.value
			n.value = value
			return prior, true
		}
	}

	t.buckets[idx] = &node[V]{key: key, value: value, next: t.buckets[idx]}
	t.count++
	return prior, false
}

// Find returns the value stored under key, if any, without mutating the
// table.
func (t *Table[V]) Find(key uint64) (V, bool) {
	idx := t.bucketIndex(key)
	for n := t.buckets[idx]; n != nil; n = n.next {
		if n.key == key {
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

// Remove detaches the entry stored under key and returns its value for the
// caller to dispose of.
func (t *Table[V]) Remove(key uint64) (V, bool) {
	idx := t.bucketIndex(key)
	var prev *node[V]
	for n := t.buckets[idx]; n != nil; n = n.next {
		if n.key == key {
			if prev == nil {
				t.buckets[idx] = n.next
			} else {
				prev.next = n.next
			}
			t.count--
			return n.value, true
		}
		prev = n
	}
	var zero V
	return zero, false
}

// maybeResize grows the table when the load factor ceiling is crossed,
// exactly as in the original: checked before insertion, using the count
// already present.
func (t *Table[V]) maybeResize() {
	if t.count < loadFactor*len(t.buckets) {
		return
	}

	grown := &Table[V]{buckets: make([]*node[V], len(t.buckets)*growthFactor)}
	it := t.Iterate()
	for {
		key, value, ok := it.Next()
		if !ok {
			break
		}
		grown.buckets[grown.bucketIndex(key)] = &node[V]{key: key, value: value, next: grown.buckets[grown.bucketIndex(key)]}
		grown.count++
	}
	t.buckets = grown.buckets
}

// Bucket returns a snapshot of the chain stored at bucket i, in chain
// order (Insert prepends new entries; a resize rebuilds every chain, so
// order across a resize is not preserved). Used by the index-file writer to
// serialize the table bucket by bucket.
func (t *Table[V]) Bucket(i int) []KeyValue[V] {
	var out []KeyValue[V]
	for n := t.buckets[i]; n != nil; n = n.next {
		out = append(out, KeyValue[V]{Key: n.key, Value: n.value})
	}
	return out
}

// Iterator produces a lazy, finite, non-restartable sequence of (key,
// value) pairs in unspecified order. The table must not be mutated while an
// iterator over it is in use, except during resize, where the old table is
// iterated and then discarded.
type Iterator[V any] struct {
	t         *Table[V]
	bucketIdx int
	cur       *node[V]
}

// Iterate returns a fresh iterator positioned before the first element.
func (t *Table[V]) Iterate() *Iterator[V] {
	return &Iterator[V]{t: t, bucketIdx: 0, cur: nil}
}

// Next advances the iterator and returns the next (key, value) pair, or
// ok=false once the sequence is exhausted.
func (it *Iterator[V]) Next() (key uint64, value V, ok bool) {
	for it.cur == nil {
		if it.bucketIdx >= len(it.t.buckets) {
			var zero V
			return 0, zero, false
		}
		it.cur = it.t.buckets[it.bucketIdx]
		it.bucketIdx++
	}
	n := it.cur
	it.cur = n.next
	return n.key, n.value, true
}
