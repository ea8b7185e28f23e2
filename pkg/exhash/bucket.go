package exhash

import "maps"

// bucket holds up to capacity key-value pairs. The directory may fan a
// bucket out to several slots, all sharing this one instance; the slots
// referencing it are exactly those whose index matches bits on mask. The
// mask accumulates one newly significant bit per split, so a bucket that
// has split k times carries a k-bit filter.
type bucket struct {
	id         uint64
	localDepth int
	mask, bits uint32
	capacity   int
	items      map[int64]int64
}

func newBucket(id uint64, capacity, localDepth int, mask, bits uint32) *bucket {
	return &bucket{
		id:         id,
		localDepth: localDepth,
		mask:       mask,
		bits:       bits,
		capacity:   capacity,
		items:      make(map[int64]int64, capacity),
	}
}

func (b *bucket) ownsSlot(slot uint32) bool {
	return slot&b.mask == b.bits
}

func (b *bucket) contains(key int64) bool {
	_, ok := b.items[key]
	return ok
}

// insert adds the pair if the key is new and the bucket has room.
func (b *bucket) insert(key, value int64) bool {
	if b.contains(key) {
		return false
	}
	if len(b.items) >= b.capacity {
		return false
	}
	b.items[key] = value
	return true
}

// put stores without a capacity check. Only the redistribution path uses
// this: a split redistributes at most capacity items, so neither target can
// overflow.
func (b *bucket) put(key, value int64) {
	b.items[key] = value
}

// takeItems empties the bucket and returns what it held.
func (b *bucket) takeItems() map[int64]int64 {
	taken := maps.Clone(b.items)
	clear(b.items)
	return taken
}
