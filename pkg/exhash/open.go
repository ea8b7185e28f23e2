package exhash

import (
	"fmt"

	"keydex/pkg/logging"
)

// Open rebuilds a table from a BucketStore written by a prior process. The
// persisted fields (global depth, next bucket id, and every bucket's items
// and local depth) are restored exactly, and the directory is reassembled
// from each bucket's slot filter: split history partitions the directory,
// so every slot belongs to exactly one live bucket.
func Open(capacity int, store BucketStore) (*Table, error) {
	if store == nil {
		return nil, fmt.Errorf("open requires a bucket store")
	}

	metaData, err := store.GetMeta()
	if err != nil {
		return nil, fmt.Errorf("loading table metadata: %w", err)
	}
	globalDepth, nextBucketID, err := decodeMeta(metaData)
	if err != nil {
		return nil, fmt.Errorf("decoding table metadata: %w", err)
	}

	if capacity <= 0 {
		capacity = DefaultBucketCapacity
	}

	t := &Table{
		globalDepth:  globalDepth,
		capacity:     capacity,
		directory:    make([]*bucket, 1<<globalDepth),
		nextBucketID: nextBucketID,
		store:        store,
		hashFn:       hashKey,
		log:          logging.WithComponent("exhash"),
	}

	for id := uint64(0); id < nextBucketID; id++ {
		data, err := store.GetBucket(id)
		if err != nil {
			// A bucket absorbed by later state is unexpected but
			// not fatal; its slots will be caught below.
			logging.WithBucket(id).Warn("bucket load failed, skipping", "error", err)
			continue
		}
		b, err := decodeBucket(id, capacity, data)
		if err != nil {
			return nil, err
		}

		for i := range t.directory {
			if b.ownsSlot(uint32(i)) {
				t.directory[i] = b
			}
		}
	}

	for i, b := range t.directory {
		if b == nil {
			return nil, fmt.Errorf("directory slot %d has no bucket; store is incomplete", i)
		}
	}

	return t, nil
}
