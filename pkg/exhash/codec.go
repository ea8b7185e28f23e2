package exhash

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Bucket blobs carry {local depth, slot filter, items}; the metadata blob
// carries {global depth, next bucket id}. Big-endian throughout. The exact
// layout is not contractual, only round-trip fidelity of the fields.

// encodeBucket serializes a bucket to its persisted form.
func encodeBucket(b *bucket) []byte {
	buf := new(bytes.Buffer)

	binary.Write(buf, binary.BigEndian, int32(b.localDepth))
	binary.Write(buf, binary.BigEndian, b.mask)
	binary.Write(buf, binary.BigEndian, b.bits)
	binary.Write(buf, binary.BigEndian, int32(len(b.items)))

	for k, v := range b.items {
		binary.Write(buf, binary.BigEndian, k)
		binary.Write(buf, binary.BigEndian, v)
	}

	return buf.Bytes()
}

// decodeBucket reconstructs a bucket from its persisted form.
func decodeBucket(id uint64, capacity int, data []byte) (*bucket, error) {
	buf := bytes.NewReader(data)

	var localDepth, numItems int32
	var mask, bits uint32
	if err := binary.Read(buf, binary.BigEndian, &localDepth); err != nil {
		return nil, fmt.Errorf("bucket %d: reading local depth: %w", id, err)
	}
	if err := binary.Read(buf, binary.BigEndian, &mask); err != nil {
		return nil, fmt.Errorf("bucket %d: reading slot mask: %w", id, err)
	}
	if err := binary.Read(buf, binary.BigEndian, &bits); err != nil {
		return nil, fmt.Errorf("bucket %d: reading slot bits: %w", id, err)
	}
	if err := binary.Read(buf, binary.BigEndian, &numItems); err != nil {
		return nil, fmt.Errorf("bucket %d: reading item count: %w", id, err)
	}

	b := newBucket(id, capacity, int(localDepth), mask, bits)
	for i := int32(0); i < numItems; i++ {
		var k, v int64
		if err := binary.Read(buf, binary.BigEndian, &k); err != nil {
			return nil, fmt.Errorf("bucket %d: reading item %d: %w", id, i, err)
		}
		if err := binary.Read(buf, binary.BigEndian, &v); err != nil {
			return nil, fmt.Errorf("bucket %d: reading item %d: %w", id, i, err)
		}
		b.items[k] = v
	}

	return b, nil
}

// encodeMeta serializes the table-level metadata.
func encodeMeta(globalDepth int, nextBucketID uint64) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, int32(globalDepth))
	binary.Write(buf, binary.BigEndian, nextBucketID)
	return buf.Bytes()
}

// decodeMeta reconstructs the table-level metadata.
func decodeMeta(data []byte) (globalDepth int, nextBucketID uint64, err error) {
	buf := bytes.NewReader(data)

	var gd int32
	if err = binary.Read(buf, binary.BigEndian, &gd); err != nil {
		return 0, 0, fmt.Errorf("reading global depth: %w", err)
	}
	if err = binary.Read(buf, binary.BigEndian, &nextBucketID); err != nil {
		return 0, 0, fmt.Errorf("reading next bucket id: %w", err)
	}

	return int(gd), nextBucketID, nil
}
