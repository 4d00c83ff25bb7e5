package cache

import (
	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

func encodeEntry(e RouteEntry) []byte {
	encoded, _ := binary.Marshal(e)
	return encoded
}

func decodeEntry(bb []byte) (RouteEntry, error) {
	var e RouteEntry
	err := binary.Unmarshal(bb, &e)
	return e, err
}

func compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}
	return bb, nil
}
