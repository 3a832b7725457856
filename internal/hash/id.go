// Package hash provides the fingerprint function used to detect when two
// telescope-id tables describe the same configuration, so a Registry can
// reuse an already-built slot-index map instead of rebuilding it.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// TelescopeIDs computes a fingerprint of an ordered telescope-id list by
// hashing the little-endian int32 encoding of each id. Two RunHeader
// records with identical telescope-id ordering fingerprint identically.
func TelescopeIDs(ids []int32) uint64 {
	buf := make([]byte, 4*len(ids))
	for i, id := range ids {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(id)) //nolint:gosec
	}

	return xxhash.Sum64(buf)
}
