// Package propkey derives partition keys for the dynamostore index table.
package propkey

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
)

// Index computes a hash-distributed partition key for a property index
// record. Hashing the full (class, property, value) triple spreads index
// records across partitions, so equality lookups on hot property values
// do not concentrate on one partition.
func Index(class, property, canonical string) string {
	data := fmt.Sprintf("%s#%s#%s", class, property, canonical)
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:16])
}

// Class computes the sharded class-membership partition key for an
// individual. With numShards=1, all members go to shard "00"; otherwise
// they are distributed by individual ID hash.
func Class(class, id string, numShards int) string {
	if numShards <= 1 {
		return fmt.Sprintf("%s#00", class)
	}
	h := fnv.New32a()
	h.Write([]byte(id))
	shard := h.Sum32() % uint32(numShards)
	return fmt.Sprintf("%s#%02x", class, shard)
}

// ClassShard returns the class-membership partition key of one shard,
// for use when scanning every shard of a class.
func ClassShard(class string, shard int) string {
	return fmt.Sprintf("%s#%02x", class, shard)
}
