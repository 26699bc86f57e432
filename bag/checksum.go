package bag

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Checksum returns the hex-encoded BLAKE2b-256 digest of the bag's JSON
// encoding. Bags with equal content in equal order share a checksum, which
// makes it usable as a cache key for request data.
func (b *Bag) Checksum() (string, error) {
	data, err := b.MarshalJSON()
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
