package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}

// Source is a random source backed by crypto/rand.
type Source struct{}

func (Source) Intn(n int) int {
	return RandIntn(n)
}

// HexSHA256 returns the 0x-prefixed hex encoding of the sha256 digest of b.
func HexSHA256(b []byte) string {
	hashed := sha256.Sum256(b)
	return "0x" + hex.EncodeToString(hashed[:])
}
