package trial

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Target returns a deterministic word index for round using
// BLAKE2b-256 keyed by salt over the big-endian round number, modulo n.
func Target(salt string, round, n int) int {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(round))
	return index(salt, buf[:], n)
}

// DailyTarget returns a deterministic word index for the UTC date of t.
func DailyTarget(t time.Time, salt string, n int) int {
	return index(salt, []byte(DateKey(t)), n)
}

func index(salt string, msg []byte, n int) int {
	if n <= 0 {
		return 0
	}
	h, err := blake2b.New256(key(salt))
	if err != nil {
		// key() never exceeds blake2b.Size
		panic(err)
	}
	h.Write(msg)
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// key returns salt as a BLAKE2b key, pre-hashing salts longer than the 64-byte limit.
func key(salt string) []byte {
	if len(salt) > blake2b.Size {
		sum := blake2b.Sum512([]byte(salt))
		return sum[:]
	}
	return []byte(salt)
}
