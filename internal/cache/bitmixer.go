// Package cache implements the nimber memoization layer: in-memory maps and
// LRU caches backed by github.com/hashicorp/golang-lru for exact lookups, and
// the succinct, fixed-capacity cluster table used when a position space is
// far larger than available memory.
package cache

// BitMixer bijectively scrambles the bits of a key so that keys which differ
// only in their low bits (as sequentially-generated position encodings often
// do) spread evenly across a table. mask selects which low bits of the mixed
// result matter to the caller (table sizes are always powers of two); bits
// outside mask are not guaranteed to be meaningful.
type BitMixer func(key, mask uint64) uint64

// Stafford13's variant 13 64-bit mixer (David Stafford's splitmix64 variants).
func Stafford13(x, mask uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x & mask
}

// Moremur is a refinement of Stafford13 with a slightly better avalanche
// property; probably the best general-purpose choice of the mixers here.
func Moremur(x, mask uint64) uint64 {
	x ^= x >> 27
	x *= 0x3C79AC492BA7B653
	x ^= x >> 33
	x *= 0x1C69B3F74AC4AE35
	x ^= x >> 27
	return x & mask
}

// MX3 mixes with three multiply/xor-shift rounds.
func MX3(x, mask uint64) uint64 {
	x ^= x >> 32
	x *= 0xbea225f9eb34556d
	x ^= x >> 29
	x *= 0xbea225f9eb34556d
	x ^= x >> 32
	x *= 0xbea225f9eb34556d
	x ^= x >> 29
	return x & mask
}

// XMXMX is a cheap two-round mixer.
func XMXMX(x, mask uint64) uint64 {
	x ^= x >> 27
	x *= 0xe9846af9b1a615d
	x ^= x >> 25
	x *= 0xe9846af9b1a615d
	x ^= x >> 27
	return x & mask
}

// Degski is Philippe Degski's 64-bit mixer.
func Degski(x, mask uint64) uint64 {
	x ^= x >> 32
	x *= 0xD6E8FEB86659FD93
	x ^= x >> 32
	x *= 0xD6E8FEB86659FD93
	x ^= x >> 32
	return x & mask
}

// WithoutMixing is the identity mixer, useful for tests and for games whose
// position encoding is already well distributed.
func WithoutMixing(x, mask uint64) uint64 {
	return x & mask
}
