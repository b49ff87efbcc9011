// Package phf implements a CHD-style ("compress, hash, displace") perfect
// hash map for fixed key sets, the dispatch table underneath the property
// registry (cascade) and presentation-attribute whitelist.
//
// Go has no portable constexpr/compile-time evaluation, so unlike the
// donner C++ original (donner/base/CompileTimeMap.h, built as a
// constexpr value at compile time) the table here is built once at
// package-init time by calling Build with a literal key/value slice — the
// codegen escape hatch the spec allows for languages without compile-time
// evaluation. The algorithm, constants, and failure modes are otherwise a
// direct port: bucket-then-seed-search construction, seed bound 1024, and
// a mandatory secondary equality check on lookup so a foreign key can
// never produce a false positive.
package phf

import (
	"hash/fnv"
	"sort"
)

const (
	maxSeedSearch  = 1024
	emptySlot      = ^uint32(0)
	directSlotLimit = emptySlot / 2
)

// Status describes how a Map's tables ended up.
type Status int

const (
	// StatusOK means every key was placed via perfect hashing.
	StatusOK Status = iota
	// StatusFallback means the key type couldn't be hashed at build time;
	// Map falls back to a runtime linear scan.
	StatusFallback
	// StatusDuplicateKey means the same key appeared twice; the map still
	// answers queries (first occurrence wins) via linear scan.
	StatusDuplicateKey
	// StatusSeedSearchFailed means a bucket exhausted all 1024 seeds
	// during the build; the map falls back to linear scan.
	StatusSeedSearchFailed
)

// Diagnostics records build-time statistics, mirroring the spec's
// {seed-attempts, max-bucket-size, failed-bucket}.
type Diagnostics struct {
	SeedAttempts   int
	MaxBucketSize  int
	FailedBucket   int // -1 if no bucket failed
}

// Key is anything hashable with FNV-1a over its string form, matching the
// "strings: FNV-1a" rule in the spec's build algorithm. Integer and enum
// keys in the donner original use a multiply-by-prime hash instead; Go
// callers of this package key almost exclusively off CSS/SVG identifiers
// (property names, attribute names), so a single string-keyed hash covers
// every concrete use without needing a type-switch per key kind.
type Key = string

// Pair is one key/value pair as given to Build. Using a slice rather than
// a Go map lets Build detect a duplicate key in the input, which a map
// literal could never contain in the first place.
type Pair[V any] struct {
	Key   Key
	Value V
}

type entry[V any] struct {
	key   Key
	value V
}

// Map is a built perfect-hash table from Key to V.
type Map[V any] struct {
	status      Status
	bucketCount uint32
	primary     []uint32 // bucketCount entries: emptySlot, a direct index, or directSlotLimit+seed
	secondary   []uint32 // bucketCount entries: direct key index, valid only when addressed via a seed
	entries     []entry[V]
	diagnostics Diagnostics
}

func hashKey(k Key) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k))
	return h.Sum64()
}

func mixHash(base uint64, seed uint32) uint64 {
	seedMix := uint64(seed) * 0x9e3779b97f4a7c15
	v := base ^ seedMix
	v ^= v >> 33
	v *= 0xff51afd7ed558ccd
	v ^= v >> 33
	v *= 0xc4ceb9fe1a85ec53
	v ^= v >> 33
	return v
}

// Build constructs a perfect-hash Map from the given key/value pairs.
// Duplicate keys resolve status StatusDuplicateKey, with the first
// occurrence winning lookups (the table is still built from the
// deduplicated key set); if any bucket's seed search exhausts
// maxSeedSearch, the whole map falls back to linear scan with
// StatusSeedSearchFailed. Both fallback statuses still answer Find
// correctly — they're slower, not wrong.
func Build[V any](pairs []Pair[V]) *Map[V] {
	seen := make(map[Key]bool, len(pairs))
	entries := make([]entry[V], 0, len(pairs))
	hasDuplicate := false
	for _, p := range pairs {
		if seen[p.Key] {
			hasDuplicate = true
			continue
		}
		seen[p.Key] = true
		entries = append(entries, entry[V]{key: p.Key, value: p.Value})
	}
	// Stable key order so repeated builds (and tests) are deterministic.
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	m := &Map[V]{entries: entries, diagnostics: Diagnostics{FailedBucket: -1}}
	if hasDuplicate {
		m.status = StatusDuplicateKey
	}

	n := uint32(len(entries))
	if n == 0 {
		if m.status != StatusDuplicateKey {
			m.status = StatusOK
		}
		return m
	}

	buckets := make([][]int, n)
	for i, e := range entries {
		b := uint32(hashKey(e.key) % uint64(n))
		buckets[b] = append(buckets[b], i)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = int(i)
	}
	sort.Slice(order, func(i, j int) bool { return len(buckets[order[i]]) > len(buckets[order[j]]) })

	primary := make([]uint32, n)
	for i := range primary {
		primary[i] = emptySlot
	}
	secondary := make([]uint32, n)
	for i := range secondary {
		secondary[i] = emptySlot
	}
	used := make([]bool, n)

	failed := false
	for _, b := range order {
		keyIdxs := buckets[b]
		if len(keyIdxs) == 0 {
			continue
		}
		if len(keyIdxs) > m.diagnostics.MaxBucketSize {
			m.diagnostics.MaxBucketSize = len(keyIdxs)
		}
		if len(keyIdxs) == 1 {
			slot := uint32(b)
			if !used[slot] {
				primary[b] = uint32(keyIdxs[0])
				used[slot] = true
				continue
			}
		}

		placed := false
		for seed := uint32(1); seed <= maxSeedSearch; seed++ {
			m.diagnostics.SeedAttempts++
			slots := make([]uint32, len(keyIdxs))
			ok := true
			seenSlot := make(map[uint32]bool, len(keyIdxs))
			for i, keyIdx := range keyIdxs {
				slot := uint32(mixHash(hashKey(entries[keyIdx].key), seed) % uint64(n))
				if used[slot] || seenSlot[slot] {
					ok = false
					break
				}
				seenSlot[slot] = true
				slots[i] = slot
			}
			if !ok {
				continue
			}
			for i, keyIdx := range keyIdxs {
				used[slots[i]] = true
				secondary[slots[i]] = uint32(keyIdx)
			}
			primary[b] = directSlotLimit + seed
			placed = true
			break
		}
		if !placed {
			failed = true
			if m.diagnostics.FailedBucket == -1 {
				m.diagnostics.FailedBucket = b
			}
			break
		}
	}

	if failed {
		m.status = StatusSeedSearchFailed
		return m
	}
	if m.status != StatusDuplicateKey {
		m.status = StatusOK
	}
	m.bucketCount = n
	m.primary = primary
	m.secondary = secondary
	return m
}

// BuildFromMap is a convenience wrapper for the common case — the
// dispatch tables in cascade and csscolor are always assembled from a Go
// map literal, which structurally cannot contain a duplicate key.
func BuildFromMap[V any](m map[Key]V) *Map[V] {
	pairs := make([]Pair[V], 0, len(m))
	for k, v := range m {
		pairs = append(pairs, Pair[V]{Key: k, Value: v})
	}
	return Build(pairs)
}

// Status reports how the map ended up being built.
func (m *Map[V]) Status() Status { return m.status }

// BucketCount returns the table's bucket count, or 0 when the map is
// operating purely in fallback (linear-scan) mode.
func (m *Map[V]) BucketCount() uint32 {
	if m.status == StatusSeedSearchFailed || m.status == StatusFallback {
		return 0
	}
	return m.bucketCount
}

// Diagnostics returns the build-time statistics.
func (m *Map[V]) Diagnostics() Diagnostics { return m.diagnostics }

// Find looks up k. The secondary equality check is mandatory: perfect
// hashing only guarantees no collisions among the built key set, so any
// key outside it must still be rejected rather than returning a
// neighboring bucket's value.
func (m *Map[V]) Find(k Key) (V, bool) {
	var zero V
	if m.status == StatusSeedSearchFailed || m.status == StatusFallback || m.status == StatusDuplicateKey {
		for _, e := range m.entries {
			if e.key == k {
				return e.value, true
			}
		}
		return zero, false
	}
	if m.bucketCount == 0 {
		return zero, false
	}
	bucket := hashKey(k) % uint64(m.bucketCount)
	seedOrIndex := m.primary[bucket]
	if seedOrIndex == emptySlot {
		return zero, false
	}
	if seedOrIndex < directSlotLimit {
		e := m.entries[seedOrIndex]
		if e.key == k {
			return e.value, true
		}
		return zero, false
	}
	seed := seedOrIndex - directSlotLimit
	slot := mixHash(hashKey(k), seed) % uint64(m.bucketCount)
	idx := m.secondary[slot]
	if idx == emptySlot {
		return zero, false
	}
	e := m.entries[idx]
	if e.key == k {
		return e.value, true
	}
	return zero, false
}
