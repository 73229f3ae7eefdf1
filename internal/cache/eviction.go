package cache

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	PolicyLeastHit = "least-hit"
	PolicyLRU      = "lru"
)

// EntryInfo is what an EvictionPolicy sees of a cached entry.
type EntryInfo struct {
	Key        string
	Hits       uint64
	LastAccess time.Time
	ExpiresAt  time.Time
}

// EvictionPolicy chooses which entries leave a full cache.
type EvictionPolicy interface {
	// Victims returns up to n keys to remove.
	Victims(entries []EntryInfo, n int) []string
}

// LeastHit evicts the entries read the fewest times, oldest access first among equals.
type LeastHit struct{}

func (LeastHit) Victims(entries []EntryInfo, n int) []string {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Hits != entries[j].Hits {
			return entries[i].Hits < entries[j].Hits
		}
		if !entries[i].LastAccess.Equal(entries[j].LastAccess) {
			return entries[i].LastAccess.Before(entries[j].LastAccess)
		}
		return entries[i].Key < entries[j].Key
	})
	return keys(entries, n)
}

// LRU evicts the least recently accessed entries.
type LRU struct{}

func (LRU) Victims(entries []EntryInfo, n int) []string {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].LastAccess.Equal(entries[j].LastAccess) {
			return entries[i].LastAccess.Before(entries[j].LastAccess)
		}
		return entries[i].Key < entries[j].Key
	})
	return keys(entries, n)
}

func keys(entries []EntryInfo, n int) []string {
	n = min(n, len(entries))
	result := make([]string, n)
	for i := 0; i < n; i++ {
		result[i] = entries[i].Key
	}
	return result
}

// ParsePolicy returns the policy registered under name.
func ParsePolicy(name string) (EvictionPolicy, error) {
	switch name {
	case PolicyLeastHit, "":
		return LeastHit{}, nil
	case PolicyLRU:
		return LRU{}, nil
	}
	return nil, fmt.Errorf("unknown eviction policy %q", name)
}

// evictionCount is the number of entries to drop from a full cache of size: fraction of it, rounded up.
func evictionCount(size int, fraction float64) int {
	return max(1, int(math.Ceil(float64(size)*fraction)))
}
