package board

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"
)

// MoveCache is a bounded LRU cache from a composite position digest to a
// precomputed legal-move list, following ristretto's own usage pattern
// directly.
type MoveCache struct {
	cache *ristretto.Cache[uint64, []InternalMove]
}

// NewMoveCache builds a move cache whose total cost is bounded by
// capacity; each entry costs its move count plus one (see Put), so
// capacity bounds cached moves plus entries, not the entry count alone.
func NewMoveCache(capacity int64) (*MoveCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[uint64, []InternalMove]{
		NumCounters: capacity * 10,
		MaxCost:     capacity,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &MoveCache{cache: c}, nil
}

// Digest computes the composite cache key for a position: with no active
// deploy session (empty tag) it is the zobrist key unchanged; otherwise it
// is the xxhash of the zobrist key's bytes followed by the session's Tag,
// so two positions with identical boards but different in-flight deploy
// sessions get different keys.
func Digest(zobrist uint64, deploySessionTag []byte) uint64 {
	if len(deploySessionTag) == 0 {
		return zobrist
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], zobrist)
	h := xxhash.New()
	h.Write(buf[:])
	h.Write(deploySessionTag)
	return h.Sum64()
}

// Get looks up a cached move list by digest.
func (mc *MoveCache) Get(digest uint64) ([]InternalMove, bool) {
	v, ok := mc.cache.Get(digest)
	if !ok {
		return nil, false
	}
	return v, true
}

// Put stores moves under digest with a cost proportional to list length.
func (mc *MoveCache) Put(digest uint64, moves []InternalMove) {
	mc.cache.Set(digest, moves, int64(len(moves))+1)
}

// Clear empties the cache, e.g. on a FEN reload.
func (mc *MoveCache) Clear() {
	mc.cache.Clear()
}
