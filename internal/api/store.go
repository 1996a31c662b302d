package api

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of decode results kept when no size is
// configured.
const DefaultCacheSize = 128

// SampleStore keeps the most recent decode results. It is safe for
// concurrent use.
type SampleStore struct {
	cache *lru.Cache[string, *SampleResult]
}

func NewSampleStore(size int) (*SampleStore, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *SampleResult](size)
	if err != nil {
		return nil, err
	}
	return &SampleStore{cache: cache}, nil
}

// Put stores res under its ID and reports whether an older entry was evicted.
func (s *SampleStore) Put(res *SampleResult) bool {
	return s.cache.Add(res.ID, res)
}

func (s *SampleStore) Get(id string) (*SampleResult, bool) {
	return s.cache.Get(id)
}

func (s *SampleStore) Delete(id string) bool {
	return s.cache.Remove(id)
}

// IDs lists stored results from oldest to newest.
func (s *SampleStore) IDs() []string {
	return s.cache.Keys()
}
