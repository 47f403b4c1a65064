package opts

import "sync"

// ProgramCache stores compiled expression programs keyed by expression strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// NewProgramCache returns an unbounded, concurrency safe ProgramCache. Rule
// sets are fixed at registry construction so the cache never needs eviction.
func NewProgramCache() ProgramCache {
	return &mapProgramCache{}
}

type mapProgramCache struct {
	programs sync.Map
}

func (c *mapProgramCache) Get(key string) (any, bool) {
	return c.programs.Load(key)
}

func (c *mapProgramCache) Set(key string, value any) {
	c.programs.Store(key, value)
}
