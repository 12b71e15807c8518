package resolve

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds each resolver cache when no size is configured.
const DefaultCacheSize = 4096

type scope int

const (
	scopeInstance scope = iota
	scopeStatic
	scopeConstructor
	scopeField
	scopeStaticField
)

type key struct {
	subject reflect.Type
	scope   scope
	name    string
	sig     string
	fuzzy   bool
}

// cache memoises resolutions with insert-if-absent semantics: when two
// goroutines resolve the same key concurrently the first stored member wins
// and the other is dropped.
type cache struct {
	lru *lru.Cache[key, *Member]
}

func newCache(size int) (*cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[key, *Member](size)
	if err != nil {
		return nil, err
	}
	return &cache{lru: c}, nil
}

func (c *cache) load(k key) (*Member, bool) {
	return c.lru.Get(k)
}

func (c *cache) store(k key, m *Member) *Member {
	if prev, ok, _ := c.lru.PeekOrAdd(k, m); ok {
		return prev
	}
	return m
}

var (
	typeIDs sync.Map // reflect.Type -> uint64
	lastID  atomic.Uint64
)

// signature encodes a parameter-type list by type identity.
func signature(ts []reflect.Type) string {
	var b strings.Builder
	for i, t := range ts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(typeID(t), 36))
	}
	return b.String()
}

func typeID(t reflect.Type) uint64 {
	if t == nil {
		return 0
	}
	if id, ok := typeIDs.Load(t); ok {
		return id.(uint64) //nolint:forcetypeassert
	}
	id, _ := typeIDs.LoadOrStore(t, lastID.Add(1))
	return id.(uint64) //nolint:forcetypeassert
}
