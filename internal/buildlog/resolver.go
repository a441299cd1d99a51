package buildlog

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSuffixCacheSize bounds the leaf-source memo of one run.
const DefaultSuffixCacheSize = 4096

// leafCache memoizes IsLeafSource for the lifetime of one run.
type leafCache struct {
	cache *lru.Cache[string, bool]
}

func newLeafCache(size int) (*leafCache, error) {
	if size <= 0 {
		size = DefaultSuffixCacheSize
	}
	cache, err := lru.New[string, bool](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create suffix cache: %w", err)
	}
	return &leafCache{cache: cache}, nil
}

func (c *leafCache) isLeaf(path string) bool {
	key := pathKey(path)
	if leaf, ok := c.cache.Get(key); ok {
		return leaf
	}
	leaf := IsLeafSource(key)
	c.cache.Add(key, leaf)
	return leaf
}

// resolver links items through the aggregator's indices once every line is read.
type resolver struct {
	agg    *Aggregator
	leaves *leafCache
	report func(line int, format string, args ...any)
}

// resolve runs both passes: dependencies for target-index items, then target
// references for source-index items and compile items.
func (r *resolver) resolve() {
	for _, item := range r.agg.targetItems() {
		r.resolveDependencies(item)
	}

	refs := r.agg.sourceItems()
	for _, item := range r.agg.items {
		if item.Kind().IsCompile() && item.TargetFile() != "" {
			refs = append(refs, item)
		}
	}
	for _, item := range refs {
		r.resolveTarget(item)
	}
}

func (r *resolver) resolveDependencies(item Item) {
	b := item.base()
	for _, src := range item.AllSources() {
		if r.leaves.isLeaf(src) {
			continue
		}
		if line, ok := r.producerOf(item, src); ok {
			b.addDependency(line)
			continue
		}
		r.report(item.Line(), "unresolved dependency '%s'", src)
	}
}

// producerOf finds the item that produces path. Source-index entries count only
// when their own target is the path.
func (r *resolver) producerOf(item Item, path string) (int, bool) {
	key := pathKey(path)
	for _, line := range r.agg.sourceIndex[key] {
		if line == item.Line() {
			continue
		}
		other := r.agg.byLine[line]
		if other.TargetFile() != "" && pathKey(other.TargetFile()) == key {
			return line, true
		}
	}
	if line, ok := r.agg.targetIndex[key]; ok && line != item.Line() {
		return line, true
	}
	return 0, false
}

func (r *resolver) resolveTarget(item Item) {
	target := item.TargetFile()
	if target == "" {
		return
	}
	key := pathKey(target)
	for _, line := range r.agg.sourceIndex[key] {
		if line != item.Line() {
			item.base().targetRef = line
			return
		}
	}
	// Only a manifest resolves through the target index: its reference is the
	// producer of the image it rewrites.
	if item.Kind() == KindManifest {
		if line, ok := r.agg.targetIndex[key]; ok && line != item.Line() {
			item.base().targetRef = line
			return
		}
	}
	r.report(item.Line(), "unresolved target '%s'", target)
}
