package buildlog

import "sort"

// DirectoryBucket groups the items owned by one directory.
type DirectoryBucket struct {
	Path  string
	Items map[ItemKind][]Item
}

// Count returns the number of items in the bucket.
func (b *DirectoryBucket) Count() int {
	n := 0
	for _, items := range b.Items {
		n += len(items)
	}
	return n
}

// Aggregator owns every registered item for one run: the line-ordered arena,
// the directory buckets and the target/source path indices.
type Aggregator struct {
	items   []Item
	byLine  map[int]Item
	buckets map[string]*DirectoryBucket

	// targetIndex maps a normalized target path to the line of its first producer.
	targetIndex map[string]int
	// sourceIndex maps a normalized source path to the lines of the items consuming it.
	sourceIndex map[string][]int
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		byLine:      make(map[int]Item),
		buckets:     make(map[string]*DirectoryBucket),
		targetIndex: make(map[string]int),
		sourceIndex: make(map[string][]int),
	}
}

// OwnerDirectory picks the bucket directory of an item. Compile items prefer
// their source directory; every other kind prefers its target directory.
func OwnerDirectory(item Item) string {
	sourceDir := dirOf(item.FirstSourceFile())
	targetDir := dirOf(item.TargetFile())

	first, second := targetDir, sourceDir
	if item.Kind().IsCompile() {
		first, second = sourceDir, targetDir
	}
	if first != "" {
		return first
	}
	return second
}

// Register adds a successfully parsed item to its bucket and to the indices.
func (a *Aggregator) Register(item Item) {
	a.items = append(a.items, item)
	a.byLine[item.Line()] = item

	dir := OwnerDirectory(item)
	bucket, ok := a.buckets[dir]
	if !ok {
		bucket = &DirectoryBucket{Path: dir, Items: make(map[ItemKind][]Item)}
		a.buckets[dir] = bucket
	}
	bucket.Items[item.Kind()] = append(bucket.Items[item.Kind()], item)

	if item.Kind() != KindManifest && item.TargetFile() != "" {
		key := pathKey(item.TargetFile())
		if _, claimed := a.targetIndex[key]; !claimed {
			a.targetIndex[key] = item.Line()
		}
	}
	if !item.Kind().IsCompile() {
		a.addSources(item, item.AllSources())
	}
}

func (a *Aggregator) addSources(item Item, sources []string) {
	for _, src := range sources {
		key := pathKey(src)
		lines := a.sourceIndex[key]
		if len(lines) > 0 && lines[len(lines)-1] == item.Line() {
			continue
		}
		a.sourceIndex[key] = append(lines, item.Line())
	}
}

// Items returns the registered items in line order.
func (a *Aggregator) Items() []Item {
	return append([]Item(nil), a.items...)
}

// Item returns the registered item at line.
func (a *Aggregator) Item(line int) (Item, bool) {
	item, ok := a.byLine[line]
	return item, ok
}

// Buckets returns the directory buckets keyed by directory.
func (a *Aggregator) Buckets() map[string]*DirectoryBucket {
	return a.buckets
}

// Directories returns the bucket directories in sorted order.
func (a *Aggregator) Directories() []string {
	dirs := make([]string, 0, len(a.buckets))
	for dir := range a.buckets {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// Producer returns the line of the item registered as producing path.
func (a *Aggregator) Producer(path string) (int, bool) {
	line, ok := a.targetIndex[pathKey(path)]
	return line, ok
}

// Consumers returns the lines of the non-compile items listing path as a source.
func (a *Aggregator) Consumers(path string) []int {
	return append([]int(nil), a.sourceIndex[pathKey(path)]...)
}

// targetItems returns the items present in the target index, in line order.
func (a *Aggregator) targetItems() []Item {
	var out []Item
	for _, item := range a.items {
		if item.TargetFile() == "" {
			continue
		}
		if line, ok := a.targetIndex[pathKey(item.TargetFile())]; ok && line == item.Line() {
			out = append(out, item)
		}
	}
	return out
}

// sourceItems returns the items present in the source index, in line order.
func (a *Aggregator) sourceItems() []Item {
	seen := make(map[int]bool)
	for _, lines := range a.sourceIndex {
		for _, line := range lines {
			seen[line] = true
		}
	}
	var out []Item
	for _, item := range a.items {
		if seen[item.Line()] {
			out = append(out, item)
		}
	}
	return out
}
