package export

import (
	"sort"

	"github.com/ternarybob/buildlog/internal/buildlog"
)

// kindOrder ranks item kinds by their report order
var kindOrder = func() map[string]int {
	order := make(map[string]int, len(buildlog.AllKinds))
	for i, kind := range buildlog.AllKinds {
		order[kind.String()] = i
	}
	return order
}()

func sortedKinds[V any](m map[string]V) []string {
	kinds := make([]string, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		oi, iok := kindOrder[kinds[i]]
		oj, jok := kindOrder[kinds[j]]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return kinds[i] < kinds[j]
	})
	return kinds
}
