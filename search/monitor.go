package search

import "github.com/poiesic/libsearch/core"

// Monitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type Monitor interface {
	Start(rawQuery string)
	Parsed(query Query)
	Matched(result *core.SearchResult)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                {}
func (n *noopMonitor) Parsed(_ Query)                {}
func (n *noopMonitor) Matched(_ *core.SearchResult)  {}
func (n *noopMonitor) Finish(_ []*core.SearchResult) {}
