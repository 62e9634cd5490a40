package retrieval

import "github.com/poiesic/mailtriage/core"

// Monitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps during search.
type Monitor interface {
	Start(query string)
	AfterQueryEmbedding(vector []float32)
	AfterSimilaritySearch(matches []*core.ChunkMatch)
	Finish(candidates []core.ProductCandidate)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                             {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32)            {}
func (n *noopMonitor) AfterSimilaritySearch(_ []*core.ChunkMatch) {}
func (n *noopMonitor) Finish(_ []core.ProductCandidate)           {}
