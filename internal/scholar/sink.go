package scholar

import "fmt"

// Element ids the hosting page is expected to carry. A page missing
// some of them is fine; sinks skip ids they have no element for.
const (
	ElemHIndex      = "h-index"
	ElemCitations   = "citations"
	ElemLastUpdated = "last-updated"
	ElemI10Index    = "i10-index"
	ElemPubCount    = "pub-count"
)

// A Sink receives the formatted metric strings keyed by element id.
// Implementations backed by a document tree silently ignore ids that
// have no matching element.
type Sink interface {
	SetText(id, text string)
}

// Apply writes every formatted metric into the sink.
func Apply(m Metrics, s Sink) {
	s.SetText(ElemHIndex, fmt.Sprintf("H-index: %d", m.HIndex))
	s.SetText(ElemCitations, fmt.Sprintf("Citations: %d", m.TotalCitations))
	s.SetText(ElemLastUpdated, m.LastUpdated)
	s.SetText(ElemI10Index, fmt.Sprintf("i10-index: %d", m.I10Index))
	s.SetText(ElemPubCount, fmt.Sprintf("Publications: %d", m.PublicationsCount))
}

// MapSink records every update; useful in tests and dry runs.
type MapSink map[string]string

func (s MapSink) SetText(id, text string) {
	s[id] = text
}
