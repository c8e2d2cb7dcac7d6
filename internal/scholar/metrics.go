// Package scholar holds the citation metrics record of the portfolio
// site and the artifacts generated from it.
package scholar

import "time"

// Metrics is the citation metrics record published on the site.
// Read-only once produced; the CrossRef fields are supplementary and
// may be absent.
type Metrics struct {
	HIndex            int    `json:"h_index"`
	I10Index          int    `json:"i10_index"`
	TotalCitations    int    `json:"total_citations"`
	PublicationsCount int    `json:"publications_count"`
	LastUpdated       string `json:"last_updated"`
	ScholarID         string `json:"scholar_id"`
	Source            string `json:"source"`
	AuthorName        string `json:"author_name"`

	TotalCitationsCrossref int `json:"total_citations_crossref,omitempty"`
	PublicationsCrossref   int `json:"publications_crossref,omitempty"`
}

// Supplement carries the backup counts fetched from CrossRef.
type Supplement struct {
	TotalCitations int
	Publications   int
}

// FallbackValues are the hand-maintained metrics used when no API
// source is reachable. Updated periodically from the actual profile.
type FallbackValues struct {
	HIndex            int `koanf:"h_index" yaml:"h_index"`
	I10Index          int `koanf:"i10_index" yaml:"i10_index"`
	TotalCitations    int `koanf:"total_citations" yaml:"total_citations"`
	PublicationsCount int `koanf:"publications_count" yaml:"publications_count"`
}

// FromFallback builds a full record from the hand-maintained values.
func FromFallback(v FallbackValues, authorName, scholarID string, now time.Time) Metrics {
	return Metrics{
		HIndex:            v.HIndex,
		I10Index:          v.I10Index,
		TotalCitations:    v.TotalCitations,
		PublicationsCount: v.PublicationsCount,
		LastUpdated:       now.Format("2006-01-02"),
		ScholarID:         scholarID,
		Source:            "Manual (fallback)",
		AuthorName:        authorName,
	}
}

// WithSupplement returns a copy of m carrying the CrossRef counts.
func (m Metrics) WithSupplement(s Supplement) Metrics {
	m.TotalCitationsCrossref = s.TotalCitations
	m.PublicationsCrossref = s.Publications
	return m
}
