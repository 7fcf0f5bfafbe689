package report

import (
	"sort"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// DomainCount is one row of the per-domain breakdown.
type DomainCount struct {
	// Domain is the registered domain (eTLD+1), or a placeholder for
	// records without one.
	Domain string `json:"domain"`

	// Count is the number of records under that domain, subdomains
	// included.
	Count int64 `json:"count"`
}

// noDomainLabel groups records whose identifier carries no domain chunk
// (no email) or whose chunk does not reduce to a registered domain.
const noDomainLabel = "(no domain)"

// Stats summarizes the store for the stats command.
type Stats struct {
	// TotalAccounts is the number of stored records.
	TotalAccounts int64 `json:"total_accounts"`

	// Domains is the per-registered-domain breakdown, descending by
	// count.
	Domains []DomainCount `json:"domains"`

	domains map[string]int64
}

// NewStats creates an empty Stats with the given total.
func NewStats(total int64) *Stats {
	return &Stats{
		TotalAccounts: total,
		domains:       make(map[string]int64),
	}
}

// AddChunk folds one identifier domain chunk into the breakdown.
//
// The chunk is byte-reversed back into a domain and reduced to its
// registered domain (eTLD+1), so mail.example.com and www.example.com
// roll up under example.com. Chunks that don't reduce (bare TLDs,
// empty chunks from email-less records) land under a placeholder.
func (s *Stats) AddChunk(chunk string, count int64) {
	domain := reverseString(chunk)

	registered, err := publicsuffix.EffectiveTLDPlusOne(strings.Trim(domain, "."))
	if err != nil || registered == "" {
		s.domains[noDomainLabel] += count
		return
	}
	s.domains[registered] += count
}

// Finalize sorts the breakdown descending by count and caps it at limit
// rows (0 means no cap). Call after the last AddChunk.
func (s *Stats) Finalize(limit int) {
	s.Domains = make([]DomainCount, 0, len(s.domains))
	for domain, count := range s.domains {
		s.Domains = append(s.Domains, DomainCount{Domain: domain, Count: count})
	}

	sort.Slice(s.Domains, func(i, j int) bool {
		if s.Domains[i].Count != s.Domains[j].Count {
			return s.Domains[i].Count > s.Domains[j].Count
		}
		return s.Domains[i].Domain < s.Domains[j].Domain
	})

	if limit > 0 && len(s.Domains) > limit {
		s.Domains = s.Domains[:limit]
	}
}

// reverseString returns a byte-reversed copy of s, undoing the identifier's
// domain-chunk reversal.
func reverseString(s string) string {
	b := []byte(s)
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return string(out)
}
