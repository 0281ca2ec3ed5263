package resolver

import (
	"sort"
	"time"
)

// ResourceRecord is the ledger metadata of one resource revision.
type ResourceRecord struct {
	ID                string
	CollectionID      string
	Name              string
	Type              string
	Version           string
	MediaType         string
	Created           time.Time
	Checksum          string
	PreviousVersionID string
	NextVersionID     string
}

// SelectRevision picks the newest record with exactly the given name and
// type created strictly before before. Times are compared at whole-second
// precision.
func SelectRevision(records []ResourceRecord, name, typ string, before time.Time) (ResourceRecord, bool) {
	candidates := make([]ResourceRecord, 0, len(records))
	for _, rec := range records {
		if rec.Name == name && rec.Type == typ {
			candidates = append(candidates, rec)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Created.After(candidates[j].Created)
	})

	limit := before.Unix()
	for _, rec := range candidates {
		if rec.Created.Unix() < limit {
			return rec, true
		}
	}
	return ResourceRecord{}, false
}
