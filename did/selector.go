package did

import (
	"time"
)

// Selector identifies which resource a DID URL dereferences to.
// It is either SelectorExactID or SelectorNameTypeTime.
type Selector interface {
	isSelector()
}

// SelectorExactID addresses a resource by its ledger id.
type SelectorExactID struct {
	ID string
}

// SelectorNameTypeTime addresses the latest revision of a named, typed
// resource created strictly before Before.
type SelectorNameTypeTime struct {
	Name   string
	Type   string
	Before time.Time
}

func (SelectorExactID) isSelector()      {}
func (SelectorNameTypeTime) isSelector() {}

// Selector derives the resource selector from the parsed query.
// now is used when resourceVersionTime is absent.
func (p *Parsed) Selector(now time.Time) (Selector, error) {
	if p.Query == nil {
		return nil, NewError(KindInvalidDidURL, "no resource path or query present: "+p.DID)
	}
	if id, ok := p.Query[QueryResourceID]; ok {
		return SelectorExactID{ID: id}, nil
	}

	name, hasName := p.Query[QueryResourceName]
	typ, hasType := p.Query[QueryResourceType]
	if !hasName || !hasType {
		return nil, NewError(KindInvalidDidURL, "resolver can only resolve by exact resource id or name+type combination: "+p.DID)
	}

	before := now
	if raw, ok := p.Query[QueryResourceVersionTime]; ok {
		t, err := ParseTime(raw)
		if err != nil {
			return nil, WrapError(KindInvalidDidURL, "invalid "+QueryResourceVersionTime+" "+raw, err)
		}
		before = t
	}
	return SelectorNameTypeTime{Name: name, Type: typ, Before: before.UTC()}, nil
}

// ParseTime parses an RFC 3339 timestamp, with or without fractional seconds.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
