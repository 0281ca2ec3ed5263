// Package did parses did:cheqd DIDs and DID URLs into normalized requests.
//
// Accepted forms:
//
//	did:cheqd:<namespace>:<identifier>
//	did:cheqd:<identifier>                       (namespace defaults to mainnet)
//	did:cheqd:<namespace>:<identifier>/resources/<resource-id>
//	did:cheqd:<namespace>:<identifier>/versions/<version-id>
//	did:cheqd:<namespace>:<identifier>?resourceName=...&resourceType=...
//
// The package also defines the error taxonomy shared with the resolver.
package did

import (
	"strings"
)

const (
	// Method is the DID method name handled by this module.
	Method = "cheqd"
	// Prefix is the fixed scheme and method prefix of every accepted input.
	Prefix = "did:" + Method + ":"
	// DefaultNamespace is used when the input omits the namespace.
	DefaultNamespace = "mainnet"
)

// Reserved query keys.
const (
	QueryResourceID          = "resourceId"
	QueryResourceName        = "resourceName"
	QueryResourceType        = "resourceType"
	QueryResourceVersionTime = "resourceVersionTime"
	QueryVersionID           = "versionId"
)

const (
	pathResources = "resources"
	pathVersions  = "versions"
)

// Parsed is the normalized form of a did:cheqd DID or DID URL.
type Parsed struct {
	// DID is the canonical DID with path and query stripped,
	// e.g. did:cheqd:mainnet:zF7rhDBfUt9d1gJPjx7s1J.
	DID string
	// Namespace is the network namespace, DefaultNamespace when omitted.
	Namespace string
	// ID is the method-specific identifier (the resource collection id).
	ID string
	// Query holds the parsed query parameters. It is nil when the input had
	// neither a query string nor a /resources/ path.
	Query map[string]string
	// Version is the requested document version; meaningful only when HasVersion.
	Version    string
	HasVersion bool
}

// Parse parses a did:cheqd DID or DID URL.
func Parse(input string) (*Parsed, error) {
	if !strings.HasPrefix(input, Prefix) {
		return nil, NewError(KindMethodMismatch, "not a did:cheqd string: "+input)
	}

	base, rawQuery, hasQuery := strings.Cut(input, "?")
	rest := base[len(Prefix):]

	idPart, path := rest, ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		idPart, path = rest[:i], rest[i:]
	}

	namespace, id, ok := strings.Cut(idPart, ":")
	if !ok {
		namespace, id = DefaultNamespace, idPart
	}

	p := &Parsed{
		DID:       Prefix + namespace + ":" + id,
		Namespace: namespace,
		ID:        id,
	}
	if hasQuery {
		p.Query = parseQuery(rawQuery)
	}

	if path != "" {
		if err := p.applyPath(path); err != nil {
			return nil, err
		}
	}

	if v, ok := p.Query[QueryVersionID]; ok {
		p.Version, p.HasVersion = v, true
	}
	return p, nil
}

func (p *Parsed) applyPath(path string) error {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
		return NewError(KindMalformedPath, "unsupported path format; expected /resources/<id> or /versions/<id>: "+path)
	}

	switch kind, value := segments[0], segments[1]; kind {
	case pathResources:
		if p.Query == nil {
			p.Query = make(map[string]string, 1)
		}
		p.Query[QueryResourceID] = value
	case pathVersions:
		p.Version, p.HasVersion = value, true
	default:
		return NewError(KindUnsupportedPathSegment, "unsupported path segment "+kind+"; only `resources` and `versions` are accepted")
	}
	return nil
}

// parseQuery splits key=value pairs separated by '&'. Pairs without '=' are
// ignored and the last occurrence of a key wins. Values are kept verbatim.
func parseQuery(q string) map[string]string {
	out := make(map[string]string)
	for _, kv := range strings.Split(q, "&") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}

// IsResourceReference reports whether a method-specific id must be treated as
// a resource reference rather than a plain DID. Any '/' or '?' qualifies.
//
// An identifier embedding an unescaped '?' is classified as a resource
// reference too; callers relying on such identifiers must escape them.
func IsResourceReference(methodSpecificID string) bool {
	return strings.ContainsAny(methodSpecificID, "/?")
}

// String renders the DID URL of the parsed request without its query.
func (p *Parsed) String() string {
	if p == nil {
		return ""
	}
	if id, ok := p.Query[QueryResourceID]; ok {
		return ResourceURI(p.DID, id)
	}
	if p.HasVersion {
		return p.DID + "/" + pathVersions + "/" + p.Version
	}
	return p.DID
}

// ResourceURI returns the DID URL addressing a resource by exact id.
func ResourceURI(canonicalDID, resourceID string) string {
	return canonicalDID + "/" + pathResources + "/" + resourceID
}
