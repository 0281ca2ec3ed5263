package model

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"xdao.co/didcheqd/cheqdpb"
	"xdao.co/didcheqd/resolver"
)

// DocumentMetadata is the didDocumentMetadata of a resolution result.
type DocumentMetadata struct {
	Created                string             `json:"created,omitempty"`
	Updated                string             `json:"updated,omitempty"`
	Deactivated            bool               `json:"deactivated"`
	VersionID              string             `json:"versionId,omitempty"`
	NextVersionID          string             `json:"nextVersionId,omitempty"`
	PreviousVersionID      string             `json:"previousVersionId,omitempty"`
	LinkedResourceMetadata []ResourceMetadata `json:"linkedResourceMetadata,omitempty"`
}

// ResourceMetadata describes one resource, addressed by URI.
type ResourceMetadata struct {
	URI               string `json:"uri"`
	CollectionID      string `json:"collectionId"`
	ID                string `json:"id"`
	Name              string `json:"name"`
	Type              string `json:"type"`
	Version           string `json:"version,omitempty"`
	MediaType         string `json:"mediaType"`
	Created           string `json:"created,omitempty"`
	Checksum          string `json:"checksum,omitempty"`
	PreviousVersionID string `json:"previousVersionId,omitempty"`
	NextVersionID     string `json:"nextVersionId,omitempty"`
}

// FromDidDocMetadata converts ledger metadata; linked is attached as
// linkedResourceMetadata when non-empty.
func FromDidDocMetadata(in *cheqdpb.DidDocMetadata, linked []ResourceMetadata) DocumentMetadata {
	var out DocumentMetadata
	if in != nil {
		out = DocumentMetadata{
			Created:           formatTimestamp(in.Created),
			Updated:           formatTimestamp(in.Updated),
			Deactivated:       in.Deactivated,
			VersionID:         in.VersionID,
			NextVersionID:     in.NextVersionID,
			PreviousVersionID: in.PreviousVersionID,
		}
	}
	if len(linked) > 0 {
		out.LinkedResourceMetadata = linked
	}
	return out
}

// FromResourceRecord converts a resource record reachable at uri.
func FromResourceRecord(uri string, rec resolver.ResourceRecord) ResourceMetadata {
	return ResourceMetadata{
		URI:               uri,
		CollectionID:      rec.CollectionID,
		ID:                rec.ID,
		Name:              rec.Name,
		Type:              rec.Type,
		Version:           rec.Version,
		MediaType:         rec.MediaType,
		Created:           FormatTime(rec.Created),
		Checksum:          rec.Checksum,
		PreviousVersionID: rec.PreviousVersionID,
		NextVersionID:     rec.NextVersionID,
	}
}

// FormatTime renders t as RFC 3339 in UTC; the zero time renders empty.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimestamp(ts *timestamppb.Timestamp) string {
	if ts == nil {
		return ""
	}
	return FormatTime(ts.AsTime())
}
