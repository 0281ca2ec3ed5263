package model

import "encoding/json"

const (
	MediaTypeDIDLDJSON        = "application/did+ld+json"
	MediaTypeDIDJSON          = "application/did+json"
	MediaTypeResolutionResult = `application/ld+json;profile="https://w3id.org/did-resolution"`
)

// ResolutionMetadata is the didResolutionMetadata of a resolution result.
type ResolutionMetadata struct {
	ContentType string    `json:"contentType,omitempty"`
	Error       ErrorCode `json:"error,omitempty"`
	Message     string    `json:"message,omitempty"`
	DID         *DIDInfo  `json:"did,omitempty"`
}

// DIDInfo echoes the parsed identifier back to the caller.
type DIDInfo struct {
	DIDString        string `json:"didString"`
	MethodSpecificID string `json:"methodSpecificId"`
	Method           string `json:"method"`
}

// ResolutionResult is the JSON envelope served by the HTTP driver.
//
// Document holds the serialized representation so canonical output survives
// re-encoding; it is null on failure.
type ResolutionResult struct {
	Context            string             `json:"@context"`
	Document           json.RawMessage    `json:"didDocument"`
	DocumentMetadata   *DocumentMetadata  `json:"didDocumentMetadata"`
	ResolutionMetadata ResolutionMetadata `json:"didResolutionMetadata"`
}

const resolutionContext = "https://w3id.org/did-resolution/v1"

// NewResolutionResult wraps a serialized document.
func NewResolutionResult(doc []byte, meta *DocumentMetadata, rm ResolutionMetadata) ResolutionResult {
	raw := json.RawMessage("null")
	if len(doc) > 0 {
		raw = json.RawMessage(doc)
	}
	if meta == nil {
		meta = &DocumentMetadata{}
	}
	return ResolutionResult{Context: resolutionContext, Document: raw, DocumentMetadata: meta, ResolutionMetadata: rm}
}

// ErrorResult builds the envelope for a failed resolution.
func ErrorResult(err error) ResolutionResult {
	return NewResolutionResult(nil, nil, ResolutionMetadata{Error: Classify(err), Message: err.Error()})
}
