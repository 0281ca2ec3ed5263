package model

import (
	"encoding/json"

	"xdao.co/didcheqd/cheqdpb"
)

const (
	ContextDIDv1       = "https://www.w3.org/ns/did/v1"
	ContextDIDv1Legacy = "https://w3id.org/did/v1"
)

// Verification method types with a dedicated material property.
const (
	TypeEd25519VerificationKey2020 = "Ed25519VerificationKey2020"
	TypeEd25519VerificationKey2018 = "Ed25519VerificationKey2018"
	TypeJSONWebKey2020             = "JsonWebKey2020"
)

// Document is a DID Document in its JSON-LD representation.
type Document struct {
	Context              []string             `json:"@context"`
	ID                   string               `json:"id"`
	Controller           []string             `json:"controller,omitempty"`
	VerificationMethod   []VerificationMethod `json:"verificationMethod,omitempty"`
	Authentication       []string             `json:"authentication,omitempty"`
	AssertionMethod      []json.RawMessage    `json:"assertionMethod,omitempty"`
	CapabilityInvocation []string             `json:"capabilityInvocation,omitempty"`
	CapabilityDelegation []string             `json:"capabilityDelegation,omitempty"`
	KeyAgreement         []string             `json:"keyAgreement,omitempty"`
	Service              []Service            `json:"service,omitempty"`
	AlsoKnownAs          []string             `json:"alsoKnownAs,omitempty"`
}

// VerificationMethod carries its material in exactly one of the publicKey*
// properties, chosen by Type.
type VerificationMethod struct {
	ID                 string          `json:"id"`
	Type               string          `json:"type"`
	Controller         string          `json:"controller"`
	PublicKeyMultibase string          `json:"publicKeyMultibase,omitempty"`
	PublicKeyBase58    string          `json:"publicKeyBase58,omitempty"`
	PublicKeyJwk       json.RawMessage `json:"publicKeyJwk,omitempty"`
	PublicKey          json.RawMessage `json:"publicKey,omitempty"`
}

// Service endpoints render as a string when there is exactly one, otherwise
// as an array.
type Service struct {
	ID              string   `json:"id"`
	Type            string   `json:"type"`
	ServiceEndpoint any      `json:"serviceEndpoint,omitempty"`
	RecipientKeys   []string `json:"recipientKeys,omitempty"`
	RoutingKeys     []string `json:"routingKeys,omitempty"`
	Accept          []string `json:"accept,omitempty"`
	Priority        int32    `json:"priority,omitempty"`
}

// FromDidDoc converts a ledger document. The DID v1 context is appended
// when neither DID v1 context URI is present.
func FromDidDoc(in *cheqdpb.DidDoc) Document {
	if in == nil {
		return Document{Context: []string{ContextDIDv1}}
	}
	out := Document{
		Context:              append([]string(nil), in.Context...),
		ID:                   in.ID,
		Controller:           nonEmpty(in.Controller),
		Authentication:       nonEmpty(in.Authentication),
		CapabilityInvocation: nonEmpty(in.CapabilityInvocation),
		CapabilityDelegation: nonEmpty(in.CapabilityDelegation),
		KeyAgreement:         nonEmpty(in.KeyAgreement),
		AlsoKnownAs:          nonEmpty(in.AlsoKnownAs),
	}
	if !hasDIDContext(out.Context) {
		out.Context = append(out.Context, ContextDIDv1)
	}

	for _, vm := range in.VerificationMethod {
		if vm == nil {
			continue
		}
		out.VerificationMethod = append(out.VerificationMethod, fromVerificationMethod(vm))
	}

	// embedded assertion methods are stored as JSON strings
	for _, am := range in.AssertionMethod {
		out.AssertionMethod = append(out.AssertionMethod, jsonOrString(am))
	}

	for _, s := range in.Service {
		if s == nil {
			continue
		}
		svc := Service{
			ID:            s.ID,
			Type:          s.ServiceType,
			RecipientKeys: nonEmpty(s.RecipientKeys),
			RoutingKeys:   nonEmpty(s.RoutingKeys),
			Accept:        nonEmpty(s.Accept),
			Priority:      s.Priority,
		}
		switch len(s.ServiceEndpoint) {
		case 0:
		case 1:
			svc.ServiceEndpoint = s.ServiceEndpoint[0]
		default:
			svc.ServiceEndpoint = append([]string(nil), s.ServiceEndpoint...)
		}
		out.Service = append(out.Service, svc)
	}
	return out
}

func fromVerificationMethod(vm *cheqdpb.VerificationMethod) VerificationMethod {
	out := VerificationMethod{
		ID:         vm.ID,
		Type:       vm.VerificationMethodType,
		Controller: vm.Controller,
	}
	material := vm.VerificationMaterial
	switch vm.VerificationMethodType {
	case TypeEd25519VerificationKey2020:
		out.PublicKeyMultibase = material
	case TypeEd25519VerificationKey2018:
		out.PublicKeyBase58 = material
	case TypeJSONWebKey2020:
		if json.Valid([]byte(material)) {
			out.PublicKeyJwk = json.RawMessage(material)
		} else {
			out.PublicKey = jsonString(material)
		}
	default:
		if material != "" {
			out.PublicKey = jsonOrString(material)
		}
	}
	return out
}

func hasDIDContext(ctx []string) bool {
	for _, c := range ctx {
		if c == ContextDIDv1 || c == ContextDIDv1Legacy {
			return true
		}
	}
	return false
}

// jsonOrString keeps s verbatim when it is a JSON value, otherwise encodes it
// as a JSON string.
func jsonOrString(s string) json.RawMessage {
	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	return jsonString(s)
}

// jsonString encodes s as a JSON string. Marshalling a string cannot fail.
func jsonString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func nonEmpty(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return append([]string(nil), in...)
}
