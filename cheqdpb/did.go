package cheqdpb

import (
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// DidDoc mirrors cheqd.did.v2.DidDoc.
type DidDoc struct {
	Context              []string
	ID                   string
	Controller           []string
	VerificationMethod   []*VerificationMethod
	Authentication       []string
	AssertionMethod      []string
	CapabilityInvocation []string
	CapabilityDelegation []string
	KeyAgreement         []string
	Service              []*Service
	AlsoKnownAs          []string
}

func (m *DidDoc) MarshalWire() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var e encoder
	e.strings(1, m.Context)
	e.string(2, m.ID)
	e.strings(3, m.Controller)
	for _, vm := range m.VerificationMethod {
		e.message(4, vm, vm != nil)
	}
	e.strings(5, m.Authentication)
	e.strings(6, m.AssertionMethod)
	e.strings(7, m.CapabilityInvocation)
	e.strings(8, m.CapabilityDelegation)
	e.strings(9, m.KeyAgreement)
	for _, s := range m.Service {
		e.message(10, s, s != nil)
	}
	e.strings(11, m.AlsoKnownAs)
	return e.done()
}

func (m *DidDoc) UnmarshalWire(b []byte) error {
	*m = DidDoc{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readRepeatedString(typ, v, &m.Context)
		case 2:
			return readString(typ, v, &m.ID)
		case 3:
			return readRepeatedString(typ, v, &m.Controller)
		case 4:
			vm := new(VerificationMethod)
			n, err := readMessage(typ, v, vm)
			if err == nil {
				m.VerificationMethod = append(m.VerificationMethod, vm)
			}
			return n, err
		case 5:
			return readRepeatedString(typ, v, &m.Authentication)
		case 6:
			return readRepeatedString(typ, v, &m.AssertionMethod)
		case 7:
			return readRepeatedString(typ, v, &m.CapabilityInvocation)
		case 8:
			return readRepeatedString(typ, v, &m.CapabilityDelegation)
		case 9:
			return readRepeatedString(typ, v, &m.KeyAgreement)
		case 10:
			s := new(Service)
			n, err := readMessage(typ, v, s)
			if err == nil {
				m.Service = append(m.Service, s)
			}
			return n, err
		case 11:
			return readRepeatedString(typ, v, &m.AlsoKnownAs)
		}
		return 0, nil
	})
}

// VerificationMethod mirrors cheqd.did.v2.VerificationMethod.
type VerificationMethod struct {
	ID                     string
	VerificationMethodType string
	Controller             string
	VerificationMaterial   string
}

func (m *VerificationMethod) MarshalWire() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var e encoder
	e.string(1, m.ID)
	e.string(2, m.VerificationMethodType)
	e.string(3, m.Controller)
	e.string(4, m.VerificationMaterial)
	return e.done()
}

func (m *VerificationMethod) UnmarshalWire(b []byte) error {
	*m = VerificationMethod{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &m.ID)
		case 2:
			return readString(typ, v, &m.VerificationMethodType)
		case 3:
			return readString(typ, v, &m.Controller)
		case 4:
			return readString(typ, v, &m.VerificationMaterial)
		}
		return 0, nil
	})
}

// Service mirrors cheqd.did.v2.Service.
type Service struct {
	ID              string
	ServiceType     string
	ServiceEndpoint []string
	RecipientKeys   []string
	RoutingKeys     []string
	Accept          []string
	Priority        int32
}

func (m *Service) MarshalWire() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var e encoder
	e.string(1, m.ID)
	e.string(2, m.ServiceType)
	e.strings(3, m.ServiceEndpoint)
	e.strings(4, m.RecipientKeys)
	e.strings(5, m.RoutingKeys)
	e.strings(6, m.Accept)
	e.int32(7, m.Priority)
	return e.done()
}

func (m *Service) UnmarshalWire(b []byte) error {
	*m = Service{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &m.ID)
		case 2:
			return readString(typ, v, &m.ServiceType)
		case 3:
			return readRepeatedString(typ, v, &m.ServiceEndpoint)
		case 4:
			return readRepeatedString(typ, v, &m.RecipientKeys)
		case 5:
			return readRepeatedString(typ, v, &m.RoutingKeys)
		case 6:
			return readRepeatedString(typ, v, &m.Accept)
		case 7:
			var p uint64
			n, err := readVarint(typ, v, &p)
			m.Priority = int32(p)
			return n, err
		}
		return 0, nil
	})
}

// DidDocMetadata mirrors cheqd.did.v2.Metadata.
type DidDocMetadata struct {
	Created           *timestamppb.Timestamp
	Updated           *timestamppb.Timestamp
	Deactivated       bool
	VersionID         string
	NextVersionID     string
	PreviousVersionID string
}

func (m *DidDocMetadata) MarshalWire() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var e encoder
	e.timestamp(1, m.Created)
	e.timestamp(2, m.Updated)
	e.bool(3, m.Deactivated)
	e.string(4, m.VersionID)
	e.string(5, m.NextVersionID)
	e.string(6, m.PreviousVersionID)
	return e.done()
}

func (m *DidDocMetadata) UnmarshalWire(b []byte) error {
	*m = DidDocMetadata{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readTimestamp(typ, v, &m.Created)
		case 2:
			return readTimestamp(typ, v, &m.Updated)
		case 3:
			return readBool(typ, v, &m.Deactivated)
		case 4:
			return readString(typ, v, &m.VersionID)
		case 5:
			return readString(typ, v, &m.NextVersionID)
		case 6:
			return readString(typ, v, &m.PreviousVersionID)
		}
		return 0, nil
	})
}

// DidDocWithMetadata mirrors cheqd.did.v2.DidDocWithMetadata.
type DidDocWithMetadata struct {
	DidDoc   *DidDoc
	Metadata *DidDocMetadata
}

func (m *DidDocWithMetadata) MarshalWire() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var e encoder
	e.message(1, m.DidDoc, m.DidDoc != nil)
	e.message(2, m.Metadata, m.Metadata != nil)
	return e.done()
}

func (m *DidDocWithMetadata) UnmarshalWire(b []byte) error {
	*m = DidDocWithMetadata{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			m.DidDoc = new(DidDoc)
			return readMessage(typ, v, m.DidDoc)
		case 2:
			m.Metadata = new(DidDocMetadata)
			return readMessage(typ, v, m.Metadata)
		}
		return 0, nil
	})
}

// QueryDidDocRequest mirrors cheqd.did.v2.QueryDidDocRequest.
type QueryDidDocRequest struct {
	ID string
}

func (m *QueryDidDocRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, m.ID)
	return e.done()
}

func (m *QueryDidDocRequest) UnmarshalWire(b []byte) error {
	*m = QueryDidDocRequest{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num == 1 {
			return readString(typ, v, &m.ID)
		}
		return 0, nil
	})
}

// QueryDidDocResponse mirrors cheqd.did.v2.QueryDidDocResponse.
type QueryDidDocResponse struct {
	Value *DidDocWithMetadata
}

func (m *QueryDidDocResponse) MarshalWire() ([]byte, error) {
	var e encoder
	e.message(1, m.Value, m.Value != nil)
	return e.done()
}

func (m *QueryDidDocResponse) UnmarshalWire(b []byte) error {
	*m = QueryDidDocResponse{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num == 1 {
			m.Value = new(DidDocWithMetadata)
			return readMessage(typ, v, m.Value)
		}
		return 0, nil
	})
}

// QueryDidDocVersionRequest mirrors cheqd.did.v2.QueryDidDocVersionRequest.
type QueryDidDocVersionRequest struct {
	ID      string
	Version string
}

func (m *QueryDidDocVersionRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, m.ID)
	e.string(2, m.Version)
	return e.done()
}

func (m *QueryDidDocVersionRequest) UnmarshalWire(b []byte) error {
	*m = QueryDidDocVersionRequest{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &m.ID)
		case 2:
			return readString(typ, v, &m.Version)
		}
		return 0, nil
	})
}

// QueryDidDocVersionResponse mirrors cheqd.did.v2.QueryDidDocVersionResponse.
type QueryDidDocVersionResponse struct {
	Value *DidDocWithMetadata
}

func (m *QueryDidDocVersionResponse) MarshalWire() ([]byte, error) {
	var e encoder
	e.message(1, m.Value, m.Value != nil)
	return e.done()
}

func (m *QueryDidDocVersionResponse) UnmarshalWire(b []byte) error {
	*m = QueryDidDocVersionResponse{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num == 1 {
			m.Value = new(DidDocWithMetadata)
			return readMessage(typ, v, m.Value)
		}
		return 0, nil
	})
}
