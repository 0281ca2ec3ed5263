package cheqdpb

import (
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Resource mirrors cheqd.resource.v2.Resource.
type Resource struct {
	Data []byte
}

func (m *Resource) MarshalWire() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var e encoder
	e.bytes(1, m.Data)
	return e.done()
}

func (m *Resource) UnmarshalWire(b []byte) error {
	*m = Resource{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num == 1 {
			return readBytes(typ, v, &m.Data)
		}
		return 0, nil
	})
}

// AlternativeURI mirrors cheqd.resource.v2.AlternativeUri.
type AlternativeURI struct {
	URI         string
	Description string
}

func (m *AlternativeURI) MarshalWire() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var e encoder
	e.string(1, m.URI)
	e.string(2, m.Description)
	return e.done()
}

func (m *AlternativeURI) UnmarshalWire(b []byte) error {
	*m = AlternativeURI{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &m.URI)
		case 2:
			return readString(typ, v, &m.Description)
		}
		return 0, nil
	})
}

// ResourceMetadata mirrors cheqd.resource.v2.Metadata.
type ResourceMetadata struct {
	CollectionID      string
	ID                string
	Name              string
	Version           string
	ResourceType      string
	AlsoKnownAs       []*AlternativeURI
	MediaType         string
	Created           *timestamppb.Timestamp
	Checksum          string
	PreviousVersionID string
	NextVersionID     string
}

func (m *ResourceMetadata) MarshalWire() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var e encoder
	e.string(1, m.CollectionID)
	e.string(2, m.ID)
	e.string(3, m.Name)
	e.string(4, m.Version)
	e.string(5, m.ResourceType)
	for _, a := range m.AlsoKnownAs {
		e.message(6, a, a != nil)
	}
	e.string(7, m.MediaType)
	e.timestamp(8, m.Created)
	e.string(9, m.Checksum)
	e.string(10, m.PreviousVersionID)
	e.string(11, m.NextVersionID)
	return e.done()
}

func (m *ResourceMetadata) UnmarshalWire(b []byte) error {
	*m = ResourceMetadata{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &m.CollectionID)
		case 2:
			return readString(typ, v, &m.ID)
		case 3:
			return readString(typ, v, &m.Name)
		case 4:
			return readString(typ, v, &m.Version)
		case 5:
			return readString(typ, v, &m.ResourceType)
		case 6:
			a := new(AlternativeURI)
			n, err := readMessage(typ, v, a)
			if err == nil {
				m.AlsoKnownAs = append(m.AlsoKnownAs, a)
			}
			return n, err
		case 7:
			return readString(typ, v, &m.MediaType)
		case 8:
			return readTimestamp(typ, v, &m.Created)
		case 9:
			return readString(typ, v, &m.Checksum)
		case 10:
			return readString(typ, v, &m.PreviousVersionID)
		case 11:
			return readString(typ, v, &m.NextVersionID)
		}
		return 0, nil
	})
}

// ResourceWithMetadata mirrors cheqd.resource.v2.ResourceWithMetadata.
type ResourceWithMetadata struct {
	Resource *Resource
	Metadata *ResourceMetadata
}

func (m *ResourceWithMetadata) MarshalWire() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var e encoder
	e.message(1, m.Resource, m.Resource != nil)
	e.message(2, m.Metadata, m.Metadata != nil)
	return e.done()
}

func (m *ResourceWithMetadata) UnmarshalWire(b []byte) error {
	*m = ResourceWithMetadata{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			m.Resource = new(Resource)
			return readMessage(typ, v, m.Resource)
		case 2:
			m.Metadata = new(ResourceMetadata)
			return readMessage(typ, v, m.Metadata)
		}
		return 0, nil
	})
}

// PageRequest mirrors cosmos.base.query.v1beta1.PageRequest.
type PageRequest struct {
	Key        []byte
	Offset     uint64
	Limit      uint64
	CountTotal bool
	Reverse    bool
}

func (m *PageRequest) MarshalWire() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var e encoder
	e.bytes(1, m.Key)
	e.uint64(2, m.Offset)
	e.uint64(3, m.Limit)
	e.bool(4, m.CountTotal)
	e.bool(5, m.Reverse)
	return e.done()
}

func (m *PageRequest) UnmarshalWire(b []byte) error {
	*m = PageRequest{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readBytes(typ, v, &m.Key)
		case 2:
			return readVarint(typ, v, &m.Offset)
		case 3:
			return readVarint(typ, v, &m.Limit)
		case 4:
			return readBool(typ, v, &m.CountTotal)
		case 5:
			return readBool(typ, v, &m.Reverse)
		}
		return 0, nil
	})
}

// PageResponse mirrors cosmos.base.query.v1beta1.PageResponse.
type PageResponse struct {
	NextKey []byte
	Total   uint64
}

func (m *PageResponse) MarshalWire() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var e encoder
	e.bytes(1, m.NextKey)
	e.uint64(2, m.Total)
	return e.done()
}

func (m *PageResponse) UnmarshalWire(b []byte) error {
	*m = PageResponse{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readBytes(typ, v, &m.NextKey)
		case 2:
			return readVarint(typ, v, &m.Total)
		}
		return 0, nil
	})
}

// QueryResourceRequest mirrors cheqd.resource.v2.QueryResourceRequest.
// QueryResourceMetadataRequest shares its shape.
type QueryResourceRequest struct {
	CollectionID string
	ID           string
}

func (m *QueryResourceRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, m.CollectionID)
	e.string(2, m.ID)
	return e.done()
}

func (m *QueryResourceRequest) UnmarshalWire(b []byte) error {
	*m = QueryResourceRequest{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &m.CollectionID)
		case 2:
			return readString(typ, v, &m.ID)
		}
		return 0, nil
	})
}

// QueryResourceResponse mirrors cheqd.resource.v2.QueryResourceResponse.
type QueryResourceResponse struct {
	Resource *ResourceWithMetadata
}

func (m *QueryResourceResponse) MarshalWire() ([]byte, error) {
	var e encoder
	e.message(1, m.Resource, m.Resource != nil)
	return e.done()
}

func (m *QueryResourceResponse) UnmarshalWire(b []byte) error {
	*m = QueryResourceResponse{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num == 1 {
			m.Resource = new(ResourceWithMetadata)
			return readMessage(typ, v, m.Resource)
		}
		return 0, nil
	})
}

// QueryResourceMetadataResponse mirrors cheqd.resource.v2.QueryResourceMetadataResponse.
type QueryResourceMetadataResponse struct {
	Resource *ResourceMetadata
}

func (m *QueryResourceMetadataResponse) MarshalWire() ([]byte, error) {
	var e encoder
	e.message(1, m.Resource, m.Resource != nil)
	return e.done()
}

func (m *QueryResourceMetadataResponse) UnmarshalWire(b []byte) error {
	*m = QueryResourceMetadataResponse{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num == 1 {
			m.Resource = new(ResourceMetadata)
			return readMessage(typ, v, m.Resource)
		}
		return 0, nil
	})
}

// QueryCollectionResourcesRequest mirrors cheqd.resource.v2.QueryCollectionResourcesRequest.
type QueryCollectionResourcesRequest struct {
	CollectionID string
	Pagination   *PageRequest
}

func (m *QueryCollectionResourcesRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.string(1, m.CollectionID)
	e.message(2, m.Pagination, m.Pagination != nil)
	return e.done()
}

func (m *QueryCollectionResourcesRequest) UnmarshalWire(b []byte) error {
	*m = QueryCollectionResourcesRequest{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &m.CollectionID)
		case 2:
			m.Pagination = new(PageRequest)
			return readMessage(typ, v, m.Pagination)
		}
		return 0, nil
	})
}

// QueryCollectionResourcesResponse mirrors cheqd.resource.v2.QueryCollectionResourcesResponse.
type QueryCollectionResourcesResponse struct {
	Resources  []*ResourceMetadata
	Pagination *PageResponse
}

func (m *QueryCollectionResourcesResponse) MarshalWire() ([]byte, error) {
	var e encoder
	for _, r := range m.Resources {
		e.message(1, r, r != nil)
	}
	e.message(2, m.Pagination, m.Pagination != nil)
	return e.done()
}

func (m *QueryCollectionResourcesResponse) UnmarshalWire(b []byte) error {
	*m = QueryCollectionResourcesResponse{}
	return walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			r := new(ResourceMetadata)
			n, err := readMessage(typ, v, r)
			if err == nil {
				m.Resources = append(m.Resources, r)
			}
			return n, err
		case 2:
			m.Pagination = new(PageResponse)
			return readMessage(typ, v, m.Pagination)
		}
		return 0, nil
	})
}
