package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"google.golang.org/protobuf/types/known/timestamppb"

	"xdao.co/didcheqd/cheqdpb"
)

// Fixture is the TOML shape loaded by the dev node:
//
//	[[documents]]
//	id = "did:cheqd:testnet:zF7rhDBfUt9d1gJPjx7s1J"
//	version_id = "1B3B00849B4D50E8FCCF50193E35FD6C"
//	created = 2023-01-10T08:00:00Z
//	  [[documents.verification_method]]
//	  id = "did:cheqd:testnet:zF7rhDBfUt9d1gJPjx7s1J#key-1"
//	  type = "Ed25519VerificationKey2020"
//	  material = "z6MkkVbyHJLLjdjU5B62DaJ4mkdMdqf9vCRVcvhzrF2spJDd"
//
//	[[resources]]
//	collection = "zF7rhDBfUt9d1gJPjx7s1J"
//	id = "9fbb1b86-91f8-4942-97b9-725b7714131c"
//	name = "SchemaName"
//	type = "JsonSchema"
//	created = 2023-01-11T08:00:00Z
//	data = '{"$schema":"..."}'
//
// Documents and resources are inserted in file order.
type Fixture struct {
	Documents []DocumentFixture `toml:"documents"`
	Resources []ResourceFixture `toml:"resources"`
}

type DocumentFixture struct {
	Context              []string                    `toml:"context"`
	ID                   string                      `toml:"id"`
	Controller           []string                    `toml:"controller"`
	VerificationMethod   []VerificationMethodFixture `toml:"verification_method"`
	Authentication       []string                    `toml:"authentication"`
	AssertionMethod      []string                    `toml:"assertion_method"`
	CapabilityInvocation []string                    `toml:"capability_invocation"`
	CapabilityDelegation []string                    `toml:"capability_delegation"`
	KeyAgreement         []string                    `toml:"key_agreement"`
	Service              []ServiceFixture            `toml:"service"`
	AlsoKnownAs          []string                    `toml:"also_known_as"`

	VersionID   string    `toml:"version_id"`
	Created     time.Time `toml:"created"`
	Updated     time.Time `toml:"updated"`
	Deactivated bool      `toml:"deactivated"`
	NoMetadata  bool      `toml:"no_metadata"`
}

type VerificationMethodFixture struct {
	ID         string `toml:"id"`
	Type       string `toml:"type"`
	Controller string `toml:"controller"`
	Material   string `toml:"material"`
}

type ServiceFixture struct {
	ID            string   `toml:"id"`
	Type          string   `toml:"type"`
	Endpoint      []string `toml:"endpoint"`
	RecipientKeys []string `toml:"recipient_keys"`
	RoutingKeys   []string `toml:"routing_keys"`
	Accept        []string `toml:"accept"`
	Priority      int32    `toml:"priority"`
}

type ResourceFixture struct {
	Collection string    `toml:"collection"`
	ID         string    `toml:"id"`
	Name       string    `toml:"name"`
	Type       string    `toml:"type"`
	Version    string    `toml:"version"`
	MediaType  string    `toml:"media_type"`
	Created    time.Time `toml:"created"`
	Checksum   string    `toml:"checksum"`
	Data       string    `toml:"data"`
	DataFile   string    `toml:"data_file"`
}

// LoadFixture reads a TOML fixture file. data_file paths are relative to
// the fixture's directory.
func LoadFixture(path string) (*Ledger, error) {
	var fx Fixture
	meta, err := toml.DecodeFile(path, &fx)
	if err != nil {
		return nil, fmt.Errorf("load fixture: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("fixture: unknown key %q", undecoded[0].String())
	}
	return fx.Build(filepath.Dir(path))
}

// DecodeFixture parses fixture TOML text. data_file is resolved against the
// working directory.
func DecodeFixture(data string) (*Ledger, error) {
	var fx Fixture
	meta, err := toml.Decode(data, &fx)
	if err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("fixture: unknown key %q", undecoded[0].String())
	}
	return fx.Build("")
}

// Build creates a ledger holding the fixture contents.
func (fx Fixture) Build(baseDir string) (*Ledger, error) {
	l := New()
	for i, d := range fx.Documents {
		doc, meta := d.toProto()
		if err := l.PutDocument(doc, meta); err != nil {
			return nil, fmt.Errorf("documents[%d]: %w", i, err)
		}
	}
	for i, r := range fx.Resources {
		data := []byte(r.Data)
		if r.DataFile != "" {
			if r.Data != "" {
				return nil, fmt.Errorf("resources[%d]: data and data_file are mutually exclusive", i)
			}
			p := r.DataFile
			if !filepath.IsAbs(p) && baseDir != "" {
				p = filepath.Join(baseDir, p)
			}
			b, err := os.ReadFile(p)
			if err != nil {
				return nil, fmt.Errorf("resources[%d]: %w", i, err)
			}
			data = b
		}
		if r.Created.IsZero() {
			return nil, fmt.Errorf("resources[%d]: %w: created is required", i, ErrInvalid)
		}
		meta := &cheqdpb.ResourceMetadata{
			CollectionID: r.Collection,
			ID:           r.ID,
			Name:         r.Name,
			Version:      r.Version,
			ResourceType: r.Type,
			MediaType:    r.MediaType,
			Created:      timestamppb.New(r.Created),
			Checksum:     r.Checksum,
		}
		if err := l.PutResource(meta, data); err != nil {
			return nil, fmt.Errorf("resources[%d]: %w", i, err)
		}
	}
	return l, nil
}

func (d DocumentFixture) toProto() (*cheqdpb.DidDoc, *cheqdpb.DidDocMetadata) {
	doc := &cheqdpb.DidDoc{
		Context:              d.Context,
		ID:                   d.ID,
		Controller:           d.Controller,
		Authentication:       d.Authentication,
		AssertionMethod:      d.AssertionMethod,
		CapabilityInvocation: d.CapabilityInvocation,
		CapabilityDelegation: d.CapabilityDelegation,
		KeyAgreement:         d.KeyAgreement,
		AlsoKnownAs:          d.AlsoKnownAs,
	}
	for _, vm := range d.VerificationMethod {
		controller := vm.Controller
		if controller == "" {
			controller = d.ID
		}
		doc.VerificationMethod = append(doc.VerificationMethod, &cheqdpb.VerificationMethod{
			ID:                     vm.ID,
			VerificationMethodType: vm.Type,
			Controller:             controller,
			VerificationMaterial:   vm.Material,
		})
	}
	for _, s := range d.Service {
		doc.Service = append(doc.Service, &cheqdpb.Service{
			ID:              s.ID,
			ServiceType:     s.Type,
			ServiceEndpoint: s.Endpoint,
			RecipientKeys:   s.RecipientKeys,
			RoutingKeys:     s.RoutingKeys,
			Accept:          s.Accept,
			Priority:        s.Priority,
		})
	}
	if d.NoMetadata {
		return doc, nil
	}

	meta := &cheqdpb.DidDocMetadata{
		Deactivated: d.Deactivated,
		VersionID:   d.VersionID,
	}
	if !d.Created.IsZero() {
		meta.Created = timestamppb.New(d.Created)
	}
	if !d.Updated.IsZero() {
		meta.Updated = timestamppb.New(d.Updated)
	}
	return doc, meta
}
