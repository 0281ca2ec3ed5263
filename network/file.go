package network

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig is the on-disk TOML shape:
//
//	defaults = true          # keep mainnet/testnet (default true)
//
//	[[networks]]
//	namespace = "devnet"
//	endpoint  = "http://127.0.0.1:9090"
//
// Networks listed in the file replace defaults sharing their namespace.
type fileConfig struct {
	Defaults bool                   `toml:"defaults"`
	Networks []NetworkConfiguration `toml:"networks"`
}

// LoadFile reads a network configuration from a TOML file.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("network: empty config path")
	}
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load network config: %w", err)
	}
	return fromFile(raw, meta)
}

// Decode parses a network configuration from TOML text.
func Decode(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("decode network config: %w", err)
	}
	return fromFile(raw, meta)
}

func fromFile(raw fileConfig, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("network config: unknown key %q", undecoded[0].String())
	}

	listed := Config{Networks: make([]NetworkConfiguration, 0, len(raw.Networks))}
	for _, n := range raw.Networks {
		listed.Networks = append(listed.Networks, NetworkConfiguration{
			Namespace: strings.TrimSpace(n.Namespace),
			Endpoint:  strings.TrimSpace(n.Endpoint),
		})
	}

	if len(listed.Networks) > 0 {
		if err := listed.Validate(); err != nil {
			return Config{}, err
		}
	}

	useDefaults := true
	if meta.IsDefined("defaults") {
		useDefaults = raw.Defaults
	}

	cfg := listed
	if useDefaults {
		cfg = Default().Merge(listed)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
