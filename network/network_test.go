package network

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"mainnet", "testnet"}, cfg.Namespaces())

	n, ok := cfg.Lookup("testnet")
	require.True(t, ok)
	assert.Equal(t, TestnetEndpoint, n.Endpoint)

	_, ok = cfg.Lookup("devnet")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
	assert.Error(t, Config{Networks: []NetworkConfiguration{{Endpoint: "http://x"}}}.Validate())
	assert.Error(t, Config{Networks: []NetworkConfiguration{{Namespace: "a"}}}.Validate())
	assert.Error(t, Config{Networks: []NetworkConfiguration{
		{Namespace: "a", Endpoint: "http://x"},
		{Namespace: "a", Endpoint: "http://y"},
	}}.Validate())
}

func TestParseEndpoint(t *testing.T) {
	cases := []struct {
		in   string
		want Endpoint
	}{
		{"https://grpc.cheqd.net:443", Endpoint{Target: "grpc.cheqd.net:443", TLS: true}},
		{"https://grpc.cheqd.net", Endpoint{Target: "grpc.cheqd.net:443", TLS: true}},
		{"http://127.0.0.1:9090", Endpoint{Target: "127.0.0.1:9090"}},
		{"http://[::1]:9090/", Endpoint{Target: "[::1]:9090"}},
	}
	for _, tc := range cases {
		got, err := ParseEndpoint(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"@baduri://.", "grpc.cheqd.net:443", "ftp://host", "https://", "https://host/path"} {
		_, err := ParseEndpoint(bad)
		assert.Error(t, err, bad)
	}
}

func TestDecode_MergesDefaults(t *testing.T) {
	cfg, err := Decode(`
[[networks]]
namespace = "devnet"
endpoint = "http://127.0.0.1:9090"

[[networks]]
namespace = "testnet"
endpoint = "https://testnet.example:9090"
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"mainnet", "testnet", "devnet"}, cfg.Namespaces())
	n, _ := cfg.Lookup("testnet")
	assert.Equal(t, "https://testnet.example:9090", n.Endpoint)
}

func TestDecode_WithoutDefaults(t *testing.T) {
	cfg, err := Decode(`
defaults = false

[[networks]]
namespace = "devnet"
endpoint = "http://127.0.0.1:9090"
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"devnet"}, cfg.Namespaces())
}

func TestDecode_Rejects(t *testing.T) {
	_, err := Decode(`defaults = false`)
	assert.Error(t, err, "no networks at all")

	_, err = Decode(`
[[networks]]
namespace = "devnet"
endpoint = "http://a"

[[networks]]
namespace = "devnet"
endpoint = "http://b"
`)
	assert.Error(t, err, "duplicate namespace")

	_, err = Decode(`colour = "blue"`)
	assert.Error(t, err, "unknown key")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[networks]]\nnamespace = \"devnet\"\nendpoint = \"http://localhost:9090\"\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"mainnet", "testnet", "devnet"}, cfg.Namespaces())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
	_, err = LoadFile("")
	assert.Error(t, err)
}
