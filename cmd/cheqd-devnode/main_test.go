package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xdao.co/didcheqd/did"
	"xdao.co/didcheqd/network"
	"xdao.co/didcheqd/resolver"
)

const fixture = "../../internal/ledger/testdata/devnet.toml"

func TestRun_ServesFixture(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan int, 1)
	var errOut bytes.Buffer
	go func() {
		done <- run(ctx, []string{"--listen", "127.0.0.1:0", "--fixture", fixture, "--log-level", "error"}, &bytes.Buffer{}, &errOut, ready)
	}()

	var addr string
	select {
	case addr = <-ready:
	case code := <-done:
		t.Fatalf("exited early with %d: %s", code, errOut.String())
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	r := resolver.New(network.Config{Networks: []network.NetworkConfiguration{
		{Namespace: network.TestnetNamespace, Endpoint: "http://" + addr},
	}})
	defer r.Close()

	p, err := did.Parse("did:cheqd:testnet:zF7rhDBfUt9d1gJPjx7s1J")
	require.NoError(t, err)
	doc, err := r.ResolveDocument(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, p.DID, doc.Doc.ID)

	records, err := r.CollectionResources(ctx, p)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, 0, code, errOut.String())
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_List(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"--fixture", fixture, "--list"}, &out, &errOut, nil)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, strings.Split(strings.TrimSpace(out.String()), "\n"), "did:cheqd:testnet:zF7rhDBfUt9d1gJPjx7s1J")
}

func TestRun_Usage(t *testing.T) {
	var errOut bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), nil, &bytes.Buffer{}, &errOut, nil))
	assert.Contains(t, errOut.String(), "--fixture is required")

	errOut.Reset()
	assert.Equal(t, 2, run(context.Background(), []string{"--fixture", "missing.toml"}, &bytes.Buffer{}, &errOut, nil))
}
