package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"xdao.co/didcheqd/did"
	"xdao.co/didcheqd/driver"
	"xdao.co/didcheqd/model"
)

// maxConcurrentResolves bounds the resolve fan-out.
const maxConcurrentResolves = 8

func newResolveCmd(g *globalOptions) *cobra.Command {
	var (
		linked    bool
		canonical bool
		accept    string
	)
	cmd := &cobra.Command{
		Use:   "resolve <did>...",
		Short: "Resolve DIDs to DID resolution results",
		Long: `resolve fetches each DID Document (optionally version-qualified with
  /versions/<id>) and prints one resolution result per DID as JSON lines, in
  argument order. Failed resolutions print an error result and make the
  command exit non-zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := g.newResolver()
			if err != nil {
				return err
			}
			defer r.Close()
			d := driver.New(r, driver.Options{LinkedResources: linked, Canonical: canonical})

			ctx, cancel := context.WithTimeout(cmd.Context(), g.timeout)
			defer cancel()

			results := make([]model.ResolutionResult, len(args))
			failed := make([]bool, len(args))
			var eg errgroup.Group
			eg.SetLimit(maxConcurrentResolves)
			for i, input := range args {
				eg.Go(func() error {
					out, err := d.ResolveDocument(ctx, input, accept)
					if err != nil {
						results[i] = model.ErrorResult(err)
						failed[i] = true
						return nil
					}
					results[i] = documentResult(input, out)
					return nil
				})
			}
			_ = eg.Wait()

			enc := json.NewEncoder(cmd.OutOrStdout())
			var nfailed int
			for i, res := range results {
				if err := enc.Encode(res); err != nil {
					return err
				}
				if failed[i] {
					nfailed++
				}
			}
			if nfailed > 0 {
				return fmt.Errorf("%d of %d resolutions failed", nfailed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&linked, "linked-resources", false, "include linkedResourceMetadata for the DID's collection")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "emit RFC 8785 canonical document JSON")
	cmd.Flags().StringVar(&accept, "accept", "", "content type recorded in the resolution metadata (default application/did+ld+json)")
	return cmd
}

func documentResult(input string, out *driver.Output) model.ResolutionResult {
	return model.NewResolutionResult(out.Content, out.Document, model.ResolutionMetadata{
		ContentType: out.Metadata.ContentType,
		DID: &model.DIDInfo{
			DIDString:        input,
			MethodSpecificID: strings.TrimPrefix(input, did.Prefix),
			Method:           did.Method,
		},
	})
}

func newDereferenceCmd(g *globalOptions) *cobra.Command {
	var metadata bool
	cmd := &cobra.Command{
		Use:   "dereference <did-url>",
		Short: "Dereference a DID or DID URL",
		Long: `dereference writes the raw content behind a DID URL: resource bytes for
  /resources/<id> and resource queries, document JSON otherwise. With
  --metadata it prints the content metadata instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := g.newResolver()
			if err != nil {
				return err
			}
			defer r.Close()
			d := driver.New(r, driver.Options{})

			ctx, cancel := context.WithTimeout(cmd.Context(), g.timeout)
			defer cancel()
			if metadata && did.IsResourceReference(strings.TrimPrefix(args[0], did.Prefix)) {
				meta, err := d.ResourceMetadata(ctx, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), meta)
			}
			out, err := d.Dereference(ctx, args[0], "")
			if err != nil {
				return err
			}
			if metadata {
				return writeJSON(cmd.OutOrStdout(), out.Document)
			}
			_, err = cmd.OutOrStdout().Write(out.Content)
			return err
		},
	}
	cmd.Flags().BoolVar(&metadata, "metadata", false, "print content metadata instead of content")
	return cmd
}

func newResourcesCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resources <did>",
		Short: "List the resources in a DID's collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := did.Parse(args[0])
			if err != nil {
				return usageError{err}
			}
			r, _, err := g.newResolver()
			if err != nil {
				return err
			}
			defer r.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), g.timeout)
			defer cancel()
			records, err := r.CollectionResources(ctx, p)
			if err != nil {
				return err
			}
			out := make([]model.ResourceMetadata, 0, len(records))
			for _, rec := range records {
				out = append(out, model.FromResourceRecord(did.ResourceURI(p.DID, rec.ID), rec))
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

type parsedView struct {
	DID       string            `json:"did"`
	Namespace string            `json:"namespace"`
	ID        string            `json:"id"`
	Version   string            `json:"versionId,omitempty"`
	Query     map[string]string `json:"query,omitempty"`
	Resource  bool              `json:"resource"`
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <did-url>",
		Short: "Parse a did:cheqd DID URL without contacting the network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := did.Parse(args[0])
			if err != nil {
				return usageError{err}
			}
			return writeJSON(cmd.OutOrStdout(), parsedView{
				DID:       p.DID,
				Namespace: p.Namespace,
				ID:        p.ID,
				Version:   p.Version,
				Query:     p.Query,
				Resource:  did.IsResourceReference(strings.TrimPrefix(args[0], did.Prefix)),
			})
		},
	}
}

func newNetworksCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "Print the configured networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadNetworks()
			if err != nil {
				return err
			}
			for _, n := range cfg.Networks {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", n.Namespace, n.Endpoint)
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
