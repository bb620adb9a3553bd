// Package ratecache implements the JSON persistence format for the
// exchange-rate cache: {edges: [{from, to, factor, fetched_at}],
// base?}, read at startup and after reload_rates per spec.md §6.
package ratecache

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nasedkinpv/numr"
	"github.com/nasedkinpv/numr/internal/rategraph"
)

// Graph is the in-memory rate graph; the persistence format loads
// into and saves out of exactly this type; the BFS path-finding it
// exposes lives in internal/rategraph, grounded on spec.md §4.2.
type Graph = rategraph.Graph

// document is the on-disk JSON shape. encoding/json is used directly
// (not a third-party codec) because this literally *is* the wire
// format spec.md §6 names — there's no ecosystem library to reach for
// when the format itself is "whatever json.Marshal produces for this
// struct."
type document struct {
	Edges []edgeDoc `json:"edges"`
	Base  string    `json:"base,omitempty"`
}

type edgeDoc struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Factor    float64   `json:"factor"`
	FetchedAt time.Time `json:"fetched_at"`
}

// FetchError reports a malformed document or an unresolvable currency
// code in an edge — the core's one filesystem-touching error path,
// never a panic.
type FetchError struct {
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("rate cache %q: %v", e.Path, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Load reads and parses the rate-cache document at path into a Graph.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FetchError{Path: path, Err: err}
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FetchError{Path: path, Err: err}
	}

	edges := make([]rategraph.Edge, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		from, err := numr.ParseCurr(e.From)
		if err != nil {
			return nil, &FetchError{Path: path, Err: fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)}
		}
		to, err := numr.ParseCurr(e.To)
		if err != nil {
			return nil, &FetchError{Path: path, Err: fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)}
		}
		edges = append(edges, rategraph.Edge{From: from, To: to, Factor: e.Factor, FetchedAt: e.FetchedAt})
	}

	g, err := rategraph.Build(edges)
	if err != nil {
		return nil, &FetchError{Path: path, Err: err}
	}
	return g, nil
}

// Save writes g's edges to path in the persistence format, with base
// recorded as the representative currency the edges were fetched
// against (informational only; Load does not require it).
func Save(path string, g *Graph, base numr.Currency) error {
	edges := g.Edges()
	doc := document{Edges: make([]edgeDoc, 0, len(edges))}
	if base != numr.XXX {
		doc.Base = base.Code()
	}
	for _, e := range edges {
		doc.Edges = append(doc.Edges, edgeDoc{
			From:      e.From.Code(),
			To:        e.To.Code(),
			Factor:    e.Factor,
			FetchedAt: e.FetchedAt,
		})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &FetchError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &FetchError{Path: path, Err: err}
	}
	return nil
}
