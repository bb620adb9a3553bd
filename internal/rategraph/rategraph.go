// Package rategraph implements the exchange-rate cache: a typed graph
// of currency-to-currency edges with timestamps, and a breadth-first
// path-finder that composes edge factors to answer conversions between
// currencies that have no direct edge.
package rategraph

import (
	"errors"
	"time"

	"github.com/nasedkinpv/numr"
)

// StaleAfter is the age beyond which a rate edge is considered stale,
// per the persistence contract: "cache entries older than one hour are
// considered stale."
const StaleAfter = time.Hour

// Edge is one directed fact: amount*Factor converts Base units of
// currency From into Quote units of currency To.
type Edge struct {
	From      numr.Currency
	To        numr.Currency
	Factor    float64
	FetchedAt time.Time
}

// ErrRateUnavailable is returned when no path connects two currencies.
var ErrRateUnavailable = errors.New("rate unavailable")

// Graph is a read-only snapshot of rate edges, structured as an
// adjacency list for BFS traversal. The zero value is an empty graph.
// A Graph is immutable once built: per spec, writers (the fetch
// collaborator) publish a new snapshot rather than mutating one in
// place, so concurrent readers never race a writer.
type Graph struct {
	edges []Edge
	adj   map[numr.Currency][]adjacency
}

type adjacency struct {
	to     numr.Currency
	rate   numr.ExchangeRate
	fetched time.Time
}

// Build constructs a Graph from an ordered list of edges. Each edge
// (A,B,f) implies the inverse (B,A,1/f); both directions are added to
// the adjacency list in edge-insertion order, so BFS neighbor
// iteration — and therefore path selection — is deterministic and
// reproducible across runs given the same edge list.
func Build(edges []Edge) (*Graph, error) {
	g := &Graph{
		edges: append([]Edge(nil), edges...),
		adj:   make(map[numr.Currency][]adjacency, len(edges)*2),
	}
	for _, e := range edges {
		rate, err := numr.NewExchRate(e.From, e.To, e.Factor)
		if err != nil {
			return nil, err
		}
		g.adj[e.From] = append(g.adj[e.From], adjacency{to: e.To, rate: rate, fetched: e.FetchedAt})
		g.adj[e.To] = append(g.adj[e.To], adjacency{to: e.From, rate: rate.Inv(), fetched: e.FetchedAt})
	}
	return g, nil
}

// Edges returns the original edge list the graph was built from.
func (g *Graph) Edges() []Edge {
	if g == nil {
		return nil
	}
	return append([]Edge(nil), g.edges...)
}

// Convert converts amount from currency `from` to currency `to`. If
// from == to, the amount is returned unchanged regardless of whether
// the currency has any registered edges. Otherwise a breadth-first
// search (not shortest-weight) finds the path with the fewest hops:
// since exchange rates are multiplicative, fewer hops means fewer
// compounded floating-point roundings, and BFS visits neighbors in
// edge-insertion order so the result is deterministic.
func (g *Graph) Convert(amount float64, from, to numr.Currency) (float64, error) {
	if from == to {
		return amount, nil
	}
	if g == nil {
		return 0, ErrRateUnavailable
	}

	visited := map[numr.Currency]bool{from: true}
	parents := map[numr.Currency]bfsParent{}
	queue := []numr.Currency{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return replay(amount, from, to, parents), nil
		}
		for _, adj := range g.adj[cur] {
			if visited[adj.to] {
				continue
			}
			visited[adj.to] = true
			parents[adj.to] = bfsParent{from: cur, rate: adj.rate}
			queue = append(queue, adj.to)
		}
	}
	return 0, ErrRateUnavailable
}

type bfsParent struct {
	from numr.Currency
	rate numr.ExchangeRate
}

// replay walks the parent chain from `to` back to `from`, collecting
// the edges traversed, then applies their raw factors to amount in
// forward order. Per spec, the path's factors are multiplied as plain
// float64s with no intermediate rounding to a currency's minor-unit
// scale — only the final result is ever turned into Money, by the
// caller.
func replay(amount float64, from, to numr.Currency, parents map[numr.Currency]bfsParent) float64 {
	var rates []numr.ExchangeRate
	cur := to
	for cur != from {
		p := parents[cur]
		rates = append(rates, p.rate)
		cur = p.from
	}
	for i := len(rates) - 1; i >= 0; i-- {
		amount *= rates[i].Rate()
	}
	return amount
}

// IsStale reports whether an edge's fetch timestamp is older than
// StaleAfter, relative to now.
func (e Edge) IsStale(now time.Time) bool {
	return now.Sub(e.FetchedAt) > StaleAfter
}
