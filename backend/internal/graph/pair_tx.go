package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"friendgraph/backend/internal/friendship"
)

// pairTx implements friendship.PairTx on an open explicit transaction
type pairTx struct {
	tx   neo4j.ExplicitTransaction
	a, b string
}

func (p *pairTx) Edges(ctx context.Context) ([]friendship.Edge, error) {
	kinds := make([]string, 0, len(friendship.Kinds))
	for _, k := range friendship.Kinds {
		kinds = append(kinds, string(k))
	}

	result, err := p.tx.Run(ctx, pairEdges, map[string]any{
		"a":     p.a,
		"b":     p.b,
		"kinds": kinds,
	})
	if err != nil {
		return nil, queryError("read pair edges", err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, queryError("read pair edges", err)
	}

	edges := make([]friendship.Edge, 0, len(records))
	for _, record := range records {
		edges = append(edges, friendship.Edge{
			From:      getStringFromRecord(record, "from"),
			To:        getStringFromRecord(record, "to"),
			Kind:      friendship.Kind(getStringFromRecord(record, "kind")),
			CreatedAt: getTimeFromRecord(record, "created_at"),
		})
	}
	return edges, nil
}

func (p *pairTx) Delete(ctx context.Context, e friendship.Edge) error {
	rel, err := relType(e.Kind)
	if err != nil {
		return queryError("delete edge", err)
	}
	if err := run(ctx, p.tx, fmt.Sprintf(deleteEdge, rel), map[string]any{
		"from": e.From,
		"to":   e.To,
	}); err != nil {
		return queryError("delete edge", err)
	}
	return nil
}

func (p *pairTx) Create(ctx context.Context, from, to string, kind friendship.Kind) (friendship.Edge, error) {
	rel, err := relType(kind)
	if err != nil {
		return friendship.Edge{}, queryError("create edge", err)
	}

	result, err := p.tx.Run(ctx, fmt.Sprintf(createEdge, rel), map[string]any{
		"from": from,
		"to":   to,
	})
	if err != nil {
		return friendship.Edge{}, queryError("create edge", err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return friendship.Edge{}, queryError("create edge", err)
	}

	createdAt := getTimeFromRecord(record, "created_at")
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return friendship.Edge{From: from, To: to, Kind: kind, CreatedAt: createdAt}, nil
}
