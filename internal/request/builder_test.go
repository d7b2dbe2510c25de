package request

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blkpark/postgrest/internal/catalog"
	"github.com/blkpark/postgrest/internal/query"
)

func TestBuildReadRequestTreeShape(t *testing.T) {
	cat := newTestCatalog()

	req, err := BuildReadRequest(context.Background(), cat, "public", EmbedSpec{
		Table: "orders",
		Embeds: []EmbedSpec{
			{Table: "items"},
			{Table: "customers"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, req.Root)

	assert.Equal(t, "orders", req.Root.Name)
	assert.Equal(t, catalog.Root, req.Root.Relation.Kind)

	require.Len(t, req.Root.Children, 2)
	// Sibling order follows the requested order.
	assert.Equal(t, "items", req.Root.Children[0].Name)
	assert.Equal(t, catalog.Parent, req.Root.Children[0].Relation.Kind)
	assert.Equal(t, "customers", req.Root.Children[1].Name)
	assert.Equal(t, catalog.Child, req.Root.Children[1].Relation.Kind)
}

func TestBuildReadRequestNestedEmbeds(t *testing.T) {
	cat := newTestCatalog()

	req, err := BuildReadRequest(context.Background(), cat, "public", EmbedSpec{
		Table: "customers",
		Embeds: []EmbedSpec{
			{
				Table: "orders",
				Embeds: []EmbedSpec{
					{Table: "items"},
					{Table: "products"},
				},
			},
		},
	})
	require.NoError(t, err)

	ordersNode := req.Root.Children[0]
	assert.Equal(t, catalog.Parent, ordersNode.Relation.Kind)
	require.Len(t, ordersNode.Children, 2)
	assert.Equal(t, catalog.Parent, ordersNode.Children[0].Relation.Kind)
	assert.Equal(t, catalog.Many, ordersNode.Children[1].Relation.Kind)
	require.NotNil(t, ordersNode.Children[1].Relation.Link)
	assert.Equal(t, "order_products", ordersNode.Children[1].Relation.Link.Name)
}

func TestBuildReadRequestUnknownRoot(t *testing.T) {
	cat := newTestCatalog()

	_, err := BuildReadRequest(context.Background(), cat, "public", EmbedSpec{Table: "bogus"})
	require.Error(t, err)

	var unknown *UnknownRelationError
	assert.ErrorAs(t, err, &unknown)
}

func TestBuildReadRequestNoPartialTreeOnFailure(t *testing.T) {
	cat := newTestCatalog()

	req, err := BuildReadRequest(context.Background(), cat, "public", EmbedSpec{
		Table: "orders",
		Embeds: []EmbedSpec{
			{Table: "items"},
			{Table: "standalone"},
		},
	})
	require.Error(t, err)
	assert.Nil(t, req)
}

func TestBuildReadRequestDuplicateUnaliasedSiblings(t *testing.T) {
	cat := newTestCatalog()

	_, err := BuildReadRequest(context.Background(), cat, "public", EmbedSpec{
		Table: "orders",
		Embeds: []EmbedSpec{
			{Table: "items"},
			{Table: "items"},
		},
	})
	require.Error(t, err)

	var dup *DuplicateEmbedError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "orders", dup.Parent)
	assert.Equal(t, "items", dup.Target)
}

func TestBuildReadRequestAliasedDuplicates(t *testing.T) {
	cat := newTestCatalog()

	req, err := BuildReadRequest(context.Background(), cat, "public", EmbedSpec{
		Table: "orders",
		Embeds: []EmbedSpec{
			{Table: "addresses", Alias: "billing", Hint: "billing_address_id"},
			{Table: "addresses", Alias: "shipping", Hint: "shipping_address_id"},
		},
	})
	require.NoError(t, err)

	require.Len(t, req.Root.Children, 2)
	assert.Equal(t, "billing", req.Root.Children[0].Alias)
	assert.Equal(t, "billing_address_id", req.Root.Children[0].Relation.Columns[0].Name)
	assert.Equal(t, "shipping", req.Root.Children[1].Alias)
	assert.Equal(t, "shipping_address_id", req.Root.Children[1].Relation.Columns[0].Name)
}

func TestBuildReadRequestDuplicateAliases(t *testing.T) {
	cat := newTestCatalog()

	_, err := BuildReadRequest(context.Background(), cat, "public", EmbedSpec{
		Table: "orders",
		Embeds: []EmbedSpec{
			{Table: "addresses", Alias: "addr", Hint: "billing_address_id"},
			{Table: "addresses", Alias: "addr", Hint: "shipping_address_id"},
		},
	})
	require.Error(t, err)

	var dup *DuplicateEmbedError
	assert.ErrorAs(t, err, &dup)
}

func TestBuildReadRequestDepthLimit(t *testing.T) {
	cat := newTestCatalog()

	spec := EmbedSpec{
		Table:  "customers",
		Embeds: []EmbedSpec{{Table: "orders", Embeds: []EmbedSpec{{Table: "items"}}}},
	}

	_, err := BuildReadRequest(context.Background(), cat, "public", spec, WithLimits(Limits{MaxEmbedDepth: 2}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed depth")

	_, err = BuildReadRequest(context.Background(), cat, "public", spec, WithLimits(Limits{MaxEmbedDepth: 3}))
	assert.NoError(t, err)
}

func TestBuildReadRequestMaxRowsCap(t *testing.T) {
	cat := newTestCatalog()

	unbounded, err := query.NewRange(0)
	require.NoError(t, err)
	small, err := query.NewLimitedRange(0, 10)
	require.NoError(t, err)

	req, err := BuildReadRequest(context.Background(), cat, "public", EmbedSpec{
		Table: "orders",
		Range: unbounded,
		Embeds: []EmbedSpec{
			{Table: "items", Range: small},
		},
	}, WithLimits(Limits{MaxRows: 50}))
	require.NoError(t, err)

	assert.True(t, req.Root.Query.Range.Limited)
	assert.Equal(t, 50, req.Root.Query.Range.Limit)

	// A requested limit below the cap is kept as-is.
	child := req.Root.Children[0]
	assert.Equal(t, 10, child.Query.Range.Limit)
}

func TestBuildReadRequestIdempotent(t *testing.T) {
	cat := newTestCatalog()
	spec := EmbedSpec{Table: "orders", Embeds: []EmbedSpec{{Table: "customers"}}}

	first, err1 := BuildReadRequest(context.Background(), cat, "public", spec)
	second, err2 := BuildReadRequest(context.Background(), cat, "public", spec)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestBuildMutateRequest(t *testing.T) {
	filter := query.Filter{Field: query.Field{Name: "id"}}

	tests := []struct {
		name      string
		kind      query.MutateKind
		payload   string
		filters   []query.Filter
		expectErr bool
	}{
		{
			name:    "insert",
			kind:    query.Insert,
			payload: `[{"id": 1, "name": "a"}, {"id": 2, "name": "b"}]`,
		},
		{
			name:      "insert rejects filters",
			kind:      query.Insert,
			payload:   `{"id": 1}`,
			filters:   []query.Filter{filter},
			expectErr: true,
		},
		{
			name:    "update with filters",
			kind:    query.Update,
			payload: `{"name": "renamed"}`,
			filters: []query.Filter{filter},
		},
		{
			name:      "update with heterogeneous payload",
			kind:      query.Update,
			payload:   `[{"a": 1}, {"b": 2}]`,
			expectErr: true,
		},
		{
			name:    "delete with filters",
			kind:    query.Delete,
			filters: []query.Filter{filter},
		},
		{
			name:      "delete rejects payload",
			kind:      query.Delete,
			payload:   `{"id": 1}`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := BuildMutateRequest("orders", tt.kind, []byte(tt.payload), tt.filters, nil)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, req.Query.Kind)
			assert.Equal(t, "orders", req.Query.Into)
		})
	}
}

func TestBuildMutateRequestInvalidBodyKind(t *testing.T) {
	_, err := BuildMutateRequest("orders", query.Insert, []byte(`[{"a": 1}, {"b": 2}]`), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, query.ErrInvalidBody)
}

func TestResolveColumnRefOperand(t *testing.T) {
	cat := newTestCatalog()

	operand, err := ResolveColumnRefOperand(cat, ordersTable(cat), "customers", "")
	require.NoError(t, err)
	assert.Equal(t, query.OperandColumnRef, operand.Kind)
	require.NotNil(t, operand.Ref)
	assert.Equal(t, "customers", operand.Ref.Table.Name)
	assert.Equal(t, "orders_customer_id_fkey", operand.Ref.ForeignKey.Constraint)
	assert.Equal(t, "id", operand.Ref.ForeignKey.Column.Name)
}

func TestResolveColumnRefOperandUnreachable(t *testing.T) {
	cat := newTestCatalog()

	_, err := ResolveColumnRefOperand(cat, ordersTable(cat), "standalone", "")
	var noRelation *NoRelationBetweenError
	require.ErrorAs(t, err, &noRelation)

	_, err = ResolveColumnRefOperand(cat, ordersTable(cat), "bogus", "")
	var unknown *UnknownRelationError
	require.ErrorAs(t, err, &unknown)
}
