package mailtriage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtriage "github.com/poiesic/mailtriage"
	"github.com/poiesic/mailtriage/ai/mock"
	"github.com/poiesic/mailtriage/config"
	"github.com/poiesic/mailtriage/core"
	"github.com/poiesic/mailtriage/retrieval"
)

func testCatalog() []*core.Product {
	return []*core.Product{
		{Id: "HAT0001", Name: "Blue Hat", Category: "Accessories", Description: "A warm knit hat for winter walks.", Season: "Winter", Stock: 5},
		{Id: "SHT5501", Name: "Linen Shirt", Category: "Shirts", Description: "A breezy linen shirt with a relaxed summer fit.", Season: "Summer", Stock: 100},
	}
}

func newTestSystem(t *testing.T) *mailtriage.System {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	system, err := mailtriage.NewSystem(cfg, mailtriage.WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { system.Close() })
	return system
}

func TestSystemEndToEnd(t *testing.T) {
	system := newTestSystem(t)
	ctx := context.Background()
	products := testCatalog()

	require.NoError(t, system.BuildIndex(ctx, products))

	run, err := system.NewRun(products)
	require.NoError(t, err)

	results, err := run.Run(ctx, []*core.Email{
		{Id: "E001", Subject: "Order", Body: "Please send:\n2 Blue Hat"},
		{Id: "E002", Subject: "Question", Body: "Anything breezy for summer?"},
	})
	require.NoError(t, err)

	assert.Len(t, results.Classifications, 2)
	assert.Len(t, results.OrderStatuses, 1)
	assert.Equal(t, core.LineCreated, results.OrderStatuses[0].Status)
	assert.Len(t, results.OrderResponses, 1)
	assert.Len(t, results.InquiryResponses, 1)
	assert.Empty(t, results.Failures)
}

func TestSystemSearchBeforeBuild(t *testing.T) {
	system := newTestSystem(t)

	_, err := system.Search(context.Background(), "warm hat")
	assert.ErrorIs(t, err, retrieval.ErrNotReady)
}

func TestSystemSearch(t *testing.T) {
	system := newTestSystem(t)
	ctx := context.Background()

	require.NoError(t, system.BuildIndex(ctx, testCatalog()))

	candidates, err := system.Search(ctx, "a shirt for hot days")
	require.NoError(t, err)
	assert.NotEmpty(t, candidates)
}

func TestSystemRunsAreIndependent(t *testing.T) {
	system := newTestSystem(t)
	ctx := context.Background()
	products := testCatalog()
	require.NoError(t, system.BuildIndex(ctx, products))

	// Each run gets a fresh ledger; draining stock in one run does not
	// affect the next.
	for i := 0; i < 2; i++ {
		run, err := system.NewRun(testCatalog())
		require.NoError(t, err)

		results, err := run.Run(ctx, []*core.Email{
			{Id: "E001", Subject: "Order", Body: "order:\n5 Blue Hat"},
		})
		require.NoError(t, err)
		require.Len(t, results.OrderStatuses, 1)
		assert.Equal(t, core.LineCreated, results.OrderStatuses[0].Status)
	}
}
