package casenav

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/casenav-io/casenav/ai/mock"
	"github.com/casenav-io/casenav/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `use_case_name,company,ai_type,business_function,outcome
Fraud detection,Acme Bank,machine learning,risk,fewer chargebacks
Ticket triage,HelpDeskCo,NLP,support,faster response times
Demand forecasting,RetailGiant,time series models,supply chain,lower inventory costs
`

func writeTestDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0644))
	return path
}

func TestNewCatalog(t *testing.T) {
	t.Run("create new catalog", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test_db")
		catalog, err := NewCatalog(dbPath, writeTestDataset(t), WithEmbedder(mock.NewMockEmbedder()))
		require.NoError(t, err)
		require.NotNil(t, catalog)
		defer catalog.Close()

		assert.NotNil(t, catalog.Manager())
		assert.Equal(t, search.StateAbsent, catalog.Manager().State())
	})

	t.Run("error with invalid db path", func(t *testing.T) {
		// Use a file path where the artifact store directory should go.
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("x"), 0644))

		catalog, err := NewCatalog(tmpFile, writeTestDataset(t), WithEmbedder(mock.NewMockEmbedder()))
		assert.Error(t, err)
		assert.Nil(t, catalog)
	})
}

func TestCatalog_Search(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_db")
	catalog, err := NewCatalog(dbPath, writeTestDataset(t), WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)
	defer catalog.Close()

	ctx := context.Background()
	results, err := catalog.Search(ctx, "detecting payment fraud", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, search.StateValid, catalog.Manager().State())

	records, err := catalog.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestCatalog_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db")
	datasetPath := filepath.Join(dir, "cases.csv")
	require.NoError(t, os.WriteFile(datasetPath, []byte(testCSV), 0644))

	ctx := context.Background()

	catalog, err := NewCatalog(dbPath, datasetPath, WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)
	want, err := catalog.Search(ctx, "customer support", 3)
	require.NoError(t, err)
	require.NoError(t, catalog.Close())

	// Reopen with an embedder that refuses document embedding: the persisted
	// artifacts must be enough.
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(_ context.Context, _ []string) ([][]float32, error) {
		t.Error("document embedding should not run on warm start")
		return nil, nil
	}

	catalog, err = NewCatalog(dbPath, datasetPath, WithEmbedder(embedder))
	require.NoError(t, err)
	defer catalog.Close()

	got, err := catalog.Search(ctx, "customer support", 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCatalog_ForceRebuild(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db")
	datasetPath := filepath.Join(dir, "cases.csv")
	require.NoError(t, os.WriteFile(datasetPath, []byte(testCSV), 0644))

	ctx := context.Background()
	catalog, err := NewCatalog(dbPath, datasetPath, WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)
	defer catalog.Close()

	_, err = catalog.Search(ctx, "warm up", 1)
	require.NoError(t, err)

	// Grow the dataset on disk; ForceRebuild must pick up the new row.
	extended := testCSV + "Chat summarization,MegaCorp,LLM,operations,shorter handoffs\n"
	require.NoError(t, os.WriteFile(datasetPath, []byte(extended), 0644))

	require.NoError(t, catalog.ForceRebuild(ctx))

	results, err := catalog.Search(ctx, "summarizing conversations", 10)
	require.NoError(t, err)
	assert.Len(t, results, 4)
}
