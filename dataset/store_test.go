package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/casenav-io/casenav/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

const sampleCatalog = `use_case_name,company,ai_type,business_function,outcome
Demand forecasting,Acme,Machine Learning,Forecasting,demand prediction
Ticket triage,Globex,NLP,Support,ticket triage
`

func TestStore_Records(t *testing.T) {
	store := NewStore(writeCatalog(t, sampleCatalog))
	ctx := context.Background()

	records, err := store.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, core.ID(0), records[0].Id)
	assert.Equal(t, "Demand forecasting", records[0].UseCaseName)
	assert.Equal(t, "Acme", records[0].Company)
	assert.Equal(t, "Machine Learning", records[0].AIType)
	assert.Equal(t, "Forecasting", records[0].BusinessFunction)
	assert.Equal(t, "demand prediction", records[0].Outcome)

	assert.Equal(t, core.ID(1), records[1].Id)
	assert.Equal(t, "Globex", records[1].Company)
}

func TestStore_Record(t *testing.T) {
	store := NewStore(writeCatalog(t, sampleCatalog))
	ctx := context.Background()

	record, ok := store.Record(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, "Ticket triage", record.UseCaseName)

	_, ok = store.Record(ctx, 99)
	assert.False(t, ok)
}

func TestStore_HeaderNormalization(t *testing.T) {
	catalog := "Use Case Name,COMPANY,AI Type,Business Function,Outcome\n" +
		"Fraud detection,Initech,Deep Learning,Finance,fewer chargebacks\n"
	store := NewStore(writeCatalog(t, catalog))

	records, err := store.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Fraud detection", records[0].UseCaseName)
	assert.Equal(t, "Initech", records[0].Company)
	assert.Equal(t, "fewer chargebacks", records[0].Outcome)
}

func TestStore_MissingFieldsAreEmpty(t *testing.T) {
	t.Run("missing columns", func(t *testing.T) {
		catalog := "use_case_name,company\nDemand forecasting,Acme\n"
		store := NewStore(writeCatalog(t, catalog))

		records, err := store.Records(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "", records[0].AIType)
		assert.Equal(t, "", records[0].BusinessFunction)
		assert.Equal(t, "", records[0].Outcome)
	})

	t.Run("short rows", func(t *testing.T) {
		catalog := "use_case_name,company,ai_type,business_function,outcome\nDemand forecasting,Acme\n"
		store := NewStore(writeCatalog(t, catalog))

		records, err := store.Records(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Acme", records[0].Company)
		assert.Equal(t, "", records[0].Outcome)
	})
}

func TestStore_EmptyCatalog(t *testing.T) {
	t.Run("header only", func(t *testing.T) {
		store := NewStore(writeCatalog(t, "use_case_name,company,ai_type,business_function,outcome\n"))
		records, err := store.Records(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("completely empty file", func(t *testing.T) {
		store := NewStore(writeCatalog(t, ""))
		records, err := store.Records(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestStore_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	_, err := store.Records(context.Background())
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestStore_Reload(t *testing.T) {
	path := writeCatalog(t, sampleCatalog)
	store := NewStore(path)
	ctx := context.Background()

	records, err := store.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Append a row; the cached view must not see it until Reload.
	updated := sampleCatalog + "Churn scoring,Umbrella,Machine Learning,Marketing,lower churn\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	records, err = store.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2, "cached view should be stable")

	store.Reload()
	records, err = store.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, core.ID(2), records[2].Id)
}
