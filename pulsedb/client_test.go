package pulsedb

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pulseinsights.org/internal/appconf"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	config := NewSQLiteConfig(":memory:")
	config.Env = appconf.Test

	client, err := NewClient(config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newSampleClient(t *testing.T) *Client {
	t.Helper()
	client := newTestClient(t)
	require.NoError(t, client.LoadSample(context.Background()))
	return client
}

func TestNewClient_RejectsUnknownDriver(t *testing.T) {
	client, err := NewClient(Config{Driver: "postgres", DSN: "whatever"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
	assert.Nil(t, client)
}

func TestNewClient_TestEnvRequiresMemory(t *testing.T) {
	config := NewSQLiteConfig("/tmp/pulse_test.sqlite")
	config.Env = appconf.Test

	client, err := NewClient(config)
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "in memory")
}

func TestNewClient_AppliesSchema(t *testing.T) {
	client := newTestClient(t)

	counts, err := client.TableCounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, counts, len(Tables))
	for _, table := range Tables {
		assert.Zero(t, counts[table], table)
	}
}

func TestMigrationIsRepeatable(t *testing.T) {
	client := newTestClient(t)
	assert.NoError(t, performDatabaseMigration(context.Background(), client.DB))
}

func TestInMemoryPoolIsPinned(t *testing.T) {
	client := newTestClient(t)
	assert.Equal(t, 1, client.DB.Stats().MaxOpenConnections)
}

func TestConcurrentQueriesShareOneDatabase(t *testing.T) {
	client := newSampleClient(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			total, err := client.TotalTransactions(ctx)
			if err == nil && total != 16500 {
				err = assert.AnError
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestTableCountsAfterSample(t *testing.T) {
	client := newSampleClient(t)

	counts, err := client.TableCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, counts["aggregated_transaction"])
	assert.Equal(t, 8, counts["map_transaction"])
	assert.Equal(t, 2, counts["india_level_location_metrics"])
}

func TestInsertReplacesOnKey(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	row := AggregatedInsurance{State: "goa", Year: 2024, Quarter: "Q1", Count: 10, Amount: 100}
	require.NoError(t, client.InsertAggregatedInsurance(ctx, []AggregatedInsurance{row}))
	row.Count = 25
	require.NoError(t, client.InsertAggregatedInsurance(ctx, []AggregatedInsurance{row}))

	rows, err := client.InsuranceByStateYear(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(25), rows[0].Count)
}

func TestInsertEmptyBatch(t *testing.T) {
	client := newTestClient(t)
	assert.NoError(t, client.InsertMapUsers(context.Background(), nil))
}

func TestNewMySQLConfig(t *testing.T) {
	config := NewMySQLConfig("db.internal", 3306, "pulse", "secret", "project_phonepe_pulse")

	assert.Equal(t, DriverMySQL, config.Driver)
	assert.True(t, strings.HasPrefix(config.DSN, "pulse:secret@tcp(db.internal:3306)/project_phonepe_pulse"), config.DSN)
	assert.Contains(t, config.DSN, "parseTime=true")
	assert.False(t, config.Migrate)
}

func TestFromAppConfig(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		config := FromAppConfig(appconf.Config{DBDriver: "sqlite", DBPath: ":memory:", Env: appconf.Test}, nil)
		assert.Equal(t, DriverSQLite, config.Driver)
		assert.Equal(t, ":memory:", config.DSN)
		assert.True(t, config.Migrate)
		assert.True(t, config.verbose)
	})

	t.Run("mysql honours migrate flag", func(t *testing.T) {
		config := FromAppConfig(appconf.Config{
			DBDriver: "mysql", DBHost: "localhost", DBPort: 3306, DBUser: "root",
			DBName: "project_phonepe_pulse", Migrate: true, Env: appconf.Production,
		}, nil)
		assert.Equal(t, DriverMySQL, config.Driver)
		assert.True(t, config.Migrate)
		assert.False(t, config.verbose)
	})
}
