package integration

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/dimitrije/futbol-api/tests/testutil"
)

var shared *testutil.TestDB

// TestMain starts one database for the whole package. In short mode every
// test skips itself, so no container is started.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	tdb, err := testutil.StartPostgres(ctx)
	if err != nil {
		log.Fatalf("failed to start test database: %v", err)
	}
	shared = tdb

	code := m.Run()
	tdb.Close(ctx)
	os.Exit(code)
}

// setupTest hands out the shared database, emptied.
func setupTest(t *testing.T) *testutil.TestDB {
	t.Helper()
	shared.CleanTables(t)
	return shared
}

func inTwoDays() time.Time {
	return time.Now().Add(48 * time.Hour).Truncate(time.Minute)
}
