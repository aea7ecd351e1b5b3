package core

import (
	"context"
	"fmt"
	"os"

	sinkmem "dukacore/internal/infra/sink/memory"
	sinkpg "dukacore/internal/infra/sink/postgres"
	sinksqlite "dukacore/internal/infra/sink/sqlite"
	"dukacore/pkg/domain"
)

// SinkDriver identifies a concrete sink implementation.
type SinkDriver string

const (
	SinkMemory   SinkDriver = "memory"   // in-memory only (tests / dry runs)
	SinkSQLite   SinkDriver = "sqlite"   // embedded sqlite file
	SinkPostgres SinkDriver = "postgres" // PostgreSQL server
)

// OpenSink selects a sink backend using environment variables. Defaults to
// sqlite when unset.
//
//	DUKACORE_SINK_DRIVER: memory|sqlite|postgres (default sqlite)
//	DUKACORE_SQLITE_PATH: path to sqlite file (default ./dukacore.db)
//	DUKACORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenSink(ctx context.Context) (domain.Sink, error) {
	driver := os.Getenv("DUKACORE_SINK_DRIVER")
	if driver == "" {
		driver = string(SinkSQLite)
	}
	switch SinkDriver(driver) {
	case SinkMemory:
		return sinkmem.New(), nil
	case SinkSQLite:
		return sinksqlite.NewStore(os.Getenv("DUKACORE_SQLITE_PATH"))
	case SinkPostgres:
		return sinkpg.NewStore(ctx, os.Getenv("DUKACORE_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown sink driver %s", driver)
	}
}
