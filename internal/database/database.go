package database

import (
	"context"

	"github.com/XSAM/otelsql"
	"github.com/jmoiron/sqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connect opens an instrumented pgx connection wrapped in sqlx. Queries
// and pool stats flow into the OTel pipeline via otelsql.
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := otelsql.Open("pgx", databaseURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		return nil, err
	}

	if err := otelsql.RegisterDBStatsMetrics(db, otelsql.WithAttributes(
		semconv.DBSystemPostgreSQL,
	)); err != nil {
		return nil, err
	}

	sqlxDB := sqlx.NewDb(db, "pgx")

	if err := sqlxDB.PingContext(ctx); err != nil {
		return nil, err
	}

	sqlxDB.SetMaxOpenConns(25)
	sqlxDB.SetMaxIdleConns(5)

	return sqlxDB, nil
}
