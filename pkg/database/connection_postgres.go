package database

import (
	"log"
	"os"
	"sync"

	"github.com/jackc/pgx"
	"github.com/jackc/pgx/log/zapadapter"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	pgConn     *pgx.Conn
	pgConnOnce sync.Once
)

// PostgreSQLConnection returns database singleton instance, configured
// from FIRMTOWN_DATABASE. During `go test` the DSN is taken from
// FIRMTOWN_TEST_DATABASE instead.
func PostgreSQLConnection(logger *zap.Logger) *pgx.Conn {
	pgConnOnce.Do(func() {
		dsnVar := "FIRMTOWN_DATABASE"

		// checking whether it's called during `go test`
		if isTestMode() {
			dsnVar = "FIRMTOWN_TEST_DATABASE"
		}

		dsn := os.Getenv(dsnVar)
		if dsn == "" {
			log.Fatalf("%s is empty", dsnVar)
		}

		conf, err := pgx.ParseDSN(dsn)
		if err != nil {
			log.Fatalf("failed to parse DSN: %s", err)
		}

		// injecting logger into database instance
		if logger != nil {
			conf.Logger = zapadapter.NewLogger(logger)
			conf.LogLevel = pgx.LogLevelWarn
		}

		conn, err := pgx.Connect(conf)
		if err != nil {
			log.Fatalf("failed to connect to database: %s", err)
		}

		pgConn = conn
	})

	return pgConn
}

// PostgreSQLForTesting returns the test database connection with the
// device table truncated.
func PostgreSQLForTesting(logger *zap.Logger) *pgx.Conn {
	conn := PostgreSQLConnection(logger)

	if _, err := conn.Exec(`TRUNCATE TABLE "device"`); err != nil {
		log.Fatal(errors.Wrap(err, "failed to truncate device table"))
	}

	return conn
}
