package database

import (
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gocraft/dbr/v2"
	"github.com/pkg/errors"
)

var mysqlConn *dbr.Connection

// MySQLConnection returns database singleton instance
func MySQLConnection() *dbr.Connection {
	// using a package global variable
	if mysqlConn == nil {
		dsn := os.Getenv("FIRMTOWN_DATABASE")
		if isTestMode() {
			dsn = os.Getenv("FIRMTOWN_TEST_DATABASE")
		}

		conn, err := dbr.Open("mysql", strings.TrimSpace(dsn), nil)
		if err != nil {
			log.Fatalf("failed to connect to database: %s", err)
		}

		mysqlConn = conn
	}

	return mysqlConn
}

// MySQLForTesting returns a mysql connection with truncated tables
func MySQLForTesting() (conn *dbr.Connection, err error) {
	if !isTestMode() {
		log.Fatal("MySQLForTesting() can only be called during testing")
		return nil, nil
	}

	conn, err = dbr.Open("mysql", os.Getenv("FIRMTOWN_TEST_DATABASE"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to test database")
	}

	tx, err := conn.NewSession(nil).Begin()
	if err != nil {
		return nil, err
	}
	defer tx.RollbackUnlessCommitted()

	// truncating tables
	for _, tableName := range []string{"device"} {
		if _, err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE `%s`", tableName)); err != nil {
			return nil, errors.Wrap(err, tx.Rollback().Error())
		}
	}

	if err := tx.Commit(); err != nil {
		panic(err)
	}

	return conn, nil
}
