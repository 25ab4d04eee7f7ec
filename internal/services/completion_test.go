package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// A stub driver whose Exec reports a configurable rows-affected count. bun
// formats arguments into the query client-side, so the statement only has to
// answer Exec.
var stubRowsAffected int64

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return stubStmt{}, nil }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return nil, errors.New("unsupported") }

type stubStmt struct{}

func (stubStmt) Close() error  { return nil }
func (stubStmt) NumInput() int { return -1 }
func (stubStmt) Exec([]driver.Value) (driver.Result, error) {
	return driver.RowsAffected(stubRowsAffected), nil
}
func (stubStmt) Query([]driver.Value) (driver.Rows, error) {
	return nil, errors.New("unsupported")
}

func init() {
	sql.Register("completion-stub", stubDriver{})
}

func stubDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open("completion-stub", "")
	if err != nil {
		t.Fatal(err)
	}
	return bun.NewDB(sqldb, pgdialect.New())
}

// A second completion must lose the conditional update: the first call flips
// the row, the repeat matches zero rows and must not reach the reward block.
func TestCompleteFlipWonThenLost(t *testing.T) {
	ctx := context.Background()
	db := stubDB(t)
	now := time.Now()

	stubRowsAffected = 1
	won, err := completeFlip(ctx, db, "quest-1", 7, nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if !won {
		t.Error("first completion should win the flip")
	}

	stubRowsAffected = 0
	won, err = completeFlip(ctx, db, "quest-1", 7, nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if won {
		t.Error("repeat completion matched zero rows and must not win the flip")
	}
}
