package warehouse

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errInjected = errors.New("injected failure")

// fakeTx records the statements and COPY rows a load issues. Methods not
// overridden panic through the nil embedded interface.
type fakeTx struct {
	pgx.Tx

	execs      []string
	execArgs   [][]any
	copies     map[string][][]any
	copyOrder  []string
	committed  bool
	rolledBack bool

	// failExec fails the first Exec whose SQL contains it.
	failExec string
	// failCopy fails the COPY into this table.
	failCopy string
	// shortCopy makes the COPY into this table report one row too few.
	shortCopy string
	failCommit bool
}

func newFakeTx() *fakeTx {
	return &fakeTx{copies: make(map[string][][]any)}
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx.failExec != "" && strings.Contains(sql, tx.failExec) {
		return pgconn.CommandTag{}, errInjected
	}
	tx.execs = append(tx.execs, sql)
	tx.execArgs = append(tx.execArgs, args)
	return pgconn.CommandTag{}, nil
}

func (tx *fakeTx) CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	name := table.Sanitize()
	name = strings.Trim(name, `"`)
	if name == tx.failCopy {
		return 0, errInjected
	}

	var rows [][]any
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		rows = append(rows, values)
	}
	if err := src.Err(); err != nil {
		return 0, err
	}

	tx.copies[name] = rows
	tx.copyOrder = append(tx.copyOrder, name)

	n := int64(len(rows))
	if name == tx.shortCopy {
		n--
	}
	return n, nil
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	if tx.failCommit {
		return errInjected
	}
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	if tx.committed {
		return pgx.ErrTxClosed
	}
	tx.rolledBack = true
	return nil
}

// metadata returns the key/value pairs inserted into the metadata table.
func (tx *fakeTx) metadata() map[string]string {
	m := make(map[string]string)
	for i, sql := range tx.execs {
		if strings.Contains(sql, "INSERT INTO salesload_metadata") {
			m[tx.execArgs[i][0].(string)] = tx.execArgs[i][1].(string)
		}
	}
	return m
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (db *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	return db.tx, nil
}

// fakeRow returns a fixed value or error from Scan.
type fakeRow struct {
	value any
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	switch d := dest[0].(type) {
	case *int64:
		*d = r.value.(int64)
	case *bool:
		*d = r.value.(bool)
	case *string:
		*d = r.value.(string)
	}
	return nil
}

// fakeRows iterates key/value pairs.
type fakeRows struct {
	pgx.Rows
	pairs [][2]string
	pos   int
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.pairs)
}

func (r *fakeRows) Scan(dest ...any) error {
	p := r.pairs[r.pos-1]
	*dest[0].(*string) = p[0]
	*dest[1].(*string) = p[1]
	return nil
}

func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Close()     {}

// fakeQuerier answers count queries by matching a substring of the SQL.
type fakeQuerier struct {
	counts   map[string]int64
	orphans  map[string]int64
	metadata [][2]string
	failOn   string
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if q.failOn != "" && strings.Contains(sql, q.failOn) {
		return fakeRow{err: errInjected}
	}
	if strings.Contains(sql, "information_schema.tables") {
		return fakeRow{value: q.metadata != nil}
	}
	if strings.Contains(sql, "NOT EXISTS") {
		for column, n := range q.orphans {
			if strings.Contains(sql, `f."`+column+`"`) {
				return fakeRow{value: n}
			}
		}
		return fakeRow{value: int64(0)}
	}
	for table, n := range q.counts {
		if strings.HasSuffix(strings.TrimSpace(sql), "FROM "+table) {
			return fakeRow{value: n}
		}
	}
	return fakeRow{value: int64(0)}
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return &fakeRows{pairs: q.metadata}, nil
}
