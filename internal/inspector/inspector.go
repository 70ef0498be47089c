package inspector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/loganlanou/schemainspect/storage"
)

// Conn is the single connection a run holds. *storage.Storage satisfies it.
type Conn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Close() error
}

// Opener opens the database at path.
type Opener func(ctx context.Context, path string) (Conn, error)

type State int

const (
	StateDisconnected State = iota
	StateConnected
	StateProbed
	StateReported
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateProbed:
		return "probed"
	case StateReported:
		return "reported"
	case StateAborted:
		return "aborted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Result is the outcome of one run.
type Result struct {
	State   State
	Columns []ColumnInfo
	Err     error
}

type Inspector struct {
	open   Opener
	out    io.Writer
	logger *slog.Logger
}

// New returns an Inspector that writes its report and failure lines to out.
// A nil logger means slog.Default().
func New(open Opener, out io.Writer, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{
		open:   open,
		out:    out,
		logger: logger,
	}
}

func (i *Inspector) Connect(ctx context.Context, path string) (Conn, error) {
	conn, err := i.open(ctx, path)
	if err != nil {
		return nil, &StepError{Step: StepConnect, Err: err}
	}
	return conn, nil
}

// Probe runs SELECT 1 and expects exactly that value back.
func (i *Inspector) Probe(ctx context.Context, conn Conn) error {
	rows, err := conn.QueryContext(ctx, "SELECT 1")
	if err != nil {
		return &StepError{Step: StepProbe, Err: err}
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return &StepError{Step: StepProbe, Err: err}
		}
		return &StepError{Step: StepProbe, Err: errors.New("liveness query returned no rows")}
	}

	var one int
	if err := rows.Scan(&one); err != nil {
		return &StepError{Step: StepProbe, Err: err}
	}
	if err := rows.Err(); err != nil {
		return &StepError{Step: StepProbe, Err: err}
	}
	if one != 1 {
		return &StepError{Step: StepProbe, Err: fmt.Errorf("liveness query returned %d", one)}
	}
	return nil
}

// Introspect reads the catalog entry for table. A table that does not exist
// yields no rows and no error.
func (i *Inspector) Introspect(ctx context.Context, conn Conn, table string) ([]ColumnInfo, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", storage.QuoteIdent(table))
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, &StepError{Step: StepIntrospect, Err: err}
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		var (
			cid       int
			name      string
			typ       string
			notnull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dfltValue, &pk); err != nil {
			return nil, &StepError{Step: StepIntrospect, Err: err}
		}
		columns = append(columns, ColumnInfo{
			Position:     cid,
			Name:         name,
			DeclaredType: typ,
			NotNull:      notnull != 0,
			Default:      dfltValue,
			PrimaryKey:   pk,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &StepError{Step: StepIntrospect, Err: err}
	}

	return columns, nil
}

// Run connects, probes, introspects and reports, stopping at the first
// failed step. The failure is printed as one line to the output writer.
// The connection, once opened, is closed exactly once on every path.
func (i *Inspector) Run(ctx context.Context, path, table string) Result {
	res := Result{State: StateDisconnected}

	conn, err := i.Connect(ctx, path)
	if err != nil {
		return i.abort(res, err)
	}
	res.State = StateConnected
	i.logger.Debug("connected", "path", path)

	defer func() {
		if err := conn.Close(); err != nil {
			i.logger.Warn("failed to close database", "path", path, "error", err)
		}
	}()

	if err := i.Probe(ctx, conn); err != nil {
		return i.abort(res, err)
	}
	res.State = StateProbed
	i.logger.Debug("database is reachable")

	columns, err := i.Introspect(ctx, conn, table)
	if err != nil {
		return i.abort(res, err)
	}
	res.Columns = columns
	i.logger.Debug("table introspected", "table", table, "columns", len(columns))

	if err := Report(i.out, columns); err != nil {
		res.State = StateAborted
		res.Err = fmt.Errorf("failed to write report: %w", err)
		return res
	}
	res.State = StateReported

	return res
}

func (i *Inspector) abort(res Result, err error) Result {
	res.State = StateAborted
	res.Err = err

	var stepErr *StepError
	if errors.As(err, &stepErr) {
		i.logger.Debug("inspection aborted", "step", stepErr.Step, "error", stepErr.Err)
		fmt.Fprintln(i.out, stepErr.Message())
		return res
	}
	fmt.Fprintln(i.out, err)
	return res
}
