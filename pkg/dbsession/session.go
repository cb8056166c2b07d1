package dbsession

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Open establishes a session against conninfo. When required is true, a
// connect failure is returned as ErrConnectFailed for the caller to
// treat as fatal (ERR_DB_CON). When required is false, a connect
// failure instead yields a sentinel closed session (status BROKEN,
// every operation returns ErrClosed) so callers like the election's
// peer probe can treat an unreachable peer as merely absent.
func Open(ctx context.Context, conninfo string, required bool) (*Session, error) {
	conn, err := pgx.Connect(ctx, conninfo)
	if err != nil {
		if required {
			return nil, fmt.Errorf("%w: %v", ErrConnectFailed, err)
		}
		return &Session{conninfo: conninfo, status: StatusBroken, required: false}, nil
	}

	return &Session{
		conninfo: conninfo,
		conn:     conn,
		status:   StatusOK,
		required: required,
	}, nil
}

// Status reports whether this session currently has a live connection.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Reset attempts a best-effort reconnect, replacing the underlying
// connection on success. Non-blocking from the caller's perspective
// beyond the connect attempt itself; callers drive the retry cadence
// (the Primary Supervisor's reconnect ladder).
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		s.conn.Close(ctx)
	}

	conn, err := pgx.Connect(ctx, s.conninfo)
	if err != nil {
		s.status = StatusBroken
		return fmt.Errorf("%w: %v", ErrQuery, err)
	}

	s.conn = conn
	s.status = StatusOK
	return nil
}

// Query runs sql synchronously and returns its result rows.
func (s *Session) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.mu.Lock()
	conn := s.conn
	closed := s.status == StatusBroken
	s.mu.Unlock()

	if closed || conn == nil {
		return nil, ErrClosed
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		s.markBroken(err)
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return rows, nil
}

// QueryRow runs sql synchronously expecting exactly one result row.
func (s *Session) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return errRow{ErrClosed}
	}
	return conn.QueryRow(ctx, sql, args...)
}

// Exec runs sql synchronously, discarding any result rows.
func (s *Session) Exec(ctx context.Context, sql string, args ...any) error {
	s.mu.Lock()
	conn := s.conn
	closed := s.status == StatusBroken
	s.mu.Unlock()

	if closed || conn == nil {
		return ErrClosed
	}

	if _, err := conn.Exec(ctx, sql, args...); err != nil {
		s.markBroken(err)
		return fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return nil
}

// SendAsync launches sql in a goroutine and returns immediately. Its
// result is delivered on a buffered channel of size 1, harvested by the
// next call to DrainAsync. Only one async query may be in flight at a
// time; call DrainAsync or CancelInFlight before starting another.
func (s *Session) SendAsync(sql string, args ...any) error {
	s.mu.Lock()
	if s.pending != nil {
		s.mu.Unlock()
		return ErrAsyncInFlight
	}
	conn := s.conn
	if conn == nil {
		s.mu.Unlock()
		return ErrClosed
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	result := make(chan asyncResult, 1)
	s.pending = result
	s.mu.Unlock()

	go func() {
		defer cancel()
		_, err := conn.Exec(ctx, sql, args...)
		result <- asyncResult{err: err}
	}()

	return nil
}

// IsBusy reports whether an async query is still outstanding.
func (s *Session) IsBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return false
	}
	select {
	case <-s.pending:
		return false
	default:
		return true
	}
}

// CancelInFlight preempts any outstanding async query. Safe to call
// when nothing is in flight.
func (s *Session) CancelInFlight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.pending = nil
	s.cancel = nil
}

// DrainAsync harvests the result of a previously sent async query. If
// the query is still running, it is cancelled instead — step 1 of the
// Lag Reporter's tick ("drain outstanding async result; if still in
// flight, cancel it") rather than block the tick on it.
func (s *Session) DrainAsync() error {
	s.mu.Lock()
	pending := s.pending
	s.mu.Unlock()

	if pending == nil {
		return nil
	}

	select {
	case res := <-pending:
		s.mu.Lock()
		s.pending = nil
		s.cancel = nil
		s.mu.Unlock()
		if res.err != nil {
			return fmt.Errorf("%w: %v", ErrQuery, res.err)
		}
		return nil
	default:
		s.CancelInFlight()
		return nil
	}
}

// Close releases the underlying connection, cancelling any in-flight
// query first.
func (s *Session) Close(ctx context.Context) error {
	s.CancelInFlight()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close(ctx)
	s.conn = nil
	s.status = StatusBroken
	return err
}

func (s *Session) markBroken(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusBroken
}

// errRow is a pgx.Row that always fails to scan, used as the sentinel
// result of QueryRow on a closed session.
type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }
