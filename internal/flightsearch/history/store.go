package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkguid"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// MaxEntries is how many searches are kept; older ones are trimmed.
	MaxEntries = 10
	// DefaultLimit is the number of recent searches listed when none is asked.
	DefaultLimit = 5

	table = "search_history"
)

var ErrNotFound = errors.New("search history entry not found")

const schema = `
CREATE TABLE IF NOT EXISTS search_history (
	id             TEXT PRIMARY KEY,
	origin         TEXT NOT NULL,
	destination    TEXT NOT NULL,
	departure_date TEXT NOT NULL,
	return_date    TEXT,
	trip_type      TEXT NOT NULL,
	adults         INTEGER NOT NULL,
	children       INTEGER NOT NULL,
	infants        INTEGER NOT NULL,
	cabin_class    TEXT NOT NULL,
	searched_at    BIGINT NOT NULL
)`

var columns = []string{
	"id", "origin", "destination", "departure_date", "return_date", "trip_type",
	"adults", "children", "infants", "cabin_class", "searched_at",
}

// Open connects to the history database. driver is DriverSQLite (dsn is a
// file path or ":memory:") or DriverPostgres (dsn is a postgres URL).
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	name := "sqlite"
	if driver == DriverPostgres {
		name = "pgx"
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver != DriverPostgres {
		// one writer keeps sqlite free of "database is locked"
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

type Store struct {
	db   *sql.DB
	sb   sq.StatementBuilderType
	uuid pkguid.StringID
	now  func() time.Time
}

func NewStore(db *sql.DB, driver string, uuid pkguid.StringID) *Store {
	sb := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if driver == DriverPostgres {
		sb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return &Store{db: db, sb: sb, uuid: uuid, now: time.Now}
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate search history: %w", err)
	}
	return nil
}

// Add records item as the most recent search. An older entry for the same
// origin, destination and departure day is replaced, and only the newest
// MaxEntries are kept.
func (s *Store) Add(ctx context.Context, item entity.SearchHistory) (entity.SearchHistory, error) {
	item.ID = s.uuid.Generate()
	item.SearchedAt = s.now()
	departure := item.DepartureDate.Format(time.DateOnly)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return entity.SearchHistory{}, fmt.Errorf("begin add history: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	del := s.sb.Delete(table).Where(sq.Eq{
		"origin":         item.Origin,
		"destination":    item.Destination,
		"departure_date": departure,
	})
	if err := execBuilder(ctx, tx, del); err != nil {
		return entity.SearchHistory{}, fmt.Errorf("replace history: %w", err)
	}

	var returnDate sql.NullString
	if item.ReturnDate != nil {
		returnDate = sql.NullString{String: item.ReturnDate.Format(time.DateOnly), Valid: true}
	}
	ins := s.sb.Insert(table).Columns(columns...).Values(
		item.ID,
		item.Origin,
		item.Destination,
		departure,
		returnDate,
		string(item.TripType),
		item.Adults,
		item.Children,
		item.Infants,
		string(item.CabinClass),
		item.SearchedAt.UnixNano(),
	)
	if err := execBuilder(ctx, tx, ins); err != nil {
		return entity.SearchHistory{}, fmt.Errorf("insert history: %w", err)
	}

	trim := s.sb.Delete(table).Where(sq.Expr(
		"id NOT IN (SELECT id FROM "+table+" ORDER BY searched_at DESC, id DESC LIMIT ?)", MaxEntries,
	))
	if err := execBuilder(ctx, tx, trim); err != nil {
		return entity.SearchHistory{}, fmt.Errorf("trim history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return entity.SearchHistory{}, fmt.Errorf("commit add history: %w", err)
	}
	return item, nil
}

// List returns up to limit entries, most recent first.
func (s *Store) List(ctx context.Context, limit int) ([]entity.SearchHistory, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query, args, err := s.sb.Select(columns...).
		From(table).
		OrderBy("searched_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list history sql: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	items := make([]entity.SearchHistory, 0, limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return items, nil
}

func (s *Store) Remove(ctx context.Context, id string) error {
	query, args, err := s.sb.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build remove history sql: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove history: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	return execBuilder(ctx, s.db, s.sb.Delete(table))
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func execBuilder(ctx context.Context, db execer, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

func scanItem(rows *sql.Rows) (entity.SearchHistory, error) {
	var (
		item       entity.SearchHistory
		departure  string
		returnDate sql.NullString
		tripType   string
		cabin      string
		searchedAt int64
	)
	if err := rows.Scan(
		&item.ID,
		&item.Origin,
		&item.Destination,
		&departure,
		&returnDate,
		&tripType,
		&item.Adults,
		&item.Children,
		&item.Infants,
		&cabin,
		&searchedAt,
	); err != nil {
		return entity.SearchHistory{}, fmt.Errorf("scan history: %w", err)
	}

	d, err := time.Parse(time.DateOnly, departure)
	if err != nil {
		return entity.SearchHistory{}, fmt.Errorf("parse departure date: %w", err)
	}
	item.DepartureDate = d
	if returnDate.Valid {
		r, err := time.Parse(time.DateOnly, returnDate.String)
		if err != nil {
			return entity.SearchHistory{}, fmt.Errorf("parse return date: %w", err)
		}
		item.ReturnDate = &r
	}
	item.TripType = entity.TripType(tripType)
	item.CabinClass = entity.CabinClass(cabin)
	item.SearchedAt = time.Unix(0, searchedAt)
	return item, nil
}
