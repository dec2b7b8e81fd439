// Package sqlstore keeps JSON documents in SQL tables, one table per
// collection with an insertion sequence, the hex id and the document body.
package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/fkhayef/blog/internal/docstore"
)

// jsonIDField is where the identifier lives in the stored document body.
const jsonIDField = "id"

// Store is a docstore.Store over a SQL database.
type Store struct {
	db      *sqlx.DB
	dialect Dialect
	name    string

	mu     sync.Mutex
	tables map[string]bool
}

// Open connects with the given dialect and DSN.
func Open(ctx context.Context, dialect Dialect, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dialect.DriverName(), err)
	}
	return New(ctx, db, dialect)
}

// New wraps an open connection pool.
func New(ctx context.Context, db *sqlx.DB, dialect Dialect) (*Store, error) {
	var name string
	if err := db.GetContext(ctx, &name, dialect.CurrentDatabase()); err != nil {
		return nil, fmt.Errorf("failed to read database name: %w", err)
	}
	return &Store{
		db:      db,
		dialect: dialect,
		name:    name,
		tables:  make(map[string]bool),
	}, nil
}

// Insert writes doc with a freshly minted id.
func (s *Store) Insert(ctx context.Context, collection string, doc any) (string, error) {
	if err := s.ensureTable(ctx, collection); err != nil {
		return "", err
	}
	id := docstore.NewID().Hex()
	body, err := encode(doc, id)
	if err != nil {
		return "", docstore.Wrap("insert", err)
	}

	query := s.db.Rebind(fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES (?, ?)`, s.dialect.Quote(collection)))
	if _, err := s.db.ExecContext(ctx, query, id, body); err != nil {
		if s.dialect.IsDuplicate(err) {
			return "", docstore.ErrDuplicateKey
		}
		return "", docstore.Wrap("insert", err)
	}
	return id, nil
}

// FindOne decodes the earliest matching document into out.
func (s *Store) FindOne(ctx context.Context, collection string, filter docstore.Filter, out any) (bool, error) {
	docs, err := s.selectDocs(ctx, collection, filter, 1)
	if err != nil {
		return false, docstore.Wrap("find one", err)
	}
	if len(docs) == 0 {
		return false, nil
	}
	if err := json.Unmarshal([]byte(docs[0]), out); err != nil {
		return false, docstore.Wrap("find one", err)
	}
	return true, nil
}

// FindMany decodes every matching document, in insertion order, into out.
func (s *Store) FindMany(ctx context.Context, collection string, filter docstore.Filter, out any) error {
	docs, err := s.selectDocs(ctx, collection, filter, 0)
	if err != nil {
		return docstore.Wrap("find many", err)
	}
	if err := json.Unmarshal([]byte("["+strings.Join(docs, ",")+"]"), out); err != nil {
		return docstore.Wrap("find many", err)
	}
	return nil
}

// UpdateOne applies update to documents matching filter. Filters used with
// UpdateOne select by id, so at most one row matches.
func (s *Store) UpdateOne(ctx context.Context, collection string, filter docstore.Filter, update docstore.Update) (int64, error) {
	if err := s.ensureTable(ctx, collection); err != nil {
		return 0, err
	}
	query, args, err := s.updateQuery(collection, filter, update)
	if err != nil {
		return 0, docstore.Wrap("update one", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, docstore.Wrap("update one", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, docstore.Wrap("update one", err)
	}
	return n, nil
}

// EnsureUnique creates a unique expression index on the field.
func (s *Store) EnsureUnique(ctx context.Context, collection, field string) error {
	if !docstore.ValidField(field) {
		return docstore.Wrap("ensure unique", fmt.Errorf("invalid field name %q", field))
	}
	if err := s.ensureTable(ctx, collection); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.CreateUniqueIndex(collection, field)); err != nil {
		if s.dialect.IsIndexExists(err) {
			return nil
		}
		return docstore.Wrap("ensure unique", err)
	}
	return nil
}

// Collections lists the tables of the current schema.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.SelectContext(ctx, &names, s.dialect.ListTables()); err != nil {
		return nil, docstore.Wrap("list collections", err)
	}
	return names, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return docstore.Wrap("ping", s.db.PingContext(ctx))
}

func (s *Store) Name() string { return s.name }

func (s *Store) Close(ctx context.Context) error { return s.db.Close() }

func (s *Store) ensureTable(ctx context.Context, collection string) error {
	if !docstore.ValidField(collection) {
		return docstore.Wrap("create table", fmt.Errorf("invalid collection name %q", collection))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tables[collection] {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.CreateTable(collection)); err != nil {
		return docstore.Wrap("create table", err)
	}
	s.tables[collection] = true
	return nil
}

func (s *Store) selectDocs(ctx context.Context, collection string, filter docstore.Filter, limit int) ([]string, error) {
	if err := s.ensureTable(ctx, collection); err != nil {
		return nil, err
	}
	query, args, err := s.selectQuery(collection, filter, limit)
	if err != nil {
		return nil, err
	}
	var docs []string
	if err := s.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Store) selectQuery(collection string, filter docstore.Filter, limit int) (string, []any, error) {
	where, args, err := whereClause(s.dialect, filter)
	if err != nil {
		return "", nil, err
	}
	query := fmt.Sprintf(`SELECT doc FROM %s%s ORDER BY seq`, s.dialect.Quote(collection), where)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return s.db.Rebind(query), args, nil
}

func (s *Store) updateQuery(collection string, filter docstore.Filter, update docstore.Update) (string, []any, error) {
	if update.Op != docstore.OpPush {
		return "", nil, fmt.Errorf("unsupported update operator %d", update.Op)
	}
	if !docstore.ValidField(update.Field) {
		return "", nil, fmt.Errorf("invalid field name %q", update.Field)
	}
	value, err := marshal(update.Value)
	if err != nil {
		return "", nil, err
	}
	where, args, err := whereClause(s.dialect, filter)
	if err != nil {
		return "", nil, err
	}
	query := fmt.Sprintf(`UPDATE %s SET %s%s`, s.dialect.Quote(collection), s.dialect.Push(update.Field), where)
	return s.db.Rebind(query), append([]any{value}, args...), nil
}

// encode renders doc as a JSON object carrying its id.
func encode(doc any, id string) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("document must encode as an object: %w", err)
	}
	idJSON, err := json.Marshal(id)
	if err != nil {
		return "", err
	}
	fields[jsonIDField] = idJSON
	return marshal(fields)
}

func marshal(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
