package sqlstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/fkhayef/blog/internal/docstore"
)

// Dialect renders the JSON-document queries for one SQL engine. Queries use
// `?` placeholders and are rebound by sqlx for the driver.
type Dialect interface {
	DriverName() string
	Quote(name string) string
	CreateTable(table string) string
	CreateUniqueIndex(table, field string) string
	Eq(field string) string
	Contains(field string) string
	ContainsArg(value string) (string, error)
	Push(field string) string
	CurrentDatabase() string
	ListTables() string
	IsDuplicate(err error) bool
	IsIndexExists(err error) bool
}

// Postgres stores documents in JSONB columns.
type Postgres struct{}

func (Postgres) DriverName() string { return "postgres" }

func (Postgres) Quote(name string) string { return `"` + name + `"` }

func (d Postgres) CreateTable(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		seq BIGSERIAL PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		doc JSONB NOT NULL
	)`, d.Quote(table))
}

func (d Postgres) CreateUniqueIndex(table, field string) string {
	return fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s ((doc->>'%s'))`,
		d.Quote(table+"_"+field+"_key"), d.Quote(table), field)
}

func (Postgres) Eq(field string) string {
	return fmt.Sprintf(`doc->>'%s' = ?`, field)
}

func (Postgres) Contains(field string) string {
	return fmt.Sprintf(`doc->'%s' @> CAST(? AS JSONB)`, field)
}

// ContainsArg wraps the value in an array; JSONB containment of a one
// element array is element membership.
func (Postgres) ContainsArg(value string) (string, error) {
	return marshal([]string{value})
}

func (Postgres) Push(field string) string {
	return fmt.Sprintf(`doc = jsonb_set(doc, '{%s}', COALESCE(doc->'%s', '[]'::jsonb) || jsonb_build_array(CAST(? AS JSONB)))`, field, field)
}

func (Postgres) CurrentDatabase() string { return `SELECT current_database()` }

func (Postgres) ListTables() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() ORDER BY table_name`
}

func (Postgres) IsDuplicate(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (Postgres) IsIndexExists(err error) bool { return false }

// MySQL stores documents in JSON columns.
type MySQL struct{}

func (MySQL) DriverName() string { return "mysql" }

func (MySQL) Quote(name string) string { return "`" + name + "`" }

func (d MySQL) CreateTable(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		seq BIGINT AUTO_INCREMENT PRIMARY KEY,
		id CHAR(24) NOT NULL UNIQUE,
		doc JSON NOT NULL
	)`, d.Quote(table))
}

func (d MySQL) CreateUniqueIndex(table, field string) string {
	return fmt.Sprintf(`CREATE UNIQUE INDEX %s ON %s ((CAST(doc->>'$.%s' AS CHAR(255)) COLLATE utf8mb4_bin))`,
		d.Quote(table+"_"+field+"_key"), d.Quote(table), field)
}

func (MySQL) Eq(field string) string {
	return fmt.Sprintf(`JSON_UNQUOTE(JSON_EXTRACT(doc, '$.%s')) = ?`, field)
}

func (MySQL) Contains(field string) string {
	return fmt.Sprintf(`JSON_CONTAINS(JSON_EXTRACT(doc, '$.%s'), ?)`, field)
}

// ContainsArg encodes the candidate as a JSON scalar for JSON_CONTAINS.
func (MySQL) ContainsArg(value string) (string, error) {
	return marshal(value)
}

func (MySQL) Push(field string) string {
	return fmt.Sprintf(`doc = JSON_SET(doc, '$.%s', JSON_MERGE_PRESERVE(COALESCE(JSON_EXTRACT(doc, '$.%s'), JSON_ARRAY()), JSON_ARRAY(CAST(? AS JSON))))`, field, field)
}

func (MySQL) CurrentDatabase() string { return `SELECT DATABASE()` }

func (MySQL) ListTables() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name`
}

func (MySQL) IsDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

// IsIndexExists reports ER_DUP_KEYNAME; MySQL has no CREATE INDEX IF NOT EXISTS.
func (MySQL) IsIndexExists(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1061
}

// whereClause renders filter as a WHERE clause with its arguments.
func whereClause(d Dialect, filter docstore.Filter) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	conds := make([]string, 0, len(filter))
	args := make([]any, 0, len(filter))
	for _, p := range filter {
		if p.Field == docstore.IDField {
			if p.Op != docstore.OpEq {
				return "", nil, fmt.Errorf("unsupported operator %s on %s", p.Op, p.Field)
			}
			conds = append(conds, "id = ?")
			args = append(args, p.StringValue())
			continue
		}
		if !docstore.ValidField(p.Field) {
			return "", nil, fmt.Errorf("invalid field name %q", p.Field)
		}
		switch p.Op {
		case docstore.OpEq:
			conds = append(conds, d.Eq(p.Field))
			args = append(args, p.StringValue())
		case docstore.OpContains:
			arg, err := d.ContainsArg(p.StringValue())
			if err != nil {
				return "", nil, err
			}
			conds = append(conds, d.Contains(p.Field))
			args = append(args, arg)
		default:
			return "", nil, fmt.Errorf("unsupported operator %s", p.Op)
		}
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}
