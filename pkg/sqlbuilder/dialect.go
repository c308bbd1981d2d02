package sqlbuilder

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Dialect SQL-диалект хранилища
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// ParseDialect сопоставляет имя драйвера database/sql с диалектом
func ParseDialect(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pq":
		return DialectPostgres, nil
	case "sqlite3", "sqlite":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// DriverName имя драйвера для sql.Open
func (d Dialect) DriverName() string {
	return string(d)
}

// Builder возвращает squirrel-билдер с плейсхолдерами диалекта
func (d Dialect) Builder() sq.StatementBuilderType {
	if d == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// SupportsRowLocks возвращает true, если диалект понимает SELECT ... FOR UPDATE
func (d Dialect) SupportsRowLocks() bool {
	return d == DialectPostgres
}
