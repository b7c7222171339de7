package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ErrUnsupportedDriver e devolvido quando a URL nao e postgres nem sqlite.
var ErrUnsupportedDriver = errors.New("driver de banco de dados nao suportado")

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// ParseURL separa o driver do DSN. Aceita postgres://, postgresql:// e sqlite:<caminho>.
func ParseURL(url string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres, url, nil
	case strings.HasPrefix(url, "sqlite:"):
		return DriverSQLite, strings.TrimPrefix(url, "sqlite:"), nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, url)
	}
}

// Open inicializa a conexao com o banco e garante que as tabelas existam.
func Open(ctx context.Context, url string, log zerolog.Logger) (*sql.DB, error) {
	driver, dsn, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexao com o banco de dados: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao conectar com o banco de dados (ping): %w", err)
	}

	log.Info().Str("driver", driver).Msg("conexao com o banco de dados estabelecida")

	if err := CreateTables(ctx, db, driver); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// CreateTables cria as tabelas de perguntas, feriados e folgas, se nao existirem.
func CreateTables(ctx context.Context, db *sql.DB, driver string) error {
	idColumn := "id SERIAL PRIMARY KEY"
	if driver == DriverSQLite {
		idColumn = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	queries := map[string]string{
		"qna_entries": `
    CREATE TABLE IF NOT EXISTS qna_entries (
        %s,
        question TEXT NOT NULL,
        response TEXT NOT NULL,
        synonyms TEXT
    );`,
		"holidays": `
    CREATE TABLE IF NOT EXISTS holidays (
        %s,
        holiday_date DATE NOT NULL,
        name TEXT NOT NULL
    );`,
		"leave_details": `
    CREATE TABLE IF NOT EXISTS leave_details (
        %s,
        employee_name VARCHAR(255) NOT NULL,
        leave_type VARCHAR(255),
        balance INTEGER NOT NULL DEFAULT 0,
        taken INTEGER NOT NULL DEFAULT 0,
        accrued INTEGER NOT NULL DEFAULT 0,
        adjustments INTEGER NOT NULL DEFAULT 0
    );`,
	}

	for _, table := range []string{"qna_entries", "holidays", "leave_details"} {
		if _, err := db.ExecContext(ctx, fmt.Sprintf(queries[table], idColumn)); err != nil {
			return fmt.Errorf("erro ao criar tabela %s: %w", table, err)
		}
	}
	return nil
}
