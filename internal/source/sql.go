package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"charlie/internal/domain"

	"github.com/rs/zerolog"
)

// SQLSource le os registros das tabelas qna_entries, holidays e leave_details.
// Funciona tanto com PostgreSQL quanto com SQLite.
type SQLSource struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSQLSource cria uma nova fonte a partir de uma conexao ja aberta.
func NewSQLSource(db *sql.DB, log zerolog.Logger) *SQLSource {
	return &SQLSource{db: db, log: log.With().Str("component", "sql_source").Logger()}
}

// QnARecords le as perguntas na ordem de cadastro.
func (s *SQLSource) QnARecords(ctx context.Context) ([]domain.QnARecord, error) {
	query := `
    SELECT question, response, synonyms
    FROM qna_entries
    ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar perguntas no banco de dados: %w", err)
	}
	defer rows.Close()

	var records []domain.QnARecord
	for rows.Next() {
		var question, response, synonyms sql.NullString
		if err := rows.Scan(&question, &response, &synonyms); err != nil {
			s.log.Warn().Err(err).Msg("erro ao escanear linha de pergunta")
			continue // Pula entradas malformadas
		}
		records = append(records, domain.QnARecord{
			Question: question.String,
			Response: response.String,
			Synonyms: synonyms.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteracao das perguntas: %w", err)
	}

	s.log.Debug().Int("rows", len(records)).Msg("perguntas carregadas")
	return records, nil
}

// HolidayRecords le os feriados na ordem de cadastro.
func (s *SQLSource) HolidayRecords(ctx context.Context) ([]domain.HolidayRecord, error) {
	query := `
    SELECT holiday_date, name
    FROM holidays
    ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar feriados no banco de dados: %w", err)
	}
	defer rows.Close()

	var records []domain.HolidayRecord
	for rows.Next() {
		var (
			rawDate any
			name    sql.NullString
		)
		if err := rows.Scan(&rawDate, &name); err != nil {
			s.log.Warn().Err(err).Msg("erro ao escanear linha de feriado")
			continue
		}
		date, err := parseDate(rawDate)
		if err != nil {
			s.log.Warn().Err(err).Str("name", name.String).Msg("data de feriado invalida")
			continue
		}
		records = append(records, domain.HolidayRecord{Date: date, Name: name.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteracao dos feriados: %w", err)
	}

	return records, nil
}

// LeaveRecords le os saldos de folga.
func (s *SQLSource) LeaveRecords(ctx context.Context) ([]domain.LeaveRecord, error) {
	query := `
    SELECT employee_name, leave_type, balance, taken, accrued, adjustments
    FROM leave_details
    ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar folgas no banco de dados: %w", err)
	}
	defer rows.Close()

	var records []domain.LeaveRecord
	for rows.Next() {
		var rec domain.LeaveRecord
		var leaveType sql.NullString
		if err := rows.Scan(&rec.EmployeeName, &leaveType, &rec.Balance, &rec.Taken, &rec.Accrued, &rec.Adjustments); err != nil {
			s.log.Warn().Err(err).Msg("erro ao escanear linha de folga")
			continue
		}
		rec.LeaveType = leaveType.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteracao das folgas: %w", err)
	}

	return records, nil
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07:00",
	"02/01/2006",
}

// parseDate aceita o que o driver devolver: time.Time no Postgres, texto no SQLite.
func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		// O go-sqlite3 devolve a data zero quando o texto da coluna DATE nao e uma data.
		if d.IsZero() {
			return time.Time{}, fmt.Errorf("data vazia")
		}
		return d, nil
	case string:
		return parseDateString(d)
	case []byte:
		return parseDateString(string(d))
	case nil:
		return time.Time{}, fmt.Errorf("data vazia")
	default:
		return time.Time{}, fmt.Errorf("tipo de data nao suportado: %T", v)
	}
}

func parseDateString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("formato de data desconhecido: %q", s)
}
