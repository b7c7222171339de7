package engine

import (
	"time"

	"charlie/internal/domain"

	"github.com/rs/zerolog"
)

// HolidayIndex guarda os feriados na ordem em que foram carregados.
type HolidayIndex struct {
	holidays []domain.HolidayRecord
}

// BuildHolidayIndex descarta registros sem data ou sem nome.
func BuildHolidayIndex(records []domain.HolidayRecord, log zerolog.Logger) *HolidayIndex {
	idx := &HolidayIndex{holidays: make([]domain.HolidayRecord, 0, len(records))}
	for i, rec := range records {
		if rec.Date.IsZero() || rec.Name == "" {
			log.Warn().Int("row", i).Msg("feriado sem data ou nome, ignorado")
			continue
		}
		idx.holidays = append(idx.holidays, domain.HolidayRecord{Date: dateOnly(rec.Date), Name: rec.Name})
	}
	return idx
}

// NextOnOrAfter retorna o feriado de menor data >= today.
// Em caso de empate vence o primeiro carregado.
func (h *HolidayIndex) NextOnOrAfter(today time.Time) (domain.HolidayRecord, bool) {
	today = dateOnly(today)

	var (
		next  domain.HolidayRecord
		found bool
	)
	for _, holiday := range h.holidays {
		if holiday.Date.Before(today) {
			continue
		}
		if !found || holiday.Date.Before(next.Date) {
			next = holiday
			found = true
		}
	}
	return next, found
}

func (h *HolidayIndex) Len() int {
	return len(h.holidays)
}

// dateOnly descarta hora e fuso mantendo o dia do calendario.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
