package engine

import (
	"fmt"

	"charlie/internal/domain"

	"github.com/rs/zerolog"
)

// LeaveRegistry busca saldos de folga pelo nome exato do colaborador, sem diferenciar maiusculas.
type LeaveRegistry struct {
	byName map[string]domain.LeaveRecord
}

func BuildLeaveRegistry(records []domain.LeaveRecord, log zerolog.Logger) *LeaveRegistry {
	reg := &LeaveRegistry{byName: make(map[string]domain.LeaveRecord, len(records))}
	for i, rec := range records {
		name := Normalize(rec.EmployeeName)
		if name == "" {
			log.Warn().Int("row", i).Msg("registro de folga sem colaborador, ignorado")
			continue
		}
		// Nomes repetidos: fica o primeiro.
		if _, exists := reg.byName[name]; exists {
			continue
		}
		reg.byName[name] = rec
	}
	return reg
}

// Lookup nunca faz correspondencia parcial.
func (r *LeaveRegistry) Lookup(employeeName string) (domain.LeaveRecord, bool) {
	rec, ok := r.byName[Normalize(employeeName)]
	return rec, ok
}

func (r *LeaveRegistry) Len() int {
	return len(r.byName)
}

// FormatLeave monta a resposta com os detalhes de folga, uma linha por campo.
func FormatLeave(employeeName string, rec domain.LeaveRecord) string {
	return fmt.Sprintf("Leave details for %s:\n\n"+
		"Leave Type: %s\n"+
		"Leave Balance: %d\n"+
		"Leave Taken: %d\n"+
		"Leave Accruals: %d\n"+
		"Adjustments: %d",
		employeeName, rec.LeaveType, rec.Balance, rec.Taken, rec.Accrued, rec.Adjustments)
}
