// Package source implementa as fontes de registros usadas para montar o motor:
// banco de dados, arquivo YAML e listas em memoria.
package source

import (
	"context"

	"charlie/internal/domain"
)

// DefaultLeave e a lista fixa de folgas usada quando nenhuma fonte fornece esses dados.
var DefaultLeave = []domain.LeaveRecord{
	{EmployeeName: "Vinod Sai", LeaveType: "Vacation Leave", Balance: 15, Taken: 5, Accrued: 2, Adjustments: 0},
	{EmployeeName: "Akhil", LeaveType: "Sick Leave", Balance: 10, Taken: 2, Accrued: 1, Adjustments: 0},
	{EmployeeName: "Yogesh", LeaveType: "Personal Leave", Balance: 8, Taken: 3, Accrued: 1, Adjustments: 0},
}

// Static devolve listas em memoria.
type Static struct {
	QnA      []domain.QnARecord
	Holidays []domain.HolidayRecord
	Leave    []domain.LeaveRecord
}

func (s Static) QnARecords(context.Context) ([]domain.QnARecord, error) {
	return s.QnA, nil
}

func (s Static) HolidayRecords(context.Context) ([]domain.HolidayRecord, error) {
	return s.Holidays, nil
}

func (s Static) LeaveRecords(context.Context) ([]domain.LeaveRecord, error) {
	return s.Leave, nil
}

// WithDefaultLeave usa DefaultLeave quando a fonte nao tem nenhum registro de folga.
func WithDefaultLeave(src domain.RecordSource) domain.RecordSource {
	return fallbackLeave{RecordSource: src}
}

type fallbackLeave struct {
	domain.RecordSource
}

func (f fallbackLeave) LeaveRecords(ctx context.Context) ([]domain.LeaveRecord, error) {
	records, err := f.RecordSource.LeaveRecords(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return DefaultLeave, nil
	}
	return records, nil
}

// Snapshot repassa o snapshot da fonte interna mantendo a lista padrao de folgas.
func (f fallbackLeave) Snapshot(ctx context.Context) (domain.RecordSource, error) {
	inner, ok := f.RecordSource.(domain.Snapshotter)
	if !ok {
		return f, nil
	}
	snap, err := inner.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return fallbackLeave{RecordSource: snap}, nil
}
