package domain

import (
	"context"
	"time"
)

// QnARecord é uma linha da planilha de perguntas e respostas.
// Synonyms chega como texto separado por virgulas.
type QnARecord struct {
	Question string `yaml:"question"`
	Response string `yaml:"response"`
	Synonyms string `yaml:"synonyms,omitempty"`
}

// HolidayRecord representa um feriado. Apenas a data importa, o horario e ignorado.
type HolidayRecord struct {
	Date time.Time
	Name string
}

// LeaveRecord guarda o saldo de folgas de um colaborador.
type LeaveRecord struct {
	EmployeeName string `yaml:"employee_name"`
	LeaveType    string `yaml:"leave_type"`
	Balance      int    `yaml:"balance"`
	Taken        int    `yaml:"taken"`
	Accrued      int    `yaml:"accrued"`
	Adjustments  int    `yaml:"adjustments"`
}

// RecordSource fornece os registros brutos usados para montar o motor.
// Cada metodo e chamado de forma independente; uma falha em um nao afeta os outros.
type RecordSource interface {
	QnARecords(ctx context.Context) ([]QnARecord, error)
	HolidayRecords(ctx context.Context) ([]HolidayRecord, error)
	LeaveRecords(ctx context.Context) ([]LeaveRecord, error)
}

// Snapshotter e implementada por fontes que conseguem ler todos os registros de
// uma vez. O motor chama Snapshot uma vez por carga e le as tres listas do
// resultado, entao perguntas, feriados e folgas saem do mesmo estado da fonte.
type Snapshotter interface {
	Snapshot(ctx context.Context) (RecordSource, error)
}
