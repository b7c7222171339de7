package source

import (
	"context"
	"fmt"
	"os"

	"charlie/internal/domain"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// seedFile e o formato do arquivo YAML com os dados do bot.
type seedFile struct {
	QnA      []domain.QnARecord   `yaml:"qna"`
	Holidays []holidayRow         `yaml:"holidays"`
	Leave    []domain.LeaveRecord `yaml:"leave"`
}

type holidayRow struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

// FileSource le os registros de um arquivo YAML. O arquivo e relido a cada
// chamada, entao um reload enxerga as alteracoes. Snapshot garante que as tres
// listas de uma carga venham da mesma leitura.
type FileSource struct {
	path string
	log  zerolog.Logger
}

func NewFileSource(path string, log zerolog.Logger) *FileSource {
	return &FileSource{path: path, log: log.With().Str("component", "file_source").Logger()}
}

func (f *FileSource) read() (*seedFile, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo de dados: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("erro ao decodificar arquivo de dados: %w", err)
	}
	return &seed, nil
}

// load le o arquivo uma unica vez e converte as linhas. Feriados com data fora
// do formato YYYY-MM-DD sao ignorados.
func (f *FileSource) load() (Static, error) {
	seed, err := f.read()
	if err != nil {
		return Static{}, err
	}

	holidays := make([]domain.HolidayRecord, 0, len(seed.Holidays))
	for _, row := range seed.Holidays {
		date, err := parseDateString(row.Date)
		if err != nil {
			f.log.Warn().Err(err).Str("name", row.Name).Msg("data de feriado invalida")
			continue
		}
		holidays = append(holidays, domain.HolidayRecord{Date: date, Name: row.Name})
	}
	return Static{QnA: seed.QnA, Holidays: holidays, Leave: seed.Leave}, nil
}

// Snapshot devolve o conteudo do arquivo lido de uma vez so.
func (f *FileSource) Snapshot(_ context.Context) (domain.RecordSource, error) {
	data, err := f.load()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *FileSource) QnARecords(_ context.Context) ([]domain.QnARecord, error) {
	data, err := f.load()
	if err != nil {
		return nil, err
	}
	return data.QnA, nil
}

func (f *FileSource) HolidayRecords(_ context.Context) ([]domain.HolidayRecord, error) {
	data, err := f.load()
	if err != nil {
		return nil, err
	}
	return data.Holidays, nil
}

func (f *FileSource) LeaveRecords(_ context.Context) ([]domain.LeaveRecord, error) {
	data, err := f.load()
	if err != nil {
		return nil, err
	}
	return data.Leave, nil
}
