// Package engine resolve a pergunta do usuario em uma resposta: saldo de
// folgas, proximo feriado ou a resposta mais parecida da base de conhecimento.
//
// Os indices sao montados uma vez e nunca alterados. Recarregar os dados cria
// um snapshot novo que substitui o anterior de forma atomica, entao consultas
// concorrentes nao precisam de lock.
package engine

import (
	"context"
	"sync/atomic"
	"time"

	"charlie/internal/domain"

	"github.com/rs/zerolog"
)

const (
	DefaultMinQueryLength = 8
	DefaultFuzzyThreshold = 70
)

type Config struct {
	// MinQueryLength rejeita consultas mais curtas antes de qualquer regra.
	MinQueryLength int
	// FuzzyAcceptThreshold e a nota que a melhor pergunta precisa superar.
	FuzzyAcceptThreshold int
}

func DefaultConfig() Config {
	return Config{
		MinQueryLength:       DefaultMinQueryLength,
		FuzzyAcceptThreshold: DefaultFuzzyThreshold,
	}
}

type snapshot struct {
	cfg      Config
	kb       *KnowledgeBase
	holidays *HolidayIndex
	leave    *LeaveRegistry
	matcher  FuzzyMatcher
}

// Engine e seguro para uso concorrente.
type Engine struct {
	src     domain.RecordSource
	cfg     Config
	log     zerolog.Logger
	current atomic.Pointer[snapshot]
}

// New monta o motor a partir da fonte de registros. Nunca falha: uma fonte
// com erro deixa o indice correspondente vazio.
func New(ctx context.Context, src domain.RecordSource, cfg Config, log zerolog.Logger) *Engine {
	e := &Engine{src: src, cfg: cfg, log: log.With().Str("component", "engine").Logger()}
	e.current.Store(e.build(ctx))
	return e
}

// Reload le a fonte de novo e publica o novo snapshot.
func (e *Engine) Reload(ctx context.Context) {
	e.current.Store(e.build(ctx))
}

// emptySource substitui uma fonte cujo snapshot falhou.
type emptySource struct{}

func (emptySource) QnARecords(context.Context) ([]domain.QnARecord, error) {
	return nil, nil
}

func (emptySource) HolidayRecords(context.Context) ([]domain.HolidayRecord, error) {
	return nil, nil
}

func (emptySource) LeaveRecords(context.Context) ([]domain.LeaveRecord, error) {
	return nil, nil
}

func (e *Engine) build(ctx context.Context) *snapshot {
	src := e.src
	if s, ok := src.(domain.Snapshotter); ok {
		snap, err := s.Snapshot(ctx)
		if err != nil {
			e.log.Error().Err(err).Msg("erro ao ler a fonte de registros, indices vazios")
			snap = emptySource{}
		}
		src = snap
	}

	qna, err := src.QnARecords(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("erro ao carregar perguntas e respostas, base vazia")
		qna = nil
	}
	holidays, err := src.HolidayRecords(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("erro ao carregar feriados, indice vazio")
		holidays = nil
	}
	leave, err := src.LeaveRecords(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("erro ao carregar folgas, registro vazio")
		leave = nil
	}

	s := &snapshot{
		cfg:      e.cfg,
		kb:       BuildKnowledgeBase(qna, e.log),
		holidays: BuildHolidayIndex(holidays, e.log),
		leave:    BuildLeaveRegistry(leave, e.log),
		matcher:  FuzzyMatcher{Threshold: e.cfg.FuzzyAcceptThreshold},
	}

	e.log.Info().
		Int("qna_keys", s.kb.Len()).
		Int("holidays", s.holidays.Len()).
		Int("employees", s.leave.Len()).
		Msg("indices carregados")
	return s
}

// Resolve devolve o texto da resposta. today deve vir de quem chama; o motor nao consulta o relogio.
func (e *Engine) Resolve(query string, today time.Time) string {
	return e.ResolveReply(query, today).Text
}

// ResolveReply e igual a Resolve mas informa tambem a intencao e a nota do match.
func (e *Engine) ResolveReply(query string, today time.Time) Reply {
	return e.current.Load().route(query, today)
}

// Keys lista as chaves da base, filtradas por subsequencia quando filter nao e vazio.
func (e *Engine) Keys(filter string) []string {
	return e.current.Load().kb.Suggest(filter)
}
