package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"charlie/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	qna      []domain.QnARecord
	holidays []domain.HolidayRecord
	leave    []domain.LeaveRecord
	err      error
}

func (f *fakeSource) QnARecords(context.Context) ([]domain.QnARecord, error) {
	return f.qna, f.err
}

func (f *fakeSource) HolidayRecords(context.Context) ([]domain.HolidayRecord, error) {
	return f.holidays, f.err
}

func (f *fakeSource) LeaveRecords(context.Context) ([]domain.LeaveRecord, error) {
	return f.leave, f.err
}

// snapshotSource conta quantas vezes o motor pediu um snapshot.
type snapshotSource struct {
	fakeSource
	snapshots int
	snapErr   error
}

func (s *snapshotSource) Snapshot(context.Context) (domain.RecordSource, error) {
	s.snapshots++
	if s.snapErr != nil {
		return nil, s.snapErr
	}
	frozen := s.fakeSource
	return &frozen, nil
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	src := &fakeSource{
		qna: []domain.QnARecord{
			{Question: "What is the leave policy", Response: "See HR portal."},
			{Question: "When is payroll", Response: "Last business day.", Synonyms: "salary date, pay day"},
			{Question: "next holiday list", Response: "Never reached."},
		},
		holidays: []domain.HolidayRecord{
			{Date: day(2025, 1, 1), Name: "New Year"},
			{Date: day(2025, 12, 25), Name: "Christmas"},
		},
		leave: testLeave,
	}
	return New(context.Background(), src, DefaultConfig(), zerolog.Nop())
}

func TestResolve_LengthGate(t *testing.T) {
	e := newTestEngine(t)
	today := day(2025, 6, 1)

	for _, q := range []string{"", "   ", "hi", "holiday", "  leave   ", "payroll"} {
		got := e.ResolveReply(q, today)
		assert.Equal(t, IntentTooShort, got.Intent, q)
		assert.Equal(t, MsgTooShort, got.Text, q)
	}

	// Espacos nas pontas nao contam para o tamanho.
	assert.Equal(t, MsgTooShort, e.Resolve("       pay day       ", today))
	assert.Equal(t, "Last business day.", e.Resolve("pay day!", today))
}

func TestResolve_LeaveBalance(t *testing.T) {
	e := newTestEngine(t)
	today := day(2025, 6, 1)

	got := e.ResolveReply("Leave Balance for VINOD SAI", today)
	assert.Equal(t, IntentLeaveBalance, got.Intent)
	assert.Equal(t, FormatLeave("vinod sai", testLeave[0]), got.Text)
	assert.Contains(t, got.Text, "Leave Type: Vacation Leave\nLeave Balance: 15\nLeave Taken: 5\nLeave Accruals: 2\nAdjustments: 0")

	got = e.ResolveReply("leave balance for vinod", today)
	assert.Equal(t, IntentLeaveBalance, got.Intent)
	assert.Equal(t, "Sorry, I couldn't find the leave balance details for vinod.", got.Text)

	got = e.ResolveReply("leave balance for  .", today)
	assert.Equal(t, IntentLeaveBalance, got.Intent)
	assert.Equal(t, "Sorry, I couldn't find the leave balance details for ..", got.Text)
}

func TestResolve_TrimmedPrefixFallsThroughToKnowledge(t *testing.T) {
	e := newTestEngine(t)

	// A normalizacao remove o espaco final, entao o prefixo "leave balance for " nao casa.
	got := e.ResolveReply("leave balance for ", day(2025, 6, 1))
	assert.Equal(t, IntentKnowledge, got.Intent)
	assert.Equal(t, MsgUnknownAnswer, got.Text)
	require.NotNil(t, got.Match)
	assert.Equal(t, 47, got.Match.Score)
}

func TestResolve_LeaveBeforeHoliday(t *testing.T) {
	e := newTestEngine(t)

	got := e.ResolveReply("leave balance for next holiday", day(2025, 6, 1))
	assert.Equal(t, IntentLeaveBalance, got.Intent)
	assert.Equal(t, "Sorry, I couldn't find the leave balance details for next holiday.", got.Text)
}

func TestResolve_NextHoliday(t *testing.T) {
	e := newTestEngine(t)

	got := e.ResolveReply("When is the NEXT HOLIDAY?", day(2025, 6, 1))
	assert.Equal(t, IntentNextHoliday, got.Intent)
	assert.Equal(t, "Next holiday: Christmas on 2025-12-25", got.Text)

	// "next holiday list" existe na base mas a regra de feriado vem antes.
	got = e.ResolveReply("next holiday list", day(2025, 6, 1))
	assert.Equal(t, IntentNextHoliday, got.Intent)

	got = e.ResolveReply("next holiday", day(2026, 1, 2))
	assert.Equal(t, MsgNoHolidays, got.Text)
}

func TestResolve_Knowledge(t *testing.T) {
	e := newTestEngine(t)
	today := day(2025, 6, 1)

	got := e.ResolveReply("tell me the leave policy please", today)
	assert.Equal(t, IntentKnowledge, got.Intent)
	assert.Equal(t, "See HR portal.", got.Text)
	require.NotNil(t, got.Match)
	assert.Equal(t, "what is the leave policy", got.Match.Key)

	got = e.ResolveReply("what is the salary date", today)
	assert.Equal(t, "Last business day.", got.Text)

	got = e.ResolveReply("how do i reset my password", today)
	assert.Equal(t, MsgUnknownAnswer, got.Text)
	require.NotNil(t, got.Match)
	assert.LessOrEqual(t, got.Match.Score, DefaultFuzzyThreshold)
}

func TestResolve_SharedPrefixClearsThreshold(t *testing.T) {
	e := newTestEngine(t)

	// Partial ratio de 71: a consulta divide "what is the " com a pergunta da base.
	got := e.ResolveReply("what is the weather today", day(2025, 6, 1))
	require.NotNil(t, got.Match)
	assert.Equal(t, 71, got.Match.Score)
	assert.Equal(t, "See HR portal.", got.Text)
}

func TestResolve_ConfigurableLimits(t *testing.T) {
	src := &fakeSource{qna: []domain.QnARecord{{Question: "what is the leave policy", Response: "See HR portal."}}}
	e := New(context.Background(), src, Config{MinQueryLength: 3, FuzzyAcceptThreshold: 80}, zerolog.Nop())

	assert.Equal(t, "See HR portal.", e.Resolve("pol", day(2025, 6, 1)))
	assert.Equal(t, MsgUnknownAnswer, e.Resolve("tell me the leave policy please", day(2025, 6, 1)))
	assert.Equal(t, MsgTooShort, e.Resolve("po", day(2025, 6, 1)))
}

func TestNew_SourceFailureDegradesToEmpty(t *testing.T) {
	e := New(context.Background(), &fakeSource{err: errors.New("planilha indisponivel")}, DefaultConfig(), zerolog.Nop())
	today := day(2025, 6, 1)

	assert.Equal(t, MsgUnknownAnswer, e.Resolve("what is the leave policy", today))
	assert.Equal(t, MsgNoHolidays, e.Resolve("next holiday please", today))
	assert.Equal(t, "Sorry, I couldn't find the leave balance details for akhil.", e.Resolve("leave balance for akhil", today))
	assert.Empty(t, e.Keys(""))
}

func TestEngine_ReloadSwapsSnapshot(t *testing.T) {
	src := &fakeSource{qna: []domain.QnARecord{{Question: "what is the leave policy", Response: "old answer"}}}
	e := New(context.Background(), src, DefaultConfig(), zerolog.Nop())
	today := day(2025, 6, 1)

	assert.Equal(t, "old answer", e.Resolve("what is the leave policy", today))

	src.qna = []domain.QnARecord{{Question: "what is the leave policy", Response: "new answer"}}
	assert.Equal(t, "old answer", e.Resolve("what is the leave policy", today))

	e.Reload(context.Background())
	assert.Equal(t, "new answer", e.Resolve("what is the leave policy", today))
}

func TestEngine_ConcurrentResolve(t *testing.T) {
	e := newTestEngine(t)
	today := day(2025, 6, 1)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, "See HR portal.", e.Resolve("what is the leave policy", today))
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.Reload(context.Background())
	}()
	wg.Wait()
}

func TestEngine_Keys(t *testing.T) {
	e := newTestEngine(t)

	assert.Equal(t, []string{
		"what is the leave policy",
		"when is payroll",
		"salary date",
		"pay day",
		"next holiday list",
	}, e.Keys(""))
	assert.Contains(t, e.Keys("payroll"), "when is payroll")
}

func TestRules_Order(t *testing.T) {
	var got []Intent
	for _, r := range rules {
		got = append(got, r.intent)
	}
	assert.Equal(t, []Intent{IntentTooShort, IntentLeaveBalance, IntentNextHoliday, IntentKnowledge}, got)
}

func TestEngine_UsesOneSnapshotPerBuild(t *testing.T) {
	src := &snapshotSource{fakeSource: fakeSource{
		qna:      []domain.QnARecord{{Question: "what is the leave policy", Response: "old answer"}},
		holidays: []domain.HolidayRecord{{Date: day(2025, 12, 25), Name: "Christmas"}},
	}}
	e := New(context.Background(), src, DefaultConfig(), zerolog.Nop())
	today := day(2025, 6, 1)

	assert.Equal(t, 1, src.snapshots)
	assert.Equal(t, "old answer", e.Resolve("what is the leave policy", today))

	src.qna = []domain.QnARecord{{Question: "what is the leave policy", Response: "new answer"}}
	e.Reload(context.Background())
	assert.Equal(t, 2, src.snapshots)
	assert.Equal(t, "new answer", e.Resolve("what is the leave policy", today))
	assert.Equal(t, "Next holiday: Christmas on 2025-12-25", e.Resolve("next holiday please", today))
}

func TestEngine_SnapshotFailureDegradesToEmpty(t *testing.T) {
	src := &snapshotSource{
		fakeSource: fakeSource{qna: []domain.QnARecord{{Question: "what is the leave policy", Response: "See HR portal."}}},
		snapErr:    errors.New("arquivo corrompido"),
	}
	e := New(context.Background(), src, DefaultConfig(), zerolog.Nop())
	today := day(2025, 6, 1)

	assert.Equal(t, MsgUnknownAnswer, e.Resolve("what is the leave policy", today))
	assert.Equal(t, MsgNoHolidays, e.Resolve("next holiday please", today))
	assert.Empty(t, e.Keys(""))
}
