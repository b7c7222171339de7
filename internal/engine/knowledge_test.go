package engine

import (
	"testing"

	"charlie/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKnowledgeBase_SynonymsNeverOverwrite(t *testing.T) {
	records := []domain.QnARecord{
		{Question: "pto", Response: "R1", Synonyms: "time off"},
		{Question: "time off", Response: "R2"},
	}

	kb := BuildKnowledgeBase(records, zerolog.Nop())

	got, ok := kb.Lookup("pto")
	require.True(t, ok)
	assert.Equal(t, "R1", got)

	got, ok = kb.Lookup("time off")
	require.True(t, ok)
	assert.Equal(t, "R2", got)
	assert.Equal(t, []string{"pto", "time off"}, kb.Keys())
}

func TestBuildKnowledgeBase_SynonymLosesToEarlierKey(t *testing.T) {
	records := []domain.QnARecord{
		{Question: "Vacation", Response: "canonical"},
		{Question: "holidays", Response: "from synonym", Synonyms: " VACATION , days off"},
	}

	kb := BuildKnowledgeBase(records, zerolog.Nop())

	got, _ := kb.Lookup("vacation")
	assert.Equal(t, "canonical", got)
	got, _ = kb.Lookup("days off")
	assert.Equal(t, "from synonym", got)
}

func TestBuildKnowledgeBase_CanonicalOverwriteKeepsPosition(t *testing.T) {
	records := []domain.QnARecord{
		{Question: "first question", Response: "old"},
		{Question: "second question", Response: "two"},
		{Question: "  FIRST question ", Response: "new"},
	}

	kb := BuildKnowledgeBase(records, zerolog.Nop())

	assert.Equal(t, []string{"first question", "second question"}, kb.Keys())
	got, _ := kb.Lookup("first question")
	assert.Equal(t, "new", got)
}

func TestBuildKnowledgeBase_SkipsMalformedRows(t *testing.T) {
	records := []domain.QnARecord{
		{Question: "", Response: "orphan answer"},
		{Question: "no answer here", Response: "   "},
		{Question: "valid question", Response: " trimmed answer ", Synonyms: "a,,  ,b"},
	}

	kb := BuildKnowledgeBase(records, zerolog.Nop())

	assert.Equal(t, []string{"valid question", "a", "b"}, kb.Keys())
	got, _ := kb.Lookup("valid question")
	assert.Equal(t, "trimmed answer", got)
	_, ok := kb.Lookup("")
	assert.False(t, ok)
}

func TestBuildKnowledgeBase_Idempotent(t *testing.T) {
	records := []domain.QnARecord{
		{Question: "pto", Response: "R1", Synonyms: "time off,leave"},
		{Question: "time off", Response: "R2"},
		{Question: "payroll date", Response: "Last business day."},
	}

	first := BuildKnowledgeBase(records, zerolog.Nop())
	second := BuildKnowledgeBase(records, zerolog.Nop())

	assert.Equal(t, first.Keys(), second.Keys())
	assert.Equal(t, first.responses, second.responses)
}

func TestBuildKnowledgeBase_Empty(t *testing.T) {
	kb := BuildKnowledgeBase(nil, zerolog.Nop())

	assert.Equal(t, 0, kb.Len())
	assert.Empty(t, kb.Keys())
}

func TestKnowledgeBase_Suggest(t *testing.T) {
	kb := BuildKnowledgeBase([]domain.QnARecord{
		{Question: "what is the leave policy", Response: "x"},
		{Question: "payroll date", Response: "y"},
		{Question: "how to apply for leave", Response: "z"},
	}, zerolog.Nop())

	all := kb.Suggest("  ")
	assert.Len(t, all, 3)

	got := kb.Suggest("LEAVE")
	assert.ElementsMatch(t, []string{"what is the leave policy", "how to apply for leave"}, got)

	assert.Empty(t, kb.Suggest("zzz"))
}
