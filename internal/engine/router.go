package engine

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Respostas fixas do bot.
const (
	MsgTooShort      = "Please provide a longer question."
	MsgLeaveNotFound = "Sorry, I couldn't find the leave balance details for %s."
	MsgNextHoliday   = "Next holiday: %s on %s"
	MsgNoHolidays    = "There are no upcoming holidays."
	MsgUnknownAnswer = "Sorry, I don't know the answer to that."
)

const (
	leaveBalancePrefix = "leave balance for "
	nextHolidayPhrase  = "next holiday"
)

// Intent identifica qual regra respondeu a consulta.
type Intent string

const (
	IntentTooShort     Intent = "too_short"
	IntentLeaveBalance Intent = "leave_balance"
	IntentNextHoliday  Intent = "next_holiday"
	IntentKnowledge    Intent = "knowledge"
)

// Reply e a resposta do roteador junto com a regra que a produziu.
type Reply struct {
	Intent Intent
	Text   string
	// Match so e preenchido pela regra de conhecimento.
	Match *Match
}

// rule e um par predicado/acao. As regras sao avaliadas em ordem e a primeira que casar responde.
type rule struct {
	intent  Intent
	matches func(s *snapshot, query string) bool
	answer  func(s *snapshot, query string, today time.Time) Reply
}

// rules define a prioridade das intencoes. O limite de tamanho vem antes de
// tudo, entao "next holiday" sozinho (12 letras) passa, mas "holiday" nao.
var rules = []rule{
	{
		intent: IntentTooShort,
		matches: func(s *snapshot, query string) bool {
			return utf8.RuneCountInString(query) < s.cfg.MinQueryLength
		},
		answer: func(_ *snapshot, _ string, _ time.Time) Reply {
			return Reply{Intent: IntentTooShort, Text: MsgTooShort}
		},
	},
	{
		intent: IntentLeaveBalance,
		matches: func(_ *snapshot, query string) bool {
			return strings.HasPrefix(query, leaveBalancePrefix)
		},
		answer: func(s *snapshot, query string, _ time.Time) Reply {
			name := strings.TrimSpace(strings.TrimPrefix(query, leaveBalancePrefix))
			rec, ok := s.leave.Lookup(name)
			if !ok {
				return Reply{Intent: IntentLeaveBalance, Text: fmt.Sprintf(MsgLeaveNotFound, name)}
			}
			return Reply{Intent: IntentLeaveBalance, Text: FormatLeave(name, rec)}
		},
	},
	{
		intent: IntentNextHoliday,
		matches: func(_ *snapshot, query string) bool {
			return strings.Contains(query, nextHolidayPhrase)
		},
		answer: func(s *snapshot, _ string, today time.Time) Reply {
			holiday, ok := s.holidays.NextOnOrAfter(today)
			if !ok {
				return Reply{Intent: IntentNextHoliday, Text: MsgNoHolidays}
			}
			return Reply{
				Intent: IntentNextHoliday,
				Text:   fmt.Sprintf(MsgNextHoliday, holiday.Name, holiday.Date.Format(time.DateOnly)),
			}
		},
	},
	{
		intent:  IntentKnowledge,
		matches: func(_ *snapshot, _ string) bool { return true },
		answer: func(s *snapshot, query string, _ time.Time) Reply {
			match, ok := s.matcher.BestMatch(query, s.kb.keys)
			if match.Key == "" {
				return Reply{Intent: IntentKnowledge, Text: MsgUnknownAnswer}
			}
			if !ok {
				return Reply{Intent: IntentKnowledge, Text: MsgUnknownAnswer, Match: &match}
			}
			response, _ := s.kb.Lookup(match.Key)
			return Reply{Intent: IntentKnowledge, Text: response, Match: &match}
		},
	},
}

// route normaliza a consulta e aplica as regras na ordem.
func (s *snapshot) route(query string, today time.Time) Reply {
	query = Normalize(query)
	for _, r := range rules {
		if r.matches(s, query) {
			return r.answer(s, query, today)
		}
	}
	// A ultima regra sempre casa.
	return Reply{Intent: IntentKnowledge, Text: MsgUnknownAnswer}
}
