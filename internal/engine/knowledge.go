package engine

import (
	"strings"

	"charlie/internal/domain"

	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"
)

// KnowledgeBase mapeia perguntas normalizadas (canonicas e sinonimos) para respostas.
// Depois de construida nao e mais alterada.
type KnowledgeBase struct {
	keys      []string
	responses map[string]string
}

// BuildKnowledgeBase monta a base na ordem dos registros.
// A pergunta canonica sempre sobrescreve; um sinonimo so entra se a chave ainda nao existir.
func BuildKnowledgeBase(records []domain.QnARecord, log zerolog.Logger) *KnowledgeBase {
	kb := &KnowledgeBase{responses: make(map[string]string, len(records))}

	for i, rec := range records {
		question := Normalize(rec.Question)
		response := strings.TrimSpace(rec.Response)
		if question == "" || response == "" {
			log.Warn().Int("row", i).Msg("registro de QnA sem pergunta ou resposta, ignorado")
			continue
		}

		kb.put(question, response)

		if rec.Synonyms == "" {
			continue
		}
		for _, synonym := range strings.Split(rec.Synonyms, ",") {
			key := Normalize(synonym)
			if key == "" {
				continue
			}
			if _, exists := kb.responses[key]; !exists {
				kb.put(key, response)
			}
		}
	}

	return kb
}

// put grava a chave preservando a posicao original em caso de sobrescrita.
func (kb *KnowledgeBase) put(key, response string) {
	if _, exists := kb.responses[key]; !exists {
		kb.keys = append(kb.keys, key)
	}
	kb.responses[key] = response
}

// Keys retorna todas as chaves na ordem de insercao.
func (kb *KnowledgeBase) Keys() []string {
	out := make([]string, len(kb.keys))
	copy(out, kb.keys)
	return out
}

// Lookup retorna a resposta de uma chave ja normalizada.
func (kb *KnowledgeBase) Lookup(key string) (string, bool) {
	response, ok := kb.responses[key]
	return response, ok
}

func (kb *KnowledgeBase) Len() int {
	return len(kb.keys)
}

// Suggest filtra as chaves por subsequencia, usado para navegar pela base.
// Com filtro vazio retorna todas as chaves.
func (kb *KnowledgeBase) Suggest(filter string) []string {
	filter = Normalize(filter)
	if filter == "" {
		return kb.Keys()
	}

	matches := fuzzy.Find(filter, kb.keys)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}
