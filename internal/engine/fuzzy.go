package engine

import "math"

// Match e o melhor candidato encontrado pelo FuzzyMatcher.
type Match struct {
	Key   string
	Score int
}

// FuzzyMatcher escolhe a pergunta da base mais parecida com a consulta.
type FuzzyMatcher struct {
	// Threshold e a nota minima, exclusiva, para aceitar um candidato.
	Threshold int
}

// BestMatch pontua a consulta contra cada candidato e devolve o de maior nota.
// Empates ficam com o primeiro candidato da lista. O Match e preenchido mesmo
// quando a nota nao passa do limite; o bool indica se ele pode ser usado.
func (f FuzzyMatcher) BestMatch(query string, candidates []string) (Match, bool) {
	best := Match{Score: -1}
	for _, candidate := range candidates {
		score := PartialRatio(query, candidate)
		if score > best.Score {
			best = Match{Key: candidate, Score: score}
			if score == 100 {
				break
			}
		}
	}
	if best.Score < 0 {
		return Match{}, false
	}
	return best, best.Score > f.Threshold
}

// PartialRatio compara a menor string com cada janela de mesmo tamanho da maior
// e devolve, de 0 a 100, a fracao de caracteres casados na melhor janela.
// Strings vazias valem 0.
func PartialRatio(a, b string) int {
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		return 0
	}

	best := 0
	for off := 0; off+len(shorter) <= len(longer); off++ {
		m := matchingChars(shorter, longer[off:off+len(shorter)])
		if m > best {
			best = m
			if best == len(shorter) {
				break
			}
		}
	}

	score := int(math.RoundToEven(200 * float64(best) / float64(2*len(shorter))))
	return min(max(score, 0), 100)
}

// matchingChars soma os blocos casados no estilo Ratcliff/Obershelp: acha o
// maior trecho comum e repete o processo a esquerda e a direita dele.
func matchingChars(a, b []rune) int {
	return countBlocks(a, b, 0, len(a), 0, len(b))
}

func countBlocks(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, k := longestMatch(a, b, alo, ahi, blo, bhi)
	if k == 0 {
		return 0
	}
	return k +
		countBlocks(a, b, alo, i, blo, j) +
		countBlocks(a, b, i+k, ahi, j+k, bhi)
}

// longestMatch devolve o maior trecho comum entre a[alo:ahi] e b[blo:bhi].
// Entre trechos do mesmo tamanho vence o que comeca antes em a, depois em b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestSize int) {
	besti, bestj = alo, blo
	if alo >= ahi || blo >= bhi {
		return besti, bestj, 0
	}

	width := bhi - blo + 1
	prev := make([]int, width)
	cur := make([]int, width)
	for i := alo; i < ahi; i++ {
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				cur[j-blo+1] = 0
				continue
			}
			k := prev[j-blo] + 1
			cur[j-blo+1] = k
			if k > bestSize {
				besti, bestj, bestSize = i-k+1, j-k+1, k
			}
		}
		prev, cur = cur, prev
	}
	return besti, bestj, bestSize
}
