package w2vgrad

// TokenCounts keeps track of how many times different
// tokens occurr in some corpus.
type TokenCounts map[string]int

// CountTokens counts the tokens in a list of tokenized
// sentences.
func CountTokens(sentences [][]string) TokenCounts {
	counts := TokenCounts{}
	for _, sentence := range sentences {
		for _, tok := range sentence {
			counts[tok]++
		}
	}
	return counts
}

// Tokens produces a TokenSet containing every counted
// token.
func (t TokenCounts) Tokens() TokenSet {
	var tokens []string
	for tok := range t {
		tokens = append(tokens, tok)
	}
	return NewTokenSet(tokens)
}

// Frequencies converts the counts to probabilities which
// sum to 1.
func (t TokenCounts) Frequencies() map[string]float64 {
	var total int
	for _, num := range t {
		total += num
	}
	res := map[string]float64{}
	for tok, num := range t {
		res[tok] = float64(num) / float64(total)
	}
	return res
}
