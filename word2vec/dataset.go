package word2vec

import (
	"math"
	"math/rand"

	"github.com/unixpickle/w2vgrad"
)

// DefaultTableSize is the number of entries in the unigram
// table of a SentenceDataset.
const DefaultTableSize = 1000000

// DefaultSamplePower is the exponent applied to token
// frequencies for negative sampling, as in the word2vec
// paper.
const DefaultSamplePower = 0.75

// A TokenSampler draws token indices from a fixed
// distribution.
type TokenSampler interface {
	SampleToken(gen *rand.Rand) int
}

// A Dataset produces random training examples.
type Dataset interface {
	TokenSampler

	// RandomContext picks a center token and the tokens
	// surrounding it, using at most radius tokens on each
	// side.
	RandomContext(gen *rand.Rand, radius int) (center string, context []string)
}

// A Source is an explicitly seeded stream of token draws.
//
// A Source is not safe for concurrent use.
type Source struct {
	Gen     *rand.Rand
	Sampler TokenSampler
}

// NewSource creates a Source seeded with the given seed.
func NewSource(seed int64, s TokenSampler) *Source {
	return &Source{Gen: rand.New(rand.NewSource(seed)), Sampler: s}
}

// SampleToken draws the next token index.
func (s *Source) SampleToken() int {
	return s.Sampler.SampleToken(s.Gen)
}

// UniformDataset is a toy Dataset which draws every token
// uniformly and ignores any notion of a corpus.
type UniformDataset struct {
	Tokens []string
}

// SampleToken draws a uniformly random index.
func (u *UniformDataset) SampleToken(gen *rand.Rand) int {
	return gen.Intn(len(u.Tokens))
}

// RandomContext draws a random center token and exactly
// 2*radius random context tokens.
func (u *UniformDataset) RandomContext(gen *rand.Rand, radius int) (string, []string) {
	center := u.Tokens[gen.Intn(len(u.Tokens))]
	context := make([]string, 2*radius)
	for i := range context {
		context[i] = u.Tokens[gen.Intn(len(u.Tokens))]
	}
	return center, context
}

// SentenceDataset is a Dataset backed by a list of
// tokenized sentences.
//
// Tokens are sampled from the unigram distribution raised
// to a power, using a lookup table.
type SentenceDataset struct {
	Tokens    w2vgrad.TokenSet
	Sentences [][]string

	table []int
}

// NewSentenceDataset creates a SentenceDataset.
//
// If tableSize is 0, DefaultTableSize is used.
// The table never has fewer slots than there are tokens,
// so every token can be drawn.
// At least one sentence must contain two distinct tokens.
func NewSentenceDataset(sentences [][]string, tableSize int) *SentenceDataset {
	if tableSize == 0 {
		tableSize = DefaultTableSize
	}
	counts := w2vgrad.CountTokens(sentences)
	res := &SentenceDataset{
		Tokens:    counts.Tokens(),
		Sentences: sentences,
	}
	if !res.hasContext() {
		panic("no sentence has a usable context")
	}
	res.table = unigramTable(res.Tokens, counts, tableSize, DefaultSamplePower)
	return res
}

// SampleToken draws a token index from the smoothed
// unigram distribution.
func (s *SentenceDataset) SampleToken(gen *rand.Rand) int {
	return s.table[gen.Intn(len(s.table))]
}

// RandomContext picks a random position in a random
// sentence.
// Context tokens equal to the center token are dropped,
// and positions left without context are redrawn.
func (s *SentenceDataset) RandomContext(gen *rand.Rand, radius int) (string, []string) {
	for {
		sentence := s.Sentences[gen.Intn(len(s.Sentences))]
		if len(sentence) == 0 {
			continue
		}
		pos := gen.Intn(len(sentence))
		sample := (&Sample{
			Left:  sentence[:pos],
			Word:  sentence[pos],
			Right: sentence[pos+1:],
		}).Trim(radius)
		var context []string
		for _, tok := range sample.Context() {
			if tok != sample.Word {
				context = append(context, tok)
			}
		}
		if len(context) > 0 {
			return sample.Word, context
		}
	}
}

func (s *SentenceDataset) hasContext() bool {
	for _, sentence := range s.Sentences {
		for _, tok := range sentence {
			if tok != sentence[0] {
				return true
			}
		}
	}
	return false
}

func unigramTable(tokens w2vgrad.TokenSet, counts w2vgrad.TokenCounts, size int,
	power float64) []int {
	if size < len(tokens) {
		size = len(tokens)
	}
	var total float64
	for _, tok := range tokens {
		total += math.Pow(float64(counts[tok]), power)
	}

	// Every token owns at least one slot. The remaining
	// slots are split by cumulative share.
	extra := size - len(tokens)
	table := make([]int, 0, size)
	var cumulative float64
	var filled int
	for i, tok := range tokens {
		cumulative += math.Pow(float64(counts[tok]), power) / total
		end := int(math.Round(cumulative * float64(extra)))
		if i == len(tokens)-1 || end > extra {
			end = extra
		}
		for j := 0; j <= end-filled; j++ {
			table = append(table, i)
		}
		filled = end
	}
	return table
}
