// Package w2vgrad holds the pieces shared by the word2vec
// models: token indices, token counts, and embedding matrix
// helpers.
package w2vgrad

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownToken is returned when a token has no index.
var ErrUnknownToken = errors.New("unknown token")

// A TokenSet maps tokens to rows of an embedding matrix.
//
// A TokenSet is represented as a sorted list of unique
// tokens.
// Each token's index corresponds to that token's row.
type TokenSet []string

// NewTokenSet creates a TokenSet from a list of tokens,
// which may be unsorted and contain duplicates.
func NewTokenSet(tokens []string) TokenSet {
	res := append(TokenSet{}, tokens...)
	sort.Strings(res)
	var unique TokenSet
	for i, tok := range res {
		if i == 0 || res[i-1] != tok {
			unique = append(unique, tok)
		}
	}
	return unique
}

// ID gets the index for the token.
//
// If the token is not in the set, the error wraps
// ErrUnknownToken.
func (t TokenSet) ID(token string) (int, error) {
	idx := sort.SearchStrings(t, token)
	if idx == len(t) || t[idx] != token {
		return 0, fmt.Errorf("%w: %q", ErrUnknownToken, token)
	}
	return idx, nil
}

// IDs computes the ID for each token.
// It fails on the first unknown token.
func (t TokenSet) IDs(tokens []string) ([]int, error) {
	res := make([]int, len(tokens))
	for i, tok := range tokens {
		id, err := t.ID(tok)
		if err != nil {
			return nil, err
		}
		res[i] = id
	}
	return res, nil
}

// Token gets the token for the given ID.
//
// If the ID is out of range, "" is returned.
func (t TokenSet) Token(id int) string {
	if id < 0 || id >= len(t) {
		return ""
	}
	return t[id]
}
