// Package keyword is an offline Searcher that ranks the reference occupation
// list by word overlap with the query.
package keyword

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/JakeFAU/occupation-risk/internal/occupation"
	"github.com/JakeFAU/occupation-risk/internal/search"
)

// DefaultMinScore is the lowest overlap accepted as a match.
const DefaultMinScore = 0.5

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "all": {}, "except": {}, "for": {}, "in": {},
	"of": {}, "or": {}, "other": {}, "the": {}, "to": {}, "with": {},
}

type entry struct {
	ref    occupation.Reference
	tokens map[string]struct{}
}

// Index ranks reference occupations against a query.
type Index struct {
	entries  []entry
	minScore float64
}

// New indexes the reference occupation list. A non-positive minScore uses DefaultMinScore.
func New(minScore float64) *Index {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	refs := occupation.ReferenceOccupations()
	idx := &Index{entries: make([]entry, 0, len(refs)), minScore: minScore}
	for _, ref := range refs {
		idx.entries = append(idx.entries, entry{ref: ref, tokens: tokenSet(ref.Title)})
	}
	return idx
}

// Search scores each reference by the Jaccard overlap of its title words with
// the query words. Ties go to the lower code.
func (idx *Index) Search(ctx context.Context, query string, limit int) ([]search.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := tokenSet(occupation.NormalizeTitle(query))
	if len(q) == 0 {
		return nil, nil
	}
	var matches []search.Match
	for _, e := range idx.entries {
		score := jaccard(q, e.tokens)
		if score < idx.minScore {
			continue
		}
		matches = append(matches, search.Match{Code: e.ref.Code, Title: e.ref.Title, Score: score})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Code < matches[j].Code
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, stop := stopwords[f]; stop {
			continue
		}
		out[stem(f)] = struct{}{}
	}
	return out
}

func stem(word string) string {
	switch {
	case len(word) > 4 && strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case len(word) > 3 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		return word[:len(word)-1]
	}
	return word
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for t := range a {
		if _, ok := b[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(a)+len(b)-shared)
}
