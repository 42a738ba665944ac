package occupation

import (
	"strings"
	"unicode"
)

// Leading tokens that qualify seniority or rank rather than the occupation itself.
var leadingQualifiers = map[string]struct{}{
	"senior":     {},
	"sr":         {},
	"junior":     {},
	"jr":         {},
	"lead":       {},
	"principal":  {},
	"staff":      {},
	"chief":      {},
	"head":       {},
	"associate":  {},
	"entry":      {},
	"level":      {},
	"trainee":    {},
	"apprentice": {},
}

// Trailing tokens: level markers and the same seniority words written after the role.
var trailingQualifiers = map[string]struct{}{
	"i":       {},
	"ii":      {},
	"iii":     {},
	"iv":      {},
	"v":       {},
	"senior":  {},
	"sr":      {},
	"junior":  {},
	"jr":      {},
	"lead":    {},
	"intern":  {},
	"trainee": {},
}

var titleIndex = buildTitleIndex()

// NormalizeTitle lowercases raw, collapses punctuation and whitespace, then
// strips seniority qualifiers and level suffixes ("Sr. Software Engineer II"
// becomes "software engineer"). The result is never empty unless raw is.
func NormalizeTitle(raw string) string {
	tokens := strings.Fields(collapse(raw))
	for len(tokens) > 1 {
		if _, ok := leadingQualifiers[tokens[0]]; !ok {
			break
		}
		tokens = tokens[1:]
	}
	for len(tokens) > 1 {
		last := tokens[len(tokens)-1]
		if _, ok := trailingQualifiers[last]; !ok && !isDigits(last) {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// LookupTitle resolves raw against the static title table. It tries, in
// order: a SOC code typed directly, the collapsed raw title, the normalized
// title, its singular form, and the title with a leading "assistant" dropped.
func LookupTitle(raw string) (Reference, bool) {
	if code, err := NormalizeCode(raw); err == nil {
		if title, ok := standardTitles[code]; ok {
			return Reference{Code: code, Title: title}, true
		}
	}
	normalized := NormalizeTitle(raw)
	candidates := []string{collapse(raw), normalized, singularize(normalized)}
	if rest, ok := strings.CutPrefix(normalized, "assistant "); ok {
		candidates = append(candidates, rest, singularize(rest))
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if code, ok := titleIndex[candidate]; ok {
			return Reference{Code: code, Title: standardTitles[code]}, true
		}
	}
	return Reference{}, false
}

// collapse lowercases s and reduces every run of non-alphanumeric runes to one space.
func collapse(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
			continue
		}
		// apostrophes join rather than split: "sheriff's" -> "sheriffs"
		if r == '\'' || r == '’' {
			continue
		}
		space = true
	}
	return b.String()
}

// singularize drops a plural suffix from the last word only.
func singularize(title string) string {
	if title == "" {
		return title
	}
	head, last := "", title
	if i := strings.LastIndexByte(title, ' '); i >= 0 {
		head, last = title[:i+1], title[i+1:]
	}
	switch {
	case len(last) > 4 && strings.HasSuffix(last, "ies"):
		last = last[:len(last)-3] + "y"
	case strings.HasSuffix(last, "ches"), strings.HasSuffix(last, "shes"),
		strings.HasSuffix(last, "sses"), strings.HasSuffix(last, "xes"):
		last = last[:len(last)-2]
	case len(last) > 3 && strings.HasSuffix(last, "s") && !strings.HasSuffix(last, "ss"):
		last = last[:len(last)-1]
	}
	return head + last
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// buildTitleIndex merges the aliases with the collapsed standard titles.
// Aliases win on collision.
func buildTitleIndex() map[string]string {
	index := make(map[string]string, len(titleAliases)+len(standardTitles))
	for code, title := range standardTitles {
		index[collapse(title)] = code
	}
	for alias, code := range titleAliases {
		index[alias] = code
	}
	return index
}
