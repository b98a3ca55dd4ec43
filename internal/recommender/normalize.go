package recommender

import (
	"strings"
	"unicode"
)

// simple stopword list (extend as needed)
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "of": {}, "to": {}, "in": {}, "a": {}, "for": {}, "is": {}, "on": {}, "with": {}, "as": {},
	"by": {}, "at": {}, "from": {}, "that": {}, "this": {}, "it": {}, "an": {}, "be": {}, "or": {}, "are": {}, "was": {},
	"will": {}, "has": {}, "have": {}, "had": {}, "but": {}, "not": {}, "your": {}, "you": {}, "we": {}, "our": {},
	"its": {}, "their": {}, "all": {}, "can": {}, "do": {}, "if": {}, "into": {}, "no": {}, "so": {}, "than": {},
}

// Normalize приводит текст к каноническому виду: нижний регистр,
// без запятых, без крайних пробелов. Применяется одинаково при
// построении словаря и при проекции запроса.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(s), ",", ""))
}

// Tokenize нормализует текст и разбивает его на термы,
// отбрасывая стоп-слова и односимвольные токены.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}

	return tokens
}
