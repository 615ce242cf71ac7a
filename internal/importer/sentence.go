package importer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// titleAbbreviations precede a name and never end a sentence.
var titleAbbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true,
	"rev": true, "fr": true, "sr": true, "jr": true, "st": true,
}

// abbreviations end a sentence only when a new one visibly starts after
// them.
var abbreviations = map[string]bool{
	"etc": true, "vs": true, "cf": true, "al": true, "e.g": true,
	"i.e": true, "no": true, "vol": true, "ch": true, "p": true, "pp": true,
	"jan": true, "feb": true, "mar": true, "apr": true, "jun": true,
	"jul": true, "aug": true, "sep": true, "sept": true, "oct": true,
	"nov": true, "dec": true,
}

// splitSentences cuts prose into sentences, keeping abbreviations,
// decimals, ellipses and trailing quotes intact.
func splitSentences(text string) []string {
	text = normalizeSpace(text)

	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := range runes {
		current.WriteRune(runes[i])
		if !isSentenceBoundary(runes, i) {
			continue
		}
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSentenceBoundary(runes []rune, pos int) bool {
	current := runes[pos]

	// A closing quote carries the boundary of the punctuation before it.
	if isClosingQuote(current) {
		return pos > 0 && isTerminal(runes[pos-1]) && startsNewSentence(runes, pos+1)
	}

	if !isTerminal(current) {
		return false
	}

	// Quoted speech ends after the quote, not inside it.
	if pos+1 < len(runes) && isClosingQuote(runes[pos+1]) {
		return false
	}

	if current == '.' {
		if isEllipsis(runes, pos) || isDecimal(runes, pos) {
			return false
		}
		if word := wordBefore(runes, pos); word != "" {
			if titleAbbreviations[word] {
				return false
			}
			// "p. 42" reads on; "etc. The next day" does not.
			if abbreviations[word] {
				return followedByCapital(runes, pos+1)
			}
		}
	}

	return startsNewSentence(runes, pos+1)
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isClosingQuote(r rune) bool {
	return r == '"' || r == '\'' || r == '”' || r == '’'
}

// startsNewSentence reports whether the text from pos on looks like the
// opening of another sentence: end of input, or whitespace followed by a
// capital, digit or opening quote.
func startsNewSentence(runes []rune, pos int) bool {
	if pos >= len(runes) {
		return true
	}
	if !unicode.IsSpace(runes[pos]) {
		return false
	}
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	if pos >= len(runes) {
		return true
	}
	r := runes[pos]
	return unicode.IsUpper(r) || unicode.IsDigit(r) || r == '"' || r == '“' || r == '‘'
}

func followedByCapital(runes []rune, pos int) bool {
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	if pos >= len(runes) {
		return true
	}
	return unicode.IsUpper(runes[pos])
}

// wordBefore returns the lowercased word ending just before the period at
// pos, with leading quotes and brackets stripped.
func wordBefore(runes []rune, pos int) string {
	start := pos - 1
	for start >= 0 && !unicode.IsSpace(runes[start]) {
		start--
	}
	start++
	if start >= pos {
		return ""
	}
	word := strings.ToLower(string(runes[start:pos]))
	return strings.TrimLeft(word, `"'([`)
}

func isEllipsis(runes []rune, pos int) bool {
	if pos > 0 && runes[pos-1] == '.' {
		return true
	}
	return pos+1 < len(runes) && runes[pos+1] == '.'
}

func isDecimal(runes []rune, pos int) bool {
	return pos > 0 && pos+1 < len(runes) &&
		unicode.IsDigit(runes[pos-1]) && unicode.IsDigit(runes[pos+1])
}

// packSegments joins consecutive sentences into segments no longer than
// maxChars, never cutting inside a sentence unless the sentence alone
// exceeds the limit.
func packSegments(sentences []string, maxChars int) []string {
	var out []string
	var current string

	for _, sentence := range sentences {
		for _, part := range splitLongSentence(sentence, maxChars) {
			switch {
			case current == "":
				current = part
			case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(part) <= maxChars:
				current += " " + part
			default:
				out = append(out, current)
				current = part
			}
		}
	}

	if current != "" {
		out = append(out, current)
	}
	return out
}

// splitLongSentence cuts an oversized sentence on word boundaries. A
// single word longer than maxChars stays whole.
func splitLongSentence(sentence string, maxChars int) []string {
	if utf8.RuneCountInString(sentence) <= maxChars {
		return []string{sentence}
	}

	var parts []string
	var current string
	for _, word := range strings.Fields(sentence) {
		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= maxChars:
			current += " " + word
		default:
			parts = append(parts, current)
			current = word
		}
	}
	if current != "" {
		parts = append(parts, current)
	}
	return parts
}

func normalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
