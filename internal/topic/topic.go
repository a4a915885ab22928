// Package topic extracts a short topic keyword from user messages so the
// server can tally which subjects a session keeps asking about.
package topic

import (
	"strings"
	"unicode"
)

// Fallback is returned when a message yields no usable tokens.
const Fallback = "general"

// stopwords is a small set of filler words kept deliberately tiny; topic
// extraction only needs to be good enough for a frequency tally.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "can": {}, "do": {}, "for": {}, "from": {},
	"how": {}, "i": {}, "in": {}, "is": {}, "it": {}, "me": {},
	"my": {}, "of": {}, "on": {}, "or": {}, "please": {}, "should": {},
	"tell": {}, "that": {}, "the": {}, "this": {}, "to": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "why": {}, "with": {}, "you": {},
}

// Extract returns one topic keyword for a user message: the most frequent
// non-stopword token, with longer tokens winning count ties and the
// earliest-seen token winning exact ties. Messages with no usable tokens
// map to Fallback.
func Extract(userMessage string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, userMessage)

	counts := make(map[string]int)
	var order []string
	for _, token := range strings.Fields(cleaned) {
		if _, skip := stopwords[token]; skip {
			continue
		}
		if len(token) <= 2 || isAllDigits(token) {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	// Counting finishes before the winner is picked: on a count-and-length
	// tie the token seen first wins.
	best := ""
	for _, token := range order {
		if best == "" ||
			counts[token] > counts[best] ||
			(counts[token] == counts[best] && len(token) > len(best)) {
			best = token
		}
	}

	if best == "" {
		return Fallback
	}
	return best
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
