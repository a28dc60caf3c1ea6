package fields

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// validator post-validates a raw capture. It returns the value to store and
// whether the capture is semantically plausible; an implausible capture
// moves matching on to the next rule rather than emptying the field.
type validator func(raw string) (string, bool)

type rule struct {
	re       *regexp.Regexp
	validate validator
}

type ruleSet []rule

// apply evaluates rules in order and returns the first validated match,
// or "" when no rule produces a plausible value.
func (rs ruleSet) apply(text string) string {
	for _, r := range rs {
		m := r.re.FindStringSubmatch(text)
		if m == nil || len(m) < 2 {
			continue
		}
		if v, ok := r.validate(strings.TrimSpace(m[1])); ok {
			return v
		}
	}
	return ""
}

var (
	reNonDigit   = regexp.MustCompile(`\D`)
	reSpaces     = regexp.MustCompile(`\s+`)
	reDateShape  = regexp.MustCompile(`^\d{2}[/.\-]\d{2}[/.\-]\d{4}$`)
	reValorShape = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})*,\d{2}$`)
	reDateSep    = regexp.MustCompile(`[.\-]`)
)

// minDigits strips everything but digits and accepts the result only when
// at least n digits remain.
func minDigits(n int) validator {
	return func(raw string) (string, bool) {
		digits := reNonDigit.ReplaceAllString(raw, "")
		if len(digits) < n {
			return "", false
		}
		return digits, true
	}
}

// validDate accepts DD/MM/YYYY with '/', '-' or '.' separators and
// normalizes the separators to '/'.
func validDate(raw string) (string, bool) {
	if !reDateShape.MatchString(raw) {
		return "", false
	}
	return reDateSep.ReplaceAllString(raw, "/"), true
}

// validName requires at least two whitespace-separated tokens, each longer
// than one character. Single-word captures are almost always OCR noise.
func validName(raw string) (string, bool) {
	name := strings.TrimSpace(reSpaces.ReplaceAllString(raw, " "))
	tokens := strings.Split(name, " ")
	if len(tokens) < 2 {
		return "", false
	}
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) <= 1 {
			return "", false
		}
	}
	return name, true
}

// validValor accepts the Brazilian currency numeral shape and keeps the
// matched string verbatim, thousands separators included.
func validValor(raw string) (string, bool) {
	if !reValorShape.MatchString(raw) {
		return "", false
	}
	return raw, true
}
