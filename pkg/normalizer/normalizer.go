/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: normalizer.go
Description: Password text normalizer for the Akaylee Cracker. Canonicalizes passwords
before structural analysis by folding case and substituting common leet-speak
characters, so that "P@ssword" and "password" land on the same template.
*/

package normalizer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
)

// DefaultLeetMap returns the shipped leet-speak substitution table.
// '1' and '2' are deliberately absent: they appear overwhelmingly as real
// digit suffixes ("password1"), and mapping them to letters would destroy
// the DIGITS runs the model depends on.
func DefaultLeetMap() map[rune]rune {
	return map[rune]rune{
		'0': 'o',
		'3': 'e',
		'4': 'a',
		'5': 's',
		'7': 't',
		'@': 'a',
		'$': 's',
		'!': 'i',
	}
}

// Normalizer canonicalizes password text prior to tokenization.
// The substitution map is fixed at construction and never mutated, so a
// Normalizer is safe for concurrent use.
type Normalizer struct {
	leet map[rune]rune
}

// New creates a normalizer with the default leet-speak substitution table.
func New() *Normalizer {
	return NewWithMap(DefaultLeetMap())
}

// NewWithMap creates a normalizer with a caller-supplied substitution table.
// The map is copied; later changes by the caller have no effect. Passing an
// empty or nil map yields a case-folding-only normalizer, which tests use to
// isolate tokenizer behavior.
func NewWithMap(leet map[rune]rune) *Normalizer {
	m := make(map[rune]rune, len(leet))
	for k, v := range leet {
		m[k] = v
	}
	return &Normalizer{leet: m}
}

// Normalize lowercases the password and applies the leet substitution table.
// Idempotent: substituted characters are lowercase letters that are never
// themselves substitution keys. Fails with InvalidInputError on empty or
// non-UTF-8 input.
func (n *Normalizer) Normalize(password string) (string, error) {
	if password == "" {
		return "", &interfaces.InvalidInputError{Reason: "empty password"}
	}
	if !utf8.ValidString(password) {
		return "", &interfaces.InvalidInputError{Reason: "password is not valid UTF-8"}
	}

	lowered := cases.Lower(language.Und).String(password)

	return strings.Map(func(r rune) rune {
		if sub, ok := n.leet[r]; ok {
			return sub
		}
		return r
	}, lowered), nil
}
