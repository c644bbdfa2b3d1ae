/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tokenizer.go
Description: Password tokenizer for the Akaylee Cracker. Segments a normalized
password into maximal runs of one character class (WORD, FRAG, DIGITS, SYMBOL),
producing the token sequence and the structural template label used by the
frequency model. Pure and side-effect free.
*/

package tokenizer

import (
	"strconv"
	"strings"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
	"github.com/kleascm/akaylee-cracker/pkg/vocab"
)

// minWordLength is the shortest letter run eligible for WORD classification;
// shorter runs are always FRAG regardless of the vocabulary.
const minWordLength = 3

// charClass is the raw scanning class of a single rune. WORD/FRAG are decided
// per run, after scanning, via the vocabulary.
type charClass int

const (
	classLetter charClass = iota
	classDigit
	classSymbol
)

// Tokenizer segments normalized passwords into typed runs. It holds only an
// immutable vocabulary reference and is safe for concurrent use.
type Tokenizer struct {
	vocab *vocab.Vocabulary
}

// New creates a tokenizer backed by the given vocabulary.
func New(v *vocab.Vocabulary) *Tokenizer {
	return &Tokenizer{vocab: v}
}

// Tokenize scans the normalized string left to right; a token ends when the
// character class changes. Letter runs of at least three runes found in the
// vocabulary become WORD, other letter runs FRAG; digit runs become DIGITS;
// anything outside the letter and digit classes is SYMBOL. Concatenating the
// returned token values in order reconstructs the input exactly.
func (t *Tokenizer) Tokenize(normalized string) (interfaces.Template, []interfaces.Token, error) {
	if normalized == "" {
		return nil, nil, &interfaces.InvalidInputError{Reason: "empty string"}
	}

	var tokens []interfaces.Token
	var template interfaces.Template

	runes := []rune(normalized)
	start := 0
	current := classify(runes[0])

	flush := func(end int) {
		run := runes[start:end]
		tok := interfaces.Token{
			Type:   t.runType(current, run),
			Value:  string(run),
			Length: len(run),
		}
		tokens = append(tokens, tok)
		template = append(template, interfaces.Slot{Type: tok.Type, Length: tok.Length})
	}

	for i := 1; i < len(runes); i++ {
		c := classify(runes[i])
		if c != current {
			flush(i)
			start = i
			current = c
		}
	}
	flush(len(runes))

	return template, tokens, nil
}

// runType resolves the final token type for a completed run.
func (t *Tokenizer) runType(c charClass, run []rune) interfaces.TokenType {
	switch c {
	case classDigit:
		return interfaces.TokenDigits
	case classLetter:
		if len(run) >= minWordLength && t.vocab != nil && t.vocab.Contains(string(run)) {
			return interfaces.TokenWord
		}
		return interfaces.TokenFrag
	default:
		return interfaces.TokenSymbol
	}
}

// classify assigns a rune to its scanning class. Only ASCII letters and
// digits form letter and digit runs; every other rune, including non-ASCII
// letters, is treated as SYMBOL.
func classify(r rune) charClass {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return classLetter
	case r >= '0' && r <= '9':
		return classDigit
	default:
		return classSymbol
	}
}

// ParseTemplate inverts Template.Label, turning a label like "WORD8|DIGITS1"
// back into its slot sequence. Fails with InvalidInputError on labels that
// were not produced by Label.
func ParseTemplate(label string) (interfaces.Template, error) {
	if label == "" {
		return nil, &interfaces.InvalidInputError{Reason: "empty template label"}
	}

	parts := strings.Split(label, "|")
	template := make(interfaces.Template, 0, len(parts))

	for _, part := range parts {
		slot, err := parseSlot(part)
		if err != nil {
			return nil, err
		}
		template = append(template, slot)
	}
	return template, nil
}

// parseSlot parses a single "TYPE<len>" segment.
func parseSlot(part string) (interfaces.Slot, error) {
	for _, tt := range []interfaces.TokenType{
		interfaces.TokenDigits,
		interfaces.TokenSymbol,
		interfaces.TokenWord,
		interfaces.TokenFrag,
	} {
		prefix := string(tt)
		if !strings.HasPrefix(part, prefix) {
			continue
		}
		n, err := strconv.Atoi(part[len(prefix):])
		if err != nil || n <= 0 {
			return interfaces.Slot{}, &interfaces.InvalidInputError{
				Reason: "malformed template slot " + strconv.Quote(part),
			}
		}
		return interfaces.Slot{Type: tt, Length: n}, nil
	}
	return interfaces.Slot{}, &interfaces.InvalidInputError{
		Reason: "unknown template slot type " + strconv.Quote(part),
	}
}
