/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Core types and interfaces for the Akaylee Cracker engine. Defines the
fundamental data structures used throughout the password modeling process including
tokens, templates, candidates, and configuration parameters.
*/

package interfaces

import (
	"fmt"
	"strings"
)

// TokenType classifies a maximal run of characters within a normalized password.
// WORD and FRAG are both letter runs; WORD means the run is a known dictionary
// word, FRAG is any other letter fragment.
type TokenType string

const (
	TokenWord   TokenType = "WORD"
	TokenFrag   TokenType = "FRAG"
	TokenDigits TokenType = "DIGITS"
	TokenSymbol TokenType = "SYMBOL"
)

// ValidTokenType reports whether t is one of the four defined token types.
func ValidTokenType(t TokenType) bool {
	switch t {
	case TokenWord, TokenFrag, TokenDigits, TokenSymbol:
		return true
	}
	return false
}

// Token is an indivisible maximal run of one character class within a
// normalized password. Value is the literal substring; Length is the number
// of runes in Value.
type Token struct {
	Type   TokenType `json:"type"`
	Value  string    `json:"value"`
	Length int       `json:"length"`
}

// Slot is one position of a template: the token type and rune length
// required at that position.
type Slot struct {
	Type   TokenType `json:"type"`
	Length int       `json:"length"`
}

// Template is the structural shape of a password expressed as an ordered
// sequence of typed, sized slots. Templates are the unit of structural
// frequency in the model.
type Template []Slot

// Label renders the template in its canonical form, e.g. "WORD8|DIGITS1".
// The label is the key used in the frequency tables and in snapshots.
func (t Template) Label() string {
	var b strings.Builder
	for i, slot := range t {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%s%d", slot.Type, slot.Length)
	}
	return b.String()
}

// CandidateSource identifies which generation strategy produced a candidate.
type CandidateSource string

const (
	SourceDeterministic CandidateSource = "deterministic"
	SourceStochastic    CandidateSource = "stochastic"
)

// Candidate is a single generated password candidate. Candidates are never
// mutated after creation, only filtered and merged downstream.
type Candidate struct {
	Text   string          `json:"text"`
	Source CandidateSource `json:"source"`
	Score  float64         `json:"score"`
}

// Normalizer canonicalizes password text prior to structural analysis.
type Normalizer interface {
	// Normalize returns the canonical form of the password. It must be
	// idempotent and fail with InvalidInputError on empty input.
	Normalize(password string) (string, error)
}

// Tokenizer segments a normalized string into typed runs forming a template.
type Tokenizer interface {
	// Tokenize scans the normalized string left to right and returns the
	// template together with the ordered token sequence. Concatenating the
	// token values in order reconstructs the input exactly.
	Tokenize(normalized string) (Template, []Token, error)
}

// CorpusSource is a lazy, forward-only stream of corpus lines. It follows the
// bufio.Scanner contract so training can consume corpora far larger than
// memory: Scan advances to the next line, Text returns it, Err reports any
// read failure after Scan returns false.
type CorpusSource interface {
	Scan() bool
	Text() string
	Err() error
	Close() error
}

// Generator produces an ordered sequence of password candidates from a
// trained model.
type Generator interface {
	// Generate returns the full candidate sequence for this strategy.
	Generate() ([]Candidate, error)

	// Name returns the name of this generation strategy.
	Name() string
}

// ProgressFunc receives periodic progress signals during a training pass so
// a caller can implement its own timeout or cancellation policy. It is
// invoked with the number of processed and skipped lines so far.
type ProgressFunc func(processed int64, skipped int64)

// GeneratorConfig contains all bounds for candidate generation.
// Supports both command-line flags and configuration files.
type GeneratorConfig struct {
	// Beam search bounds
	BeamTopKTemplates  int `json:"beam_topk_templates"`   // Templates explored, by frequency
	BeamTopKPerSlot    int `json:"beam_topk_per_slot"`    // Token values considered per slot
	BeamWidth          int `json:"beam_width"`            // Partial candidates retained after each slot
	MaxTotalCandidates int `json:"max_total_candidates"`  // Global output cap for beam search
	Workers            int `json:"workers"`               // Parallel template workers (<=1 = sequential)

	// Stochastic sampling bounds
	NumSamples int   `json:"num_samples"` // Total weighted draws
	Seed       int64 `json:"seed"`        // RNG seed for reproducible sampling

	// Length bounds applied to the final candidate artifact
	MinLength int `json:"min_length"`
	MaxLength int `json:"max_length"`
}

// DefaultGeneratorConfig returns the production defaults for generation.
func DefaultGeneratorConfig() *GeneratorConfig {
	return &GeneratorConfig{
		BeamTopKTemplates:  40,
		BeamTopKPerSlot:    300,
		BeamWidth:          2000,
		MaxTotalCandidates: 200000,
		Workers:            1,
		NumSamples:         3000,
		Seed:               42,
		MinLength:          6,
		MaxLength:          64,
	}
}

// Validate checks the GeneratorConfig for invalid or missing values.
// Returns an error if the config is invalid, or nil if valid.
func (c *GeneratorConfig) Validate() error {
	if c.BeamTopKTemplates <= 0 {
		return fmt.Errorf("beam_topk_templates must be positive")
	}
	if c.BeamTopKPerSlot <= 0 {
		return fmt.Errorf("beam_topk_per_slot must be positive")
	}
	if c.BeamWidth <= 0 {
		return fmt.Errorf("beam_width must be positive")
	}
	if c.MaxTotalCandidates <= 0 {
		return fmt.Errorf("max_total_candidates must be positive")
	}
	if c.NumSamples < 0 {
		return fmt.Errorf("num_samples must not be negative")
	}
	if c.MinLength <= 0 {
		return fmt.Errorf("min_length must be positive")
	}
	if c.MaxLength < c.MinLength {
		return fmt.Errorf("max_length must be >= min_length")
	}
	return nil
}
