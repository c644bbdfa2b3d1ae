/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: beam.go
Description: Deterministic beam-search candidate generator for the Akaylee Cracker.
Walks the top-K templates slot by slot, extending a width-bounded beam of partial
strings with the highest-frequency token values and pruning by cumulative smoothed
log-probability. Fully reproducible: no randomness, all ties broken lexicographically.
*/

package generator

import (
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
	"github.com/kleascm/akaylee-cracker/pkg/model"
	"github.com/kleascm/akaylee-cracker/pkg/tokenizer"
)

// partial is a beam entry: a prefix of a candidate and its cumulative
// log-probability over the slots filled so far.
type partial struct {
	text  string
	score float64
}

// BeamGenerator produces a size-bounded, reproducible candidate set by
// greedy beam search over the highest-probability-mass templates and token
// values. It is a greedy approximation to full posterior enumeration, not an
// exhaustive search.
type BeamGenerator struct {
	model  *model.Model
	config *interfaces.GeneratorConfig

	// choiceCache memoizes ranked value lists per (type, length) slot so
	// repeated slots across templates rank the vocabulary once.
	cacheMu     sync.Mutex
	choiceCache map[interfaces.Slot][]model.ValueFrequency
}

var _ interfaces.Generator = (*BeamGenerator)(nil)

// NewBeamGenerator creates a deterministic generator for a trained model.
func NewBeamGenerator(m *model.Model, config *interfaces.GeneratorConfig) (*BeamGenerator, error) {
	if config == nil {
		config = interfaces.DefaultGeneratorConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	return &BeamGenerator{
		model:       m,
		config:      config,
		choiceCache: make(map[interfaces.Slot][]model.ValueFrequency),
	}, nil
}

// Name returns the name of this generation strategy.
func (g *BeamGenerator) Name() string { return "beam" }

// Generate returns the beam-search candidate sequence. For a fixed model and
// config the output is byte-identical on every run: templates are visited in
// frequency rank order, and with Workers > 1 the per-template beams are
// computed independently and merged back in template rank order, so the
// result is independent of goroutine scheduling.
func (g *BeamGenerator) Generate() ([]interfaces.Candidate, error) {
	if !g.model.Trained() {
		return nil, &interfaces.ModelNotTrainedError{Op: "deterministic generation"}
	}

	templates := g.model.TopTemplates(g.config.BeamTopKTemplates)
	perTemplate := make([][]interfaces.Candidate, len(templates))

	if g.config.Workers > 1 {
		var wg sync.WaitGroup
		indexes := make(chan int)
		for w := 0; w < g.config.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexes {
					perTemplate[i] = g.expandTemplate(templates[i].Label)
				}
			}()
		}
		for i := range templates {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
	} else {
		for i := range templates {
			perTemplate[i] = g.expandTemplate(templates[i].Label)
		}
	}

	candidates := make([]interfaces.Candidate, 0, g.config.MaxTotalCandidates)
	for _, batch := range perTemplate {
		for _, cand := range batch {
			if len(candidates) >= g.config.MaxTotalCandidates {
				return candidates, nil
			}
			candidates = append(candidates, cand)
		}
	}
	return candidates, nil
}

// expandTemplate runs the beam over a single template and returns its
// surviving candidates, best first. Templates whose labels fail to parse
// (impossible for model-produced labels) yield nothing.
func (g *BeamGenerator) expandTemplate(label string) []interfaces.Candidate {
	slots, err := tokenizer.ParseTemplate(label)
	if err != nil {
		return nil
	}

	beam := []partial{{text: "", score: 0}}
	for _, slot := range slots {
		choices := g.slotChoices(slot)
		if len(choices) == 0 {
			return nil
		}

		extended := make([]partial, 0, len(beam)*len(choices))
		for _, p := range beam {
			for _, choice := range choices {
				text := p.text + choice.Value
				if utf8.RuneCountInString(text) > g.config.MaxLength {
					continue
				}
				extended = append(extended, partial{
					text:  text,
					score: p.score + g.model.ValueLogProb(slot.Type, choice.Value),
				})
			}
		}

		sortBeam(extended)
		if len(extended) > g.config.BeamWidth {
			extended = extended[:g.config.BeamWidth]
		}
		beam = extended
		if len(beam) == 0 {
			return nil
		}
	}

	templateLog := g.model.TemplateLogProb(label)
	candidates := make([]interfaces.Candidate, 0, len(beam))
	for _, p := range beam {
		if utf8.RuneCountInString(p.text) < g.config.MinLength {
			continue
		}
		candidates = append(candidates, interfaces.Candidate{
			Text:   p.text,
			Source: interfaces.SourceDeterministic,
			Score:  templateLog + p.score,
		})
	}
	return candidates
}

// slotChoices returns the top-N token values matching a slot's type and
// length, ranked by frequency with lexicographic tie-break.
func (g *BeamGenerator) slotChoices(slot interfaces.Slot) []model.ValueFrequency {
	g.cacheMu.Lock()
	choices, ok := g.choiceCache[slot]
	if !ok {
		choices = g.model.TopValues(slot.Type, slot.Length, g.config.BeamTopKPerSlot)
		g.choiceCache[slot] = choices
	}
	g.cacheMu.Unlock()
	return choices
}

// sortBeam orders beam entries by score descending; equal scores fall back
// to lexicographic order on the partial text so pruning is deterministic.
func sortBeam(beam []partial) {
	sort.Slice(beam, func(i, j int) bool {
		if beam[i].score != beam[j].score {
			return beam[i].score > beam[j].score
		}
		return beam[i].text < beam[j].text
	})
}
