/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stochastic.go
Description: Stochastic candidate generator for the Akaylee Cracker. Draws templates
and slot values with probability proportional to their training frequency from an
explicitly seeded random source, producing a diverse but fully reproducible candidate
stream. Duplicate draws are expected and resolved downstream by the aggregator.
*/

package generator

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
	"github.com/kleascm/akaylee-cracker/pkg/model"
	"github.com/kleascm/akaylee-cracker/pkg/tokenizer"
)

// weightedDist is a cumulative-count table for frequency-proportional draws.
// Items are ordered by count descending then lexicographically, so the table
// layout (and therefore every draw) is deterministic for a fixed model.
type weightedDist struct {
	items []string
	cum   []int64
	total int64
}

// newWeightedDist builds a distribution from ranked frequencies.
func newWeightedDist(ranked []model.ValueFrequency) *weightedDist {
	d := &weightedDist{
		items: make([]string, 0, len(ranked)),
		cum:   make([]int64, 0, len(ranked)),
	}
	for _, vf := range ranked {
		d.total += vf.Count
		d.items = append(d.items, vf.Value)
		d.cum = append(d.cum, d.total)
	}
	return d
}

// draw picks one item with probability proportional to its count. An empty
// distribution (possible for a slot whose values were trimmed away) yields
// the empty string; the short candidate is filtered downstream.
func (d *weightedDist) draw(rng *rand.Rand) string {
	if d.total == 0 {
		return ""
	}
	r := rng.Int63n(d.total)
	idx := sort.Search(len(d.cum), func(i int) bool { return d.cum[i] > r })
	return d.items[idx]
}

// StochasticGenerator samples candidates from the model's frequency
// distributions. The seeded random source is the system's only source of
// non-determinism; for a fixed seed the emitted sequence (duplicates
// included) is identical across runs.
type StochasticGenerator struct {
	model  *model.Model
	config *interfaces.GeneratorConfig
}

var _ interfaces.Generator = (*StochasticGenerator)(nil)

// NewStochasticGenerator creates a sampling generator for a trained model.
func NewStochasticGenerator(m *model.Model, config *interfaces.GeneratorConfig) (*StochasticGenerator, error) {
	if config == nil {
		config = interfaces.DefaultGeneratorConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	return &StochasticGenerator{model: m, config: config}, nil
}

// Name returns the name of this generation strategy.
func (g *StochasticGenerator) Name() string { return "stochastic" }

// Generate performs NumSamples weighted draws: one template per draw, then
// one value per slot, concatenated into a candidate. Every draw is emitted
// in order — no length filtering and no dedup happens here; both belong to
// the aggregator.
func (g *StochasticGenerator) Generate() ([]interfaces.Candidate, error) {
	if !g.model.Trained() {
		return nil, &interfaces.ModelNotTrainedError{Op: "stochastic generation"}
	}

	rng := rand.New(rand.NewSource(g.config.Seed))

	templates := g.model.TopTemplates(0)
	templateDist := &weightedDist{
		items: make([]string, 0, len(templates)),
		cum:   make([]int64, 0, len(templates)),
	}
	for _, tf := range templates {
		templateDist.total += tf.Count
		templateDist.items = append(templateDist.items, tf.Label)
		templateDist.cum = append(templateDist.cum, templateDist.total)
	}

	slotDists := make(map[interfaces.Slot]*weightedDist)
	candidates := make([]interfaces.Candidate, 0, g.config.NumSamples)

	for i := 0; i < g.config.NumSamples; i++ {
		label := templateDist.draw(rng)
		slots, err := tokenizer.ParseTemplate(label)
		if err != nil {
			// Model-produced labels always parse; a failure here means the
			// model state is unusable for sampling.
			return nil, fmt.Errorf("unusable template %q: %w", label, err)
		}

		text := ""
		score := g.model.TemplateLogProb(label)
		for _, slot := range slots {
			dist, ok := slotDists[slot]
			if !ok {
				dist = newWeightedDist(g.model.TopValues(slot.Type, slot.Length, 0))
				slotDists[slot] = dist
			}
			value := dist.draw(rng)
			text += value
			score += g.model.ValueLogProb(slot.Type, value)
		}

		candidates = append(candidates, interfaces.Candidate{
			Text:   text,
			Source: interfaces.SourceStochastic,
			Score:  score,
		})
	}
	return candidates, nil
}
