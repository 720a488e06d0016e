package samples

import (
	"fmt"
	"slices"
	"strings"

	"pylens/src/model"
	"pylens/src/util"
)

// ErrSampleNotFound is returned for unknown sample ids
var ErrSampleNotFound = util.NewError(util.CodeNotFound, "sample not found")

// Catalog is a read-only set of samples in a fixed order
type Catalog struct {
	samples []model.Sample
	index   map[string]int
}

// NewCatalog builds a catalog. Ids must be non-empty and unique.
func NewCatalog(samples []model.Sample) (*Catalog, error) {
	c := &Catalog{
		samples: make([]model.Sample, 0, len(samples)),
		index:   make(map[string]int, len(samples)),
	}

	for _, s := range samples {
		if s.ID == "" {
			return nil, util.NewError(util.CodeValidationError, "sample id is required")
		}
		if _, dup := c.index[s.ID]; dup {
			return nil, util.NewError(util.CodeValidationError, fmt.Sprintf("duplicate sample id %q", s.ID))
		}
		c.index[s.ID] = len(c.samples)
		c.samples = append(c.samples, clone(s))
	}

	return c, nil
}

var defaultCatalog = mustCatalog(builtin)

func mustCatalog(samples []model.Sample) *Catalog {
	c, err := NewCatalog(samples)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in catalog
func Default() *Catalog {
	return defaultCatalog
}

// All returns every sample in catalog order
func (c *Catalog) All() []model.Sample {
	out := make([]model.Sample, len(c.samples))
	for i, s := range c.samples {
		out[i] = clone(s)
	}
	return out
}

// Len returns the number of samples
func (c *Catalog) Len() int {
	return len(c.samples)
}

// ByID looks up a sample
func (c *Catalog) ByID(id string) (model.Sample, error) {
	i, ok := c.index[id]
	if !ok {
		return model.Sample{}, util.AddContext(ErrSampleNotFound, util.CtxSample, id)
	}
	return clone(c.samples[i]), nil
}

// Filter returns samples matching the difficulty and the concept. Empty
// arguments match everything; concepts match case-insensitively by substring.
func (c *Catalog) Filter(difficulty model.Difficulty, concept string) []model.Sample {
	concept = strings.ToLower(strings.TrimSpace(concept))

	var out []model.Sample
	for _, s := range c.samples {
		if difficulty != "" && s.Difficulty != difficulty {
			continue
		}
		if concept != "" && !hasConcept(s, concept) {
			continue
		}
		out = append(out, clone(s))
	}
	return out
}

// Concepts returns the sorted set of concepts across the catalog
func (c *Catalog) Concepts() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range c.samples {
		for _, concept := range s.Concepts {
			if !seen[concept] {
				seen[concept] = true
				out = append(out, concept)
			}
		}
	}
	slices.Sort(out)
	return out
}

func hasConcept(s model.Sample, concept string) bool {
	for _, c := range s.Concepts {
		if strings.Contains(strings.ToLower(c), concept) {
			return true
		}
	}
	return false
}

func clone(s model.Sample) model.Sample {
	s.Concepts = slices.Clone(s.Concepts)
	return s
}

// ParseDifficulty validates a difficulty name. Empty input is allowed.
func ParseDifficulty(value string) (model.Difficulty, error) {
	switch d := model.Difficulty(strings.ToLower(strings.TrimSpace(value))); d {
	case "", model.DifficultyBeginner, model.DifficultyIntermediate, model.DifficultyAdvanced:
		return d, nil
	}
	return "", util.NewError(util.CodeValidationError, fmt.Sprintf("unknown difficulty %q", value))
}
