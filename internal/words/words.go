// Package words produces the labelled items shown on the sphere.
package words

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// ErrInvalidArgument reports a request or input list the scene cannot show.
var ErrInvalidArgument = errors.New("invalid argument")

// Item is one word and its relative weight in [0, 1].
// Index 0 of a list is the featured item.
type Item struct {
	Text      string  `yaml:"text"`
	Frequency float64 `yaml:"frequency"`
}

// DefaultPool is the simulated topic vocabulary.
var DefaultPool = []string{
	"AI", "Election", "Climate", "Sports", "Music", "Economy", "Health", "Space", "Tech", "Policy",
	"Education", "Travel", "Science", "Energy", "Art", "Film", "Food", "Weather", "Crypto", "Market",
	"Startup", "Justice", "Culture", "Media", "Security", "Trade", "Fashion", "Gaming", "History", "Law",
	"China", "US", "Europe", "Africa", "Asia", "Ocean", "Virus", "Robot", "Data", "Privacy",
}

// Selector draws shuffled, frequency-ranked subsets of a fixed pool.
type Selector struct {
	pool []string
	rng  *rand.Rand
}

// NewSelector copies pool, dropping blanks and repeats. A nil rng is
// replaced by an unseeded generator.
func NewSelector(pool []string, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	seen := make(map[string]bool, len(pool))
	clean := make([]string, 0, len(pool))
	for _, w := range pool {
		w = strings.TrimSpace(w)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		clean = append(clean, w)
	}
	return &Selector{pool: clean, rng: rng}
}

// NewSeeded returns a Selector over pool with a reproducible order.
func NewSeeded(pool []string, seed uint64) *Selector {
	return NewSelector(pool, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Size is the number of distinct candidates.
func (s *Selector) Size() int { return len(s.pool) }

// Select returns n distinct pool entries in random order. The entry at
// position i gets frequency 1 - i/n, so the first is always 1.0.
func (s *Selector) Select(n int) ([]Item, error) {
	if n < 0 || n > len(s.pool) {
		return nil, fmt.Errorf("select %d words from a pool of %d: %w", n, len(s.pool), ErrInvalidArgument)
	}
	shuffled := make([]string, len(s.pool))
	copy(shuffled, s.pool)
	s.rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	out := make([]Item, n)
	for i := 0; i < n; i++ {
		out[i] = Item{Text: shuffled[i], Frequency: 1 - float64(i)/float64(n)}
	}
	return out, nil
}

// Validate checks that items can be rendered: non-empty distinct text and
// frequencies within [0, 1].
func Validate(items []Item) error {
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.Text) == "" {
			return fmt.Errorf("item %d: empty text: %w", i, ErrInvalidArgument)
		}
		if math.IsNaN(it.Frequency) || it.Frequency < 0 || it.Frequency > 1 {
			return fmt.Errorf("item %d (%q): frequency %v outside [0,1]: %w", i, it.Text, it.Frequency, ErrInvalidArgument)
		}
		if seen[it.Text] {
			return fmt.Errorf("item %d: duplicate word %q: %w", i, it.Text, ErrInvalidArgument)
		}
		seen[it.Text] = true
	}
	return nil
}
