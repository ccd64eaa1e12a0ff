package interleaving

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"math"
	"time"
)

// Credit computes the credit a source receives for a document at a 1-based rank in its list.
type Credit func(rank int) float64

var (
	// InverseCredit is 1/rank.
	InverseCredit Credit = func(rank int) float64 {
		return 1.0 / float64(rank)
	}
	// NegativeCredit is -rank.
	NegativeCredit Credit = func(rank int) float64 {
		return -float64(rank)
	}
)

// CreditByName returns the credit function "inverse" or "negative".
func CreditByName(name string) (Credit, error) {
	switch name {
	case "inverse", "":
		return InverseCredit, nil
	case "negative":
		return NegativeCredit, nil
	}
	return nil, errors.Wrap(ErrUnknownCredit, name)
}

const (
	defaultTau               = 3.0
	defaultApproximationSize = 1e4
	defaultBiasWeight        = 1.0
	defaultAttemptFactor     = 1000
)

type config struct {
	maxLength   int
	sampleNum   int
	rnd         *rand.Rand
	maxAttempts int

	// probabilistic
	tau               float64
	replace           bool
	approximationSize float64

	// optimized
	credit      Credit
	biasWeight  float64
	alwaysLoose bool
}

// Option configures an interleaving method.
type Option func(c *config)

// MaxLength is the maximum length of the interleaved ranking. By default it is the length of the shortest list.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// SampleNum makes the method sample n rankings when it is created. Interleave then draws one of the sampled
// rankings instead of merging the lists again.
func SampleNum(n int) Option {
	return func(c *config) {
		c.sampleNum = n
	}
}

// RandomSource is the source of randomness used by the method. Seed it for reproducible rankings.
func RandomSource(rnd *rand.Rand) Option {
	return func(c *config) {
		c.rnd = rnd
	}
}

// Seed is shorthand for a RandomSource seeded with seed.
func Seed(seed uint64) Option {
	return RandomSource(rand.New(rand.NewSource(seed)))
}

// MaxSamplingAttempts bounds the number of merges made while collecting distinct rankings for the optimized methods.
func MaxSamplingAttempts(n int) Option {
	return func(c *config) {
		c.maxAttempts = n
	}
}

// Tau is the rank decay of the probabilistic softmax.
func Tau(tau float64) Option {
	return func(c *config) {
		c.tau = tau
	}
}

// Replace controls whether the probabilistic method picks lists with replacement.
func Replace(replace bool) Option {
	return func(c *config) {
		c.replace = replace
	}
}

// ApproximationSize is the number of assignment histories the probabilistic multileaving scorer aims to keep.
func ApproximationSize(n float64) Option {
	return func(c *config) {
		c.approximationSize = n
	}
}

// CreditFunction sets how documents are credited in the optimized methods.
func CreditFunction(credit Credit) Option {
	return func(c *config) {
		c.credit = credit
	}
}

// BiasWeight is the weight of the bias in the relaxed optimisation problem.
func BiasWeight(w float64) Option {
	return func(c *config) {
		c.biasWeight = w
	}
}

// AlwaysLoose makes roughly optimized interleaving skip the strict problem.
func AlwaysLoose(loose bool) Option {
	return func(c *config) {
		c.alwaysLoose = loose
	}
}

func newConfig(lists [][]string, options []Option) config {
	c := config{
		tau:               defaultTau,
		replace:           true,
		approximationSize: defaultApproximationSize,
		credit:            InverseCredit,
		biasWeight:        defaultBiasWeight,
	}
	for _, option := range options {
		option(&c)
	}
	if c.maxLength <= 0 {
		c.maxLength = math.MaxInt32
		for _, l := range lists {
			if len(l) < c.maxLength {
				c.maxLength = len(l)
			}
		}
		if len(lists) == 0 {
			c.maxLength = 0
		}
	}
	if c.rnd == nil {
		c.rnd = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = defaultAttemptFactor * c.sampleNum
	}
	return c
}
