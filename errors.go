package interleaving

import "github.com/pkg/errors"

// Usage errors are returned when a method is constructed or scored with arguments it cannot work with.
var (
	// ErrTwoListsRequired is returned by methods that compare exactly two rankers.
	ErrTwoListsRequired = errors.New("lists must be two rankings")
	// ErrSampleNumRequired is returned by methods that must pre-sample their rankings.
	ErrSampleNumRequired = errors.New("sample num must be set, the initial sampling is necessary")
	// ErrUnsupportedListCount is returned when a scoring function cannot handle the number of original lists.
	ErrUnsupportedListCount = errors.New("invalid number of original lists")
	// ErrNoLists is returned when a method is constructed without any lists.
	ErrNoLists = errors.New("at least one list is required")
	// ErrClickOutOfRange is returned when a click position is not a position of the ranking.
	ErrClickOutOfRange = errors.New("click position out of range")
	// ErrUnknownMethod is returned by NewMethod for names it does not know.
	ErrUnknownMethod = errors.New("unknown interleaving method")
	// ErrUnknownCredit is returned by CreditByName for names it does not know.
	ErrUnknownCredit = errors.New("credit function should be either inverse or negative")
	// ErrNotSampled is returned when dumping the rankings of a method created without SampleNum.
	ErrNotSampled = errors.New("rankings were not sampled")
)

// ErrOptimizationInfeasible is returned when the probabilities of the sampled rankings cannot satisfy the
// unbiasedness constraints.
var ErrOptimizationInfeasible = errors.New("optimization failed")

// IsUsageError reports whether err was caused by invalid arguments to a method.
func IsUsageError(err error) bool {
	switch errors.Cause(err) {
	case ErrTwoListsRequired, ErrSampleNumRequired, ErrUnsupportedListCount, ErrNoLists, ErrClickOutOfRange,
		ErrUnknownMethod, ErrUnknownCredit, ErrNotSampled:
		return true
	}
	return false
}
