package recommend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Occasion string

const (
	OccasionDaily    Occasion = "daily"
	OccasionParty    Occasion = "party"
	OccasionRomantic Occasion = "romantic"
	OccasionFamily   Occasion = "family"
	OccasionSnacks   Occasion = "snacks"
)

// Tag values the scorer reacts to. Other tags are accepted and ignored.
const (
	DietaryOrganic           = "Organic"
	DietaryVegetarian        = "Vegetarian"
	PreferenceHealthy        = "Healthy"
	PreferenceBudgetFriendly = "Budget-Friendly"
)

var (
	ErrInvalidBudget   = errors.New("budget must be positive")
	ErrInvalidServings = errors.New("servings must be at least 1")
	ErrInvalidOccasion = errors.New("unknown occasion")
)

// ParseOccasion maps a case-insensitive label onto an Occasion.
func ParseOccasion(s string) (Occasion, error) {
	switch o := Occasion(strings.ToLower(strings.TrimSpace(s))); o {
	case OccasionDaily, OccasionParty, OccasionRomantic, OccasionFamily, OccasionSnacks:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOccasion, s)
	}
}

// Request carries the budget and soft preference signals of one recommendation session.
// Servings is validated but does not influence scoring.
type Request struct {
	Budget      decimal.Decimal `json:"budget"`
	Dietary     []string        `json:"dietary"`
	Preferences []string        `json:"preferences"`
	Occasion    Occasion        `json:"occasion"`
	Servings    int             `json:"servings"`
}

// Validate checks the request fields. Select itself never fails on a bad request.
func (r Request) Validate() error {
	if !r.Budget.IsPositive() {
		return ErrInvalidBudget
	}
	if r.Servings < 1 {
		return ErrInvalidServings
	}
	if _, err := ParseOccasion(string(r.Occasion)); err != nil {
		return err
	}
	return nil
}

func (r Request) hasDietary(tag string) bool {
	return contains(r.Dietary, tag)
}

func (r Request) hasPreference(tag string) bool {
	return contains(r.Preferences, tag)
}

func contains(set []string, tag string) bool {
	for _, s := range set {
		if s == tag {
			return true
		}
	}
	return false
}
