// Package recommend picks a budget-bounded basket of products by scoring the catalog
// against soft preference signals and packing it greedily.
package recommend

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/junaidrashid-git/smartcart-api/models"
	"github.com/shopspring/decimal"
)

const (
	// MaxItems caps the size of a recommended basket.
	MaxItems = 8

	jitterSpan      = 0.3
	budgetWeight    = 0.3
	organicBonus    = 0.4
	vegetarianBonus = 0.3
	healthyBonus    = 0.3
	budgetBonus     = 0.2
	partyBonus      = 0.3
	dailyBonus      = 0.2
)

var (
	cheapThreshold = decimal.NewFromInt(5)

	vegetarianCategories = []string{"Fruits", "Vegetables", "Dairy"}
	healthyCategories    = []string{"Fruits", "Vegetables"}
	partyCategories      = []string{"Beverages", "Snacks"}
	dailyCategories      = []string{"Fruits", "Vegetables", "Dairy", "Bakery"}
)

// JitterFunc returns the exploration term for a product, expected in [0, 0.3).
type JitterFunc func(p models.Product) float64

// Result is the accepted basket in acceptance order.
type Result struct {
	Products  []models.Product `json:"products"`
	TotalCost decimal.Decimal  `json:"total_cost"`
}

// Remaining is how much of budget the result leaves unspent.
func (r Result) Remaining(budget decimal.Decimal) decimal.Decimal {
	return budget.Sub(r.TotalCost)
}

type candidate struct {
	product models.Product
	score   float64
}

// Selector is stateless apart from its jitter source and safe for concurrent use when
// the jitter is.
type Selector struct {
	jitter JitterFunc
}

type Option func(*Selector)

// WithJitter replaces the exploration term.
func WithJitter(fn JitterFunc) Option {
	return func(s *Selector) { s.jitter = fn }
}

// WithRand draws the exploration term from src.
func WithRand(src rand.Source) Option {
	return func(s *Selector) { s.jitter = randomJitter(src) }
}

// NoJitter makes scoring fully deterministic.
func NoJitter() Option {
	return WithJitter(func(models.Product) float64 { return 0 })
}

// NewSelector returns a selector seeded from the clock unless an option overrides it.
// Repeated calls with identical input are not guaranteed to return the same basket.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{jitter: randomJitter(rand.NewSource(time.Now().UnixNano()))}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func randomJitter(src rand.Source) JitterFunc {
	var mu sync.Mutex
	rnd := rand.New(src)
	return func(models.Product) float64 {
		mu.Lock()
		defer mu.Unlock()
		return rnd.Float64() * jitterSpan
	}
}

// Select scores in-stock products and greedily accepts them in score order while the
// running cost stays within budget, up to MaxItems. Skipped products are not revisited.
func (s *Selector) Select(catalog []models.Product, req Request) Result {
	res := Result{Products: []models.Product{}, TotalCost: decimal.Zero}
	if !req.Budget.IsPositive() {
		return res
	}

	candidates := make([]candidate, 0, len(catalog))
	for _, p := range catalog {
		if !p.InStock() {
			continue
		}
		candidates = append(candidates, candidate{product: p, score: s.Score(p, req)})
	}

	// Stable so that equal scores keep catalog order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	for _, c := range candidates {
		if len(res.Products) >= MaxItems {
			break
		}
		next := res.TotalCost.Add(c.product.Price)
		if next.GreaterThan(req.Budget) {
			continue
		}
		res.Products = append(res.Products, c.product)
		res.TotalCost = next
	}
	return res
}

// Score is the desirability of p for req, jitter included.
func (s *Selector) Score(p models.Product, req Request) float64 {
	score := s.jitter(p)
	score += baseScore(p, req)
	return score
}

func baseScore(p models.Product, req Request) float64 {
	ratio := p.Price.Div(req.Budget).InexactFloat64()
	if ratio > 1 {
		ratio = 1
	}
	score := (1 - ratio) * budgetWeight

	if req.hasDietary(DietaryOrganic) && strings.Contains(strings.ToLower(p.Name), "organic") {
		score += organicBonus
	}
	if req.hasDietary(DietaryVegetarian) && contains(vegetarianCategories, p.Category) {
		score += vegetarianBonus
	}
	if req.hasPreference(PreferenceHealthy) && contains(healthyCategories, p.Category) {
		score += healthyBonus
	}
	if req.hasPreference(PreferenceBudgetFriendly) && p.Price.LessThan(cheapThreshold) {
		score += budgetBonus
	}
	if req.Occasion == OccasionParty && contains(partyCategories, p.Category) {
		score += partyBonus
	}
	if req.Occasion == OccasionDaily && contains(dailyCategories, p.Category) {
		score += dailyBonus
	}
	return score
}
