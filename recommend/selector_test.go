package recommend

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/junaidrashid-git/smartcart-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, name, price, category string, stock int) models.Product {
	return models.Product{
		ID:            id,
		Name:          name,
		Price:         decimal.RequireFromString(price),
		Category:      category,
		StockQuantity: stock,
	}
}

func dailyRequest(budget string) Request {
	return Request{
		Budget:      decimal.RequireFromString(budget),
		Dietary:     []string{},
		Preferences: []string{},
		Occasion:    OccasionDaily,
		Servings:    2,
	}
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func sum(products []models.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total
}

func TestSelect_DailyScenario(t *testing.T) {
	catalog := []models.Product{
		item("1", "Organic Bananas", "2.99", "Fruits", 50),
		item("2", "Whole Grain Bread", "3.49", "Bakery", 25),
		item("3", "Artisan Pasta", "2.99", "Pantry", 35),
	}

	t.Run("deterministic", func(t *testing.T) {
		res := NewSelector(NoJitter()).Select(catalog, dailyRequest("5"))
		assert.Equal(t, []string{"1"}, ids(res.Products))
		assert.Equal(t, "2.99", res.TotalCost.String())
	})

	t.Run("with jitter stays within budget", func(t *testing.T) {
		s := NewSelector(WithRand(rand.NewSource(7)))
		for i := 0; i < 50; i++ {
			res := s.Select(catalog, dailyRequest("5"))
			assert.True(t, res.TotalCost.LessThanOrEqual(decimal.NewFromInt(5)))
			assert.NotEmpty(t, res.Products)
		}
	})
}

func TestSelect_AcceptanceOrderAndCost(t *testing.T) {
	catalog := []models.Product{
		item("coffee", "Premium Coffee", "12.99", "Beverages", 15),
		item("spinach", "Organic Spinach", "2.49", "Vegetables", 20),
		item("yogurt", "Greek Yogurt", "4.99", "Dairy", 30),
	}
	req := dailyRequest("10")
	req.Dietary = []string{DietaryOrganic}

	res := NewSelector(NoJitter()).Select(catalog, req)
	assert.Equal(t, []string{"spinach", "yogurt"}, ids(res.Products))
	assert.True(t, res.TotalCost.Equal(sum(res.Products)))
	assert.Equal(t, "2.52", res.Remaining(req.Budget).String())
}

func TestSelect_SkipsOutOfStock(t *testing.T) {
	catalog := []models.Product{
		item("a", "Fresh Apples", "3.99", "Fruits", 0),
		item("b", "Whole Grain Bread", "3.49", "Bakery", 1),
	}
	res := NewSelector(NoJitter()).Select(catalog, dailyRequest("50"))
	assert.Equal(t, []string{"b"}, ids(res.Products))
}

func TestSelect_CapsAtMaxItems(t *testing.T) {
	var catalog []models.Product
	for i := 0; i < 20; i++ {
		catalog = append(catalog, item(strconv.Itoa(i), "Item", "1.00", "Snacks", 5))
	}
	res := NewSelector(NoJitter()).Select(catalog, dailyRequest("100"))
	assert.Len(t, res.Products, MaxItems)
	assert.Equal(t, "8", res.TotalCost.String())
}

func TestSelect_EmptyResults(t *testing.T) {
	s := NewSelector(NoJitter())

	t.Run("empty catalog", func(t *testing.T) {
		res := s.Select(nil, dailyRequest("20"))
		assert.Empty(t, res.Products)
		assert.True(t, res.TotalCost.IsZero())
	})

	t.Run("everything over budget", func(t *testing.T) {
		res := s.Select([]models.Product{item("x", "Salmon", "15.99", "Seafood", 8)}, dailyRequest("10"))
		assert.Empty(t, res.Products)
		assert.True(t, res.TotalCost.IsZero())
	})

	t.Run("non-positive budget", func(t *testing.T) {
		res := s.Select([]models.Product{item("x", "Gum", "0.50", "Snacks", 8)}, dailyRequest("0"))
		assert.Empty(t, res.Products)
	})
}

func TestSelect_ExactBudgetFits(t *testing.T) {
	catalog := []models.Product{
		item("a", "A", "2.50", "Pantry", 1),
		item("b", "B", "2.50", "Pantry", 1),
	}
	res := NewSelector(NoJitter()).Select(catalog, dailyRequest("5.00"))
	assert.Len(t, res.Products, 2)
	assert.Equal(t, "5", res.TotalCost.String())
}

func TestSelect_TiesKeepCatalogOrder(t *testing.T) {
	catalog := []models.Product{
		item("first", "Twin", "1.00", "Pantry", 1),
		item("second", "Twin", "1.00", "Pantry", 1),
		item("third", "Twin", "1.00", "Pantry", 1),
	}
	res := NewSelector(NoJitter()).Select(catalog, dailyRequest("2"))
	assert.Equal(t, []string{"first", "second"}, ids(res.Products))
}

func TestSelect_GreedyDoesNotBacktrack(t *testing.T) {
	// The high scorer eats most of the budget; two cheaper items that would have used
	// the whole budget are not reconsidered.
	catalog := []models.Product{
		item("big", "Organic Chicken Breast", "8.99", "Meat", 12),
		item("s1", "Gum", "5.00", "Pantry", 1),
		item("s2", "Mints", "5.00", "Pantry", 1),
	}
	req := dailyRequest("10")
	req.Dietary = []string{DietaryOrganic}

	res := NewSelector(NoJitter()).Select(catalog, req)
	assert.Equal(t, []string{"big"}, ids(res.Products))
	assert.Equal(t, "8.99", res.TotalCost.String())
}

func TestScore_Bonuses(t *testing.T) {
	s := NewSelector(NoJitter())
	base := func(p models.Product, req Request) float64 {
		return s.Score(p, req)
	}

	tests := []struct {
		name    string
		product models.Product
		mutate  func(*Request)
		want    float64
	}{
		{"budget efficiency only", item("p", "Rice", "5", "Grains", 1), func(r *Request) { r.Occasion = OccasionFamily }, 0.15},
		{"free item caps ratio", item("p", "Sample", "0", "Grains", 1), func(r *Request) { r.Occasion = OccasionRomantic }, 0.3},
		{"pricier than budget", item("p", "Caviar", "40", "Seafood", 1), func(r *Request) { r.Occasion = OccasionFamily }, 0},
		{"organic name match", item("p", "ORGANIC Quinoa", "5", "Grains", 1), func(r *Request) {
			r.Occasion = OccasionFamily
			r.Dietary = []string{DietaryOrganic}
		}, 0.55},
		{"vegetarian dairy", item("p", "Milk", "5", "Dairy", 1), func(r *Request) {
			r.Occasion = OccasionFamily
			r.Dietary = []string{DietaryVegetarian}
		}, 0.45},
		{"healthy vegetables", item("p", "Kale", "5", "Vegetables", 1), func(r *Request) {
			r.Occasion = OccasionFamily
			r.Preferences = []string{PreferenceHealthy}
		}, 0.45},
		{"budget friendly under five", item("p", "Beans", "4.99", "Pantry", 1), func(r *Request) {
			r.Occasion = OccasionFamily
			r.Preferences = []string{PreferenceBudgetFriendly}
		}, (1-4.99/10)*0.3 + 0.2},
		{"budget friendly at five gets nothing", item("p", "Beans", "5", "Pantry", 1), func(r *Request) {
			r.Occasion = OccasionFamily
			r.Preferences = []string{PreferenceBudgetFriendly}
		}, 0.15},
		{"party beverages", item("p", "Cola", "5", "Beverages", 1), func(r *Request) { r.Occasion = OccasionParty }, 0.45},
		{"daily bakery", item("p", "Bagel", "5", "Bakery", 1), func(r *Request) { r.Occasion = OccasionDaily }, 0.35},
		{"stacked bonuses", item("p", "Organic Bananas", "5", "Fruits", 1), func(r *Request) {
			r.Occasion = OccasionDaily
			r.Dietary = []string{DietaryOrganic, DietaryVegetarian}
			r.Preferences = []string{PreferenceHealthy}
		}, 0.15 + 0.4 + 0.3 + 0.3 + 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dailyRequest("10")
			tt.mutate(&req)
			assert.InDelta(t, tt.want, base(tt.product, req), 1e-9)
		})
	}
}

func TestSelect_JitterIsBounded(t *testing.T) {
	s := NewSelector(WithRand(rand.NewSource(1)))
	p := item("p", "Rice", "5", "Grains", 1)
	req := dailyRequest("10")
	req.Occasion = OccasionFamily
	for i := 0; i < 1000; i++ {
		score := s.Score(p, req)
		assert.GreaterOrEqual(t, score, 0.15)
		assert.Less(t, score, 0.45)
	}
}

func randomCatalog(rnd *rand.Rand, n int) []models.Product {
	categories := []string{"Fruits", "Vegetables", "Dairy", "Bakery", "Beverages", "Snacks", "Meat", "Pantry"}
	out := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		cents := rnd.Intn(3000)
		out = append(out, models.Product{
			ID:            strconv.Itoa(i),
			Name:          "Product " + strconv.Itoa(i),
			Price:         decimal.New(int64(cents), -2),
			Category:      categories[rnd.Intn(len(categories))],
			StockQuantity: rnd.Intn(4),
		})
	}
	return out
}

func TestSelect_BudgetBoundProperty(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))
	s := NewSelector(WithRand(rand.NewSource(3)))

	for i := 0; i < 300; i++ {
		catalog := randomCatalog(rnd, rnd.Intn(30))
		req := dailyRequest(strconv.Itoa(1 + rnd.Intn(80)))
		req.Occasion = []Occasion{OccasionDaily, OccasionParty, OccasionSnacks}[rnd.Intn(3)]

		res := s.Select(catalog, req)
		require.True(t, res.TotalCost.LessThanOrEqual(req.Budget))
		require.LessOrEqual(t, len(res.Products), MaxItems)
		require.True(t, res.TotalCost.Equal(sum(res.Products)))
		for _, p := range res.Products {
			require.True(t, p.InStock())
		}
	}
}

func TestSelect_RemovingRejectedProductKeepsCost(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	s := NewSelector(NoJitter())

	for i := 0; i < 100; i++ {
		catalog := randomCatalog(rnd, 5+rnd.Intn(15))
		req := dailyRequest(strconv.Itoa(5 + rnd.Intn(40)))
		res := s.Select(catalog, req)

		chosen := map[string]bool{}
		for _, p := range res.Products {
			chosen[p.ID] = true
		}
		for j, p := range catalog {
			if chosen[p.ID] {
				continue
			}
			reduced := append(append([]models.Product{}, catalog[:j]...), catalog[j+1:]...)
			again := s.Select(reduced, req)
			require.True(t, again.TotalCost.LessThanOrEqual(res.TotalCost))
			require.Equal(t, ids(res.Products), ids(again.Products))
		}
	}
}

func TestRequest_Validate(t *testing.T) {
	ok := dailyRequest("50")
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Budget = decimal.Zero
	assert.ErrorIs(t, bad.Validate(), ErrInvalidBudget)

	bad = ok
	bad.Servings = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidServings)

	bad = ok
	bad.Occasion = "brunch"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidOccasion)
}

func TestParseOccasion(t *testing.T) {
	o, err := ParseOccasion(" Party ")
	require.NoError(t, err)
	assert.Equal(t, OccasionParty, o)

	_, err = ParseOccasion("")
	assert.ErrorIs(t, err, ErrInvalidOccasion)
}
