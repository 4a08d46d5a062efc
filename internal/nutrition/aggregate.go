package nutrition

// MealEntry is the subset of a logged meal the aggregator cares about.
type MealEntry struct {
	Calories  int
	Protein   float64
	Carbs     float64
	Fat       float64
	Completed bool
}

// Totals is the sum of macros over a set of completed meals.
type Totals struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Aggregate sums calories and macros across the meals marked completed.
// Skipped and pending meals contribute nothing. The sum is commutative, so
// input order does not matter.
func Aggregate(meals []MealEntry) Totals {
	var t Totals
	for _, m := range meals {
		if !m.Completed {
			continue
		}
		t.Calories += m.Calories
		t.Protein += m.Protein
		t.Carbs += m.Carbs
		t.Fat += m.Fat
	}
	return t
}
