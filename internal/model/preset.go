package model

// Preset is a named snapshot of per-category budget amounts. Applying a
// preset replaces current budgets wholesale; it is not additive.
type Preset struct {
	Budgets map[string]float64
	Name    string
}

// BudgetsCopy returns an independent copy of the preset's amounts.
func (p Preset) BudgetsCopy() map[string]float64 {
	out := make(map[string]float64, len(p.Budgets))
	for k, v := range p.Budgets {
		out[k] = v
	}
	return out
}
