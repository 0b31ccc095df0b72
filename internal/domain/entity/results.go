package entity

// MethodMetrics holds the aggregate benchmark results for one extraction method.
type MethodMetrics struct {
	Name        string  `json:"name" yaml:"name"`
	Color       string  `json:"color" yaml:"color"`
	Reference   bool    `json:"reference,omitempty" yaml:"reference,omitempty"`
	AvgCalls    float64 `json:"avg_calls" yaml:"calls"`
	AvgTokens   int     `json:"avg_tokens" yaml:"tokens"`
	AvgCost     float64 `json:"avg_cost" yaml:"cost"`
	AvgLatency  float64 `json:"avg_latency" yaml:"latency"`
	SuccessRate int     `json:"success_rate" yaml:"success"`
}

// CategoryCalls holds the average LLM calls per method within one task category.
type CategoryCalls struct {
	Category string             `json:"category" yaml:"category"`
	Calls    map[string]float64 `json:"calls" yaml:"calls"`
}

// ResultSet is the full experimental dataset the figures are rendered from.
// Methods and Categories keep their declaration order, which is also the
// presentation order in every figure.
type ResultSet struct {
	Benchmark      string          `json:"benchmark" yaml:"benchmark"`
	Runs           int             `json:"runs" yaml:"runs"`
	HighlightColor string          `json:"highlight_color" yaml:"highlight_color"`
	Methods        []MethodMetrics `json:"methods" yaml:"methods"`
	Categories     []CategoryCalls `json:"categories" yaml:"categories"`
}

// Reference returns the row of the highlighted method, if any.
func (rs *ResultSet) Reference() (MethodMetrics, bool) {
	for _, m := range rs.Methods {
		if m.Reference {
			return m, true
		}
	}
	return MethodMetrics{}, false
}

// MethodByName returns the row of the named method, if present.
func (rs *ResultSet) MethodByName(name string) (MethodMetrics, bool) {
	for _, m := range rs.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return MethodMetrics{}, false
}

// CategoryNames returns the category labels in complexity order.
func (rs *ResultSet) CategoryNames() []string {
	names := make([]string, 0, len(rs.Categories))
	for _, c := range rs.Categories {
		names = append(names, c.Category)
	}
	return names
}

// CallsSeries returns one method's per-category call averages in category order.
func (rs *ResultSet) CallsSeries(method string) []float64 {
	values := make([]float64, 0, len(rs.Categories))
	for _, c := range rs.Categories {
		values = append(values, c.Calls[method])
	}
	return values
}
