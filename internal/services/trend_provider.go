package services

// TrendProvider supplies the percentage-change indicators and the
// conversion rate shown on the dashboard. The snapshot shape does not care
// where the numbers come from, so a real implementation backed by
// historical comparisons can replace the static one without touching the
// aggregation engine.
type TrendProvider interface {
	// Trends returns the labeled percentage-change strings keyed by metric.
	Trends() map[string]string
	// ConversionRate returns the visitor-to-order conversion rate percentage.
	ConversionRate() float64
}

// StaticTrendProvider returns fixed placeholder values. The service has no
// visitor tracking or historical metric store yet, so these are not derived
// from data.
type StaticTrendProvider struct{}

// NewStaticTrendProvider creates the placeholder trend provider.
func NewStaticTrendProvider() *StaticTrendProvider {
	return &StaticTrendProvider{}
}

// Trends returns the fixed trend indicators. A fresh map is returned on
// every call so callers can not mutate shared state.
func (p *StaticTrendProvider) Trends() map[string]string {
	return map[string]string{
		"revenue":          "+12.5%",
		"products":         "+5.2%",
		"orders":           "+8.3%",
		"users":            "+3.7%",
		"pendingOrders":    "-2.1%",
		"lowStockProducts": "+1.8%",
	}
}

// ConversionRate returns the placeholder conversion rate.
func (p *StaticTrendProvider) ConversionRate() float64 {
	return 3.2
}
