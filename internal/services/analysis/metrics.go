package analysis

import (
	"fmt"
	"sort"

	"github.com/bobmcallan/rentfolio/internal/models"
)

// metricExtractor reads one ranking figure from a result.
type metricExtractor func(r *models.AnalysisResult) float64

// metricRegistry maps each supported sort metric to its accessor. Ranking is
// deliberately an enumerated registry rather than reflective field lookup.
var metricRegistry = map[models.SortMetric]metricExtractor{
	models.MetricMonthlyCashFlow: func(r *models.AnalysisResult) float64 { return r.MonthlyCashFlow },
	models.MetricCapRate:         func(r *models.AnalysisResult) float64 { return r.CapRatePct },
	models.MetricAnnualizedROI:   func(r *models.AnalysisResult) float64 { return r.AnnualizedROIPct },
	models.MetricCashOnCash:      func(r *models.AnalysisResult) float64 { return r.CashOnCashPct },
	models.MetricTotalProfit:     func(r *models.AnalysisResult) float64 { return r.TotalProfit },
	models.MetricIRR: func(r *models.AnalysisResult) float64 {
		// Results without a meaningful IRR rank below every found rate.
		if !r.IRRFound {
			return -1e18
		}
		return r.IRRPct
	},
}

// SupportedMetrics returns the sortable metric names in stable order.
func SupportedMetrics() []models.SortMetric {
	metrics := make([]models.SortMetric, 0, len(metricRegistry))
	for m := range metricRegistry {
		metrics = append(metrics, m)
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i] < metrics[j] })
	return metrics
}

// ParseMetric validates a metric name from an API request.
func ParseMetric(name string) (models.SortMetric, error) {
	m := models.SortMetric(name)
	if _, ok := metricRegistry[m]; !ok {
		return "", fmt.Errorf("unsupported sort metric '%s'", name)
	}
	return m, nil
}

// RankResults returns the results ordered by the given metric, best first,
// truncated to limit when limit > 0. Ties break on zpid so ranking is
// deterministic regardless of map iteration order.
func RankResults(results map[string]*models.AnalysisResult, metric models.SortMetric, limit int) []*models.AnalysisResult {
	extract, ok := metricRegistry[metric]
	if !ok {
		extract = metricRegistry[models.MetricMonthlyCashFlow]
	}

	ranked := make([]*models.AnalysisResult, 0, len(results))
	for _, r := range results {
		ranked = append(ranked, r)
	}
	sort.Slice(ranked, func(i, j int) bool {
		vi, vj := extract(ranked[i]), extract(ranked[j])
		if vi != vj {
			return vi > vj
		}
		return ranked[i].ZPID < ranked[j].ZPID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
