package analysis

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/rentfolio/internal/models"
)

// RenderEquityChart renders a PNG line chart of the equity schedule: property
// value, remaining mortgage, and equity by year. Returns raw PNG bytes.
func RenderEquityChart(result *models.AnalysisResult) ([]byte, error) {
	points := result.EquityGrowth
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 equity points, got %d", len(points))
	}

	years := make([]float64, len(points))
	valueY := make([]float64, len(points))
	mortgageY := make([]float64, len(points))
	equityY := make([]float64, len(points))
	for i, p := range points {
		years[i] = float64(p.Year)
		valueY[i] = p.PropertyValue
		mortgageY[i] = p.RemainingMortgage
		equityY[i] = p.Equity
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Equity Growth — %s", result.Address),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("Yr %.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: dollarsFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Property Value",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
					StrokeWidth: 2.5,
				},
				XValues: years,
				YValues: valueY,
			},
			chart.ContinuousSeries{
				Name: "Remaining Mortgage",
				Style: chart.Style{
					StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{5.0, 3.0},
				},
				XValues: years,
				YValues: mortgageY,
			},
			chart.ContinuousSeries{
				Name: "Equity",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("059669"), // emerald-600
					StrokeWidth: 2.5,
				},
				XValues: years,
				YValues: equityY,
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderWealthChart renders the property liquidation wealth path against the
// benchmark path, both anchored at year zero.
func RenderWealthChart(result *models.AnalysisResult) ([]byte, error) {
	if len(result.PropertyWealth) < 2 || len(result.PropertyWealth) != len(result.BenchmarkWealth) {
		return nil, fmt.Errorf("wealth series too short or misaligned")
	}

	years := make([]float64, len(result.PropertyWealth))
	for i := range years {
		years[i] = float64(i)
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Property vs Benchmark — %s", result.Address),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("Yr %.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: dollarsFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Property (liquidation)",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("2563eb"),
					StrokeWidth: 2.5,
				},
				XValues: years,
				YValues: result.PropertyWealth,
			},
			chart.ContinuousSeries{
				Name: "Benchmark",
				Style: chart.Style{
					StrokeColor:     drawing.ColorFromHex("d97706"), // amber-600
					StrokeWidth:     2.0,
					StrokeDashArray: []float64{5.0, 3.0},
				},
				XValues: years,
				YValues: result.BenchmarkWealth,
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func dollarsFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("$%.0fk", f/1000)
	}
	return ""
}
