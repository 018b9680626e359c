package output

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/orlp/sortx/bench"
)

// PlotBench renders an interactive bar chart of benchmark timings, one
// chart per key pattern, into a standalone HTML file.
func PlotBench(results []bench.Result, filename string) error {
	if len(results) == 0 {
		return fmt.Errorf("no benchmark results to plot")
	}

	// Group results by pattern, preserving encounter order.
	var patterns []string
	grouped := make(map[string][]bench.Result)
	for _, r := range results {
		if _, ok := grouped[r.Pattern]; !ok {
			patterns = append(patterns, r.Pattern)
		}
		grouped[r.Pattern] = append(grouped[r.Pattern], r)
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	for _, pattern := range patterns {
		group := grouped[pattern]

		var sizes []string
		var spreadMS, stdMS []opts.BarData
		for _, r := range group {
			sizes = append(sizes, fmt.Sprintf("%d", r.Size))
			spreadMS = append(spreadMS, opts.BarData{Value: float64(r.SpreadNS) / 1e6})
			stdMS = append(stdMS, opts.BarData{Value: float64(r.StdNS) / 1e6})
		}

		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{
				PageTitle:       "spreadsort benchmarks",
				Theme:           types.ThemeVintage,
				BackgroundColor: "transparent",
			}),
			charts.WithTitleOpts(opts.Title{
				Title: fmt.Sprintf("Sort time by input size (%s keys)", pattern),
				Left:  "center",
			}),
			charts.WithLegendOpts(opts.Legend{
				Show: opts.Bool(true),
				Top:  "30",
			}),
			charts.WithTooltipOpts(opts.Tooltip{
				Trigger: "axis",
			}),
			charts.WithXAxisOpts(opts.XAxis{
				Name: "keys",
			}),
			charts.WithYAxisOpts(opts.YAxis{
				Name: "ms",
			}),
		)
		bar.SetXAxis(sizes).
			AddSeries("spreadsort", spreadMS).
			AddSeries("stdlib sort", stdMS)

		page.AddCharts(bar)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create chart file %s: %w", filename, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	fmt.Printf("Benchmark chart saved to %s\n", filename)
	return nil
}
