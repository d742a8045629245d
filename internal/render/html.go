package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/huangsam/gitimpact/internal/contract"
	"github.com/huangsam/gitimpact/schema"
)

const (
	htmlChartWidth  = "1200px"
	htmlChartHeight = "520px"
	htmlDonutRadius = "70%"
	htmlDonutHole   = "40%"
	htmlStack       = "total"
	htmlTrendWidth  = 2
	htmlLabelRotate = 45
)

// HTMLRenderer renders summaries into an interactive go-echarts page.
type HTMLRenderer struct{}

var _ contract.ChartRenderer = &HTMLRenderer{} // Compile-time check

// NewHTMLRenderer creates a new HTML renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Extension implements the ChartRenderer interface.
func (r *HTMLRenderer) Extension() string {
	return string(schema.HTMLChart)
}

// Render implements the ChartRenderer interface.
func (r *HTMLRenderer) Render(w io.Writer, summary *schema.Summary, title string) error {
	page := components.NewPage()
	page.PageTitle = title
	page.SetLayout(components.PageFlexLayout)

	if summary.Mode == schema.MultiProjectMode {
		var pivot schema.Pivot
		if summary.ProjectAuthor != nil {
			pivot = *summary.ProjectAuthor
		}
		page.AddCharts(
			stackedBarChart(projectAuthorTitle, title, "Project", summary.Metric, pivot),
			projectShareChart(summary),
			leaderboardChart(summary),
		)
	} else {
		page.AddCharts(
			timeseriesChart(summary, title),
			leaderboardChart(summary),
		)
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render HTML page: %w", err)
	}
	return nil
}

// timeseriesChart stacks daily author bars and overlays the moving average.
func timeseriesChart(summary *schema.Summary, subtitle string) *charts.Bar {
	bar := stackedBarChart(timeseriesTitle, subtitle, "Date", summary.Metric, summary.Timeseries)
	if len(summary.MovingAverage) == 0 {
		return bar
	}

	data := make([]opts.LineData, len(summary.MovingAverage))
	for i, v := range summary.MovingAverage {
		data[i] = opts.LineData{Value: v}
	}
	line := charts.NewLine()
	line.SetXAxis(summary.Timeseries.Rows).
		AddSeries(movingAverageLabel, data,
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Width: htmlTrendWidth, Color: "#000000"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#000000"}),
		)
	bar.Overlap(line)
	return bar
}

// stackedBarChart draws one stacked series per pivot column.
func stackedBarChart(title, subtitle, xLabel string, metric schema.MetricMode, pivot schema.Pivot) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: htmlChartWidth, Height: htmlChartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom", Type: "scroll"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xLabel, AxisLabel: &opts.AxisLabel{Rotate: htmlLabelRotate}}),
		charts.WithYAxisOpts(opts.YAxis{Name: metricLabel(metric)}),
	)
	bar.SetXAxis(pivot.Rows)

	for j, column := range pivot.Columns {
		values := pivot.Column(j)
		data := make([]opts.BarData, len(values))
		for i, v := range values {
			data[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(column, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: htmlStack}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: paletteHex(j)}),
		)
	}
	return bar
}

// leaderboardChart draws author totals in descending order.
func leaderboardChart(summary *schema.Summary) *charts.Bar {
	names := make([]string, len(summary.AuthorTotals))
	data := make([]opts.BarData, len(summary.AuthorTotals))
	for i, e := range summary.AuthorTotals {
		names[i] = e.Name
		data[i] = opts.BarData{Value: e.Value}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: htmlChartWidth, Height: htmlChartHeight}),
		charts.WithTitleOpts(opts.Title{Title: leaderboardLabel(summary)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Author", AxisLabel: &opts.AxisLabel{Rotate: htmlLabelRotate}}),
		charts.WithYAxisOpts(opts.YAxis{Name: metricLabel(summary.Metric)}),
	)
	bar.SetXAxis(names).
		AddSeries(leaderboardTitle, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: paletteHex(0)}),
		)
	return bar
}

// projectShareChart draws project totals, including "Other", as a donut.
func projectShareChart(summary *schema.Summary) *charts.Pie {
	data := make([]opts.PieData, len(summary.ProjectTotals))
	for i, e := range summary.ProjectTotals {
		data[i] = opts.PieData{
			Name:      e.Name,
			Value:     e.Value,
			ItemStyle: &opts.ItemStyle{Color: paletteHex(i)},
		}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: htmlChartWidth, Height: htmlChartHeight}),
		charts.WithTitleOpts(opts.Title{Title: projectShareTitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom", Type: "scroll"}),
	)
	pie.AddSeries(projectShareTitle, data).
		SetSeriesOptions(
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{htmlDonutHole, htmlDonutRadius}}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
		)
	return pie
}
