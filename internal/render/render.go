// Package render draws prepared summaries into chart artifacts.
package render

import (
	"fmt"
	"image/color"

	"github.com/huangsam/gitimpact/internal/contract"
	"github.com/huangsam/gitimpact/schema"
)

// New returns the renderer for the given chart format.
func New(format schema.ChartFormat) (contract.ChartRenderer, error) {
	switch format {
	case schema.PNGChart, "":
		return NewPNGRenderer(), nil
	case schema.HTMLChart:
		return NewHTMLRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported chart format: %s", format)
	}
}

// Chart titles shared by both renderers.
const (
	timeseriesTitle     = "Development Impact per Author"
	projectAuthorTitle  = "1. Development Impact per Project and Author"
	projectShareTitle   = "2. Work Distribution per Project"
	leaderboardTitle    = "Total per Author"
	multiLeaderboardNum = "3. "
	movingAverageLabel  = "7-day trend"
)

// metricLabel returns the y-axis label for the aggregated metric.
func metricLabel(metric schema.MetricMode) string {
	if metric == schema.LinesMetric {
		return "Lines changed"
	}
	return "Impact Score (log lines × log files)"
}

// leaderboardLabel returns the leaderboard title for the summary mode.
func leaderboardLabel(summary *schema.Summary) string {
	if summary.Mode == schema.MultiProjectMode {
		return multiLeaderboardNum + leaderboardTitle + " (all projects)"
	}
	return leaderboardTitle
}

// palette is a 20-color qualitative palette so stacked series stay distinguishable.
var palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, {R: 0xae, G: 0xc7, B: 0xe8, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, {R: 0xff, G: 0xbb, B: 0x78, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, {R: 0x98, G: 0xdf, B: 0x8a, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, {R: 0xff, G: 0x98, B: 0x96, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}, {R: 0xc5, G: 0xb0, B: 0xd5, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff}, {R: 0xc4, G: 0x9c, B: 0x94, A: 0xff},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff}, {R: 0xf7, G: 0xb6, B: 0xd2, A: 0xff},
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff}, {R: 0xc7, G: 0xc7, B: 0xc7, A: 0xff},
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff}, {R: 0xdb, G: 0xdb, B: 0x8d, A: 0xff},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff}, {R: 0x9e, G: 0xda, B: 0xe5, A: 0xff},
}

// paletteColor returns the i-th palette color, wrapping around.
func paletteColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

// paletteHex returns the i-th palette color as a CSS hex string.
func paletteHex(i int) string {
	c := paletteColor(i)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
