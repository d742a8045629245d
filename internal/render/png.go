package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/huangsam/gitimpact/internal/contract"
	"github.com/huangsam/gitimpact/schema"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Figure sizes, matching the layout of the single and multi-project reports.
const (
	singleFigureWidth  = 14 * vg.Inch
	singleFigureHeight = 12 * vg.Inch
	multiFigureWidth   = 18 * vg.Inch
	multiFigureHeight  = 16 * vg.Inch

	figurePad      = vg.Length(18)
	suptitleHeight = vg.Length(36)
	suptitleSize   = vg.Length(18)
)

// PNGRenderer renders summaries into a single PNG figure with gonum/plot.
type PNGRenderer struct{}

var _ contract.ChartRenderer = &PNGRenderer{} // Compile-time check

// NewPNGRenderer creates a new PNG renderer.
func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{}
}

// Extension implements the ChartRenderer interface.
func (r *PNGRenderer) Extension() string {
	return string(schema.PNGChart)
}

// Render implements the ChartRenderer interface.
func (r *PNGRenderer) Render(w io.Writer, summary *schema.Summary, title string) error {
	if summary.Mode == schema.MultiProjectMode {
		return r.renderMultiProject(w, summary, title)
	}
	return r.renderSingleProject(w, summary, title)
}

// renderSingleProject stacks the daily chart on top of the leaderboard.
func (r *PNGRenderer) renderSingleProject(w io.Writer, summary *schema.Summary, title string) error {
	daily, err := timeseriesPlot(summary)
	if err != nil {
		return err
	}
	leaders, err := leaderboardPlot(summary)
	if err != nil {
		return err
	}

	img := vgimg.New(singleFigureWidth, singleFigureHeight)
	dc := draw.New(img)
	body := drawSuptitle(dc, daily.Title.TextStyle, title)

	tiles := draw.Tiles{Rows: 2, Cols: 1, PadX: figurePad, PadY: figurePad, PadTop: figurePad, PadBottom: figurePad, PadLeft: figurePad, PadRight: figurePad}
	canvases := plot.Align([][]*plot.Plot{{daily}, {leaders}}, tiles, body)
	daily.Draw(canvases[0][0])
	leaders.Draw(canvases[1][0])

	return writePNG(w, img)
}

// renderMultiProject draws the project/author bars and the project donut side by
// side, with the leaderboard spanning the bottom half.
func (r *PNGRenderer) renderMultiProject(w io.Writer, summary *schema.Summary, title string) error {
	projects, err := projectAuthorPlot(summary)
	if err != nil {
		return err
	}
	share := projectSharePlot(summary)
	leaders, err := leaderboardPlot(summary)
	if err != nil {
		return err
	}

	img := vgimg.New(multiFigureWidth, multiFigureHeight)
	dc := draw.New(img)
	body := drawSuptitle(dc, projects.Title.TextStyle, title)

	half := (body.Max.Y - body.Min.Y) / 2
	top := draw.Crop(body, 0, 0, half, 0)
	bottom := draw.Crop(body, 0, 0, 0, -half)

	topTiles := draw.Tiles{Rows: 1, Cols: 2, PadX: figurePad, PadTop: figurePad, PadBottom: figurePad, PadLeft: figurePad, PadRight: figurePad}
	topCanvases := plot.Align([][]*plot.Plot{{projects, share}}, topTiles, top)
	projects.Draw(topCanvases[0][0])
	share.Draw(topCanvases[0][1])

	bottomTiles := draw.Tiles{Rows: 1, Cols: 1, PadTop: figurePad, PadBottom: figurePad, PadLeft: figurePad, PadRight: figurePad}
	bottomCanvases := plot.Align([][]*plot.Plot{{leaders}}, bottomTiles, bottom)
	leaders.Draw(bottomCanvases[0][0])

	return writePNG(w, img)
}

// drawSuptitle writes the figure title and returns the canvas left below it.
func drawSuptitle(dc draw.Canvas, base text.Style, title string) draw.Canvas {
	if title == "" {
		return dc
	}
	sty := base
	sty.Font.Size = suptitleSize
	sty.XAlign = text.XCenter
	sty.YAlign = text.YTop
	center := (dc.Min.X + dc.Max.X) / 2
	dc.FillText(sty, vg.Point{X: center, Y: dc.Max.Y - figurePad/2}, title)
	return draw.Crop(dc, 0, 0, 0, -suptitleHeight)
}

func writePNG(w io.Writer, img *vgimg.Canvas) error {
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// timeseriesPlot draws the dense date × author grid as stacked bars with the
// moving average overlaid.
func timeseriesPlot(summary *schema.Summary) (*plot.Plot, error) {
	p := newPlot(timeseriesTitle, "Date", metricLabel(summary.Metric))
	ts := summary.Timeseries
	if err := addStackedBars(p, ts); err != nil {
		return nil, err
	}

	if len(summary.MovingAverage) > 0 {
		pts := make(plotter.XYs, len(summary.MovingAverage))
		for i, v := range summary.MovingAverage {
			pts[i] = plotter.XY{X: float64(i), Y: v}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create trend line: %w", err)
		}
		line.Color = color.Black
		line.Width = vg.Points(2)
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		p.Add(line)
		p.Legend.Add(movingAverageLabel, line)
	}

	p.NominalX(ts.Rows...)
	rotateTickLabels(p)
	return p, nil
}

// projectAuthorPlot draws the project × author pivot as stacked bars.
func projectAuthorPlot(summary *schema.Summary) (*plot.Plot, error) {
	p := newPlot(projectAuthorTitle, "Project", metricLabel(summary.Metric))
	if summary.ProjectAuthor == nil {
		return p, nil
	}
	if err := addStackedBars(p, *summary.ProjectAuthor); err != nil {
		return nil, err
	}
	p.NominalX(summary.ProjectAuthor.Rows...)
	rotateTickLabels(p)
	return p, nil
}

// leaderboardPlot draws the author totals in descending order.
func leaderboardPlot(summary *schema.Summary) (*plot.Plot, error) {
	p := newPlot(leaderboardLabel(summary), "Author", metricLabel(summary.Metric))
	if len(summary.AuthorTotals) == 0 {
		return p, nil
	}

	names := make([]string, len(summary.AuthorTotals))
	values := make(plotter.Values, len(summary.AuthorTotals))
	for i, e := range summary.AuthorTotals {
		names[i] = e.Name
		values[i] = e.Value
	}
	bars, err := plotter.NewBarChart(values, barWidth(len(values)))
	if err != nil {
		return nil, fmt.Errorf("failed to create leaderboard bars: %w", err)
	}
	bars.Color = paletteColor(0)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	rotateTickLabels(p)
	return p, nil
}

// projectSharePlot draws the project totals, including "Other", as a donut.
func projectSharePlot(summary *schema.Summary) *plot.Plot {
	p := plot.New()
	p.Title.Text = projectShareTitle
	p.HideAxes()
	p.Legend.Top = true

	d := &donut{entries: summary.ProjectTotals}
	p.Add(d)
	for i, e := range summary.ProjectTotals {
		p.Legend.Add(fmt.Sprintf("%s (%.1f%%)", e.Name, e.Share*100), swatch{color: paletteColor(i)})
	}
	return p
}

// addStackedBars adds one bar series per pivot column, stacked in column order.
func addStackedBars(p *plot.Plot, pivot schema.Pivot) error {
	if len(pivot.Rows) == 0 {
		return nil
	}
	width := barWidth(len(pivot.Rows))
	var below *plotter.BarChart
	for j, column := range pivot.Columns {
		bars, err := plotter.NewBarChart(plotter.Values(pivot.Column(j)), width)
		if err != nil {
			return fmt.Errorf("failed to create bars for %q: %w", column, err)
		}
		bars.Color = paletteColor(j)
		bars.LineStyle.Width = 0
		if below != nil {
			bars.StackOn(below)
		}
		p.Add(bars)
		p.Legend.Add(column, bars)
		below = bars
	}
	return nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

// rotateTickLabels tilts nominal labels so long dates and names stay readable.
func rotateTickLabels(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
}

// barWidth shrinks bars as the number of categories grows.
func barWidth(n int) vg.Length {
	const maxWidth, minWidth, budget = 24.0, 2.0, 720.0
	if n <= 0 {
		return vg.Points(maxWidth)
	}
	return vg.Points(math.Max(minWidth, math.Min(maxWidth, budget/float64(n))))
}

// donut is a plot.Plotter drawing entries as a ring of slices.
type donut struct {
	entries []schema.Entry
}

const (
	donutOuter     = 0.9  // outer radius as a fraction of the available half-size
	donutHole      = 0.55 // inner radius as a fraction of the outer radius
	donutMinLabel  = 0.04 // slices below this share carry no percentage label
	donutStartTurn = math.Pi / 2
)

// Plot implements the plot.Plotter interface.
func (d *donut) Plot(c draw.Canvas, plt *plot.Plot) {
	var total float64
	for _, e := range d.entries {
		total += e.Value
	}
	if total <= 0 {
		return
	}

	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	half := min(c.Max.X-c.Min.X, c.Max.Y-c.Min.Y) / 2
	outer := half * donutOuter
	inner := outer * donutHole

	labelStyle := plt.Legend.TextStyle
	labelStyle.XAlign = text.XCenter
	labelStyle.YAlign = text.YCenter

	start := donutStartTurn
	for i, e := range d.entries {
		sweep := 2 * math.Pi * e.Value / total
		var path vg.Path
		path.Move(polar(center, outer, start))
		path.Arc(center, outer, start, sweep)
		path.Line(polar(center, inner, start+sweep))
		path.Arc(center, inner, start+sweep, -sweep)
		path.Close()
		c.SetColor(paletteColor(i))
		c.Fill(path)

		if e.Value/total >= donutMinLabel {
			mid := polar(center, (outer+inner)/2, start+sweep/2)
			c.FillText(labelStyle, mid, fmt.Sprintf("%.1f%%", 100*e.Value/total))
		}
		start += sweep
	}
}

func polar(center vg.Point, radius vg.Length, angle float64) vg.Point {
	return vg.Point{
		X: center.X + radius*vg.Length(math.Cos(angle)),
		Y: center.Y + radius*vg.Length(math.Sin(angle)),
	}
}

// swatch is a legend thumbnail filled with a solid color.
type swatch struct {
	color color.Color
}

// Thumbnail implements the plot.Thumbnailer interface.
func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.color, pts)
}
