package schema

// Custom string types for type safety.
type (
	// MetricMode represents the per-record value that gets aggregated.
	MetricMode string

	// InputMode represents the shape of the JSON document read from stdin.
	InputMode string

	// OutputMode represents the format of the summary output.
	OutputMode string

	// ChartFormat represents the format of the rendered chart artifact.
	ChartFormat string
)

// All metric modes supported.
const (
	RelevanceMetric MetricMode = "relevance" // default
	LinesMetric     MetricMode = "lines"
)

// All input modes supported.
const (
	SingleProjectMode InputMode = "single" // legacy list of {author, daily_data}
	MultiProjectMode  InputMode = "multi"  // {metadata, data} or a flat list of records
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All chart formats supported.
const (
	PNGChart  ChartFormat = "png" // default
	HTMLChart ChartFormat = "html"
)

// Score engine constants.
const (
	// MaxLinesPerDay caps the added lines of a single record before scoring.
	MaxLinesPerDay = 1000

	// MovingAverageWindow is the number of trailing points in the trend line.
	MovingAverageWindow = 7
)

// Default "Other" thresholds as a share of the grand total.
const (
	DefaultRelevanceThreshold = 0.02
	DefaultLinesThreshold     = 0.05
)

// Labels and placeholders.
const (
	OtherLabel    = "Other"
	UnknownAuthor = "Unknown"
	NotAvailable  = "N/A"
	DateLayout    = "2006-01-02"
)

// TotalAuthor is the aggregate row emitted by the upstream collector.
const TotalAuthor = "TOTALE"

// ExcludedAuthors lists raw author labels that never reach aggregation.
var ExcludedAuthors = map[string]struct{}{
	TotalAuthor: {},
}

// ValidMetricModes lists all valid metric modes.
var ValidMetricModes = map[MetricMode]struct{}{
	RelevanceMetric: {},
	LinesMetric:     {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidChartFormats lists all valid chart formats.
var ValidChartFormats = map[ChartFormat]struct{}{
	PNGChart:  {},
	HTMLChart: {},
}

// DefaultThreshold returns the "Other" threshold used when none is configured.
func DefaultThreshold(metric MetricMode) float64 {
	if metric == LinesMetric {
		return DefaultLinesThreshold
	}
	return DefaultRelevanceThreshold
}

// IsExcludedAuthor reports whether the raw author label must be dropped at ingestion.
func IsExcludedAuthor(author string) bool {
	_, ok := ExcludedAuthors[author]
	return ok
}
