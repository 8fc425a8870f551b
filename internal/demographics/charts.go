// Package demographics serves the Demographics page: static chart
// configurations and stat cards, plus the region/crop/timeframe selection
// with its loading indicator.
package demographics

// ChartKind names the chart type the presentation layer should draw.
type ChartKind string

const (
	ChartLine     ChartKind = "line"
	ChartBar      ChartKind = "bar"
	ChartPie      ChartKind = "pie"
	ChartDoughnut ChartKind = "doughnut"
)

// Dataset is one series of a chart. BackgroundColors is used by pie and
// doughnut charts, one colour per label.
type Dataset struct {
	Label            string    `json:"label,omitempty"`
	Data             []float64 `json:"data"`
	BorderColor      string    `json:"border_color,omitempty"`
	BackgroundColor  string    `json:"background_color,omitempty"`
	BackgroundColors []string  `json:"background_colors,omitempty"`
	Tension          float64   `json:"tension,omitempty"`
	Fill             bool      `json:"fill,omitempty"`
	BorderWidth      int       `json:"border_width,omitempty"`
}

// Axis titles a chart axis.
type Axis struct {
	Title       string `json:"title"`
	BeginAtZero bool   `json:"begin_at_zero"`
}

type Chart struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Kind     ChartKind `json:"kind"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	X        *Axis     `json:"x,omitempty"`
	Y        *Axis     `json:"y,omitempty"`
	Legend   string    `json:"legend,omitempty"` // "top", "right", "bottom" or "" for hidden
	Cutout   string    `json:"cutout,omitempty"`
	// ValueFormat is the tooltip template; %v is the raw value.
	ValueFormat string `json:"value_format,omitempty"`
}

var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Charts returns the chart set for a selection. The series are fixed
// sample data; the selection only changes axis labelling.
func Charts(sel Selection) []Chart {
	return []Chart{
		marketTrends(sel),
		cropDistribution(),
		regionTrading(),
		farmerMiddlemanRatio(),
		seasonality(),
	}
}

// TrendAxisTitle is "Month" for the yearly view and "Period" otherwise.
func TrendAxisTitle(timeframe string) string {
	if timeframe == TimeframeYear {
		return "Month"
	}
	return "Period"
}

func marketTrends(sel Selection) Chart {
	return Chart{
		ID:     "market_trends",
		Title:  "Market Price Trends",
		Kind:   ChartLine,
		Labels: clone(months),
		Datasets: []Dataset{
			{
				Label:           "Wheat ($/bushel)",
				Data:            []float64{7.2, 7.4, 7.6, 7.3, 7.8, 8.1, 8.0, 7.9, 8.2, 8.4, 8.5, 8.7},
				BorderColor:     "#2E7D32",
				BackgroundColor: "rgba(46, 125, 50, 0.1)",
				Tension:         0.4,
				Fill:            true,
			},
			{
				Label:           "Corn ($/bushel)",
				Data:            []float64{5.8, 5.9, 6.1, 6.0, 6.2, 6.5, 6.4, 6.3, 6.7, 6.9, 7.0, 7.2},
				BorderColor:     "#FFC107",
				BackgroundColor: "rgba(255, 193, 7, 0.1)",
				Tension:         0.4,
				Fill:            true,
			},
			{
				Label:           "Soybeans ($/bushel)",
				Data:            []float64{13.2, 13.5, 13.8, 13.6, 14.0, 14.3, 14.1, 13.9, 14.5, 14.8, 15.0, 15.2},
				BorderColor:     "#795548",
				BackgroundColor: "rgba(121, 85, 72, 0.1)",
				Tension:         0.4,
				Fill:            true,
			},
		},
		X:      &Axis{Title: TrendAxisTitle(sel.Timeframe)},
		Y:      &Axis{Title: "Price ($/bushel)"},
		Legend: "top",
	}
}

func cropDistribution() Chart {
	return Chart{
		ID:     "crop_distribution",
		Title:  "Crop Distribution",
		Kind:   ChartPie,
		Labels: []string{"Wheat", "Corn", "Soybeans", "Rice", "Barley", "Cotton"},
		Datasets: []Dataset{{
			Data:             []float64{35, 25, 20, 10, 7, 3},
			BackgroundColors: []string{"#2E7D32", "#FFC107", "#795548", "#4CAF50", "#FF9800", "#A1887F"},
			BorderWidth:      1,
		}},
		Legend:      "right",
		ValueFormat: "%v%%",
	}
}

func regionTrading() Chart {
	return Chart{
		ID:     "regional_trading_volume",
		Title:  "Regional Trading Volume",
		Kind:   ChartBar,
		Labels: []string{"Midwest", "South", "West", "Northeast", "Southwest", "Northwest"},
		Datasets: []Dataset{{
			Label:           "Trading Volume ($ millions)",
			Data:            []float64{420, 340, 285, 190, 210, 170},
			BackgroundColor: "#4CAF50",
		}},
		Y:           &Axis{Title: "Volume ($ millions)", BeginAtZero: true},
		ValueFormat: "$%v million",
	}
}

func farmerMiddlemanRatio() Chart {
	return Chart{
		ID:     "farmer_middleman_ratio",
		Title:  "Farmer to Middleman Ratio",
		Kind:   ChartDoughnut,
		Labels: []string{"Farmers", "Middlemen"},
		Datasets: []Dataset{{
			Data:             []float64{65, 35},
			BackgroundColors: []string{"#2E7D32", "#795548"},
			BorderWidth:      1,
		}},
		Legend:      "bottom",
		Cutout:      "70%",
		ValueFormat: "%v%%",
	}
}

func seasonality() Chart {
	return Chart{
		ID:     "seasonality",
		Title:  "Transaction Seasonality",
		Kind:   ChartBar,
		Labels: clone(months),
		Datasets: []Dataset{{
			Label:           "Transactions",
			Data:            []float64{350, 420, 480, 520, 610, 710, 805, 900, 820, 740, 630, 490},
			BackgroundColor: "#4CAF50",
		}},
		X: &Axis{Title: "Month"},
		Y: &Axis{Title: "Number of Transactions", BeginAtZero: true},
	}
}

// StatCard is one headline figure above the charts.
type StatCard struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Icon   string `json:"icon"`
}

func StatCards() []StatCard {
	return []StatCard{
		{Label: "Average Price Increase", Value: "27.3%", Change: "Up 5.2% from last year", Icon: "zap"},
		{Label: "Total Trading Volume", Value: "$1.84B", Change: "Up 12.7% from last year", Icon: "trending-up"},
		{Label: "Active Regions", Value: "48 States", Change: "2 new regions added", Icon: "map-pin"},
		{Label: "Avg. Transaction Time", Value: "3.2 Days", Change: "Improved by 15%", Icon: "calendar"},
	}
}

// Insight is one "Key Market Insights" card.
type Insight struct {
	Title  string   `json:"title"`
	Text   string   `json:"text"`
	Points []string `json:"points"`
}

func Insights() []Insight {
	return []Insight{
		{
			Title: "Price Trends",
			Text: "Commodity prices show steady growth across all major crops, with wheat leading at 27.3% annual increase. " +
				"Continued growth is expected through Q4 due to increased global demand.",
			Points: []string{"Wheat: +27.3% (YoY)", "Corn: +24.1% (YoY)", "Soybeans: +15.7% (YoY)"},
		},
		{
			Title: "Regional Analysis",
			Text: "The Midwest continues to dominate trading volume with 30% market share, but the South is showing the fastest growth " +
				"rate at 18.2% year-over-year.",
			Points: []string{"Midwest: $420M (+12.4% YoY)", "South: $340M (+18.2% YoY)", "West: $285M (+10.5% YoY)"},
		},
		{
			Title: "Market Predictions",
			Text: "Based on current trends and historical data, our analysts predict continued growth in agricultural " +
				"commodity prices through the next 6 months.",
			Points: []string{
				"Wheat predicted to reach $9.50/bushel by Q1 2025",
				"South region expected to surpass Midwest by 2026",
				"Transaction volume projected to increase 35% in next year",
			},
		},
	}
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
