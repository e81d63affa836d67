package dto

import "github.com/shopspring/decimal"

// DashboardSummary is the headline figures block.
type DashboardSummary struct {
	TotalAssetValue      decimal.Decimal `json:"totalAssetValue"`
	YTDAmortization      decimal.Decimal `json:"ytdAmortization"`
	ActiveDeveloperCount int             `json:"activeDeveloperCount"`
	TotalProjects        int             `json:"totalProjects"`
}

// TopProject is one row of the top-projects-by-cost list.
type TopProject struct {
	ProjectID string          `json:"id"`
	Name      string          `json:"name"`
	Cost      decimal.Decimal `json:"cost"`
	Status    string          `json:"status"`
}

// ChartPoint is one month of capex/opex/amortization history.
type ChartPoint struct {
	Label        string          `json:"label"`
	Capex        decimal.Decimal `json:"capex"`
	Opex         decimal.Decimal `json:"opex"`
	Amortization decimal.Decimal `json:"amortization"`
}

// AssetChartPoint is one month of the running asset-value series.
type AssetChartPoint struct {
	Label       string          `json:"label"`
	Capitalized decimal.Decimal `json:"capitalized"`
	Amortized   decimal.Decimal `json:"amortized"`
	NetAsset    decimal.Decimal `json:"netAsset"`
}

// Alert flags a project needing accounting review.
type Alert struct {
	ProjectID string `json:"id"`
	Name      string `json:"name"`
	Message   string `json:"message"`
}

// DashboardResponse is the full dashboard payload.
type DashboardResponse struct {
	Summary        DashboardSummary  `json:"summary"`
	TopProjects    []TopProject      `json:"topProjects"`
	ChartData      []ChartPoint      `json:"chartData"`
	AssetChartData []AssetChartPoint `json:"assetChartData"`
	Alerts         []Alert           `json:"alerts"`
}
