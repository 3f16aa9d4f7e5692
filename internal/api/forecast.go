package api

import (
	"context"
	"net/http"
)

// ForecastRequest asks the forecasting engine about a material in a region.
type ForecastRequest struct {
	Material            string  `json:"material"`
	Region              string  `json:"region"`
	Quantity            float64 `json:"quantity"`
	TargetMarginPercent float64 `json:"target_margin_percent,omitempty"`
}

// PricePoint is one historical price observation.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
	Unit  string  `json:"unit"`
}

// ForecastResult is the forecasting engine's analysis.
type ForecastResult struct {
	Material               string       `json:"material"`
	Region                 string       `json:"region"`
	CurrentPrice           float64      `json:"current_price"`
	ForecastPrice30d       float64      `json:"forecast_price_30d"`
	TrendDirection         string       `json:"trend_direction"`
	LockRateRecommendation bool         `json:"lock_rate_recommendation"`
	ConfidenceScore        float64      `json:"confidence_score"`
	AIAnalysis             string       `json:"ai_analysis"`
	HistoricalData         []PricePoint `json:"historical_data"`
}

// ForecastAnalyze requests a 30-day price forecast.
func (c *Client) ForecastAnalyze(ctx context.Context, req ForecastRequest) (*ForecastResult, error) {
	var result ForecastResult
	if err := c.Do(ctx, http.MethodPost, "/forecast/analyze", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
