package api

import (
	"context"
	"net/http"
)

// AwardBid is a candidate bid submitted for comparison.
type AwardBid struct {
	ID              string  `json:"id"`
	SupplierName    string  `json:"supplier_name"`
	Price           float64 `json:"price"`
	DeliveryDays    int     `json:"delivery_days"`
	ReputationScore float64 `json:"reputation_score"`
	IsVerified      bool    `json:"is_verified,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

// AwardCriteria weights the comparison; zero-valued fields are omitted so
// the backend applies its defaults.
type AwardCriteria struct {
	WeightPrice      float64 `json:"weight_price,omitempty"`
	WeightDelivery   float64 `json:"weight_delivery,omitempty"`
	WeightReputation float64 `json:"weight_reputation,omitempty"`
	MaxPrice         float64 `json:"max_price,omitempty"`
	MaxDeliveryDays  int     `json:"max_delivery_days,omitempty"`
}

// AwardRanking is one row of the ranked comparison result.
type AwardRanking struct {
	Rank       int                    `json:"rank"`
	Supplier   string                 `json:"supplier"`
	TotalScore float64                `json:"total_score"`
	Breakdown  map[string]interface{} `json:"breakdown,omitempty"`
}

// AwardDecision is the award engine's recommendation.
type AwardDecision struct {
	RecommendedBidID string                 `json:"recommended_bid_id"`
	Score            float64                `json:"score"`
	Justification    string                 `json:"justification"`
	Rankings         []AwardRanking         `json:"rankings"`
	Meta             map[string]interface{} `json:"meta,omitempty"`
}

// RankedBid is one entry of the score-only response.
type RankedBid struct {
	BidID string  `json:"bid_id"`
	Score float64 `json:"score"`
}

type compareRequest struct {
	RequirementDescription string        `json:"requirement_description"`
	Bids                   []AwardBid    `json:"bids"`
	Criteria               AwardCriteria `json:"criteria"`
}

// AwardCompare runs the full comparison and returns the recommended award.
func (c *Client) AwardCompare(ctx context.Context, requirement string, bids []AwardBid, criteria AwardCriteria) (*AwardDecision, error) {
	req := compareRequest{
		RequirementDescription: requirement,
		Bids:                   bids,
		Criteria:               criteria,
	}

	var decision AwardDecision
	if err := c.Do(ctx, http.MethodPost, "/awards/compare", req, &decision); err != nil {
		return nil, err
	}
	return &decision, nil
}

// AwardScoreOnly ranks the bids without producing a recommendation.
func (c *Client) AwardScoreOnly(ctx context.Context, requirement string, bids []AwardBid, criteria AwardCriteria) ([]RankedBid, error) {
	req := compareRequest{
		RequirementDescription: requirement,
		Bids:                   bids,
		Criteria:               criteria,
	}

	var resp struct {
		RankedBids []RankedBid `json:"ranked_bids"`
	}
	if err := c.Do(ctx, http.MethodPost, "/awards/score-only", req, &resp); err != nil {
		return nil, err
	}
	return resp.RankedBids, nil
}
