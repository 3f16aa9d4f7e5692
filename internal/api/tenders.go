package api

import (
	"context"
	"fmt"
	"net/http"
)

// Tender is an open procurement request that contractors bid on.
type Tender struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ProjectID   *int    `json:"project_id,omitempty"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Deadline    *string `json:"deadline,omitempty"`
	MinBudget   float64 `json:"min_budget"`
	MaxBudget   float64 `json:"max_budget"`
	BidCount    int     `json:"bid_count"`
	CreatedAt   *string `json:"created_at,omitempty"`
}

// Bid is a contractor's offer on a tender.
type Bid struct {
	ID             int     `json:"id"`
	TenderID       int     `json:"tender_id"`
	ContractorName string  `json:"contractor_name"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	SubmittedAt    *string `json:"submitted_at,omitempty"`
}

// CreateTenderRequest is the body for TenderCreate.
type CreateTenderRequest struct {
	Title       string  `json:"title"`
	MinBudget   float64 `json:"min_budget"`
	MaxBudget   float64 `json:"max_budget"`
	Deadline    string  `json:"deadline"`
	Description string  `json:"description,omitempty"`
}

// SubmitBidRequest is the body for BidSubmit.
type SubmitBidRequest struct {
	ContractorName string  `json:"contractor_name"`
	Amount         float64 `json:"amount"`
}

// TenderList fetches all tenders.
func (c *Client) TenderList(ctx context.Context) ([]Tender, error) {
	var tenders []Tender
	if err := c.Do(ctx, http.MethodGet, "/bids", nil, &tenders); err != nil {
		return nil, err
	}
	return tenders, nil
}

// TenderCreate creates a tender.
func (c *Client) TenderCreate(ctx context.Context, req CreateTenderRequest) (*Tender, error) {
	var tender Tender
	if err := c.Do(ctx, http.MethodPost, "/bids", req, &tender); err != nil {
		return nil, err
	}
	return &tender, nil
}

// TenderGet fetches one tender by id.
func (c *Client) TenderGet(ctx context.Context, id int) (*Tender, error) {
	var tender Tender
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/bids/%d", id), nil, &tender); err != nil {
		return nil, err
	}
	return &tender, nil
}

// BidSubmit submits a contractor bid on a tender.
func (c *Client) BidSubmit(ctx context.Context, tenderID int, req SubmitBidRequest) (*Bid, error) {
	var bid Bid
	if err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/bids/%d/submit", tenderID), req, &bid); err != nil {
		return nil, err
	}
	return &bid, nil
}

// TenderAnalyze runs the award engine over a tender's bids and returns the
// recommended award decision.
func (c *Client) TenderAnalyze(ctx context.Context, tenderID int) (*AwardDecision, error) {
	var decision AwardDecision
	if err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/bids/%d/analyze", tenderID), nil, &decision); err != nil {
		return nil, err
	}
	return &decision, nil
}
