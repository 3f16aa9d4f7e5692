package api

import (
	"context"
	"net/http"
)

// ExtractLineItem is one line of an extracted invoice.
type ExtractLineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	UnitPrice   float64 `json:"unit_price,omitempty"`
	TotalPrice  float64 `json:"total_price,omitempty"`
}

// ExtractResult holds the structured fields pulled from invoice OCR text.
type ExtractResult struct {
	DocumentType      string            `json:"document_type"`
	VendorName        string            `json:"vendor_name,omitempty"`
	InvoiceNumber     string            `json:"invoice_number,omitempty"`
	InvoiceDate       string            `json:"invoice_date,omitempty"`
	GSTIN             string            `json:"gstin,omitempty"`
	PAN               string            `json:"pan,omitempty"`
	TotalAmount       float64           `json:"total_amount,omitempty"`
	LineItems         []ExtractLineItem `json:"line_items"`
	VerificationReady bool              `json:"verification_ready"`
}

// Extract sends already-OCRed invoice text for structured field extraction.
func (c *Client) Extract(ctx context.Context, ocrText string) (*ExtractResult, error) {
	req := struct {
		OCRText string `json:"ocr_text"`
	}{OCRText: ocrText}

	var result ExtractResult
	if err := c.Do(ctx, http.MethodPost, "/extract/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
