package api

import (
	"context"
	"net/http"
)

// CoordinationRequest asks for a contractor coordination message in the
// contractor's language for a given workflow step (award_notification,
// site_ready, payment_released, defect_notice).
type CoordinationRequest struct {
	ContractorName string                 `json:"contractor_name"`
	PhoneNumber    string                 `json:"phone_number"`
	Language       string                 `json:"language"`
	Step           string                 `json:"step"`
	ProjectName    string                 `json:"project_name"`
	Details        map[string]interface{} `json:"details"`
}

// CoordinationResult is the generated multilingual message.
type CoordinationResult struct {
	OriginalIntent       string `json:"original_intent"`
	TranslatedMessage    string `json:"translated_message"`
	WhatsappFormatted    string `json:"whatsapp_formatted"`
	AudioTranscriptionURL string `json:"audio_transcription_url,omitempty"`
}

// CoordinationSend generates and dispatches a coordination message.
func (c *Client) CoordinationSend(ctx context.Context, req CoordinationRequest) (*CoordinationResult, error) {
	var result CoordinationResult
	if err := c.Do(ctx, http.MethodPost, "/coordination/send", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
