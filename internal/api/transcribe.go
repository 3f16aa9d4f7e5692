package api

import (
	"context"
	"io"
)

// TranscribeResult is a normalized transcription. Two client generations
// receive different field names from the backend ({text, language, provider}
// vs {transcript, detected_language}); both decode into this struct and
// Text/Language are always populated after normalization.
type TranscribeResult struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// transcribeResponse accepts both response generations.
type transcribeResponse struct {
	Text             string `json:"text"`
	Language         string `json:"language"`
	Provider         string `json:"provider"`
	Transcript       string `json:"transcript"`
	DetectedLanguage string `json:"detected_language"`
}

// Transcribe uploads audio for transcription. fileName is the form file name
// sent to the backend (e.g. "recording.m4a").
func (c *Client) Transcribe(ctx context.Context, fileName string, audio io.Reader) (*TranscribeResult, error) {
	var resp transcribeResponse
	if err := c.DoMultipart(ctx, "/transcribe/", nil, "file", fileName, audio, &resp); err != nil {
		return nil, err
	}

	result := &TranscribeResult{
		Text:     resp.Text,
		Language: resp.Language,
		Provider: resp.Provider,
	}
	if result.Text == "" {
		result.Text = resp.Transcript
	}
	if result.Language == "" {
		result.Language = resp.DetectedLanguage
	}
	return result, nil
}
