package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmtran91/flybooking/internal/domain"
)

// Sender posts bookings to the external email service. The service answers
// {success, message}; success=false is a business failure, not a transport
// one.
type Sender struct {
	baseURL    string
	httpClient *http.Client
}

func NewSender(baseURL string) *Sender {
	return &Sender{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type sendRequest struct {
	Kind    string          `json:"kind"`
	Booking *domain.Booking `json:"booking"`
}

type sendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send delivers one notification for a booking. kind is the lifecycle event
// the message is about (created, confirmed, cancelled).
func (s *Sender) Send(ctx context.Context, kind string, booking *domain.Booking) error {
	payload, err := json.Marshal(sendRequest{Kind: kind, Booking: booking})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email service request: %w", err)
	}
	defer resp.Body.Close()

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode email service response: %w", err)
	}
	if !out.Success {
		return fmt.Errorf("email service rejected message: %s", out.Message)
	}
	return nil
}
