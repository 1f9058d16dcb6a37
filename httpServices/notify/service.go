package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"keyless-stay/services/notification"
)

// NotifyClient posts guest notifications to the messaging gateway
type NotifyClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string) *NotifyClient {
	return &NotifyClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (c *NotifyClient) Notify(ctx context.Context, contact notification.Contact, method notification.Method, payload notification.Payload) error {
	body, err := json.Marshal(NotifyRequest{
		Method:        string(method),
		GuestName:     contact.Name,
		Email:         contact.Email,
		Phone:         contact.Phone,
		BookingNumber: payload.BookingNumber,
		PropertyName:  payload.PropertyName,
		RoomName:      payload.RoomName,
		AccessCode:    payload.Code,
		ValidFrom:     payload.ValidFrom,
		ValidUntil:    payload.ValidUntil,
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/notify", bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		return errors.New("Notify API returned non-OK status: " + resp.Status)
	}

	// An empty body on a 2xx reply means the message was accepted
	var apiResp NotifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if apiResp.Status != "" && strings.ToLower(apiResp.Status) != "success" {
		return errors.New("Notify API rejected message: " + apiResp.Message)
	}

	return nil
}
