// internal/clay/client.go
package clay

import (
    "bytes"
    "encoding/json"
    "fmt"
    "net/http"
    "time"
)

// AccountPayload is the JSON object sent to the enrichment webhook for
// each dispatched account.
type AccountPayload struct {
    CampaignID  string `json:"campaign_id"`
    AccountName string `json:"account_name"`
    Domain      string `json:"domain"`
    AccountID   string `json:"account_id"`
}

// Sender is what the dispatcher needs from the outbound side.
type Sender interface {
    Send(payload AccountPayload) error
}

type Client struct {
    WebhookURL string
    HTTPClient *http.Client
}

func NewClient(webhookURL string) *Client {
    return &Client{
        WebhookURL: webhookURL,
        HTTPClient: &http.Client{Timeout: 10 * time.Second},
    }
}

// Send posts one account to the enrichment webhook. Any transport error,
// timeout, or non-2xx response fails the call.
func (c *Client) Send(payload AccountPayload) error {
    body, err := json.Marshal(payload)
    if err != nil {
        return err
    }

    resp, err := c.HTTPClient.Post(c.WebhookURL, "application/json", bytes.NewReader(body))
    if err != nil {
        return err
    }
    defer resp.Body.Close()

    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        return fmt.Errorf("webhook returned status %d", resp.StatusCode)
    }
    return nil
}

var _ Sender = (*Client)(nil)
