// Package slack posts calculation results to an incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"

	"masterbatch/composition"
)

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	webhookURL string
	httpClient doer
}

func NewClient(webhookURL string, httpClient doer) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

// PostMessage sends text to the webhook. An empty channel leaves the webhook's
// default channel in place.
func (c *Client) PostMessage(ctx context.Context, channel string, message string) error {
	body := map[string]any{"text": message}
	if channel != "" {
		body["channel"] = channel
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}
	return nil
}

// CalculationMessage renders resolved lines as a code block Slack shows in a
// fixed-width font.
func CalculationMessage(recipe string, totalWeight float64, lines []composition.Line) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s*: %.2f g\n```\n", recipe, totalWeight)

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Ingredient\t%\tg\t")
	for _, l := range lines {
		name := l.Name
		if l.Base {
			name += " (base)"
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t\n", name, l.Percentage, l.Weight)
	}
	t := composition.Summary(lines)
	fmt.Fprintf(tw, "Total\t%.2f\t%.2f\t\n", t.Percentage, t.Weight)
	tw.Flush()

	sb.WriteString("```")
	return sb.String()
}
