package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"waypoint/internal/engine"
)

// Client talks to a remote exchange server. It implements
// engine.Exchange and adds the read-side operations the CLI uses.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Publish(ctx context.Context, bp engine.Blueprint) error {
	body, err := json.Marshal(bp)
	if err != nil {
		return fmt.Errorf("encode blueprint: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/blueprints", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) Unpublish(ctx context.Context, blueprintID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/blueprints/"+blueprintID, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) Vote(ctx context.Context, blueprintID string, dir engine.VoteDirection) error {
	body, err := json.Marshal(voteRequest{Direction: dir})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/blueprints/"+blueprintID+"/vote", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

// List fetches the catalog, most-voted first.
func (c *Client) List(ctx context.Context) ([]engine.Blueprint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/blueprints", nil)
	if err != nil {
		return nil, err
	}
	var out []engine.Blueprint
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Subscribe opens the event feed and calls fn for every catalog event
// until ctx is cancelled or the connection drops.
func (c *Client) Subscribe(ctx context.Context, fn func(Event)) error {
	url := strings.Replace(c.baseURL, "http", "ws", 1) + "/subscribe"
	ws, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial exchange: %w", err)
	}
	defer ws.Close(websocket.StatusNormalClosure, "")

	for {
		var ev Event
		if err := wsjson.Read(ctx, ws, &ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}
		fn(ev)
	}
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("exchange request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("exchange: %s", apiErr.Error)
		}
		return fmt.Errorf("exchange: unexpected status %d", resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
