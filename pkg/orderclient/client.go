package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kkorolev/shop-cart/internal/transport"
)

// Client calls the order subsystem over HTTP. It implements
// service.OrderPlacer.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(orderServiceURL string) *Client {
	return &Client{
		baseURL: orderServiceURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type placeOrderRequest struct {
	Email string                `json:"email"`
	Lines []transport.OrderLine `json:"lines"`
}

type placeOrderResponse struct {
	OrderID uint `json:"order_id"`
}

func (c *Client) PlaceOrder(ctx context.Context, lines []transport.OrderLine, email string) (uint, error) {
	body, err := json.Marshal(placeOrderRequest{Email: email, Lines: lines})
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/v1/orders",
		bytes.NewReader(body),
	)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("place order failed with status: %d", resp.StatusCode)
	}

	var result placeOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	return result.OrderID, nil
}
