package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient talks to the bagelbot order API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("BAGELBOT_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &ApiClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    baseURL,
	}
}

// CheckHealth checks if the API is up and running
func (c *ApiClient) CheckHealth() error {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status code: %d", resp.StatusCode)
	}
	return nil
}

// OrderItem is one line of the order as the API reports it
type OrderItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Status    string  `json:"status"`
	UnitPrice float64 `json:"unit_price"`
}

// CustomerState is the customer block of the order as the API reports it
type CustomerState struct {
	Name string `json:"name"`
}

// DeliveryState is the delivery block of the order as the API reports it
type DeliveryState struct {
	Method string `json:"method"`
}

// OrderState is the session's order as the API reports it
type OrderState struct {
	ID       string        `json:"id"`
	Items    []OrderItem   `json:"items"`
	Customer CustomerState `json:"customer"`
	Delivery DeliveryState `json:"delivery"`
}

// TurnResponse is the API's answer to one message
type TurnResponse struct {
	Reply string     `json:"reply"`
	Order OrderState `json:"order"`
}

// CreateSession starts a new conversation and returns its session id
func (c *ApiClient) CreateSession() (string, error) {
	resp, err := c.httpClient.Post(c.BaseURL+"/api/sessions", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to create session: %s", string(body))
	}

	var created struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	return created.SessionID, nil
}

// SendMessage sends one turn of user input and returns the engine's reply
func (c *ApiClient) SendMessage(sessionID, text string) (*TurnResponse, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/sessions/%s/messages", c.BaseURL, sessionID)
	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("message failed: %s", string(body))
	}

	var turn TurnResponse
	if err := json.NewDecoder(resp.Body).Decode(&turn); err != nil {
		return nil, err
	}
	return &turn, nil
}

// GetOrder retrieves the current order state for a session
func (c *ApiClient) GetOrder(sessionID string) (*OrderState, error) {
	resp, err := c.httpClient.Get(fmt.Sprintf("%s/api/sessions/%s", c.BaseURL, sessionID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get order with status code: %d", resp.StatusCode)
	}

	var order OrderState
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}
