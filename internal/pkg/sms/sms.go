package sms

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/garagehub/GarageHub/internal/pkg/env"
)

// Response is the reply format of the SMS gateway HTTP API.
type Response struct {
	Success    bool     `json:"success"`
	MessageID  string   `json:"message_id"`
	ErrorCodes []string `json:"error-codes"`
}

// Send delivers a text message through the configured SMS gateway.
func Send(to string, message string) error {
	if to == "" {
		return fmt.Errorf("SMS recipient is empty")
	}

	gatewayURL := env.GetEnv("SMS_GATEWAY_URL", "")
	if gatewayURL == "" {
		return fmt.Errorf("SMS gateway URL is not set")
	}
	apiKey := env.GetEnv("SMS_GATEWAY_KEY", "")
	if apiKey == "" {
		return fmt.Errorf("SMS gateway key is not set")
	}

	formData := url.Values{
		"key":     {apiKey},
		"to":      {to},
		"message": {message},
	}

	resp, err := http.PostForm(gatewayURL, formData)
	if err != nil {
		return fmt.Errorf("failed to send request to SMS gateway: %v", err)
	}
	defer resp.Body.Close()

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode SMS gateway response: %v", err)
	}

	if !response.Success {
		errorMsg := "SMS delivery failed"
		if len(response.ErrorCodes) > 0 {
			errorMsg = errorMsg + ": " + strings.Join(response.ErrorCodes, ", ")
		}
		return fmt.Errorf(errorMsg)
	}

	return nil
}
