// Package sacs is the HTTP client for the national health registry used to
// verify medical licenses (Servicio Autónomo de Contraloría Sanitaria).
package sacs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/saludplus/backend/internal/config"
	"github.com/saludplus/backend/pkg/logger"
	"github.com/saludplus/backend/pkg/masker"
)

type Client struct {
	config     config.RegistryConfig
	httpClient *http.Client
}

func NewClient(cfg config.RegistryConfig) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// VerifyRequest identifies the practitioner to look up in the registry.
type VerifyRequest struct {
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
}

// VerifyResponse is the registry's answer. RegisteredName is the name the
// license was issued under; it may differ from what the doctor typed.
type VerifyResponse struct {
	Valid          bool   `json:"valid"`
	Verified       bool   `json:"verified"`
	RegisteredName string `json:"registered_name,omitempty"`
	Specialty      string `json:"specialty,omitempty"`
	LicenseNumber  string `json:"license_number,omitempty"`
	Message        string `json:"message,omitempty"`
}

// ErrNotFound is returned when the registry has no record for the document;
// the doctor has to correct the input, retrying will not help.
var ErrNotFound = errors.New("license not found in registry")

// VerifyLicense looks the document up in the registry. Transport and server
// failures come back as wrapped errors so callers can distinguish
// "unreachable" from the definitive ErrNotFound.
func (c *Client) VerifyLicense(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "marshal verify request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/v1/licenses/verify", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, errors.Wrap(err, "create verify request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("X-Api-Key", c.config.APIKey)
	}

	logger.Debug("verifying license against registry",
		zap.String("document", masker.Document(req.DocumentType+"-"+req.DocumentNumber)))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "registry request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	var verifyResp VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verifyResp); err != nil {
		return nil, errors.Wrap(err, "decode registry response")
	}

	logger.Debug("registry response received",
		zap.Bool("valid", verifyResp.Valid),
		zap.Bool("verified", verifyResp.Verified))

	return &verifyResp, nil
}
