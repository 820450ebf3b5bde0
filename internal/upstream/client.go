package upstream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client reads duties and advances from a remote fleet console. The bearer
// token is fixed at construction and sent on every request.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

type apiError struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

func New(baseURL, token string, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("upstream base url is required")
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("upstream token is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(3*time.Second).
		SetAuthToken(token).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, logger: logger}, nil
}

// ListDuties fetches attendance inside r. Person scoping is applied by the
// caller.
func (c *Client) ListDuties(ctx context.Context, r domain.DateRange) ([]models.DutyRecord, error) {
	var out []models.DutyRecord
	if err := c.get(ctx, "/api/duties", r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAdvances(ctx context.Context, r domain.DateRange) ([]models.AdvancePayment, error) {
	var out []models.AdvancePayment
	if err := c.get(ctx, "/api/advances", r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, r domain.DateRange, result any) error {
	var apiErr apiError
	req := c.http.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&apiErr)
	if r.From != "" {
		req.SetQueryParam("from", r.From)
	}
	if r.To != "" {
		req.SetQueryParam("to", r.To)
	}

	resp, err := req.Get(path)
	if err != nil {
		c.logger.Error("upstream call failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("call %s: %w", path, err)
	}
	if resp.IsError() {
		c.logger.Warn("upstream returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("request_id", apiErr.RequestID),
		)
		msg := apiErr.Error
		if msg == "" {
			msg = resp.Status()
		}
		if resp.StatusCode() == 401 {
			return domain.UnauthorizedError{Msg: msg}
		}
		return fmt.Errorf("%s: %s (status %d)", path, msg, resp.StatusCode())
	}

	c.logger.Debug("upstream call ok", zap.String("path", path), zap.Int("status_code", resp.StatusCode()))
	return nil
}
