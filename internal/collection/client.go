package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dimitrije/futbol-api/internal/apperr"
	"github.com/dimitrije/futbol-api/internal/config"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/dimitrije/futbol-api/pkg/dto"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Authority is the remote owner of match state. Every method is one request;
// none are retried.
type Authority interface {
	ListMatches(ctx context.Context, scope models.MatchScope) ([]models.Match, error)
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	CreateMatch(ctx context.Context, venueID uuid.UUID, scheduledAt time.Time) (*models.Match, error)
	JoinMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	LeaveMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	DeleteMatch(ctx context.Context, id uuid.UUID) error
	SubmitResult(ctx context.Context, id uuid.UUID, result models.Result) (*models.Match, error)
	ConfirmResult(ctx context.Context, id uuid.UUID) (*models.Match, error)
	RejectResult(ctx context.Context, id uuid.UUID) (*models.Match, error)
}

// Client talks to the futbol-api REST surface on behalf of one user.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.ClientConfig) *Client {
	httpClient := &http.Client{}
	if cfg.Token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		}))
	}
	httpClient.Timeout = cfg.Timeout

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) ListMatches(ctx context.Context, scope models.MatchScope) ([]models.Match, error) {
	var resp []dto.MatchResponse
	if err := c.do(ctx, http.MethodGet, "/matches?scope="+url.QueryEscape(string(scope)), nil, &resp); err != nil {
		return nil, err
	}

	matches := make([]models.Match, len(resp))
	for i, r := range resp {
		matches[i] = r.ToModel()
	}
	return matches, nil
}

func (c *Client) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return c.match(ctx, http.MethodGet, "/matches/"+id.String(), nil)
}

func (c *Client) CreateMatch(ctx context.Context, venueID uuid.UUID, scheduledAt time.Time) (*models.Match, error) {
	return c.match(ctx, http.MethodPost, "/matches", dto.CreateMatchRequest{
		VenueID:     venueID,
		ScheduledAt: scheduledAt,
	})
}

func (c *Client) JoinMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return c.match(ctx, http.MethodPost, "/matches/"+id.String()+"/join", nil)
}

func (c *Client) LeaveMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return c.match(ctx, http.MethodPost, "/matches/"+id.String()+"/leave", nil)
}

func (c *Client) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/matches/"+id.String(), nil, nil)
}

func (c *Client) SubmitResult(ctx context.Context, id uuid.UUID, result models.Result) (*models.Match, error) {
	return c.match(ctx, http.MethodPost, "/matches/"+id.String()+"/result", dto.SubmitResultRequest{
		GoalsLocal:    &result.GoalsLocal,
		GoalsVisiting: &result.GoalsVisiting,
	})
}

func (c *Client) ConfirmResult(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return c.match(ctx, http.MethodPost, "/matches/"+id.String()+"/confirm", nil)
}

func (c *Client) RejectResult(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return c.match(ctx, http.MethodPost, "/matches/"+id.String()+"/reject", nil)
}

func (c *Client) match(ctx context.Context, method, path string, body any) (*models.Match, error) {
	var resp dto.MatchResponse
	if err := c.do(ctx, method, path, body, &resp); err != nil {
		return nil, err
	}
	m := resp.ToModel()
	return &m, nil
}

// do sends one request. Rejections come back as *apperr.Error rebuilt from
// the response body; anything that leaves the outcome unknown (network
// failure, timeout, 5xx, unreadable success body) wraps apperr.ErrTransport.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %v: %w", method, path, err, apperr.ErrTransport)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, apperr.ErrTransport)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return decodeRejection(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %v: %w", method, path, err, apperr.ErrTransport)
	}
	return nil
}

func decodeRejection(resp *http.Response) error {
	var body dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	message := body.Error
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	kind := apperr.Kind(body.Kind)
	if kind == "" {
		kind = kindForStatus(resp.StatusCode)
	}
	code := body.Code
	if code == "" {
		code = fmt.Sprintf("HTTP_%d", resp.StatusCode)
	}

	return apperr.New(kind, code, message)
}

func kindForStatus(status int) apperr.Kind {
	switch status {
	case http.StatusBadRequest:
		return apperr.KindInvalidInput
	case http.StatusNotFound:
		return apperr.KindNotFound
	case http.StatusConflict:
		return apperr.KindGuardViolation
	default:
		return apperr.KindUnknown
	}
}
