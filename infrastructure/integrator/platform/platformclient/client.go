package platformclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
	platformdomain "github.com/vfg2006/engagement-automation-api/infrastructure/integrator/platform/domain"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	GatewayURL        string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// Client executa ações nas plataformas através do gateway HTTP. Cada plataforma tem seu
// próprio limitador de ritmo. Falhas de rede, timeouts, 429 e 5xx são transitórias;
// os demais 4xx são definitivos.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	rps        float64
	limiters   *xsync.MapOf[domain.Platform, *rate.Limiter]
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}

	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(cfg.GatewayURL, "/"),
		timeout:    cfg.Timeout,
		rps:        cfg.RequestsPerSecond,
		limiters:   xsync.NewMapOf[domain.Platform, *rate.Limiter](),
	}
}

func (c *Client) Execute(ctx context.Context, action *domain.Action) (*domain.PlatformResult, error) {
	limiter, _ := c.limiters.LoadOrCompute(action.Platform, func() *rate.Limiter {
		return rate.NewLimiter(rate.Limit(c.rps), 1)
	})
	if err := limiter.Wait(ctx); err != nil {
		// Cancelamento chega cru para o dispatcher não contar tentativa no desligamento
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: aguardando limitador: %v", domain.ErrPlatformTransient, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(toRequest(action))
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao serializar ação: %v", domain.ErrPlatformPermanent, err)
	}

	url := fmt.Sprintf("%s/v1/%s/actions", c.baseURL, action.Platform)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao criar a requisição: %v", domain.ErrPlatformPermanent, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", action.ID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao ler resposta: %v", domain.ErrPlatformTransient, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, classifyStatus(resp.StatusCode, payload, action)
	}

	var response platformdomain.ActionResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		logrus.WithFields(logrus.Fields{
			"action_id": action.ID,
			"platform":  action.Platform,
			"error":     err.Error(),
		}).Warn("Resposta do gateway ilegível, ação considerada executada sem conteúdo")
		return &domain.PlatformResult{Status: "accepted"}, nil
	}

	return &domain.PlatformResult{
		ContentID: response.ContentID,
		Status:    response.Status,
	}, nil
}

func toRequest(action *domain.Action) platformdomain.ActionRequest {
	request := platformdomain.ActionRequest{
		ActionID:        action.ID,
		Type:            string(action.Type),
		EngagementKind:  action.Type.EngagementKind(),
		Account:         toAccountRef(action.ActingAccount),
		TargetContentID: action.TargetContentID,
		Hashtag:         action.Hashtag,
		Voice:           string(action.Voice),
		ScheduledFor:    action.DueAt,
	}
	if action.Type.IsEngagement() {
		request.Type = "engage"
	}
	if action.TargetAccount != nil {
		target := toAccountRef(*action.TargetAccount)
		request.TargetAccount = &target
	}
	return request
}

func toAccountRef(account domain.SocialAccount) platformdomain.AccountRef {
	return platformdomain.AccountRef{
		ID:         account.ID,
		ExternalID: account.ExternalID,
		Username:   account.Username,
	}
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: timeout: %v", domain.ErrPlatformTransient, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrPlatformTransient, err)
}

func classifyStatus(status int, payload []byte, action *domain.Action) error {
	message := http.StatusText(status)
	var errResp platformdomain.ErrorResponse
	if err := json.Unmarshal(payload, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	transient := status == http.StatusTooManyRequests || status >= http.StatusInternalServerError ||
		errResp.IsRateLimited() || errResp.Error.Retryable

	logrus.WithFields(logrus.Fields{
		"action_id":   action.ID,
		"platform":    action.Platform,
		"status_code": status,
		"transient":   transient,
	}).Debug("Gateway recusou a ação")

	if transient {
		return fmt.Errorf("%w: status %d: %s", domain.ErrPlatformTransient, status, message)
	}
	return fmt.Errorf("%w: status %d: %s", domain.ErrPlatformPermanent, status, message)
}
