package analyticsclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnavailable indica que não há serviço de análise configurado ou que ele não respondeu
var ErrUnavailable = errors.New("analytics unavailable")

type Config struct {
	URL      string
	Timeout  time.Duration
	RetryMax int
}

type slotsResponse struct {
	Slots []domain.TimeSlot `json:"slots"`
}

// Client consulta o serviço de análise de audiência pelos melhores horários de publicação
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = retryablehttp.LeveledLogger(leveledLogrus{entry: logrus.WithField("component", "analytics")})

	client := retryClient.StandardClient()
	client.Timeout = cfg.Timeout

	return &Client{
		httpClient: client,
		baseURL:    strings.TrimRight(cfg.URL, "/"),
	}
}

func (c *Client) OptimalPostingTimes(ctx context.Context, account domain.SocialAccount) ([]domain.TimeSlot, error) {
	if c.baseURL == "" {
		return nil, ErrUnavailable
	}

	endpoint := fmt.Sprintf("%s/v1/accounts/%s/%s/optimal-times",
		c.baseURL, url.PathEscape(string(account.Platform)), url.PathEscape(account.ExternalID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao ler resposta: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var response slotsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar horários: %w", err)
	}

	slots := make([]domain.TimeSlot, 0, len(response.Slots))
	for _, slot := range response.Slots {
		if slot.Hour < 0 || slot.Hour > 23 || slot.Minute < 0 || slot.Minute > 59 {
			logrus.WithFields(logrus.Fields{
				"account_id": account.ID,
				"hour":       slot.Hour,
				"minute":     slot.Minute,
			}).Warn("Horário inválido ignorado")
			continue
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// leveledLogrus rebaixa os erros intermediários do cliente para aviso, já que haverá nova tentativa
type leveledLogrus struct {
	entry *logrus.Entry
}

func (l leveledLogrus) Error(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues)).Warn(msg)
}

func (l leveledLogrus) Warn(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues)).Warn(msg)
}

func (l leveledLogrus) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues)).Info(msg)
}

func (l leveledLogrus) Debug(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues)).Debug(msg)
}

func toFields(keysAndValues []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
