package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/engagement-automation-api/infrastructure/quotastore"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"github.com/vfg2006/engagement-automation-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// QuotaService controla o orçamento diário de operações de cada plataforma
type QuotaService interface {
	OperationCost(op string) int
	HasAvailable(ctx context.Context, platform domain.Platform, cost int) (bool, error)
	Deduct(ctx context.Context, platform domain.Platform, cost int) (Charge, error)
	Refund(ctx context.Context, charge Charge) error
	Reserve(ctx context.Context, platform domain.Platform, ops []string) (bool, error)
	Status(ctx context.Context, platform domain.Platform) (*domain.QuotaStatus, error)
}

// Charge registra uma cobrança feita na cota. Day é o dia da cobrança no fuso da cota,
// para que a devolução caia no mesmo contador mesmo depois da meia-noite. Cobranças
// recusadas têm Cost zero.
type Charge struct {
	Platform  domain.Platform
	Day       string
	Cost      int
	Remaining int
}

// Custo de cada operação em unidades de cota
var operationCosts = map[string]int{
	domain.OperationRead:   1,
	domain.OperationWrite:  50,
	domain.OperationUpload: 1600,
}

// As chaves vivem um pouco mais que um dia para cobrir a virada do fuso
const keyTTL = 25 * time.Hour

// Margem de segurança aplicada em Reserve (10%)
const reserveBufferPercent = 110

type Service struct {
	store    quotastore.Store
	limits   map[domain.Platform]int
	location *time.Location
	clock    utils.Clock
}

func NewService(store quotastore.Store, limits map[domain.Platform]int, location *time.Location, clock utils.Clock) *Service {
	if location == nil {
		location = time.UTC
	}
	if clock == nil {
		clock = utils.SystemClock
	}

	return &Service{
		store:    store,
		limits:   limits,
		location: location,
		clock:    clock,
	}
}

func (s *Service) OperationCost(op string) int {
	if cost, ok := operationCosts[op]; ok {
		return cost
	}
	return 1
}

func (s *Service) HasAvailable(ctx context.Context, platform domain.Platform, cost int) (bool, error) {
	limit, err := s.limitFor(platform)
	if err != nil {
		return false, err
	}

	used, err := s.store.Used(ctx, s.key(platform))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"error":    err.Error(),
		}).Error("Erro ao consultar cota, tratando como indisponível")
		return false, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	return used+cost <= limit, nil
}

// Deduct cobra cost unidades da cota do dia; a cobrança devolvida informa o saldo restante
func (s *Service) Deduct(ctx context.Context, platform domain.Platform, cost int) (Charge, error) {
	charge := Charge{
		Platform: platform,
		Day:      utils.DayKey(s.clock.Now(), s.location),
	}

	limit, err := s.limitFor(platform)
	if err != nil {
		return charge, err
	}

	used, ok, err := s.store.Consume(ctx, dayKey(platform, charge.Day), cost, limit, keyTTL)
	if err != nil {
		return charge, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	charge.Remaining = limit - used
	if !ok {
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"cost":     cost,
			"used":     used,
			"limit":    limit,
		}).Warn("Cota diária insuficiente")
		return charge, domain.ErrQuotaExceeded
	}

	charge.Cost = cost
	return charge, nil
}

// Refund devolve ao dia em que foi feita uma cobrança cuja operação acabou não acontecendo
func (s *Service) Refund(ctx context.Context, charge Charge) error {
	if charge.Cost <= 0 {
		return nil
	}
	if _, err := s.store.Release(ctx, dayKey(charge.Platform, charge.Day), charge.Cost); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// Reserve verifica se um lote de operações cabe na cota com 10% de folga, sem cobrar nada
func (s *Service) Reserve(ctx context.Context, platform domain.Platform, ops []string) (bool, error) {
	total := 0
	for _, op := range ops {
		total += s.OperationCost(op)
	}

	withBuffer := (total*reserveBufferPercent + 99) / 100
	return s.HasAvailable(ctx, platform, withBuffer)
}

func (s *Service) Status(ctx context.Context, platform domain.Platform) (*domain.QuotaStatus, error) {
	limit, err := s.limitFor(platform)
	if err != nil {
		return nil, err
	}

	used, err := s.store.Used(ctx, s.key(platform))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	return &domain.QuotaStatus{
		Platform:  platform,
		Used:      used,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   utils.NextMidnight(s.clock.Now(), s.location),
	}, nil
}

func (s *Service) limitFor(platform domain.Platform) (int, error) {
	limit, ok := s.limits[platform]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, platform)
	}
	return limit, nil
}

func (s *Service) key(platform domain.Platform) string {
	return dayKey(platform, utils.DayKey(s.clock.Now(), s.location))
}

func dayKey(platform domain.Platform, day string) string {
	return string(platform) + ":" + day
}
