package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/engagement-automation-api/internal/scheduler/mocks"
	"go.uber.org/mock/gomock"
)

func TestHorizonTopUpService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	planner := mocks.NewMockHorizonPlanner(ctrl)
	planner.EXPECT().TopUpActive(gomock.Any()).Return(42, nil)

	service := NewHorizonTopUpService(planner, HorizonTopUpConfig{CronSchedule: "5 0 * * *", Enabled: true, Location: time.UTC})
	service.TriggerManualSync()

	assert.Eventually(t, func() bool {
		status := service.GetStatus()
		return status["last_topup_actions"] == 42 && status["topup_running"] == false
	}, time.Second, 5*time.Millisecond)
}

func TestHorizonTopUpService_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	planner := mocks.NewMockHorizonPlanner(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tests := []struct {
		name    string
		config  HorizonTopUpConfig
		wantErr bool
	}{
		{
			name:   "Desabilitado não agenda nada",
			config: HorizonTopUpConfig{CronSchedule: "5 0 * * *", Enabled: false},
		},
		{
			name:   "Cron válido",
			config: HorizonTopUpConfig{CronSchedule: "5 0 * * *", Enabled: true},
		},
		{
			name:    "Cron inválido",
			config:  HorizonTopUpConfig{CronSchedule: "not a cron", Enabled: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewHorizonTopUpService(planner, tt.config)
			err := service.Start(ctx)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.config.Enabled, service.GetStatus()["topup_enabled"])
		})
	}
}
