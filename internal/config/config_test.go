package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
)

func validConfig() *Config {
	return &Config{
		Quota: Quota{
			Timezone:       "America/Los_Angeles",
			LimitTwitter:   500,
			LimitInstagram: 200,
			LimitTikTok:    1000,
			LimitYouTube:   10000,
		},
		Scheduling: Scheduling{
			MaxActionsPerDay:    100,
			MinInteractionDelay: time.Minute,
			Horizon:             24 * time.Hour,
		},
		Dispatcher: Dispatcher{Workers: 2},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "configuração válida", mutate: func(c *Config) {}},
		{name: "fuso inválido", mutate: func(c *Config) { c.Quota.Timezone = "Mars/Olympus" }, wantErr: true},
		{name: "máximo de ações zerado", mutate: func(c *Config) { c.Scheduling.MaxActionsPerDay = 0 }, wantErr: true},
		{name: "atraso mínimo zerado", mutate: func(c *Config) { c.Scheduling.MinInteractionDelay = 0 }, wantErr: true},
		{name: "horizonte zerado", mutate: func(c *Config) { c.Scheduling.Horizon = 0 }, wantErr: true},
		{name: "sem workers", mutate: func(c *Config) { c.Dispatcher.Workers = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuota_Limits(t *testing.T) {
	limits := validConfig().Quota.Limits()

	assert.Equal(t, 500, limits[domain.PlatformTwitter])
	assert.Equal(t, 10000, limits[domain.PlatformYouTube])
	assert.Len(t, limits, len(domain.SupportedPlatforms()))
}
