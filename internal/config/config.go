package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Quota        Quota        `mapstructure:",squash"`
	Scheduling   Scheduling   `mapstructure:",squash"`
	Dispatcher   Dispatcher   `mapstructure:",squash"`
	HorizonTopUp HorizonTopUp `mapstructure:",squash"`
	Platform     Platform     `mapstructure:",squash"`
	Analytics    Analytics    `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	URL string `mapstructure:"redis_url"`
}

type App struct {
	LogLevel    string `mapstructure:"log_level"`
	StoreDriver string `mapstructure:"store_driver"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Quota struct {
	Backend        string `mapstructure:"quota_backend"`
	Timezone       string `mapstructure:"quota_timezone"`
	LimitTwitter   int    `mapstructure:"quota_limit_twitter"`
	LimitInstagram int    `mapstructure:"quota_limit_instagram"`
	LimitTikTok    int    `mapstructure:"quota_limit_tiktok"`
	LimitYouTube   int    `mapstructure:"quota_limit_youtube"`
}

type Scheduling struct {
	MaxActionsPerDay      int           `mapstructure:"max_actions_per_day"`
	MaxInteractionsPerDay int           `mapstructure:"max_interactions_per_day"`
	MinInteractionDelay   time.Duration `mapstructure:"min_interaction_delay"`
	PostJitter            time.Duration `mapstructure:"post_jitter"`
	EngageJitter          time.Duration `mapstructure:"engage_jitter"`
	AmplifyDelay          time.Duration `mapstructure:"amplify_delay"`
	Horizon               time.Duration `mapstructure:"schedule_horizon"`
	DefaultPostsPerDay    int           `mapstructure:"default_posts_per_day"`
}

type Dispatcher struct {
	Tick                  time.Duration `mapstructure:"dispatcher_tick"`
	Workers               int           `mapstructure:"dispatcher_workers"`
	RetryBaseDelay        time.Duration `mapstructure:"retry_base_delay"`
	RetryMaxDelay         time.Duration `mapstructure:"retry_max_delay"`
	RetryMaxAttempts      int           `mapstructure:"retry_max_attempts"`
	ActionRelevanceWindow time.Duration `mapstructure:"action_relevance_window"`
	RecheckInterval       time.Duration `mapstructure:"quota_recheck_interval"`
	MaxErrorLog           int           `mapstructure:"max_error_log"`
}

type HorizonTopUp struct {
	CronSchedule string `mapstructure:"horizon_topup_cron"`
	Enabled      bool   `mapstructure:"horizon_topup_enabled"`
}

type Platform struct {
	GatewayURL        string        `mapstructure:"platform_gateway_url"`
	RequestsPerSecond float64       `mapstructure:"platform_requests_per_second"`
	Timeout           time.Duration `mapstructure:"platform_timeout"`
}

type Analytics struct {
	URL      string        `mapstructure:"analytics_url"`
	Timeout  time.Duration `mapstructure:"analytics_timeout"`
	RetryMax int           `mapstructure:"analytics_retry_max"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("STORE_DRIVER", "memory") // memory | postgres

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/engagement?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	// Cotas diárias por plataforma, zeradas à meia-noite do fuso configurado
	viper.SetDefault("QUOTA_BACKEND", "memory") // memory | redis
	viper.SetDefault("QUOTA_TIMEZONE", "America/Los_Angeles")
	viper.SetDefault("QUOTA_LIMIT_TWITTER", 500)
	viper.SetDefault("QUOTA_LIMIT_INSTAGRAM", 200)
	viper.SetDefault("QUOTA_LIMIT_TIKTOK", 1000)
	viper.SetDefault("QUOTA_LIMIT_YOUTUBE", 10000)

	viper.SetDefault("MAX_ACTIONS_PER_DAY", 100)
	viper.SetDefault("MAX_INTERACTIONS_PER_DAY", 100)
	viper.SetDefault("MIN_INTERACTION_DELAY", "60s")
	viper.SetDefault("POST_JITTER", "15m")
	viper.SetDefault("ENGAGE_JITTER", "5m")
	viper.SetDefault("AMPLIFY_DELAY", "30m")
	viper.SetDefault("SCHEDULE_HORIZON", "24h")
	viper.SetDefault("DEFAULT_POSTS_PER_DAY", 3)

	viper.SetDefault("DISPATCHER_TICK", "1s")
	viper.SetDefault("DISPATCHER_WORKERS", 4)
	viper.SetDefault("RETRY_BASE_DELAY", "30s")
	viper.SetDefault("RETRY_MAX_DELAY", "30m")
	viper.SetDefault("RETRY_MAX_ATTEMPTS", 5)
	viper.SetDefault("ACTION_RELEVANCE_WINDOW", "24h")
	viper.SetDefault("QUOTA_RECHECK_INTERVAL", "5m")
	viper.SetDefault("MAX_ERROR_LOG", 100)

	viper.SetDefault("HORIZON_TOPUP_CRON", "5 0 * * *") // Todos os dias às 00:05
	viper.SetDefault("HORIZON_TOPUP_ENABLED", true)

	viper.SetDefault("PLATFORM_GATEWAY_URL", "http://localhost:9000")
	viper.SetDefault("PLATFORM_REQUESTS_PER_SECOND", 2)
	viper.SetDefault("PLATFORM_TIMEOUT", "20s")

	viper.SetDefault("ANALYTICS_URL", "")
	viper.SetDefault("ANALYTICS_TIMEOUT", "10s")
	viper.SetDefault("ANALYTICS_RETRY_MAX", 2)
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica combinações de configuração que impediriam o motor de funcionar
func (c *Config) Validate() error {
	if _, err := c.Quota.Location(); err != nil {
		return fmt.Errorf("fuso de cota inválido %q: %w", c.Quota.Timezone, err)
	}
	if c.Scheduling.MaxActionsPerDay <= 0 {
		return fmt.Errorf("MAX_ACTIONS_PER_DAY deve ser positivo")
	}
	if c.Scheduling.MinInteractionDelay <= 0 {
		return fmt.Errorf("MIN_INTERACTION_DELAY deve ser positivo")
	}
	if c.Scheduling.Horizon <= 0 {
		return fmt.Errorf("SCHEDULE_HORIZON deve ser positivo")
	}
	if c.Dispatcher.Workers <= 0 {
		return fmt.Errorf("DISPATCHER_WORKERS deve ser positivo")
	}
	return nil
}

// Location carrega o fuso em que o dia de cota é contado
func (q Quota) Location() (*time.Location, error) {
	return time.LoadLocation(q.Timezone)
}

// Limits devolve o limite diário de cada plataforma suportada
func (q Quota) Limits() map[domain.Platform]int {
	return map[domain.Platform]int{
		domain.PlatformTwitter:   q.LimitTwitter,
		domain.PlatformInstagram: q.LimitInstagram,
		domain.PlatformTikTok:    q.LimitTikTok,
		domain.PlatformYouTube:   q.LimitYouTube,
	}
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
