package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Portal      Portal      `mapstructure:",squash"`
	Cache       Cache       `mapstructure:",squash"`
	AutoRefresh AutoRefresh `mapstructure:",squash"`
	Preferences Preferences `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Portal aponta para o backend JSON que alimenta os dashboards
type Portal struct {
	BaseURL     string        `mapstructure:"portal_base_url"`
	AccessToken string        `mapstructure:"portal_access_token"`
	Timeout     time.Duration `mapstructure:"portal_timeout"`
	UserAgent   string        `mapstructure:"portal_user_agent"`
}

type Cache struct {
	TTL          time.Duration `mapstructure:"cache_ttl"`
	CycleTimeout time.Duration `mapstructure:"refresh_cycle_timeout"`
}

type AutoRefresh struct {
	Enabled bool `mapstructure:"auto_refresh_enabled"`
	// Intervals no formato dashboard=duração, ex: operacional=5m
	Intervals []string `mapstructure:"auto_refresh_intervals"`
}

type Preferences struct {
	Driver        string `mapstructure:"preferences_driver"`
	Dir           string `mapstructure:"preferences_dir"`
	RedisAddr     string `mapstructure:"preferences_redis_addr"`
	RedisPassword string `mapstructure:"preferences_redis_password"`
	RedisDB       int    `mapstructure:"preferences_redis_db"`
	KeyPrefix     string `mapstructure:"preferences_key_prefix"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5000")

	viper.SetDefault("PORTAL_BASE_URL", "http://localhost:5000")
	viper.SetDefault("PORTAL_ACCESS_TOKEN", "")
	viper.SetDefault("PORTAL_TIMEOUT", 30*time.Second)
	viper.SetDefault("PORTAL_USER_AGENT", "painel-gateway/1.0")

	viper.SetDefault("CACHE_TTL", 5*time.Minute) // Mesmo TTL usado pelos dashboards do portal
	viper.SetDefault("REFRESH_CYCLE_TIMEOUT", time.Minute)

	viper.SetDefault("AUTO_REFRESH_ENABLED", true)
	viper.SetDefault("AUTO_REFRESH_INTERVALS", "") // Vazio usa o intervalo de cada dashboard

	viper.SetDefault("PREFERENCES_DRIVER", "file") // file, postgres ou redis
	viper.SetDefault("PREFERENCES_DIR", "./data/preferences")
	viper.SetDefault("PREFERENCES_REDIS_ADDR", "localhost:6379")
	viper.SetDefault("PREFERENCES_REDIS_PASSWORD", "")
	viper.SetDefault("PREFERENCES_REDIS_DB", 0)
	viper.SetDefault("PREFERENCES_KEY_PREFIX", "painel:preferences")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/portal?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

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
		return nil, errors.Wrap(err, "config: erro ao decodificar configuração")
	}

	if _, err := config.AutoRefresh.IntervalByDashboard(); err != nil {
		return nil, err
	}

	config.Portal.BaseURL = strings.TrimRight(config.Portal.BaseURL, "/")

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// IntervalByDashboard converte AUTO_REFRESH_INTERVALS em um mapa dashboard -> intervalo
func (a AutoRefresh) IntervalByDashboard() (map[string]time.Duration, error) {
	intervals := make(map[string]time.Duration, len(a.Intervals))
	for _, raw := range a.Intervals {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		name, value, ok := strings.Cut(raw, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, errors.Errorf("config: intervalo de auto refresh inválido: %q", raw)
		}

		interval, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return nil, errors.Wrapf(err, "config: duração inválida para o dashboard %s", name)
		}
		if interval <= 0 {
			return nil, errors.Errorf("config: intervalo do dashboard %s deve ser positivo", name)
		}

		intervals[strings.TrimSpace(name)] = interval
	}

	return intervals, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
