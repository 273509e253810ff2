package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	bybitKeyENV       = "BYBIT_API_KEY"
	bybitSecretENV    = "BYBIT_API_SECRET"
	balanceIDsENV     = "ALLOWED_BALANCE_USER_IDS"
	positionIDsENV    = "ALLOWED_POSITION_USER_IDS"
	primeIDENV        = "PRIME_ID"
)

// Config — неизменяемая конфигурация всего процесса. Собирается один раз
// на старте, дальше только читается.
type Config struct {
	Telegram struct {
		Token string `mapstructure:"token"`
	} `mapstructure:"telegram"`

	Bybit struct {
		APIKey     string `mapstructure:"api_key"`
		APISecret  string `mapstructure:"api_secret"`
		BaseURL    string `mapstructure:"base_url"`
		WSURL      string `mapstructure:"ws_url"`
		RecvWindow string `mapstructure:"recv_window"`
	} `mapstructure:"bybit"`

	// Допуски. Пустой список = доступ закрыт для всех.
	AllowedBalanceIDs  []string `mapstructure:"allowed_balance_ids"`
	AllowedPositionIDs []string `mapstructure:"allowed_position_ids"`
	// PrimeID влияет только на текст приветствия, это не граница доступа.
	PrimeID string `mapstructure:"prime_id"`

	Timezone string `mapstructure:"timezone"`

	Health struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"health"`

	Tracing struct {
		Enabled bool   `mapstructure:"enabled"`
		Host    string `mapstructure:"host"`
		Port    int    `mapstructure:"port"`
	} `mapstructure:"tracing"`
}

func NewConfig() (*Config, error) {
	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}

	v := viper.New()
	v.SetConfigFile("configs/" + configFileName)

	v.SetDefault("bybit.base_url", "https://api.bybit.com")
	v.SetDefault("bybit.ws_url", "wss://stream.bybit.com/v5/public/linear")
	v.SetDefault("bybit.recv_window", "5000")
	v.SetDefault("timezone", "Europe/Moscow")
	v.SetDefault("health.addr", ":8080")
	v.SetDefault("tracing.host", "localhost")
	v.SetDefault("tracing.port", 6831)

	if err := v.ReadInConfig(); err != nil {
		// Конфиг-файл опционален: всё обязательное можно задать через env.
		if !os.IsNotExist(errors.Cause(err)) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if key := os.Getenv(bybitKeyENV); key != "" {
		config.Bybit.APIKey = key
	}
	if secret := os.Getenv(bybitSecretENV); secret != "" {
		config.Bybit.APISecret = secret
	}
	if ids := os.Getenv(balanceIDsENV); ids != "" {
		config.AllowedBalanceIDs = splitIDs(ids)
	}
	if ids := os.Getenv(positionIDsENV); ids != "" {
		config.AllowedPositionIDs = splitIDs(ids)
	}
	if id := os.Getenv(primeIDENV); id != "" {
		config.PrimeID = id
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate — без токена и ключей процесс стартовать не должен.
func (c *Config) validate() error {
	if c.Telegram.Token == "" {
		return errors.New("config: telegram token is required")
	}
	if c.Bybit.APIKey == "" {
		return errors.New("config: bybit api key is required")
	}
	if c.Bybit.APISecret == "" {
		return errors.New("config: bybit api secret is required")
	}
	return nil
}

func splitIDs(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
