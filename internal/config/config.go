// Package config содержит логику чтения конфигурации формы возмещения расходов.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/mmeshcher/reintegro-form/internal/form"
	"github.com/mmeshcher/reintegro-form/internal/webhook"
)

// Config содержит параметры конфигурации сервиса.
type Config struct {
	RunAddress      string `env:"RUN_ADDRESS"`
	EndpointURL     string `env:"FLOW_URL"`
	SecretKey       string `env:"API_KEY"`
	SecretDelivery  string `env:"SECRET_DELIVERY"`
	QueryParamName  string `env:"SECRET_QUERY_PARAM"`
	SecretHeader    string `env:"SECRET_HEADER"`
	RequireEndpoint bool   `env:"REQUIRE_ENDPOINT"`
	LogLevel        string `env:"LOG_LEVEL"`
}

const (
	defaultRunAddress     = "localhost:8080"
	defaultQueryParamName = "code"
	defaultSecretHeader   = "x-api-key"
	defaultLogLevel       = "info"
)

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	return Load(flag.CommandLine, os.Args[1:])
}

// Load регистрирует флаги конфигурации в fs, разбирает args и применяет переменные окружения.
// Переменные окружения имеют приоритет над флагами.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fromEnv := *cfg
	_, requireFromEnv := os.LookupEnv("REQUIRE_ENDPOINT")

	fs.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	fs.StringVar(&cfg.EndpointURL, "e", "", "webhook endpoint URL")
	fs.StringVar(&cfg.SecretKey, "k", "", "webhook secret key")
	fs.StringVar(&cfg.SecretDelivery, "s", webhook.DeliveryQuery, "secret delivery: query or header")
	fs.StringVar(&cfg.QueryParamName, "p", defaultQueryParamName, "query parameter name for the secret: code or k")
	fs.StringVar(&cfg.SecretHeader, "H", defaultSecretHeader, "header name for the secret")
	fs.BoolVar(&cfg.RequireEndpoint, "require-endpoint", true, "reject submissions locally when endpoint URL is empty")
	fs.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if fromEnv.RunAddress != "" {
		cfg.RunAddress = fromEnv.RunAddress
	}
	if fromEnv.EndpointURL != "" {
		cfg.EndpointURL = fromEnv.EndpointURL
	}
	if fromEnv.SecretKey != "" {
		cfg.SecretKey = fromEnv.SecretKey
	}
	if fromEnv.SecretDelivery != "" {
		cfg.SecretDelivery = fromEnv.SecretDelivery
	}
	if fromEnv.QueryParamName != "" {
		cfg.QueryParamName = fromEnv.QueryParamName
	}
	if fromEnv.SecretHeader != "" {
		cfg.SecretHeader = fromEnv.SecretHeader
	}
	if requireFromEnv {
		cfg.RequireEndpoint = fromEnv.RequireEndpoint
	}
	if fromEnv.LogLevel != "" {
		cfg.LogLevel = fromEnv.LogLevel
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет политику передачи секрета. Пустой адрес endpoint здесь не считается
// ошибкой: он обрабатывается при отправке в зависимости от RequireEndpoint.
func (c *Config) Validate() error {
	var errs []error

	switch c.SecretDelivery {
	case webhook.DeliveryQuery, webhook.DeliveryHeader:
	default:
		errs = append(errs, fmt.Errorf("unknown secret delivery %q", c.SecretDelivery))
	}

	switch c.QueryParamName {
	case "code", "k":
	default:
		errs = append(errs, fmt.Errorf("unsupported secret query parameter %q", c.QueryParamName))
	}

	if c.SecretDelivery == webhook.DeliveryHeader && c.SecretHeader == "" {
		errs = append(errs, errors.New("secret header name is empty"))
	}

	return errors.Join(errs...)
}

// WebhookOptions возвращает параметры клиента endpoint.
func (c *Config) WebhookOptions() webhook.Options {
	return webhook.Options{
		EndpointURL:    c.EndpointURL,
		SecretKey:      c.SecretKey,
		SecretDelivery: c.SecretDelivery,
		QueryParamName: c.QueryParamName,
		SecretHeader:   c.SecretHeader,
	}
}

// FormOptions возвращает параметры контроллера формы.
func (c *Config) FormOptions() form.Options {
	return form.Options{
		EndpointURL:     c.EndpointURL,
		RequireEndpoint: c.RequireEndpoint,
	}
}
