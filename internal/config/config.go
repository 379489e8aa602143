// Package config loads process configuration from the environment. A .env
// file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

type Config struct {
	ServiceName string
	Environment string
	Port        int
	LogLevel    string
	Storage     string

	AWS      AWSConfig
	Tables   TablesConfig
	JWT      JWTConfig
	Kafka    KafkaConfig
	Payments PaymentsConfig
}

type AWSConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

type TablesConfig struct {
	Orders     string
	Quotations string
	Inventory  string
	Payments   string
	Customers  string
	Devices    string
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// KafkaConfig enables the Kafka audit sink when Brokers is not empty.
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

type PaymentsConfig struct {
	AccessToken     string
	Mock            bool
	TestPayerEmail  string
	TestPayerUserID string
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads the configuration. Missing values take local-friendly defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	port, err := strconv.Atoi(getenvDefault("PORT", "8080"))
	if err != nil || port <= 0 {
		return Config{}, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	ttl, err := time.ParseDuration(getenvDefault("JWT_TTL", "12h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	cfg := Config{
		ServiceName: getenvDefault("SERVICE_NAME", "servicedesk"),
		Environment: strings.ToLower(getenvDefault("APP_ENV", "development")),
		Port:        port,
		LogLevel:    getenvDefault("LOG_LEVEL", "info"),
		Storage:     strings.ToLower(getenvDefault("STORAGE_DRIVER", StorageDynamoDB)),
		AWS: AWSConfig{
			Region:          getenvDefault("AWS_REGION", "us-east-1"),
			Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
			AccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		},
		Tables: TablesConfig{
			Orders:     getenvDefault("ORDERS_TABLE", "service_orders"),
			Quotations: getenvDefault("QUOTATIONS_TABLE", "quotations"),
			Inventory:  getenvDefault("INVENTORY_TABLE", "inventory_items"),
			Payments:   getenvDefault("PAYMENTS_TABLE", "payments"),
			Customers:  getenvDefault("CUSTOMERS_TABLE", "customers"),
			Devices:    getenvDefault("DEVICES_TABLE", "devices"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: getenvDefault("JWT_ISSUER", "servicedesk"),
			TTL:    ttl,
		},
		Kafka: KafkaConfig{
			Brokers:  splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:    getenvDefault("KAFKA_AUDIT_TOPIC", "servicedesk.audit"),
			ClientID: getenvDefault("KAFKA_CLIENT_ID", "servicedesk"),
		},
		Payments: PaymentsConfig{
			AccessToken:     os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
			Mock:            truthy(os.Getenv("PAYMENT_GATEWAY_MOCK")) || truthy(os.Getenv("MERCADOPAGO_MOCK")),
			TestPayerEmail:  os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL"),
			TestPayerUserID: os.Getenv("MERCADOPAGO_TEST_PAYER_USER_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageDynamoDB, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage)
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
