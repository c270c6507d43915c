package cmd

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config carries all runtime settings. Values come from the process
// environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"fooddelivery"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	KafkaBrokers          string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaOrderEventsTopic string `envconfig:"KAFKA_ORDER_EVENTS_TOPIC" default:"order-status-changed"`

	DispatchSchedule string `envconfig:"DISPATCH_SCHEDULE" default:"*/15 * * * * *"`
}

// LoadConfig reads the .env file when present, then the environment.
func LoadConfig() (Config, error) {
	// A missing .env is fine; containers set the environment directly.
	_ = godotenv.Load(".env")

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return Config{}, fmt.Errorf("failed to process environment: %w", err)
	}
	return config, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// BrokerList splits the comma-separated broker setting.
func (c Config) BrokerList() []string {
	brokers := strings.Split(c.KafkaBrokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return brokers
}
