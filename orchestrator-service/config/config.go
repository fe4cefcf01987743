package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/movieticket/booking-platform/orchestrator-service/domain"
	"github.com/movieticket/booking-platform/orchestrator-service/infrastructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName    string        `mapstructure:"service_name"`
	Env            string        `mapstructure:"env"`
	Port           string        `mapstructure:"port"`
	LogLevel       string        `mapstructure:"log_level"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Services       Services      `mapstructure:"services"`
	Telemetry      Telemetry     `mapstructure:"telemetry"`
	Database       Database      `mapstructure:"database"`
	AWS            AWS           `mapstructure:"aws"`
}

// Services holds where each downstream service listens
type Services struct {
	Seating Endpoint `mapstructure:"seating"`
	Payment Endpoint `mapstructure:"payment"`
	Movie   Endpoint `mapstructure:"movie"`
	Gateway Endpoint `mapstructure:"gateway"`
}

type Endpoint struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type Telemetry struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

type Database struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type AWS struct {
	Region      string `mapstructure:"region"`
	EndpointSNS string `mapstructure:"endpoint_sns"`
	EndpointSQS string `mapstructure:"endpoint_sqs"`
	SNSEnabled  bool   `mapstructure:"sns_enabled"`
	SNSTopicArn string `mapstructure:"sns_topic_arn"`
	SQSEnabled  bool   `mapstructure:"sqs_enabled"`
	SQSQueueURL string `mapstructure:"sqs_queue_url"`
	SQSWorkers  int32  `mapstructure:"sqs_workers"`
	SQSWaitTime int32  `mapstructure:"sqs_wait_time"`
	SQSReaders  int32  `mapstructure:"sqs_readers"`
}

// ReadConfig loads <ENVIRONMENT>.json from this package's directory.
// ORCHESTRATOR_* variables override any key, e.g. ORCHESTRATOR_SERVICES_SEATING_HOST.
func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("unable to get current file")
	}

	return readConfig(filepath.Dir(filename), getConfigName())
}

func readConfig(configDir, name string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	// Allow environment variables to override config
	v.SetEnvPrefix("ORCHESTRATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults from environment variables for backward compatibility
	setDefaultsFromEnv(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling config")
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func getConfigName() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "local"
	}
	return env
}

// setDefaultsFromEnv seeds defaults from the variable names the platform's
// compose files already export
func setDefaultsFromEnv(v *viper.Viper) {
	// Service defaults
	v.SetDefault("service_name", "orchestrator-service")
	v.SetDefault("env", getEnv("ENV", "local"))
	v.SetDefault("port", getEnv("PORT", "8083"))
	v.SetDefault("log_level", getEnv("LOG_LEVEL", "info"))
	v.SetDefault("request_timeout", "10s")

	// Downstream services
	v.SetDefault("services.seating.host", getEnv("SEATING_SERVICE", "localhost"))
	v.SetDefault("services.seating.port", getEnv("SEATING_SERVICE_PORT", "8085"))
	v.SetDefault("services.payment.host", getEnv("PAYMENT_SERVICE", "localhost"))
	v.SetDefault("services.payment.port", getEnv("PAYMENT_SERVICE_PORT", "8084"))
	v.SetDefault("services.movie.host", getEnv("MOVIE_SERVICE", "localhost"))
	v.SetDefault("services.movie.port", getEnv("MOVIE_SERVICE_PORT", "8082"))
	v.SetDefault("services.gateway.host", getEnv("API_GATEWAY", "localhost"))
	v.SetDefault("services.gateway.port", getEnv("API_GATEWAY_PORT", "8081"))

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"))

	// Database defaults
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.url", getEnv("DATABASE_URL", ""))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "movie_booking")
	v.SetDefault("database.ssl_mode", "disable")

	// AWS defaults
	v.SetDefault("aws.region", getEnv("AWS_DEFAULT_REGION", "us-east-1"))
	v.SetDefault("aws.endpoint_sns", getEnv("AWS_ENDPOINT_URL_SNS", ""))
	v.SetDefault("aws.endpoint_sqs", getEnv("AWS_ENDPOINT_URL_SQS", ""))
	v.SetDefault("aws.sns_enabled", false)
	v.SetDefault("aws.sns_topic_arn", getEnv("SNS_TOPIC_ARN", "arn:aws:sns:us-east-1:000000000000:saga-outcomes"))
	v.SetDefault("aws.sqs_enabled", false)
	v.SetDefault("aws.sqs_queue_url", getEnv("SQS_QUEUE_URL", "http://localhost:4566/000000000000/movie-ticket-requests"))
	v.SetDefault("aws.sqs_workers", 10)
	v.SetDefault("aws.sqs_wait_time", 20)
	v.SetDefault("aws.sqs_readers", 1)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) validate() error {
	if c.RequestTimeout <= 0 {
		return errors.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.AWS.SNSEnabled && c.AWS.SNSTopicArn == "" {
		return errors.New("aws.sns_topic_arn is required when SNS is enabled")
	}
	if c.AWS.SQSEnabled && c.AWS.SQSQueueURL == "" {
		return errors.New("aws.sqs_queue_url is required when SQS is enabled")
	}
	return nil
}

// Destinations maps each downstream service to its configured address
func (c *Config) Destinations() map[domain.Service]infrastructure.Destination {
	return map[domain.Service]infrastructure.Destination{
		domain.ServiceSeating: {Host: c.Services.Seating.Host, Port: c.Services.Seating.Port},
		domain.ServicePayment: {Host: c.Services.Payment.Host, Port: c.Services.Payment.Port},
		domain.ServiceMovie:   {Host: c.Services.Movie.Host, Port: c.Services.Movie.Port},
		domain.ServiceGateway: {Host: c.Services.Gateway.Host, Port: c.Services.Gateway.Port},
	}
}

// GetDatabaseURL constructs database URL from config
func (c *Config) GetDatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}
