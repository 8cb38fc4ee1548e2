package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	JWTSecret  string
	LogLevel   slog.Level

	RiderDefaultCapacity    int
	PinMaxAttempts          int
	DeliveryCharge          int64
	AvailableOrdersRadiusKm float64
	LocationStaleAfter      time.Duration
	RiderPresenceTimeout    time.Duration
	AssignmentRetryLimit    int

	EventRelaySchedule    string
	EventRelayBatchSize   int
	RiderPresenceSchedule string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "orderflow")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RIDER_DEFAULT_CAPACITY", 1)
	v.SetDefault("PIN_MAX_ATTEMPTS", 5)
	v.SetDefault("DELIVERY_CHARGE", 0)
	v.SetDefault("AVAILABLE_ORDERS_RADIUS_KM", 0.0)
	v.SetDefault("LOCATION_STALE_AFTER", 2*time.Minute)
	v.SetDefault("RIDER_PRESENCE_TIMEOUT", 10*time.Minute)
	v.SetDefault("ASSIGNMENT_RETRY_LIMIT", 3)
	v.SetDefault("EVENT_RELAY_SCHEDULE", "*/5 * * * * *")
	v.SetDefault("EVENT_RELAY_BATCH_SIZE", 100)
	v.SetDefault("RIDER_PRESENCE_SCHEDULE", "0 * * * * *")
}

// LoadConfig reads envFiles (missing files are skipped) and then the process
// environment. Real environment variables win over file values.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(v.GetString("LOG_LEVEL")))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := Config{
		HTTPPort:   v.GetString("HTTP_PORT"),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSslMode:  v.GetString("DB_SSLMODE"),
		JWTSecret:  v.GetString("JWT_SECRET"),
		LogLevel:   level,

		RiderDefaultCapacity:    v.GetInt("RIDER_DEFAULT_CAPACITY"),
		PinMaxAttempts:          v.GetInt("PIN_MAX_ATTEMPTS"),
		DeliveryCharge:          v.GetInt64("DELIVERY_CHARGE"),
		AvailableOrdersRadiusKm: v.GetFloat64("AVAILABLE_ORDERS_RADIUS_KM"),
		LocationStaleAfter:      v.GetDuration("LOCATION_STALE_AFTER"),
		RiderPresenceTimeout:    v.GetDuration("RIDER_PRESENCE_TIMEOUT"),
		AssignmentRetryLimit:    v.GetInt("ASSIGNMENT_RETRY_LIMIT"),

		EventRelaySchedule:    v.GetString("EVENT_RELAY_SCHEDULE"),
		EventRelayBatchSize:   v.GetInt("EVENT_RELAY_BATCH_SIZE"),
		RiderPresenceSchedule: v.GetString("RIDER_PRESENCE_SCHEDULE"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var problems []error
	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is required"))
	}
	if c.RiderDefaultCapacity < 1 {
		problems = append(problems, fmt.Errorf("RIDER_DEFAULT_CAPACITY must be at least 1, got %d", c.RiderDefaultCapacity))
	}
	if c.PinMaxAttempts < 1 {
		problems = append(problems, fmt.Errorf("PIN_MAX_ATTEMPTS must be at least 1, got %d", c.PinMaxAttempts))
	}
	if c.DeliveryCharge < 0 {
		problems = append(problems, fmt.Errorf("DELIVERY_CHARGE must not be negative, got %d", c.DeliveryCharge))
	}
	if c.AvailableOrdersRadiusKm < 0 {
		problems = append(problems, fmt.Errorf("AVAILABLE_ORDERS_RADIUS_KM must not be negative, got %g", c.AvailableOrdersRadiusKm))
	}
	if c.AssignmentRetryLimit < 1 {
		problems = append(problems, fmt.Errorf("ASSIGNMENT_RETRY_LIMIT must be at least 1, got %d", c.AssignmentRetryLimit))
	}
	if c.EventRelayBatchSize < 1 {
		problems = append(problems, fmt.Errorf("EVENT_RELAY_BATCH_SIZE must be at least 1, got %d", c.EventRelayBatchSize))
	}
	return errors.Join(problems...)
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
