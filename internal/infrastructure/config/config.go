package config

import (
	"fmt"
	"strings"

	"github.com/erp/seeder/internal/seeder"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Scheduler SchedulerConfig
	Seeder    SeederConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings.
// Driver selects postgres (production) or sqlite (sandbox).
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration for the admin endpoint
type HTTPConfig struct {
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
	TrustedProxies      []string
}

// SchedulerConfig holds the unattended generation schedule
type SchedulerConfig struct {
	Enabled       bool
	CronSchedule  string
	CustomerCount int
	OrderCount    int
}

// SeederConfig holds the generation policy surface
type SeederConfig struct {
	Enabled            bool
	AllowedLocales     []string
	DefaultEmailDomain string
	EmailPrefix        string
	NamePrefix         string
	SurnamePrefix      string
	AddressPrefix      string

	AllowedPaymentMethods  []string
	AllowedShippingMethods []string

	InvoiceChance    int
	ShipmentChance   int
	CreditmemoChance int

	StrictMethodResolution bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SEEDER_ prefix (e.g., SEEDER_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SEEDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// chance defaults must be distinguishable from an explicit 0
	v.SetDefault("seeder.invoice_chance", 70)
	v.SetDefault("seeder.shipment_chance", 50)
	v.SetDefault("seeder.creditmemo_chance", 10)
	v.SetDefault("seeder.enabled", true)
	v.SetDefault("seeder.strict_method_resolution", true)
	v.SetDefault("scheduler.enabled", false)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			SQLitePath:      v.GetString("database.sqlite_path"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeoutSeconds:  v.GetInt("http.read_timeout_seconds"),
			WriteTimeoutSeconds: v.GetInt("http.write_timeout_seconds"),
			TrustedProxies:      v.GetStringSlice("http.trusted_proxies"),
		},
		Scheduler: SchedulerConfig{
			Enabled:       v.GetBool("scheduler.enabled"),
			CronSchedule:  v.GetString("scheduler.cron_schedule"),
			CustomerCount: v.GetInt("scheduler.customer_count"),
			OrderCount:    v.GetInt("scheduler.order_count"),
		},
		Seeder: SeederConfig{
			Enabled:                v.GetBool("seeder.enabled"),
			AllowedLocales:         v.GetStringSlice("seeder.allowed_locales"),
			DefaultEmailDomain:     v.GetString("seeder.default_email_domain"),
			EmailPrefix:            v.GetString("seeder.email_prefix"),
			NamePrefix:             v.GetString("seeder.name_prefix"),
			SurnamePrefix:          v.GetString("seeder.surname_prefix"),
			AddressPrefix:          v.GetString("seeder.address_prefix"),
			AllowedPaymentMethods:  v.GetStringSlice("seeder.allowed_payment_methods"),
			AllowedShippingMethods: v.GetStringSlice("seeder.allowed_shipping_methods"),
			InvoiceChance:          v.GetInt("seeder.invoice_chance"),
			ShipmentChance:         v.GetInt("seeder.shipment_chance"),
			CreditmemoChance:       v.GetInt("seeder.creditmemo_chance"),
			StrictMethodResolution: v.GetBool("seeder.strict_method_resolution"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "entity-seeder"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "seeder"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "seeder.db"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 10
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeoutSeconds == 0 {
		cfg.HTTP.ReadTimeoutSeconds = 15
	}
	if cfg.HTTP.WriteTimeoutSeconds == 0 {
		cfg.HTTP.WriteTimeoutSeconds = 30
	}
	if cfg.Scheduler.CronSchedule == "" {
		cfg.Scheduler.CronSchedule = "0 2 * * *"
	}
	if cfg.Scheduler.CustomerCount == 0 {
		cfg.Scheduler.CustomerCount = 5
	}
	if cfg.Scheduler.OrderCount == 0 {
		cfg.Scheduler.OrderCount = 10
	}
	if len(cfg.Seeder.AllowedLocales) == 0 {
		cfg.Seeder.AllowedLocales = []string{seeder.DefaultLocale}
	}
	if cfg.Seeder.DefaultEmailDomain == "" {
		cfg.Seeder.DefaultEmailDomain = "example.com"
	}
}

// validate checks configuration consistency
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver)
	}

	for name, chance := range map[string]int{
		"seeder.invoice_chance":    c.Seeder.InvoiceChance,
		"seeder.shipment_chance":   c.Seeder.ShipmentChance,
		"seeder.creditmemo_chance": c.Seeder.CreditmemoChance,
	} {
		if chance < 0 || chance > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %d", name, chance)
		}
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}

	return nil
}

// SeederSettings converts the config section into the generator settings
func (c *Config) SeederSettings() seeder.Settings {
	return seeder.Settings{
		Enabled:                c.Seeder.Enabled,
		AllowedLocales:         c.Seeder.AllowedLocales,
		DefaultEmailDomain:     c.Seeder.DefaultEmailDomain,
		EmailPrefix:            c.Seeder.EmailPrefix,
		NamePrefix:             c.Seeder.NamePrefix,
		SurnamePrefix:          c.Seeder.SurnamePrefix,
		AddressPrefix:          c.Seeder.AddressPrefix,
		AllowedPaymentMethods:  c.Seeder.AllowedPaymentMethods,
		AllowedShippingMethods: c.Seeder.AllowedShippingMethods,
		InvoiceChance:          c.Seeder.InvoiceChance,
		ShipmentChance:         c.Seeder.ShipmentChance,
		CreditmemoChance:       c.Seeder.CreditmemoChance,
		StrictMethodResolution: c.Seeder.StrictMethodResolution,
	}
}

// DSN builds the postgres connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
