package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"renthive-backend/internal/domain/pricing"
)

type Config struct {
	AppPort string

	DBDriver string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresDSN string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	JWTSecret          string
	CORSAllowedOrigins []string
	EventsChannel      string
	GatewayDelay       time.Duration

	PricingFile string
	Fees        pricing.Fees
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the environment. A .env file in the working directory, when present,
// fills variables that are not already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c := &Config{
		AppPort:  getenv("APP_PORT", "8080"),
		DBDriver: strings.ToLower(getenv("DB_DRIVER", "mysql")),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "renthive"),
		MySQLUser: getenv("MYSQL_USER", "renthive"),
		MySQLPass: getenv("MYSQL_PASS", "renthive"),

		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		EventsChannel:      getenv("EVENTS_CHANNEL", "renthive:events"),
		GatewayDelay:       time.Duration(getint("PAYMENT_GATEWAY_DELAY_MS", 1500)) * time.Millisecond,

		PricingFile: os.Getenv("PRICING_FILE"),
		Fees:        pricing.DefaultFees(),
	}

	if c.PricingFile != "" {
		fees, err := LoadFees(c.PricingFile)
		if err != nil {
			return nil, err
		}
		c.Fees = fees
	}
	return c, nil
}

type feeFile struct {
	ServiceFeeRate *string `yaml:"service_fee_rate"`
	TaxRate        *string `yaml:"tax_rate"`
}

// LoadFees reads a YAML fee schedule. Keys left out keep their defaults.
func LoadFees(path string) (pricing.Fees, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return pricing.Fees{}, fmt.Errorf("read pricing file: %w", err)
	}
	return ParseFees(raw)
}

func ParseFees(raw []byte) (pricing.Fees, error) {
	var f feeFile
	if err := yaml.UnmarshalStrict(raw, &f); err != nil {
		return pricing.Fees{}, fmt.Errorf("parse pricing file: %w", err)
	}
	fees := pricing.DefaultFees()
	for _, r := range []struct {
		name string
		src  *string
		dst  *decimal.Decimal
	}{
		{"service_fee_rate", f.ServiceFeeRate, &fees.ServiceFeeRate},
		{"tax_rate", f.TaxRate, &fees.TaxRate},
	} {
		if r.src == nil {
			continue
		}
		d, err := decimal.NewFromString(strings.TrimSpace(*r.src))
		if err != nil {
			return pricing.Fees{}, fmt.Errorf("%s: %w", r.name, err)
		}
		if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
			return pricing.Fees{}, fmt.Errorf("%s must be within [0,1], got %s", r.name, d)
		}
		if !d.Equal(d.Truncate(pricing.RateScale)) {
			return pricing.Fees{}, fmt.Errorf("%s must have at most %d decimal places, got %s", r.name, pricing.RateScale, d)
		}
		*r.dst = d
	}
	return fees, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.IdempTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for DBDriver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.PostgresDSN
	}
	return c.MySQLDSN()
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
