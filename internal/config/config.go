package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all the configuration for the application.
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer `yaml:"http_server"`
	Database   `yaml:"database"`
	QRCode     `yaml:"qr_code"`
	Auth       `yaml:"auth"`
	GeoIP      `yaml:"geoip"`
	UserAgent  `yaml:"user_agent"`
}

// HTTPServer holds HTTP server specific configuration.
type HTTPServer struct {
	Address      string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout  string `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout string `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  string `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Database holds PostgreSQL connection configuration.
type Database struct {
	Host            string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string `yaml:"user" env:"DB_USER" env-default:"qrtrack"`
	Password        string `yaml:"password" env:"DB_PASSWORD" env-default:""`
	DBName          string `yaml:"name" env:"DB_NAME" env-default:"qrtrack"`
	SSLMode         string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`
	Timezone        string `yaml:"timezone" env:"DB_TIMEZONE" env-default:"UTC"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
}

// QRCode holds registry-specific configuration.
type QRCode struct {
	ShortIDLength int    `yaml:"short_id_length" env:"SHORT_ID_LENGTH" env-default:"6"`
	BaseURL       string `yaml:"base_url" env:"BASE_URL" env-default:"http://localhost:8080"`
}

// Auth holds JWT configuration.
type Auth struct {
	JWTSecret       string `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	AccessTokenTTL  string `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"168h"`
	Issuer          string `yaml:"issuer" env:"JWT_ISSUER" env-default:"QRTrack-Backend"`
}

// GeoIP holds the MaxMind database location. Empty path disables geo lookup;
// scans are then recorded with absent location.
type GeoIP struct {
	DBPath string `yaml:"db_path" env:"GEOIP_DB_PATH" env-default:""`
}

// UserAgent holds the uap-core regexes location. Empty path uses the regex
// set embedded in the parser library.
type UserAgent struct {
	RegexesPath string `yaml:"regexes_path" env:"UA_REGEXES_PATH" env-default:""`
}

// MustLoad loads the application configuration.
func MustLoad() *Config {
	// Try to load .env file (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/local.yml" // default path
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
	} else {
		// If config file doesn't exist, use environment variables only
		log.Println("Config file not found, using environment variables only")
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err)
		}
	}

	return &cfg
}
