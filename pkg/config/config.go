package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the app reads.
	EnvPrefix = "SHOPMART"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SHOPMART_DB_DSN"
	EnvDBHost = "SHOPMART_DB_HOST"
	EnvDBUser = "SHOPMART_DB_USER"
	EnvDBName = "SHOPMART_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Checkout      CheckoutConfig
	Uploads       UploadsConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"SHOPMART_APP_ENV" required:"true"`
	Port         string   `envconfig:"SHOPMART_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"SHOPMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"SHOPMART_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"SHOPMART_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPMART_DB_DSN"`
	Driver string `envconfig:"SHOPMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOPMART_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPMART_DB_USER"`
	LegacyPassword string `envconfig:"SHOPMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPMART_REDIS_URL"`
	Address      string        `envconfig:"SHOPMART_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPMART_REDIS_WRITE_TIMEOUT" default:"5s"`
	CacheTTL     time.Duration `envconfig:"SHOPMART_REDIS_CACHE_TTL" default:"5m"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SHOPMART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SHOPMART_JWT_ISSUER" default:"shopmart"`
	ExpirationMinutes int    `envconfig:"SHOPMART_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHOPMART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHOPMART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHOPMART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHOPMART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHOPMART_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SHOPMART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SHOPMART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SHOPMART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SHOPMART_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SHOPMART_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SHOPMART_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// CheckoutConfig carries the canonical pricing constants. Cart and checkout
// screens previously disagreed on these; the backend is now the single source.
type CheckoutConfig struct {
	FreeShippingThreshold string `envconfig:"SHOPMART_CHECKOUT_FREE_SHIPPING_THRESHOLD" default:"500"`
	ShippingFlatFee       string `envconfig:"SHOPMART_CHECKOUT_SHIPPING_FLAT_FEE" default:"100"`
	TaxRate               string `envconfig:"SHOPMART_CHECKOUT_TAX_RATE" default:"0.18"`
}

type UploadsConfig struct {
	Dir         string `envconfig:"SHOPMART_UPLOADS_DIR" default:"uploads"`
	MaxUploadMB int    `envconfig:"SHOPMART_MAX_UPLOAD_MB" default:"5"`
	PublicBase  string `envconfig:"SHOPMART_UPLOADS_PUBLIC_BASE" default:"/uploads"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SHOPMART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SHOPMART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
