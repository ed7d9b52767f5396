package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type FirebaseConfig struct {
	CredentialsFile string
	ProjectID       string
	DatabaseURL     string
	StorageBucket   string
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

type Config struct {
	Env        string
	ServerPort string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	OperatorUID  string
	AuthProvider string
	JWTSecret    string

	Firebase FirebaseConfig

	StoreDriver string
	DBUrl       string

	StorageDriver string
	S3            S3Config

	EncryptionKey string

	AppCheckEnabled bool
	AppCheckOrigin  string

	CORSAllowedOrigins []string

	RedisURL    string
	CacheTTL    time.Duration
	RabbitMQURL string

	ReconcileInterval time.Duration

	LogFile        string
	MetricsEnabled bool
	MetricsPath    string
}

// Load reads, in order of precedence, the process environment, a .env file
// and a flat TOML file (CONFIG_FILE, default config.toml) whose keys are the
// environment variable names.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: .env ignored: %v", err)
	}

	file, err := readFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}
	l := loader{file: file}

	cfg := &Config{
		Env:        l.getEnv("APP_ENV", "development"),
		ServerPort: l.getEnv("SERVER_PORT", "8080"),

		ReadTimeout:     l.getDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    l.getDuration("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     l.getDuration("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: l.getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		OperatorUID:  l.getEnv("OPERATOR_UID", ""),
		AuthProvider: strings.ToLower(l.getEnv("AUTH_PROVIDER", "firebase")),
		JWTSecret:    l.getEnv("JWT_SECRET", ""),

		Firebase: FirebaseConfig{
			CredentialsFile: l.getEnv("FIREBASE_CREDENTIALS_FILE", ""),
			ProjectID:       l.getEnv("FIREBASE_PROJECT_ID", ""),
			DatabaseURL:     l.getEnv("FIREBASE_DATABASE_URL", ""),
			StorageBucket:   l.getEnv("FIREBASE_STORAGE_BUCKET", ""),
		},

		StoreDriver: strings.ToLower(l.getEnv("STORE_DRIVER", "firebase")),
		DBUrl:       l.getEnv("DATABASE_URL", ""),

		StorageDriver: strings.ToLower(l.getEnv("STORAGE_DRIVER", "firebase")),
		S3: S3Config{
			Bucket:          l.getEnv("S3_BUCKET", ""),
			Region:          l.getEnv("S3_REGION", ""),
			Endpoint:        l.getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     l.getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: l.getEnv("S3_SECRET_ACCESS_KEY", ""),
			PublicBaseURL:   l.getEnv("S3_PUBLIC_BASE_URL", ""),
		},

		EncryptionKey: l.getEnv("ENCRYPTION_KEY", ""),

		AppCheckEnabled: l.getBool("APP_CHECK_ENABLED", false),
		AppCheckOrigin:  l.getEnv("APP_CHECK_ORIGIN", ""),

		CORSAllowedOrigins: splitList(l.getEnv("CORS_ALLOWED_ORIGINS", "")),

		RedisURL:    l.getEnv("REDIS_URL", ""),
		CacheTTL:    l.getDuration("CACHE_TTL", time.Minute),
		RabbitMQURL: l.getEnv("RABBITMQ_URL", ""),

		ReconcileInterval: l.getDuration("RECONCILE_INTERVAL", time.Hour),

		LogFile:        l.getEnv("LOG_FILE", ""),
		MetricsEnabled: l.getBool("METRICS_ENABLED", false),
		MetricsPath:    l.getEnv("METRICS_PATH", "/metrics"),
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error
	require := func(value, key string) {
		if value == "" {
			errs = append(errs, fmt.Errorf("%s is required", key))
		}
	}

	require(c.OperatorUID, "OPERATOR_UID")
	require(c.EncryptionKey, "ENCRYPTION_KEY")

	switch c.AuthProvider {
	case "firebase":
	case "jwt":
		require(c.JWTSecret, "JWT_SECRET")
	default:
		errs = append(errs, fmt.Errorf("AUTH_PROVIDER %q is not supported", c.AuthProvider))
	}

	switch c.StoreDriver {
	case "firebase":
		require(c.Firebase.DatabaseURL, "FIREBASE_DATABASE_URL")
	case "postgres":
		require(c.DBUrl, "DATABASE_URL")
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q is not supported", c.StoreDriver))
	}

	switch c.StorageDriver {
	case "firebase":
		require(c.Firebase.StorageBucket, "FIREBASE_STORAGE_BUCKET")
	case "s3":
		require(c.S3.Bucket, "S3_BUCKET")
		require(c.S3.Region, "S3_REGION")
	case "none":
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER %q is not supported", c.StorageDriver))
	}

	return errors.Join(errs...)
}

// UsesFirebase reports whether any component needs the Firebase app.
func (c *Config) UsesFirebase() bool {
	return c.AuthProvider == "firebase" ||
		c.StoreDriver == "firebase" ||
		c.StorageDriver == "firebase" ||
		c.AppCheckEnabled
}

// ======================================================
// HELPERS
// ======================================================

type loader struct {
	file map[string]string
}

func (l loader) getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v, ok := l.file[key]; ok && v != "" {
		return v
	}
	return def
}

func (l loader) getBool(key string, def bool) bool {
	v := l.getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: %s=%q is not a bool, using %v", key, v, def)
		return def
	}
	return b
}

// getDuration accepts Go durations ("90s") or a plain number of seconds.
func (l loader) getDuration(key string, def time.Duration) time.Duration {
	v := l.getEnv(key, "")
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	log.Printf("config: %s=%q is not a duration, using %s", key, v, def)
	return def
}

func readFile(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = "config.toml"
	}

	raw := map[string]any{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case []any:
			parts := make([]string, 0, len(t))
			for _, p := range t {
				parts = append(parts, fmt.Sprint(p))
			}
			out[strings.ToUpper(k)] = strings.Join(parts, ",")
		default:
			out[strings.ToUpper(k)] = fmt.Sprint(t)
		}
	}
	return out, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
