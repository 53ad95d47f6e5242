package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMongo = "mongo"
	DriverMySQL = "mysql"
)

// Photo storage backends.
const (
	BackendDisk  = "disk"
	BackendS3    = "s3"
	BackendMinio = "minio"
)

// Config holds application level configuration loaded from environment variables
// and an optional config file.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	MySQL   MySQLConfig   `mapstructure:"mysql"`
	Redis   RedisConfig   `mapstructure:"redis"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Storage StorageConfig `mapstructure:"storage"`
	S3      S3Config      `mapstructure:"s3"`
	Minio   MinioConfig   `mapstructure:"minio"`
	NATS    NATSConfig    `mapstructure:"nats"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Swagger SwaggerConfig `mapstructure:"swagger"`
}

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	CookieSecure   bool          `mapstructure:"cookie_secure"`
	BodyLimit      string        `mapstructure:"body_limit"`
	ShutdownGrace  time.Duration `mapstructure:"shutdown_grace"`
}

type StoreConfig struct {
	Driver  string `mapstructure:"driver"`
	ResetDB bool   `mapstructure:"reset_db"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	PlaceTTL time.Duration `mapstructure:"place_ttl"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type StorageConfig struct {
	Backend      string `mapstructure:"backend"`
	Dir          string `mapstructure:"dir"`
	PublicPrefix string `mapstructure:"public_prefix"`
	MaxLinkBytes int64  `mapstructure:"max_link_bytes"`
}

type S3Config struct {
	Region       string `mapstructure:"region"`
	Bucket       string `mapstructure:"bucket"`
	Endpoint     string `mapstructure:"endpoint"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type NATSConfig struct {
	URL           string `mapstructure:"url"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type SwaggerConfig struct {
	Host string `mapstructure:"host"`
}

var defaults = map[string]any{
	"server.port":            "3030",
	"server.allowed_origins": []string{"http://localhost:5173"},
	"server.cookie_secure":   false,
	"server.body_limit":      "20M",
	"server.shutdown_grace":  10 * time.Second,

	"store.driver":   DriverMongo,
	"store.reset_db": false,
	"mongo.uri":      "mongodb://localhost:27017",
	"mongo.database": "easytostay",
	"mysql.dsn":      "user:password@tcp(localhost:3306)/easytostay?charset=utf8mb4&parseTime=True&loc=Local",

	"redis.addr":      "",
	"redis.password":  "",
	"redis.db":        0,
	"redis.place_ttl": 5 * time.Minute,

	"jwt.secret": "",
	"jwt.ttl":    7 * 24 * time.Hour,

	"auth.bcrypt_cost": 10,

	"storage.backend":        BackendDisk,
	"storage.dir":            "uploads",
	"storage.public_prefix":  "/uploads",
	"storage.max_link_bytes": int64(10 << 20),

	"s3.region":         "us-east-1",
	"s3.bucket":         "easytostay-uploads",
	"s3.endpoint":       "",
	"s3.access_key":     "",
	"s3.secret_key":     "",
	"s3.use_path_style": false,

	"minio.endpoint":   "localhost:9000",
	"minio.access_key": "minioadmin",
	"minio.secret_key": "minioadmin",
	"minio.bucket":     "easytostay-uploads",
	"minio.use_ssl":    false,

	"nats.url":            "",
	"nats.subject_prefix": "easytostay",

	"log.level":  "info",
	"log.format": "json",

	"metrics.enabled": true,
	"swagger.host":    "",
}

// Load builds Config from defaults, the optional file named by CONFIG_FILE, and
// environment variables (SERVER_PORT, JWT_SECRET, MONGO_URI, ...).
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Legacy names used by the original deployment.
	_ = v.BindEnv("store.reset_db", "RESET_DB")
	_ = v.BindEnv("store.driver", "STORE_DRIVER")
	_ = v.BindEnv("swagger.host", "SWAGGER_HOST")

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Comma separated origins from the environment arrive as a single element.
	cfg.Server.AllowedOrigins = splitList(cfg.Server.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMongo, DriverMySQL:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch c.Storage.Backend {
	case BackendDisk, BackendS3, BackendMinio:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch strings.TrimSpace(c.JWT.Secret) {
	case "":
		return fmt.Errorf("jwt secret must be set (JWT_SECRET)")
	case "change-me":
		return fmt.Errorf("jwt secret %q is a placeholder, set JWT_SECRET", c.JWT.Secret)
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive, got %s", c.JWT.TTL)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
