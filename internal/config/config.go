package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type DB struct {
	DbHOST     string `env:"DB_HOST,default=localhost"`
	DbPORT     string `env:"DB_PORT,default=5432"`
	DbUSER     string `env:"DB_USER,default=postgres"`
	DbPASSWORD string `env:"DB_PASSWORD,default=password"`
	DbNAME     string `env:"DB_NAME,default=campdirectory"`
	DbSSLMODE  string `env:"DB_SSLMODE,default=disable"`
}

type MinIO struct {
	Endpoint   string `env:"MINIO_ENDPOINT,default=localhost:9000"`
	AccessKey  string `env:"MINIO_ACCESS_KEY,default=minioadmin"`
	SecretKey  string `env:"MINIO_SECRET_KEY,default=minioadmin"`
	BucketName string `env:"MINIO_BUCKET_NAME,default=photos"`
	UseSSL     bool   `env:"MINIO_USE_SSL,default=false"`
	Region     string `env:"MINIO_REGION,default=us-east-1"`
}

// Storage selects where listing photos are kept.
type Storage struct {
	Driver     string `env:"STORAGE_DRIVER,default=filesystem"`
	UploadPath string `env:"FILE_UPLOAD_PATH,default=./public/uploads"`
	PublicPath string `env:"FILE_PUBLIC_PATH,default=/uploads/"`
}

type SMTP struct {
	Host      string `env:"SMTP_HOST,default=localhost"`
	Port      int    `env:"SMTP_PORT,default=2525"`
	User      string `env:"SMTP_USER"`
	Password  string `env:"SMTP_PASSWORD"`
	FromName  string `env:"FROM_NAME,default=Campdirectory"`
	FromEmail string `env:"FROM_EMAIL,default=noreply@campdirectory.io"`
}

type Geocoder struct {
	APIKey string `env:"GEOCODER_API_KEY"`
	URL    string `env:"GEOCODER_URL,default=https://www.mapquestapi.com/geocoding/v1/address"`
}

type Config struct {
	ServerPort          int           `env:"SERVER_PORT,default=5000"`
	Environment         string        `env:"ENVIRONMENT,default=development"`
	LogLevel            string        `env:"LOG_LEVEL,default=info"`
	JWTSecretKey        string        `env:"JWT_SECRET_KEY"`
	JWTExpire           time.Duration `env:"JWT_EXPIRE,default=720h"`
	JWTCookieExpireDays int           `env:"JWT_COOKIE_EXPIRE,default=30"`
	ResetTokenDuration  time.Duration `env:"RESET_TOKEN_DURATION,default=10m"`
	MaxUploadSize       int64         `env:"MAX_FILE_UPLOAD,default=1000000"`
	DB                  DB
	MinIO               MinIO
	Storage             Storage
	SMTP                SMTP
	Geocoder            Geocoder
}

// IsProduction reports whether cookies must be marked secure.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CookieExpire is the lifetime of the token cookie.
func (c *Config) CookieExpire() time.Duration {
	return time.Duration(c.JWTCookieExpireDays) * 24 * time.Hour
}

// DSN builds the lib/pq connection string.
func (d DB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.DbHOST,
		d.DbPORT,
		d.DbUSER,
		d.DbPASSWORD,
		d.DbNAME,
		d.DbSSLMODE,
	)
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn(".env file not found, using environment variables")
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = 1000000
	}

	return &cfg, nil
}
