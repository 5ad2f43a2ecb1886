package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Gemini   GeminiConfig
	Speech   SpeechConfig
	OTEL     OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// StorageConfig holds object-storage configuration.
// Provider selects the backing store: "cloudinary", "s3", or "mock".
type StorageConfig struct {
	Provider string

	CloudName string
	APIKey    string
	APISecret string

	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
}

// AuthConfig holds identity-provider and session configuration.
type AuthConfig struct {
	Provider       string
	GoogleClientID string
	SessionSecret  string
	SessionTTLMin  int
}

// GeminiConfig holds Gemini configuration
type GeminiConfig struct {
	APIKey         string
	Model          string
	RateLimitRPM   int
	RateLimitBurst int
}

// SpeechConfig holds speech-synthesis configuration.
// Provider is "http" for a real synthesizer endpoint or "noop" for headless runs.
type SpeechConfig struct {
	Provider     string
	Endpoint     string
	DefaultVoice string
	Voices       string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "swasthya_sahayak"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Provider:    getEnv("STORAGE_PROVIDER", "cloudinary"),
			CloudName:   getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:      getEnv("CLOUDINARY_API_KEY", ""),
			APISecret:   getEnv("CLOUDINARY_API_SECRET", ""),
			S3Region:    getEnv("S3_REGION", ""),
			S3Bucket:    getEnv("S3_BUCKET", ""),
			S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey: getEnv("S3_SECRET_KEY", ""),
			S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		},
		Auth: AuthConfig{
			Provider:       getEnv("AUTH_PROVIDER", "google"),
			GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
			SessionSecret:  getEnv("SESSION_SECRET", ""),
			SessionTTLMin:  getEnvAsInt("SESSION_TTL_MINUTES", 720),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			RateLimitRPM:   getEnvAsInt("GEMINI_RATE_LIMIT_RPM", 60),
			RateLimitBurst: getEnvAsInt("GEMINI_RATE_LIMIT_BURST", 5),
		},
		Speech: SpeechConfig{
			Provider:     getEnv("SPEECH_PROVIDER", "noop"),
			Endpoint:     getEnv("SPEECH_ENDPOINT", ""),
			DefaultVoice: getEnv("SPEECH_DEFAULT_VOICE", ""),
			Voices:       getEnv("SPEECH_VOICES", ""),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "swasthya-sahayak"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// Validate runs the per-concern checks so a misconfigured process
// refuses to start instead of failing on first use.
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Gemini.Validate(); err != nil {
		return err
	}
	return c.Speech.Validate()
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks that the selected storage provider has its secrets set.
// Missing values fail at wiring time rather than on the first upload.
func (c *StorageConfig) Validate() error {
	switch c.Provider {
	case "cloudinary":
		if c.CloudName == "" || c.APIKey == "" || c.APISecret == "" {
			return fmt.Errorf("cloudinary storage requires CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
		}
	case "s3":
		if c.S3Region == "" || c.S3Bucket == "" || c.S3AccessKey == "" || c.S3SecretKey == "" {
			return fmt.Errorf("s3 storage requires S3_REGION, S3_BUCKET, S3_ACCESS_KEY and S3_SECRET_KEY")
		}
	case "mock":
		// No secrets needed.
	default:
		return fmt.Errorf("unknown storage provider %q", c.Provider)
	}
	return nil
}

// Validate checks that the auth configuration is usable.
func (c *AuthConfig) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.Provider == "google" && c.GoogleClientID == "" {
		return fmt.Errorf("google auth requires GOOGLE_CLIENT_ID")
	}
	return nil
}

// Validate checks that the Gemini API key is set.
func (c *GeminiConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// Validate checks that a real synthesizer has an endpoint configured.
func (c *SpeechConfig) Validate() error {
	if c.Provider == "http" && c.Endpoint == "" {
		return fmt.Errorf("http speech synthesis requires SPEECH_ENDPOINT")
	}
	return nil
}

// VoiceMap parses the SPEECH_VOICES value ("hi=voice-a,en=voice-b")
// into a language-prefix to voice-name map.
func (c *SpeechConfig) VoiceMap() map[string]string {
	voices := make(map[string]string)
	for _, pair := range strings.Split(c.Voices, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		voices[parts[0]] = parts[1]
	}
	return voices
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
