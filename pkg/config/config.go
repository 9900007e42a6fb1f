package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	env "github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort         int    `env:"HTTP_PORT" envDefault:"8080"`
	PostgresDSN      string `env:"POSTGRES_DSN"`
	PostgresMaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`

	Matcher MatcherConfig
	Door    DoorConfig

	// VectorKey is the base64-encoded 256-bit key protecting biometric
	// templates at rest. Loaded once at startup; its absence is fatal.
	// Never logged.
	VectorKey string `env:"VECTOR_ENCRYPTION_KEY,unset"`

	// AuthPolicy selects the area-authorization rule: "same-area"
	// (employee's assigned area must equal the requested area) or
	// "level" (employee access level must cover the area's level).
	AuthPolicy string `env:"AUTH_POLICY" envDefault:"same-area"`

	// JWTPublicKey is the PEM RSA public key used to verify operator
	// tokens on administrative endpoints. Tokens are issued elsewhere;
	// this service only verifies.
	JWTPublicKey string `env:"JWT_PUBLIC_KEY"`

	KafkaBrokers       []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaSecurityTopic string   `env:"KAFKA_SECURITY_TOPIC" envDefault:"facegate.security"`

	// TemplateAuditInterval sets how often the background sweep opens
	// every stored template to detect corruption early.
	TemplateAuditInterval time.Duration `env:"TEMPLATE_AUDIT_INTERVAL" envDefault:"1h"`
}

type MatcherConfig struct {
	// Threshold is the minimum confidence for a positive identification.
	Threshold float64 `env:"MATCH_THRESHOLD" envDefault:"0.6"`

	// ModelsDir holds the dlib model files for the face recognizer.
	ModelsDir string `env:"FACE_MODELS_DIR" envDefault:"models"`

	// ExtractTimeout bounds a single embedding extraction; hitting it
	// resolves the attempt as an ExtractionTimeout denial, never a hang.
	ExtractTimeout time.Duration `env:"EXTRACT_TIMEOUT" envDefault:"5s"`
}

type DoorConfig struct {
	ControllerURL string        `env:"DOOR_CONTROLLER_URL"`
	Timeout       time.Duration `env:"DOOR_TIMEOUT" envDefault:"3s"`
	RetryAttempts int           `env:"DOOR_RETRY_ATTEMPTS" envDefault:"3"`
}

func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = env.Parse(&c)
	if err != nil {
		return Config{}, err
	}

	if c.VectorKey == "" {
		return Config{}, errors.New("VECTOR_ENCRYPTION_KEY is required")
	}

	key, err := base64.StdEncoding.DecodeString(c.VectorKey)
	if err != nil {
		return Config{}, fmt.Errorf("VECTOR_ENCRYPTION_KEY is not valid base64: %w", err)
	}

	if len(key) != 32 {
		return Config{}, fmt.Errorf("VECTOR_ENCRYPTION_KEY must decode to 32 bytes, got %d", len(key))
	}

	if c.AuthPolicy != "same-area" && c.AuthPolicy != "level" {
		return Config{}, fmt.Errorf("AUTH_POLICY must be \"same-area\" or \"level\", got %q", c.AuthPolicy)
	}

	if c.Matcher.Threshold <= 0 || c.Matcher.Threshold > 1 {
		return Config{}, fmt.Errorf("MATCH_THRESHOLD must be in (0, 1], got %v", c.Matcher.Threshold)
	}

	return c, nil
}
