package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/statsfeed/internal/platform/logging"
)

// ErrMissingSetting is returned when a required variable is absent.
var ErrMissingSetting = errors.New("missing required setting")

// Config stores runtime configuration for the service and the fetch command.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level
	LogFormat          string

	StatsAPIKey        string
	StatsSecret        string
	StatsAPIHost       string
	StatsEPLEventsPath string
	StatsNFLEventsPath string
	StatsTimeout       time.Duration

	LookupWorkers int
	LookupMaxIDs  int

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	statsAPIKey, err := requireEnv("STATS_API_KEY")
	if err != nil {
		return Config{}, err
	}
	statsSecret, err := requireEnv("STATS_SECRET")
	if err != nil {
		return Config{}, err
	}
	statsAPIHost, err := requireEnv("STATS_API_HOST")
	if err != nil {
		return Config{}, err
	}
	if !strings.HasPrefix(statsAPIHost, "http://") && !strings.HasPrefix(statsAPIHost, "https://") {
		return Config{}, fmt.Errorf("STATS_API_HOST must start with http:// or https://, got %q", statsAPIHost)
	}
	statsEPLEventsPath, err := requireEnv("STATS_EPL_EVENTS_PATH")
	if err != nil {
		return Config{}, err
	}
	statsNFLEventsPath, err := requireEnv("STATS_NFL_EVENTS_PATH")
	if err != nil {
		return Config{}, err
	}

	statsTimeout, err := time.ParseDuration(getEnv("STATS_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_TIMEOUT: %w", err)
	}
	if statsTimeout <= 0 {
		return Config{}, fmt.Errorf("STATS_TIMEOUT must be > 0")
	}

	lookupWorkers, err := getEnvAsInt("LOOKUP_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse LOOKUP_WORKERS: %w", err)
	}
	if lookupWorkers < 1 {
		return Config{}, fmt.Errorf("LOOKUP_WORKERS must be >= 1")
	}
	lookupMaxIDs, err := getEnvAsInt("LOOKUP_MAX_IDS", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse LOOKUP_MAX_IDS: %w", err)
	}
	if lookupMaxIDs < 1 {
		return Config{}, fmt.Errorf("LOOKUP_MAX_IDS must be >= 1")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	logFormat := logging.FormatJSON
	if appEnv == EnvDev {
		logFormat = logging.FormatConsole
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            getEnv("APP_SERVICE_NAME", "statsfeed-api"),
		ServiceVersion:         getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:               getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:            readTimeout,
		WriteTimeout:           writeTimeout,
		CORSAllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:               logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:              strings.ToLower(getEnv("APP_LOG_FORMAT", logFormat)),
		StatsAPIKey:            statsAPIKey,
		StatsSecret:            statsSecret,
		StatsAPIHost:           strings.TrimRight(statsAPIHost, "/"),
		StatsEPLEventsPath:     statsEPLEventsPath,
		StatsNFLEventsPath:     statsNFLEventsPath,
		StatsTimeout:           statsTimeout,
		LookupWorkers:          lookupWorkers,
		LookupMaxIDs:           lookupMaxIDs,
		UptraceEnabled:         uptraceEnabled,
		UptraceDSN:             uptraceDSN,
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func requireEnv(key string) (string, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingSetting, key)
	}
	return value, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
