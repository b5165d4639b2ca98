package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Settings is the typed view of the environment used to boot the service.
type Settings struct {
	Port         string
	DatabaseURL  string
	DatabaseName string
	RabbitMQURL  string
	LogLevel     string
	LogFormat    string

	// PublishNotifications turns post.published events off without unsetting RABBITMQ_URL.
	PublishNotifications bool

	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
	IdleTimeoutSeconds  int

	// DatabaseURLSet reports whether DATABASE_URL was provided rather than defaulted.
	DatabaseURLSet bool
}

// New loads an optional .env file and snapshots the process environment.
func New() map[string]string {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// Load builds Settings from the environment.
func Load() Settings {
	return FromMap(New())
}

func FromMap(c map[string]string) Settings {
	_, urlSet := c["DATABASE_URL"]
	return Settings{
		Port:                 GetString(c, "PORT", "8000"),
		DatabaseURL:          GetString(c, "DATABASE_URL", "mongodb://localhost:27017"),
		DatabaseName:         GetString(c, "DATABASE_NAME", "blog"),
		RabbitMQURL:          GetString(c, "RABBITMQ_URL", ""),
		LogLevel:             strings.ToLower(GetString(c, "LOG_LEVEL", "info")),
		LogFormat:            strings.ToLower(GetString(c, "LOG_FORMAT", "json")),
		PublishNotifications: GetBool(c, "PUBLISH_NOTIFICATIONS", true),
		ReadTimeoutSeconds:   GetInt(c, "READ_TIMEOUT_SECONDS", 180),
		WriteTimeoutSeconds:  GetInt(c, "WRITE_TIMEOUT_SECONDS", 180),
		IdleTimeoutSeconds:   GetInt(c, "IDLE_TIMEOUT_SECONDS", 180),
		DatabaseURLSet:       urlSet && c["DATABASE_URL"] != "",
	}
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return asBool
}
