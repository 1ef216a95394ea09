package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/enumnames"
	"hermannm.dev/wrap"
)

type Config struct {
	IsProduction bool     `env:"PRODUCTION"       envDefault:"false"`
	LogLevel     LogLevel `env:"LOG_LEVEL"        envDefault:"INFO"`
	DataSource   string   `env:"DATA_SOURCE_PATH" envDefault:"data.xlsx"`
	API          API
}

type API struct {
	Port string `env:"API_PORT"`
}

type LogLevel int8

const (
	LogLevelDebug LogLevel = iota + 1
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var logLevelNames = enumnames.NewMap(map[LogLevel]string{
	LogLevelDebug: "DEBUG",
	LogLevelInfo:  "INFO",
	LogLevelWarn:  "WARN",
	LogLevelError: "ERROR",
})

func (level LogLevel) String() string {
	return logLevelNames.GetNameOrFallback(level, "INVALID_LOG_LEVEL")
}

// Used by env to parse LOG_LEVEL.
func (level *LogLevel) UnmarshalText(text []byte) error {
	return logLevelNames.UnmarshalFromNameJSON([]byte(strconv.Quote(string(text))), level)
}

func (level LogLevel) Slog() slog.Level {
	switch level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Reads config from the environment. A .env file in the working directory is loaded first if
// present; it is optional, so that production can set variables directly.
func ReadFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	parseOptions := env.Options{RequiredIfNoDef: true}

	var config Config
	if err := env.ParseWithOptions(&config, parseOptions); err != nil {
		return Config{}, wrap.Error(err, "invalid environment variables")
	}

	if config.DataSource == "" {
		return Config{}, errors.New("DATA_SOURCE_PATH must not be blank")
	}

	return config, nil
}
