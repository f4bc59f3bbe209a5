package env

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	MemoryBackend  = "memory"
	MongoDBBackend = "mongodb"
)

type Env struct {
	Server  ServerConfig
	Store   StoreConfig
	MongoDB MongoDBConfig
	Log     LogConfig
	Metrics MetricsConfig
}

type ServerConfig struct {
	Host    string
	Port    int
	GinMode string
}

func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type StoreConfig struct {
	Backend string
}

type MongoDBConfig struct {
	URI string
	DB  string
}

type LogConfig struct {
	Level string
}

type MetricsConfig struct {
	Enabled bool
}

// Load reads the configuration from the environment after applying the given dotenv
// files. Missing files are skipped; variables already set in the environment win.
func Load(files ...string) (*Env, error) {

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	serverPort, err := getPort("SERVER_PORT", 8000)
	if err != nil {
		return nil, err
	}

	metricsEnabled, err := getBool("METRICS_ENABLED", true)
	if err != nil {
		return nil, err
	}

	backend := strings.ToLower(get("STORE_BACKEND", MemoryBackend))
	if backend != MemoryBackend && backend != MongoDBBackend {
		return nil, fmt.Errorf("STORE_BACKEND: unsupported backend %q", backend)
	}

	return &Env{
		Server: ServerConfig{
			Host:    get("SERVER_HOST", "0.0.0.0"),
			Port:    serverPort,
			GinMode: get("GIN_MODE", "release"),
		},
		Store: StoreConfig{
			Backend: backend,
		},
		MongoDB: MongoDBConfig{
			URI: get("MONGODB_URI", "mongodb://localhost:27017"),
			DB:  get("MONGODB_NAME", "book_catalog"),
		},
		Log: LogConfig{
			Level: get("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Enabled: metricsEnabled,
		},
	}, nil
}

func get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getPort(key string, def int) (int, error) {

	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}

	if parsed < 1 || parsed > 65535 {
		return 0, fmt.Errorf("%s: %d is out of port range", key, parsed)
	}

	return parsed, nil
}

func getBool(key string, def bool) (bool, error) {

	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}

	return parsed, nil
}
