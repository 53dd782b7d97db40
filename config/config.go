package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"coinrush/protocol"
)

type Config struct {
	Port          string
	FloorInterval time.Duration
	Floor         int
	StaticDir     string
	DefaultRoom   string
	Codec         protocol.Codec // wire format when a client negotiates none
}

// InitConfig loads a .env file from the working directory when there is one.
// Values already set in the environment win.
func InitConfig(files ...string) {
	err := godotenv.Load(files...)
	switch {
	case err == nil:
		log.Println("Successfully loaded environment variables")
	case errors.Is(err, fs.ErrNotExist):
		log.Println("No .env file found, using process environment")
	default:
		log.Printf("Error loading environment variables: %v", err)
	}
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}

	return b, nil

}

// Load reads the server settings, falling back to defaults for anything
// unset. Set but unparsable numbers are errors.
func Load() (Config, error) {
	cfg := Config{
		Port:          lookup("PORT", "3000"),
		StaticDir:     lookup("STATIC_DIR", "public"),
		DefaultRoom:   lookup("DEFAULT_ROOM", "main"),
		FloorInterval: 3000 * time.Millisecond,
		Floor:         5,
	}

	if v, err := GetEnvVariable("FLOOR_INTERVAL_MS"); err == nil {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return Config{}, fmt.Errorf("FLOOR_INTERVAL_MS must be a positive integer, got %q", v)
		}
		cfg.FloorInterval = time.Duration(ms) * time.Millisecond
	}
	if v, err := GetEnvVariable("COLLECTIBLE_FLOOR"); err == nil {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("COLLECTIBLE_FLOOR must be a positive integer, got %q", v)
		}
		cfg.Floor = n
	}
	name := lookup("WS_CODEC", protocol.JSON.Name())
	codec, ok := protocol.CodecNamed(name)
	if !ok {
		return Config{}, fmt.Errorf("WS_CODEC must be json or msgpack, got %q", name)
	}
	cfg.Codec = codec
	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return Config{}, fmt.Errorf("PORT must be a port number, got %q", cfg.Port)
	}
	return cfg, nil
}

// Addr is the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func lookup(key, def string) string {
	if v, err := GetEnvVariable(key); err == nil {
		return v
	}
	return def
}
