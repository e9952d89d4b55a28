package config

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"
)

var (
	GlobalConfig *Config
)

type Config struct {
	Port       int    `json:"port"`
	APIPort    int    `json:"api_port"`
	LogLevel   string `json:"logLevel"`
	BufferSize int    `json:"buffer_size"`
}

const (
	DefaultPort       = 8554
	DefaultAPIPort    = 8080
	DefaultLogLevel   = "info"
	DefaultBufferSize = 4096
)

func init() {
	GlobalConfig = LoadConfig("config.json")
}

// LoadConfig reads the JSON config file at path. A missing file is not an
// error: the server runs with the fixed defaults.
func LoadConfig(path string) *Config {
	config := &Config{}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Infof("config file %s not found, using defaults", path)
		config.applyDefaults()
		return config
	}

	if err := json.Unmarshal(file, config); err != nil {
		log.Fatal("Failed to parse config file:", err)
		return nil
	}
	config.applyDefaults()

	log.Infof("Port: %v", config.Port)
	log.Infof("APIPort: %v", config.APIPort)
	log.Infof("LogLevel: %v", config.LogLevel)
	return config
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.APIPort == 0 {
		c.APIPort = DefaultAPIPort
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.BufferSize == 0 {
		c.BufferSize = DefaultBufferSize
	}
}
