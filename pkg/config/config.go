package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matst80/slask-table/pkg/common"
	"github.com/matst80/slask-table/pkg/logging"
)

type RedisConfig struct {
	Url      string `toml:"url"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// Seconds a cached /api/rows response is kept.
	TTL int `toml:"ttl"`
}

type RabbitConfig struct {
	Url     string `toml:"url"`
	Prefix  string `toml:"prefix"`
	Country string `toml:"country"`
}

type TimeoutSeconds struct {
	ReadHeader int `toml:"read-header"`
	Read       int `toml:"read"`
	Write      int `toml:"write"`
	Idle       int `toml:"idle"`
	Shutdown   int `toml:"shutdown"`
	Hook       int `toml:"hook"`
}

type Config struct {
	ListenAddress     string            `toml:"listen-address"`
	DebugAddress      string            `toml:"debug-address"`
	DataFile          string            `toml:"data-file"`
	StrictRangeBounds bool              `toml:"strict-range-bounds"`
	Log               logging.LogConfig `toml:"log"`
	Redis             RedisConfig       `toml:"redis"`
	Rabbit            RabbitConfig      `toml:"rabbit"`
	Timeouts          TimeoutSeconds    `toml:"timeouts"`
}

func Default() *Config {
	return &Config{
		ListenAddress: ":8080",
		DebugAddress:  ":8081",
		Log:           logging.DefaultLogConfig(),
		Redis:         RedisConfig{TTL: 60},
		Rabbit:        RabbitConfig{Prefix: "table", Country: "se"},
		Timeouts: TimeoutSeconds{
			ReadHeader: 5,
			Read:       15,
			Write:      30,
			Idle:       60,
			Shutdown:   15,
			Hook:       5,
		},
	}
}

// Load reads the optional TOML file and applies environment overrides on
// top. A missing file is only an error when a path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s: %w", path, err)
			}
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides values with the environment variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	str := func(curr *string, env string) {
		if v := getenv(env); v != "" {
			*curr = v
		}
	}
	str(&c.ListenAddress, "LISTEN_ADDRESS")
	str(&c.DebugAddress, "DEBUG_ADDRESS")
	str(&c.DataFile, "DATA_FILE")
	str(&c.Redis.Url, "REDIS_URL")
	str(&c.Redis.Password, "REDIS_PASSWORD")
	str(&c.Rabbit.Url, "RABBIT_URL")
	str(&c.Log.Level, "LOG_LEVEL")
	str(&c.Log.Format, "LOG_FORMAT")
	str(&c.Log.Filename, "LOG_FILE")
	if v := getenv("STRICT_RANGE_BOUNDS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.StrictRangeBounds = b
		}
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// TimeoutConfig converts the configured seconds; the *_TIMEOUT environment
// variables still take precedence.
func (c *Config) TimeoutConfig() common.TimeoutConfig {
	return common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: seconds(c.Timeouts.ReadHeader),
		Read:       seconds(c.Timeouts.Read),
		Write:      seconds(c.Timeouts.Write),
		Idle:       seconds(c.Timeouts.Idle),
		Shutdown:   seconds(c.Timeouts.Shutdown),
		Hook:       seconds(c.Timeouts.Hook),
	})
}

func (c *Config) CacheTTL() time.Duration {
	return seconds(c.Redis.TTL)
}
