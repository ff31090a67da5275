package config

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/naoina/toml"
	"github.com/optable/hashviz/internal/hash"
	"github.com/optable/hashviz/pkg/eventlog"
	"github.com/optable/hashviz/pkg/hashtable"
)

// File is the on-disk shape of the configuration
//
//  hash = "charsum"
//  salt = "00112233..."  # 32 bytes, hex encoded
//  rehash_delay = "1.5s"
//  log_capacity = 50
//  verbosity = 1
//  metrics = true
type File struct {
	Hash        string `toml:"hash"`
	Salt        string `toml:"salt"`
	RehashDelay string `toml:"rehash_delay"`
	LogCapacity int    `toml:"log_capacity"`
	Verbosity   int    `toml:"verbosity"`
	Metrics     bool   `toml:"metrics"`
}

// Config is the validated configuration of a visualizer session
type Config struct {
	HashType    int
	Salt        []byte
	RehashDelay time.Duration
	LogCapacity int
	Verbosity   int
	Metrics     bool
}

// Default mirrors the interactive visualizer: character sum hash,
// a 1.5s pause on rehash and a 50 events log
func Default() Config {
	return Config{
		HashType:    hash.CharSum,
		RehashDelay: hashtable.DefaultRehashDelay,
		LogCapacity: eventlog.DefaultCapacity,
	}
}

// Load reads a TOML file over the defaults
func Load(path string) (Config, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes TOML bytes over the defaults. Keys left out keep
// their default value.
func Parse(b []byte) (Config, error) {
	var f File
	if err := toml.Unmarshal(b, &f); err != nil {
		return Config{}, fmt.Errorf("could not decode config: %w", err)
	}

	c := Default()
	if f.Hash != "" {
		if err := c.SetHash(f.Hash); err != nil {
			return Config{}, err
		}
	}
	if f.Salt != "" {
		if err := c.SetSalt(f.Salt); err != nil {
			return Config{}, err
		}
	}
	if f.RehashDelay != "" {
		d, err := time.ParseDuration(f.RehashDelay)
		if err != nil {
			return Config{}, fmt.Errorf("invalid rehash_delay: %w", err)
		}
		c.RehashDelay = d
	}
	if f.LogCapacity != 0 {
		c.LogCapacity = f.LogCapacity
	}
	c.Verbosity = f.Verbosity
	c.Metrics = f.Metrics

	return c, c.Validate()
}

// SetHash selects the hasher by name
func (c *Config) SetHash(name string) error {
	t, err := hash.Parse(name)
	if err != nil {
		return err
	}
	c.HashType = t
	return nil
}

// SetSalt decodes a hex encoded salt
func (c *Config) SetSalt(s string) error {
	salt, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid salt: %w", err)
	}
	c.Salt = salt
	return nil
}

// Validate checks the fields that cannot be checked while decoding
func (c Config) Validate() error {
	if c.RehashDelay < 0 {
		return fmt.Errorf("rehash delay must not be negative, got %v", c.RehashDelay)
	}
	if c.LogCapacity < 1 {
		return fmt.Errorf("log capacity must be positive, got %d", c.LogCapacity)
	}
	if c.Verbosity < 0 || c.Verbosity > 2 {
		return fmt.Errorf("verbosity must be 0, 1 or 2, got %d", c.Verbosity)
	}
	return nil
}

// Hasher builds the configured hasher
func (c Config) Hasher() (hash.Hasher, error) {
	return hash.New(c.HashType, c.Salt)
}

// Options turns the configuration into hash table options
func (c Config) Options() ([]hashtable.Option, error) {
	h, err := c.Hasher()
	if err != nil {
		return nil, err
	}

	return []hashtable.Option{
		hashtable.WithHasher(h),
		hashtable.WithLogCapacity(c.LogCapacity),
		hashtable.WithPacer(hashtable.Delay(c.RehashDelay)),
	}, nil
}
