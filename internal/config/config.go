// Package config loads tool configuration from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-t2decrypt/pkg/crypto"
)

// EnvPrefix is prepended to environment overrides, e.g. T2DECRYPT_BATCH_WORKERS
const EnvPrefix = "T2DECRYPT"

// Config holds all tool configuration
type Config struct {
	Derivation DerivationConfig `mapstructure:"derivation"`
	Library    LibraryConfig    `mapstructure:"library"`
	Batch      BatchConfig      `mapstructure:"batch"`
}

// DerivationConfig holds the key derivation constants
type DerivationConfig struct {
	Passphrase string `mapstructure:"passphrase"`
	Salt       string `mapstructure:"salt"`
	Iterations int    `mapstructure:"iterations"`
	KeyLength  int    `mapstructure:"key_length"`
}

// LibraryConfig describes where encrypted containers live and where plaintext goes
type LibraryConfig struct {
	Path          string `mapstructure:"path"`
	Output        string `mapstructure:"output"`
	ContainerName string `mapstructure:"container_name"`
	BootchainsDir string `mapstructure:"bootchains_dir"`
	CompanionName string `mapstructure:"companion_name"`
}

// BatchConfig controls how a library is processed
type BatchConfig struct {
	Workers         int  `mapstructure:"workers"`
	ContinueOnError bool `mapstructure:"continue_on_error"`
	LaxPadding      bool `mapstructure:"lax_padding"`
	Overwrite       bool `mapstructure:"overwrite"`
}

// MaxWorkers bounds the decryption pool size
const MaxWorkers = 64

// Load loads configuration from configFile, or from the default search paths
// when configFile is empty. A missing file in the search paths is not an error.
func Load(configFile string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), configFile)
}

// LoadFs is Load against an arbitrary filesystem
func LoadFs(fs afero.Fs, configFile string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("t2decrypt")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.t2decrypt")
		v.AddConfigPath("/etc/t2decrypt")
	}

	setDefaults(v)

	// Allow environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("derivation.passphrase", "T2BOYSSNCHANGER")
	v.SetDefault("derivation.salt", "ECEJWQXAIFQGCI")
	v.SetDefault("derivation.iterations", crypto.DefaultIterations)
	v.SetDefault("derivation.key_length", crypto.KeySize)

	v.SetDefault("library.path", "./Resources/RES/LIBRARY")
	v.SetDefault("library.output", "./Decrypted")
	v.SetDefault("library.container_name", "boot.img4")
	v.SetDefault("library.bootchains_dir", "bootchains")
	v.SetDefault("library.companion_name", "diags")

	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.continue_on_error", false)
	v.SetDefault("batch.lax_padding", false)
	v.SetDefault("batch.overwrite", true)
}

// Validate checks the configuration for values the decryptor cannot use
func (c *Config) Validate() error {
	if c.Derivation.Passphrase == "" {
		return errors.New("derivation.passphrase is required")
	}
	if c.Derivation.Salt == "" {
		return errors.New("derivation.salt is required")
	}
	if c.Derivation.Iterations <= 0 {
		return fmt.Errorf("derivation.iterations must be positive, got %d", c.Derivation.Iterations)
	}
	if c.Derivation.KeyLength != crypto.KeySize {
		return fmt.Errorf("derivation.key_length must be %d for AES-256, got %d", crypto.KeySize, c.Derivation.KeyLength)
	}

	if c.Library.ContainerName == "" || c.Library.BootchainsDir == "" || c.Library.CompanionName == "" {
		return errors.New("library container, bootchains and companion names are required")
	}

	if c.Batch.Workers < 1 || c.Batch.Workers > MaxWorkers {
		return fmt.Errorf("batch.workers must be between 1 and %d, got %d", MaxWorkers, c.Batch.Workers)
	}

	return nil
}

// DerivationParameters converts the derivation section for the key deriver
func (c *Config) DerivationParameters() crypto.DerivationParameters {
	return crypto.DerivationParameters{
		Passphrase: []byte(c.Derivation.Passphrase),
		Salt:       []byte(c.Derivation.Salt),
		Iterations: c.Derivation.Iterations,
		KeyLength:  c.Derivation.KeyLength,
	}
}
