package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

type Config struct {
	Profile        string          `mapstructure:"profile"`
	Region         string          `mapstructure:"region"`
	Endpoint       string          `mapstructure:"endpoint"`
	TableLogicalID string          `mapstructure:"table_logical_id"`
	VerifyTimeout  time.Duration   `mapstructure:"verify_timeout"`
	Journal        bool            `mapstructure:"journal"`
	AccessKeyID    string          `mapstructure:"access_key_id"`
	SecretKey      EncryptedString `mapstructure:"secret_access_key"`
}

// Keys settable through `ddns config set`. Credentials are managed by login.
var Keys = []string{"profile", "region", "endpoint", "table_logical_id", "verify_timeout", "journal"}

var ErrUnknownKey = errors.New("unknown configuration key")

var Cfg = defaults()

func defaults() Config {
	return Config{Journal: true}
}

// HasStaticCredentials reports whether login stored an access key pair.
func (c Config) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretKey != ""
}

func initViper() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	viper.SetConfigName(".ddns-cli")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)

	viper.SetEnvPrefix("DDNS")
	viper.AutomaticEnv()
	for _, key := range append(Keys, "access_key_id", "secret_access_key") {
		_ = viper.BindEnv(key)
	}
	viper.SetDefault("journal", true)

	return nil
}

func decodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
}

func LoadConfig() error {
	if err := initViper(); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	cfg := defaults()
	if err := viper.Unmarshal(&cfg, decodeHook()); err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

func SaveConfig() error {
	if err := initViper(); err != nil {
		return err
	}

	viper.Set("profile", Cfg.Profile)
	viper.Set("region", Cfg.Region)
	viper.Set("endpoint", Cfg.Endpoint)
	viper.Set("table_logical_id", Cfg.TableLogicalID)
	viper.Set("verify_timeout", Cfg.VerifyTimeout.String())
	viper.Set("journal", Cfg.Journal)
	viper.Set("access_key_id", Cfg.AccessKeyID)
	viper.Set("secret_access_key", Cfg.SecretKey)

	if err := viper.WriteConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return viper.SafeWriteConfig()
		}
		return err
	}
	return nil
}

// Set assigns the string value to key on c.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(key) {
	case "profile":
		c.Profile = value
	case "region":
		c.Region = value
	case "endpoint":
		c.Endpoint = value
	case "table_logical_id":
		c.TableLogicalID = value
	case "verify_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("verify_timeout must be a duration such as 10s: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("verify_timeout must be positive, got %s", d)
		}
		c.VerifyTimeout = d
	case "journal":
		switch strings.ToLower(value) {
		case "on":
			c.Journal = true
		case "off":
			c.Journal = false
		default:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("journal must be true or false")
			}
			c.Journal = b
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	return nil
}

// Get returns the value of key on c formatted for display.
func (c Config) Get(key string) (string, error) {
	switch strings.ToLower(key) {
	case "profile":
		return c.Profile, nil
	case "region":
		return c.Region, nil
	case "endpoint":
		return c.Endpoint, nil
	case "table_logical_id":
		return c.TableLogicalID, nil
	case "verify_timeout":
		if c.VerifyTimeout == 0 {
			return "", nil
		}
		return c.VerifyTimeout.String(), nil
	case "journal":
		return strconv.FormatBool(c.Journal), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
}
