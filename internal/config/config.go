package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type CORS struct {
	AllowOrigins []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	MaxAge       int      `yaml:"max_age"       mapstructure:"max_age"`
}

type Authn struct {
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

// AudienceRule maps a bucket-name glob to a trust domain.
type AudienceRule struct {
	Pattern  string `yaml:"pattern"  mapstructure:"pattern"`
	Audience string `yaml:"audience" mapstructure:"audience"`
}

// Provider describes the authorization provider for one audience.
type Provider struct {
	Type     string `yaml:"type"      mapstructure:"type"` // "openfga" or "mock"
	APIURL   string `yaml:"api_url"   mapstructure:"api_url"`
	StoreID  string `yaml:"store_id"  mapstructure:"store_id"`
	APIToken string `yaml:"api_token" mapstructure:"api_token"`
	ModelID  string `yaml:"model_id"  mapstructure:"model_id"`
}

type S3 struct {
	Endpoint  string        `yaml:"endpoint"   mapstructure:"endpoint"`
	Region    string        `yaml:"region"     mapstructure:"region"`
	AccessKey string        `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string        `yaml:"secret_key" mapstructure:"secret_key"`
	PathStyle bool          `yaml:"path_style" mapstructure:"path_style"`
	Expiry    time.Duration `yaml:"expiry"     mapstructure:"expiry"`
}

type Config struct {
	Listen    string              `yaml:"listen"    mapstructure:"listen"`
	CORS      CORS                `yaml:"cors"      mapstructure:"cors"`
	Authn     Authn               `yaml:"authn"     mapstructure:"authn"`
	Audiences []AudienceRule      `yaml:"audiences" mapstructure:"audiences"`
	Providers map[string]Provider `yaml:"providers" mapstructure:"providers"`
	S3        S3                  `yaml:"s3"        mapstructure:"s3"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stowgate"), nil
}

// Load reads the config file at path (default
// $HOME/.stowgate/config.yaml), applies STOWGATE_* env overrides, and
// falls back to defaults when the file is absent.
func Load(path string) (*Config, error) {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("listen", ":8080")
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.max_age", 300)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.expiry", "15m")

	// Env overrides: STOWGATE_LISTEN, STOWGATE_S3_REGION, etc.
	v.SetEnvPrefix("STOWGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Read file if it exists, otherwise return defaults without error
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
