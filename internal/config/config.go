package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AWS struct {
		Region          string `mapstructure:"region"`
		AccessKeyID     string `mapstructure:"access_key_id"`
		SecretAccessKey string `mapstructure:"secret_access_key"`
	} `mapstructure:"aws"`

	Storage struct {
		Bucket string `mapstructure:"bucket"`
	} `mapstructure:"storage"`

	Transcribe struct {
		// LanguageOptions is the fixed candidate set offered to the service
		// for automatic language identification; the service picks one.
		LanguageOptions []string      `mapstructure:"language_options"`
		PollInterval    time.Duration `mapstructure:"poll_interval"`
		WaitTimeout     time.Duration `mapstructure:"wait_timeout"`
		// SettleDelay is the wait inserted after deleting a colliding job
		// before resubmitting under the same token.
		SettleDelay time.Duration `mapstructure:"settle_delay"`
	} `mapstructure:"transcribe"`

	Server struct {
		MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
	} `mapstructure:"server"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("aws.region", "eu-west-1")
	viper.SetDefault("storage.bucket", "media-labs-audio-transcribe")
	viper.SetDefault("transcribe.language_options", []string{"en-US", "uk-UA", "pl-PL", "de-DE", "fr-FR"})
	viper.SetDefault("transcribe.poll_interval", "5s")
	viper.SetDefault("transcribe.wait_timeout", "300s")
	viper.SetDefault("transcribe.settle_delay", "2s")
	viper.SetDefault("server.max_upload_bytes", 10*1024*1024)

	// Allow Viper to read environment variables. The AWS variables use their
	// conventional names so existing credentials setups keep working.
	viper.AutomaticEnv()
	viper.BindEnv("aws.region", "AWS_DEFAULT_REGION")
	viper.BindEnv("aws.access_key_id", "AWS_ACCESS_KEY_ID")
	viper.BindEnv("aws.secret_access_key", "AWS_SECRET_ACCESS_KEY")
	viper.BindEnv("storage.bucket", "BUCKET_NAME")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars carry it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
