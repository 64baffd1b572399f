package masterbatch

import (
	"fmt"

	"github.com/joeshaw/envdecode"
)

// StoreConfig selects and locates the recipe storage backend.
type StoreConfig struct {
	Driver       string `env:"MASTERBATCH_STORE_DRIVER,default=file"`
	FilePath     string `env:"MASTERBATCH_RECIPES_PATH,default=recipes.json"`
	SQLitePath   string `env:"MASTERBATCH_SQLITE_PATH,default=masterbatch.db"`
	SQLiteBucket string `env:"MASTERBATCH_SQLITE_BUCKET,default=recipes"`
	S3Bucket     string `env:"MASTERBATCH_S3_BUCKET"`
	S3Key        string `env:"MASTERBATCH_S3_KEY,default=recipes.json"`
	S3Region     string `env:"MASTERBATCH_S3_REGION"`
	S3Endpoint   string `env:"MASTERBATCH_S3_ENDPOINT"`
	S3PathStyle  bool   `env:"MASTERBATCH_S3_PATH_STYLE,default=false"`
}

type CalculatorConfig struct {
	Tolerance   float64 `env:"MASTERBATCH_TOLERANCE,default=0.1"`
	DefaultBase string  `env:"MASTERBATCH_DEFAULT_BASE,default=Base PLA"`
	ActionLog   string  `env:"MASTERBATCH_ACTION_LOG"`
}

type NotifyConfig struct {
	SlackWebhookURL string `env:"MASTERBATCH_SLACK_WEBHOOK_URL"`
	SlackChannel    string `env:"MASTERBATCH_SLACK_CHANNEL"`
}

// Config is everything a launcher needs, decoded from the environment.
type Config struct {
	Store      StoreConfig
	Calculator CalculatorConfig
	Notify     NotifyConfig
}

// LoadConfig decodes Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
