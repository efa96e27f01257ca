package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	PDF      PDFConfig      `mapstructure:"pdf"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// StorageConfig holds uploaded file storage configuration
type StorageConfig struct {
	UploadDir    string `mapstructure:"upload_dir"`
	MaxImageSize int64  `mapstructure:"max_image_size"`
}

// PDFConfig holds document generation configuration
type PDFConfig struct {
	FontPaths          []string `mapstructure:"font_paths"` // bundled fonts, tried before system fonts
	MarkImagePath      string   `mapstructure:"mark_image_path"`
	WrapWidth          int      `mapstructure:"wrap_width"`
	FirstPageBudget    float64  `mapstructure:"first_page_budget"`    // cm; 0 selects the computed default
	ContinuationBudget float64  `mapstructure:"continuation_budget"`  // cm; 0 selects the computed default
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables. A missing
// config file is not an error; defaults and environment variables apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7860)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("database.path", "data/request_forms.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("storage.upload_dir", "uploads/images")
	v.SetDefault("storage.max_image_size", int64(5*1024*1024))

	v.SetDefault("pdf.font_paths", []string{"./edukai-5.0.ttf", "/app/edukai-5.0.ttf"})
	v.SetDefault("pdf.mark_image_path", "./mark.jpg")
	v.SetDefault("pdf.wrap_width", 9)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("server.host", "SERVER_HOST")
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("database.path", "DATABASE_PATH")
	v.BindEnv("storage.upload_dir", "UPLOAD_DIR")
	v.BindEnv("pdf.mark_image_path", "MARK_IMAGE_PATH")
	v.BindEnv("logger.level", "LOG_LEVEL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Storage.UploadDir == "" {
		return fmt.Errorf("storage.upload_dir is required")
	}
	if c.Storage.MaxImageSize <= 0 {
		return fmt.Errorf("storage.max_image_size must be positive: %d", c.Storage.MaxImageSize)
	}
	if c.PDF.WrapWidth <= 0 {
		return fmt.Errorf("pdf.wrap_width must be positive: %d", c.PDF.WrapWidth)
	}
	if c.PDF.FirstPageBudget < 0 || c.PDF.ContinuationBudget < 0 {
		return fmt.Errorf("pdf page budgets must not be negative")
	}
	return nil
}
