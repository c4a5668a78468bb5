package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server Server `mapstructure:"server"`
	Paths  Paths  `mapstructure:"paths"`
	Runner Runner `mapstructure:"runner"`
	Disk   Disk   `mapstructure:"disk"`
	Logs   Logs   `mapstructure:"logs"`
}

type Server struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// Paths locates the files shared with the worker. Every component receives
// these explicitly at construction; nothing reads the environment after Load.
type Paths struct {
	StateFile  string `mapstructure:"state_file"`
	ConfigFile string `mapstructure:"config_file"`
	LogDir     string `mapstructure:"log_dir"`
	InstallDir string `mapstructure:"install_dir"`
}

type Runner struct {
	Script      string        `mapstructure:"script"`
	PidFile     string        `mapstructure:"pid_file"`
	SettleDelay time.Duration `mapstructure:"settle_delay"`
}

type Disk struct {
	LocalTimeout  time.Duration `mapstructure:"local_timeout"`
	RemoteTimeout time.Duration `mapstructure:"remote_timeout"`
}

type Logs struct {
	TailLines   int           `mapstructure:"tail_lines"`
	TailTimeout time.Duration `mapstructure:"tail_timeout"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("paths.state_file", "/opt/media-mirror/state.json")
	v.SetDefault("paths.config_file", "/opt/media-mirror/config.env")
	v.SetDefault("paths.log_dir", "/opt/media-mirror/logs")
	v.SetDefault("paths.install_dir", "/opt/media-mirror")
	v.SetDefault("runner.script", "media-mirror.sh")
	v.SetDefault("runner.pid_file", "runner.pid")
	v.SetDefault("runner.settle_delay", 2*time.Second)
	v.SetDefault("disk.local_timeout", 5*time.Second)
	v.SetDefault("disk.remote_timeout", 8*time.Second)
	v.SetDefault("logs.tail_lines", 50)
	v.SetDefault("logs.tail_timeout", 5*time.Second)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind the operational env names the installer exports
	v.BindEnv("server.port", "DASHBOARD_PORT")
	v.BindEnv("paths.state_file", "STATE_FILE")
	v.BindEnv("paths.config_file", "CONFIG_FILE")
	v.BindEnv("paths.log_dir", "LOG_DIR")
	v.BindEnv("paths.install_dir", "INSTALL_DIR")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
