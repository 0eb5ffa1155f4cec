package logger

// Config describes where and how the CLI logs.
type Config struct {
	// Level is a zap level name such as "debug" or "INFO".
	Level string `mapstructure:"level"`
	// FileName is the log file. If it is empty, logs go to stderr in console
	// format.
	FileName   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxAge     int    `mapstructure:"maxage"`
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Level:      "WARN",
		MaxSize:    100,
		MaxAge:     30,
		MaxBackups: 5,
		Compress:   true,
	}
}
