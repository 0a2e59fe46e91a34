package config

const (
	defaultFormat     = "avif"
	defaultQuality    = 30
	defaultSpeed      = 3
	defaultStagingDir = "~/.local/share/comicconv/staging"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
	defaultAttempts   = 2
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Conversion: Conversion{
			Format:  defaultFormat,
			Quality: defaultQuality,
			Speed:   defaultSpeed,
		},
		Paths: Paths{
			StagingDir: defaultStagingDir,
		},
		Remote: Remote{
			Attempts: defaultAttempts,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
