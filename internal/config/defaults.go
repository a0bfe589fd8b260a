package config

const (
	defaultBind           = "0.0.0.0:8000"
	defaultWorkDir        = "/tmp/audio"
	defaultLogDir         = "~/.local/share/remixd/logs"
	defaultEngineBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultTimeoutSeconds = 300
	defaultBitrate        = "320k"
	defaultSweepInterval  = 300
	defaultOutputMaxAge   = 3600
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind: defaultBind,
		},
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Engine: Engine{
			Binary:         defaultEngineBinary,
			FFprobeBinary:  defaultFFprobeBinary,
			TimeoutSeconds: defaultTimeoutSeconds,
			Bitrate:        defaultBitrate,
		},
		Cleanup: Cleanup{
			Enabled:         true,
			IntervalSeconds: defaultSweepInterval,
			MaxAgeSeconds:   defaultOutputMaxAge,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
