package config

const (
	defaultLibraryDir       = "~/.local/share/pencast/library"
	defaultExportDir        = "~/.local/share/pencast/export"
	defaultLogDir           = "~/.local/share/pencast/logs"
	defaultAssemblerBinary  = "tttool"
	defaultAssemblerTimeout = 120
	defaultTranscodeBinary  = "ffmpeg"
	defaultProbeBinary      = "ffprobe"
	defaultTranscodeBitrate = "192k"
	defaultMaxTrackControls = 12
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			ExportDir:  defaultExportDir,
			LogDir:     defaultLogDir,
		},
		Assembler: Assembler{
			Binary:         defaultAssemblerBinary,
			TimeoutSeconds: defaultAssemblerTimeout,
		},
		Transcode: Transcode{
			Binary:       defaultTranscodeBinary,
			ProbeBinary:  defaultProbeBinary,
			Bitrate:      defaultTranscodeBitrate,
			KeepOriginal: true,
		},
		Print: Print{
			MaxTrackControls: defaultMaxTrackControls,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
