package config

const (
	defaultStateDirName = ".seasonfix"
	defaultTVDBBaseURL  = "https://api4.thetvdb.com/v4"
	defaultTVDBLanguage = "eng"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Rename: Rename{
			VideoExtensions: []string{".mkv", ".mp4", ".avi", ".mov", ".m4v", ".wmv"},
			SpecFileNames:   []string{"seasonfix.spec", ".seasonfix.spec", "seasonfix"},
			StateDirName:    defaultStateDirName,
		},
		TVDB: TVDB{
			BaseURL:  defaultTVDBBaseURL,
			Language: defaultTVDBLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
