package config

const (
	defaultWorkDir              = "."
	defaultWikiAPIURL           = "https://de.wikipedia.org/w/api.php"
	defaultWikiUserAgent        = "krimiwiki/dev (episode list audit)"
	defaultWikiTimeoutSeconds   = 60
	defaultWikiBatchSize        = 50
	defaultFetchCommand         = "curl"
	defaultFetchTimeoutSeconds  = 120
	defaultFetchMinDelaySeconds = 5.5
	defaultFetchJitterSeconds   = 5.0
	defaultDasErsteIndexURL     = "https://www.daserste.de/unterhaltung/krimi/tatort/sendung/index.html"
	defaultFansBaseURL          = "https://tatort-fans.de"
	defaultFansFirstYear        = 1970
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"

	maxWikiBatchSize = 50

	// BuiltinFetchCommand selects the in-process HTTP downloader instead of
	// an external utility.
	BuiltinFetchCommand = "builtin"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
		},
		Wiki: Wiki{
			APIURL:         defaultWikiAPIURL,
			UserAgent:      defaultWikiUserAgent,
			TimeoutSeconds: defaultWikiTimeoutSeconds,
			BatchSize:      defaultWikiBatchSize,
		},
		Fetch: Fetch{
			Command:         defaultFetchCommand,
			TimeoutSeconds:  defaultFetchTimeoutSeconds,
			MinDelaySeconds: defaultFetchMinDelaySeconds,
			JitterSeconds:   defaultFetchJitterSeconds,
		},
		DasErste: DasErste{
			TatortIndexURL: defaultDasErsteIndexURL,
		},
		Fans: Fans{
			BaseURL:   defaultFansBaseURL,
			FirstYear: defaultFansFirstYear,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
