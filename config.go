package porm

// Config tunes a DB handle. The zero value means: no statement logging,
// foreign key resolution enabled, no recursion depth guard.
type Config struct {
	// Log enables statement logging to stderr. Ignored when Logger is set.
	Log bool

	// Logger receives emitted statements. Overrides Log.
	Logger Logger

	// DisableResolution turns foreign key lookup off for every query on
	// this handle. Individual queries can still opt back in or out via
	// query options.
	DisableResolution bool

	// MaxDepth bounds nested foreign key resolution. 0 means unlimited,
	// which is the faithful behavior for acyclic schemas. A positive
	// value makes resolution beyond that depth fail with
	// ErrMaxDepthExceeded instead of recursing forever on a cyclic one.
	MaxDepth int
}

func (cfg *Config) logger() Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}

	if cfg.Log {
		return newStdLogger()
	}

	return nullLogger{}
}
