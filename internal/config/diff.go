package config

// DiffResult describes what changed between two configs. Only fields that
// can be safely hot-reloaded are tracked; storage changes require a restart.
type DiffResult struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	MiningChanged   bool
	HintMineChanged bool
	ReplaceChanged  bool
}

// Any reports whether the diff contains at least one change.
func (d DiffResult) Any() bool {
	return d.LogLevelChanged || d.MiningChanged || d.HintMineChanged || d.ReplaceChanged
}

// Diff compares old and new configs and returns what changed.
// Only tracks changes that are safe to apply without restart.
func Diff(old, new *Config) DiffResult {
	d := DiffResult{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}
	if old.Mining != new.Mining {
		d.MiningChanged = true
	}
	if old.HintMine != new.HintMine {
		d.HintMineChanged = true
	}
	if old.Replace != new.Replace {
		d.ReplaceChanged = true
	}
	return d
}
