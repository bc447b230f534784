package config

// LoggingConfig controls the slog setup. Values are fixed literals wired up
// in the commands; there is no environment or file-driven configuration in
// this tool.
type LoggingConfig struct {
	Level    string
	Format   string
	Output   string
	FilePath string
}
