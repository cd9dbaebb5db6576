// Package config handles optional YAML-backed defaults for the vol-cut and
// vol-convert CLIs. A config file is never required: CLI flags always win,
// file values fill in anything a flag left at its zero value, and built-in
// defaults apply when no file is found.
package config

// Config holds tool-wide defaults that CLI flags may override.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Texture TextureConfig `yaml:"texture"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig controls the logger built by internal/logging.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// TextureConfig bounds the texture pipeline's resize dimensions.
type TextureConfig struct {
	MaxDimension int `yaml:"max_dimension"`
}

// OutputConfig controls how output files and directories are created.
type OutputConfig struct {
	DirPermissions uint32 `yaml:"dir_permissions"`
}

// Default returns the tool's built-in defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Texture: TextureConfig{MaxDimension: 8192},
		Output:  OutputConfig{DirPermissions: 0o700},
	}
}
