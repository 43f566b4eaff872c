package config

// GetDefaultSettings returns the built-in harness settings.
func GetDefaultSettings() Settings {
	return Settings{
		DefaultLogLevel: "DEBUG",
		Output:          OutputTable,
	}
}
