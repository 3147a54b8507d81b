package domain

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetSessionConfig() *SessionConfig
	IsProduction() bool
	IsDevelopment() bool
	Validate() error
}
