package config

import "time"

// Application constants
const (
	// Application metadata
	AppName        = "vox"
	AppDescription = "vox - natural language to shell commands"

	// Directory and file paths (relative to the user home directory)
	DefaultConfigDir       = ".vox"
	DefaultLogDir          = "logs"
	DefaultConfigFileName  = "config.json"
	DefaultLogFileName     = "vox.log"
	DefaultHistoryFileName = "history.json"

	// Completion request parameters
	DefaultHTTPTimeout    = 30 * time.Second
	MaxCompletionTokens   = 400
	CompletionTemperature = 0.1

	// Provider names
	ProviderGroq     = "groq"
	ProviderGradient = "gradient"

	// API endpoints
	GroqAPIEndpoint     = "https://api.groq.com/openai/v1/chat/completions"
	GradientAPIEndpoint = "https://inference.do-ai.run/v1/chat/completions"

	// Default models
	DefaultGroqModel     = "llama-3.3-70b-versatile"
	DefaultGradientModel = "llama3.3-70b-instruct"

	// History management
	DefaultMaxHistorySize = 100

	// File permissions; the config file holds an API key, keep it owner-only
	ConfigDirPermissions  = 0700
	ConfigFilePermissions = 0600
	DefaultDirPermissions = 0755

	// Environment variables
	EnvVoxDebug   = "VOX_DEBUG"
	EnvVoxCmdFile = "VOX_CMD_FILE"

	// Exit codes
	ExitSuccess        = 0
	ExitGenericError   = 1
	ExitNetworkError   = 20
	ExitProviderError  = 21
	ExitParseError     = 22
	ExitEmptyResponse  = 23
	ExitExecutionError = 24
	ExitConfigError    = 78
	ExitUserCancel     = 130
)
