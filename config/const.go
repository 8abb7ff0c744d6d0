package config

import "strings"

// AppVersion is the version of the application, set through ldflags at build time.
var AppVersion string

// AppName is the name of the application.
const AppName = "Expanse"

// AppID is the unique application identifier used for preferences storage.
const AppID = "com.dixieflatline76.expanse"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the hidden directory under the home directory holding logs and fallback output.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// Environment variables consulted when no API key is stored in the keyring.
const (
	APIKeyEnv         = "GEMINI_API_KEY"
	FallbackAPIKeyEnv = "API_KEY"
)
