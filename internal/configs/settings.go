package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/rollcall/internal/utils"
)

const (
	// DefaultDataFile is the name of the encrypted attendee table.
	DefaultDataFile = "attendees.csv"

	// DefaultKeyFile is the name of the raw key file kept next to the data file.
	DefaultKeyFile = "key.key"

	// AuditLogFile is the name of the audit log kept next to the data file.
	AuditLogFile = "audit.jsonl"

	// DataDirEnv overrides the data directory from the config file.
	DataDirEnv = "ROLLCALL_DATA_DIR"
)

type Settings struct {
	ConfigPath   string
	DataDir      string
	DataFileName string
	KeyFileName  string
	Username     string
}

var RollcallSettings *Settings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	RollcallSettings = NewSettings(
		filepath.Join(configDir, "rollcall", "config.toml"),
		filepath.Join(dataDir, "rollcall"),
		utils.CurrentUser(),
	)
}

// NewSettings returns settings with the default file names.
func NewSettings(configPath, dataDir, username string) *Settings {
	return &Settings{
		ConfigPath:   configPath,
		DataDir:      dataDir,
		DataFileName: DefaultDataFile,
		KeyFileName:  DefaultKeyFile,
		Username:     username,
	}
}

// DataFilePath returns the location of the encrypted data file.
func (s *Settings) DataFilePath() string {
	return filepath.Join(s.DataDir, s.DataFileName)
}

// KeyFilePath returns the location of the key file.
func (s *Settings) KeyFilePath() string {
	return filepath.Join(s.DataDir, s.KeyFileName)
}

// AuditLogPath returns the location of the audit log.
func (s *Settings) AuditLogPath() string {
	return filepath.Join(s.DataDir, AuditLogFile)
}

// InitSettings loads the config file into RollcallSettings and applies the
// ROLLCALL_DATA_DIR override. It returns the loaded config.
func InitSettings() (*Config, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	applyConfig(RollcallSettings, config)

	if dir := os.Getenv(DataDirEnv); dir != "" {
		RollcallSettings.DataDir = dir
	}

	return config, nil
}

func applyConfig(s *Settings, config *Config) {
	if config.Storage.DataDir != "" {
		s.DataDir = config.Storage.DataDir
	}
	if config.Storage.DataFile != "" {
		s.DataFileName = config.Storage.DataFile
	}
	if config.Storage.KeyFile != "" {
		s.KeyFileName = config.Storage.KeyFile
	}
}
