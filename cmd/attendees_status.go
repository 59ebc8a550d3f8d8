package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/rollcall/internal/ui"
	"github.com/PolarWolf314/rollcall/internal/workflows"
	"github.com/spf13/cobra"
)

var statusJSONOutput bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSONOutput, "json", false, "output in JSON format")
}

func resetStatusCommandState() {
	statusJSONOutput = false
}

// statusOutput is the JSON form of workflows.StatusResult.
type statusOutput struct {
	ConfigPath   string `json:"config_path"`
	DataPath     string `json:"data_path"`
	KeyPath      string `json:"key_path"`
	AuditLogPath string `json:"audit_log_path"`
	StoreUUID    string `json:"store_uuid,omitempty"`
	DataExists   bool   `json:"data_exists"`
	KeyExists    bool   `json:"key_exists"`
	KeyMode      string `json:"key_mode,omitempty"`
	KeyInsecure  bool   `json:"key_insecure"`
	Readable     bool   `json:"readable"`
	ReadError    string `json:"read_error,omitempty"`
	RecordCount  int    `json:"record_count"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the attendee store lives and whether it can be read",
	Long: `Shows the config, key, data and audit log paths, checks the key file's
permissions, and tries to decrypt the data file. Nothing is created or changed.

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		result, err := workflows.Status(context.Background(), workflows.StatusOptions{})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to check status: %v", err)
		}

		if statusJSONOutput {
			return outputStatusJSON(result)
		}

		printStatus(result)
		return nil
	},
}

func outputStatusJSON(result *workflows.StatusResult) error {
	out := statusOutput{
		ConfigPath:   result.ConfigPath,
		DataPath:     result.DataPath,
		KeyPath:      result.KeyPath,
		AuditLogPath: result.AuditLogPath,
		StoreUUID:    result.StoreUUID,
		DataExists:   result.DataExists,
		KeyExists:    result.KeyExists,
		KeyInsecure:  result.KeyInsecure,
		Readable:     result.Readable,
		RecordCount:  result.RecordCount,
	}
	if result.KeyExists {
		out.KeyMode = fmt.Sprintf("%04o", uint32(result.KeyMode))
	}
	if result.ReadError != nil {
		out.ReadError = result.ReadError.Error()
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printStatus(result *workflows.StatusResult) {
	fmt.Printf("Config:    %s\n", ui.Path.Sprint(result.ConfigPath))
	fmt.Printf("Data file: %s\n", ui.Path.Sprint(result.DataPath))
	fmt.Printf("Key file:  %s\n", ui.Path.Sprint(result.KeyPath))
	fmt.Printf("Audit log: %s\n", ui.Path.Sprint(result.AuditLogPath))
	if result.StoreUUID != "" {
		fmt.Printf("Store:     %s\n", result.StoreUUID)
	}
	fmt.Println()

	if result.KeyInsecure {
		Logger.WarnfAlways("key file %s has mode %04o; run chmod 600 on it", result.KeyPath, uint32(result.KeyMode))
	}

	switch {
	case !result.DataExists && !result.KeyExists:
		fmt.Println(ui.Error.Sprint("✗") + " Not initialized")
		fmt.Println(ui.Hint.Sprint("→") + " Run " + ui.Command.Sprint("rollcall attendees init") + " to create the store")
	case !result.KeyExists:
		fmt.Println(ui.Error.Sprint("✗") + " Data file exists but the key file is missing")
	case !result.DataExists:
		fmt.Println(ui.Error.Sprint("✗") + " Key file exists but the data file is missing")
		fmt.Println(ui.Hint.Sprint("→") + " Run " + ui.Command.Sprint("rollcall attendees init") + " to create an empty list")
	case !result.Readable:
		fmt.Println(formatStoreError(result.ReadError))
	default:
		fmt.Println(ui.Success.Sprint("✓") + " Data file decrypts " + ui.Dim.Sprintf("%d records", result.RecordCount))
	}
}
