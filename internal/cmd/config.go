package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/crossorg/hrconsole/internal/config"
	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/ux"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or edit console configuration",
	Long: `Manage console configuration stored at ~/.hrconsole/config.yaml

Configuration includes:
  • Backend base URL and request timeout
  • Toast limits
  • Output format
  • Logging settings

Values can also be set through HRCONSOLE_* environment variables, for
example HRCONSOLE_API_BASE_URL.

Examples:
  # View effective configuration
  hrconsole config view

  # Edit configuration in $EDITOR
  hrconsole config edit

  # Get a specific value
  hrconsole config get api.base_url

  # Set a specific value
  hrconsole config set api.timeout 30s

  # Show configuration file path
  hrconsole config path
`,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display effective configuration",
	Long:  `Display the configuration after defaults, the config file and environment overrides are merged.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigView,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration in $EDITOR",
	Long:  `Open the configuration file in your default editor (from $EDITOR environment variable).`,
	Args:  cobra.NoArgs,
	RunE:  runConfigEdit,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  `Retrieve the value of a configuration key using dot notation (e.g., api.base_url).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a specific configuration value",
	Long: `Set the value of a configuration key using dot notation (e.g., toast.max_visible 3).
List values take a comma-separated string.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

// settingsView is the effective configuration with durations spelled out.
type settingsView map[string]interface{}

func (s settingsView) String() string {
	data, err := yaml.Marshal(map[string]interface{}(s))
	if err != nil {
		return err.Error()
	}
	return strings.TrimRight(string(data), "\n")
}

func displayValue(v interface{}) interface{} {
	switch val := v.(type) {
	case time.Duration:
		return val.String()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, inner := range val {
			out[k] = displayValue(inner)
		}
		return out
	}
	return v
}

func runConfigView(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	view := settingsView(displayValue(cc.Viper.AllSettings()).(map[string]interface{}))
	if cc.Format == "text" {
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file: %s\n\n", cc.ConfigPath)
	}
	return cc.Print(cmd, view)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if _, err := os.Stat(cc.ConfigPath); os.IsNotExist(err) {
		if err := writeFileSettings(cc.ConfigPath, map[string]interface{}{}); err != nil {
			return ux.FormatError(err, "creating configuration")
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	editorCmd := exec.Command(editor, cc.ConfigPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor: %w", err)
	}

	if _, _, err := config.LoadFrom(cc.Home, cc.ConfigPath); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Configuration may contain errors: %v\n", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Please check and fix the configuration file.\n")
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration updated successfully")
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	value, err := getValue(cc.Viper, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := strings.ToLower(args[0]), args[1]

	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := setValue(cc.Home, cc.ConfigPath, cc.Viper, key, value); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Set %s = %s\n", key, value)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cc.ConfigPath)
	return nil
}

func knownKey(v *viper.Viper, key string) error {
	if !slices.Contains(v.AllKeys(), strings.ToLower(key)) {
		return errors.NewConfigInvalidError(key, fmt.Errorf("unknown configuration key"))
	}
	return nil
}

// getValue returns the effective value of key.
func getValue(v *viper.Viper, key string) (string, error) {
	if err := knownKey(v, key); err != nil {
		return "", err
	}
	switch val := v.Get(key).(type) {
	case []string:
		return strings.Join(val, ","), nil
	case []interface{}:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ","), nil
	default:
		return fmt.Sprint(displayValue(val)), nil
	}
}

// setValue validates value against the effective configuration and writes
// it to the config file. Only keys already in the file, plus key, are
// written; defaults and environment overrides stay out of it.
func setValue(home, path string, effective *viper.Viper, key, value string) error {
	if err := knownKey(effective, key); err != nil {
		return err
	}

	var parsed interface{} = value
	switch effective.Get(key).(type) {
	case []string, []interface{}:
		parsed = splitList(value)
	}

	effective.Set(key, parsed)
	if _, err := config.Decode(effective); err != nil {
		return err
	}

	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("yaml")
	if _, statErr := os.Stat(path); statErr == nil {
		if err := file.ReadInConfig(); err != nil {
			return errors.NewConfigInvalidError(path, err)
		}
	}
	file.Set(key, parsed)

	if err := writeFileSettings(path, file.AllSettings()); err != nil {
		return ux.FormatError(err, "saving configuration")
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeFileSettings(path string, settings map[string]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to create config directory", err)
	}
	data, err := yaml.Marshal(displayValue(settings))
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to marshal config", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to write config", err)
	}
	return nil
}
