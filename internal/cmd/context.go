package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crossorg/hrconsole/internal/config"
	"github.com/crossorg/hrconsole/internal/console"
	"github.com/crossorg/hrconsole/internal/log"
	"github.com/crossorg/hrconsole/internal/toast"
	"github.com/crossorg/hrconsole/internal/tui"
	"github.com/crossorg/hrconsole/internal/ux"
	"github.com/crossorg/hrconsole/internal/version"
)

// CommandContext holds the persistent flags of one invocation and the
// configuration they select.
type CommandContext struct {
	Home       string
	ConfigPath string
	APIURL     string
	Format     string
	NoColor    bool
	LogLevel   string

	Config *config.Config
	Viper  *viper.Viper
}

// NewCommandContext extracts command context from cobra.Command flags and
// loads the configuration. Flags override config values.
//
//	func runCommand(cmd *cobra.Command, args []string) error {
//		cc, err := NewCommandContext(cmd)
//		if err != nil {
//			return err
//		}
//		// Use cc.Config, cc.Format, etc.
//	}
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	flags := cmd.Flags()
	cc := &CommandContext{}

	var err error
	if cc.Home, err = flags.GetString("home"); err != nil {
		return nil, err
	}
	if cc.ConfigPath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cc.APIURL, err = flags.GetString("api-url"); err != nil {
		return nil, err
	}
	if cc.Format, err = flags.GetString("format"); err != nil {
		return nil, err
	}
	if cc.NoColor, err = flags.GetBool("no-color"); err != nil {
		return nil, err
	}
	if cc.LogLevel, err = flags.GetString("log-level"); err != nil {
		return nil, err
	}

	if cc.Home == "" {
		if cc.Home, err = config.Home(); err != nil {
			return nil, err
		}
	}
	if cc.ConfigPath == "" {
		cc.ConfigPath = filepath.Join(cc.Home, "config.yaml")
	}

	cfg, v, err := config.LoadFrom(cc.Home, cc.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cc.APIURL != "" {
		cfg.API.BaseURL = cc.APIURL
	}
	if cc.LogLevel != "" {
		cfg.Logging.Level = cc.LogLevel
	}
	if cc.Format == "" {
		cc.Format = cfg.Output.Format
	}
	if !flags.Changed("no-color") {
		cc.NoColor = cfg.Output.NoColor
	}
	if os.Getenv("NO_COLOR") != "" {
		cc.NoColor = true
	}

	cc.Config, cc.Viper = cfg, v
	return cc, nil
}

// Logger builds the logger the configuration asks for. Logs go to stderr so
// stdout carries only command output.
func (cc *CommandContext) Logger() *log.Logger {
	lc := log.DefaultConfig()
	lc.Level = log.ParseLevel(cc.Config.Logging.Level)
	lc.Format = log.ParseFormat(cc.Config.Logging.Format)
	lc.ServiceVersion = version.GetInfo().Version
	if cc.Config.Logging.File != "" {
		lc.File = log.FileConfig{
			Path:       cc.Config.Logging.File,
			MaxSizeMB:  10,
			MaxAgeDays: 14,
			MaxBackups: 3,
		}
	}
	return log.New(lc)
}

// ToastStyles returns the toast styles for the color setting.
func (cc *CommandContext) ToastStyles() toast.Styles {
	if cc.NoColor {
		return toast.PlainStyles()
	}
	return toast.DefaultStyles()
}

// App wires the console. Toasts are printed to stderr through a switchable
// presenter so the shell can take them over.
func (cc *CommandContext) App(cmd *cobra.Command) (*console.App, *tui.SwitchPresenter, error) {
	presenter := tui.NewSwitchPresenter(toast.NewTerminalPresenter(cmd.ErrOrStderr(), cc.ToastStyles()))
	app, err := console.New(cc.Config, console.Options{
		Presenter: presenter,
		Logger:    cc.Logger(),
	})
	if err != nil {
		return nil, nil, err
	}
	return app, presenter, nil
}

// Print writes data to the command's stdout in the selected format.
func (cc *CommandContext) Print(cmd *cobra.Command, data interface{}) error {
	formatter, err := ux.NewFormatter(cc.Format, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: cc.NoColor,
	})
	if err != nil {
		return err
	}
	return formatter.Format(data)
}

// setup is the common start of a console command.
func setup(cmd *cobra.Command) (*CommandContext, *console.App, error) {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return nil, nil, err
	}
	app, _, err := cc.App(cmd)
	if err != nil {
		return nil, nil, err
	}
	return cc, app, nil
}
