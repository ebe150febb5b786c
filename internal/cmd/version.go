package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the console version. --verbose adds commit, build date, Go version
and platform; --backend also asks the configured API for its version.`,
	Example: `  hrconsole version
  hrconsole version --verbose
  hrconsole version --backend --format json`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "show build details")
	versionCmd.Flags().Bool("json", false, "shorthand for --format json")
	versionCmd.Flags().Bool("backend", false, "query the backend version too")

	rootCmd.AddCommand(versionCmd)
}

// versionReport is what version prints in structured formats.
type versionReport struct {
	Client  version.Info   `json:"client" yaml:"client"`
	Backend *backendReport `json:"backend,omitempty" yaml:"backend,omitempty"`
}

type backendReport struct {
	URL     string `json:"url" yaml:"url"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r versionReport) String() string {
	s := r.Client.String()
	if b := r.Backend; b != nil {
		switch {
		case b.Error != "":
			s += fmt.Sprintf("\nbackend %s unreachable: %s", b.URL, b.Error)
		case b.Version != "":
			s += fmt.Sprintf("\nbackend %s %s", b.URL, b.Version)
		default:
			s += fmt.Sprintf("\nbackend %s (version not reported)", b.URL)
		}
	}
	return s
}

func runVersion(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	asJSON, _ := cmd.Flags().GetBool("json")
	withBackend, _ := cmd.Flags().GetBool("backend")

	info := version.GetInfo()
	if !verbose && !asJSON && !withBackend && !cmd.Flags().Changed("format") {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.Name, info.Short())
		return nil
	}

	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if asJSON {
		cc.Format = "json"
	}

	report := versionReport{Client: info}
	if withBackend {
		app, _, err := cc.App(cmd)
		if err != nil {
			return err
		}
		b := &backendReport{URL: app.Client.BaseURL}
		if h, err := app.Client.Health(cmd.Context()); err != nil {
			b.Error = errors.MessageOf(err)
		} else {
			b.Version = h.Version
		}
		report.Backend = b
	}
	return cc.Print(cmd, report)
}
