// Spatium — network digital-twin deployment and device configuration
//
// spatium drives containerlab from topology descriptions and retrieves
// device configurations over SSH, REST, or the SONiC CONFIG_DB.
//
// Usage:
//
//	spatium serve                    Run the HTTP API
//	spatium deploy -f topology.json  Deploy a topology
//	spatium destroy <name>           Destroy a deployed topology
//	spatium status <name>            Show a topology's deployment status
//	spatium list                     List all deployments
//	spatium files                    List generated topology files
//	spatium fetch <host>...          Fetch device configurations
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spatium-net/spatium/pkg/settings"
	"github.com/spatium-net/spatium/pkg/util"
	"github.com/spatium-net/spatium/pkg/version"
)

var (
	cfg     *settings.Settings
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "spatium",
	Short:             "Network digital-twin deployment and device configuration",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Spatium deploys emulated network topologies with containerlab and
retrieves device configurations over SSH, REST, or CONFIG_DB.

  spatium serve`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = settings.Load()
		if verbose {
			if err := util.SetLogLevel("debug"); err != nil {
				return err
			}
		} else if err := util.SetLogLevel(cfg.LogLevel); err != nil {
			return err
		}
		if cfg.LogFormat == "json" {
			util.SetJSONFormat()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newServeCmd(),
		newDeployCmd(),
		newDestroyCmd(),
		newStatusCmd(),
		newListCmd(),
		newFilesCmd(),
		newFetchCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if version.Version == "dev" {
				fmt.Println("spatium dev build (use 'make build' for version info)")
			} else {
				fmt.Printf("spatium %s (%s)\n", version.Version, version.GitCommit)
			}
		},
	}
}
