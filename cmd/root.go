package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/sonar-report/cmd/version"
	"github.com/scan-io-git/sonar-report/pkg/shared/config"
	"github.com/scan-io-git/sonar-report/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "sonar-report [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Sonar-report turns a SonarCloud issues export into a shareable report.",
		Long: `Sonar-report reads the JSON issues export of a SonarCloud project, groups the issues
	by type, severity and component, and writes a document with a title page,
	an executive summary and the full issue listing.
	`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.NewCommandError(err, errors.ExitCodeInvalidInput)
	})
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return execute(os.Args[1:], os.Stderr)
}

func execute(args []string, stderr io.Writer) int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error executing command: %v\n", err)
		return errors.ExitCode(err)
	}
	return 0
}

func initConfig() error {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		return errors.NewCommandError(fmt.Errorf("initializing config file function is crashed - %w", err), errors.ExitCodeInvalidInput)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		return errors.NewCommandError(err, errors.ExitCodeInvalidInput)
	}

	return nil
}
