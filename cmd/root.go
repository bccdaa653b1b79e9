package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-t2decrypt/internal/config"
	"github.com/deploymenttheory/go-t2decrypt/pkg/app"
)

var (
	// Global output flags
	verbose      bool
	quiet        bool
	outputFormat string
	configFile   string

	// loaded by PersistentPreRunE
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "t2decrypt",
	Short: "Decrypt T2 firmware containers (boot.img4 and diags)",
	Long: `t2decrypt recovers the plaintext IMG4 containers shipped encrypted in a
T2 serial-changer resource library.

The library files are AES-256-ECB encrypted under a key derived with
PBKDF2-HMAC-SHA1 from a fixed passphrase and salt. The key is derived once
and every file is decrypted with it.

Commands:
  decrypt     Decrypt boot.img4 and every bootchains/<model>/diags file
  inspect     Decrypt a single file and check its IMG4 header
  derive-key  Print the derivation parameters and the derived key`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./t2decrypt.yaml, $HOME/.t2decrypt/t2decrypt.yaml)")
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}

// GetOutputFormat returns the output format
func GetOutputFormat() string {
	return outputFormat
}

// newAppContext builds the application context for a command run
func newAppContext(cmd *cobra.Command) *app.Context {
	ctx := app.NewContext()
	ctx.Context = cmd.Context()
	ctx.OutputFormat = GetOutputFormat()
	ctx.Verbose = GetVerbose()
	ctx.Quiet = GetQuiet()
	ctx.ConfigureLogger(cmd.ErrOrStderr())
	return ctx
}
