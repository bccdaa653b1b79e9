package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-t2decrypt/pkg/app/decrypt"
)

var (
	decryptDest            string
	decryptWorkers         int
	decryptContinueOnError bool
	decryptLaxPadding      bool
	decryptNoOverwrite     bool
	decryptTimeout         time.Duration
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt [library-path]",
	Short: "Decrypt boot.img4 and all per-model diags files in a library",
	Long: `Decrypt the firmware containers of a resource library.

The library is expected to look like:
  LIBRARY/boot.img4
  LIBRARY/bootchains/<model>/diags

Plaintext is written to the same layout under the destination directory.

Examples:
  # Decrypt the configured library
  t2decrypt decrypt

  # Decrypt a specific library, keep going past bad files
  t2decrypt decrypt ./Resources/RES/LIBRARY --dest ./Decrypted --continue-on-error

  # Machine-readable report
  t2decrypt decrypt ./LIBRARY -o json`,

	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		library := cfg.Library.Path
		if len(args) == 1 {
			library = args[0]
		}
		return runDecrypt(cmd, library)
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)

	decryptCmd.Flags().StringVarP(&decryptDest, "dest", "d", "", "destination directory (default from config)")
	decryptCmd.Flags().IntVar(&decryptWorkers, "workers", 0, "parallel decryptions (default from config)")
	decryptCmd.Flags().BoolVar(&decryptContinueOnError, "continue-on-error", false, "skip files that fail to decrypt")
	decryptCmd.Flags().BoolVar(&decryptLaxPadding, "lax-padding", false, "only range-check padding, as the original tool did")
	decryptCmd.Flags().BoolVar(&decryptNoOverwrite, "no-overwrite", false, "leave existing output files untouched")
	decryptCmd.Flags().DurationVar(&decryptTimeout, "timeout", 0, "abort the batch after this long (default 5m)")
}

func runDecrypt(cmd *cobra.Command, library string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := newAppContext(cmd)
	timeout := ctx.DefaultTimeout
	if decryptTimeout > 0 {
		timeout = decryptTimeout
	}
	ctx, cancel := ctx.WithTimeout(timeout)
	defer cancel()

	request := &decrypt.Request{
		LibraryPath:     library,
		OutputPath:      cfg.Library.Output,
		ContainerName:   cfg.Library.ContainerName,
		BootchainsDir:   cfg.Library.BootchainsDir,
		CompanionName:   cfg.Library.CompanionName,
		Derivation:      cfg.DerivationParameters(),
		Workers:         cfg.Batch.Workers,
		ContinueOnError: cfg.Batch.ContinueOnError || decryptContinueOnError,
		LaxPadding:      cfg.Batch.LaxPadding || decryptLaxPadding,
		Overwrite:       cfg.Batch.Overwrite && !decryptNoOverwrite,
	}
	if decryptDest != "" {
		request.OutputPath = decryptDest
	}
	if decryptWorkers > 0 {
		request.Workers = decryptWorkers
	}

	response, err := decrypt.Handle(ctx, request)
	if err != nil {
		return err
	}

	if ctx.Quiet {
		return nil
	}
	return decrypt.FormatOutput(cmd.OutOrStdout(), response, ctx.OutputFormat)
}
