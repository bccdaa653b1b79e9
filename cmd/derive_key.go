package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-t2decrypt/pkg/crypto"
)

var deriveKeyCmd = &cobra.Command{
	Use:   "derive-key",
	Short: "Print the key derivation parameters and the derived key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		key, err := crypto.DeriveKey(cfg.DerivationParameters())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		rule := strings.Repeat("=", 70)
		fmt.Fprintln(out, rule)
		fmt.Fprintln(out, "T2 boot.img4 / diags decryptor")
		fmt.Fprintln(out, rule)
		fmt.Fprintln(out, "\nEncryption Parameters:")
		fmt.Fprintln(out, "  Algorithm: AES-256-ECB")
		fmt.Fprintln(out, "  Key Derivation: PBKDF2-HMAC-SHA1")
		fmt.Fprintf(out, "  Salt: %s\n", cfg.Derivation.Salt)
		fmt.Fprintf(out, "  Passphrase: %s\n", cfg.Derivation.Passphrase)
		fmt.Fprintf(out, "  Iterations: %d\n", cfg.Derivation.Iterations)
		fmt.Fprintf(out, "\n  Key (hex): %s\n", key.Hex())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deriveKeyCmd)
}
