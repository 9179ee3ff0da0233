package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for fernetcrack.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fernetcrack",
		Short: "Dictionary attack against PBKDF2-derived Fernet tokens",
		Long: `fernetcrack recovers the password of a Fernet token whose key was derived
with PBKDF2-HMAC-SHA256 (32-byte key, URL-safe base64).

Candidates are built from a base wordlist: exactly one letter is uppercased,
one symbol is inserted and one digit is inserted, at every position.
The target, dictionary and attack settings come from a .fernetcrack
configuration file (see 'fernetcrack init') and can be overridden by flags.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrackCmd())
	cmd.AddCommand(NewEstimateCmd())
	cmd.AddCommand(NewBenchmarkCmd())
	cmd.AddCommand(NewTestcaseCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
