package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Slavigrad/cv-export/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage admin credentials",
}

var authHashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Hash an admin password for ADMIN_PASSWORD_HASH",
	Long:  "Reads a password from the terminal and prints its bcrypt hash. Put the hash in the ADMIN_PASSWORD_HASH environment variable to enable the protected cache endpoints.",
	RunE:  runAuthHash,
}

func init() {
	authCmd.AddCommand(authHashCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthHash(_ *cobra.Command, _ []string) error {
	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(pw) == 0 {
		return fmt.Errorf("password must not be empty")
	}

	hash, err := config.HashPassword(string(pw), 0)
	if err != nil {
		return err
	}

	fmt.Println(hash)
	return nil
}
