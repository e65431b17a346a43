// Package cmd - auth commands (login, register, logout, whoami)
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var registerName string

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in and store credentials locally",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		_, auth, err := newSession()
		if err != nil {
			return err
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		user, err := auth.Login(ctx, args[0], password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		_, auth, err := newSession()
		if err != nil {
			return err
		}

		name := registerName
		if name == "" {
			name, err = promptLine("Name: ")
			if err != nil {
				return err
			}
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		user, err := auth.Register(ctx, name, args[0], password)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		fmt.Printf("Account created for %s (%s)\n", user.Name, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, auth, err := newSession()
		if err != nil {
			return err
		}
		if err := auth.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		_, auth, err := newSession()
		if err != nil {
			return err
		}
		if err := auth.Bootstrap(ctx); err != nil {
			return err
		}

		user, ok := auth.CurrentUser()
		if !ok {
			fmt.Println("Not signed in")
			return nil
		}
		fmt.Printf("%s (%s) role=%s\n", user.Name, user.Email, user.Role)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "display name for the new account")
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
