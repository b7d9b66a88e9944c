package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"shotpair/pkg/auth"
	"shotpair/pkg/ui"
)

var authEnv string

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage basic auth credentials for protected environments",
	Long: `Manage HTTP basic auth credentials for environments behind a login,
such as staging servers.

Passwords are kept in the system keychain. Without a keychain, set
SHOTPAIR_<ENV>_PASSWORD (and optionally SHOTPAIR_<ENV>_BASIC_AUTH_USER)
instead. Credentials are only sent when the environment's basic_auth_user
is configured.`,
}

var authSetCmd = &cobra.Command{
	Use:     "set <username>",
	Short:   "Store a password for an environment",
	Example: `  shotpair auth set --env right deploy`,
	Args:    cobra.ExactArgs(1),
	RunE:    runAuthSet,
}

var authDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove stored credentials for an environment",
	Args:  cobra.NoArgs,
	RunE:  runAuthDelete,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which environments have credentials",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authDeleteCmd)
	authCmd.AddCommand(authStatusCmd)

	authCmd.PersistentFlags().StringVarP(&authEnv, "env", "e", "right", "environment name (left or right)")
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(args[0])

	fmt.Fprintf(ui.Output, "Password for %s on %s: ", username, authEnv)
	password, err := readPassword()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	creds := &auth.Credentials{
		Environment:  authEnv,
		Username:     username,
		Password:     password,
		LastModified: time.Now(),
	}
	if err := auth.NewManager().Store(creds); err != nil {
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Credentials stored for %s", authEnv))
	fmt.Fprintf(ui.Output, "\nSet basic_auth_user: %s under environments.%s in the config file\n", username, authEnv)
	fmt.Fprintf(ui.Output, "or export SHOTPAIR_%s_BASIC_AUTH_USER=%s\n", strings.ToUpper(authEnv), username)
	return nil
}

func runAuthDelete(cmd *cobra.Command, args []string) error {
	if err := auth.NewManager().Delete(authEnv); err != nil {
		return err
	}
	ui.PrintSuccess("Credentials removed for " + authEnv)
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	manager := auth.NewManager()
	for _, env := range []string{"left", "right"} {
		creds, err := manager.Retrieve(env)
		switch {
		case errors.Is(err, auth.ErrCredentialsNotFound):
			ui.PrintInfo(env, ui.Dim("none"))
		case err != nil:
			ui.PrintWarning(env, err)
		default:
			ui.PrintInfo(env, fmt.Sprintf("%s %s", creds.Username, auth.MaskPassword(creds.Password)))
		}
	}
	return nil
}

// readPassword reads a password from stdin without echoing
func readPassword() (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(ui.Output)
		if err == nil {
			return string(password), nil
		}
	}

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
