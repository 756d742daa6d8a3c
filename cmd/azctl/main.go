// Command azctl administers dashboard accounts directly against the
// storage backend, for operators who cannot or do not want to go through
// the HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/webdevreplits/azure-01/internal/auth"
	"github.com/webdevreplits/azure-01/internal/config"
	"github.com/webdevreplits/azure-01/internal/logging"
	"github.com/webdevreplits/azure-01/internal/rbac"
	"github.com/webdevreplits/azure-01/internal/storage"
)

const usage = `Usage: azctl <command> [flags]

Commands:
  create-account  -username <name> [-email <email>] [-role <role>]
  set-role        -username <name> -role <role>
  delete-account  -username <name>
  list-accounts
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "azctl: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	switch command {
	case "create-account", "set-role", "delete-account", "list-accounts":
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Full config layering so azctl reaches the same store as the server:
	// defaults, then DATABASE_URL/PG* environment, JSON file and flags.
	// The config flag set is isolated from the subcommand flags.
	cfg := config.LoadConfig()

	// Quiet logger: azctl reports through its own output.
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	backend, err := storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer backend.Close()

	if err := backend.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	svc := auth.NewService(backend.Accounts(), logger)

	switch command {
	case "create-account":
		return createAccount(ctx, svc, args)
	case "set-role":
		return setRole(ctx, svc, args)
	case "delete-account":
		return deleteAccount(ctx, svc, args)
	case "list-accounts":
		return listAccounts(ctx, svc)
	}
	return nil
}

func createAccount(ctx context.Context, svc *auth.Service, args []string) error {
	fs := flag.NewFlagSet("create-account", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "account email")
	role := fs.String("role", rbac.RoleViewer, "account role (Admin, Engineer, Viewer)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return fmt.Errorf("-username is required")
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	if err := svc.CreateAccount(ctx, *username, password, *email, *role); err != nil {
		return err
	}
	fmt.Printf("account %q created with role %s\n", *username, *role)
	return nil
}

func setRole(ctx context.Context, svc *auth.Service, args []string) error {
	fs := flag.NewFlagSet("set-role", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	role := fs.String("role", "", "new role (Admin, Engineer, Viewer)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *role == "" {
		return fmt.Errorf("-username and -role are required")
	}

	if err := svc.UpdateRole(ctx, *username, *role); err != nil {
		return err
	}
	fmt.Printf("account %q now has role %s\n", *username, *role)
	return nil
}

func deleteAccount(ctx context.Context, svc *auth.Service, args []string) error {
	fs := flag.NewFlagSet("delete-account", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return fmt.Errorf("-username is required")
	}

	if err := svc.DeleteAccount(ctx, *username); err != nil {
		return err
	}
	fmt.Printf("account %q deleted\n", *username)
	return nil
}

func listAccounts(ctx context.Context, svc *auth.Service) error {
	list, err := svc.ListAccounts(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%-30s %-10s %-30s %s\n", "USERNAME", "ROLE", "EMAIL", "LAST LOGIN")
	for _, a := range list {
		lastLogin := "never"
		if a.LastLogin.Valid {
			lastLogin = a.LastLogin.Time.UTC().Format(time.RFC3339)
		}
		fmt.Printf("%-30s %-10s %-30s %s\n", a.Username, a.Role, a.Email, lastLogin)
	}
	return nil
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("password read: %w", err)
	}
	if len(password) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}

	fmt.Print("Repeat password: ")
	repeat, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("password read: %w", err)
	}
	if string(password) != string(repeat) {
		return "", fmt.Errorf("passwords do not match")
	}

	return string(password), nil
}
