package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/amirasaad/networth/infra/initializer"
	"github.com/amirasaad/networth/pkg/app"
	"github.com/amirasaad/networth/pkg/config"
	"github.com/fatih/color"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

var (
	success = color.New(color.FgGreen, color.Bold)
	failure = color.New(color.FgRed)
	label   = color.New(color.FgCyan)
)

func fail(format string, args ...any) subcommands.ExitStatus {
	_, _ = failure.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

// openApp loads the configuration and builds the services. The schema is
// migrated and the predefined rows are seeded on the way.
func openApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	deps, cleanup, err := initializer.InitializeDependencies(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return app.New(deps, cfg), cleanup, nil
}

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending schema migrations" }
func (*migrateCmd) Usage() string {
	return `migrate

  Applies the SQL migrations to DATABASE_URL (AutoMigrate on sqlite).
`
}
func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := config.Load(".env")
	if err != nil {
		return fail("failed to load configuration: %v", err)
	}
	if err := initializer.Migrate(cfg); err != nil {
		return fail("%v", err)
	}
	_, _ = success.Println("Schema is up to date")
	return subcommands.ExitSuccess
}

type seedCmd struct{}

func (*seedCmd) Name() string { return "seed" }
func (*seedCmd) Synopsis() string {
	return "insert the predefined currencies, categories and asset types"
}
func (*seedCmd) Usage() string {
	return `seed

  Migrates the schema and inserts any missing predefined rows. Running it
  again changes nothing.
`
}
func (*seedCmd) SetFlags(*flag.FlagSet) {}

func (*seedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, cleanup, err := openApp(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer cleanup()

	currencies, err := a.CurrencyService.List(ctx, uuid.Nil)
	if err != nil {
		return fail("failed to list currencies: %v", err)
	}
	codes := make([]string, 0, len(currencies))
	for _, c := range currencies {
		codes = append(codes, c.Code)
	}
	_, _ = success.Println("Predefined data is in place")
	_, _ = label.Print("Currencies: ")
	fmt.Println(strings.Join(codes, " "))
	return subcommands.ExitSuccess
}

type createAdminCmd struct {
	username string
	email    string
	base     string
}

func (*createAdminCmd) Name() string     { return "create-admin" }
func (*createAdminCmd) Synopsis() string { return "register a user with the ADMIN role" }
func (*createAdminCmd) Usage() string {
	return `create-admin [-base <code>] <username> <email>

  Registers an administrator. The password is read from the terminal
  without echo, or from the first line of standard input when it is not
  a terminal.
`
}

func (c *createAdminCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "username", "", "Username (or first argument)")
	f.StringVar(&c.email, "email", "", "Email address (or second argument)")
	f.StringVar(&c.base, "base", "USD", "Base currency code for the summary")
}

func (c *createAdminCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.username == "" {
		c.username = f.Arg(0)
	}
	if c.email == "" {
		c.email = f.Arg(1)
	}
	if c.username == "" || c.email == "" {
		_, _ = failure.Fprintln(os.Stderr, "Error: a username and an email are required.")
		return subcommands.ExitUsageError
	}
	password, err := readPassword(os.Stdin, os.Stderr, "Password: ")
	if err != nil {
		return fail("failed to read password: %v", err)
	}

	a, cleanup, err := openApp(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer cleanup()

	u, err := a.UserService.CreateAdmin(ctx, c.username, c.email, password, strings.ToUpper(c.base))
	if err != nil {
		return fail("failed to create admin: %v", err)
	}
	_, _ = success.Printf("Created admin %s\n", u.Username)
	_, _ = label.Print("ID: ")
	fmt.Println(u.ID)
	return subcommands.ExitSuccess
}

type recomputeCmd struct {
	username string
}

func (*recomputeCmd) Name() string { return "recompute" }
func (*recomputeCmd) Synopsis() string {
	return "rebuild a user's summary from their wallets and assets"
}
func (*recomputeCmd) Usage() string {
	return `recompute <username>

  Converts every balance and asset of the user into their base currency
  and stores the resulting totals.
`
}

func (c *recomputeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "username", "", "Username (or first argument)")
}

func (c *recomputeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.username == "" {
		c.username = f.Arg(0)
	}
	if c.username == "" {
		_, _ = failure.Fprintln(os.Stderr, "Error: a username is required.")
		return subcommands.ExitUsageError
	}
	a, cleanup, err := openApp(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer cleanup()

	u, err := a.UserService.GetByUsername(ctx, c.username)
	if err != nil {
		return fail("failed to find user %q: %v", c.username, err)
	}
	s, err := a.SummaryService.Recompute(ctx, u.ID)
	if err != nil {
		return fail("failed to recompute summary: %v", err)
	}
	_, _ = success.Printf("Summary of %s recomputed\n", u.Username)
	printTotals(os.Stdout, s.WalletsValue.String(), s.AssetsValue.String(), s.NetWorth.String())
	return subcommands.ExitSuccess
}
