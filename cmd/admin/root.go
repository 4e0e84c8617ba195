package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/silver-talent/internal/admin"
	"github.com/honeycarbs/silver-talent/internal/config"
	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/pkg/logging"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

// app is shared by every subcommand once the root pre-run has loaded config
type app struct {
	load func() (config.Config, error)

	cfg    config.Config
	logger *logging.Logger
	client *silvertalent.Client

	email    string
	password string
}

func newRootCmd(load func() (config.Config, error)) *cobra.Command {
	a := &app{load: load}

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Silver Talent back-office",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.email, "email", "", "administrator email (default ADMIN_EMAIL)")
	root.PersistentFlags().StringVar(&a.password, "password", "", "administrator password (default ADMIN_PASSWORD)")

	root.AddCommand(
		a.hashPasswordCmd(),
		a.contactCmd(),
		a.vacancyCmd(),
		a.categoryCmd(),
		a.postCmd(),
	)
	return wrapErrors(root)
}

func (a *app) init() error {
	cfg, err := a.load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.NewConsole(cfg.LogLevel).Component("admin-cli")

	client, err := silvertalent.NewClient(silvertalent.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.RequestTimeout,
	})
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

// dashboard authenticates the caller and loads the form reference data
func (a *app) dashboard(cmd *cobra.Command) (*admin.Dashboard, error) {
	if err := a.cfg.RequireAdmin(); err != nil {
		return nil, err
	}
	auth, err := admin.NewBcryptAuthenticator(a.cfg.Admin.Email, a.cfg.Admin.PasswordHash)
	if err != nil {
		return nil, err
	}

	email := a.email
	if email == "" {
		email = a.cfg.Admin.Email
	}
	password := a.password
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}
	if err := auth.Authenticate(cmd.Context(), email, password); err != nil {
		a.logger.Warn("admin login rejected", "email", email)
		return nil, err
	}

	d, err := admin.NewDashboard(a.client, a.logger)
	if err != nil {
		return nil, err
	}
	if err := d.Mount(cmd.Context()); err != nil {
		// forms still work with whatever loaded
		a.logger.Warn("dashboard data incomplete", "err", err)
	}
	return d, nil
}

// wrapErrors prints every command failure as the message a dashboard user would see
func wrapErrors(root *cobra.Command) *cobra.Command {
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		if run := c.RunE; run != nil {
			c.RunE = func(cmd *cobra.Command, args []string) error {
				err := run(cmd, args)
				if err == nil {
					return nil
				}
				msg := userMessage(err)
				cmd.PrintErrln("Error:", msg)
				return errors.New(msg)
			}
		}
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(root)
	return root
}

func userMessage(err error) string {
	if errors.Is(err, admin.ErrInvalidCredentials) {
		return "Invalid email or password."
	}
	var httpErr *silvertalent.HTTPError
	var netErr *silvertalent.NetworkError
	var verrs listing.ValidationErrors
	var verr listing.ValidationError
	if errors.As(err, &httpErr) || errors.As(err, &netErr) || errors.As(err, &verrs) || errors.As(err, &verr) {
		return listing.MessageOf(err, "")
	}
	return err.Error()
}

func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
