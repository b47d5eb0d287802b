package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"ruru-backoffice/internal/config"
	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/gateway/ruru"
	"ruru-backoffice/internal/logx"
)

const tokenEnv = "RURU_TOKEN"

var errNoToken = errors.New("no API token: pass --token or set " + tokenEnv)

// cli carries the flags and collaborators shared by every command.
type cli struct {
	out        io.Writer
	logger     logx.Logger
	loadConfig func() (*config.Config, error)

	cfg     *config.Config
	client  *ruru.Client
	token   string
	baseURL string
	verbose bool

	page   int
	limit  int
	search string
	status string
}

func newCLI(out io.Writer) *cli {
	return &cli{
		out:        out,
		logger:     logx.Nop(),
		loadConfig: config.FromEnv,
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "ruructl",
		Short:         "Operate the Ruru back-office from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.setup()
		},
	}
	root.SetOut(c.out)

	pf := root.PersistentFlags()
	pf.StringVar(&c.token, "token", "", "bearer token (default $"+tokenEnv+")")
	pf.StringVar(&c.baseURL, "api-base-url", "", "Ruru REST API base URL (default $RURU_API_BASE_URL)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "log API calls to stderr")

	root.AddCommand(
		newLoginCmd(c),
		newCouriersCmd(c),
		newListCmd(c, "customers", "List customers", listCustomers),
		newListCmd(c, "riders", "List riders", listRiders),
		newListCmd(c, "transactions", "List transactions", listTransactions),
		newUsersCmd(c),
		newCountsCmd(c),
		newAuditCmd(c),
	)
	return root
}

func (c *cli) setup() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.verbose {
		c.logger = logx.NewJSON(os.Stderr, slog.LevelDebug)
	}
	if c.baseURL == "" {
		c.baseURL = cfg.API.BaseURL
	}
	if c.token == "" {
		c.token = os.Getenv(tokenEnv)
	}

	doer := ruru.NewRetryingDoer(&http.Client{Timeout: cfg.API.Timeout}, c.logger, nil, ruru.RetryConfig{
		MaxAttempts: cfg.API.MaxAttempts,
		BaseDelay:   cfg.API.BaseDelay,
		MaxDelay:    cfg.API.MaxDelay,
	})
	client, err := ruru.New(c.baseURL, doer, c.logger)
	if err != nil {
		return err
	}
	c.client = client
	return nil
}

// authed returns the client bound to the caller's token.
func (c *cli) authed() (*ruru.Client, error) {
	if c.token == "" {
		return nil, errNoToken
	}
	return c.client.As(ruru.StaticToken(c.token)), nil
}

func (c *cli) pageRequest() domain.PageRequest {
	return domain.PageRequest{Page: c.page, Limit: c.limit}.Normalize(c.cfg.UI.PageSize)
}

func addPageFlags(cmd *cobra.Command, c *cli) {
	f := cmd.Flags()
	f.IntVar(&c.page, "page", 1, "page number")
	f.IntVar(&c.limit, "limit", 0, "page size (default $PAGE_SIZE)")
	f.StringVarP(&c.search, "search", "s", "", "filter the page by free text")
	f.StringVar(&c.status, "status", "", "filter the page by status")
}
