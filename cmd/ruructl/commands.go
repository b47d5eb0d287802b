package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ruru-backoffice/internal/audit"
	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/repository"
	"ruru-backoffice/internal/resource"
	"ruru-backoffice/internal/service/admin"
	"ruru-backoffice/internal/view"
)

func newLoginCmd(c *cli) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange admin credentials for a token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "signed in as %s\n", res.User.FullName())
			fmt.Fprintf(c.out, "export %s=%s\n", tokenEnv, res.Token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "admin email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// loadTable fetches one page into a table and applies the search and status filters.
func loadTable[T any](ctx context.Context, c *cli, d resource.Descriptor[T]) (*resource.Table[T], error) {
	t := resource.NewTable(d, nil)
	if err := t.Load(ctx, c.pageRequest()); err != nil {
		return nil, err
	}
	t.SetQuery(c.search)
	if c.status != "" {
		t.SetStatus(c.status)
	}
	return t, nil
}

func listResource[T any](ctx context.Context, c *cli, d resource.Descriptor[T], cols []view.Column[T]) error {
	t, err := loadTable(ctx, c, d)
	if err != nil {
		return err
	}
	st := t.Snapshot()
	if err := printTable(c.out, cols, t.Filtered()); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "\npage %d of %d, %d total\n", st.Pagination.Page, st.Pagination.TotalPages, st.Pagination.Total)
	return nil
}

type listFunc func(ctx context.Context, c *cli, api admin.API) error

func listCouriers(ctx context.Context, c *cli, api admin.API) error {
	return listResource(ctx, c, admin.CourierDescriptor(api), view.CourierColumns())
}

func listCustomers(ctx context.Context, c *cli, api admin.API) error {
	return listResource(ctx, c, admin.CustomerDescriptor(api), view.CustomerColumns())
}

func listRiders(ctx context.Context, c *cli, api admin.API) error {
	return listResource(ctx, c, admin.RiderDescriptor(api), view.RiderColumns())
}

func listTransactions(ctx context.Context, c *cli, api admin.API) error {
	return listResource(ctx, c, admin.TransactionDescriptor(api), view.TransactionColumns())
}

func newListCmd(c *cli, name, short string, fn listFunc) *cobra.Command {
	parent := &cobra.Command{Use: name, Short: short}
	parent.AddCommand(newListSubCmd(c, short, fn))
	return parent
}

func newListSubCmd(c *cli, short string, fn listFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := c.authed()
			if err != nil {
				return err
			}
			return fn(cmd.Context(), c, api)
		},
	}
	addPageFlags(cmd, c)
	return cmd
}

func newCouriersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "couriers", Short: "Courier companies"}
	cmd.AddCommand(newListSubCmd(c, "List courier companies", listCouriers), newVerifyDocumentCmd(c))
	return cmd
}

func newVerifyDocumentCmd(c *cli) *cobra.Command {
	var (
		reject  bool
		comment string
	)
	cmd := &cobra.Command{
		Use:   "verify-document COURIER_ID DOCUMENT_ID",
		Short: "Approve or reject a pending courier document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("document id %q: %w", args[1], err)
			}
			api, err := c.authed()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			actor, err := api.UserDetails(ctx)
			if err != nil {
				return err
			}
			t, err := loadTable(ctx, c, admin.CourierDescriptor(api))
			if err != nil {
				return err
			}

			svc := admin.New(audit.NewLogPublisher(c.logger), c.logger, nil)
			updated, err := t.Mutate(ctx, args[0], svc.VerifyDocument(api, actor, docID, !reject, comment))
			if err != nil {
				return err
			}
			doc, _ := updated.Document(docID)
			fmt.Fprintf(c.out, "courier %s document %d is now %s\n", args[0], docID, doc.Status)
			return nil
		},
	}
	addPageFlags(cmd, c)
	cmd.Flags().BoolVar(&reject, "reject", false, "reject instead of approve")
	cmd.Flags().StringVar(&comment, "comment", "", "comment sent with the decision")
	return cmd
}

func newUsersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "User accounts"}
	for _, active := range []bool{true, false} {
		verb := "deactivate"
		if active {
			verb = "activate"
		}
		cmd.AddCommand(&cobra.Command{
			Use:   verb + " USER_ID",
			Short: view.Humanize(verb) + " a user account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("user id %q: %w", args[0], err)
				}
				api, err := c.authed()
				if err != nil {
					return err
				}
				if err := api.SetUserActive(cmd.Context(), id, active); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "user %d is now %s\n", id, admin.ActiveLabel(active))
				return nil
			},
		})
	}
	return cmd
}

func newCountsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Show dashboard totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := c.authed()
			if err != nil {
				return err
			}
			counts, err := api.Counts(cmd.Context())
			if err != nil {
				return err
			}
			return printTable(c.out, countColumns, []domain.Counts{counts})
		},
	}
}

var countColumns = []view.Column[domain.Counts]{
	{Header: "Couriers", Value: func(n domain.Counts) string { return strconv.Itoa(n.TotalCouriers) }},
	{Header: "Riders", Value: func(n domain.Counts) string { return strconv.Itoa(n.TotalRiders) }},
	{Header: "Customers", Value: func(n domain.Counts) string { return strconv.Itoa(n.TotalCustomers) }},
}

type auditLister interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// openAuditStore is replaced in tests.
var openAuditStore = func(ctx context.Context, dsn string) (auditLister, func(), error) {
	pool, err := repository.NewPool(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewAuditRepo(pool), pool.Close, nil
}

func newAuditCmd(c *cli) *cobra.Command {
	var limit int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "Show the latest admin mutations from the audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closeFn, err := openAuditStore(cmd.Context(), c.cfg.DB.DSN())
			if err != nil {
				return err
			}
			defer closeFn()
			events, err := store.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printTable(c.out, auditColumns, events)
		},
	}
	recent.Flags().IntVarP(&limit, "limit", "n", 20, "number of events")

	cmd := &cobra.Command{Use: "audit", Short: "Audit log"}
	cmd.AddCommand(recent)
	return cmd
}

var auditColumns = []view.Column[audit.Event]{
	{Header: "When", Value: func(e audit.Event) string { return view.DateTime(e.At) }},
	{Header: "Actor", Value: func(e audit.Event) string { return e.Actor }},
	{Header: "Action", Value: func(e audit.Event) string { return string(e.Action) }},
	{Header: "Resource", Value: func(e audit.Event) string { return e.Resource + "/" + e.TargetID }},
	{Header: "Detail", Value: func(e audit.Event) string { return e.Detail }},
}
