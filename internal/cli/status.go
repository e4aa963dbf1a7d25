package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arzan03/RetailStoreSeed/internal/services"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report what is seeded in the target database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, store, closeFn, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		report, err := services.NewInspector(store, cfg.Seed.PrincipalUser).Status(ctx)
		if err != nil {
			return err
		}
		renderStatus(cmd.OutOrStdout(), report)
		if !report.Seeded() {
			log.Warn().Str("database", report.Database).Msg("database is not fully seeded")
		}
		return nil
	},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func renderStatus(out io.Writer, r services.StatusReport) {
	fmt.Fprintf(out, "Database: %s\n", r.Database)
	fmt.Fprintf(out, "Documents: users=%d products=%d\n\n", r.Users, r.Products)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tTYPE\tPRESENT\tPASSWORD OK")
	for _, u := range r.SeedUsers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.UserName, u.UserType, yesNo(u.Present), yesNo(u.PasswordValid))
	}
	tw.Flush()
	fmt.Fprintln(out)

	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tTYPE\tPRICE")
	for _, p := range r.ProductList {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Type, decimal.NewFromFloat(p.Price).StringFixed(2))
	}
	tw.Flush()
	fmt.Fprintln(out)

	roles := make([]string, 0, len(r.PrincipalRoles))
	for _, role := range r.PrincipalRoles {
		roles = append(roles, role.Role+"@"+role.DB)
	}
	fmt.Fprintf(out, "Principal %s: exists=%s roles=[%s]\n", r.PrincipalUser, yesNo(r.PrincipalExists), strings.Join(roles, ", "))
}
