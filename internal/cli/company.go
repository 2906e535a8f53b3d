package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCompanyCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Seller profile",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return requireSession(a)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the company printed on documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.Quotes.Company(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load company: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n%s\n", c.NameAr, c.NameEn)
			rows := []struct{ label, value string }{
				{"Tax number", c.TaxNumber},
				{"Commercial reg.", c.CommercialRegistration},
				{"Address", strings.TrimSpace(strings.Join([]string{c.Building, c.Street, c.Neighborhood, c.City, c.Country}, " "))},
				{"Postal code", c.PostalCode},
				{"Phone", strings.Join(nonEmpty(c.Phone1, c.Phone2, c.Phone3), " | ")},
				{"Email", c.Email},
				{"Logo", c.LogoPath},
			}
			for _, r := range rows {
				if r.value != "" {
					fmt.Fprintf(w, "  %-16s %s\n", r.label+":", r.value)
				}
			}
			return nil
		},
	})
	return cmd
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// truncate shortens s to n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
