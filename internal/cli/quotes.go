package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-quote-desk/internal/i18n"
	"go-quote-desk/internal/models"
	"go-quote-desk/internal/quote"
	"go-quote-desk/internal/render"

	"github.com/spf13/cobra"
)

func newQuotesCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quotes",
		Aliases: []string{"q"},
		Short:   "Manage quotes",
		Long:    `List, create, edit, view, export and delete quotes.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return requireSession(a)
		},
	}

	cmd.AddCommand(newQuotesListCmd(a))
	cmd.AddCommand(newQuotesShowCmd(a))
	cmd.AddCommand(newQuotesNewCmd(a))
	cmd.AddCommand(newQuotesEditCmd(a))
	cmd.AddCommand(newQuotesViewCmd(a))
	cmd.AddCommand(newQuotesExportCmd(a))
	cmd.AddCommand(newQuotesDeleteCmd(a))
	return cmd
}

func newQuotesListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List quotes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quotes, err := a.Quotes.Quotes(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list quotes: %w", err)
			}
			printQuoteList(cmd.OutOrStdout(), quotes)
			return nil
		},
	}
}

func newQuotesShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one quote with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := fetchOrList(cmd, a, args[0])
			if err != nil {
				return err
			}
			printQuote(cmd.OutOrStdout(), q)
			return nil
		},
	}
}

func newQuotesNewCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a quote from a YAML draft",
		Long: `Create a quote from a YAML draft file:

  customer:
    name: شركة المثال
    phone: "0500000000"
  project_description: مظلات سيارات
  location: الرياض
  items:
    - description: مظلة
      quantity: "2"
      unit: متر
      unit_price: "1500"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			if path == "" {
				return usagef("--file is required")
			}
			draft, err := LoadDraft(path)
			if err != nil {
				return err
			}
			f, err := draft.Form()
			if err != nil {
				return err
			}
			return submit(cmd, a, f)
		},
	}
	cmd.Flags().StringP("file", "f", "", "Draft file (YAML)")
	return cmd
}

func newQuotesEditCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a quote",
		Long: `Edit a quote. Changes apply in order: --remove-item, --add-item, --set.
Item numbers are the ones "quotes show" prints; --set counts after removals and additions.

  quotectl quotes edit ID --add-item --set 2.description=مظلة --set 2.unit_price=900`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := fetchOrList(cmd, a, args[0])
			if err != nil {
				return err
			}

			edits, err := editsFromFlags(cmd)
			if err != nil {
				return err
			}
			f := quote.EditForm(q)
			if err := edits.Apply(f); err != nil {
				return err
			}
			return submit(cmd, a, f)
		},
	}
	cmd.Flags().Int("add-item", 0, "Append N empty items")
	cmd.Flags().Lookup("add-item").NoOptDefVal = "1"
	cmd.Flags().IntSlice("remove-item", nil, "Remove item N (repeatable)")
	cmd.Flags().StringArray("set", nil, "Set an item field: N.field=value (description, quantity, unit, unit_price)")
	cmd.Flags().StringArray("customer", nil, "Set a customer field: field=value")
	cmd.Flags().String("project", "", "Project description")
	cmd.Flags().String("location", "", "Project location")
	cmd.Flags().String("notes", "", "Notes")
	return cmd
}

func editsFromFlags(cmd *cobra.Command) (*Edits, error) {
	e := &Edits{}
	e.Add, _ = cmd.Flags().GetInt("add-item")
	if e.Add < 0 {
		return nil, usagef("--add-item must not be negative")
	}
	e.Remove, _ = cmd.Flags().GetIntSlice("remove-item")
	e.Set, _ = cmd.Flags().GetStringArray("set")
	e.Customer, _ = cmd.Flags().GetStringArray("customer")

	optional := map[string]**string{"project": &e.Project, "location": &e.Location, "notes": &e.Notes}
	for name, dst := range optional {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*dst = &v
		}
	}
	return e, nil
}

// submit sends the form and refreshes the list on success. On failure nothing
// entered is lost: the form is simply not saved.
func submit(cmd *cobra.Command, a *App, f *quote.Form) error {
	saved, err := f.Submit(cmd.Context(), a.API, a.Quotes.Refresh)
	if err != nil {
		return err
	}

	key := "quote_created"
	if f.IsEdit() {
		key = "quote_updated"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ %s: %s%s\n", i18n.T(a.lang(), key), quote.DocumentPrefix, saved.QuoteNumber)
	fmt.Fprintf(out, "  Total: %s %s\n", render.FormatMoney(saved.TotalAmount), render.Currency)
	return nil
}

func newQuotesViewCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [id]",
		Short: "Save the printable document (HTML)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := fetchOrList(cmd, a, args[0])
			if err != nil {
				return err
			}
			html, err := NewExporter(a).Document(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("failed to render document: %w", err)
			}

			path, _ := cmd.Flags().GetString("output")
			if path == "" {
				path = filepath.Join(a.Config.OutputDir, quote.ExportFileName(q, quote.FormatHTML))
			}
			if err := writeFile(path, html); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default: <output_dir>/<name>.html)")
	return cmd
}

func newQuotesExportCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a quote as PDF or Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if _, ok := quote.Extension(format); !ok || format == quote.FormatHTML {
				return usagef("unsupported format %q (use pdf or excel)", format)
			}

			q, err := fetchOrList(cmd, a, args[0])
			if err != nil {
				return err
			}
			name, data, err := NewExporter(a).Export(cmd.Context(), q, format)
			if err != nil {
				return fmt.Errorf("failed to export quote: %w", err)
			}

			dir, _ := cmd.Flags().GetString("output")
			if dir == "" {
				dir = a.Config.OutputDir
			}
			path := filepath.Join(dir, filepath.Base(name))
			if err := writeFile(path, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", path)
			return nil
		},
	}
	cmd.Flags().String("format", quote.FormatPDF, "pdf or excel")
	cmd.Flags().StringP("output", "o", "", "Output directory (default: output_dir from config)")
	return cmd
}

func newQuotesDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a quote (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.API.DeleteQuote(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete quote: %w", err)
			}
			a.Quotes.Refresh(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", i18n.T(a.lang(), "quote_deleted"))
			return nil
		},
	}
}

// fetchOrList loads a quote. When that fails the user is sent back to the
// list: it is printed and the error is returned for Execute to report.
func fetchOrList(cmd *cobra.Command, a *App, id string) (*models.Quote, error) {
	q, err := a.API.GetQuote(cmd.Context(), id)
	if err == nil {
		return q, nil
	}

	if quotes, lerr := a.Quotes.Quotes(cmd.Context()); lerr == nil {
		printQuoteList(cmd.OutOrStdout(), quotes)
	}
	return nil, fmt.Errorf("failed to load quote %s: %w", id, err)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func printQuoteList(w io.Writer, quotes []models.Quote) {
	if len(quotes) == 0 {
		fmt.Fprintln(w, "No quotes found")
		return
	}

	fmt.Fprintf(w, "%-36s %-12s %-25s %-25s %14s %-10s\n", "ID", "Number", "Customer", "Project", "Total", "Date")
	fmt.Fprintln(w, "------------------------------------------------------------------------------------------------------------------------------")
	for _, q := range quotes {
		fmt.Fprintf(w, "%-36s %-12s %-25s %-25s %14s %-10s\n",
			q.ID,
			quote.DocumentPrefix+q.QuoteNumber,
			truncate(q.Customer.Name, 25),
			truncate(firstLine(q.ProjectDescription), 25),
			render.FormatMoney(q.TotalAmount),
			q.CreatedDate.In(render.DocumentZone).Format("2006-01-02"),
		)
	}
	fmt.Fprintf(w, "\nTotal: %d quote(s)\n", len(quotes))
}

func printQuote(w io.Writer, q *models.Quote) {
	fmt.Fprintf(w, "Quote:    %s%s\n", quote.DocumentPrefix, q.QuoteNumber)
	fmt.Fprintf(w, "Date:     %s\n", q.CreatedDate.In(render.DocumentZone).Format("2006-01-02"))
	fmt.Fprintf(w, "Customer: %s\n", q.Customer.Name)
	if q.Customer.Phone != "" {
		fmt.Fprintf(w, "Phone:    %s\n", q.Customer.Phone)
	}
	fmt.Fprintf(w, "Project:  %s\n", q.ProjectDescription)
	if q.Location != "" {
		fmt.Fprintf(w, "Location: %s\n", q.Location)
	}

	fmt.Fprintf(w, "\n%-4s %-30s %10s %-10s %14s %14s\n", "#", "Description", "Qty", "Unit", "Unit Price", "Total")
	for i, item := range q.Items {
		fmt.Fprintf(w, "%-4d %-30s %10s %-10s %14s %14s\n",
			i+1,
			truncate(item.Description, 30),
			render.FormatQuantity(item.Quantity),
			item.Unit,
			render.FormatMoney(item.UnitPrice),
			render.FormatMoney(item.TotalPrice),
		)
	}

	fmt.Fprintf(w, "\n%-20s %14s\n", "Subtotal:", render.FormatMoney(q.Subtotal))
	fmt.Fprintf(w, "%-20s %14s\n", "VAT (15%):", render.FormatMoney(q.TaxAmount))
	fmt.Fprintf(w, "%-20s %14s %s\n", "Total:", render.FormatMoney(q.TotalAmount), render.Currency)
	if q.Notes != "" {
		fmt.Fprintf(w, "\nNotes:\n%s\n", q.Notes)
	}
}
