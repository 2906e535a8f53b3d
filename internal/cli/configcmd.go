package cli

import (
	"fmt"
	"strconv"

	"go-quote-desk/internal/i18n"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change client settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the settings in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.Config)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", a.ConfigPath, data)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [key] [value]",
		Short: "Change one setting and save the file",
		Long: `Keys: base_url, export_strategy (server|local), output_dir, language (ar|en),
timeout_seconds, pdf_font_path.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated := *a.Config
			key, value := args[0], args[1]
			switch key {
			case "base_url":
				updated.BaseURL = value
			case "export_strategy":
				updated.ExportStrategy = value
			case "output_dir":
				updated.OutputDir = value
			case "language":
				updated.Language = i18n.Normalize(value)
			case "timeout_seconds":
				n, err := strconv.Atoi(value)
				if err != nil || n <= 0 {
					return usagef("timeout_seconds must be a positive number")
				}
				updated.TimeoutSeconds = n
			case "pdf_font_path":
				updated.PDFFontPath = value
			default:
				return usagef("unknown setting %q", key)
			}
			if err := updated.Validate(); err != nil {
				return usagef("%v", err)
			}
			if err := updated.Save(a.ConfigPath); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			*a.Config = updated
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", key, value)
			return nil
		},
	})
	return cmd
}
