package contentcmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exchangedesk/fortworth1031/platform/go/export"
	platformlogging "github.com/exchangedesk/fortworth1031/platform/go/logging"
	"github.com/exchangedesk/fortworth1031/platform/go/setups"
)

// Command groups content helpers (validate, list, export).
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect batch content (validate, list, export)",
	}

	cmd.PersistentFlags().String("dir", os.Getenv("CONTENT_DIR"), "Content directory (empty uses the embedded content)")

	cmd.AddCommand(validateCommand())
	cmd.AddCommand(listCommand())
	cmd.AddCommand(exportCommand())
	return cmd
}

func load(cmd *cobra.Command) (setups.Content, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return setups.Content{}, err
	}
	loaded, err := setups.LoadContent(setups.ContentConfig{Dir: dir}.FS())
	if err != nil {
		return setups.Content{}, fmt.Errorf("load content: %w", err)
	}
	return loaded, nil
}

func validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every record against the entity schemas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := load(cmd)
			if err != nil {
				return err
			}

			logger, err := platformlogging.NewLogger(platformlogging.Config{
				Component: "cli",
				Console:   true,
				Output:    cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			for _, d := range loaded.Catalog.Duplicates() {
				logger.Info("duplicate slug", zap.String("entity", string(d.Entity)), zap.String("slug", d.Slug))
			}

			out := cmd.OutOrStdout()
			for _, issue := range loaded.Issues {
				fmt.Fprintln(out, issue.String())
			}
			if len(loaded.Issues) > 0 {
				return fmt.Errorf("%d content records failed validation", len(loaded.Issues))
			}

			fmt.Fprintf(out, "ok: %d locations, %d services, %d spotlights\n",
				len(loaded.Catalog.Locations()), len(loaded.Catalog.Services()), len(loaded.Catalog.Spotlights()))
			return nil
		},
	}
}

func listCommand() *cobra.Command {
	var entity string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List normalized locations or services",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := load(cmd)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			switch strings.ToLower(entity) {
			case "locations":
				fmt.Fprintln(tw, "SLUG\tNAME\tTYPE\tIMAGE")
				for _, l := range loaded.Catalog.Locations() {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.Slug, l.Name, l.Type, orDash(l.HeroImage))
				}
			case "services":
				fmt.Fprintln(tw, "SLUG\tNAME\tCATEGORY")
				for _, s := range loaded.Catalog.Services() {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Slug, s.Name, s.Category)
				}
			default:
				return errors.New("entity must be locations or services")
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&entity, "entity", "locations", "Entity to list (locations, services)")
	return cmd
}

func exportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write locations and services to an xlsx workbook for review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := load(cmd)
			if err != nil {
				return err
			}

			if err := export.SaveFile(out, func(w io.Writer) error {
				return export.Content(w, loaded.Catalog)
			}); err != nil {
				return fmt.Errorf("export content: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "content.xlsx", "Output workbook path")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
