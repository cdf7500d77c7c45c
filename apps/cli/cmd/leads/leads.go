package leadscmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	contactrepo "github.com/exchangedesk/fortworth1031/domains/contact/be/repo"
	"github.com/exchangedesk/fortworth1031/platform/go/export"
	"github.com/exchangedesk/fortworth1031/platform/go/persistence"
	"github.com/exchangedesk/fortworth1031/platform/go/setups"
)

const exportPageSize = 500

// Command groups lead helpers (list, export).
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Read captured leads (list, export)",
	}

	defaults, _ := env.ParseAs[setups.LeadStoreConfig]()
	cmd.PersistentFlags().String("store", defaults.Kind, "Lead store (sqlite, postgres)")
	cmd.PersistentFlags().String("sqlite-path", defaults.SQLitePath, "SQLite database path")
	cmd.PersistentFlags().String("database-url", defaults.DatabaseURL, "PostgreSQL connection string")

	cmd.AddCommand(listCommand())
	cmd.AddCommand(exportCommand())
	return cmd
}

func openRepo(cmd *cobra.Command) (contactrepo.Repository, func(), error) {
	kind, _ := cmd.Flags().GetString("store")
	sqlitePath, _ := cmd.Flags().GetString("sqlite-path")
	databaseURL, _ := cmd.Flags().GetString("database-url")

	if kind == "memory" {
		return nil, nil, fmt.Errorf("the memory lead store only lives inside the web process")
	}
	return setups.OpenLeads(cmd.Context(), setups.LeadStoreConfig{
		Kind:        kind,
		SQLitePath:  sqlitePath,
		DatabaseURL: databaseURL,
	})
}

func listCommand() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, release, err := openRepo(cmd)
			if err != nil {
				return err
			}
			defer release()

			leads, err := repo.List(cmd.Context(), persistence.ListLeadsParams{Limit: limit, Offset: offset})
			if err != nil {
				return fmt.Errorf("list leads: %w", err)
			}

			if len(leads) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No leads found.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED_AT\tNAME\tEMAIL\tCITY\tPROJECT_TYPE")
			for _, l := range leads {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					l.LeadID, l.CreatedAt.UTC().Format(time.RFC3339), l.Name, l.Email, l.City, l.ProjectType)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum leads to print")
	cmd.Flags().IntVar(&offset, "offset", 0, "Leads to skip")
	return cmd
}

func exportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every lead to an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, release, err := openRepo(cmd)
			if err != nil {
				return err
			}
			defer release()

			leads, err := allLeads(cmd.Context(), repo)
			if err != nil {
				return err
			}

			if err := export.SaveFile(out, func(w io.Writer) error {
				return export.Leads(w, leads)
			}); err != nil {
				return fmt.Errorf("export leads: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d leads to %s\n", len(leads), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "leads.xlsx", "Output workbook path")
	return cmd
}

func allLeads(ctx context.Context, repo contactrepo.Repository) ([]persistence.Lead, error) {
	var all []persistence.Lead
	for offset := 0; ; offset += exportPageSize {
		page, err := repo.List(ctx, persistence.ListLeadsParams{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("list leads: %w", err)
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			return all, nil
		}
	}
}
