package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/noah-isme/escola-api/internal/models"
	"github.com/noah-isme/escola-api/internal/repository"
	"github.com/noah-isme/escola-api/pkg/database"
)

func newStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "stats",
		Short:        "Print entity totals",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			if cfg.Database.AutoMigrate {
				if err := database.Migrate(cmd.Context(), db); err != nil {
					return err
				}
			}

			summary, err := repository.NewSummaryRepository(db).Totals(cmd.Context())
			if err != nil {
				return err
			}
			renderSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func renderSummary(w io.Writer, summary *models.Summary) {
	color.New(color.FgYellow).Fprintln(w, "Totais")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Entidade", "Total"})
	rows := [][]string{
		{"alunos", strconv.Itoa(summary.TotalStudents)},
		{"professores", strconv.Itoa(summary.TotalTeachers)},
		{"cursos", strconv.Itoa(summary.TotalCourses)},
		{"turmas", strconv.Itoa(summary.TotalClasses)},
	}
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}
