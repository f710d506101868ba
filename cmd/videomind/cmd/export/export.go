package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"videomind/internal/app"
	appexport "videomind/internal/app/export"
	"videomind/internal/config"
)

// NewCommand returns the export subcommand.
func NewCommand() *cobra.Command {
	var (
		out   string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export completed analyses to an xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(out, limit)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "videomind-export.xlsx", "output file path")
	cmd.Flags().IntVarP(&limit, "limit", "n", 500, "maximum number of jobs to export")
	return cmd
}

func run(out string, limit int) error {
	cfg := config.Load()

	dao, err := app.ProvideJobDAO(cfg)
	if err != nil {
		return err
	}
	defer dao.Close()

	jobs, err := dao.ListCompleted(limit)
	if err != nil {
		return err
	}

	if err := appexport.ToExcel(jobs, out); err != nil {
		return err
	}

	fmt.Printf("Exported %d jobs to %s\n", len(jobs), out)
	return nil
}
