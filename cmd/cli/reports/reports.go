package reports

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/miky2184/chargeability-manager-api/cmd/cli/client"
	"github.com/miky2184/chargeability-manager-api/cmd/cli/output"
)

// Init registers the report commands on the root command.
func Init(rootCmd *cobra.Command) {
	rootCmd.AddCommand(reportCmd("forecast", "/forecast", "Show the staffing forecast"))
	rootCmd.AddCommand(reportCmd("chargeability", "/chargeability", "Show chargeability per resource"))
	rootCmd.AddCommand(reportCmd("time-reports", "/time-reports", "Show the monthly time reports"))
}

func reportCmd(use, path, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows []map[string]any
			if err := client.Do(http.MethodGet, path, nil, &rows); err != nil {
				return fmt.Errorf("failed to fetch %s: %w", use, err)
			}
			output.RenderMaps(rows)
			return nil
		},
	}
}
