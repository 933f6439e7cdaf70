package wbs

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/miky2184/chargeability-manager-api/cmd/cli/client"
	"github.com/miky2184/chargeability-manager-api/cmd/cli/output"
)

// Init registers the wbs command group on the root command.
func Init(rootCmd *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "wbs",
		Short: "Manage WBS entries",
	}
	cmd.AddCommand(listCmd(), createCmd(), updateCmd(), deleteCmd())
	rootCmd.AddCommand(cmd)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List WBS entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows []map[string]any
			if err := client.Do(http.MethodGet, "/wbs", nil, &rows); err != nil {
				return fmt.Errorf("failed to list wbs: %w", err)
			}
			output.RenderMaps(rows)
			return nil
		},
	}
}

func createCmd() *cobra.Command {
	var wbsType, projectName string
	var budgetMM, budgetTot float64

	cmd := &cobra.Command{
		Use:   "create <wbs>",
		Short: "Create a WBS entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"wbs":          args[0],
				"wbs_type":     wbsType,
				"project_name": projectName,
				"budget_mm":    budgetMM,
				"budget_tot":   budgetTot,
			}
			if err := client.Do(http.MethodPost, "/wbs", payload, nil); err != nil {
				return fmt.Errorf("failed to create wbs: %w", err)
			}
			fmt.Println("WBS created.")
			return nil
		},
	}

	cmd.Flags().StringVar(&wbsType, "type", "", "WBS type")
	cmd.Flags().StringVar(&projectName, "project", "", "Project name")
	cmd.Flags().Float64Var(&budgetMM, "budget-mm", 0, "Budget in man-months")
	cmd.Flags().Float64Var(&budgetTot, "budget-tot", 0, "Total budget")

	return cmd
}

func updateCmd() *cobra.Command {
	var wbsType, projectName string
	var budgetMM, budgetTot float64

	cmd := &cobra.Command{
		Use:   "update <wbs>",
		Short: "Update a WBS entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"wbs_type":     wbsType,
				"project_name": projectName,
				"budget_mm":    budgetMM,
				"budget_tot":   budgetTot,
			}
			if err := client.Do(http.MethodPut, "/wbs/"+args[0], payload, nil); err != nil {
				return fmt.Errorf("failed to update wbs: %w", err)
			}
			fmt.Println("WBS updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&wbsType, "type", "", "WBS type")
	cmd.Flags().StringVar(&projectName, "project", "", "Project name")
	cmd.Flags().Float64Var(&budgetMM, "budget-mm", 0, "Budget in man-months")
	cmd.Flags().Float64Var(&budgetTot, "budget-tot", 0, "Total budget")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <wbs>",
		Short: "Delete a WBS entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Do(http.MethodDelete, "/wbs/"+args[0], nil, nil); err != nil {
				return fmt.Errorf("failed to delete wbs: %w", err)
			}
			fmt.Println("WBS deleted.")
			return nil
		},
	}
}
