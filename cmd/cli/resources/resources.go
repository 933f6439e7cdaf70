package resources

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/miky2184/chargeability-manager-api/cmd/cli/client"
	"github.com/miky2184/chargeability-manager-api/cmd/cli/output"
)

// Init registers the resources command group on the root command.
func Init(rootCmd *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Manage resource (employee) records",
	}
	cmd.AddCommand(listCmd(), createCmd(), updateCmd(), deleteCmd())
	rootCmd.AddCommand(cmd)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows []map[string]any
			if err := client.Do(http.MethodGet, "/resources", nil, &rows); err != nil {
				return fmt.Errorf("failed to list resources: %w", err)
			}
			output.RenderMaps(rows)
			return nil
		},
	}
}

func resourceFlags(cmd *cobra.Command, lastName, firstName, level, office, dte *string, loadedCost *float64) {
	cmd.Flags().StringVar(lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(level, "level", "", "Seniority level")
	cmd.Flags().Float64Var(loadedCost, "loaded-cost", 0, "Loaded cost")
	cmd.Flags().StringVar(office, "office", "", "Office")
	cmd.Flags().StringVar(dte, "dte", "", "Hire date (YYYY-MM-DD)")
}

func createCmd() *cobra.Command {
	var lastName, firstName, level, office, dte string
	var loadedCost float64

	cmd := &cobra.Command{
		Use:   "create <eid>",
		Short: "Create a resource record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"eid":         args[0],
				"last_name":   lastName,
				"first_name":  firstName,
				"level":       level,
				"loaded_cost": loadedCost,
				"office":      office,
			}
			if dte != "" {
				payload["dte"] = dte
			}
			if err := client.Do(http.MethodPost, "/resources", payload, nil); err != nil {
				return fmt.Errorf("failed to create resource: %w", err)
			}
			fmt.Println("Resource created.")
			return nil
		},
	}

	resourceFlags(cmd, &lastName, &firstName, &level, &office, &dte, &loadedCost)
	return cmd
}

func updateCmd() *cobra.Command {
	var lastName, firstName, level, office, dte string
	var loadedCost float64

	cmd := &cobra.Command{
		Use:   "update <eid>",
		Short: "Update a resource record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"last_name":   lastName,
				"first_name":  firstName,
				"level":       level,
				"loaded_cost": loadedCost,
				"office":      office,
			}
			if dte != "" {
				payload["dte"] = dte
			}
			if err := client.Do(http.MethodPut, "/resources/"+args[0], payload, nil); err != nil {
				return fmt.Errorf("failed to update resource: %w", err)
			}
			fmt.Println("Resource updated.")
			return nil
		},
	}

	resourceFlags(cmd, &lastName, &firstName, &level, &office, &dte, &loadedCost)
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <eid>",
		Short: "Delete a resource record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Do(http.MethodDelete, "/resources/"+args[0], nil, nil); err != nil {
				return fmt.Errorf("failed to delete resource: %w", err)
			}
			fmt.Println("Resource deleted.")
			return nil
		},
	}
}
