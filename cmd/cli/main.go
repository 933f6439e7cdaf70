package main

import (
	"fmt"
	"os"

	"github.com/miky2184/chargeability-manager-api/cmd/cli/auth"
	"github.com/miky2184/chargeability-manager-api/cmd/cli/reports"
	"github.com/miky2184/chargeability-manager-api/cmd/cli/resources"
	"github.com/miky2184/chargeability-manager-api/cmd/cli/root"
	"github.com/miky2184/chargeability-manager-api/cmd/cli/wbs"
)

func main() {
	auth.Init(root.RootCmd)
	reports.Init(root.RootCmd)
	wbs.Init(root.RootCmd)
	resources.Init(root.RootCmd)

	if err := root.RootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
