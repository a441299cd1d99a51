package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ternarybob/buildlog/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		common.LoadVersionFromFile()
		common.PrintBanner(common.Version)
		fmt.Printf("BuildLog version %s\n", common.GetFullVersion())
	},
}
