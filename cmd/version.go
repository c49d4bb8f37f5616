package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/holeframe/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of holeframe",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("holeframe v%s\n", version.Version)
		fmt.Println("Opening Reinforcement Framing")
		fmt.Printf("commit: %s\n", version.GitCommit)
		fmt.Printf("built:  %s\n", version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
