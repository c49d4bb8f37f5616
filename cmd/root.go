package cmd

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/holeframe/internal/version"
)

var (
	verbose bool

	// Settings location, shared by every command that reads settings
	settingsDir string
	settingsDB  string
)

var rootCmd = &cobra.Command{
	Use:   "holeframe",
	Short: "Reinforcement framing around slab and wall openings",
	Long: `holeframe - rebar framing for rectangular openings

A CLI tool that lays out the reinforcement around rectangular holes
cut through floor slabs and walls:
  - Straight bars along every edge, anchored past the opening,
    paired across the thickness and repeated outward
  - U-shaped bent bars tying both faces together along every edge

Openings and their host elements are read from a JSON model file.
Framing settings are stored per model title.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := charmlog.InfoLevel
		if verbose {
			level = charmlog.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   holeframe v%-45s║\n", version.Version)
		fmt.Println("  ║   Opening Reinforcement Framing                           ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Lays out straight and U-shaped bars around rectangular")
		fmt.Println("  openings in floors and walls.")
		fmt.Println()
		fmt.Println("  Commands:")
		fmt.Println("    • layout    Frame every opening of a model")
		fmt.Println("    • frame     Show the derived frames of the openings")
		fmt.Println("    • settings  Show or edit the framing settings of a model")
		fmt.Println()
		fmt.Println("  Use 'holeframe --help' to see all commands and flags.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&settingsDir, "settings", "", "Settings directory (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&settingsDB, "db", "", "Settings sqlite database (overrides --settings)")
}
