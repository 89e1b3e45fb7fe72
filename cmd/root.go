package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosheet/internal/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gosheet",
	Short: "Sheet Metal Plasticity and Forming Calculator",
	Long: `gosheet - Go Sheet Metal Forming Calculator

A CLI tool for the mechanics of sheet metal forming.

This tool helps process engineers perform:
  - Stress tensor analysis (invariants, principal stresses, Mohr circles)
  - Yield criterion evaluation (von Mises, Tresca, Hill, Hosford)
  - Forming limit prediction (Swift diffuse and Hill localized necking)
  - Tube pressure at first yield
  - Stretch forming and channel stamping with friction
  - Imperfection-driven necking and elastic-plastic bending

Units are MPa, mm and N unless a flag says otherwise.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gosheet v%-47s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Sheet Metal Forming Calculator                       ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Stress invariants, principal stresses and directions")
		fmt.Fprintln(out, "    • Isotropic and anisotropic yield loci")
		fmt.Fprintln(out, "    • Forming limit curves")
		fmt.Fprintln(out, "    • Tube, stretch, stamping, imperfection and bending problems")
		fmt.Fprintln(out, "    • Batch case files in TOML")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gosheet --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command, runs it under ctx and
// returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging of solver iterations")
}
