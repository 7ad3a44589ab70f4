package main

import (
	"fmt"
	"os"

	"github.com/adrianzap/softwipe/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "softwipe",
		Short: "softwipe - code quality scorer for C and C++ programs",
		Long: `softwipe benchmarks the software engineering quality of a C/C++ program.
It runs a pipeline of static analysis tools, weights their findings, and
condenses everything into one score between 0 and 10.`,
		Version: Version,
	}

	// Add subcommands
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("softwipe version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
