// Package main is the entry point for the combat simulator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dndgame",
	Short: "Turn-based tabletop RPG combat simulator",
	Long:  `dndgame runs an interactive single-player combat campaign: create a character, fight monsters, gain experience, and level up.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(rollCmd)
}
