package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/dndgame/internal/config"
	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/observability"
)

var rollDebug bool

var rollCmd = &cobra.Command{
	Use:   "roll <expression>...",
	Short: "Roll dice expressions",
	Long:  `Roll one or more dice expressions of the form NdS, NdS+M, or NdS-M, e.g. "3d6" or "1d20+5".`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRoll,
}

func init() {
	rollCmd.Flags().BoolVar(&rollDebug, "debug", false, "log each roll's dice and modifier")
}

func runRoll(cmd *cobra.Command, args []string) error {
	level := "info"
	if rollDebug {
		level = "debug"
	}
	logger := observability.MustLogger(config.LoggingConfig{Level: level, Format: "console"})
	defer logger.Sync()

	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), logger)
	for _, arg := range args {
		result, err := roller.RollExpr(arg)
		if err != nil {
			return fmt.Errorf("rolling %q: %w", arg, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.String())
	}
	return nil
}
