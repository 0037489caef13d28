package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "souffle [paths...]",
	Short:            "souffle - a Datalog program minimisation toolkit",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'souffle' is entered
			_ = cmd.Help()
			return
		}
		// Format: souffle [path1 path2 ...] => behaves like the minimise subcommand
		minimiseCmd.Run(minimiseCmd, args)
	},
}

// Execute runs the root command with the given logger.
func Execute(l *zap.Logger) error {
	logger = l
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to the configuration file")
	rootCmd.AddCommand(minimiseCmd)
	rootCmd.AddCommand(printCmd)
}
