package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andreabedini/souffle"
	"github.com/andreabedini/souffle/formatter"
	"github.com/andreabedini/souffle/internal/codec"
	tt "github.com/andreabedini/souffle/internal/types"
)

var (
	ignorePasses    string
	writeInPlace    bool
	outPath         string
	fixpoint        bool
	jsonOutput      bool
	watchMode       bool
	minimiseTimeout time.Duration
)

var minimiseCmd = &cobra.Command{
	Use:   "minimise [paths...]",
	Short: "Minimise Datalog program documents",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), minimiseTimeout)
		defer cancel()

		engine, err := souffle.New(logger, cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize minimisation engine", zap.Error(err))
		}

		if fixpoint {
			engine.EnableFixpoint()
		}

		if ignorePasses != "" {
			passes := strings.Split(ignorePasses, ",")
			for _, pass := range passes {
				engine.IgnorePass(strings.TrimSpace(pass))
			}
		}

		if watchMode {
			if err := engine.StartWatching(args); err != nil {
				logger.Fatal("Failed to start watching", zap.Error(err))
			}
			defer engine.StopWatching()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt)
			<-sig
			return
		}

		results, err := souffle.ProcessPaths(ctx, logger, engine, args)
		if err != nil {
			logger.Error("Error processing paths", zap.Error(err))
			os.Exit(1)
		}

		printResults(results, jsonOutput)

		for _, result := range results {
			if err := writeResult(result); err != nil {
				logger.Error("Error writing program", zap.String("file", result.Filename), zap.Error(err))
				os.Exit(1)
			}
		}
	},
}

func init() {
	minimiseCmd.Flags().StringVar(&ignorePasses, "ignore", "", "Comma-separated list of passes to ignore")
	minimiseCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "Write the minimised program back to its file")
	minimiseCmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the minimised program to the given path")
	minimiseCmd.Flags().BoolVar(&fixpoint, "fixpoint", false, "Re-run the pipeline until the program stops changing")
	minimiseCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output changes in JSON format")
	minimiseCmd.Flags().BoolVar(&watchMode, "watch", false, "Watch the given directories and re-minimise on change")
	minimiseCmd.Flags().DurationVar(&minimiseTimeout, "timeout", 5*time.Minute, "Set a timeout for minimisation")
}

func printResults(results []souffle.FileResult, isJson bool) {
	changesByFile := make(map[string][]tt.Change)
	for _, result := range results {
		changesByFile[result.Filename] = result.Changes
	}

	sortedFiles := make([]string, 0, len(changesByFile))
	for filename := range changesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJson {
		// text output
		for _, filename := range sortedFiles {
			fmt.Println(formatter.GenerateFormattedReport(filename, changesByFile[filename]))
		}
		return
	}

	// JSON output
	d, err := json.Marshal(changesByFile)
	if err != nil {
		logger.Error("Error marshalling changes to JSON", zap.Error(err))
		return
	}
	fmt.Println(string(d))
}

func writeResult(result souffle.FileResult) error {
	switch {
	case writeInPlace:
		return codec.Save(result.Filename, result.Tu.Program())
	case outPath != "":
		return codec.Save(outPath, result.Tu.Program())
	default:
		fmt.Print(formatter.Program(result.Tu.Program()))
		return nil
	}
}
