package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andreabedini/souffle/formatter"
	"github.com/andreabedini/souffle/internal/codec"
)

var printCmd = &cobra.Command{
	Use:   "print [path]",
	Short: "Render a program document in Datalog notation",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("error: Please provide exactly one program document")
			os.Exit(1)
		}

		program, err := codec.Load(args[0])
		if err != nil {
			fmt.Printf("error loading %s: %v\n", args[0], err)
			os.Exit(1)
		}
		fmt.Print(formatter.Program(program))
	},
}
