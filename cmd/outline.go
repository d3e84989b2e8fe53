package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/awklab/treelight/engine"
)

var outlineJSON bool

var outlineCmd = &cobra.Command{
	Use:   "outline [path]",
	Short: "List the navigable definitions of a source file",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("error: Please provide exactly one source file")
			os.Exit(1)
		}

		eng, err := newEngine()
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		root, src, err := engine.LoadFile(args[0])
		if err != nil {
			logger.Fatal("Failed to load file", zap.Error(err))
		}

		entries := eng.Outline(root, src)
		if outlineJSON {
			d, err := json.Marshal(entries)
			if err != nil {
				logger.Fatal("Error marshalling outline", zap.Error(err))
			}
			fmt.Println(string(d))
			return
		}
		for _, entry := range entries {
			fmt.Printf("%s\t%s\n", entry.Name, entry.Span)
		}
	},
}

func init() {
	outlineCmd.Flags().BoolVar(&outlineJSON, "json", false, "Output entries as JSON")
}
