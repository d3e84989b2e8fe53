package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/awklab/treelight/engine"
)

var highlightJSON bool

var highlightCmd = &cobra.Command{
	Use:   "highlight [paths...]",
	Short: "Classify source spans using the highlight rule set",
	Long: `Reads each AWK source file together with the parse-tree dump its external
parser wrote next to it (<path>.json) and prints the classification spans,
either colorized or as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		eng, err := newEngine()
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		reports, err := engine.ProcessFiles(ctx, logger, eng, args, engine.ProcessFile)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}

		if highlightJSON {
			d, err := json.Marshal(reports)
			if err != nil {
				logger.Error("Error marshalling reports to JSON", zap.Error(err))
				os.Exit(1)
			}
			fmt.Println(string(d))
			return
		}

		for _, report := range reports {
			fmt.Println(renderColorized(report.Src, report.Styled))
		}
	},
}

func init() {
	highlightCmd.Flags().BoolVar(&highlightJSON, "json", false, "Output classification spans as JSON")
}
