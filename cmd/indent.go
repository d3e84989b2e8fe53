package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/awklab/treelight/engine"
)

var (
	indentLine int
	indentJSON bool
)

var indentCmd = &cobra.Command{
	Use:   "indent [path]",
	Short: "Resolve indentation columns for a source file",
	Long: `Resolves the indentation of every line (or one line with --line) of an AWK
source file against its parse-tree dump (<path>.json). Each decision names
the rule that won, the anchor offset, and the final column.`,
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

		if indentLine > 0 {
			pos := lineOffset(src, indentLine)
			if pos < 0 {
				fmt.Printf("error: file has no line %d\n", indentLine)
				os.Exit(1)
			}
			decision := eng.Indent(root, src, pos)
			fmt.Printf("line %d: column %d (rule %s, offset %+d)\n",
				indentLine, decision.Column, decision.Rule, decision.Offset)
			return
		}

		decisions := eng.IndentLines(root, src)
		if indentJSON {
			type lineDecision struct {
				Line   int    `json:"line"`
				Column int    `json:"column"`
				Rule   string `json:"rule"`
			}
			out := make([]lineDecision, len(decisions))
			for i, d := range decisions {
				out[i] = lineDecision{Line: i + 1, Column: d.Column, Rule: d.Rule}
			}
			d, err := json.Marshal(out)
			if err != nil {
				logger.Fatal("Error marshalling decisions", zap.Error(err))
			}
			fmt.Println(string(d))
			return
		}
		for i, d := range decisions {
			fmt.Printf("%4d  col %-3d  %s\n", i+1, d.Column, d.Rule)
		}
	},
}

func init() {
	indentCmd.Flags().IntVar(&indentLine, "line", 0, "Resolve a single 1-based line instead of the whole file")
	indentCmd.Flags().BoolVar(&indentJSON, "json", false, "Output decisions as JSON")
}

// lineOffset returns the byte offset of the start of the 1-based line, or
// -1 when the file is shorter.
func lineOffset(src []byte, line int) int {
	cur := 1
	offset := 0
	for cur < line {
		for offset < len(src) && src[offset] != '\n' {
			offset++
		}
		if offset >= len(src) {
			return -1
		}
		offset++
		cur++
	}
	return offset
}
