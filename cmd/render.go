package cmd

import (
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/awklab/treelight/internal/types"
)

// Classification-to-style mapping lives out here in the CLI: the engine
// only ever hands back renderer-agnostic tags.
var classStyles = map[types.Classification]*color.Color{
	types.ClassKeyword:     color.New(color.FgMagenta, color.Bold),
	types.ClassString:      color.New(color.FgGreen),
	types.ClassRegexp:      color.New(color.FgHiGreen),
	types.ClassComment:     color.New(color.FgHiBlack),
	types.ClassEscape:      color.New(color.FgHiYellow),
	types.ClassNumber:      color.New(color.FgCyan),
	types.ClassConstant:    color.New(color.FgCyan, color.Bold),
	types.ClassBuiltinFunc: color.New(color.FgYellow),
	types.ClassBuiltinVar:  color.New(color.FgYellow, color.Bold),
	types.ClassOperator:    color.New(color.FgHiMagenta),
	types.ClassBracket:     color.New(color.FgWhite),
	types.ClassDelimiter:   color.New(color.FgWhite),
	types.ClassFuncDef:     color.New(color.FgBlue, color.Bold),
	types.ClassFuncCall:    color.New(color.FgBlue),
	types.ClassVariable:    color.New(color.FgHiCyan),
	types.ClassNamespace:   color.New(color.FgHiBlue),
	types.ClassError:       color.New(color.FgRed, color.Bold, color.Underline),
}

// renderColorized paints the source with the winning classification per
// byte. Broader spans are painted first so narrower, more specific spans
// show through on top.
func renderColorized(src []byte, styled []types.Styled) string {
	perByte := make([]types.Classification, len(src))

	ordered := make([]types.Styled, len(styled))
	copy(ordered, styled)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Span.Len() > ordered[j].Span.Len()
	})
	for _, s := range ordered {
		for i := s.Span.Start; i < s.Span.End && i < len(src); i++ {
			perByte[i] = s.Class
		}
	}

	var builder strings.Builder
	for i := 0; i < len(src); {
		class := perByte[i]
		j := i
		for j < len(src) && perByte[j] == class {
			j++
		}
		segment := string(src[i:j])
		if style, ok := classStyles[class]; ok && class != "" {
			builder.WriteString(style.Sprint(segment))
		} else {
			builder.WriteString(segment)
		}
		i = j
	}
	return builder.String()
}
