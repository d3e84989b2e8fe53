// Package awk holds the grammar-specific data driving the generic rule
// engine for AWK: the node-kind vocabulary of the external parser, the
// keyword and builtin name sets, and the default rule tables. Everything
// here is data, not engine logic.
package awk

// Node kinds produced by the external AWK parser. Patterns reference these
// as literal strings; a kind missing from a given grammar version simply
// never matches.
var nodeKinds = []string{
	"program", "rule", "pattern", "block",
	"func_def", "func_call", "args", "param_list",
	"assignment_exp", "binary_exp", "unary_exp", "update_exp", "ternary_exp",
	"grouping", "field_ref", "identifier", "ns_qualified_name", "namespace",
	"number", "string", "regex", "regex_pattern", "escape_sequence", "comment",
	"if_statement", "else_clause", "while_statement", "do_while_statement",
	"for_statement", "for_in_statement", "switch_statement", "switch_case",
	"getline_input", "getline_file", "piped_io_exp", "redirected_io_statement",
	"print_statement", "printf_statement", "delete_statement",
	"return_statement", "exit_statement", "next_statement",
	"nextfile_statement", "ERROR",
}

// Keywords are the anonymous keyword tokens of the grammar, each surfacing
// as a node whose kind is the keyword itself.
var Keywords = []string{
	"BEGIN", "END", "BEGINFILE", "ENDFILE",
	"break", "case", "continue", "default", "delete", "do", "else", "exit",
	"for", "func", "function", "getline", "if", "in", "next", "nextfile",
	"print", "printf", "return", "switch", "while",
}

// BuiltinFunctions is the fixed set of POSIX and gawk builtin function
// names. Highlight rules test membership exactly, never by prefix or
// pattern.
var BuiltinFunctions = []string{
	"atan2", "cos", "exp", "int", "log", "rand", "sin", "sqrt", "srand",
	"asort", "asorti", "gensub", "gsub", "index", "length", "match",
	"patsplit", "split", "sprintf", "strtonum", "sub", "substr",
	"tolower", "toupper",
	"close", "fflush", "system",
	"mktime", "strftime", "systime",
	"and", "compl", "lshift", "or", "rshift", "xor",
	"isarray", "typeof",
	"bindtextdomain", "dcgettext", "dcngettext",
}

// BuiltinVariables is the fixed set of POSIX and gawk builtin variable
// names.
var BuiltinVariables = []string{
	"ARGC", "ARGIND", "ARGV", "BINMODE", "CONVFMT", "ENVIRON", "ERRNO",
	"FIELDWIDTHS", "FILENAME", "FNR", "FPAT", "FS", "FUNCTAB", "IGNORECASE",
	"LINT", "NF", "NR", "OFMT", "OFS", "ORS", "PREC", "PROCINFO", "RLENGTH",
	"ROUNDMODE", "RS", "RSTART", "RT", "SUBSEP", "SYMTAB", "TEXTDOMAIN",
}

// Operators are the anonymous operator token kinds.
var Operators = []string{
	"=", "+=", "-=", "*=", "/=", "%=", "^=",
	"==", "!=", "<", "<=", ">", ">=",
	"&&", "||", "!",
	"+", "-", "*", "/", "%", "^",
	"++", "--",
	"~", "!~",
	"?", ":",
	"|", "|&", ">>", "$",
}

// Brackets and Delimiters are the anonymous punctuation token kinds.
var (
	Brackets   = []string{"(", ")", "{", "}", "[", "]"}
	Delimiters = []string{";", ","}
)

// Vocabulary returns the full set of kinds the default rules may
// reference, used to warn about rules that can never match.
func Vocabulary() map[string]struct{} {
	vocab := make(map[string]struct{})
	for _, group := range [][]string{nodeKinds, Keywords, Operators, Brackets, Delimiters} {
		for _, k := range group {
			vocab[k] = struct{}{}
		}
	}
	return vocab
}

// Definitions maps definition node kinds to the field carrying their name,
// for the navigation index.
func Definitions() map[string]string {
	return map[string]string{
		"func_def": "name",
	}
}
