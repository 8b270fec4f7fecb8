package models

import "strings"

// CommandType enumerates supported quick-entry command categories.
type CommandType string

const (
	CommandWeigh   CommandType = "weigh"
	CommandStatus  CommandType = "status"
	CommandMove    CommandType = "move"
	CommandIncome  CommandType = "income"
	CommandExpense CommandType = "expense"
	CommandBalance CommandType = "balance"
	CommandSummary CommandType = "summary"
	CommandUnknown CommandType = "unknown"
)

var commandAliases = map[string]CommandType{
	"weigh":   CommandWeigh,
	"peso":    CommandWeigh,
	"status":  CommandStatus,
	"move":    CommandMove,
	"mover":   CommandMove,
	"income":  CommandIncome,
	"receita": CommandIncome,
	"expense": CommandExpense,
	"despesa": CommandExpense,
	"balance": CommandBalance,
	"saldo":   CommandBalance,
	"summary": CommandSummary,
	"resumo":  CommandSummary,
}

// Command represents a parsed field instruction such as "/weigh 12 430".
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command instance from free-form text. Only the head is
// case-folded; arguments keep their original spelling.
func ParseCommand(message string) Command {
	tokens := strings.Fields(strings.TrimSpace(message))
	cmd := Command{Type: CommandUnknown, Raw: message}

	if len(tokens) == 0 {
		return cmd
	}

	head := strings.TrimPrefix(strings.ToLower(tokens[0]), "/")
	if t, ok := commandAliases[head]; ok {
		cmd.Type = t
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
