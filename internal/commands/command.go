package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/animtodo/internal/model"
	"github.com/sandeepkv93/animtodo/internal/projection"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDelete Type = "delete"
	TypeToggle Type = "toggle"
	TypeSearch Type = "search"
	TypeSort   Type = "sort"
	TypeTheme  Type = "theme"
)

var aliases = map[string]Type{
	"rm":   TypeDelete,
	"del":  TypeDelete,
	"done": TypeToggle,
	"find": TypeSearch,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title    string
	Priority model.Priority
}

type TargetArgs struct {
	ID int64
}

type SearchArgs struct {
	Query string
}

type SortArgs struct {
	Criterion projection.Criterion
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
	Search *SearchArgs
	Sort   *SortArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, ":"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDelete, TypeToggle:
		return parseTarget(input, typ, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Query: strings.Join(args, " ")}}, nil
	case TypeSort:
		return parseSort(input, args)
	case TypeTheme:
		return Command{Type: TypeTheme, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd takes an optional leading priority word: "add high pay rent".
func parseAdd(raw string, args []string) (Command, error) {
	priority := model.DefaultPriority
	if len(args) > 1 {
		if p, err := model.ParsePriority(args[0]); err == nil {
			priority = p
			args = args[1:]
		}
	}
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Priority: priority}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id", typ)}
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task id: %s", args[0])}
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{ID: id}}, nil
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sort requires one of default, completed, incomplete, priority"}
	}
	c, err := projection.ParseCriterion(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Criterion: c}}, nil
}
