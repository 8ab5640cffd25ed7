package demo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vango-dev/smartvalue/internal/errors"
)

// ActionKind names a button of the counter demo.
type ActionKind string

const (
	ActionInc    ActionKind = "inc"
	ActionDec    ActionKind = "dec"
	ActionDouble ActionKind = "double"
	ActionAdd    ActionKind = "add"
	ActionSet    ActionKind = "set"
	ActionReset  ActionKind = "reset"
)

// Action is one user interaction with the counter.
type Action struct {
	Kind ActionKind
	N    int
}

// String renders the action the way ParseAction accepts it.
func (a Action) String() string {
	switch a.Kind {
	case ActionAdd, ActionSet:
		return fmt.Sprintf("%s:%d", a.Kind, a.N)
	default:
		return string(a.Kind)
	}
}

// ParseAction parses inc, dec, double, reset, add:N and set:N.
func ParseAction(s string) (Action, error) {
	kind, arg, hasArg := strings.Cut(strings.TrimSpace(s), ":")

	switch ActionKind(kind) {
	case ActionInc, ActionDec, ActionDouble, ActionReset:
		if hasArg {
			return Action{}, errors.New("E101").WithDetail(fmt.Sprintf("%q takes no argument", kind))
		}
		return Action{Kind: ActionKind(kind)}, nil
	case ActionAdd, ActionSet:
		n, err := strconv.Atoi(arg)
		if !hasArg || err != nil {
			return Action{}, errors.New("E101").
				WithDetail(fmt.Sprintf("%q needs an integer argument, e.g. %s:5", kind, kind))
		}
		return Action{Kind: ActionKind(kind), N: n}, nil
	default:
		return Action{}, errors.New("E101").WithDetail(fmt.Sprintf("%q", s))
	}
}

// ParseActions parses every argument, stopping at the first invalid one.
func ParseActions(args []string) ([]Action, error) {
	actions := make([]Action, 0, len(args))
	for _, arg := range args {
		a, err := ParseAction(arg)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}
