package dispatch

import (
	"fmt"
	"sort"

	"github.com/teslamate-tools/teslamate-query/pkg/report"
)

// Action is one of the closed set of things a dispatch can do.
type Action int

const (
	ActionUnknown Action = iota
	ActionHelp
	ActionCars
	ActionStatus
	ActionCharges
	ActionDrives
	ActionBattery
)

type command struct {
	token      string
	perVehicle bool // True if the action queries the primary vehicle
	resource   report.Resource
}

var commands = map[Action]*command{
	ActionHelp:    {token: "help"},
	ActionCars:    {token: "cars", resource: report.ResourceVehicles},
	ActionStatus:  {token: "status", perVehicle: true, resource: report.ResourceStatus},
	ActionCharges: {token: "charges", perVehicle: true, resource: report.ResourceCharges},
	ActionDrives:  {token: "drives", perVehicle: true, resource: report.ResourceDrives},
	ActionBattery: {token: "battery", perVehicle: true, resource: report.ResourceBatteryHealth},
}

var actionsByToken = func() map[string]Action {
	m := make(map[string]Action, len(commands))
	for action, info := range commands {
		m[info.token] = action
	}
	return m
}()

// ParseAction maps a command token to its Action. Matching is exact and case-sensitive; anything
// unrecognized, including the empty string, yields ActionUnknown.
func ParseAction(token string) Action {
	if action, ok := actionsByToken[token]; ok {
		return action
	}
	return ActionUnknown
}

func (a Action) String() string {
	if info, ok := commands[a]; ok {
		return info.token
	}
	if a == ActionUnknown {
		return "unknown"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// PerVehicle reports whether a needs the primary vehicle ID before it can query the API.
func (a Action) PerVehicle() bool {
	info, ok := commands[a]
	return ok && info.perVehicle
}

// Tokens returns every recognized command token in help order.
func Tokens() []string {
	actions := make([]Action, 0, len(commands))
	for action := range commands {
		actions = append(actions, action)
	}
	// Help goes last; everything else keeps declaration order.
	sort.Slice(actions, func(i, j int) bool {
		if (actions[i] == ActionHelp) != (actions[j] == ActionHelp) {
			return actions[j] == ActionHelp
		}
		return actions[i] < actions[j]
	})
	tokens := make([]string, len(actions))
	for i, action := range actions {
		tokens[i] = commands[action].token
	}
	return tokens
}
