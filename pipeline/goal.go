// SPDX-License-Identifier: MIT
// Package: pipeline

package pipeline

import (
	"errors"
	"fmt"
)

// ErrUnknownGoal indicates a goal name outside sym, ddg, norm and symnmf.
var ErrUnknownGoal = errors.New("pipeline: unknown goal")

// Goal selects which matrix Run produces.
type Goal int

const (
	GoalSym    Goal = iota // similarity matrix W
	GoalDDG                // diagonal degree matrix D
	GoalNorm               // normalized similarity A
	GoalSymNMF             // factor H
)

var goalNames = [...]string{
	GoalSym:    "sym",
	GoalDDG:    "ddg",
	GoalNorm:   "norm",
	GoalSymNMF: "symnmf",
}

// String returns the command line name of g.
func (g Goal) String() string {
	if g < 0 || int(g) >= len(goalNames) {
		return fmt.Sprintf("Goal(%d)", int(g))
	}

	return goalNames[g]
}

// ParseGoal maps a command line name to its Goal. Matching is exact.
func ParseGoal(s string) (Goal, error) {
	for g, name := range goalNames {
		if name == s {
			return Goal(g), nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownGoal)
}
