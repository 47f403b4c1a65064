package main

import (
	"fmt"
	"sort"
	"strings"

	opts "github.com/goliatone/go-options-menu"
)

type forkOption int

const (
	bruh1 forkOption = iota
	bruh2
	bruh3
)

func (f forkOption) String() string {
	return [...]string{"BRUH1", "BRUH2", "BRUH3"}[f]
}

type teamColor int

const (
	teamRed teamColor = iota
	teamBlue
)

func (c teamColor) String() string {
	if c == teamBlue {
		return "BLUE"
	}
	return "RED"
}

type startingPosition int

const (
	positionRight startingPosition = iota
	positionLeft
)

func (p startingPosition) String() string {
	if p == positionLeft {
		return "LEFT"
	}
	return "RIGHT"
}

// domain is a named option catalog the host can edit.
type domain struct {
	name  string
	build func(*opts.Converters) (*opts.Registry, error)
}

var domains = map[string]domain{
	"example": {
		name: "example",
		build: func(c *opts.Converters) (*opts.Registry, error) {
			return opts.NewRegistry(c,
				opts.Define("LIKE", opts.IntType(1, 0, 10, 99)),
				opts.Define("SUBSCRIBE", opts.BoolType(false)),
				opts.Define("TESTENUM", opts.EnumType([]forkOption{bruh1, bruh2, bruh3}, bruh1)),
			)
		},
	},
	"gamechangers": {
		name: "gamechangers",
		build: func(c *opts.Converters) (*opts.Registry, error) {
			return opts.NewRegistry(c,
				opts.Define("TEAM_COLOR", opts.EnumType([]teamColor{teamRed, teamBlue}, teamRed)),
				opts.Define("INITIAL_AUTO_DELAY", opts.IntType(1, 0, 15, 0, opts.WithLabel[int]("seconds"))),
				opts.Define("STARTING_POSITION", opts.EnumType([]startingPosition{positionRight, positionLeft}, positionLeft)),
				opts.Define("COLLECT_MORE_RINGS", opts.BoolType(false)),
				opts.Define("PARK_CLOSE", opts.BoolType(false)),
			)
		},
	},
}

func domainNames() []string {
	names := make([]string, 0, len(domains))
	for name := range domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupDomain(name string) (domain, error) {
	d, ok := domains[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return domain{}, fmt.Errorf("unknown domain %q (available: %s)", name, strings.Join(domainNames(), ", "))
	}
	return d, nil
}

// defaultFile is the per-domain document used when --file is not set.
func (d domain) defaultFile() string {
	return "options-" + d.name + ".json"
}
