package executor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Set represents runtime contexts (executors) in which code can run; a valid set is never empty
type Set uint8

const (
	Client Set = 1 << iota
	Server
	Both = Client | Server
)

// Has returns true if s includes every executor of o
func (s Set) Has(o Set) bool { return s&o == o }

func (s Set) String() string {
	var names []string
	if s.Has(Client) {
		names = append(names, "client")
	}
	if s.Has(Server) {
		names = append(names, "server")
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// Environment represents a file level execution environment
type Environment int

const (
	// EnvNone marks files not subject to event map rules
	EnvNone Environment = iota
	EnvClient
	EnvServer
	// EnvUniversal marks files that run on both executors depending on runtime branching
	EnvUniversal
)

var environmentNames = map[Environment]string{
	EnvNone:      "none",
	EnvClient:    "client",
	EnvServer:    "server",
	EnvUniversal: "universal",
}

func (e Environment) String() string {
	if name, ok := environmentNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Environment(%d)", int(e))
}

// ParseEnvironment parses an environment name
func ParseEnvironment(name string) (Environment, error) {
	for env, candidate := range environmentNames {
		if strings.EqualFold(candidate, name) {
			return env, nil
		}
	}
	return EnvNone, fmt.Errorf("unsupported environment: %q", name)
}

// MarshalYAML encodes the environment name
func (e Environment) MarshalYAML() (interface{}, error) {
	return e.String(), nil
}

// UnmarshalYAML decodes the environment name
func (e *Environment) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	env, err := ParseEnvironment(name)
	if err != nil {
		return err
	}
	*e = env
	return nil
}

// MarshalJSON encodes the environment name
func (e Environment) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}
