package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Switch is an on/off setting that remembers whether it was set at all.
// The zero value is unset, so env-default only fills it when neither the
// YAML file nor the environment mentioned it; an explicit false survives.
type Switch int8

const (
	SwitchUnset Switch = iota
	SwitchOn
	SwitchOff
)

// Enabled reports whether the switch is on. Unset counts as off.
func (s Switch) Enabled() bool { return s == SwitchOn }

// SetValue implements cleanenv.Setter for env vars and env-default tags.
func (s *Switch) SetValue(v string) error {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid boolean %q", v)
	}
	*s = switchOf(b)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Switch) UnmarshalYAML(n *yaml.Node) error {
	var b bool
	if err := n.Decode(&b); err != nil {
		return err
	}
	*s = switchOf(b)
	return nil
}

func switchOf(b bool) Switch {
	if b {
		return SwitchOn
	}
	return SwitchOff
}
