package driver

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"ratexpr/interpreter-go/pkg/runtime"
)

// ValueSpec is a runtime value as written in a suite file. Plain scalars are
// typed by their YAML tag (numbers become rationals); a mapping of the form
// {kind: rational, value: "3/4"} names the kind explicitly.
type ValueSpec struct {
	Kind runtime.Kind
	Text string
}

func (v *ValueSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		switch value.Tag {
		case "!!int", "!!float":
			v.Kind = runtime.KindRational
		case "!!bool":
			v.Kind = runtime.KindBool
		case "!!str":
			v.Kind = runtime.KindString
		default:
			return fmt.Errorf("suite: unsupported value %q (tag %s)", value.Value, value.Tag)
		}
		v.Text = value.Value
		return nil
	case yaml.MappingNode:
		var raw struct {
			Kind  string    `yaml:"kind"`
			Value yaml.Node `yaml:"value"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		kind, ok := runtime.ParseKind(strings.TrimSpace(raw.Kind))
		if !ok {
			return fmt.Errorf("suite: unknown value kind %q", raw.Kind)
		}
		if raw.Value.Kind != yaml.ScalarNode {
			return fmt.Errorf("suite: value for kind %s must be a scalar", kind)
		}
		v.Kind = kind
		v.Text = raw.Value.Value
		return nil
	default:
		return fmt.Errorf("suite: values must be scalars or {kind, value} mappings")
	}
}

// Value converts v into a runtime value.
func (v ValueSpec) Value() (runtime.Value, error) {
	switch v.Kind {
	case runtime.KindRational:
		r, ok := new(big.Rat).SetString(strings.TrimSpace(v.Text))
		if !ok {
			return nil, fmt.Errorf("invalid rational %q", v.Text)
		}
		return runtime.RationalValue{Val: r}, nil
	case runtime.KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(v.Text))
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", v.Text)
		}
		return runtime.BoolValue{Val: b}, nil
	case runtime.KindString:
		return runtime.StringValue{Val: v.Text}, nil
	default:
		return nil, fmt.Errorf("unknown value kind %v", v.Kind)
	}
}
