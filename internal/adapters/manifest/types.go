package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// strictString decodes only plain YAML strings; a bare number or boolean
// that wasn't quoted is a schema violation rather than an implicit coercion.
type strictString string

func (s *strictString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!str" {
		return fmt.Errorf("expected a string, got %s", describeNode(node))
	}
	*s = strictString(node.Value)
	return nil
}

// strictBool decodes only plain YAML booleans.
type strictBool bool

func (b *strictBool) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!bool" {
		return fmt.Errorf("expected a boolean, got %s", describeNode(node))
	}
	var v bool
	if err := node.Decode(&v); err != nil {
		return err
	}
	*b = strictBool(v)
	return nil
}

// envValue accepts the scalar forms spec.md allows for an env entry: a
// string, or an integer/boolean that is coerced to its string form.
type envValue string

func (e *envValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("env value must be a scalar, got %s", describeNode(node))
	}
	switch node.Tag {
	case "!!str", "!!int", "!!bool":
		*e = envValue(node.Value)
		return nil
	default:
		return fmt.Errorf("env value must be a string, integer, or boolean, got %s", describeNode(node))
	}
}

// stringOrList decodes a path field given as either a single scalar or a
// list of scalars, always producing a list.
type stringOrList []string

func (s *stringOrList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v strictString
		if err := node.Decode(&v); err != nil {
			return err
		}
		*s = []string{string(v)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, len(node.Content))
		for i, item := range node.Content {
			var v strictString
			if err := item.Decode(&v); err != nil {
				return err
			}
			items[i] = string(v)
		}
		*s = items
		return nil
	default:
		return fmt.Errorf("expected a string or a list of strings, got %s", describeNode(node))
	}
}

func envValuesToStrings(m map[string]envValue) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = string(v)
	}
	return out
}

func describeNode(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return fmt.Sprintf("scalar tagged %s", node.Tag)
	case yaml.SequenceNode:
		return "a list"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.AliasNode:
		return "an alias"
	default:
		return "an unknown node"
	}
}
