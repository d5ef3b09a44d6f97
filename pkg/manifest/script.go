package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/compact/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Step is one entry of an action script.
//
// A step with a Type is dispatched as written. Otherwise Path is walked from
// the root of the action-creator tree, where a string selects a slice and a
// mapping {item: key} selects a list item, and then Do names a reducer or
// Call a custom action creator.
type Step struct {
	Type    string         `json:"type,omitempty" mapstructure:"type"`
	Args    []any          `json:"args,omitempty" mapstructure:"args"`
	Context domain.Context `json:"context,omitempty" mapstructure:"context"`
	Path    []any          `json:"path,omitempty" mapstructure:"path"`
	Do      string         `json:"do,omitempty" mapstructure:"do"`
	Call    string         `json:"call,omitempty" mapstructure:"call"`
}

// Action resolves the step against the action-creator tree rooted at root.
func (s Step) Action(root domain.Creator) (domain.Action, error) {
	if s.Type != "" {
		args := s.Args
		if args == nil {
			args = []any{}
		}
		return domain.Action{Type: s.Type, Args: args, Context: s.Context.Clone()}, nil
	}

	c := root
	for i, seg := range s.Path {
		switch seg := seg.(type) {
		case string:
			c = c.Slice(seg)
		case map[string]any:
			key, ok := seg["item"]
			if !ok {
				return domain.Action{}, fmt.Errorf("path[%d]: mapping must have an item key", i)
			}
			c = c.Item(fmt.Sprint(key))
		default:
			return domain.Action{}, fmt.Errorf("path[%d]: unsupported segment %T", i, seg)
		}
	}

	switch {
	case s.Do != "" && s.Call != "":
		return domain.Action{}, errors.New("step has both do and call")
	case s.Do != "":
		return c.Do(s.Do, s.Args...)
	case s.Call != "":
		return c.Call(s.Call, s.Args...)
	}
	return domain.Action{}, errors.New("step has neither type, do nor call")
}

// LoadScriptFile reads and parses the action script at path.
func LoadScriptFile(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// LoadScript parses an action script from r.
func LoadScript(r io.Reader) ([]Step, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML sequence of steps.
func ParseScript(data []byte) ([]Step, error) {
	var raw []any
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	var errs []error
	steps := make([]Step, 0, len(raw))
	for i, item := range raw {
		var s Step
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &s,
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		})
		if err == nil {
			err = dec.Decode(item)
		}
		if err != nil {
			errs = append(errs, &Error{Path: fmt.Sprintf("steps[%d]", i), Reason: err.Error()})
			continue
		}
		steps = append(steps, s)
	}
	if err := aggregate(errs); err != nil {
		return nil, err
	}
	return steps, nil
}
