package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/aretw0/compact/pkg/dsl"
	"github.com/aretw0/compact/pkg/registry"
	"github.com/aretw0/compact/pkg/value"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Manifest is a named definition tree.
type Manifest struct {
	Name string
	Root Node
}

// Node is the data form of one dsl.Definition.
type Node struct {
	Name       string            `mapstructure:"name"`
	Default    any               `mapstructure:"default"`
	HasDefault bool              `mapstructure:"-"`
	Use        []string          `mapstructure:"use"`
	Reducers   map[string]string `mapstructure:"reducers"`
	Fields     []Node            `mapstructure:"-"`
	List       *ListNode         `mapstructure:"-"`
}

// ListNode describes the collection a Node holds.
type ListNode struct {
	Key      string `mapstructure:"key"`
	Context  string `mapstructure:"context"`
	Nullable bool   `mapstructure:"nullable"`
	Item     Node   `mapstructure:"-"`
}

// LoadFile reads and parses the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Load parses a manifest from r.
func Load(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML manifest. Every structural problem is reported, not
// only the first one.
func Parse(data []byte) (*Manifest, error) {
	var raw map[string]any
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	var errs []error
	m := &Manifest{}
	if name, ok := raw["name"].(string); ok {
		m.Name = name
	}
	root, ok := raw["root"]
	if !ok {
		return nil, aggregate([]error{&Error{Path: "root", Reason: "missing"}})
	}
	m.Root = decodeNode(root, "root", &errs)
	if err := aggregate(errs); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeNode(input any, path string, errs *[]error) Node {
	raw, ok := input.(map[string]any)
	if !ok {
		if input != nil {
			*errs = append(*errs, &Error{Path: path, Reason: "node must be a mapping", Value: input})
		}
		return Node{}
	}

	var n Node
	if err := decode(raw, &n, "fields", "list"); err != nil {
		*errs = append(*errs, &Error{Path: path, Reason: err.Error()})
	}
	_, n.HasDefault = raw["default"]

	if fields, ok := raw["fields"]; ok {
		items, ok := fields.([]any)
		if !ok {
			*errs = append(*errs, &Error{Path: path + ".fields", Reason: "fields must be a sequence", Value: fields})
		}
		seen := make(map[string]bool, len(items))
		for i, item := range items {
			at := fmt.Sprintf("%s.fields[%d]", path, i)
			f := decodeNode(item, at, errs)
			switch {
			case f.Name == "":
				*errs = append(*errs, &Error{Path: at, Reason: "field has no name"})
			case seen[f.Name]:
				*errs = append(*errs, &Error{Path: at, Reason: fmt.Sprintf("duplicate field %q", f.Name)})
			}
			seen[f.Name] = true
			n.Fields = append(n.Fields, f)
		}
	}

	if list, ok := raw["list"]; ok {
		at := path + ".list"
		rawList, ok := list.(map[string]any)
		if !ok {
			*errs = append(*errs, &Error{Path: at, Reason: "list must be a mapping", Value: list})
			return n
		}
		l := &ListNode{}
		if err := decode(rawList, l, "item"); err != nil {
			*errs = append(*errs, &Error{Path: at, Reason: err.Error()})
		}
		if l.Key == "" {
			*errs = append(*errs, &Error{Path: at, Reason: "list has no key"})
		}
		l.Item = decodeNode(rawList["item"], at+".item", errs)
		if len(n.Fields) > 0 {
			*errs = append(*errs, &Error{Path: path, Reason: "a node cannot have both fields and a list"})
		}
		n.List = l
	}
	return n
}

// decode copies the scalar keys of raw into out. Keys listed in skip are
// handled by the caller; any other unknown key is an error.
func decode(raw map[string]any, out any, skip ...string) error {
	rest := make(map[string]any, len(raw))
	for k, v := range raw {
		rest[k] = v
	}
	for _, k := range skip {
		delete(rest, k)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(rest)
}

// Build turns the manifest into a definition, resolving plugin and reducer
// names through reg.
func (m *Manifest) Build(reg *registry.Registry) (dsl.Definition, error) {
	var errs []error
	def := build(m.Root, "root", reg, &errs)
	if err := aggregate(errs); err != nil {
		return dsl.Definition{}, err
	}
	return def, nil
}

func build(n Node, path string, reg *registry.Registry, errs *[]error) dsl.Definition {
	var d dsl.Definition
	switch {
	case n.List != nil:
		spec := dsl.ListSpec{
			Of:          build(n.List.Item, path+".list.item", reg, errs),
			Key:         dsl.KeyField(n.List.Key),
			ContextName: n.List.Context,
		}
		if n.List.Nullable {
			d = dsl.NullableList(spec)
		} else {
			d = dsl.List(spec)
		}
		if n.HasDefault {
			d = d.Default(n.Default)
		}
	case len(n.Fields) > 0:
		d = dsl.Value(value.Object{})
		if n.HasDefault {
			d = d.Default(n.Default)
		}
		fields := make([]dsl.Field, 0, len(n.Fields))
		for i, f := range n.Fields {
			fields = append(fields, dsl.Named(f.Name, build(f, fmt.Sprintf("%s.fields[%d]", path, i), reg, errs)))
		}
		d = d.CombineWith(fields...)
	case n.HasDefault:
		d = dsl.Value(n.Default)
	default:
		d = dsl.New()
	}

	names := make([]string, 0, len(n.Reducers))
	for name := range n.Reducers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fn, err := reg.Reducer(n.Reducers[name])
		if err != nil {
			*errs = append(*errs, &Error{Path: path + ".reducers." + name, Reason: err.Error(), Err: err})
			continue
		}
		d = d.Reducer(name, fn)
	}

	for i, name := range n.Use {
		p, err := reg.Plugin(name)
		if err != nil {
			*errs = append(*errs, &Error{Path: fmt.Sprintf("%s.use[%d]", path, i), Reason: err.Error(), Err: err})
			continue
		}
		d = d.Use(p)
	}
	return d
}
