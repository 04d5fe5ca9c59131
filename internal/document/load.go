package document

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/grafiek/internal/ctxlog"
	"github.com/vk/grafiek/internal/engine"
	"github.com/vk/grafiek/internal/node"
	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Version is the document format this package reads and writes.
const Version = 1

// fileRoot is the decode target for a whole document file.
type fileRoot struct {
	Version int          `hcl:"version"`
	ID      string       `hcl:"id,optional"`
	Nodes   []*nodeBlock `hcl:"node,block"`
	Edges   []*edgeBlock `hcl:"edge,block"`
	Remain  hcl.Body     `hcl:",remain"`
}

// nodeBlock is one `node "library/operator" { ... }` block. Slot values are
// keyed by slot name inside the config and inputs blocks; a graph input's
// authored value rides on the dedicated value attribute because it lives in
// the node's output slot, which documents otherwise never store.
type nodeBlock struct {
	Path     string      `hcl:"path,label"`
	ID       uint64      `hcl:"id"`
	Label    string      `hcl:"label,optional"`
	Position []float32   `hcl:"position,optional"`
	Value    *cty.Value  `hcl:"value,optional"`
	Config   *slotValues `hcl:"config,block"`
	Inputs   *slotValues `hcl:"inputs,block"`
}

type slotValues struct {
	Body hcl.Body `hcl:",remain"`
}

type edgeBlock struct {
	From     uint64 `hcl:"from"`
	FromSlot int    `hcl:"from_slot,optional"`
	To       uint64 `hcl:"to"`
	ToSlot   int    `hcl:"to_slot,optional"`
}

// Info describes a loaded document.
type Info struct {
	// ID is the document identity, or uuid.Nil when the file carries none.
	ID      uuid.UUID
	Version int

	// Nodes maps the node ids used in the file to the ids the engine
	// assigned while loading.
	Nodes map[uint64]node.ID
}

// Load parses the document at path and replays it into the engine: nodes
// first (config before stored inputs, since config reshapes the signature),
// then connections. The engine's undo history is cleared afterwards; loading
// is not an undoable action.
func Load(ctx context.Context, e *engine.Engine, path string) (*Info, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode document %s: %w", path, diags)
	}

	if root.Version != Version {
		return nil, &UnsupportedVersionError{Found: root.Version, Want: Version}
	}

	info := &Info{
		Version: root.Version,
		Nodes:   make(map[uint64]node.ID, len(root.Nodes)),
	}
	if root.ID != "" {
		id, err := uuid.Parse(root.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid document id %q: %w", root.ID, err)
		}
		info.ID = id
	}

	for _, nb := range root.Nodes {
		if err := loadNode(e, nb, info.Nodes); err != nil {
			return nil, err
		}
	}

	for _, eb := range root.Edges {
		from, ok := info.Nodes[eb.From]
		if !ok {
			return nil, fmt.Errorf("edge references unknown node id %d", eb.From)
		}
		to, ok := info.Nodes[eb.To]
		if !ok {
			return nil, fmt.Errorf("edge references unknown node id %d", eb.To)
		}
		if err := e.Connect(from, to, eb.FromSlot, eb.ToSlot); err != nil {
			return nil, fmt.Errorf("connecting node %d to node %d: %w", eb.From, eb.To, err)
		}
	}

	e.ClearHistory()
	logger.Debug("Document loaded.", "path", path, "nodes", len(root.Nodes), "edges", len(root.Edges))
	return info, nil
}

func loadNode(e *engine.Engine, nb *nodeBlock, ids map[uint64]node.ID) error {
	if _, dup := ids[nb.ID]; dup {
		return fmt.Errorf("duplicate node id %d in document", nb.ID)
	}

	path, err := parsePath(nb.Path)
	if err != nil {
		return fmt.Errorf("node %d: %w", nb.ID, err)
	}

	id, err := e.InstanceNode(path)
	if err != nil {
		return fmt.Errorf("creating node %d (%s): %w", nb.ID, nb.Path, err)
	}
	ids[nb.ID] = id

	if nb.Label != "" {
		if err := e.SetLabel(id, nb.Label); err != nil {
			return fmt.Errorf("labeling node %d: %w", nb.ID, err)
		}
	}
	switch len(nb.Position) {
	case 0:
	case 2:
		if err := e.SetNodePosition(id, [2]float32{nb.Position[0], nb.Position[1]}); err != nil {
			return fmt.Errorf("positioning node %d: %w", nb.ID, err)
		}
	default:
		return fmt.Errorf("node %d: position needs two coordinates, got %d", nb.ID, len(nb.Position))
	}

	n, ok := e.GetNode(id)
	if !ok {
		return &node.NotFoundError{ID: id}
	}

	// Config first: it reshapes the signature the stored inputs key into.
	err = applySlots(nb.Config,
		func(name string) (int, *signature.SlotDef) { return findSlot(n.Signature().ConfigCount(), n.Signature().Config, name) },
		func(slot int, v value.Value) error {
			return e.EditNodeConfig(id, slot, func(_ *signature.SlotDef, m value.Mut) { m.Set(v) })
		})
	if err != nil {
		return fmt.Errorf("node %d config: %w", nb.ID, err)
	}

	err = applySlots(nb.Inputs,
		func(name string) (int, *signature.SlotDef) { return findSlot(n.Signature().InputCount(), n.Signature().Input, name) },
		func(slot int, v value.Value) error {
			return e.EditNodeInput(id, slot, func(_ *signature.SlotDef, m value.Mut) { m.Set(v) })
		})
	if err != nil {
		return fmt.Errorf("node %d inputs: %w", nb.ID, err)
	}

	if nb.Value != nil {
		if n.OutputCount() == 0 {
			return fmt.Errorf("node %d: value attribute on a node without outputs", nb.ID)
		}
		v, err := toSlotValue(n.Signature().Output(0), *nb.Value)
		if err != nil {
			return fmt.Errorf("node %d value: %w", nb.ID, err)
		}
		if err := e.EditGraphInput(id, func(_ *signature.SlotDef, m value.Mut) { m.Set(v) }); err != nil {
			return fmt.Errorf("node %d value: %w", nb.ID, err)
		}
	}
	return nil
}

// applySlots evaluates every attribute of a config or inputs block and
// writes it to the slot of the same name. Attributes apply in name order so
// a document loads the same way every time.
func applySlots(block *slotValues, lookup func(string) (int, *signature.SlotDef), edit func(int, value.Value) error) error {
	attrs, err := blockAttributes(block)
	if err != nil {
		return err
	}

	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		slot, def := lookup(name)
		if slot < 0 {
			return fmt.Errorf("no slot named %q", name)
		}

		raw, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("evaluating %q: %w", name, diags)
		}
		v, err := toSlotValue(def, raw)
		if err != nil {
			return fmt.Errorf("slot %q: %w", name, err)
		}
		if err := edit(slot, v); err != nil {
			return fmt.Errorf("slot %q: %w", name, err)
		}
	}
	return nil
}

func blockAttributes(block *slotValues) (hcl.Attributes, error) {
	if block == nil || block.Body == nil {
		return nil, nil
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("slot blocks hold only attributes: %w", diags)
	}
	return attrs, nil
}

func findSlot(count int, def func(int) *signature.SlotDef, name string) (int, *signature.SlotDef) {
	for i := 0; i < count; i++ {
		if d := def(i); d.Name == name {
			return i, d
		}
	}
	return -1, nil
}

func parsePath(s string) (ops.OpPath, error) {
	lib, op, ok := strings.Cut(s, "/")
	if !ok || lib == "" || op == "" {
		return ops.OpPath{}, fmt.Errorf("malformed operator path %q, want library/operator", s)
	}
	return ops.OpPath{Library: lib, Operator: op}, nil
}
