package engine

import (
	"fmt"
	"log/slog"

	"github.com/vk/grafiek/internal/gpu"
	"github.com/vk/grafiek/internal/graph"
	"github.com/vk/grafiek/internal/history"
	"github.com/vk/grafiek/internal/node"
	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/modules/graphics"
	"github.com/vk/grafiek/modules/imageio"
	"github.com/vk/grafiek/modules/mathops"
	"github.com/vk/grafiek/modules/script"
	"github.com/vk/grafiek/modules/system"
)

// Edge is the payload carried on every graph arc: which output slot of the
// source node drives which input slot of the sink node.
type Edge struct {
	SourceSlot int
	SinkSlot   int
}

// EdgeRef describes one live connection, including its endpoints. It is the
// form handed to hosts that need to enumerate edges, such as a document
// writer.
type EdgeRef struct {
	From     node.ID
	FromSlot int
	To       node.ID
	ToSlot   int
}

// Descriptor carries everything Init needs to assemble an engine.
type Descriptor struct {
	// Device and Queue provide texture storage for graphics operators.
	Device gpu.Device
	Queue  gpu.Queue

	// OnMessage, when non-nil, receives every mutation and event the engine
	// emits, in order. The callback runs synchronously on the mutating
	// goroutine and must not call back into the engine.
	OnMessage func(history.Message)

	// Logger overrides slog.Default().
	Logger *slog.Logger

	// HistorySize bounds the undo log. Zero or negative selects the default.
	HistorySize int
}

// Engine is a live compute graph plus the machinery around it: the operator
// registry, the texture pool, undo history and the outgoing message stream.
type Engine struct {
	log      *slog.Logger
	graph    *graph.Graph[node.ID, *node.Node, Edge]
	registry *ops.Registry
	pool     *gpu.Pool
	ectx     *ops.ExecContext
	hist     *history.History

	onMessage func(history.Message)

	lastID node.ID

	// replaying suppresses history recording while undo/redo re-applies a
	// mutation through the normal edit paths.
	replaying bool

	graphDirty bool
	hadErrors  bool
}

// DefaultModules returns the built-in operator set: graph endpoints,
// comments, arithmetic, expression scripting and the graphics stack.
func DefaultModules() []ops.Module {
	return []ops.Module{
		&system.Module{},
		&mathops.Module{},
		&script.Module{},
		&graphics.Module{},
		&imageio.Module{},
	}
}

// Init assembles an engine, uploads the system textures and registers the
// given operator modules. Passing no modules selects DefaultModules.
func Init(desc Descriptor, modules ...ops.Module) (*Engine, error) {
	log := desc.Logger
	if log == nil {
		log = slog.Default()
	}

	log.Debug("Loading system textures...")
	pool, err := gpu.NewPool(desc.Device, desc.Queue)
	if err != nil {
		return nil, fmt.Errorf("initializing texture pool: %w", err)
	}

	if len(modules) == 0 {
		modules = DefaultModules()
	}
	registry := ops.NewRegistry()
	for _, m := range modules {
		if err := m.Register(registry); err != nil {
			return nil, fmt.Errorf("registering operator module: %w", err)
		}
	}

	e := &Engine{
		log:       log,
		graph:     graph.New[node.ID, *node.Node, Edge](),
		registry:  registry,
		pool:      pool,
		ectx:      ops.NewExecContext(desc.Device, desc.Queue, pool, log),
		hist:      history.New(desc.HistorySize),
		onMessage: desc.OnMessage,
	}
	log.Debug("Engine initialized.", "categories", registry.Categories())
	return e, nil
}

func (e *Engine) nextID() node.ID {
	e.lastID++
	return e.lastID
}

// RegisterOp adds a single operator factory beyond the module set.
func (e *Engine) RegisterOp(f *ops.Factory) error {
	return e.registry.Register(f)
}

// InstanceNode creates a node running a fresh instance of the registered
// operator at path.
func (e *Engine) InstanceNode(path ops.OpPath) (node.ID, error) {
	op, err := e.registry.New(path)
	if err != nil {
		return 0, err
	}
	return e.AddNode(op)
}

// AddNode wraps an already-constructed operator in a new node, runs its
// setup and configure phases, and records the creation.
func (e *Engine) AddNode(op ops.Operation) (node.ID, error) {
	id := e.nextID()
	n := node.New(op, id)

	e.ectx.SetOwner(gpu.Owner(id))
	defer e.ectx.SetOwner(gpu.OwnerEngine)

	if err := n.Setup(e.ectx); err != nil {
		e.pool.ReleaseOwned(gpu.Owner(id))
		return 0, fmt.Errorf("setting up node %d (%s): %w", id, n.Path(), err)
	}
	if err := n.Configure(e.ectx); err != nil {
		e.pool.ReleaseOwned(gpu.Owner(id))
		return 0, fmt.Errorf("configuring node %d (%s): %w", id, n.Path(), err)
	}
	if err := e.graph.Insert(id, n); err != nil {
		e.pool.ReleaseOwned(gpu.Owner(id))
		return 0, err
	}

	e.syncOutputTextures(n, nil)
	e.emit(history.CreateNode{Record: n.Record().Clone()})
	return id, nil
}

// GetNode returns the live node for id.
func (e *Engine) GetNode(id node.ID) (*node.Node, bool) {
	return e.graph.Get(id)
}

// Nodes returns all live node ids in ascending order.
func (e *Engine) Nodes() []node.ID {
	return e.graph.IDs()
}

// NodeCount reports the number of live nodes.
func (e *Engine) NodeCount() int { return e.graph.Len() }

// EdgeCount reports the number of live connections.
func (e *Engine) EdgeCount() int { return e.graph.EdgeCount() }

// EdgeList enumerates every live connection.
func (e *Engine) EdgeList() []EdgeRef {
	var refs []EdgeRef
	for _, id := range e.graph.IDs() {
		for _, arc := range e.graph.Outgoing(id) {
			refs = append(refs, EdgeRef{
				From:     arc.From,
				FromSlot: arc.Payload.SourceSlot,
				To:       arc.To,
				ToSlot:   arc.Payload.SinkSlot,
			})
		}
	}
	return refs
}

// NodeCategories lists the registered operator libraries.
func (e *Engine) NodeCategories() []string {
	return e.registry.Categories()
}

// CategoryOperators lists the operator factories registered under one
// library, for building instancing menus.
func (e *Engine) CategoryOperators(library string) []*ops.Factory {
	return e.registry.Operators(library)
}

// InputNodes returns the ids of all graph input nodes in creation order.
func (e *Engine) InputNodes() []node.ID {
	return e.nodesWithPath(system.InputPath)
}

// OutputNodes returns the ids of all graph output nodes in creation order.
func (e *Engine) OutputNodes() []node.ID {
	return e.nodesWithPath(system.OutputPath)
}

func (e *Engine) nodesWithPath(path ops.OpPath) []node.ID {
	var ids []node.ID
	for _, id := range e.graph.IDs() {
		if n, ok := e.graph.Get(id); ok && n.Path() == path {
			ids = append(ids, id)
		}
	}
	return ids
}

// NeedsExecution reports whether any mutation since the last pass could
// change produced values.
func (e *Engine) NeedsExecution() bool {
	if e.graphDirty {
		return true
	}
	for _, id := range e.graph.IDs() {
		if n, ok := e.graph.Get(id); ok && n.Dirty() {
			return true
		}
	}
	return false
}

// CanUndo reports whether an undo step is available.
func (e *Engine) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether a redo step is available.
func (e *Engine) CanRedo() bool { return e.hist.CanRedo() }

// ClearHistory drops both undo and redo stacks. Document loading uses this
// so a freshly opened file starts with a clean slate.
func (e *Engine) ClearHistory() { e.hist.Clear() }

// emit records a mutation (unless replaying), reports it, and raises the
// dirty event when the mutation can change produced values.
func (e *Engine) emit(m history.Mutation) {
	if !e.replaying {
		e.hist.Push(m)
	}
	e.send(history.Message{Mutation: m})
	if m.DirtiesGraph() {
		e.emitDirtied()
	}
}

func (e *Engine) emitDirtied() {
	e.graphDirty = true
	e.send(history.Message{Event: history.GraphDirtied{}})
}

func (e *Engine) emitEvent(ev history.Event) {
	e.send(history.Message{Event: ev})
}

func (e *Engine) send(msg history.Message) {
	if e.onMessage != nil {
		e.onMessage(msg)
	}
}

// Op fetches the node's operator downcast to a concrete type, for hosts
// that need to reach past the slot interface (uploading image data, poking
// watchers in tests).
func Op[T ops.Operation](e *Engine, id node.ID) (T, bool) {
	n, ok := e.graph.Get(id)
	if !ok {
		var zero T
		return zero, false
	}
	return node.Op[T](n)
}
