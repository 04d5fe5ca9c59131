package document

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/grafiek/internal/ctxlog"
	"github.com/vk/grafiek/internal/engine"
	"github.com/vk/grafiek/internal/node"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
	"github.com/vk/grafiek/modules/system"
	"github.com/zclconf/go-cty/cty"
)

// Save writes the engine's graph to path as a document. Nodes are written in
// id order and slots in declaration order, so the same graph always produces
// the same bytes. A Nil id gets a fresh identity; the id actually written is
// returned either way.
func Save(ctx context.Context, e *engine.Engine, id uuid.UUID, path string) (uuid.UUID, error) {
	logger := ctxlog.FromContext(ctx)
	if id == uuid.Nil {
		id = uuid.New()
	}

	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("version", cty.NumberIntVal(Version))
	body.SetAttributeValue("id", cty.StringVal(id.String()))

	for _, nid := range e.Nodes() {
		n, ok := e.GetNode(nid)
		if !ok {
			continue
		}
		body.AppendNewline()
		writeNode(body, n)
	}

	edges := e.EdgeList()
	if len(edges) > 0 {
		body.AppendNewline()
	}
	for _, edge := range edges {
		block := body.AppendNewBlock("edge", nil).Body()
		block.SetAttributeValue("from", cty.NumberUIntVal(uint64(edge.From)))
		block.SetAttributeValue("from_slot", cty.NumberIntVal(int64(edge.FromSlot)))
		block.SetAttributeValue("to", cty.NumberUIntVal(uint64(edge.To)))
		block.SetAttributeValue("to_slot", cty.NumberIntVal(int64(edge.ToSlot)))
	}

	if err := os.WriteFile(path, f.Bytes(), 0o644); err != nil {
		return uuid.Nil, fmt.Errorf("writing document %s: %w", path, err)
	}
	logger.Debug("Document saved.", "path", path, "nodes", e.NodeCount(), "edges", len(edges))
	return id, nil
}

func writeNode(body *hclwrite.Body, n *node.Node) {
	rec := n.Record()
	block := body.AppendNewBlock("node", []string{rec.Path.String()}).Body()
	block.SetAttributeValue("id", cty.NumberUIntVal(uint64(rec.ID)))
	if rec.Label != "" {
		block.SetAttributeValue("label", cty.StringVal(rec.Label))
	}
	block.SetAttributeValue("position", cty.TupleVal([]cty.Value{
		cty.NumberFloatVal(float64(rec.Position[0])),
		cty.NumberFloatVal(float64(rec.Position[1])),
	}))

	sig := n.Signature()
	writeSlots(block, "config", rec.ConfigValues, sig.ConfigCount(), sig.Config)
	writeSlots(block, "inputs", rec.InputValues, sig.InputCount(), sig.Input)

	// A graph input's authored value lives in its output slot, the one
	// piece of output state a document must carry.
	if rec.Path == system.InputPath {
		if outs := n.OutputValues(); len(outs) > 0 {
			if v, ok := attributeValue(outs[0]); ok {
				block.SetAttributeValue("value", v)
			}
		}
	}
}

// writeSlots emits a config or inputs block holding every stored value with
// a document form. Textures and nulls are runtime state and are skipped; a
// block with nothing to say is omitted entirely.
func writeSlots(body *hclwrite.Body, name string, values []value.Value, count int, def func(int) *signature.SlotDef) {
	var block *hclwrite.Body
	for i := 0; i < count && i < len(values); i++ {
		v, ok := attributeValue(values[i])
		if !ok {
			continue
		}
		if block == nil {
			block = body.AppendNewBlock(name, nil).Body()
		}
		block.SetAttributeValue(def(i).Name, v)
	}
}
