package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/testgraph/pkg/errors"
	"github.com/matzehuels/testgraph/pkg/graph"
	"github.com/matzehuels/testgraph/pkg/observability"
	"github.com/matzehuels/testgraph/pkg/similarity"
)

// RenderGraph encodes a similarity graph in the given format.
func RenderGraph(ctx context.Context, g *similarity.Graph, format string) ([]byte, error) {
	return render(ctx, format, func() ([]byte, error) {
		switch format {
		case graph.FormatJSON:
			return graph.MarshalForceGraph(g)
		case graph.FormatDOT:
			return []byte(graph.SimilarityDOT(g)), nil
		}
		return nil, graph.ValidateFormat(format)
	})
}

// RenderTree encodes a journey tree in the given format.
func RenderTree(ctx context.Context, t graph.Tree, format string) ([]byte, error) {
	return render(ctx, format, func() ([]byte, error) {
		switch format {
		case graph.FormatJSON:
			return graph.MarshalTree(t)
		case graph.FormatDOT:
			return []byte(graph.TreeDOT(t)), nil
		}
		return nil, graph.ValidateFormat(format)
	})
}

func render(ctx context.Context, format string, fn func() ([]byte, error)) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	data, err := fn()
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return data, nil
}
