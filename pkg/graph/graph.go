package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/testgraph/pkg/similarity"
)

// =============================================================================
// Serialization API
// =============================================================================

// MarshalForceGraph converts a similarity graph to indented JSON bytes.
func MarshalForceGraph(g *similarity.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteForceGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteForceGraph writes a similarity graph as force-layout JSON to w.
func WriteForceGraph(g *similarity.Graph, w io.Writer) error {
	return encode(w, FromSimilarity(g))
}

// MarshalTree converts a journey tree to indented JSON bytes.
func MarshalTree(t Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTree(t, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTree writes a journey tree as hierarchy JSON to w.
func WriteTree(t Tree, w io.Writer) error {
	return encode(w, t)
}

// UnmarshalForceGraph deserializes force-layout JSON.
func UnmarshalForceGraph(data []byte) (ForceGraph, error) {
	var g ForceGraph
	if err := json.Unmarshal(data, &g); err != nil {
		return ForceGraph{}, err
	}
	return g, nil
}

// WriteFile writes data to path, creating or truncating it with 0644
// permissions.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
