package journey

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/testgraph/pkg/errors"
)

// rawNode mirrors the payload. Name is a pointer so a missing name can be
// told apart from the empty string, which is a valid name.
type rawNode struct {
	Name     *string   `json:"name"`
	Children []rawNode `json:"children"`
}

// Decode parses a journey payload and returns a synthetic root labelled
// [RootLabel] holding the payload's children. The payload's own name, if any,
// is ignored.
//
// Decode fails with MALFORMED_INPUT if the payload is not a single JSON
// object, if any "children" value is not an array, or if a node has no "name"
// string.
func Decode(data []byte) (Node, error) {
	var doc *rawNode
	if err := json.Unmarshal(data, &doc); err != nil {
		return Node{}, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode journey tree")
	}
	if doc == nil {
		return Node{}, errors.Malformed("journey tree is null")
	}

	children, err := convert(doc.Children, "children")
	if err != nil {
		return Node{}, err
	}
	return NewRoot(RootLabel, children), nil
}

// ReadTree decodes a journey payload from r. It does not close r.
func ReadTree(r io.Reader) (Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Node{}, fmt.Errorf("read: %w", err)
	}
	return Decode(data)
}

// ReadTreeFile decodes the journey payload stored at path.
func ReadTreeFile(path string) (Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Node{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Node{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data)
}

func convert(raw []rawNode, path string) ([]Node, error) {
	if raw == nil {
		return nil, nil
	}
	out := make([]Node, len(raw))
	for i, rn := range raw {
		at := fmt.Sprintf("%s[%d]", path, i)
		if rn.Name == nil {
			return nil, errors.Malformed("%s: missing name", at)
		}
		children, err := convert(rn.Children, at+".children")
		if err != nil {
			return nil, err
		}
		out[i] = Node{Name: *rn.Name, Children: children}
	}
	return out, nil
}
