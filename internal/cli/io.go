package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/testgraph/pkg/errors"
	"github.com/matzehuels/testgraph/pkg/graph"
)

// readInput reads the document named by path, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return graph.WriteFile(path, data)
}

// resolveFormat picks the output format: the flag if given, else the
// output file's extension, else the config file, else JSON.
func resolveFormat(flag, output, configured string) string {
	if flag != "" {
		return flag
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".dot", ".gv":
		return graph.FormatDOT
	case ".json":
		return graph.FormatJSON
	}
	if configured != "" {
		return configured
	}
	return graph.FormatJSON
}
