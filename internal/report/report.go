// Package report renders a finished crack run for the console and exports
// it to JSON or YAML files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"vigcrack/internal/crack"
	"vigcrack/internal/logging"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Generated prints the line emitted once the key space is ready.
func Generated(w io.Writer, elapsed time.Duration) {
	fmt.Fprintf(w, "Completed permutations %v\n", elapsed)
}

// Print writes the accepted pairs and the total elapsed time.
func Print(w io.Writer, res *crack.Result) {
	fmt.Fprintf(w, "\nKeys:\n%s\n", FormatPairs(res.Pairs))
	fmt.Fprintf(w, "Completed in %v\n", res.Elapsed)
}

// FormatPairs renders pairs as an indented list of (key, plaintext) tuples.
func FormatPairs(pairs []crack.Pair) string {
	if len(pairs) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[\n")
	for _, p := range pairs {
		b.WriteString("    (\n")
		b.WriteString("        " + strconv.Quote(p.Key) + ",\n")
		b.WriteString("        " + strconv.Quote(p.Plaintext) + ",\n")
		b.WriteString("    ),\n")
	}
	b.WriteString("]")
	return b.String()
}

// Export writes res to path. The format follows the extension: .json, or
// .yaml/.yml.
func Export(path string, res *crack.Result) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(res, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(res)
	default:
		return fmt.Errorf("unsupported export format %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logging.Get(logging.CategoryReport).Info("report exported",
		zap.String("path", path),
		zap.Int("pairs", len(res.Pairs)))
	return nil
}
