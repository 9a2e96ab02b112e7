// Package commands provides CLI command handlers for apidef.
package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apidef/internal/fileutil"
	"github.com/erraggy/apidef/resolver"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data in the specified format (json or yaml) to w.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// FetchFlags are the flags shared by every command that loads a definition.
type FetchFlags struct {
	Insecure     bool
	NoHTTP       bool
	Timeout      time.Duration
	MaxDocuments int
	Verbose      bool
}

func (f *FetchFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&f.Insecure, "insecure", false, "disable TLS certificate verification for HTTPS documents")
	fs.BoolVar(&f.NoHTTP, "no-http", false, "refuse to fetch documents over HTTP/HTTPS")
	fs.DurationVar(&f.Timeout, "timeout", 30*time.Second, "timeout for each HTTP request")
	fs.IntVar(&f.MaxDocuments, "max-documents", resolver.DefaultMaxDocuments, "maximum number of documents per definition, root included")
	fs.BoolVar(&f.Verbose, "verbose", false, "log every fetched document to stderr")
}

// ResolverOptions converts the flags into resolver options. Verbose logs go to logOut.
func (f *FetchFlags) ResolverOptions(logOut io.Writer) []resolver.Option {
	opts := []resolver.Option{
		resolver.WithInsecureSkipVerify(f.Insecure),
		resolver.WithHTTP(!f.NoHTTP),
		resolver.WithTimeout(f.Timeout),
		resolver.WithMaxDocuments(f.MaxDocuments),
	}
	if f.Verbose {
		handler := log.NewWithOptions(logOut, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           log.DebugLevel,
			Prefix:          "apidef",
		})
		opts = append(opts, resolver.WithLogger(resolver.NewSlogAdapter(slog.New(handler))))
	}
	return opts
}

// ValidateOutputPath checks if the output path is safe to write to
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		if resolver.Locator(inputPath).IsURL() {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	return fileutil.RejectSymlink(absOutputPath)
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
