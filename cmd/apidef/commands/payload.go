package commands

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/apidef/definition"
	"github.com/erraggy/apidef/internal/fileutil"
)

// PayloadFlags contains flags for the payload command
type PayloadFlags struct {
	FetchFlags
	Output string
}

// SetupPayloadFlags creates and configures a FlagSet for the payload command.
// Returns the FlagSet and a PayloadFlags struct with bound flag variables.
func SetupPayloadFlags() (*flag.FlagSet, *PayloadFlags) {
	fs := flag.NewFlagSet("payload", flag.ContinueOnError)
	flags := &PayloadFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	flags.register(fs)

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: apidef payload [flags] <file|url> [previous-file|url]\n\n")
		Writef(output, "Build the JSON request body a comparison service expects. With one definition\n")
		Writef(output, "the body carries that definition and every referenced document. With two, the\n")
		Writef(output, "body compares the first definition against the previous one.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  apidef payload openapi.yaml\n")
		Writef(output, "  apidef payload -o body.json api-v2.yaml api-v1.yaml\n")
	}

	return fs, flags
}

// HandlePayload executes the payload command
func HandlePayload(ctx context.Context, args []string, stdout io.Writer) error {
	fs, flags := SetupPayloadFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("payload command requires one or two file paths or URLs")
	}

	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, fs.Args()); err != nil {
			return err
		}
	}

	// each definition is loaded on its own, with nothing shared between them
	defs := make([]*definition.APIDefinition, fs.NArg())
	g, gctx := errgroup.WithContext(ctx)
	for i, specPath := range fs.Args() {
		g.Go(func() error {
			def, err := definition.Load(gctx, specPath, definition.WithResolverOptions(flags.ResolverOptions(os.Stderr)...))
			if err != nil {
				return err
			}
			defs[i] = def
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var body any
	var err error
	if len(defs) == 1 {
		body, err = definition.NewPayload(defs[0])
	} else {
		body, err = definition.NewComparison(defs[0], defs[1])
	}
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	if flags.Output == "" {
		Writef(stdout, "%s\n", data)
		return nil
	}
	if err := fileutil.WriteOutput(flags.Output, append(data, '\n')); err != nil {
		return err
	}
	Writef(os.Stderr, "Payload written to %s\n", flags.Output)
	return nil
}
