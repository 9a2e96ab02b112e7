package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/apidef/internal/mcpserver"
)

// MCPFlags contains flags for the mcp command
type MCPFlags struct {
	EnvFile string
}

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() (*flag.FlagSet, *MCPFlags) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	flags := &MCPFlags{}

	fs.StringVar(&flags.EnvFile, "env-file", "", "read APIDEF_* settings from a dotenv file")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: apidef mcp [flags]\n\n")
		Writef(output, "Run the MCP server over stdio. Tools: load_definition, supported_versions, build_payload.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nSettings are read from APIDEF_* environment variables; variables already set\n")
		Writef(output, "in the environment take precedence over --env-file.\n")
	}

	return fs, flags
}

// HandleMCP executes the mcp command
func HandleMCP(ctx context.Context, args []string) error {
	fs, flags := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	if flags.EnvFile != "" {
		if err := mcpserver.LoadEnvFile(flags.EnvFile); err != nil {
			return err
		}
	}
	return mcpserver.Run(ctx)
}
