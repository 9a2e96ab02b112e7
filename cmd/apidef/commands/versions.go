package commands

import (
	"errors"
	"flag"
	"io"
	"strings"

	"github.com/erraggy/apidef/definition"
)

// VersionsFlags contains flags for the versions command
type VersionsFlags struct {
	Format string
}

// SetupVersionsFlags creates and configures a FlagSet for the versions command.
func SetupVersionsFlags() (*flag.FlagSet, *VersionsFlags) {
	fs := flag.NewFlagSet("versions", flag.ContinueOnError)
	flags := &VersionsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: apidef versions [flags]\n\n")
		Writef(output, "List the specification versions apidef recognizes.\n")
		Writef(output, "OpenAPI versions match by major.minor (3.0.3 matches 3.0.x); AsyncAPI versions match exactly.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

// FamilyVersions lists the registered versions of one family.
type FamilyVersions struct {
	Family   string   `json:"family"   yaml:"family"`
	Versions []string `json:"versions" yaml:"versions"`
}

// HandleVersions executes the versions command
func HandleVersions(args []string, stdout io.Writer) error {
	fs, flags := SetupVersionsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	reg := definition.DefaultRegistry()
	families := make([]FamilyVersions, 0, len(reg.Families()))
	for _, family := range reg.Families() {
		families = append(families, FamilyVersions{Family: string(family), Versions: reg.Keys(family)})
	}

	if flags.Format != FormatText {
		return OutputStructured(stdout, families, flags.Format)
	}
	for _, f := range families {
		Writef(stdout, "%s: %s\n", f.Family, strings.Join(f.Versions, ", "))
	}
	return nil
}
