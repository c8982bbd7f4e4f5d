package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voidcase/reagraph/internal/registry"
)

// TypesOptions holds flags for the types command.
type TypesOptions struct {
	*RootOptions
}

// NewTypesCommand creates the types command: validate a type definition
// file and list the types it declares.
func NewTypesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TypesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "types <definitions.yaml>",
		Short: "Validate and list type definitions",
		Long: `Validate a YAML type definition file against the definition schema and
list the entity types, relation types, and components it declares.

Example:
  reagraph types ./types.yaml
  reagraph types --format json ./types.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(opts, args[0], cmd)
		},
	}

	return cmd
}

// typesReport is the machine-readable summary of a definition file.
type typesReport struct {
	Components    []string `json:"components"`
	EntityTypes   []string `json:"entity_types"`
	RelationTypes []string `json:"relation_types"`
}

func runTypes(opts *TypesOptions, path string, cmd *cobra.Command) error {
	reg := registry.New()
	if err := reg.LoadFile(path); err != nil {
		return WrapExitError(ExitFailure, "invalid type definitions", err)
	}

	report := typesReport{
		Components:    []string{},
		EntityTypes:   []string{},
		RelationTypes: []string{},
	}
	for _, c := range reg.Components() {
		report.Components = append(report.Components, c.Name)
	}
	for _, t := range reg.EntityTypes() {
		report.EntityTypes = append(report.EntityTypes, t.Name)
	}
	for _, t := range reg.RelationTypes() {
		report.RelationTypes = append(report.RelationTypes, fmt.Sprintf("%s--(%s)-->%s", t.OutboundType, t.Name, t.InboundType))
	}
	sort.Strings(report.Components)
	sort.Strings(report.EntityTypes)
	sort.Strings(report.RelationTypes)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	var text strings.Builder
	fmt.Fprintf(&text, "%d entity types, %d relation types\n", len(report.EntityTypes), len(report.RelationTypes))
	for _, name := range report.EntityTypes {
		fmt.Fprintf(&text, "  entity   %s\n", name)
	}
	for _, name := range report.RelationTypes {
		fmt.Fprintf(&text, "  relation %s\n", name)
	}
	return formatter.SuccessText(strings.TrimRight(text.String(), "\n"), report)
}
