package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/voidcase/reagraph/internal/graph"
	"github.com/voidcase/reagraph/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Database string
	Outbound string
	Type     string
	Inbound  string
}

// NewExportCommand creates the export command: print stored edges as
// snapshot JSON, either one edge addressed by key or all of them.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored edges as relation snapshots",
		Long: `Print stored edges in their snapshot JSON form. With --outbound, --type,
and --inbound, export the single edge with that key; otherwise export all.

Example:
  reagraph export --db ./graph.db
  reagraph export --db ./graph.db --outbound <uuid> --type connector --inbound <uuid>`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Outbound, "outbound", "", "outbound vertex id")
	cmd.Flags().StringVar(&opts.Type, "type", "", "edge type name")
	cmd.Flags().StringVar(&opts.Inbound, "inbound", "", "inbound vertex id")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var snapshots []*graph.RelationInstance
	if opts.Outbound != "" || opts.Type != "" || opts.Inbound != "" {
		key, err := parseKeyFlags(opts)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid edge key", err)
		}
		ep, err := st.EdgeProperties(ctx, key)
		if err != nil {
			return WrapExitError(ExitFailure, "edge not found", err)
		}
		snapshots = append(snapshots, graph.RelationInstanceFromProperties(ep))
	} else {
		all, err := st.AllEdges(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read edges", err)
		}
		for _, ep := range all {
			snapshots = append(snapshots, graph.RelationInstanceFromProperties(ep))
		}
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	for _, snapshot := range snapshots {
		if err := enc.Encode(snapshot); err != nil {
			return WrapExitError(ExitCommandError, "failed to encode snapshot", err)
		}
	}
	return nil
}

// parseKeyFlags builds an edge key from the --outbound/--type/--inbound
// flags; all three must be present together.
func parseKeyFlags(opts *ExportOptions) (graph.EdgeKey, error) {
	if opts.Outbound == "" || opts.Type == "" || opts.Inbound == "" {
		missing := []string{}
		if opts.Outbound == "" {
			missing = append(missing, "--outbound")
		}
		if opts.Type == "" {
			missing = append(missing, "--type")
		}
		if opts.Inbound == "" {
			missing = append(missing, "--inbound")
		}
		return graph.EdgeKey{}, fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	outID, err := uuid.Parse(opts.Outbound)
	if err != nil {
		return graph.EdgeKey{}, fmt.Errorf("outbound id: %w", err)
	}
	inID, err := uuid.Parse(opts.Inbound)
	if err != nil {
		return graph.EdgeKey{}, fmt.Errorf("inbound id: %w", err)
	}
	t, err := graph.ParseIdentifier(opts.Type)
	if err != nil {
		return graph.EdgeKey{}, fmt.Errorf("type: %w", err)
	}
	return graph.EdgeKey{OutboundID: outID, Type: t, InboundID: inID}, nil
}
