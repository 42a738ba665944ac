package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/occupation-risk/internal/pipeline"
)

// ErrUnreachable is returned by probe when the statistics API did not answer.
var ErrUnreachable = errors.New("statistics api unreachable")

func newLookupCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "lookup <job title>",
		Short: "Look up statistics and risk for one job title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := appInstance.Pipeline().GetJobData(cmd.Context(), strings.Join(args, " "), refreshOptions(refresh)...)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and fetch live statistics")
	return cmd
}

type comparisonOutput struct {
	Title  string                  `json:"title"`
	Record *pipeline.UnifiedRecord `json:"record,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

func newCompareCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "compare <title> <title>...",
		Short: "Compare several job titles, one live fetch at a time",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			results := appInstance.Pipeline().GetJobsComparisonData(cmd.Context(), args, refreshOptions(refresh)...)
			titles := make([]string, 0, len(results))
			for title := range results {
				titles = append(titles, title)
			}
			sort.Strings(titles)

			out := make([]comparisonOutput, 0, len(titles))
			failed := 0
			for _, title := range titles {
				res := results[title]
				entry := comparisonOutput{Title: title, Record: res.Record}
				if res.Err != nil {
					entry.Error = res.Err.Error()
					failed++
				}
				out = append(out, entry)
			}
			if failed > 0 {
				appInstance.Logger().Warn("comparison finished with failures", zap.Int("failed", failed), zap.Int("total", len(titles)))
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and fetch live statistics")
	return cmd
}

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check connectivity to the statistics API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			result := appInstance.Prober().Probe(cmd.Context())
			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Reachable {
				return fmt.Errorf("%w: %s", ErrUnreachable, result.Message)
			}
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the occupation table and its index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			return appInstance.Migrate(cmd.Context())
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			return appInstance.Run(cmd.Context())
		},
	}
}

func refreshOptions(refresh bool) []pipeline.Option {
	if !refresh {
		return nil
	}
	return []pipeline.Option{pipeline.WithForceRefresh()}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
