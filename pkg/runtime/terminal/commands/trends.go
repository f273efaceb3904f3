package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/de-tools/form-atlas/pkg/adapters"
	"github.com/de-tools/form-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/form-atlas/pkg/services/analyst"
	"github.com/de-tools/form-atlas/pkg/services/narrative"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type TrendsCmd struct {
	configPath   string
	profilesPath string
	profileName  string
	asJSON       bool
	logger       zerolog.Logger
	reporter     *export.Reporter
}

func NewTrendsCmd(logger zerolog.Logger, reporter *export.Reporter) *cobra.Command {
	tc := &TrendsCmd{logger: logger, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "trends <payloads.json>",
		Short: "Analyze multi-year performance for one organization",
		Args:  cobra.ExactArgs(1),
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.configPath, "config", "", "Path to a single-profile configuration file")
	cmd.Flags().StringVar(&tc.profilesPath, "profiles", "", "Path to an ini profiles file")
	cmd.Flags().StringVar(&tc.profileName, "profile", "default", "Profile name within the profiles file")
	cmd.Flags().BoolVar(&tc.asJSON, "json", false, "Emit the report as JSON instead of a table")

	return cmd
}

func (tc *TrendsCmd) run(cmd *cobra.Command, args []string) error {
	ctx := tc.logger.WithContext(context.Background())

	profile, err := resolveProfile(ctx, tc.configPath, tc.profilesPath, tc.profileName)
	if err != nil {
		return err
	}

	if timeout := profile.RequestTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	_, gemini, err := buildCollaborators(ctx, profile)
	if err != nil {
		return err
	}

	var narrator narrative.AnalystNarrator
	if gemini != nil {
		narrator = gemini
	}

	payloads, err := loadPayloadList(args[0])
	if err != nil {
		return err
	}

	ctrl := analyst.NewController(narrator)
	report, err := ctrl.BuildReport(ctx, payloads)
	if err != nil {
		return fmt.Errorf("trend analysis failed: %w", err)
	}

	apiReport := adapters.MapAnalystReportDomainToApi(report)
	if tc.asJSON {
		encoded, err := json.MarshalIndent(apiReport, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return err
	}
	return tc.reporter.HandleAnalyst(&apiReport)
}
