package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/de-tools/form-atlas/pkg/adapters"
	"github.com/de-tools/form-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/form-atlas/pkg/services/audit"
	"github.com/de-tools/form-atlas/pkg/services/narrative"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type AuditCmd struct {
	configPath   string
	profilesPath string
	profileName  string
	asJSON       bool
	logger       zerolog.Logger
	reporter     *export.Reporter
}

func NewAuditCmd(logger zerolog.Logger, reporter *export.Reporter) *cobra.Command {
	ac := &AuditCmd{logger: logger, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "audit <payload.json>",
		Short: "Validate a single filing and report findings",
		Args:  cobra.ExactArgs(1),
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.configPath, "config", "", "Path to a single-profile configuration file")
	cmd.Flags().StringVar(&ac.profilesPath, "profiles", "", "Path to an ini profiles file")
	cmd.Flags().StringVar(&ac.profileName, "profile", "default", "Profile name within the profiles file")
	cmd.Flags().BoolVar(&ac.asJSON, "json", false, "Emit the report as JSON instead of a table")

	return cmd
}

func (ac *AuditCmd) run(cmd *cobra.Command, args []string) error {
	ctx := ac.logger.WithContext(context.Background())

	profile, err := resolveProfile(ctx, ac.configPath, ac.profilesPath, ac.profileName)
	if err != nil {
		return err
	}

	if timeout := profile.RequestTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	verifier, gemini, err := buildCollaborators(ctx, profile)
	if err != nil {
		return err
	}

	var narrator narrative.AuditNarrator
	if gemini != nil {
		narrator = gemini
	}

	payload, err := loadPayload(args[0])
	if err != nil {
		return err
	}

	ctrl := audit.NewController(verifier, narrator)
	report, err := ctrl.BuildReport(ctx, payload)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	apiReport := adapters.MapAuditReportDomainToApi(report)
	if ac.asJSON {
		encoded, err := json.MarshalIndent(apiReport, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return err
	}
	return ac.reporter.HandleAudit(&apiReport)
}
