package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/form-atlas/pkg/models/domain"
	"github.com/de-tools/form-atlas/pkg/services/registry"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// reconciliationTolerance is the absolute currency-unit difference allowed
// when comparing a category sum against its reported total.
const reconciliationTolerance = 1.0

var (
	amounts    = message.NewPrinter(language.English)
	fieldTitle = cases.Title(language.English)
)

func formatAmount(v float64) string {
	return amounts.Sprintf("$%.2f", v)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// CheckRevenueTotals reconciles the revenue category sum against the reported
// total revenue.
func CheckRevenueTotals(f domain.Filing) domain.Finding {
	subtotal := 0.0
	for _, v := range f.Revenue.Categories() {
		subtotal += v
	}
	if abs(subtotal-f.Revenue.TotalRevenue) <= reconciliationTolerance {
		return domain.Finding{
			ID:         "revenue_totals",
			Category:   "Revenue",
			Severity:   domain.SeverityPass,
			Message:    fmt.Sprintf("Revenue categories sum (%s) matches total revenue.", formatAmount(subtotal)),
			Mitigation: "Maintain detailed support for each revenue source to preserve reconciliation trail.",
			Confidence: 0.95,
		}
	}
	return domain.Finding{
		ID:       "revenue_totals",
		Category: "Revenue",
		Severity: domain.SeverityError,
		Message: fmt.Sprintf("Revenue categories sum (%s) does not equal reported total (%s).",
			formatAmount(subtotal), formatAmount(f.Revenue.TotalRevenue)),
		Mitigation: "Recalculate revenue totals and correct line items or Schedule A before filing.",
		Confidence: 0.95,
	}
}

// CheckExpenseTotals reconciles the three functional expense categories
// against the reported total expenses.
func CheckExpenseTotals(f domain.Filing) domain.Finding {
	subtotal := f.Expenses.ProgramServicesExpenses +
		f.Expenses.ManagementGeneralExpenses +
		f.Expenses.FundraisingExpenses
	if abs(subtotal-f.Expenses.TotalExpenses) <= reconciliationTolerance {
		return domain.Finding{
			ID:         "expense_totals",
			Category:   "Expenses",
			Severity:   domain.SeverityPass,
			Message:    "Functional expenses match total expenses.",
			Mitigation: "Keep functional allocation workpapers to support the reconciliation.",
			Confidence: 0.95,
		}
	}
	return domain.Finding{
		ID:       "expense_totals",
		Category: "Expenses",
		Severity: domain.SeverityError,
		Message: fmt.Sprintf("Functional expenses (%s) do not reconcile to total expenses (%s).",
			formatAmount(subtotal), formatAmount(f.Expenses.TotalExpenses)),
		Mitigation: "Review Part I, lines 23-27 and reclassify functional expenses to tie to Part II totals.",
		Confidence: 0.95,
	}
}

// CheckFundraisingAlignment compares the functional fundraising expense to
// the reported fundraising-event expense. Within one unit is a pass; within
// 10% of a nonzero reported expense is a warning; beyond that an error.
func CheckFundraisingAlignment(f domain.Filing) domain.Finding {
	reported := f.Expenses.FundraisingExpenses
	eventExpenses := f.Fundraising.TotalFundraisingEventExpenses
	difference := abs(reported - eventExpenses)
	if difference <= reconciliationTolerance {
		return domain.Finding{
			ID:         "fundraising_alignment",
			Category:   "Fundraising",
			Severity:   domain.SeverityPass,
			Message:    "Fundraising functional expenses align with reported event expenses.",
			Mitigation: "Retain event ledgers and allocations to support matching totals.",
			Confidence: 0.9,
		}
	}
	severity := domain.SeverityError
	if reported != 0 && difference <= reported*0.1 {
		severity = domain.SeverityWarning
	}
	return domain.Finding{
		ID:       "fundraising_alignment",
		Category: "Fundraising",
		Severity: severity,
		Message: fmt.Sprintf("Fundraising functional expenses (%s) differ from reported event expenses (%s) by %s.",
			formatAmount(reported), formatAmount(eventExpenses), formatAmount(difference)),
		Mitigation: "Reconcile Schedule G and Part I allocations to eliminate the variance.",
		Confidence: 0.85,
	}
}

// CheckBalanceSheetPresence warns when the balance sheet section is empty.
func CheckBalanceSheetPresence(f domain.Filing) domain.Finding {
	if len(f.BalanceSheet) > 0 {
		return domain.Finding{
			ID:         "balance_sheet_present",
			Category:   "Balance Sheet",
			Severity:   domain.SeverityPass,
			Message:    "Balance sheet data is present.",
			Mitigation: "Ensure ending net assets tie to Part I, line 30.",
			Confidence: 0.7,
		}
	}
	return domain.Finding{
		ID:         "balance_sheet_absent",
		Category:   "Balance Sheet",
		Severity:   domain.SeverityWarning,
		Message:    "Balance sheet section is empty; confirm Part II filing requirements.",
		Mitigation: "Populate assets, liabilities, and net assets or attach supporting schedules.",
		Confidence: 0.6,
	}
}

// CheckBoardEngagement sums reported weekly hours across officers and
// directors; under five aggregate hours per week is flagged.
func CheckBoardEngagement(f domain.Filing) domain.Finding {
	totalHours := 0.0
	for _, officer := range f.Officers {
		if officer.AverageHoursPerWeek != nil {
			totalHours += *officer.AverageHoursPerWeek
		}
	}
	if totalHours >= 5 {
		return domain.Finding{
			ID:         "board_hours",
			Category:   "Governance",
			Severity:   domain.SeverityPass,
			Message:    "Officer and director time commitments appear reasonable.",
			Mitigation: "Continue documenting board attendance and oversight responsibilities.",
			Confidence: 0.7,
		}
	}
	return domain.Finding{
		ID:       "board_hours",
		Category: "Governance",
		Severity: domain.SeverityWarning,
		Message: fmt.Sprintf("Aggregate reported board hours (%.1f per week) are low; "+
			"confirm entries reflect actual governance involvement.", totalHours),
		Mitigation: "Verify hours in Part VII; update if officers volunteer significant time.",
		Confidence: 0.6,
	}
}

// CheckMissingOperationalDetails warns when the fundraising-method narrative
// is blank.
func CheckMissingOperationalDetails(f domain.Filing) domain.Finding {
	descriptors := strings.TrimSpace(f.Operational.FundraisingMethodDescriptions)
	if descriptors != "" {
		return domain.Finding{
			ID:         "fundraising_methods_documented",
			Category:   "Operations",
			Severity:   domain.SeverityPass,
			Message:    "Fundraising method descriptions provided.",
			Mitigation: "Update narratives annually to reflect any new campaigns or joint ventures.",
			Confidence: 0.65,
		}
	}
	return domain.Finding{
		ID:         "fundraising_methods_missing",
		Category:   "Operations",
		Severity:   domain.SeverityWarning,
		Message:    "Fundraising method descriptions are blank.",
		Mitigation: "Add a brief Schedule G narrative describing major fundraising approaches.",
		Confidence: 0.55,
	}
}

type policyField struct {
	name       string
	value      func(domain.GovernanceDisclosure) string
	mitigation string
}

var policyFields = []policyField{
	{
		name:       "conflict_of_interest_policy",
		value:      func(g domain.GovernanceDisclosure) string { return g.ConflictOfInterestPolicy },
		mitigation: "Document the policy in Part VI or adopt one prior to filing.",
	},
	{
		name:       "whistleblower_policy",
		value:      func(g domain.GovernanceDisclosure) string { return g.WhistleblowerPolicy },
		mitigation: "Document whistleblower protections for staff and volunteers.",
	},
	{
		name:       "document_retention_policy",
		value:      func(g domain.GovernanceDisclosure) string { return g.DocumentRetentionPolicy },
		mitigation: "Adopt and document a record retention policy.",
	},
}

var affirmativeFields = []policyField{
	{
		name:       "financial_statements_reviewed",
		value:      func(g domain.GovernanceDisclosure) string { return g.FinancialStatementsReviewed },
		mitigation: "Capture whether the board reviewed or audited year-end financials.",
	},
	{
		name:       "form_990_provided_to_governing_body",
		value:      func(g domain.GovernanceDisclosure) string { return g.Form990ProvidedToBoard },
		mitigation: "Provide Form 990 to the board before submission and note the date of review.",
	},
}

func fieldLabel(name string) string {
	return fieldTitle.String(strings.ReplaceAll(name, "_", " "))
}

// CheckGovernancePolicies emits one finding per missing or negated governance
// policy field and one per blank affirmative disclosure. Finding ids are
// derived from the field names so repeated runs merge cleanly.
func CheckGovernancePolicies(f domain.Filing) []domain.Finding {
	var findings []domain.Finding

	for _, field := range policyFields {
		value := strings.ToLower(strings.TrimSpace(field.value(f.Governance)))
		if value == "" || value == "no" || value == "n" || value == "false" {
			findings = append(findings, domain.Finding{
				ID:         field.name + "_missing",
				Category:   "Governance",
				Severity:   domain.SeverityWarning,
				Message:    fmt.Sprintf("%s not reported or marked 'No'.", fieldLabel(field.name)),
				Mitigation: field.mitigation,
				Confidence: 0.55,
			})
		}
	}

	for _, field := range affirmativeFields {
		if strings.TrimSpace(field.value(f.Governance)) == "" {
			findings = append(findings, domain.Finding{
				ID:         field.name + "_blank",
				Category:   "Governance",
				Severity:   domain.SeverityWarning,
				Message:    fmt.Sprintf("%s left blank.", fieldLabel(field.name)),
				Mitigation: field.mitigation,
				Confidence: 0.5,
			})
		}
	}

	return findings
}

// CheckEINVerification confirms the filing's EIN against an external registry.
// The lookup fails open: an unavailable registry degrades to an unverified
// Warning rather than an error.
func CheckEINVerification(ctx context.Context, f domain.Filing, verifier registry.Verifier) domain.Finding {
	ein := f.Org.EIN
	result := domain.EINVerification{
		Confirmed:  false,
		Confidence: 0.2,
		Note:       "EIN verification unavailable in current environment.",
	}

	if verifier != nil {
		verification, err := verifier.VerifyEIN(ctx, ein)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("ein", ein).Msg("EIN verification lookup failed")
		} else {
			result = verification
		}
	}

	if result.Confirmed {
		return domain.Finding{
			ID:         "irs_ein_match",
			Category:   "Compliance",
			Severity:   domain.SeverityPass,
			Message:    "EIN confirmed against IRS index.",
			Mitigation: "Document verification in the filing workpapers.",
			Confidence: result.Confidence,
		}
	}
	return domain.Finding{
		ID:         "irs_ein_match",
		Category:   "Compliance",
		Severity:   domain.SeverityWarning,
		Message:    fmt.Sprintf("EIN %s could not be confirmed. %s", ein, result.Note),
		Mitigation: "Verify the EIN against the IRS EO BMF or IRS determination letter.",
		Confidence: result.Confidence,
	}
}

// RunChecks executes the full deterministic battery against one filing. The
// checks are independent of each other; only the returned order is fixed.
func RunChecks(ctx context.Context, f domain.Filing, verifier registry.Verifier) []domain.Finding {
	findings := []domain.Finding{
		CheckRevenueTotals(f),
		CheckExpenseTotals(f),
		CheckFundraisingAlignment(f),
		CheckBalanceSheetPresence(f),
		CheckBoardEngagement(f),
		CheckMissingOperationalDetails(f),
	}
	findings = append(findings, CheckGovernancePolicies(f)...)
	findings = append(findings, CheckEINVerification(ctx, f, verifier))
	return findings
}
