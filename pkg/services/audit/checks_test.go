package audit

import (
	"context"
	"fmt"
	"testing"

	"github.com/de-tools/form-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) VerifyEIN(ctx context.Context, ein string) (domain.EINVerification, error) {
	args := m.Called(ctx, ein)
	return args.Get(0).(domain.EINVerification), args.Error(1)
}

func hours(v float64) *float64 {
	return &v
}

// cleanFiling reconciles on every check: category sums tie to totals, the
// balance sheet is populated, board hours are adequate and every governance
// policy is affirmed.
func cleanFiling() domain.Filing {
	return domain.Filing{
		Org: domain.OrgMetadata{
			EIN:       "12-3456789",
			LegalName: "Community Health Alliance",
		},
		Revenue: domain.RevenueBreakdown{
			TotalRevenue:             5227,
			ContributionsGiftsGrants: 4000,
			ProgramServiceRevenue:    1000,
			InvestmentIncome:         227,
		},
		Expenses: domain.ExpensesBreakdown{
			TotalExpenses:             4100,
			ProgramServicesExpenses:   3000,
			ManagementGeneralExpenses: 700,
			FundraisingExpenses:       400,
		},
		Fundraising: domain.FundraisingGrantmaking{
			TotalFundraisingEventExpenses: 400,
		},
		BalanceSheet: map[string]any{
			"total_assets_boy": 10000.0,
			"total_assets_eoy": 11000.0,
		},
		Officers: []domain.Officer{
			{Name: "A. Director", AverageHoursPerWeek: hours(4)},
			{Name: "B. Treasurer", AverageHoursPerWeek: hours(2)},
		},
		Governance: domain.GovernanceDisclosure{
			FinancialStatementsReviewed: "Yes",
			Form990ProvidedToBoard:      "Yes",
			ConflictOfInterestPolicy:    "Yes",
			WhistleblowerPolicy:         "Yes",
			DocumentRetentionPolicy:     "Yes",
		},
		Operational: domain.OperationalData{
			FundraisingMethodDescriptions: "Annual gala and direct mail campaigns.",
		},
	}
}

func TestCheckRevenueTotals(t *testing.T) {
	f := cleanFiling()

	finding := CheckRevenueTotals(f)
	assert.Equal(t, "revenue_totals", finding.ID)
	assert.Equal(t, domain.SeverityPass, finding.Severity)

	f.Revenue.TotalRevenue += 1.0
	assert.Equal(t, domain.SeverityPass, CheckRevenueTotals(f).Severity,
		"a one-unit difference is within tolerance")

	f.Revenue.TotalRevenue += 1.5
	finding = CheckRevenueTotals(f)
	assert.Equal(t, domain.SeverityError, finding.Severity)
	assert.Contains(t, finding.Message, "does not equal reported total")
}

func TestCheckRevenueTotals_GroupsAmounts(t *testing.T) {
	f := cleanFiling()
	f.Revenue.TotalRevenue = 1250227

	finding := CheckRevenueTotals(f)
	assert.Equal(t, domain.SeverityError, finding.Severity)
	assert.Contains(t, finding.Message, "$1,250,227.00")
}

func TestCheckExpenseTotals(t *testing.T) {
	f := cleanFiling()

	finding := CheckExpenseTotals(f)
	assert.Equal(t, "expense_totals", finding.ID)
	assert.Equal(t, domain.SeverityPass, finding.Severity)

	f.Expenses.TotalExpenses = 4500
	finding = CheckExpenseTotals(f)
	assert.Equal(t, domain.SeverityError, finding.Severity)
	assert.Contains(t, finding.Message, "do not reconcile")
}

func TestCheckFundraisingAlignment(t *testing.T) {
	cases := []struct {
		name     string
		reported float64
		event    float64
		want     domain.Severity
	}{
		{"exact match", 400, 400, domain.SeverityPass},
		{"one unit apart", 400, 401, domain.SeverityPass},
		{"within ten percent", 1000, 1090, domain.SeverityWarning},
		{"beyond ten percent", 1000, 1200, domain.SeverityError},
		{"nothing reported", 0, 50, domain.SeverityError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := cleanFiling()
			f.Expenses.FundraisingExpenses = tc.reported
			f.Fundraising.TotalFundraisingEventExpenses = tc.event
			assert.Equal(t, tc.want, CheckFundraisingAlignment(f).Severity)
		})
	}
}

func TestCheckBalanceSheetPresence(t *testing.T) {
	f := cleanFiling()

	finding := CheckBalanceSheetPresence(f)
	assert.Equal(t, "balance_sheet_present", finding.ID)
	assert.Equal(t, domain.SeverityPass, finding.Severity)

	f.BalanceSheet = nil
	finding = CheckBalanceSheetPresence(f)
	assert.Equal(t, "balance_sheet_absent", finding.ID)
	assert.Equal(t, domain.SeverityWarning, finding.Severity)
}

func TestCheckBoardEngagement(t *testing.T) {
	f := cleanFiling()
	assert.Equal(t, domain.SeverityPass, CheckBoardEngagement(f).Severity)

	f.Officers = []domain.Officer{
		{Name: "A. Director", AverageHoursPerWeek: hours(0.4)},
		{Name: "B. Treasurer"},
	}
	finding := CheckBoardEngagement(f)
	assert.Equal(t, "board_hours", finding.ID)
	assert.Equal(t, domain.SeverityWarning, finding.Severity)
	assert.Contains(t, finding.Message, "0.4 per week")
}

func TestCheckMissingOperationalDetails(t *testing.T) {
	f := cleanFiling()
	assert.Equal(t, domain.SeverityPass, CheckMissingOperationalDetails(f).Severity)

	f.Operational.FundraisingMethodDescriptions = "   "
	finding := CheckMissingOperationalDetails(f)
	assert.Equal(t, "fundraising_methods_missing", finding.ID)
	assert.Equal(t, domain.SeverityWarning, finding.Severity)
}

func TestCheckGovernancePolicies_AllAffirmed(t *testing.T) {
	assert.Empty(t, CheckGovernancePolicies(cleanFiling()))
}

func TestCheckGovernancePolicies_MissingAndNegated(t *testing.T) {
	f := cleanFiling()
	f.Governance = domain.GovernanceDisclosure{
		ConflictOfInterestPolicy: "No",
		WhistleblowerPolicy:      "",
		DocumentRetentionPolicy:  "n",
	}

	findings := CheckGovernancePolicies(f)
	assert.Len(t, findings, 5)

	ids := make([]string, 0, len(findings))
	for _, finding := range findings {
		ids = append(ids, finding.ID)
		assert.Equal(t, domain.SeverityWarning, finding.Severity)
		assert.Equal(t, "Governance", finding.Category)
	}
	assert.Equal(t, []string{
		"conflict_of_interest_policy_missing",
		"whistleblower_policy_missing",
		"document_retention_policy_missing",
		"financial_statements_reviewed_blank",
		"form_990_provided_to_governing_body_blank",
	}, ids)

	assert.Equal(t, "Conflict Of Interest Policy not reported or marked 'No'.", findings[0].Message)
	assert.Equal(t, "Financial Statements Reviewed left blank.", findings[3].Message)
}

func TestCheckEINVerification_Confirmed(t *testing.T) {
	verifier := &mockVerifier{}
	verifier.On("VerifyEIN", mock.Anything, "12-3456789").Return(domain.EINVerification{
		Confirmed:  true,
		Confidence: 0.9,
		Note:       "EIN found in the public nonprofit index.",
	}, nil)

	finding := CheckEINVerification(context.Background(), cleanFiling(), verifier)
	assert.Equal(t, "irs_ein_match", finding.ID)
	assert.Equal(t, domain.SeverityPass, finding.Severity)
	assert.Equal(t, 0.9, finding.Confidence)
	verifier.AssertExpectations(t)
}

func TestCheckEINVerification_LookupFailureDegrades(t *testing.T) {
	verifier := &mockVerifier{}
	verifier.On("VerifyEIN", mock.Anything, mock.Anything).
		Return(domain.EINVerification{}, fmt.Errorf("connection refused"))

	finding := CheckEINVerification(context.Background(), cleanFiling(), verifier)
	assert.Equal(t, domain.SeverityWarning, finding.Severity)
	assert.Equal(t, 0.2, finding.Confidence)
	assert.Contains(t, finding.Message, "EIN verification unavailable in current environment.")
}

func TestCheckEINVerification_NilVerifier(t *testing.T) {
	finding := CheckEINVerification(context.Background(), cleanFiling(), nil)
	assert.Equal(t, domain.SeverityWarning, finding.Severity)
	assert.Equal(t, 0.2, finding.Confidence)
}

func TestRunChecks_FixedOrder(t *testing.T) {
	findings := RunChecks(context.Background(), cleanFiling(), nil)

	ids := make([]string, 0, len(findings))
	for _, finding := range findings {
		ids = append(ids, finding.ID)
	}
	assert.Equal(t, []string{
		"revenue_totals",
		"expense_totals",
		"fundraising_alignment",
		"balance_sheet_present",
		"board_hours",
		"fundraising_methods_documented",
		"irs_ein_match",
	}, ids)
}
