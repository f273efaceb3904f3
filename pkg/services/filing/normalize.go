package filing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/de-tools/form-atlas/pkg/models/domain"
)

// requiredSections must be present on a nested extraction payload. The rest of
// the schema tolerates absent sections (they decode to zero values).
var requiredSections = []string{
	"core_organization_metadata",
	"revenue_breakdown",
	"expenses_breakdown",
}

// flatSections maps each nested section to the flat field names that feed it.
// Extraction services occasionally return a flattened record instead of the
// nested schema; missing flat fields default to zero/empty.
var flatSections = map[string][]string{
	"core_organization_metadata": {
		"ein", "legal_name", "phone_number", "website_url", "return_type",
		"amended_return", "group_exemption_number", "subsection_code",
		"ruling_date", "accounting_method", "organization_type",
		"year_of_formation", "incorporation_state", "calendar_year",
	},
	"revenue_breakdown": {
		"total_revenue", "contributions_gifts_grants", "program_service_revenue",
		"membership_dues", "investment_income", "gains_losses_sales_assets",
		"rental_income", "related_organizations_revenue", "gaming_revenue",
		"other_revenue", "government_grants", "foreign_contributions",
	},
	"expenses_breakdown": {
		"total_expenses", "program_services_expenses", "management_general_expenses",
		"fundraising_expenses", "grants_us_organizations", "grants_us_individuals",
		"grants_foreign_organizations", "grants_foreign_individuals",
		"compensation_officers", "compensation_other_staff", "payroll_taxes_benefits",
		"professional_fees", "office_occupancy_costs", "information_technology_costs",
		"travel_conference_expenses", "depreciation_amortization", "insurance",
	},
	"governance_management_disclosure": {
		"governing_body_size", "independent_members", "financial_statements_reviewed",
		"form_990_provided_to_governing_body", "conflict_of_interest_policy",
		"whistleblower_policy", "document_retention_policy",
		"ceo_compensation_review_process", "public_disclosure_practices",
	},
	"fundraising_grantmaking": {
		"total_fundraising_event_revenue", "total_fundraising_event_expenses",
		"professional_fundraiser_fees",
	},
	"functional_operational_data": {
		"number_of_employees", "number_of_volunteers", "occupancy_costs",
		"fundraising_method_descriptions", "joint_ventures_disregarded_entities",
	},
	"compensation_details": {
		"base_compensation", "bonus", "incentive", "other", "non_fixed_compensation",
		"first_class_travel", "housing_allowance", "expense_account_usage",
		"supplemental_retirement",
	},
	"political_lobbying_activities": {
		"lobbying_expenditures_direct", "lobbying_expenditures_grassroots",
		"election_501h_status", "political_campaign_expenditures",
		"related_organizations_affiliates",
	},
	"investments_endowment": {
		"investment_types", "donor_restricted_endowment_values",
		"net_appreciation_depreciation", "related_organization_transactions",
		"loans_to_from_related_parties",
	},
	"tax_compliance_penalties": {
		"penalties_excise_taxes_reported", "unrelated_business_income_disclosure",
		"foreign_bank_account_reporting", "schedule_o_narrative_explanations",
	},
}

// listSections are carried over as-is when normalizing a flat payload.
var listSections = []string{
	"balance_sheet",
	"officers_directors_trustees_key_employees",
	"program_service_accomplishments",
}

// ExtractionPayload unwraps a batch entry: entries are either a bare
// extraction object or a wrapper carrying it under "extraction".
func ExtractionPayload(entry map[string]any) map[string]any {
	if raw, ok := entry["extraction"]; ok {
		if m, ok := raw.(map[string]any); ok {
			return m
		}
	}
	return entry
}

// Decode normalizes an extraction payload (nested or flat) into a validated
// Filing. Schema violations are rejected here, before any check runs.
func Decode(payload map[string]any) (domain.Filing, error) {
	if payload == nil {
		return domain.Filing{}, fmt.Errorf("extraction payload is empty")
	}

	if _, nested := payload["core_organization_metadata"]; !nested {
		payload = normalizeFlat(payload)
	}

	for _, section := range requiredSections {
		if _, ok := payload[section]; !ok {
			return domain.Filing{}, fmt.Errorf("extraction payload is missing section %q", section)
		}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return domain.Filing{}, fmt.Errorf("failed to encode extraction payload: %w", err)
	}

	var f domain.Filing
	if err := json.Unmarshal(raw, &f); err != nil {
		return domain.Filing{}, fmt.Errorf("extraction payload does not match the filing schema: %w", err)
	}

	if err := f.Validate(); err != nil {
		return domain.Filing{}, err
	}
	return f, nil
}

func normalizeFlat(flat map[string]any) map[string]any {
	nested := make(map[string]any, len(flatSections)+len(listSections))
	for section, fields := range flatSections {
		values := make(map[string]any, len(fields))
		for _, field := range fields {
			if v, ok := flat[field]; ok {
				values[field] = v
			}
		}
		nested[section] = values
	}
	for _, section := range listSections {
		if v, ok := flat[section]; ok {
			nested[section] = v
		}
	}
	return nested
}

// ResolveYear determines the fiscal year of one batch entry. Candidates are
// tried in order: year-like fields on the entry itself, year fields nested
// under the entry's metadata, then the filing's own calendar year. The first
// integer-coercible candidate wins.
func ResolveYear(entry map[string]any, f domain.Filing) (int, error) {
	candidates := []any{
		entry["calendar_year"],
		entry["year"],
		entry["tax_year"],
		entry["return_year"],
	}
	if md, ok := entry["metadata"].(map[string]any); ok {
		candidates = append(candidates, md["return_year"], md["tax_year"])
	}
	candidates = append(candidates, f.Org.CalendarYear)

	for _, candidate := range candidates {
		if year, ok := CoerceYear(candidate); ok {
			return year, nil
		}
	}
	return 0, fmt.Errorf("unable to determine the filing year")
}

// CoerceYear converts a loosely-typed year value (int, float, numeric
// string) to an int. Nil, blank and non-numeric values report false.
func CoerceYear(v any) (int, bool) {
	switch value := v.(type) {
	case nil:
		return 0, false
	case int:
		return value, true
	case int64:
		return int(value), true
	case float64:
		return int(value), true
	case json.Number:
		if f, err := value.Float64(); err == nil {
			return int(f), true
		}
		return 0, false
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return 0, false
		}
		year, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, false
		}
		return year, true
	default:
		return 0, false
	}
}
