package domain

import "fmt"

// OrgMetadata carries the identity block of a filing. EIN and LegalName are
// authoritative and immutable once the Filing is constructed.
type OrgMetadata struct {
	EIN                  string `json:"ein"`
	LegalName            string `json:"legal_name"`
	PhoneNumber          string `json:"phone_number"`
	WebsiteURL           string `json:"website_url"`
	ReturnType           string `json:"return_type"`
	AmendedReturn        string `json:"amended_return"`
	GroupExemptionNumber string `json:"group_exemption_number"`
	SubsectionCode       string `json:"subsection_code"`
	RulingDate           string `json:"ruling_date"`
	AccountingMethod     string `json:"accounting_method"`
	OrganizationType     string `json:"organization_type"`
	YearOfFormation      string `json:"year_of_formation"`
	IncorporationState   string `json:"incorporation_state"`
	CalendarYear         string `json:"calendar_year"`
}

type RevenueBreakdown struct {
	TotalRevenue                float64 `json:"total_revenue"`
	ContributionsGiftsGrants    float64 `json:"contributions_gifts_grants"`
	ProgramServiceRevenue       float64 `json:"program_service_revenue"`
	MembershipDues              float64 `json:"membership_dues"`
	InvestmentIncome            float64 `json:"investment_income"`
	GainsLossesSalesAssets      float64 `json:"gains_losses_sales_assets"`
	RentalIncome                float64 `json:"rental_income"`
	RelatedOrganizationsRevenue float64 `json:"related_organizations_revenue"`
	GamingRevenue               float64 `json:"gaming_revenue"`
	OtherRevenue                float64 `json:"other_revenue"`
	GovernmentGrants            float64 `json:"government_grants"`
	ForeignContributions        float64 `json:"foreign_contributions"`
}

// Categories returns every revenue category except the reported total, in
// declaration order. The check engine sums these against TotalRevenue.
func (r RevenueBreakdown) Categories() []float64 {
	return []float64{
		r.ContributionsGiftsGrants,
		r.ProgramServiceRevenue,
		r.MembershipDues,
		r.InvestmentIncome,
		r.GainsLossesSalesAssets,
		r.RentalIncome,
		r.RelatedOrganizationsRevenue,
		r.GamingRevenue,
		r.OtherRevenue,
		r.GovernmentGrants,
		r.ForeignContributions,
	}
}

type ExpensesBreakdown struct {
	TotalExpenses              float64 `json:"total_expenses"`
	ProgramServicesExpenses    float64 `json:"program_services_expenses"`
	ManagementGeneralExpenses  float64 `json:"management_general_expenses"`
	FundraisingExpenses        float64 `json:"fundraising_expenses"`
	GrantsUSOrganizations      float64 `json:"grants_us_organizations"`
	GrantsUSIndividuals        float64 `json:"grants_us_individuals"`
	GrantsForeignOrganizations float64 `json:"grants_foreign_organizations"`
	GrantsForeignIndividuals   float64 `json:"grants_foreign_individuals"`
	CompensationOfficers       float64 `json:"compensation_officers"`
	CompensationOtherStaff     float64 `json:"compensation_other_staff"`
	PayrollTaxesBenefits       float64 `json:"payroll_taxes_benefits"`
	ProfessionalFees           float64 `json:"professional_fees"`
	OfficeOccupancyCosts       float64 `json:"office_occupancy_costs"`
	InformationTechnologyCosts float64 `json:"information_technology_costs"`
	TravelConferenceExpenses   float64 `json:"travel_conference_expenses"`
	DepreciationAmortization   float64 `json:"depreciation_amortization"`
	Insurance                  float64 `json:"insurance"`
}

type Officer struct {
	Name                     string   `json:"name"`
	TitlePosition            string   `json:"title_position"`
	AverageHoursPerWeek      *float64 `json:"average_hours_per_week"`
	RelatedPartyTransactions string   `json:"related_party_transactions"`
	FormerOfficer            string   `json:"former_officer"`
	GovernanceRole           string   `json:"governance_role"`
}

// GovernanceDisclosure holds policy indicators. The source forms report these
// as free text ("Yes", "No", blank), so they stay strings here.
type GovernanceDisclosure struct {
	GoverningBodySize           float64 `json:"governing_body_size"`
	IndependentMembers          float64 `json:"independent_members"`
	FinancialStatementsReviewed string  `json:"financial_statements_reviewed"`
	Form990ProvidedToBoard      string  `json:"form_990_provided_to_governing_body"`
	ConflictOfInterestPolicy    string  `json:"conflict_of_interest_policy"`
	WhistleblowerPolicy         string  `json:"whistleblower_policy"`
	DocumentRetentionPolicy     string  `json:"document_retention_policy"`
	CEOCompensationReview       string  `json:"ceo_compensation_review_process"`
	PublicDisclosurePractices   string  `json:"public_disclosure_practices"`
}

type ProgramAccomplishment struct {
	ProgramName         string  `json:"program_name"`
	ProgramDescription  string  `json:"program_description"`
	Expenses            float64 `json:"expenses"`
	Grants              float64 `json:"grants"`
	RevenueGenerated    float64 `json:"revenue_generated"`
	QuantitativeOutputs string  `json:"quantitative_outputs"`
}

type FundraisingGrantmaking struct {
	TotalFundraisingEventRevenue  float64 `json:"total_fundraising_event_revenue"`
	TotalFundraisingEventExpenses float64 `json:"total_fundraising_event_expenses"`
	ProfessionalFundraiserFees    float64 `json:"professional_fundraiser_fees"`
}

type OperationalData struct {
	NumberOfEmployees                float64 `json:"number_of_employees"`
	NumberOfVolunteers               float64 `json:"number_of_volunteers"`
	OccupancyCosts                   float64 `json:"occupancy_costs"`
	FundraisingMethodDescriptions    string  `json:"fundraising_method_descriptions"`
	JointVenturesDisregardedEntities string  `json:"joint_ventures_disregarded_entities"`
}

type CompensationDetails struct {
	BaseCompensation       float64 `json:"base_compensation"`
	Bonus                  float64 `json:"bonus"`
	Incentive              float64 `json:"incentive"`
	Other                  float64 `json:"other"`
	NonFixedCompensation   string  `json:"non_fixed_compensation"`
	FirstClassTravel       string  `json:"first_class_travel"`
	HousingAllowance       string  `json:"housing_allowance"`
	ExpenseAccountUsage    string  `json:"expense_account_usage"`
	SupplementalRetirement string  `json:"supplemental_retirement"`
}

type LobbyingActivities struct {
	LobbyingExpendituresDirect     float64 `json:"lobbying_expenditures_direct"`
	LobbyingExpendituresGrassroots float64 `json:"lobbying_expenditures_grassroots"`
	Election501hStatus             string  `json:"election_501h_status"`
	PoliticalCampaignExpenditures  float64 `json:"political_campaign_expenditures"`
	RelatedOrganizationsAffiliates string  `json:"related_organizations_affiliates"`
}

type InvestmentsEndowment struct {
	InvestmentTypes                 string  `json:"investment_types"`
	DonorRestrictedEndowmentValues  float64 `json:"donor_restricted_endowment_values"`
	NetAppreciationDepreciation     float64 `json:"net_appreciation_depreciation"`
	RelatedOrganizationTransactions string  `json:"related_organization_transactions"`
	LoansToFromRelatedParties       string  `json:"loans_to_from_related_parties"`
}

type TaxCompliance struct {
	PenaltiesExciseTaxesReported      string `json:"penalties_excise_taxes_reported"`
	UnrelatedBusinessIncomeDisclosure string `json:"unrelated_business_income_disclosure"`
	ForeignBankAccountReporting       string `json:"foreign_bank_account_reporting"`
	ScheduleONarrativeExplanations    string `json:"schedule_o_narrative_explanations"`
}

// Filing is one organization's one-fiscal-year extracted disclosure. It is
// constructed once from an extraction payload and never mutated afterwards;
// total revenue and total expenses are the authoritative headline figures and
// the category breakdowns are deliberately not guaranteed to sum to them.
type Filing struct {
	Org           OrgMetadata             `json:"core_organization_metadata"`
	Revenue       RevenueBreakdown        `json:"revenue_breakdown"`
	Expenses      ExpensesBreakdown       `json:"expenses_breakdown"`
	BalanceSheet  map[string]any          `json:"balance_sheet"`
	Officers      []Officer               `json:"officers_directors_trustees_key_employees"`
	Governance    GovernanceDisclosure    `json:"governance_management_disclosure"`
	Programs      []ProgramAccomplishment `json:"program_service_accomplishments"`
	Fundraising   FundraisingGrantmaking  `json:"fundraising_grantmaking"`
	Operational   OperationalData         `json:"functional_operational_data"`
	Compensation  CompensationDetails     `json:"compensation_details"`
	Lobbying      LobbyingActivities      `json:"political_lobbying_activities"`
	Investments   InvestmentsEndowment    `json:"investments_endowment"`
	TaxCompliance TaxCompliance           `json:"tax_compliance_penalties"`
}

// Validate rejects filings that are structurally unusable before any check
// runs. It does not second-guess the figures themselves; reconciling those is
// the check engine's job.
func (f Filing) Validate() error {
	if f.Org.EIN == "" {
		return fmt.Errorf("filing is missing the organization EIN")
	}
	if f.Org.LegalName == "" {
		return fmt.Errorf("filing is missing the organization legal name")
	}
	return nil
}
