package domain

import "github.com/shopspring/decimal"

// TaxRegime holds the constants of the old-regime slab structure. Reports
// carry a copy so formatters can print the figures a result was computed with.
type TaxRegime struct {
	Name                string                         `yaml:"name" json:"name"`
	Exemptions          map[AgeBracket]decimal.Decimal `yaml:"exemptions" json:"exemptions"`
	Cap80C              decimal.Decimal                `yaml:"cap_80c" json:"cap_80c"`
	CapHomeLoanInterest decimal.Decimal                `yaml:"cap_home_loan_interest" json:"cap_home_loan_interest"`
	FirstSlabCeiling    decimal.Decimal                `yaml:"first_slab_ceiling" json:"first_slab_ceiling"`
	FirstSlabRate       decimal.Decimal                `yaml:"first_slab_rate" json:"first_slab_rate"`
	SecondSlabWidth     decimal.Decimal                `yaml:"second_slab_width" json:"second_slab_width"`
	SecondSlabRate      decimal.Decimal                `yaml:"second_slab_rate" json:"second_slab_rate"`
	TopRate             decimal.Decimal                `yaml:"top_rate" json:"top_rate"`
	CessRate            decimal.Decimal                `yaml:"cess_rate" json:"cess_rate"`
}

// DefaultRegimeFY2023_24 returns the FY 2023-24 old-regime figures.
func DefaultRegimeFY2023_24() TaxRegime {
	return TaxRegime{
		Name: "FY2023-24 old regime",
		Exemptions: map[AgeBracket]decimal.Decimal{
			AgeUnder60: decimal.NewFromInt(250000),
			Age60To80:  decimal.NewFromInt(300000),
			AgeOver80:  decimal.NewFromInt(500000),
		},
		Cap80C:              decimal.NewFromInt(150000),
		CapHomeLoanInterest: decimal.NewFromInt(200000),
		FirstSlabCeiling:    decimal.NewFromInt(500000),
		FirstSlabRate:       decimal.RequireFromString("0.05"),
		SecondSlabWidth:     decimal.NewFromInt(500000),
		SecondSlabRate:      decimal.RequireFromString("0.20"),
		TopRate:             decimal.RequireFromString("0.30"),
		CessRate:            decimal.RequireFromString("0.04"),
	}
}

// Exemption returns the basic exemption for a bracket. Brackets missing from
// the map use the FY 2023-24 figure for that bracket.
func (r TaxRegime) Exemption(a AgeBracket) decimal.Decimal {
	a = a.Normalize()
	if v, ok := r.Exemptions[a]; ok {
		return v
	}
	return DefaultRegimeFY2023_24().Exemptions[a]
}
