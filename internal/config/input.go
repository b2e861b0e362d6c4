package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of worksheet files
type InputParser struct {
	// Now is used to derive age brackets from birth dates.
	Now func() time.Time
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Now: time.Now}
}

// worksheetFile is the on-disk layout. Amounts are free text and coerced the
// same way the calculator forms are.
type worksheetFile struct {
	Name      string         `yaml:"name"`
	TaxCases  []taxCaseFile  `yaml:"tax_cases"`
	LoanCases []loanCaseFile `yaml:"loan_cases"`
}

type taxCaseFile struct {
	Name             string `yaml:"name"`
	AnnualIncome     string `yaml:"annual_income"`
	AgeBracket       string `yaml:"age_bracket"`
	BirthDate        string `yaml:"birth_date"`
	Deduction80C     string `yaml:"deduction_80c"`
	Deduction80D     string `yaml:"deduction_80d"`
	HomeLoanInterest string `yaml:"home_loan_interest"`
	OtherDeductions  string `yaml:"other_deductions"`
}

type loanCaseFile struct {
	Name              string `yaml:"name"`
	LoanType          string `yaml:"loan_type"`
	Principal         string `yaml:"principal"`
	AnnualRatePercent string `yaml:"annual_rate_percent"`
	TenureYears       string `yaml:"tenure_years"`
}

// LoadFromFile loads a worksheet from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Worksheet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a worksheet document.
func (ip *InputParser) Parse(data []byte) (*domain.Worksheet, error) {
	var file worksheetFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.validateFile(&file); err != nil {
		return nil, fmt.Errorf("worksheet validation failed: %w", err)
	}

	return ip.toWorksheet(&file)
}

func (ip *InputParser) validateFile(file *worksheetFile) error {
	if strings.TrimSpace(file.Name) == "" {
		return fmt.Errorf("worksheet name is required")
	}
	if len(file.TaxCases) == 0 && len(file.LoanCases) == 0 {
		return fmt.Errorf("no tax or loan cases provided")
	}

	seen := make(map[string]bool)
	for i, tc := range file.TaxCases {
		name := strings.TrimSpace(tc.Name)
		if name == "" {
			return fmt.Errorf("tax case %d: name is required", i)
		}
		if seen["tax:"+name] {
			return fmt.Errorf("tax case %q is defined more than once", name)
		}
		seen["tax:"+name] = true
		if tc.AgeBracket != "" && tc.BirthDate != "" {
			return fmt.Errorf("tax case %q: specify either age_bracket or birth_date, not both", name)
		}
	}
	for i, lc := range file.LoanCases {
		name := strings.TrimSpace(lc.Name)
		if name == "" {
			return fmt.Errorf("loan case %d: name is required", i)
		}
		if seen["loan:"+name] {
			return fmt.Errorf("loan case %q is defined more than once", name)
		}
		seen["loan:"+name] = true
	}

	return nil
}

func (ip *InputParser) toWorksheet(file *worksheetFile) (*domain.Worksheet, error) {
	ws := &domain.Worksheet{
		Name:      strings.TrimSpace(file.Name),
		TaxCases:  make([]domain.TaxCase, 0, len(file.TaxCases)),
		LoanCases: make([]domain.LoanCase, 0, len(file.LoanCases)),
	}

	for _, tc := range file.TaxCases {
		bracket := ParseAgeBracket(tc.AgeBracket)
		if tc.BirthDate != "" {
			birth, err := time.Parse("2006-01-02", strings.TrimSpace(tc.BirthDate))
			if err != nil {
				return nil, fmt.Errorf("tax case %q: invalid birth_date: %w", tc.Name, err)
			}
			bracket = domain.AgeBracketAt(birth, ip.now())
		}
		ws.TaxCases = append(ws.TaxCases, domain.TaxCase{
			Name: strings.TrimSpace(tc.Name),
			Input: domain.TaxCalculationInput{
				AnnualIncome:     ParseAmount(tc.AnnualIncome),
				AgeBracket:       bracket,
				Deduction80C:     ParseAmount(tc.Deduction80C),
				Deduction80D:     ParseAmount(tc.Deduction80D),
				HomeLoanInterest: ParseAmount(tc.HomeLoanInterest),
				OtherDeductions:  ParseAmount(tc.OtherDeductions),
			},
		})
	}

	for _, lc := range file.LoanCases {
		ws.LoanCases = append(ws.LoanCases, domain.LoanCase{
			Name: strings.TrimSpace(lc.Name),
			Input: domain.LoanInput{
				LoanType:          domain.ParseLoanType(lc.LoanType),
				Principal:         ParseFloatField(lc.Principal),
				AnnualRatePercent: ParseFloatField(lc.AnnualRatePercent),
				TenureYears:       ParseFloatField(lc.TenureYears),
			},
		})
	}

	return ws, nil
}

func (ip *InputParser) now() time.Time {
	if ip.Now == nil {
		return time.Now()
	}
	return ip.Now()
}

// leadingNumber matches the numeric prefix a calculator form reads from a field.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount coerces a free-text amount. Grouping commas and a leading rupee
// symbol are ignored and only the leading number is read, so "12abc" is 12.
// Blank, unparsable and negative values become zero.
func ParseAmount(s string) decimal.Decimal {
	s = cleanNumber(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseFloatField parses a loan form field the same way as ParseAmount, keeping
// the sign. Unparsable values become zero so the amortization calculator
// rejects them.
func ParseFloatField(s string) float64 {
	s = cleanNumber(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseAgeBracket accepts the bracket spellings the calculator forms use.
func ParseAgeBracket(s string) domain.AgeBracket {
	return domain.ParseAgeBracket(s)
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	s = leadingNumber.FindString(strings.TrimSpace(s))
	if i := strings.Index(s, "."); i == 0 || (i == 1 && (s[0] == '-' || s[0] == '+')) {
		s = s[:i] + "0" + s[i:]
	}
	return strings.TrimPrefix(s, "+")
}

// CreateExampleWorksheet returns a worksheet covering the common calculator cases.
func (ip *InputParser) CreateExampleWorksheet() *domain.Worksheet {
	return &domain.Worksheet{
		Name: "Example household",
		TaxCases: []domain.TaxCase{
			{
				Name: "Salaried, under 60",
				Input: domain.TaxCalculationInput{
					AnnualIncome: decimal.NewFromInt(800000),
					AgeBracket:   domain.AgeUnder60,
				},
			},
			{
				Name: "Salaried with deductions",
				Input: domain.TaxCalculationInput{
					AnnualIncome:     decimal.NewFromInt(1500000),
					AgeBracket:       domain.AgeUnder60,
					Deduction80C:     decimal.NewFromInt(150000),
					Deduction80D:     decimal.NewFromInt(25000),
					HomeLoanInterest: decimal.NewFromInt(200000),
				},
			},
			{
				Name: "Pensioner",
				Input: domain.TaxCalculationInput{
					AnnualIncome: decimal.NewFromInt(900000),
					AgeBracket:   domain.Age60To80,
					Deduction80D: decimal.NewFromInt(50000),
				},
			},
		},
		LoanCases: []domain.LoanCase{
			{
				Name:  "Home loan",
				Input: domain.LoanInput{LoanType: domain.LoanHome, Principal: 2500000, AnnualRatePercent: 8.5, TenureYears: 20},
			},
			{
				Name:  "Car loan",
				Input: domain.LoanInput{LoanType: domain.LoanCar, Principal: 800000, AnnualRatePercent: 9, TenureYears: 5},
			},
		},
	}
}
