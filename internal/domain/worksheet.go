package domain

import "time"

// TaxCase is a named tax calculation in a worksheet.
type TaxCase struct {
	Name  string              `json:"name"`
	Input TaxCalculationInput `json:"input"`
}

// LoanCase is a named loan calculation in a worksheet.
type LoanCase struct {
	Name  string    `json:"name"`
	Input LoanInput `json:"input"`
}

// Worksheet is a batch of calculations loaded from a file.
type Worksheet struct {
	Name      string     `json:"name"`
	TaxCases  []TaxCase  `json:"tax_cases"`
	LoanCases []LoanCase `json:"loan_cases"`
}

// TaxCaseReport pairs a tax case with its result.
type TaxCaseReport struct {
	Name   string               `json:"name"`
	Input  TaxCalculationInput  `json:"input"`
	Result TaxCalculationResult `json:"result"`
}

// LoanCaseReport carries either a result or the rejection message.
type LoanCaseReport struct {
	Name   string      `json:"name"`
	Input  LoanInput   `json:"input"`
	Result *LoanResult `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// WorksheetReport is the outcome of running every case of a worksheet.
type WorksheetReport struct {
	Name          string           `json:"name"`
	Regime        string           `json:"regime"`
	RegimeFigures TaxRegime        `json:"regime_figures"`
	GeneratedAt   time.Time        `json:"generated_at"`
	Tax           []TaxCaseReport  `json:"tax"`
	Loans         []LoanCaseReport `json:"loans"`
}
