package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/finadvisor/finadvisor/internal/calculation"
	"github.com/finadvisor/finadvisor/internal/config"
	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/finadvisor/finadvisor/internal/output"
	"github.com/spf13/cobra"
)

type taxFlags struct {
	income           string
	age              string
	deduction80C     string
	deduction80D     string
	homeLoanInterest string
	otherDeductions  string
	asJSON           bool
}

func newTaxCmd() *cobra.Command {
	var f taxFlags
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Calculate income tax liability under the old regime",
		Example: `  finadvisor tax --income 800000
  finadvisor tax --income "12,00,000" --age 60to80 --80c 150000 --80d 25000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := domain.TaxCalculationInput{
				AnnualIncome:     config.ParseAmount(f.income),
				AgeBracket:       config.ParseAgeBracket(f.age),
				Deduction80C:     config.ParseAmount(f.deduction80C),
				Deduction80D:     config.ParseAmount(f.deduction80D),
				HomeLoanInterest: config.ParseAmount(f.homeLoanInterest),
				OtherDeductions:  config.ParseAmount(f.otherDeductions),
			}
			res := calculation.NewEngine().CalculateTax(cmd.Context(), input)
			if f.asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printTax(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.income, "income", "", "gross annual income")
	cmd.Flags().StringVar(&f.age, "age", "under60", "age bracket: under60, 60to80 or over80")
	cmd.Flags().StringVar(&f.deduction80C, "80c", "", "section 80C deductions (capped at 1,50,000)")
	cmd.Flags().StringVar(&f.deduction80D, "80d", "", "section 80D deductions")
	cmd.Flags().StringVar(&f.homeLoanInterest, "home-loan-interest", "", "home loan interest (capped at 2,00,000)")
	cmd.Flags().StringVar(&f.otherDeductions, "other", "", "other deductions")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the raw result as JSON")
	return cmd
}

func printTax(w io.Writer, res domain.TaxCalculationResult) {
	fmt.Fprintf(w, "Gross Income:        %s\n", output.FormatRupees(res.GrossIncome))
	fmt.Fprintf(w, "Basic Exemption:     %s (%s)\n", output.FormatRupees(res.BasicExemption), res.AgeBracket)
	fmt.Fprintf(w, "Total Deductions:    %s\n", output.FormatRupees(res.TotalDeductions))
	fmt.Fprintf(w, "Taxable Income:      %s\n", output.FormatRupees(res.TaxableIncome))
	for _, slab := range res.Slabs {
		fmt.Fprintf(w, "  @ %-4s on %-16s = %s\n", slab.Rate.Shift(2).String()+"%", output.FormatRupees(slab.Amount), output.FormatRupees(slab.Tax))
	}
	fmt.Fprintf(w, "Tax + 4%% Cess:       %s\n", output.FormatRupees(res.TaxLiability))
	fmt.Fprintf(w, "Net Income:          %s\n", output.FormatRupees(res.NetIncome))
	fmt.Fprintf(w, "Effective Tax Rate:  %s\n", output.FormatPercentage(res.EffectiveRatePercent))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
