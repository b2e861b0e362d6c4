package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/finadvisor/finadvisor/internal/calculation"
	"github.com/finadvisor/finadvisor/internal/config"
	"github.com/finadvisor/finadvisor/internal/directory"
	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/finadvisor/finadvisor/internal/output"
	"github.com/spf13/cobra"
)

type loanFlags struct {
	loanType string
	amount   string
	rate     string
	tenure   string
	schedule bool
	csv      bool
	asJSON   bool
}

func newLoanCmd() *cobra.Command {
	var f loanFlags
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Calculate the EMI, total payable and total interest of a loan",
		Example: `  finadvisor loan --amount 2500000 --rate 8.5 --tenure 20
  finadvisor loan --amount 100000 --rate 10 --tenure 1 --schedule --csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := domain.LoanInput{
				LoanType:          domain.ParseLoanType(f.loanType),
				Principal:         config.ParseFloatField(f.amount),
				AnnualRatePercent: config.ParseFloatField(f.rate),
				TenureYears:       config.ParseFloatField(f.tenure),
			}
			engine := calculation.NewEngine()
			out := cmd.OutOrStdout()

			if f.schedule {
				schedule, err := engine.LoanSchedule(input)
				if err != nil {
					return loanError(err)
				}
				switch {
				case f.csv:
					data, err := output.ScheduleCSV(schedule)
					if err != nil {
						return err
					}
					_, err = out.Write(data)
					return err
				case f.asJSON:
					return writeJSON(out, schedule)
				}
				printLoan(out, schedule.Loan)
				printSchedule(out, schedule)
				return nil
			}

			res, err := engine.CalculateLoan(cmd.Context(), input)
			if err != nil {
				return loanError(err)
			}
			if f.asJSON {
				return writeJSON(out, res)
			}
			printLoan(out, res)
			if best, ok := directory.Default().Best(res.LoanType); ok {
				fmt.Fprintf(out, "Lowest advertised:   %s from %.2f%%\n", best.Bank, best.MinRate)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.loanType, "type", "home", "loan type: home, personal, car or other")
	cmd.Flags().StringVar(&f.amount, "amount", "", "principal amount")
	cmd.Flags().StringVar(&f.rate, "rate", "", "nominal annual interest rate in percent")
	cmd.Flags().StringVar(&f.tenure, "tenure", "", "tenure in years")
	cmd.Flags().BoolVar(&f.schedule, "schedule", false, "print the month-by-month amortization table")
	cmd.Flags().BoolVar(&f.csv, "csv", false, "with --schedule, print the table as CSV")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the raw result as JSON")
	return cmd
}

func loanError(err error) error {
	if errors.Is(err, calculation.ErrInvalidInput) {
		return fmt.Errorf("please enter valid values for all fields: %w", err)
	}
	return err
}

func printLoan(w io.Writer, res domain.LoanResult) {
	fmt.Fprintf(w, "Loan Type:           %s\n", res.LoanType)
	fmt.Fprintf(w, "Principal:           %s\n", output.FormatRupeeUnits(res.Principal))
	fmt.Fprintf(w, "Monthly EMI:         %s\n", output.FormatRupeeUnits(res.Installment))
	fmt.Fprintf(w, "Total Payable:       %s\n", output.FormatRupeeUnits(res.TotalPayable))
	fmt.Fprintf(w, "Total Interest:      %s\n", output.FormatRupeeUnits(res.TotalInterest))
}

func printSchedule(w io.Writer, schedule domain.AmortizationSchedule) {
	fmt.Fprintf(w, "\n%5s %14s %14s %14s %16s\n", "Month", "Payment", "Interest", "Principal", "Balance")
	for _, row := range schedule.Rows {
		fmt.Fprintf(w, "%5d %14.2f %14.2f %14.2f %16.2f\n", row.Month, row.Payment, row.Interest, row.Principal, row.Balance)
	}
}
