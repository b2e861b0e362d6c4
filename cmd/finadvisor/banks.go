package main

import (
	"fmt"
	"strings"

	"github.com/finadvisor/finadvisor/internal/directory"
	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/spf13/cobra"
)

func newBanksCmd() *cobra.Command {
	var (
		loanType string
		file     string
	)
	cmd := &cobra.Command{
		Use:   "banks",
		Short: "List advertised lender rates for a loan type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := loadDirectory(file)
			if err != nil {
				return err
			}
			t := domain.ParseLoanType(loanType)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s loan rates\n", strings.ToUpper(string(t[:1]))+string(t[1:]))
			for _, offer := range dir.ForLoanType(t) {
				fmt.Fprintf(out, "  %-12s %5.2f%% - %5.2f%%  %s\n", offer.Bank, offer.MinRate, offer.MaxRate, strings.Join(offer.Features, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&loanType, "type", "home", "loan type: home, personal or car")
	cmd.Flags().StringVar(&file, "file", "", "YAML bank directory replacing the built-in one")
	return cmd
}

func loadDirectory(path string) (*directory.Directory, error) {
	if path == "" {
		return directory.Default(), nil
	}
	return directory.LoadDirectory(path)
}
