// Package directory holds the lender rate bands shown next to the loan estimator.
package directory

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Directory is an immutable set of bank offers.
type Directory struct {
	offers []domain.BankOffer
}

// New validates offers and builds a directory.
func New(offers []domain.BankOffer) (*Directory, error) {
	seen := make(map[string]bool)
	for i, o := range offers {
		if strings.TrimSpace(o.Bank) == "" {
			return nil, fmt.Errorf("offer %d: bank name is required", i)
		}
		switch o.LoanType {
		case domain.LoanHome, domain.LoanPersonal, domain.LoanCar:
		default:
			return nil, fmt.Errorf("offer %d (%s): unsupported loan type %q", i, o.Bank, o.LoanType)
		}
		if o.MinRate <= 0 || o.MaxRate < o.MinRate {
			return nil, fmt.Errorf("offer %d (%s %s): rate band %.2f-%.2f is invalid", i, o.Bank, o.LoanType, o.MinRate, o.MaxRate)
		}
		key := strings.ToLower(o.Bank) + "/" + string(o.LoanType)
		if seen[key] {
			return nil, fmt.Errorf("offer %d: duplicate %s %s offer", i, o.Bank, o.LoanType)
		}
		seen[key] = true
	}
	return &Directory{offers: append([]domain.BankOffer(nil), offers...)}, nil
}

// Default returns the built-in lender directory.
func Default() *Directory {
	d, err := New(defaultOffers())
	if err != nil {
		panic(err)
	}
	return d
}

func defaultOffers() []domain.BankOffer {
	type band struct{ min, max float64 }
	banks := []struct {
		name     string
		home     band
		personal band
		car      band
		features []string
	}{
		{"SBI", band{8.50, 9.25}, band{10.50, 15.50}, band{8.85, 9.85}, []string{"Lowest processing fee", "Quick approval", "Flexible tenure"}},
		{"HDFC Bank", band{8.75, 9.50}, band{10.75, 21.00}, band{8.75, 9.50}, []string{"Digital process", "Pre-approved offers", "Doorstep service"}},
		{"ICICI Bank", band{8.75, 9.40}, band{10.75, 19.00}, band{8.75, 11.25}, []string{"Instant approval", "Competitive rates", "Online tracking"}},
		{"Axis Bank", band{9.00, 9.65}, band{10.49, 22.00}, band{9.25, 13.00}, []string{"Flexible EMI", "Quick disbursal", "Minimal documentation"}},
	}

	var offers []domain.BankOffer
	for _, b := range banks {
		for _, rate := range []struct {
			t domain.LoanType
			b band
		}{{domain.LoanHome, b.home}, {domain.LoanPersonal, b.personal}, {domain.LoanCar, b.car}} {
			offers = append(offers, domain.BankOffer{
				Bank:     b.name,
				LoanType: rate.t,
				MinRate:  rate.b.min,
				MaxRate:  rate.b.max,
				Features: b.features,
			})
		}
	}
	return offers
}

// ForLoanType returns the offers for a loan type, cheapest minimum rate first.
// Types without a band of their own (other) use the home loan offers.
func (d *Directory) ForLoanType(t domain.LoanType) []domain.BankOffer {
	if t != domain.LoanPersonal && t != domain.LoanCar {
		t = domain.LoanHome
	}
	offers := lo.Filter(d.offers, func(o domain.BankOffer, _ int) bool { return o.LoanType == t })
	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].MinRate != offers[j].MinRate {
			return offers[i].MinRate < offers[j].MinRate
		}
		return offers[i].Bank < offers[j].Bank
	})
	return offers
}

// Best returns the cheapest offer for a loan type.
func (d *Directory) Best(t domain.LoanType) (domain.BankOffer, bool) {
	offers := d.ForLoanType(t)
	if len(offers) == 0 {
		return domain.BankOffer{}, false
	}
	return offers[0], true
}

// Banks lists the lender names in directory order.
func (d *Directory) Banks() []string {
	return lo.Uniq(lo.Map(d.offers, func(o domain.BankOffer, _ int) string { return o.Bank }))
}

// directoryFile mirrors the per-bank layout of the comparison table.
type directoryFile struct {
	Banks []struct {
		Name     string                       `yaml:"name"`
		Features []string                     `yaml:"features"`
		Rates    map[domain.LoanType]rateYAML `yaml:"rates"`
	} `yaml:"banks"`
}

type rateYAML struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// LoadDirectory reads a directory from YAML:
//
//	banks:
//	  - name: SBI
//	    features: [Quick approval]
//	    rates:
//	      home: {min: 8.5, max: 9.25}
func LoadDirectory(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bank directory %s: %w", path, err)
	}
	var file directoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse bank directory: %w", err)
	}
	if len(file.Banks) == 0 {
		return nil, fmt.Errorf("bank directory %s lists no banks", path)
	}

	var offers []domain.BankOffer
	for _, b := range file.Banks {
		types := lo.Keys(b.Rates)
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		for _, t := range types {
			r := b.Rates[t]
			offers = append(offers, domain.BankOffer{
				Bank:     b.Name,
				LoanType: t,
				MinRate:  r.Min,
				MaxRate:  r.Max,
				Features: b.Features,
			})
		}
	}
	return New(offers)
}
