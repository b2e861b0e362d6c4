package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/finadvisor/finadvisor/internal/advisor"
	"github.com/finadvisor/finadvisor/internal/budget"
	"github.com/finadvisor/finadvisor/internal/calculation"
	"github.com/finadvisor/finadvisor/internal/config"
	"github.com/finadvisor/finadvisor/internal/directory"
	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/finadvisor/finadvisor/internal/output"
	"github.com/finadvisor/finadvisor/internal/storage"
	"github.com/rs/zerolog"
)

// API exposes HTTP handlers for the REST API.
type API struct {
	logger     zerolog.Logger
	engine     *calculation.Engine
	directory  *directory.Directory
	budgets    *budget.Service
	uploads    storage.BlobStore
	maxUpload  int64
	advisor    advisor.Advisor
	statements advisor.Advisor
}

type taxRequest struct {
	AnnualIncome     formValue `json:"annualIncome"`
	Age              formValue `json:"age"`
	Deductions80C    formValue `json:"deductions80C"`
	Deductions80D    formValue `json:"deductions80D"`
	HomeLoanInterest formValue `json:"homeLoanInterest"`
	OtherDeductions  formValue `json:"otherDeductions"`
}

func (req taxRequest) toInput() domain.TaxCalculationInput {
	return domain.TaxCalculationInput{
		AnnualIncome:     config.ParseAmount(req.AnnualIncome.String()),
		AgeBracket:       config.ParseAgeBracket(req.Age.String()),
		Deduction80C:     config.ParseAmount(req.Deductions80C.String()),
		Deduction80D:     config.ParseAmount(req.Deductions80D.String()),
		HomeLoanInterest: config.ParseAmount(req.HomeLoanInterest.String()),
		OtherDeductions:  config.ParseAmount(req.OtherDeductions.String()),
	}
}

type taxDisplay struct {
	GrossIncome     string `json:"grossIncome"`
	BasicExemption  string `json:"basicExemption"`
	TotalDeductions string `json:"totalDeductions"`
	TaxableIncome   string `json:"taxableIncome"`
	Tax             string `json:"tax"`
	Cess            string `json:"cess"`
	TaxLiability    string `json:"taxLiability"`
	NetIncome       string `json:"netIncome"`
	EffectiveRate   string `json:"effectiveRate"`
}

type taxResponse struct {
	Result  domain.TaxCalculationResult `json:"result"`
	Display taxDisplay                  `json:"display"`
}

func (a *API) handleTax(w http.ResponseWriter, r *http.Request) {
	var req taxRequest
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req = taxRequest{
			AnnualIncome:     formValue(r.PostFormValue("annualIncome")),
			Age:              formValue(r.PostFormValue("age")),
			Deductions80C:    formValue(r.PostFormValue("deductions80C")),
			Deductions80D:    formValue(r.PostFormValue("deductions80D")),
			HomeLoanInterest: formValue(r.PostFormValue("homeLoanInterest")),
			OtherDeductions:  formValue(r.PostFormValue("otherDeductions")),
		}
	} else if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := a.engine.CalculateTax(r.Context(), req.toInput())
	respondJSON(w, http.StatusOK, taxResponse{
		Result: res,
		Display: taxDisplay{
			GrossIncome:     output.FormatRupees(res.GrossIncome),
			BasicExemption:  output.FormatRupees(res.BasicExemption),
			TotalDeductions: output.FormatRupees(res.TotalDeductions),
			TaxableIncome:   output.FormatRupees(res.TaxableIncome),
			Tax:             output.FormatRupees(res.Tax),
			Cess:            output.FormatRupees(res.Cess),
			TaxLiability:    output.FormatRupees(res.TaxLiability),
			NetIncome:       output.FormatRupees(res.NetIncome),
			EffectiveRate:   output.FormatPercentage(res.EffectiveRatePercent),
		},
	})
}

type loanRequest struct {
	LoanType     formValue `json:"loanType"`
	LoanAmount   formValue `json:"loanAmount"`
	InterestRate formValue `json:"interestRate"`
	Tenure       formValue `json:"tenure"`
}

func (req loanRequest) toInput() domain.LoanInput {
	return domain.LoanInput{
		LoanType:          domain.ParseLoanType(req.LoanType.String()),
		Principal:         config.ParseFloatField(req.LoanAmount.String()),
		AnnualRatePercent: config.ParseFloatField(req.InterestRate.String()),
		TenureYears:       config.ParseFloatField(req.Tenure.String()),
	}
}

type loanDisplay struct {
	Principal     string `json:"principal"`
	Installment   string `json:"installment"`
	TotalPayable  string `json:"totalPayable"`
	TotalInterest string `json:"totalInterest"`
}

type loanResponse struct {
	Result  domain.LoanResult  `json:"result"`
	Display loanDisplay        `json:"display"`
	Offers  []domain.BankOffer `json:"offers"`
}

func (a *API) readLoan(w http.ResponseWriter, r *http.Request) (domain.LoanInput, bool) {
	var req loanRequest
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form body")
			return domain.LoanInput{}, false
		}
		req = loanRequest{
			LoanType:     formValue(r.PostFormValue("loanType")),
			LoanAmount:   formValue(r.PostFormValue("loanAmount")),
			InterestRate: formValue(r.PostFormValue("interestRate")),
			Tenure:       formValue(r.PostFormValue("tenure")),
		}
	} else if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())
		return domain.LoanInput{}, false
	}
	return req.toInput(), true
}

func (a *API) handleLoan(w http.ResponseWriter, r *http.Request) {
	input, ok := a.readLoan(w, r)
	if !ok {
		return
	}
	res, err := a.engine.CalculateLoan(r.Context(), input)
	if errors.Is(err, calculation.ErrInvalidInput) {
		writeError(w, http.StatusUnprocessableEntity, calculation.InvalidInputMessage)
		return
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, loanResponse{
		Result: res,
		Display: loanDisplay{
			Principal:     output.FormatRupeeUnits(res.Principal),
			Installment:   output.FormatRupeeUnits(res.Installment),
			TotalPayable:  output.FormatRupeeUnits(res.TotalPayable),
			TotalInterest: output.FormatRupeeUnits(res.TotalInterest),
		},
		Offers: a.directory.ForLoanType(res.LoanType),
	})
}

func (a *API) handleLoanSchedule(w http.ResponseWriter, r *http.Request) {
	input, ok := a.readLoan(w, r)
	if !ok {
		return
	}
	schedule, err := a.engine.LoanSchedule(input)
	if errors.Is(err, calculation.ErrInvalidInput) {
		writeError(w, http.StatusUnprocessableEntity, calculation.InvalidInputMessage)
		return
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		data, err := output.ScheduleCSV(schedule)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="amortization.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}

type banksResponse struct {
	LoanType domain.LoanType    `json:"loanType"`
	Offers   []domain.BankOffer `json:"offers"`
}

func (a *API) handleBanks(w http.ResponseWriter, r *http.Request) {
	t := domain.ParseLoanType(r.URL.Query().Get("type"))
	respondJSON(w, http.StatusOK, banksResponse{LoanType: t, Offers: a.directory.ForLoanType(t)})
}

// handleWorksheet runs a YAML worksheet posted as the body and renders it in
// the format named by the query string, JSON by default.
func (a *API) handleWorksheet(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	contentType := output.ContentTypeFor(format)
	if contentType == "" {
		writeError(w, http.StatusBadRequest, "unsupported report format")
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "worksheet too large")
		return
	}
	ws, err := config.NewInputParser().Parse(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := a.engine.RunWorksheet(r.Context(), ws)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if err := output.Render(w, report, format); err != nil {
		a.logger.Error().Err(err).Str("format", format).Msg("render worksheet")
	}
}
