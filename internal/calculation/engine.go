package calculation

import (
	"time"

	"github.com/itrgo/tax-estimator/internal/domain"
	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/itrgo/tax-estimator/pkg/dateutil"
	money "github.com/itrgo/tax-estimator/pkg/decimal"
)

// Engine computes tax under both regimes. It holds only the rule book and
// options, so one Engine can serve concurrent computations.
type Engine struct {
	rules          *domain.RuleBook
	logger         Logger
	now            func() time.Time
	excludePastDue bool
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger. If nil is provided, a no-op logger is used.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l == nil {
			l = NopLogger{}
		}
		e.logger = l
	}
}

// WithClock sets the clock used to drop past-due advance-tax installments
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithExcludePastDue omits installments due before today from the schedule
func WithExcludePastDue(exclude bool) Option {
	return func(e *Engine) {
		e.excludePastDue = exclude
	}
}

// NewEngine creates an engine over a rule book
func NewEngine(rules *domain.RuleBook, opts ...Option) *Engine {
	e := &Engine{
		rules:  rules,
		logger: NopLogger{},
		now:    nowFunc,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Years returns the financial years the engine can compute
func (e *Engine) Years() []string {
	return e.rules.Years()
}

// Compute validates a request and runs it through aggregation, both regime
// engines and post-processing. The request is not modified.
func (e *Engine) Compute(request *domain.ComputationRequest) (*domain.ComputationResult, error) {
	if request == nil {
		return nil, ierr.NewError("nil computation request").
			WithHint("A computation request is required").
			Mark(ierr.ErrInvalidInput)
	}
	req := *request
	req.Profile.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rules, err := e.rules.Lookup(req.Profile.FinancialYear)
	if err != nil {
		return nil, err
	}
	fy, err := dateutil.ParseFinancialYear(rules.FinancialYear)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("The tax rules carry an invalid financial year").
			Mark(ierr.ErrInvalidConfiguration)
	}

	agg := NewIncomeAggregator(rules, e.logger).Aggregate(req.Profile, req.Income, req.Deductions)

	gains := NewCapitalGainsCalculator(rules.CapitalGains)
	gainsTax := gains.Calculate(req.Income.CapitalGains)

	oldRegime, err := NewOldRegimeCalculator(rules, req.Profile.AgeGroup).
		Calculate(agg.OldTaxableIncome, gainsTax, req.Profile.ResidentialStatus)
	if err != nil {
		return nil, err
	}
	newRegime, err := NewNewRegimeCalculator(rules).
		Calculate(agg.NewTaxableIncome, gainsTax, req.Profile.ResidentialStatus)
	if err != nil {
		return nil, err
	}
	e.logger.Debugf("regime tax %s: old=%s new=%s", fy, oldRegime.TotalTax, newRegime.TotalTax)

	result := &domain.ComputationResult{
		FinancialYear:     fy.String(),
		GrossTotalIncome:  money.NewMoneyFromDecimal(agg.GrossTotalIncome).Round(),
		OldTaxableIncome:  money.NewMoneyFromDecimal(agg.OldTaxableIncome).Round(),
		NewTaxableIncome:  money.NewMoneyFromDecimal(agg.NewTaxableIncome).Round(),
		OldRegimeTax:      oldRegime.TotalTax,
		NewRegimeTax:      newRegime.TotalTax,
		OldRegime:         oldRegime,
		NewRegime:         newRegime,
		Exemptions:        agg.Exemptions,
		IncomeHeads:       agg.Heads,
		DeductionsAllowed: agg.Deductions,
	}

	e.settle(result, &req, rules, fy)
	result.Suggestions = generateSuggestions(&suggestionInput{
		request: &req,
		rules:   rules,
		result:  result,
		gains:   gains,
	})
	return result, nil
}

// settle compares the regimes and nets the selected regime's tax against
// taxes already paid. A tie favours the Old Regime.
func (e *Engine) settle(result *domain.ComputationResult, req *domain.ComputationRequest, rules *domain.YearRules, fy dateutil.FinancialYear) {
	oldTax, newTax := result.OldRegimeTax.Decimal, result.NewRegimeTax.Decimal

	result.Recommendation = domain.RegimeNew
	if oldTax.LessThanOrEqual(newTax) {
		result.Recommendation = domain.RegimeOld
	}
	result.Savings = money.NewMoneyFromDecimal(oldTax.Sub(newTax).Abs())

	result.SelectedRegime = result.Recommendation
	if req.Profile.SelectedRegime != "" {
		result.SelectedRegime = req.Profile.SelectedRegime
	}

	liability := result.TaxFor(result.SelectedRegime).Decimal
	paid := req.TaxesPaid.Total().Decimal
	result.TotalTaxesPaid = money.NewMoneyFromDecimal(paid).Round()
	result.NetPayable = money.NewMoneyFromDecimal(money.Floor0(liability.Sub(paid))).Round()
	result.RefundDue = money.NewMoneyFromDecimal(money.Floor0(paid.Sub(liability))).Round()

	scheduler := &AdvanceTaxScheduler{
		Rules:          rules.AdvanceTax,
		Now:            e.now,
		ExcludePastDue: e.excludePastDue,
	}
	result.AdvanceTaxSchedule = scheduler.Schedule(fy, result.NetPayable.Decimal)

	e.logger.Debugf("settled %s: recommendation=%s selected=%s net payable=%s refund=%s installments=%d",
		fy, result.Recommendation, result.SelectedRegime, result.NetPayable, result.RefundDue, len(result.AdvanceTaxSchedule))
}
