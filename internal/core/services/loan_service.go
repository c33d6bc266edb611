package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portsrepo "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
	"github.com/Manav-gyani/Bank-Management-System/internal/middleware"
	"github.com/Manav-gyani/Bank-Management-System/internal/utils/finance"
	"github.com/Manav-gyani/Bank-Management-System/internal/utils/idgen"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultDecisionDelay is how long after creation the deferred underwriting
// decision fires. Not configurable per call.
const defaultDecisionDelay = 60 * time.Second

// defaultAnnualRates are the per-product annual interest rates used when the
// application does not supply one.
var defaultAnnualRates = map[domain.LoanType]decimal.Decimal{
	domain.HomeLoan:      decimal.RequireFromString("8.5"),
	domain.PersonalLoan:  decimal.RequireFromString("12.0"),
	domain.CarLoan:       decimal.RequireFromString("10.0"),
	domain.EducationLoan: decimal.RequireFromString("9.5"),
	domain.BusinessLoan:  decimal.RequireFromString("11.0"),
}

// Underwriting rule constants.
var (
	minCreditScore     = 600
	relaxedScoreCeil   = 650
	incomeMultiple     = decimal.NewFromInt(3)
	relaxedIncomeMult  = decimal.NewFromInt(4)
	maxDebtIncomeRatio = decimal.RequireFromString("0.4")
)

// loanService is the loan underwriting engine: EMI computation at creation,
// a one-shot deferred rule-based decision, and operator status transitions
// validated against the loan state machine.
type loanService struct {
	loanRepo    portsrepo.LoanRepository
	accountRepo portsrepo.AccountRepository // read-only

	decisionDelay time.Duration
	simulateScore func() int
}

// LoanServiceOption configures the loan service.
type LoanServiceOption func(*loanService)

// WithDecisionDelay overrides the deferred decision delay.
func WithDecisionDelay(d time.Duration) LoanServiceOption {
	return func(s *loanService) { s.decisionDelay = d }
}

// WithScoreSimulator overrides the credit score simulator used when an
// application carries no score. Tests inject a deterministic one.
func WithScoreSimulator(fn func() int) LoanServiceOption {
	return func(s *loanService) { s.simulateScore = fn }
}

// NewLoanService creates the loan underwriting engine. The default score
// simulator draws from [600, 750) using a source seeded at construction.
func NewLoanService(loanRepo portsrepo.LoanRepository, accountRepo portsrepo.AccountRepository, options ...LoanServiceOption) portssvc.LoanSvcFacade {
	svc := &loanService{
		loanRepo:      loanRepo,
		accountRepo:   accountRepo,
		decisionDelay: defaultDecisionDelay,
		simulateScore: seededScoreSimulator(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// seededScoreSimulator returns a goroutine-safe simulator drawing scores in
// [600, 750).
func seededScoreSimulator(seed int64) func() int {
	var mu sync.Mutex
	rng := rand.New(rand.NewSource(seed))
	return func() int {
		mu.Lock()
		defer mu.Unlock()
		return minCreditScore + rng.Intn(150)
	}
}

// CreateLoan computes the EMI, persists the loan as PENDING and schedules
// the deferred underwriting decision. It returns immediately; the decision
// runs on a background worker.
func (s *loanService) CreateLoan(ctx context.Context, customerID string, req dto.CreateLoanRequest) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidLoanType(req.LoanType) {
		return nil, fmt.Errorf("%w: unknown loan type %q", apperrors.ErrValidation, req.LoanType)
	}
	if req.PrincipalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: principal must be positive, got %s", apperrors.ErrValidation, req.PrincipalAmount)
	}
	if req.TenureMonths <= 0 {
		return nil, fmt.Errorf("%w: tenure must be positive, got %d months", apperrors.ErrValidation, req.TenureMonths)
	}
	if req.MonthlyIncome.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: monthly income must be positive, got %s", apperrors.ErrValidation, req.MonthlyIncome)
	}
	if req.ExistingDebt.IsNegative() || req.CollateralValue.IsNegative() {
		return nil, fmt.Errorf("%w: existing debt and collateral value must not be negative", apperrors.ErrValidation)
	}
	if req.CreditScore < 0 {
		return nil, fmt.Errorf("%w: credit score must not be negative", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("funding account %s: %w", req.AccountID, err)
	}
	if customerID != "" && account.CustomerID != customerID {
		return nil, fmt.Errorf("%w: funding account %s is not held by the caller", apperrors.ErrForbidden, req.AccountID)
	}

	var rate decimal.Decimal
	if req.InterestRate != nil {
		if req.InterestRate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: interest rate must be positive, got %s", apperrors.ErrValidation, req.InterestRate)
		}
		rate = *req.InterestRate
	} else {
		rate = defaultAnnualRates[req.LoanType]
	}

	emi, err := finance.EMI(req.PrincipalAmount, rate, req.TenureMonths)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	loan := domain.Loan{
		LoanID:            uuid.NewString(),
		CustomerID:        account.CustomerID,
		AccountID:         account.AccountID,
		LoanType:          req.LoanType,
		PrincipalAmount:   req.PrincipalAmount,
		InterestRate:      rate,
		TenureMonths:      req.TenureMonths,
		MonthlyEMI:        emi,
		OutstandingAmount: req.PrincipalAmount,
		Status:            domain.LoanPending,
		CreditScore:       req.CreditScore,
		MonthlyIncome:     req.MonthlyIncome,
		ExistingDebt:      req.ExistingDebt,
		CollateralValue:   req.CollateralValue,
		AuditFields:       domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	saved := false
	for attempt := 1; attempt <= idgen.MaxGenerationAttempts; attempt++ {
		number, err := idgen.NewLoanNumber()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}
		loan.LoanNumber = number

		err = s.loanRepo.SaveLoan(ctx, loan)
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Loan number collision, regenerating",
				slog.String("loan_number", number), slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to save loan: %w", err)
		}
		saved = true
		break
	}
	if !saved {
		return nil, fmt.Errorf("%w: loan number generation failed after %d attempts", apperrors.ErrGenerationExhausted, idgen.MaxGenerationAttempts)
	}

	s.scheduleDecision(loan.LoanID, s.decisionDelay)

	logger.Info("Loan created, underwriting scheduled",
		slog.String("loan_id", loan.LoanID),
		slog.String("loan_number", loan.LoanNumber),
		slog.String("emi", emi.String()),
		slog.Duration("decision_delay", s.decisionDelay))
	return &loan, nil
}

// scheduleDecision arms the one-shot deferred decision for a loan. The task
// is fire-and-forget relative to the caller; failure is logged and the loan
// stays PENDING for a later resume.
func (s *loanService) scheduleDecision(loanID string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		ctx := context.Background()
		if _, err := s.Underwrite(ctx, loanID); err != nil {
			slog.Default().Error("Deferred underwriting failed, loan remains PENDING",
				slog.String("loan_id", loanID), slog.String("error", err.Error()))
		}
	})
}

// Underwrite runs the rule-based decision. Only a PENDING loan is decided;
// on an already-decided loan this is a no-op returning the stored record, so
// duplicate timers and restart replays are harmless.
func (s *loanService) Underwrite(ctx context.Context, loanID string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("loan %s: %w", loanID, err)
	}
	if loan.Status != domain.LoanPending {
		logger.Debug("Underwriting skipped, loan already decided",
			slog.String("loan_id", loanID), slog.String("status", string(loan.Status)))
		return loan, nil
	}

	score := loan.CreditScore
	if score == 0 {
		score = s.simulateScore()
	}

	// Recompute the EMI at full precision rather than trusting the stored
	// creation-time figure.
	emi, err := finance.EMI(loan.PrincipalAmount, loan.InterestRate, loan.TenureMonths)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	debtRatio, err := finance.DebtToIncomeRatio(loan.ExistingDebt, loan.MonthlyIncome)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	creditScoreOk := score >= minCreditScore
	incomeOk := loan.MonthlyIncome.GreaterThanOrEqual(emi.Mul(incomeMultiple))
	lowDebtOk := debtRatio.LessThanOrEqual(maxDebtIncomeRatio)
	collateralOk := loan.CollateralValue.GreaterThanOrEqual(loan.PrincipalAmount)

	// Relaxation for thin credit files: a sub-650 score still passes when the
	// loan is fully collateralized and income covers four EMIs.
	if !creditScoreOk && score < relaxedScoreCeil {
		if collateralOk && loan.MonthlyIncome.GreaterThanOrEqual(emi.Mul(relaxedIncomeMult)) {
			creditScoreOk = true
		}
	}

	now := time.Now().UTC()
	loan.CreditScore = score
	loan.MonthlyEMI = emi
	loan.UpdatedAt = now
	if creditScoreOk && incomeOk && lowDebtOk && collateralOk {
		loan.Status = domain.LoanApproved
		loan.ApprovalDate = &now
	} else {
		loan.Status = domain.LoanRejected
	}

	err = s.loanRepo.ApplyDecision(ctx, *loan)
	if errors.Is(err, apperrors.ErrConflict) {
		// Another worker decided first; report the stored outcome.
		logger.Debug("Underwriting raced with an earlier decision", slog.String("loan_id", loanID))
		return s.loanRepo.FindLoanByID(ctx, loanID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to persist underwriting decision: %w", err)
	}

	logger.Info("Underwriting decision applied",
		slog.String("loan_id", loanID),
		slog.String("status", string(loan.Status)),
		slog.Int("credit_score", score),
		slog.Bool("credit_score_ok", creditScoreOk),
		slog.Bool("income_ok", incomeOk),
		slog.Bool("low_debt_ok", lowDebtOk),
		slog.Bool("collateral_ok", collateralOk))
	return loan, nil
}

// GetLoanByID returns a loan by identifier.
func (s *loanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	// Loan numbers carry the "LN" prefix, IDs are UUIDs; accept either.
	find := s.loanRepo.FindLoanByID
	if strings.HasPrefix(loanID, idgen.LoanNumberPrefix) {
		find = s.loanRepo.FindLoanByNumber
	}
	loan, err := find(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("loan %s: %w", loanID, err)
	}
	return loan, nil
}

// ListCustomerLoans returns every loan held by the customer.
func (s *loanService) ListCustomerLoans(ctx context.Context, customerID string) ([]domain.Loan, error) {
	return s.loanRepo.ListLoansByCustomer(ctx, customerID)
}

// UpdateLoanStatus applies an operator-driven transition, validated against
// the loan state machine. Transitioning to DISBURSED sets the disbursement
// date and the first due date one month out.
func (s *loanService) UpdateLoanStatus(ctx context.Context, loanID string, status domain.LoanStatus) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	switch status {
	case domain.LoanApproved, domain.LoanRejected, domain.LoanDisbursed, domain.LoanActive, domain.LoanClosed, domain.LoanPending:
	default:
		return nil, fmt.Errorf("%w: unknown loan status %q", apperrors.ErrValidation, status)
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("loan %s: %w", loanID, err)
	}
	if !domain.CanTransition(loan.Status, status) {
		return nil, fmt.Errorf("%w: illegal loan status transition %s -> %s", apperrors.ErrValidation, loan.Status, status)
	}

	now := time.Now().UTC()
	loan.Status = status
	loan.UpdatedAt = now
	if status == domain.LoanDisbursed {
		nextDue := now.AddDate(0, 1, 0)
		loan.DisbursementDate = &now
		loan.NextDueDate = &nextDue
	}

	if err := s.loanRepo.UpdateLoanStatus(ctx, *loan); err != nil {
		return nil, fmt.Errorf("failed to update loan status: %w", err)
	}

	logger.Info("Loan status updated",
		slog.String("loan_id", loanID), slog.String("status", string(status)))
	return loan, nil
}

// ResumePendingUnderwriting reschedules the deferred decision for every
// PENDING loan, preserving what remains of each loan's original delay. Run
// once at startup so a restart neither loses nor duplicates decisions.
func (s *loanService) ResumePendingUnderwriting(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	pending, err := s.loanRepo.ListLoansByStatus(ctx, domain.LoanPending)
	if err != nil {
		return fmt.Errorf("failed to list pending loans: %w", err)
	}

	for _, loan := range pending {
		remaining := s.decisionDelay - time.Since(loan.CreatedAt)
		if remaining < 0 {
			remaining = 0
		}
		s.scheduleDecision(loan.LoanID, remaining)
	}

	if len(pending) > 0 {
		logger.Info("Rescheduled pending underwriting decisions", slog.Int("count", len(pending)))
	}
	return nil
}
