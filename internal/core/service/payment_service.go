package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chainboard/job-board-api/internal/api/metrics"
	"github.com/chainboard/job-board-api/internal/core/domain"
	"github.com/chainboard/job-board-api/internal/core/ports"
)

// ClaimLocker serializes concurrent verification attempts per job (Redis).
// Acquire returns false when another claim currently holds the lock.
type ClaimLocker interface {
	Acquire(ctx context.Context, jobID string) (bool, error)
	Release(ctx context.Context, jobID string)
}

// DoubleConfirmPolicy decides what happens when a second, different, valid
// transaction hash arrives for an already-confirmed job.
type DoubleConfirmPolicy string

const (
	// DoubleConfirmAccept silently re-confirms; the original hash is kept.
	DoubleConfirmAccept DoubleConfirmPolicy = "accept"
	// DoubleConfirmReject answers 409 so the payer can investigate.
	DoubleConfirmReject DoubleConfirmPolicy = "reject"
	// DoubleConfirmLog accepts but records the claim as a suspicious
	// duplicate. Default: the payer already lost the funds on-chain, and a
	// hard failure would not bring them back.
	DoubleConfirmLog DoubleConfirmPolicy = "log"
)

type paymentService struct {
	jobs   ports.JobRepository
	claims ports.ClaimRepository
	ledger ports.LedgerReader
	policy domain.FeePolicy
	locks  ClaimLocker
	onDup  DoubleConfirmPolicy
	log    zerolog.Logger
}

// NewPaymentService returns a PaymentService implementation.
func NewPaymentService(
	jobs ports.JobRepository,
	claims ports.ClaimRepository,
	ledger ports.LedgerReader,
	policy domain.FeePolicy,
	locks ClaimLocker,
	onDup DoubleConfirmPolicy,
	log zerolog.Logger,
) ports.PaymentService {
	if onDup == "" {
		onDup = DoubleConfirmLog
	}
	return &paymentService{
		jobs:   jobs,
		claims: claims,
		ledger: ledger,
		policy: policy,
		locks:  locks,
		onDup:  onDup,
		log:    log,
	}
}

// ConfirmPayment verifies a claimed platform-fee transaction and marks the
// job as live. The transition happens only after both on-chain confirmation
// and fee-policy validation succeed; nothing here retries.
func (s *paymentService) ConfirmPayment(ctx context.Context, in ports.ConfirmPaymentInput) (*domain.JobPosting, error) {
	// 1. Field presence, before any network call.
	if in.JobID == "" || in.TxHash == "" {
		return nil, domain.ErrMissingFields
	}

	// 2. Per-job advisory lock. A lost lock means another claim is mid-flight;
	// a lock-store error degrades to lock-less verification.
	if s.locks != nil {
		ok, err := s.locks.Acquire(ctx, in.JobID)
		if err != nil {
			s.log.Warn().Err(err).Str("job_id", in.JobID).Msg("claim lock unavailable, verifying without it")
		} else if !ok {
			return nil, domain.ErrClaimInProgress
		} else {
			defer s.locks.Release(ctx, in.JobID)
		}
	}

	// 3. Look up the transaction and its receipt on-chain.
	tx, err := s.ledger.Lookup(ctx, in.TxHash)
	if err != nil {
		if errors.Is(err, domain.ErrTxNotFound) {
			return nil, s.reject(ctx, in, domain.ErrTxNotConfirmed)
		}
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	if !tx.Succeeded {
		return nil, s.reject(ctx, in, domain.ErrTxNotConfirmed)
	}

	// 4. Fee policy: recipient first, then amount, so diagnostics distinguish.
	if !s.policy.ValidRecipient(tx.Recipient) {
		return nil, s.reject(ctx, in, domain.ErrWrongRecipient)
	}
	if !s.policy.ValidAmount(tx.Value) {
		return nil, s.reject(ctx, in, domain.ErrWrongAmount)
	}

	// 5. Atomic set-if-currently-false on the job document.
	job, err := s.jobs.ConfirmPayment(ctx, in.JobID, in.TxHash)
	if err == nil {
		s.record(ctx, in, domain.ClaimAccepted, "")
		metrics.PaymentsConfirmedTotal.Inc()
		s.log.Info().Str("job_id", job.ID).Str("tx_hash", in.TxHash).Msg("payment confirmed, job is live")
		return job, nil
	}
	if !errors.Is(err, domain.ErrJobNotFound) {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}

	// The CAS missed: the job is absent, or it is already confirmed.
	existing, findErr := s.jobs.FindByID(ctx, in.JobID)
	if findErr != nil {
		if errors.Is(findErr, domain.ErrJobNotFound) {
			return nil, s.reject(ctx, in, domain.ErrJobNotFound)
		}
		return nil, fmt.Errorf("confirm payment: %w", findErr)
	}

	return s.applyToConfirmed(ctx, in, existing)
}

// applyToConfirmed handles a valid claim against a job that is already live.
// A replay of the confirming hash is idempotent success; a different hash is
// resolved by the double-confirm policy.
func (s *paymentService) applyToConfirmed(ctx context.Context, in ports.ConfirmPaymentInput, job *domain.JobPosting) (*domain.JobPosting, error) {
	if job.PaymentTxHash == in.TxHash {
		s.record(ctx, in, domain.ClaimAccepted, "replay")
		return job, nil
	}

	switch s.onDup {
	case DoubleConfirmReject:
		metrics.PaymentsRejectedTotal.WithLabelValues("double_payment").Inc()
		s.record(ctx, in, domain.ClaimRejected, domain.ErrDoublePayment.Error())
		return nil, domain.ErrDoublePayment
	case DoubleConfirmAccept:
		s.record(ctx, in, domain.ClaimAccepted, "second valid hash")
		return job, nil
	default: // DoubleConfirmLog
		s.log.Warn().
			Str("job_id", job.ID).
			Str("confirmed_tx", job.PaymentTxHash).
			Str("claimed_tx", in.TxHash).
			Msg("second valid payment for an already-confirmed job")
		s.record(ctx, in, domain.ClaimDuplicate, "second valid hash")
		return job, nil
	}
}

// reject logs and audits a failed claim, then returns its reason unchanged.
func (s *paymentService) reject(ctx context.Context, in ports.ConfirmPaymentInput, reason error) error {
	metrics.PaymentsRejectedTotal.WithLabelValues(rejectLabel(reason)).Inc()
	s.log.Warn().
		Str("job_id", in.JobID).
		Str("tx_hash", in.TxHash).
		Str("reason", reason.Error()).
		Msg("payment claim rejected")
	s.record(ctx, in, domain.ClaimRejected, reason.Error())
	return reason
}

// record writes the claim to the audit trail. Failures are non-fatal.
func (s *paymentService) record(ctx context.Context, in ports.ConfirmPaymentInput, outcome, reason string) {
	claim := &domain.PaymentClaim{
		JobID:     in.JobID,
		TxHash:    in.TxHash,
		Outcome:   outcome,
		Reason:    reason,
		ClaimedAt: time.Now().UTC(),
	}
	if err := s.claims.Insert(ctx, claim); err != nil {
		s.log.Warn().Err(err).Str("job_id", in.JobID).Msg("failed to record payment claim")
	}
}

func rejectLabel(reason error) string {
	switch {
	case errors.Is(reason, domain.ErrTxNotConfirmed):
		return "tx_not_confirmed"
	case errors.Is(reason, domain.ErrWrongRecipient):
		return "wrong_recipient"
	case errors.Is(reason, domain.ErrWrongAmount):
		return "wrong_amount"
	case errors.Is(reason, domain.ErrJobNotFound):
		return "job_not_found"
	default:
		return "other"
	}
}
