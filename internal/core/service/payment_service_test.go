package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chainboard/job-board-api/internal/core/domain"
	"github.com/chainboard/job-board-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	jobs map[string]*domain.JobPosting
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.JobPosting)}
}

func (r *stubJobRepo) Create(_ context.Context, j *domain.JobPosting) (*domain.JobPosting, error) {
	if j.ID == "" {
		j.ID = fmt.Sprintf("job%d", len(r.jobs)+1)
	}
	clone := *j
	r.jobs[j.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.JobPosting, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) List(_ context.Context, f ports.JobFilter) ([]*domain.JobPosting, error) {
	var out []*domain.JobPosting
	for _, j := range r.jobs {
		if f.ConfirmedOnly && !j.PaymentConfirmed {
			continue
		}
		clone := *j
		out = append(out, &clone)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *stubJobRepo) ListByPoster(_ context.Context, userID string) ([]*domain.JobPosting, error) {
	var out []*domain.JobPosting
	for _, j := range r.jobs {
		if j.PostedBy == userID {
			clone := *j
			out = append(out, &clone)
		}
	}
	return out, nil
}

// ConfirmPayment mirrors the real Mongo CAS: it only matches an existing,
// still-unconfirmed posting.
func (r *stubJobRepo) ConfirmPayment(_ context.Context, id, txHash string) (*domain.JobPosting, error) {
	j, ok := r.jobs[id]
	if !ok || j.PaymentConfirmed {
		return nil, domain.ErrJobNotFound
	}
	j.PaymentConfirmed = true
	j.PaymentTxHash = txHash
	clone := *j
	return &clone, nil
}

type stubClaimRepo struct {
	claims    []*domain.PaymentClaim
	insertErr error
}

func (r *stubClaimRepo) Insert(_ context.Context, c *domain.PaymentClaim) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.claims = append(r.claims, c)
	return nil
}

func (r *stubClaimRepo) last() *domain.PaymentClaim {
	if len(r.claims) == 0 {
		return nil
	}
	return r.claims[len(r.claims)-1]
}

type stubLedger struct {
	txs     map[string]*domain.LedgerTransaction
	err     error
	lookups int
}

func (l *stubLedger) Lookup(_ context.Context, hash string) (*domain.LedgerTransaction, error) {
	l.lookups++
	if l.err != nil {
		return nil, l.err
	}
	tx, ok := l.txs[hash]
	if !ok {
		return nil, domain.ErrTxNotFound
	}
	return tx, nil
}

type stubLocker struct {
	held       bool
	acquireErr error
	releases   int
}

func (l *stubLocker) Acquire(_ context.Context, _ string) (bool, error) {
	if l.acquireErr != nil {
		return false, l.acquireErr
	}
	return !l.held, nil
}

func (l *stubLocker) Release(_ context.Context, _ string) { l.releases++ }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const adminWallet = "0xAdMiN00000000000000000000000000000000001"

var platformFee = big.NewInt(10_000_000_000_000_000) // 0.01 ETH in Wei

func testPolicy() domain.FeePolicy {
	return domain.FeePolicy{AdminWallet: adminWallet, FeeWei: platformFee}
}

func validTx(hash string) *domain.LedgerTransaction {
	return &domain.LedgerTransaction{
		Hash:      hash,
		Recipient: "0xadmin00000000000000000000000000000000001", // lowercased on-chain form
		Value:     new(big.Int).Set(platformFee),
		Succeeded: true,
	}
}

type paymentFixture struct {
	jobs   *stubJobRepo
	claims *stubClaimRepo
	ledger *stubLedger
	locks  *stubLocker
	svc    ports.PaymentService
}

func newPaymentFixture(onDup DoubleConfirmPolicy) *paymentFixture {
	f := &paymentFixture{
		jobs:   newStubJobRepo(),
		claims: &stubClaimRepo{},
		ledger: &stubLedger{txs: make(map[string]*domain.LedgerTransaction)},
		locks:  &stubLocker{},
	}
	f.svc = NewPaymentService(f.jobs, f.claims, f.ledger, testPolicy(), f.locks, onDup, zerolog.Nop())
	return f
}

func (f *paymentFixture) seedJob(id string) {
	f.jobs.jobs[id] = &domain.JobPosting{ID: id, Title: "Go Engineer", PostedBy: "user1"}
}

// ---------------------------------------------------------------------------
// ConfirmPayment tests
// ---------------------------------------------------------------------------

func TestConfirmPayment_Success(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)
	f.seedJob("job1")
	f.ledger.txs["0xabc"] = validTx("0xabc")

	job, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !job.PaymentConfirmed {
		t.Error("returned job must be confirmed")
	}
	if !f.jobs.jobs["job1"].PaymentConfirmed {
		t.Error("stored job must be confirmed")
	}
	if f.jobs.jobs["job1"].PaymentTxHash != "0xabc" {
		t.Errorf("confirming hash not stored: %q", f.jobs.jobs["job1"].PaymentTxHash)
	}
	if c := f.claims.last(); c == nil || c.Outcome != domain.ClaimAccepted {
		t.Errorf("expected an accepted audit claim, got %+v", c)
	}
	if f.locks.releases != 1 {
		t.Errorf("lock must be released exactly once, got %d", f.locks.releases)
	}
}

func TestConfirmPayment_MissingFields(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)

	cases := []ports.ConfirmPaymentInput{
		{JobID: "", TxHash: "0xabc"},
		{JobID: "job1", TxHash: ""},
		{},
	}
	for _, in := range cases {
		if _, err := f.svc.ConfirmPayment(context.Background(), in); !errors.Is(err, domain.ErrMissingFields) {
			t.Errorf("input %+v: expected ErrMissingFields, got %v", in, err)
		}
	}
	if f.ledger.lookups != 0 {
		t.Errorf("ledger must not be called for missing fields, got %d lookups", f.ledger.lookups)
	}
}

func TestConfirmPayment_TxNotFound(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)
	f.seedJob("job1")

	_, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xmissing"})
	if !errors.Is(err, domain.ErrTxNotConfirmed) {
		t.Fatalf("expected ErrTxNotConfirmed, got %v", err)
	}
	if f.jobs.jobs["job1"].PaymentConfirmed {
		t.Error("job must stay unconfirmed")
	}
}

func TestConfirmPayment_ReceiptFailed(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)
	f.seedJob("job1")
	tx := validTx("0xabc")
	tx.Succeeded = false
	f.ledger.txs["0xabc"] = tx

	_, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"})
	if !errors.Is(err, domain.ErrTxNotConfirmed) {
		t.Fatalf("expected ErrTxNotConfirmed, got %v", err)
	}
	if f.jobs.jobs["job1"].PaymentConfirmed {
		t.Error("job must stay unconfirmed after a failed receipt")
	}
	if c := f.claims.last(); c == nil || c.Outcome != domain.ClaimRejected {
		t.Errorf("rejected claim must be audited, got %+v", c)
	}
}

func TestConfirmPayment_WrongRecipient(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)
	f.seedJob("job1")
	tx := validTx("0xabc")
	tx.Recipient = "0x0000000000000000000000000000000000000bad"
	f.ledger.txs["0xabc"] = tx

	_, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"})
	if !errors.Is(err, domain.ErrWrongRecipient) {
		t.Fatalf("expected ErrWrongRecipient, got %v", err)
	}
}

func TestConfirmPayment_RecipientCaseInsensitive(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)
	f.seedJob("job1")
	tx := validTx("0xabc")
	tx.Recipient = "0XADMIN00000000000000000000000000000000001"
	f.ledger.txs["0xabc"] = tx

	if _, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"}); err != nil {
		t.Fatalf("same address in different case must pass: %v", err)
	}
}

func TestConfirmPayment_WrongAmount(t *testing.T) {
	for _, delta := range []int64{-1, 1} {
		f := newPaymentFixture(DoubleConfirmLog)
		f.seedJob("job1")
		tx := validTx("0xabc")
		tx.Value = new(big.Int).Add(platformFee, big.NewInt(delta))
		f.ledger.txs["0xabc"] = tx

		_, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"})
		if !errors.Is(err, domain.ErrWrongAmount) {
			t.Errorf("delta %+d: expected ErrWrongAmount, got %v", delta, err)
		}
	}
}

// Recipient is checked before amount, so a claim that is wrong on both counts
// reports the recipient mismatch.
func TestConfirmPayment_RecipientCheckedFirst(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)
	f.seedJob("job1")
	tx := validTx("0xabc")
	tx.Recipient = "0x0000000000000000000000000000000000000bad"
	tx.Value = big.NewInt(1)
	f.ledger.txs["0xabc"] = tx

	_, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"})
	if !errors.Is(err, domain.ErrWrongRecipient) {
		t.Fatalf("expected ErrWrongRecipient, got %v", err)
	}
}

func TestConfirmPayment_JobNotFound(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)
	f.ledger.txs["0xabc"] = validTx("0xabc")

	_, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "missing-job", TxHash: "0xabc"})
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestConfirmPayment_LedgerUnavailable(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)
	f.seedJob("job1")
	f.ledger.err = domain.ErrLedgerUnavailable

	_, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"})
	if !errors.Is(err, domain.ErrLedgerUnavailable) {
		t.Fatalf("expected ErrLedgerUnavailable, got %v", err)
	}
	if f.jobs.jobs["job1"].PaymentConfirmed {
		t.Error("job must stay unconfirmed when the node is unreachable")
	}
}

func TestConfirmPayment_SameHashReplayIsIdempotent(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)
	f.seedJob("job1")
	f.ledger.txs["0xabc"] = validTx("0xabc")
	in := ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"}

	if _, err := f.svc.ConfirmPayment(context.Background(), in); err != nil {
		t.Fatalf("first confirmation failed: %v", err)
	}
	job, err := f.svc.ConfirmPayment(context.Background(), in)
	if err != nil {
		t.Fatalf("replay must succeed: %v", err)
	}
	if !job.PaymentConfirmed {
		t.Error("replay must return the confirmed job")
	}
	if job.PaymentTxHash != "0xabc" {
		t.Errorf("confirming hash must be unchanged, got %q", job.PaymentTxHash)
	}
}

func TestConfirmPayment_SecondHash_RejectPolicy(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmReject)
	f.seedJob("job1")
	f.ledger.txs["0xabc"] = validTx("0xabc")
	f.ledger.txs["0xdef"] = validTx("0xdef")

	if _, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"}); err != nil {
		t.Fatalf("first confirmation failed: %v", err)
	}
	_, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xdef"})
	if !errors.Is(err, domain.ErrDoublePayment) {
		t.Fatalf("expected ErrDoublePayment, got %v", err)
	}
	if f.jobs.jobs["job1"].PaymentTxHash != "0xabc" {
		t.Error("original confirming hash must be preserved")
	}
}

func TestConfirmPayment_SecondHash_LogPolicy(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)
	f.seedJob("job1")
	f.ledger.txs["0xabc"] = validTx("0xabc")
	f.ledger.txs["0xdef"] = validTx("0xdef")

	_, _ = f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"})
	job, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xdef"})
	if err != nil {
		t.Fatalf("log policy must accept: %v", err)
	}
	if job.PaymentTxHash != "0xabc" {
		t.Error("log policy must keep the original hash")
	}
	if c := f.claims.last(); c == nil || c.Outcome != domain.ClaimDuplicate {
		t.Errorf("duplicate claim must be audited, got %+v", c)
	}
}

func TestConfirmPayment_SecondHash_AcceptPolicy(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmAccept)
	f.seedJob("job1")
	f.ledger.txs["0xabc"] = validTx("0xabc")
	f.ledger.txs["0xdef"] = validTx("0xdef")

	_, _ = f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"})
	if _, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xdef"}); err != nil {
		t.Fatalf("accept policy must re-confirm silently: %v", err)
	}
}

func TestConfirmPayment_LockHeld(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)
	f.seedJob("job1")
	f.ledger.txs["0xabc"] = validTx("0xabc")
	f.locks.held = true

	_, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"})
	if !errors.Is(err, domain.ErrClaimInProgress) {
		t.Fatalf("expected ErrClaimInProgress, got %v", err)
	}
	if f.ledger.lookups != 0 {
		t.Error("ledger must not be consulted while another claim holds the lock")
	}
}

func TestConfirmPayment_LockStoreDown_ProceedsWithoutLock(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)
	f.seedJob("job1")
	f.ledger.txs["0xabc"] = validTx("0xabc")
	f.locks.acquireErr = errors.New("redis: connection refused")

	job, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"})
	if err != nil {
		t.Fatalf("verification must degrade to lock-less, got %v", err)
	}
	if !job.PaymentConfirmed {
		t.Error("job must be confirmed")
	}
	if f.locks.releases != 0 {
		t.Error("never-acquired lock must not be released")
	}
}

func TestConfirmPayment_AuditFailureIsNonFatal(t *testing.T) {
	f := newPaymentFixture(DoubleConfirmLog)
	f.seedJob("job1")
	f.ledger.txs["0xabc"] = validTx("0xabc")
	f.claims.insertErr = errors.New("mongo down")

	if _, err := f.svc.ConfirmPayment(context.Background(), ports.ConfirmPaymentInput{JobID: "job1", TxHash: "0xabc"}); err != nil {
		t.Fatalf("audit insert failure must not fail the claim: %v", err)
	}
}
