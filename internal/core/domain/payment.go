package domain

import (
	"errors"
	"math/big"
	"strings"
	"time"
)

var ErrMissingFields = errors.New("missing job id or transaction hash")
var ErrTxNotConfirmed = errors.New("transaction failed or not found on the blockchain")
var ErrWrongRecipient = errors.New("transaction was not sent to the admin wallet")
var ErrWrongAmount = errors.New("incorrect amount paid for the platform fee")
var ErrLedgerUnavailable = errors.New("blockchain node unavailable")
var ErrClaimInProgress = errors.New("payment verification already in progress for this job")
var ErrDoublePayment = errors.New("job already confirmed by a different transaction")

// ErrTxNotFound is returned by the ledger when the node has no record of the
// hash. The verifier folds it into ErrTxNotConfirmed; it is kept distinct so
// the ledger adapter stays ignorant of verification semantics.
var ErrTxNotFound = errors.New("transaction not found")

// LedgerTransaction is the read-only view of an on-chain transfer, as reported
// by the node. Value is in the chain's smallest unit (Wei), never a float.
type LedgerTransaction struct {
	Hash      string
	Recipient string
	Value     *big.Int
	Succeeded bool
}

// FeePolicy holds the expected recipient and the exact platform fee in Wei.
// Built once from configuration and passed into the verifier by reference.
type FeePolicy struct {
	AdminWallet string
	FeeWei      *big.Int
}

// ValidRecipient reports whether the transfer went to the admin wallet.
// Hex addresses compare case-insensitively (mixed case is only a checksum).
func (p FeePolicy) ValidRecipient(recipient string) bool {
	return strings.EqualFold(recipient, p.AdminWallet)
}

// ValidAmount reports whether the transferred value equals the fee exactly.
// Under- and overpayment both fail; there is no tolerance.
func (p FeePolicy) ValidAmount(value *big.Int) bool {
	return value != nil && p.FeeWei != nil && value.Cmp(p.FeeWei) == 0
}

// IsValidPayment combines both checks.
func (p FeePolicy) IsValidPayment(recipient string, value *big.Int) bool {
	return p.ValidRecipient(recipient) && p.ValidAmount(value)
}

// Claim outcomes recorded in the payment_claims audit trail.
const (
	ClaimAccepted  = "accepted"
	ClaimDuplicate = "duplicate"
	ClaimRejected  = "rejected"
)

// PaymentClaim is one verification attempt for a job. Claims are transient to
// the workflow; they are persisted only as an audit record.
type PaymentClaim struct {
	JobID     string
	TxHash    string
	Outcome   string
	Reason    string
	ClaimedAt time.Time
}
