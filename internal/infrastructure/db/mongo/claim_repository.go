package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chainboard/job-board-api/internal/core/domain"
)

const claimsCollection = "payment_claims"

// ClaimRepository persists payment claims to the payment_claims audit
// collection. The verifier treats insert failures as non-fatal.
type ClaimRepository struct {
	coll *mongo.Collection
}

func NewClaimRepository(db *mongo.Database) *ClaimRepository {
	return &ClaimRepository{coll: db.Collection(claimsCollection)}
}

func (r *ClaimRepository) Insert(ctx context.Context, claim *domain.PaymentClaim) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"job_id":      claim.JobID,
		"tx_hash":     claim.TxHash,
		"outcome":     claim.Outcome,
		"claimed_at":  claim.ClaimedAt,
		"recorded_at": time.Now().UTC(),
	}
	if claim.Reason != "" {
		doc["reason"] = claim.Reason
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}
