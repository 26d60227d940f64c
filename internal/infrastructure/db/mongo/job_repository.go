package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chainboard/job-board-api/internal/core/domain"
	"github.com/chainboard/job-board-api/internal/core/ports"
)

const jobsCollection = "jobs"

type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{coll: db.Collection(jobsCollection)}
}

type mongoJob struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Title            string             `bson:"title"`
	Description      string             `bson:"description"`
	Skills           []string           `bson:"skills"`
	Compensation     string             `bson:"compensation"`
	Location         string             `bson:"location"`
	Tags             []string           `bson:"tags"`
	PostedBy         string             `bson:"posted_by"`
	PosterEmail      string             `bson:"poster_email"`
	PaymentConfirmed bool               `bson:"payment_confirmed"`
	PaymentTxHash    string             `bson:"payment_tx_hash,omitempty"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func (r *JobRepository) Create(ctx context.Context, job *domain.JobPosting) (*domain.JobPosting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoJob{
		Title:            job.Title,
		Description:      job.Description,
		Skills:           job.Skills,
		Compensation:     job.Compensation,
		Location:         job.Location,
		Tags:             job.Tags,
		PostedBy:         job.PostedBy,
		PosterEmail:      job.PosterEmail,
		PaymentConfirmed: job.PaymentConfirmed,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
	if doc.Skills == nil {
		doc.Skills = []string{}
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	created := *job
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	var mj mongoJob
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return mj.toDomain(), nil
}

// List returns postings matching the filter, newest first. String filters are
// case-insensitive partial matches, mirroring the feed's browse semantics.
func (r *JobRepository) List(ctx context.Context, filter ports.JobFilter) ([]*domain.JobPosting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Skill != "" {
		query["skills"] = bson.M{"$regex": filter.Skill, "$options": "i"}
	}
	if filter.Tag != "" {
		query["tags"] = bson.M{"$regex": filter.Tag, "$options": "i"}
	}
	if filter.Location != "" {
		query["location"] = bson.M{"$regex": filter.Location, "$options": "i"}
	}
	if filter.ConfirmedOnly {
		query["payment_confirmed"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer cur.Close(ctx)

	return decodeJobs(ctx, cur)
}

func (r *JobRepository) ListByPoster(ctx context.Context, userID string) ([]*domain.JobPosting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"posted_by": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}
	defer cur.Close(ctx)

	return decodeJobs(ctx, cur)
}

// ConfirmPayment flips payment_confirmed from false to true in a single
// document update, so two racing claims cannot both win. The filter includes
// payment_confirmed=false; a miss therefore means "absent or already
// confirmed", which the verifier disambiguates with FindByID.
func (r *JobRepository) ConfirmPayment(ctx context.Context, id, txHash string) (*domain.JobPosting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	filter := bson.M{"_id": oid, "payment_confirmed": false}
	update := bson.M{"$set": bson.M{
		"payment_confirmed": true,
		"payment_tx_hash":   txHash,
		"updated_at":        time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mj mongoJob
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	return mj.toDomain(), nil
}

// EnsureIndexes creates the indexes backing the browse and poster queries.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "posted_by", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "payment_confirmed", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeJobs(ctx context.Context, cur *mongo.Cursor) ([]*domain.JobPosting, error) {
	jobs := make([]*domain.JobPosting, 0)
	for cur.Next(ctx) {
		var mj mongoJob
		if err := cur.Decode(&mj); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, mj.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

func (mj mongoJob) toDomain() *domain.JobPosting {
	return &domain.JobPosting{
		ID:               mj.ID.Hex(),
		Title:            mj.Title,
		Description:      mj.Description,
		Skills:           mj.Skills,
		Compensation:     mj.Compensation,
		Location:         mj.Location,
		Tags:             mj.Tags,
		PostedBy:         mj.PostedBy,
		PosterEmail:      mj.PosterEmail,
		PaymentConfirmed: mj.PaymentConfirmed,
		PaymentTxHash:    mj.PaymentTxHash,
		CreatedAt:        mj.CreatedAt,
		UpdatedAt:        mj.UpdatedAt,
	}
}
