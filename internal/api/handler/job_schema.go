package handler

import "time"

// --- Request types ---

type createJobRequest struct {
	Title        string   `json:"title"        validate:"required"`
	Description  string   `json:"description"  validate:"required"`
	Skills       []string `json:"skills"       validate:"required,min=1"`
	Compensation string   `json:"compensation" validate:"required"`
	Location     string   `json:"location"`
	Tags         []string `json:"tags"`
}

// --- Response types ---

type jobResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Skills           []string  `json:"skills"`
	Compensation     string    `json:"compensation"`
	Location         string    `json:"location"`
	Tags             []string  `json:"tags"`
	PostedBy         string    `json:"postedBy"`
	PosterEmail      string    `json:"posterEmail"`
	PaymentConfirmed bool      `json:"paymentConfirmed"`
	PaymentTxHash    string    `json:"paymentTxHash,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type jobListResponse struct {
	Jobs  []jobResponse `json:"jobs"`
	Count int           `json:"count"`
}
