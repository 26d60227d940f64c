package handler

import "github.com/chainboard/job-board-api/internal/core/domain"

func toJobResponse(j *domain.JobPosting) jobResponse {
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	tags := j.Tags
	if tags == nil {
		tags = []string{}
	}
	return jobResponse{
		ID:               j.ID,
		Title:            j.Title,
		Description:      j.Description,
		Skills:           skills,
		Compensation:     j.Compensation,
		Location:         j.Location,
		Tags:             tags,
		PostedBy:         j.PostedBy,
		PosterEmail:      j.PosterEmail,
		PaymentConfirmed: j.PaymentConfirmed,
		PaymentTxHash:    j.PaymentTxHash,
		CreatedAt:        j.CreatedAt.UTC(),
	}
}

func toJobListResponse(jobs []*domain.JobPosting) jobListResponse {
	items := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		items[i] = toJobResponse(j)
	}
	return jobListResponse{Jobs: items, Count: len(items)}
}
