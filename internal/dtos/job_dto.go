package dtos

import (
	"encoding/json"

	"github.com/justsurfingit/superio-server/internal/models"
)

// JobListQuery is the paging and search window for GET /jobs.
// Size 0 means no limit. The bounds keep Page*Size well inside int.
type JobListQuery struct {
	Page           int    `form:"page" binding:"min=0,max=1000000"`
	Size           int    `form:"size" binding:"min=0,max=10000"`
	Search         string `form:"search"`
	CategorySearch string `form:"categorySearch"`
}

// Offset is the number of rows skipped before the page starts.
func (q JobListQuery) Offset() int {
	return q.Page * q.Size
}

// PostedJob is a job as seen by its owner, with the number of applications received.
type PostedJob struct {
	models.Job
	Applicants int64 `json:"applicants"`
}

// MarshalJSON renders the job document with an "applicants" key.
func (p PostedJob) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Document)+2)
	for k, v := range p.Document {
		out[k] = v
	}
	out["_id"] = p.ID
	out["applicants"] = p.Applicants
	return json.Marshal(out)
}

func (p *PostedJob) UnmarshalJSON(data []byte) error {
	if err := p.Job.UnmarshalJSON(data); err != nil {
		return err
	}
	n, _ := p.Document["applicants"].(float64)
	p.Applicants = int64(n)
	delete(p.Document, "applicants")
	return nil
}

// InsertResult mirrors the acknowledgement clients already parse.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool   `json:"acknowledged"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// UploadRequest is the body of POST /: a data URI or remote URL of the logo.
type UploadRequest struct {
	CompanyLogo string `json:"company_logo" binding:"required"`
}
