package models

import (
	"encoding/json"
	"time"
)

// Document is a body as the client submitted it. It is stored in a jsonb
// column and rendered back unchanged.
type Document map[string]interface{}

// String returns the value under key when it is a string.
func (d Document) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// clone copies d without the server-owned "_id" key.
func (d Document) clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}

// Job is a posting on the board. Title, Category and HREmail are copied out
// of Document so they can be filtered and indexed; HREmail identifies the owner.
type Job struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title    string   `gorm:"index"`
	Category string   `gorm:"index"`
	HREmail  string   `gorm:"column:hr_email;index"`
	Document Document `gorm:"type:jsonb;serializer:json"`
}

// NewJob builds a job from a submitted body.
func NewJob(doc Document) *Job {
	job := &Job{Document: doc.clone()}
	job.Project()
	return job
}

// Project refreshes the indexed columns from Document. Values that are not
// strings leave the column empty.
func (j *Job) Project() {
	j.Title = j.Document.String("title")
	j.Category = j.Document.String("category")
	j.HREmail = j.Document.String("hr_email")
}

// MarshalJSON renders the submitted document with its "_id".
func (j Job) MarshalJSON() ([]byte, error) {
	return json.Marshal(withID(j.Document, j.ID))
}

func (j *Job) UnmarshalJSON(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	j.ID = doc.String("_id")
	j.Document = doc.clone()
	j.Project()
	return nil
}

// Category is a read-only label used to group jobs.
type Category struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"_id"`
	Category string `gorm:"uniqueIndex;not null" json:"category"`
}

// Application is a candidate's submission against a job. It is never
// mutated after creation. JobID and Email are copied out of Document.
type Application struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time

	JobID    string   `gorm:"type:uuid;index;not null"`
	Email    string   `gorm:"index"`
	Document Document `gorm:"type:jsonb;serializer:json"`
}

// NewApplication builds an application from a submitted body. jobID is the
// canonical form of the body's job_id; the body keeps the submitted spelling.
func NewApplication(doc Document, jobID string) *Application {
	app := &Application{Document: doc.clone(), JobID: jobID}
	app.Email = app.Document.String("email")
	return app
}

// TableName keeps the applications in the table the API has always called applyJobs.
func (Application) TableName() string {
	return "apply_jobs"
}

func (a Application) MarshalJSON() ([]byte, error) {
	return json.Marshal(withID(a.Document, a.ID))
}

func (a *Application) UnmarshalJSON(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	a.ID = doc.String("_id")
	a.Document = doc.clone()
	a.JobID = a.Document.String("job_id")
	a.Email = a.Document.String("email")
	return nil
}

func withID(doc Document, id string) map[string]interface{} {
	out := make(map[string]interface{}, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	out["_id"] = id
	return out
}
