package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJob_RendersSubmittedDocument(t *testing.T) {
	body := `{"title":"Go Developer","category":"engineering","hr_email":"hr@acme.io",` +
		`"salary":50000,"responsibilities":"lead","location":"Dhaka","_id":"client-chosen"}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(body), &doc))
	job := NewJob(doc)
	job.ID = "0b8e4c8e-6f51-4c8f-9d8e-2f5b2a7c1a01"

	assert.Equal(t, "Go Developer", job.Title)
	assert.Equal(t, "engineering", job.Category)
	assert.Equal(t, "hr@acme.io", job.HREmail)
	assert.NotContains(t, job.Document, "_id")

	out, err := json.Marshal(job)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"0b8e4c8e-6f51-4c8f-9d8e-2f5b2a7c1a01","title":"Go Developer",`+
		`"category":"engineering","hr_email":"hr@acme.io","salary":50000,`+
		`"responsibilities":"lead","location":"Dhaka"}`, string(out))

	var back Job
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, job.ID, back.ID)
	assert.Equal(t, job.Document, back.Document)
	assert.Equal(t, "hr@acme.io", back.HREmail)
}

func TestJob_NonStringIndexedFields(t *testing.T) {
	job := NewJob(Document{"title": 42, "hr_email": nil})
	assert.Empty(t, job.Title)
	assert.Empty(t, job.HREmail)
	assert.Equal(t, 42, job.Document["title"])
}

func TestJob_EmptyDocument(t *testing.T) {
	out, err := json.Marshal(Job{ID: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"x"}`, string(out))
}

func TestApplication_KeepsSubmittedJobID(t *testing.T) {
	app := NewApplication(Document{
		"job_id":  "0B8E4C8E-6F51-4C8F-9D8E-2F5B2A7C1A01",
		"email":   "cand@mail.io",
		"details": map[string]interface{}{"years": 4.0},
	}, "0b8e4c8e-6f51-4c8f-9d8e-2f5b2a7c1a01")

	assert.Equal(t, "0b8e4c8e-6f51-4c8f-9d8e-2f5b2a7c1a01", app.JobID)
	assert.Equal(t, "cand@mail.io", app.Email)

	app.ID = "a1"
	out, err := json.Marshal(app)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"a1","job_id":"0B8E4C8E-6F51-4C8F-9D8E-2F5B2A7C1A01",`+
		`"email":"cand@mail.io","details":{"years":4}}`, string(out))
}
