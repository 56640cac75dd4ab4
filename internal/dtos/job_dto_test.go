package dtos

import (
	"encoding/json"
	"testing"

	"github.com/justsurfingit/superio-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostedJob_JSON(t *testing.T) {
	job := models.NewJob(models.Document{"title": "Go Developer", "salary": 50000})
	job.ID = "0b8e4c8e-6f51-4c8f-9d8e-2f5b2a7c1a01"

	out, err := json.Marshal(PostedJob{Job: *job, Applicants: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"0b8e4c8e-6f51-4c8f-9d8e-2f5b2a7c1a01","title":"Go Developer","salary":50000,"applicants":3}`, string(out))

	var back PostedJob
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, job.ID, back.ID)
	assert.EqualValues(t, 3, back.Applicants)
	assert.NotContains(t, back.Document, "applicants")
	assert.Equal(t, "Go Developer", back.Title)
}

func TestJobListQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, JobListQuery{}.Offset())
	assert.Equal(t, 20, JobListQuery{Page: 2, Size: 10}.Offset())
	assert.Equal(t, 10000000000, JobListQuery{Page: 1000000, Size: 10000}.Offset())
}
