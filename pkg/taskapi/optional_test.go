package taskapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTaskRequest_AbsentFieldsOmitted(t *testing.T) {
	req := UpdateTaskRequest{
		Status: Some(TaskStatusDone),
	}

	payload, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"done"}`, string(payload))
}

func TestUpdateTaskRequest_NullSerializesAsNull(t *testing.T) {
	req := UpdateTaskRequest{
		AssigneeID: Null[string](),
	}

	payload, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"assignee_id":null}`, string(payload))
}

func TestOptional_UnmarshalTriState(t *testing.T) {
	var req UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New","description":null}`), &req))

	title, ok := req.Title.Get()
	assert.True(t, ok)
	assert.Equal(t, "New", title)

	assert.True(t, req.Description.IsSet())
	assert.True(t, req.Description.IsNull())

	assert.False(t, req.Status.IsSet())
	assert.False(t, req.AssigneeID.IsSet())
}
