package models

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	before := time.Now().UnixMilli()
	response := NewResponse(http.StatusCreated, map[string]string{"key": "value"}, "Resource Created")
	after := time.Now().UnixMilli()

	assert.Equal(t, http.StatusCreated, response.Code)
	assert.Equal(t, map[string]string{"key": "value"}, response.Data)
	assert.Equal(t, "Resource Created", response.Text)
	assert.Equal(t, 2, response.Version)
	assert.GreaterOrEqual(t, response.CurrentTime, before)
	assert.LessOrEqual(t, response.CurrentTime, after)
}

func TestNewOKResponse(t *testing.T) {
	response := NewOKResponse(NewHeadlineData(0, 16500, 0))

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)

	raw, err := json.Marshal(response)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, float64(2), decoded["version"])
	data := decoded["data"].(map[string]interface{})
	tx := data["transactions"].(map[string]interface{})
	assert.Equal(t, "16.50 k", tx["label"])
}

func TestErrorEnvelopeOmitsData(t *testing.T) {
	raw, err := json.Marshal(NewResponse(http.StatusNotFound, nil, "resource not found"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"data"`)
}
