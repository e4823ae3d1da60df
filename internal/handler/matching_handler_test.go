package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	"github.com/noah-isme/tutor-match-api/internal/models"
	appErrors "github.com/noah-isme/tutor-match-api/pkg/errors"
)

type matchingServiceMock struct {
	findResp    []models.TutorCandidate
	findErr     error
	previewResp []models.TutorCandidate
	previewErr  error
	lastOpts    dto.MatchOptions
	lastID      string
	lastPreview dto.PreviewMatchRequest
}

func (m *matchingServiceMock) FindAvailableTutors(ctx context.Context, contractID string, opts dto.MatchOptions) ([]models.TutorCandidate, error) {
	m.lastID = contractID
	m.lastOpts = opts
	return m.findResp, m.findErr
}

func (m *matchingServiceMock) PreviewAvailableTutors(ctx context.Context, req dto.PreviewMatchRequest, opts dto.MatchOptions) ([]models.TutorCandidate, error) {
	m.lastPreview = req
	m.lastOpts = opts
	return m.previewResp, m.previewErr
}

func TestMatchingHandlerFindAvailableTutors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &matchingServiceMock{
		findResp: []models.TutorCandidate{{Tutor: models.Tutor{ID: "tutor-1"}}},
	}
	handler := NewMatchingHandler(mockSvc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/contracts/contract-1/available-tutors?sortByRating=true", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "contract-1"}}

	handler.FindAvailableTutors(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "contract-1", mockSvc.lastID)
	assert.True(t, mockSvc.lastOpts.SortByRating)
	assert.False(t, mockSvc.lastOpts.SortByDistance)
}

func TestMatchingHandlerFindAvailableTutorsNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &matchingServiceMock{findErr: appErrors.ErrNotFound}
	handler := NewMatchingHandler(mockSvc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/contracts/missing/available-tutors", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.FindAvailableTutors(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMatchingHandlerPreview(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &matchingServiceMock{previewResp: []models.TutorCandidate{}}
	handler := NewMatchingHandler(mockSvc, nil)

	payload := dto.PreviewMatchRequest{
		Schedule: dto.SchedulePayload{
			Days:          []string{"MONDAY"},
			StartTime:     "09:00",
			EndTime:       "10:00",
			EffectiveFrom: "2024-01-01",
		},
		Mode:    "online",
		ChildID: "child-1",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/matching/preview?sortByDistance=true", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Preview(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "child-1", mockSvc.lastPreview.ChildID)
	assert.True(t, mockSvc.lastOpts.SortByDistance)
}

func TestMatchingHandlerPreviewInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMatchingHandler(&matchingServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/matching/preview", bytes.NewBufferString(`{"mode":"online"`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Preview(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
