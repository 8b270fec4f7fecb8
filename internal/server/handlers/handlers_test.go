package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/repository/kv"
	"github.com/mamadbah2/herdbook/internal/service/animals"
	"github.com/mamadbah2/herdbook/internal/service/pastures"
	"github.com/mamadbah2/herdbook/internal/service/reporting"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAssistant struct {
	advice    string
	vision    models.VisionResult
	err       error
	lastQuery string
	lastImage string
}

func (f *fakeAssistant) Advise(_ context.Context, query, _ string) (string, error) {
	f.lastQuery = query
	return f.advice, f.err
}

func (f *fakeAssistant) AnalyzeImage(_ context.Context, _, data string) (models.VisionResult, error) {
	f.lastImage = data
	return f.vision, f.err
}

type stubSummarizer struct {
	sum reporting.Summary
	err error
}

func (s stubSummarizer) Summary(context.Context) (reporting.Summary, error) { return s.sum, s.err }

func post(t *testing.T, handler gin.HandlerFunc, route, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	r := gin.New()
	r.POST(route, handler)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func herd() []models.Animal {
	return []models.Animal{{ID: "1", Name: "Mimoso", Breed: models.BreedNelore, Sex: models.SexMale, WeightKg: 450, Status: models.StatusHealthy}}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{models.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", models.ErrInvalidArgument), http.StatusBadRequest},
		{models.ErrInsufficientCapacity, http.StatusConflict},
		{fmt.Errorf("read: %w", models.ErrStoreCorrupt), http.StatusInternalServerError},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		respondError(c, zap.New(core), "boom", fmt.Errorf("decode animals_db: %w", models.ErrStoreCorrupt))
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "animals_db")
	require.Equal(t, 1, logs.FilterMessage("boom").Len())
	assert.Equal(t, zap.ErrorLevel, logs.All()[0].Level)
}

func TestVisionAppliesAnalysis(t *testing.T) {
	weight := 512.0
	assistant := &fakeAssistant{vision: models.VisionResult{Breed: "Angus", EstimatedWeight: &weight, HealthNotes: "alert"}}
	svc := animals.NewService(kv.NewMemoryBackend(), herd(), nil)
	h := NewAnimalHandler(svc, assistant, nil)

	rec := post(t, h.Vision, "/animals/:id/vision", "/animals/1/vision", map[string]any{"mediaType": "image/jpeg", "image": "aGVsbG8="})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "aGVsbG8=", assistant.lastImage)

	var resp visionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.BreedAngus, resp.Animal.Breed)
	assert.InDelta(t, 512.0, resp.Animal.WeightKg, 1e-9)
	require.NotEmpty(t, resp.Animal.History)
	assert.Equal(t, models.HistoryWeight, resp.Animal.History[0].Kind)
	assert.Equal(t, "alert", resp.Analysis.HealthNotes)
}

func TestVisionUnknownAnimalSkipsAssistant(t *testing.T) {
	assistant := &fakeAssistant{}
	h := NewAnimalHandler(animals.NewService(kv.NewMemoryBackend(), herd(), nil), assistant, nil)

	rec := post(t, h.Vision, "/animals/:id/vision", "/animals/404/vision", map[string]any{"image": "aGVsbG8="})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, assistant.lastImage)
}

func TestVisionAssistantFailure(t *testing.T) {
	assistant := &fakeAssistant{err: errors.New("upstream 529")}
	h := NewAnimalHandler(animals.NewService(kv.NewMemoryBackend(), herd(), nil), assistant, nil)

	rec := post(t, h.Vision, "/animals/:id/vision", "/animals/1/vision", map[string]any{"image": "aGVsbG8="})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestVisionRequiresImage(t *testing.T) {
	h := NewAnimalHandler(animals.NewService(kv.NewMemoryBackend(), herd(), nil), &fakeAssistant{}, nil)
	rec := post(t, h.Vision, "/animals/:id/vision", "/animals/1/vision", map[string]any{"mediaType": "image/png"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdvice(t *testing.T) {
	assistant := &fakeAssistant{advice: "Wean at 7 months."}
	h := NewInsightsHandler(stubSummarizer{}, assistant, nil)

	rec := post(t, h.Advice, "/assistant/advice", "/assistant/advice", map[string]any{"query": "when to wean?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answer":"Wean at 7 months."}`, rec.Body.String())
	assert.Equal(t, "when to wean?", assistant.lastQuery)

	rec = post(t, h.Advice, "/assistant/advice", "/assistant/advice", map[string]any{"context": "no query"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdviceDisabled(t *testing.T) {
	h := NewInsightsHandler(stubSummarizer{}, nil, nil)
	rec := post(t, h.Advice, "/assistant/advice", "/assistant/advice", map[string]any{"query": "q"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSummaryError(t *testing.T) {
	h := NewInsightsHandler(stubSummarizer{err: fmt.Errorf("read: %w", models.ErrStoreCorrupt)}, nil, nil)

	r := gin.New()
	r.GET("/summary", h.Summary)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMoveRequiresAmount(t *testing.T) {
	svc := pastures.NewService(kv.NewMemoryBackend(), []models.Pasture{
		{ID: "A", Name: "Sede A", Capacity: 25, Current: 20, Status: models.PastureOccupied},
		{ID: "B", Name: "Sede B", Capacity: 20, Status: models.PastureResting},
	}, nil)
	h := NewPastureHandler(svc, nil)

	rec := post(t, h.Move, "/pastures/move", "/pastures/move", map[string]any{"originId": "A", "destId": "B"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, all[0].Current)

	rec = post(t, h.Move, "/pastures/move", "/pastures/move", map[string]any{"originId": "A", "destId": "B", "amount": 0})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
