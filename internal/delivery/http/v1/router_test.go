package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"career-portal-backend/config"
	v1 "career-portal-backend/internal/delivery/http/v1"
	"career-portal-backend/internal/repository/cache"
	"career-portal-backend/internal/repository/docstore"
	"career-portal-backend/internal/repository/memory"
	"career-portal-backend/internal/usecase"
	"career-portal-backend/pkg/antivirus"
	"career-portal-backend/pkg/jobscraper"
	"career-portal-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
}

func newTestRouter(t *testing.T, scanner antivirus.Scanner) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AuthJWTSecret:            testSecret,
		AllowedOrigins:           []string{"http://localhost:3000"},
		RateLimitWindowSeconds:   60,
		RateLimitGlobalThreshold: 1000,
		RateLimitAIThreshold:     2,
	}
	validate := validation.New()
	gw := docstore.NewGateway(memory.NewDocumentStore())

	return v1.NewRouter(v1.RouterDeps{
		AccountUC: usecase.NewAccountUsecase(gw, nil, validate),
		ProfileUC: usecase.NewProfileUsecase(gw, validate),
		SetupUC:   usecase.NewSetupUsecase(gw, validate),
		ResumeUC:  usecase.NewResumeUsecase(gw, validate),
		AIUC:      usecase.NewAIUsecase(nil, gw, validate),
		JobUC: usecase.NewJobUsecase(
			jobscraper.New("", time.Second),
			cache.NewJobCache(nil, time.Minute, 10),
			memory.NewJobSearchRepository(),
			validate,
		),
		HealthUC: usecase.NewHealthUsecase(nil),
		Scanner:  scanner,
		Config:   cfg,
	})
}

func token(t *testing.T, uid string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   uid,
		"email": uid + "@example.com",
		"name":  "Test " + uid,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func do(r http.Handler, method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestHealthAndMiddleware(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	env := decode(t, w, nil)
	assert.True(t, env.Success)
	assert.Equal(t, w.Header().Get("X-Request-ID"), env.RequestID)
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t, nil)

	t.Run("Should reject a missing token", func(t *testing.T) {
		w := do(r, http.MethodGet, "/v1/account", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
		s, err := tok.SignedString([]byte("wrong"))
		require.NoError(t, err)

		w := do(r, http.MethodGet, "/v1/account", s, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should not let a crafted uid write another user's profile", func(t *testing.T) {
		victim := token(t, "victim")
		w := do(r, http.MethodPatch, "/v1/account", victim, map[string]string{"summary": "Mine"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = do(r, http.MethodPatch, "/v1/account", token(t, "victim/profile/details"), map[string]string{"summary": "Overwritten"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = do(r, http.MethodGet, "/v1/profile", victim, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"summary":"Mine"`)
		assert.NotContains(t, w.Body.String(), "Overwritten")
	})
}

func TestAccountAndProfileRoutes(t *testing.T) {
	r := newTestRouter(t, nil)
	tok := token(t, "u1")

	w := do(r, http.MethodPost, "/v1/account", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodPut, "/v1/profile", tok, map[string]any{
		"personalInfo":   map[string]any{"fullName": "Jane Doe", "jobTitle": "Developer"},
		"skills":         []string{"Go", "go", "SQL"},
		"jobPreferences": map[string]any{"desiredJobTitle": "Lead Dev"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	t.Run("Should sync identity fields onto the account", func(t *testing.T) {
		var acc struct {
			DisplayName string `json:"displayName"`
			JobTitle    string `json:"jobTitle"`
		}
		decode(t, do(r, http.MethodGet, "/v1/account", tok, nil), &acc)
		assert.Equal(t, "Jane Doe", acc.DisplayName)
		assert.Equal(t, "Lead Dev", acc.JobTitle)
	})

	t.Run("Should return edit mode with template rows", func(t *testing.T) {
		var p struct {
			Skills    []string         `json:"skills"`
			Education []map[string]any `json:"education"`
		}
		w := do(r, http.MethodGet, "/v1/profile?mode=edit", tok, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &p)
		assert.Equal(t, []string{"Go", "SQL"}, p.Skills)
		assert.Len(t, p.Education, 1)
	})

	t.Run("Should reject an unknown mode", func(t *testing.T) {
		w := do(r, http.MethodGet, "/v1/profile?mode=raw", tok, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should refuse a duplicate skill", func(t *testing.T) {
		w := do(r, http.MethodPost, "/v1/profile/skills", tok, map[string]string{"skill": "SQL"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Should remove a skill by index", func(t *testing.T) {
		var p struct {
			Skills []string `json:"skills"`
		}
		w := do(r, http.MethodDelete, "/v1/profile/skills/0", tok, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		decode(t, w, &p)
		assert.Equal(t, []string{"SQL"}, p.Skills)
	})

	t.Run("Should reject a non-numeric index", func(t *testing.T) {
		w := do(r, http.MethodDelete, "/v1/profile/skills/first", tok, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSetupRoutes(t *testing.T) {
	r := newTestRouter(t, nil)
	tok := token(t, "u2")

	var state struct {
		Step     int    `json:"step"`
		StepName string `json:"stepName"`
	}
	w := do(r, http.MethodGet, "/v1/setup/employee", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &state)
	assert.Equal(t, 0, state.Step)

	w = do(r, http.MethodPost, "/v1/setup/employee/next", tok, map[string]any{
		"step": 0,
		"data": map[string]any{"fullName": "Sam Rivera"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &state)
	assert.Equal(t, 1, state.Step)

	w = do(r, http.MethodPost, "/v1/setup/employee/next", tok, map[string]any{"step": 0, "data": map[string]any{}})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodGet, "/v1/setup/admin", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumeRoutes(t *testing.T) {
	r := newTestRouter(t, nil)
	tok := token(t, "u3")

	var rec struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Summary string `json:"summary"`
	}
	w := do(r, http.MethodPost, "/v1/resumes", tok, map[string]any{"title": "Backend CV"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &rec)
	require.NotEmpty(t, rec.ID)

	w = do(r, http.MethodPut, "/v1/resumes/"+rec.ID+"/summary", tok, map[string]string{"summary": "  Ships Go services.  "})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &rec)
	assert.Equal(t, "Ships Go services.", rec.Summary)

	w = do(r, http.MethodPut, "/v1/resumes/"+rec.ID+"/hobbies", tok, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/v1/resumes/"+rec.ID+"/export", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="Backend_CV.xlsx"`)

	w = do(r, http.MethodDelete, "/v1/resumes/"+rec.ID, tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/v1/resumes/"+rec.ID, tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAIRoutes(t *testing.T) {
	r := newTestRouter(t, nil)
	tok := token(t, "u4")

	t.Run("Should score answers without the model", func(t *testing.T) {
		var res struct {
			Correct int `json:"correct"`
		}
		w := do(r, http.MethodPost, "/v1/ai/mcq/score", tok, map[string]any{
			"questions": []map[string]any{{"question": "2+2", "options": []string{"3", "4"}, "answer": "4"}},
			"answers":   []string{"4"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		decode(t, w, &res)
		assert.Equal(t, 1, res.Correct)
	})

	t.Run("Should report AI as unavailable then rate limit", func(t *testing.T) {
		body := map[string]string{"jobTitle": "Developer"}
		for i := 0; i < 2; i++ {
			w := do(r, http.MethodPost, "/v1/ai/summaries", tok, body)
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		}
		w := do(r, http.MethodPost, "/v1/ai/summaries", tok, body)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))

		// other users keep their own budget
		w = do(r, http.MethodPost, "/v1/ai/summaries", token(t, "u5"), body)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestJobRoutes(t *testing.T) {
	r := newTestRouter(t, nil)
	tok := token(t, "u6")

	var res struct {
		Count    int  `json:"count"`
		Fallback bool `json:"fallback"`
	}
	w := do(r, http.MethodPost, "/v1/jobs/search", tok, map[string]any{"searchTerm": "Go developer"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &res)
	assert.True(t, res.Fallback)
	assert.Positive(t, res.Count)

	var recent []map[string]any
	decode(t, do(r, http.MethodGet, "/v1/jobs/searches", tok, nil), &recent)
	assert.Len(t, recent, 1)

	w = do(r, http.MethodPost, "/v1/jobs/search", tok, map[string]any{"searchTerm": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/v1/jobs/export", tok, map[string]any{"searchTerm": "Go developer"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
}

type stubScanner struct {
	infected bool
}

func (s stubScanner) Scan(context.Context, string, []byte) (antivirus.Result, error) {
	if s.infected {
		return antivirus.Result{Infected: true, ThreatName: "Eicar"}, antivirus.ErrInfected
	}
	return antivirus.Result{}, nil
}

func upload(r http.Handler, path, bearer, field, filename string, data []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile(field, filename)
	_, _ = fw.Write(data)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+bearer)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploads(t *testing.T) {
	t.Run("Should reject infected files before they reach the usecase", func(t *testing.T) {
		r := newTestRouter(t, stubScanner{infected: true})
		w := upload(r, "/v1/account/photo", token(t, "u7"), "photo", "me.png", []byte("fake"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "virus scanner")
	})

	t.Run("Should pass clean files through", func(t *testing.T) {
		r := newTestRouter(t, stubScanner{})
		// photo storage is not configured in this router
		w := upload(r, "/v1/account/photo", token(t, "u7"), "photo", "me.png", []byte("fake"))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Should require the file field", func(t *testing.T) {
		r := newTestRouter(t, nil)
		w := upload(r, "/v1/ai/profile-import", token(t, "u7"), "resume", "cv.txt", []byte("Jane"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
