package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	authdomain "github.com/majilabs/oasis/internal/auth/domain"
	authrepository "github.com/majilabs/oasis/internal/auth/repository"
	authservice "github.com/majilabs/oasis/internal/auth/service"
	"github.com/majilabs/oasis/internal/config"
	"github.com/majilabs/oasis/internal/insight"
	recommendationservice "github.com/majilabs/oasis/internal/recommendation/service"
	reservoirdomain "github.com/majilabs/oasis/internal/reservoir/domain"
	reservoirrepository "github.com/majilabs/oasis/internal/reservoir/repository"
	reservoirservice "github.com/majilabs/oasis/internal/reservoir/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubInsightClient struct {
	insight string
	err     error
}

func (s *stubInsightClient) Generate(ctx context.Context, prompt string) (string, error) {
	return s.insight, s.err
}

type testServer struct {
	srv *Server
	db  *gorm.DB
}

func newTestServer(t *testing.T, insights insight.Client) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&reservoirdomain.Reservoir{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	users, sessions := authrepository.New(db)
	authsvc := authservice.New(log, users, sessions, node)

	reservoirSvc := reservoirservice.New(reservoirservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Repo:  reservoirrepository.Provide(),
	})

	recommendSvc := recommendationservice.New(recommendationservice.Params{
		Log:        log,
		Reservoirs: reservoirSvc,
		Insights:   insights,
	})

	cfg := config.Config{Environment: "test"}
	engine := NewEngine(cfg, nil)
	srv := NewServer(ServerParams{
		Gin:          engine,
		Cfg:          cfg,
		DB:           db,
		Log:          log,
		Authsvc:      authsvc,
		ReservoirSvc: reservoirSvc,
		RecommendSvc: recommendSvc,
	})

	return &testServer{srv: srv, db: db}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) loginAs(t *testing.T, role string) string {
	t.Helper()

	email := role + "@waterapp.test"
	_, err := ts.srv.authsvc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		FullName: role + " account",
		Email:    email,
		Password: "longenough",
		Role:     role,
	})
	if err != nil && !errors.Is(err, authdomain.ErrUserExists) {
		t.Fatalf("create user: %v", err)
	}

	result, err := ts.srv.authsvc.Login(context.Background(), authdomain.LoginRequest{
		Email:    email,
		Password: "longenough",
	})
	require.NoError(t, err)
	return result.RawToken
}

func validReservoirBody() map[string]any {
	return map[string]any{
		"name":            "Ndakaini Dam",
		"county":          "Nairobi",
		"subCounty":       "Gatundu North",
		"ward":            "Ndakaini",
		"latitude":        -0.9833,
		"longitude":       36.8167,
		"totalCapacityM3": 70000000,
		"currentLevelM3":  49000000,
	}
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestSignupLoginAndMe(t *testing.T) {
	ts := newTestServer(t, &stubInsightClient{})

	rec := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"fullName": "Jane Mwangi",
		"email":    "jane@example.com",
		"password": "longenough",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var session struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decodeData(t, rec, &session)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "jane@example.com", session.User.Email)
	// Public signup never grants admin.
	assert.Equal(t, authdomain.RoleUser, session.User.Role)

	rec = ts.do(t, http.MethodGet, "/api/auth/me", session.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Email string `json:"email"`
	}
	decodeData(t, rec, &me)
	assert.Equal(t, "jane@example.com", me.Email)
}

func TestLoginFailureShape(t *testing.T) {
	ts := newTestServer(t, &stubInsightClient{})

	rec := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever1",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var payload struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "unauthorized", payload.Error.Type)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	ts := newTestServer(t, &stubInsightClient{})
	token := ts.loginAs(t, authdomain.RoleUser)

	rec := ts.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateReservoirRequiresAdmin(t *testing.T) {
	ts := newTestServer(t, &stubInsightClient{})

	// No token at all.
	rec := ts.do(t, http.MethodPost, "/api/reservoirs", "", validReservoirBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Regular users cannot write.
	userToken := ts.loginAs(t, authdomain.RoleUser)
	rec = ts.do(t, http.MethodPost, "/api/reservoirs", userToken, validReservoirBody())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var count int64
	require.NoError(t, ts.db.Model(&reservoirdomain.Reservoir{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestReservoirCRUD(t *testing.T) {
	ts := newTestServer(t, &stubInsightClient{})
	adminToken := ts.loginAs(t, authdomain.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/api/reservoirs", adminToken, validReservoirBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID                        string `json:"id"`
		WaterQuality              string `json:"waterQuality"`
		Status                    string `json:"status"`
		CurrentCapacityPercentage int    `json:"currentCapacityPercentage"`
		Severity                  string `json:"severity"`
	}
	decodeData(t, rec, &created)
	assert.Equal(t, "good", created.WaterQuality)
	assert.Equal(t, "operational", created.Status)
	assert.Equal(t, 70, created.CurrentCapacityPercentage)
	assert.Equal(t, "good", created.Severity)

	// Anyone can read.
	rec = ts.do(t, http.MethodGet, "/api/reservoirs/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/reservoirs/"+created.ID, adminToken, map[string]any{
		"currentLevelM3": 7000000,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated struct {
		CurrentCapacityPercentage int    `json:"currentCapacityPercentage"`
		Severity                  string `json:"severity"`
	}
	decodeData(t, rec, &updated)
	assert.Equal(t, 10, updated.CurrentCapacityPercentage)
	assert.Equal(t, "critical", updated.Severity)

	rec = ts.do(t, http.MethodDelete, "/api/reservoirs/"+created.ID, adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/reservoirs/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReservoirValidationPayload(t *testing.T) {
	ts := newTestServer(t, &stubInsightClient{})
	adminToken := ts.loginAs(t, authdomain.RoleAdmin)

	body := validReservoirBody()
	body["name"] = ""
	delete(body, "latitude")

	rec := ts.do(t, http.MethodPost, "/api/reservoirs", adminToken, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Field string `json:"field"`
				Code  string `json:"code"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "validation_error", payload.Error.Type)
	assert.NotEmpty(t, payload.Error.Errors)
}

func TestListAndQueryEndpoints(t *testing.T) {
	ts := newTestServer(t, &stubInsightClient{})
	adminToken := ts.loginAs(t, authdomain.RoleAdmin)

	first := validReservoirBody()
	rec := ts.do(t, http.MethodPost, "/api/reservoirs", adminToken, first)
	require.Equal(t, http.StatusCreated, rec.Code)

	second := validReservoirBody()
	second["name"] = "Garissa Reservoir"
	second["county"] = "Garissa"
	second["subCounty"] = "Garissa Township"
	second["ward"] = "Garissa Township"
	second["totalCapacityM3"] = 8000000
	second["currentLevelM3"] = 400000
	second["status"] = "critical"
	rec = ts.do(t, http.MethodPost, "/api/reservoirs", adminToken, second)
	require.Equal(t, http.StatusCreated, rec.Code)

	var list []struct {
		Name string `json:"name"`
	}
	rec = ts.do(t, http.MethodGet, "/api/reservoirs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "Garissa Reservoir", list[0].Name)

	rec = ts.do(t, http.MethodGet, "/api/reservoirs/search?county=garissa", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Garissa Reservoir", list[0].Name)

	rec = ts.do(t, http.MethodGet, "/api/reservoirs/status/critical", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &list)
	assert.Len(t, list, 1)

	rec = ts.do(t, http.MethodGet, "/api/reservoirs/critical", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Garissa Reservoir", list[0].Name)

	var summary struct {
		TotalReservoirs int `json:"totalReservoirs"`
		AverageLevel    int `json:"averageLevel"`
		CriticalCount   int `json:"criticalCount"`
	}
	rec = ts.do(t, http.MethodGet, "/api/reservoirs/summary", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &summary)
	assert.Equal(t, 2, summary.TotalReservoirs)
	assert.Equal(t, 38, summary.AverageLevel) // round((70+5)/2)
	assert.Equal(t, 1, summary.CriticalCount)
}

func TestRecommendationsEndpoint(t *testing.T) {
	ts := newTestServer(t, &stubInsightClient{insight: "Stick with Ndakaini."})
	adminToken := ts.loginAs(t, authdomain.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/api/reservoirs", adminToken, validReservoirBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	// Requires authentication.
	rec = ts.do(t, http.MethodGet, "/api/reservoirs/recommendations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	userToken := ts.loginAs(t, authdomain.RoleUser)
	rec = ts.do(t, http.MethodGet, "/api/reservoirs/recommendations?location=nairobi", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Reservoirs []struct {
			Name string `json:"name"`
		} `json:"reservoirs"`
		AIInsights string `json:"aiInsights"`
		Message    string `json:"message"`
	}
	decodeData(t, rec, &resp)
	require.Len(t, resp.Reservoirs, 1)
	assert.Equal(t, "Stick with Ndakaini.", resp.AIInsights)
	assert.Equal(t, "Recommendations generated with AI insights", resp.Message)
}

func TestRecommendationsDegradeWhenInsightFails(t *testing.T) {
	ts := newTestServer(t, &stubInsightClient{err: errors.New("upstream down")})
	adminToken := ts.loginAs(t, authdomain.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/api/reservoirs", adminToken, validReservoirBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	userToken := ts.loginAs(t, authdomain.RoleUser)
	rec = ts.do(t, http.MethodGet, "/api/reservoirs/recommendations", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Reservoirs []struct {
			Name string `json:"name"`
		} `json:"reservoirs"`
		AIInsights string `json:"aiInsights"`
		Message    string `json:"message"`
	}
	decodeData(t, rec, &resp)
	require.Len(t, resp.Reservoirs, 1)
	assert.Empty(t, resp.AIInsights)
	assert.Equal(t, "Basic recommendations (AI temporarily unavailable)", resp.Message)
}

func TestRecommendationsNoMatches(t *testing.T) {
	ts := newTestServer(t, &stubInsightClient{insight: "unused"})
	userToken := ts.loginAs(t, authdomain.RoleUser)

	rec := ts.do(t, http.MethodGet, "/api/reservoirs/recommendations?location=atlantis", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Reservoirs []json.RawMessage `json:"reservoirs"`
		Message    string            `json:"message"`
	}
	decodeData(t, rec, &resp)
	assert.Empty(t, resp.Reservoirs)
	assert.Equal(t, "No reservoirs match your criteria", resp.Message)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &stubInsightClient{})

	rec := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
