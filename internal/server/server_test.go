package server

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	accountservice "github.com/smallbiznis/teleforge/internal/account/service"
	"github.com/smallbiznis/teleforge/internal/clock"
	"github.com/smallbiznis/teleforge/internal/config"
	generatorservice "github.com/smallbiznis/teleforge/internal/generator/service"
	"github.com/smallbiznis/teleforge/internal/observability"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	holder, err := config.NewGeneratorConfigHolder(log)
	require.NoError(t, err)

	engine := NewEngine(log, observability.NewMetrics())
	return NewServer(ServerParams{
		Gin:        engine,
		Cfg:        config.Config{Environment: "test"},
		GenCfg:     holder,
		AccountSvc: accountservice.NewService(accountservice.ServiceParam{Log: log, GenID: node}),
		GenSvc:     generatorservice.NewService(generatorservice.ServiceParam{Log: log}),
		Clk:        clock.NewFakeClock(time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)),
		Log:        log,
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

type summaryEnvelope struct {
	Data struct {
		ID       string `json:"id"`
		Accounts int    `json:"accounts"`
		Records  int    `json:"records"`
		Churned  int    `json:"churned"`
		Seed     uint64 `json:"seed"`
	} `json:"data"`
}

func createDataset(t *testing.T, s *Server, body map[string]any) summaryEnvelope {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/v1/datasets", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env summaryEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data.ID)
	return env
}

func TestCreateAndDownloadDataset(t *testing.T) {
	s := newTestServer(t)

	env := createDataset(t, s, map[string]any{
		"seed":        7,
		"accounts":    20,
		"start_month": "2022-01",
		"end_month":   "2023-12",
	})
	assert.Equal(t, 20, env.Data.Accounts)
	assert.Equal(t, uint64(7), env.Data.Seed)
	assert.Greater(t, env.Data.Records, 0)

	w := doJSON(t, s, http.MethodGet, "/v1/datasets/"+env.Data.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/v1/datasets/"+env.Data.ID+"/usage.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "phone_usage_data.csv")

	rows, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Greater(t, len(rows), 1)
	assert.Equal(t, "USERID", rows[0][0])
	assert.Equal(t, env.Data.Records, len(rows)-1)

	w = doJSON(t, s, http.MethodGet, "/v1/datasets/"+env.Data.ID+"/churn.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/v1/datasets/"+env.Data.ID+"/accounts.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/v1/datasets/"+env.Data.ID+"/inserts.sql", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "INSERT INTO account_attributes_monthly")
}

func TestCreateDatasetIsDeterministic(t *testing.T) {
	s := newTestServer(t)

	body := map[string]any{"seed": 99, "accounts": 10, "start_month": "2023-01", "end_month": "2023-12"}
	first := createDataset(t, s, body)
	second := createDataset(t, s, body)

	assert.NotEqual(t, first.Data.ID, second.Data.ID)
	assert.Equal(t, first.Data.Records, second.Data.Records)
	assert.Equal(t, first.Data.Churned, second.Data.Churned)
}

func TestCreateDatasetRejectsInvalidConfig(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/v1/datasets", map[string]any{"accounts": -5})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestGetDatasetNotFound(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/v1/datasets/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListDatasetsPagination(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 3; i++ {
		createDataset(t, s, map[string]any{
			"seed":        uint64(i + 1),
			"accounts":    5,
			"start_month": "2024-01",
			"end_month":   "2024-06",
		})
	}

	w := doJSON(t, s, http.MethodGet, "/v1/datasets?page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Data     []json.RawMessage `json:"data"`
		PageInfo struct {
			NextPageToken string `json:"next_page_token"`
			HasMore       bool   `json:"has_more"`
		} `json:"page_info"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Data, 2)
	assert.True(t, page.PageInfo.HasMore)

	next := fmt.Sprintf("/v1/datasets?page_size=2&page_token=%s", page.PageInfo.NextPageToken)
	w = doJSON(t, s, http.MethodGet, next, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Data, 1)
	assert.False(t, page.PageInfo.HasMore)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
