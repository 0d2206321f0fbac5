package server

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/smallbiznis/teleforge/internal/churn"
	"github.com/smallbiznis/teleforge/internal/export"
	generatordomain "github.com/smallbiznis/teleforge/internal/generator/domain"
	generatorservice "github.com/smallbiznis/teleforge/internal/generator/service"
	"github.com/smallbiznis/teleforge/pkg/db/pagination"
)

type createDatasetRequest struct {
	Seed                *uint64  `json:"seed"`
	Accounts            *int     `json:"accounts"`
	StartMonth          *string  `json:"start_month"`
	EndMonth            *string  `json:"end_month"`
	AnnualChurnRate     *float64 `json:"annual_churn_rate"`
	TesterRatio         *float64 `json:"tester_ratio"`
	IncludeChurnZeroRow *bool    `json:"include_churn_zero_row"`
	Workers             *int     `json:"workers"`
}

type datasetSummary struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Accounts   int       `json:"accounts"`
	Failed     int       `json:"failed"`
	Records    int       `json:"records"`
	Churned    int       `json:"churned"`
	StartMonth string    `json:"start_month"`
	EndMonth   string    `json:"end_month"`
	Seed       uint64    `json:"seed"`
}

func summarize(e *DatasetEntry) datasetSummary {
	return datasetSummary{
		ID:         e.ID,
		CreatedAt:  e.CreatedAt,
		Accounts:   len(e.Accounts),
		Failed:     len(e.Failed),
		Records:    len(e.Bundle.Usage),
		Churned:    len(e.Bundle.Churn),
		StartMonth: e.Config.StartMonth,
		EndMonth:   e.Config.EndMonth,
		Seed:       e.Config.Seed,
	}
}

func (s *Server) CreateDataset(c *gin.Context) {
	var req createDatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	cfg := s.genCfg.Current()
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}
	if req.Accounts != nil {
		cfg.Accounts = *req.Accounts
	}
	if req.StartMonth != nil {
		cfg.StartMonth = *req.StartMonth
	}
	if req.EndMonth != nil {
		cfg.EndMonth = *req.EndMonth
	}
	if req.AnnualChurnRate != nil {
		cfg.AnnualChurnRate = *req.AnnualChurnRate
	}
	if req.TesterRatio != nil {
		cfg.TesterRatio = *req.TesterRatio
	}
	if req.IncludeChurnZeroRow != nil {
		cfg.IncludeChurnZeroRow = *req.IncludeChurnZeroRow
	}
	if req.Workers != nil {
		cfg.Workers = *req.Workers
	}
	if err := cfg.Validate(); err != nil {
		AbortWithError(c, newValidationError("config", "invalid_config", err.Error()))
		return
	}

	accounts, err := s.accountSvc.Generate(cfg)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	lifecycles := make([]generatordomain.AccountLifecycle, 0, len(accounts))
	for _, a := range accounts {
		lifecycles = append(lifecycles, a.Lifecycle)
	}

	ds, err := s.genSvc.Dataset(c.Request.Context(), lifecycles, generatorservice.Options{
		Seed:                cfg.Seed,
		Params:              cfg.Signal,
		IncludeChurnZeroRow: cfg.IncludeChurnZeroRow,
		Workers:             cfg.Workers,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows := s.accountSvc.AttributeRows(accounts)

	failed := make(map[int64]string, len(ds.Failed))
	for id, ferr := range ds.Failed {
		failed[id] = ferr.Error()
	}

	now := s.clk.Now()
	entry := &DatasetEntry{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		CreatedAt: now,
		Accounts:  accounts,
		Bundle: export.Bundle{
			Usage:      ds.Records,
			Churn:      churn.FromAttributeRows(rows),
			Attributes: rows,
		},
		Failed: failed,
		Config: cfg,
	}
	s.datasets.Put(entry)

	s.log.Info("dataset created",
		zap.String("dataset_id", entry.ID),
		zap.Int("accounts", len(accounts)),
		zap.Int("records", len(entry.Bundle.Usage)),
	)
	c.JSON(http.StatusOK, gin.H{"data": summarize(entry)})
}

func (s *Server) ListDatasets(c *gin.Context) {
	var query pagination.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if query.PageSize <= 0 {
		query.PageSize = 10
	}
	if query.PageSize > 250 {
		query.PageSize = 250
	}

	afterID := ""
	if query.PageToken != "" {
		cursor, err := pagination.DecodeCursor(query.PageToken)
		if err != nil {
			AbortWithError(c, newValidationError("page_token", "invalid_page_token", "invalid page token"))
			return
		}
		afterID = cursor.ID
	}

	entries := s.datasets.List(afterID, query.PageSize)
	pageInfo, page := pagination.BuildCursorPageInfo(entries, int32(query.PageSize), func(e *DatasetEntry) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: e.ID})
		return token
	})

	summaries := make([]datasetSummary, 0, len(page))
	for _, e := range page {
		summaries = append(summaries, summarize(e))
	}
	c.JSON(http.StatusOK, gin.H{"data": summaries, "page_info": pageInfo})
}

func (s *Server) GetDataset(c *gin.Context) {
	entry, ok := s.datasets.Get(c.Param("id"))
	if !ok {
		AbortWithError(c, ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summarize(entry)})
}

func (s *Server) DownloadUsageCSV(c *gin.Context) {
	entry, ok := s.datasets.Get(c.Param("id"))
	if !ok {
		AbortWithError(c, ErrNotFound)
		return
	}
	serveFile(c, "text/csv", export.UsageFile)
	if err := export.WriteUsageCSV(c.Writer, entry.Bundle.Usage); err != nil {
		s.log.Error("stream usage csv", zap.Error(err))
	}
}

func (s *Server) DownloadChurnCSV(c *gin.Context) {
	entry, ok := s.datasets.Get(c.Param("id"))
	if !ok {
		AbortWithError(c, ErrNotFound)
		return
	}
	serveFile(c, "text/csv", export.ChurnFile)
	if err := export.WriteChurnCSV(c.Writer, entry.Bundle.Churn); err != nil {
		s.log.Error("stream churn csv", zap.Error(err))
	}
}

func (s *Server) DownloadAttributesCSV(c *gin.Context) {
	entry, ok := s.datasets.Get(c.Param("id"))
	if !ok {
		AbortWithError(c, ErrNotFound)
		return
	}
	serveFile(c, "text/csv", export.AttributesFile)
	if err := export.WriteAttributesCSV(c.Writer, entry.Bundle.Attributes); err != nil {
		s.log.Error("stream attributes csv", zap.Error(err))
	}
}

func (s *Server) DownloadInserts(c *gin.Context) {
	entry, ok := s.datasets.Get(c.Param("id"))
	if !ok {
		AbortWithError(c, ErrNotFound)
		return
	}
	serveFile(c, "application/sql", export.InsertsFile)
	if err := export.WriteAttributeInserts(c.Writer, entry.Bundle.Attributes, export.SQLOptions{}); err != nil {
		s.log.Error("stream insert statements", zap.Error(err))
	}
}

func serveFile(c *gin.Context, contentType, name string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Status(http.StatusOK)
}
