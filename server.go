package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/airfinance/finbi_backend/config"
	"github.com/airfinance/finbi_backend/middlewares"
	"github.com/airfinance/finbi_backend/models"
	"github.com/airfinance/finbi_backend/models/reports"
	"github.com/airfinance/finbi_backend/pbisync"
	"github.com/airfinance/finbi_backend/utils"
)

const defaultPort = "8080"

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// bindFilter parses the shared query-param filter and rejects malformed
// values with a field->tag error map.
func bindFilter(c *gin.Context) (reports.Filter, bool) {
	var f reports.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return f, false
	}
	if raw := c.Query("exclude_doc_types"); raw != "" {
		f.ExcludeDocTypes = splitAndTrim(raw)
	}
	if err := utils.ValidateStruct(f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return f, false
	}
	return f, true
}

func payablesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		records, err := models.ListPayables(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		filtered := reports.FilterPayables(records, f)
		if col := c.Query("sort"); col != "" {
			reports.SortPayables(filtered, col, c.Query("order") == "desc")
		}
		c.JSON(http.StatusOK, gin.H{
			"records": filtered,
			"kpis":    reports.PayableKPIs(filtered),
			"total":   len(filtered),
		})
	}
}

// receivableRow shapes one receivable for the API: identical to the model
// except the settlement date, which is blanked while a balance is open.
type receivableRow struct {
	*models.ReceivableRecord
	DtBaixa string `json:"dt_baixa"`
}

func receivablesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		records, err := models.ListReceivables(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		filtered := reports.FilterReceivables(records, f)
		if col := c.Query("sort"); col != "" {
			reports.SortReceivables(filtered, col, c.Query("order") == "desc")
		}
		rows := make([]receivableRow, 0, len(filtered))
		for _, r := range filtered {
			rows = append(rows, receivableRow{ReceivableRecord: r, DtBaixa: r.EffectiveSettlementDate()})
		}
		c.JSON(http.StatusOK, gin.H{
			"records": rows,
			"kpis":    reports.ReceivableKPIs(filtered),
			"total":   len(rows),
		})
	}
}

func cashflowHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		view := c.DefaultQuery("view", reports.ViewPredicted)
		if view != reports.ViewPredicted && view != reports.ViewRealized {
			c.JSON(http.StatusBadRequest, gin.H{"error": "view must be predicted or realized"})
			return
		}
		// The view mode dictates the date basis the range filter reads.
		if view == reports.ViewRealized {
			f.DateBasis = reports.DateBasisSettlement
		} else {
			f.DateBasis = reports.DateBasisDue
		}

		payables, err := models.ListPayables(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		receivables, err := models.ListReceivables(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		fp := reports.FilterPayables(payables, f)
		fr := reports.FilterReceivables(receivables, f)
		c.JSON(http.StatusOK, gin.H{
			"view":    view,
			"totals":  reports.CashFlow(fp, fr, view),
			"monthly": reports.MonthlyBuckets(fp, fr, view),
		})
	}
}

func reportsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		payables, err := models.ListPayables(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		receivables, err := models.ListReceivables(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		fp := reports.FilterPayables(payables, f)
		fr := reports.FilterReceivables(receivables, f)
		today := time.Now().Format("2006-01-02")
		c.JSON(http.StatusOK, gin.H{
			"top_suppliers":   reports.TopSuppliers(fp, 5),
			"top_customers":   reports.TopCustomers(fr, 5),
			"monthly_summary": reports.MonthlyPayableSummary(fp),
			"overdue":         reports.OverdueSummary(fp, fr, today),
		})
	}
}

func settlementAccountsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		payables, err := models.ListPayables(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		fp := reports.FilterPayables(payables, f)
		c.JSON(http.StatusOK, gin.H{
			"accounts": reports.TopSettlementAccounts(fp, 10),
		})
	}
}

func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		for _, ginErr := range c.Errors {
			cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
			logger.WithFields(logrus.Fields{
				"path":           c.Request.URL.Path,
				"correlation_id": cid,
			}).Error(ginErr.Error())
		}
	}
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP so the platform considers the revision
	// healthy. Until the DB is ready, app endpoints return 503.
	r := gin.New()
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			// Deny all if not configured in production.
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length")
	corsConfig.AllowCredentials = true

	r.Use(cors.New(corsConfig))
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	syncer := pbisync.NewSyncer(pbisync.NewGormStore())

	api := r.Group("/api", middlewares.AuthMiddleware())
	api.POST("/sync/:target", pbisync.SyncHandler(syncer))
	api.GET("/sync/runs", pbisync.SyncRunsHandler())
	api.GET("/payables", payablesHandler())
	api.GET("/payables/accounts", settlementAccountsHandler())
	api.GET("/receivables", receivablesHandler())
	api.GET("/cashflow", cashflowHandler())
	api.GET("/reports", reportsHandler())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can run DDL that blocks tables; allow running migrations
	// as a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	logger.WithFields(logrus.Fields{
		"port": port,
	}).Info("server started")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownTimeout := 30 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}
