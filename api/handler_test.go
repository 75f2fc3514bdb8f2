package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"catalog/catalog_admin_data_service/api"
	"catalog/catalog_admin_data_service/config"
	"catalog/catalog_admin_data_service/models"
	"catalog/catalog_admin_data_service/pkg/logger"
	"catalog/catalog_admin_data_service/pkg/whitelist"
	"catalog/catalog_admin_data_service/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jaswdr/faker/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var (
	cfg config.Config
	log logger.LoggerI
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	cfg = config.Config{ServiceName: "catalog_admin_data_service_test", Environment: config.TestMode}
	log = logger.NewLogger(cfg.ServiceName, logger.LevelError)

	os.Exit(m.Run())
}

type fakeQueryRepo struct {
	rows []map[string]any
	err  error

	lastSQL string
}

func (f *fakeQueryRepo) Execute(_ context.Context, compiled *models.CompiledQuery) ([]map[string]any, error) {
	f.lastSQL = compiled.SQL
	return f.rows, f.err
}

type fakeWholesalerRepo struct {
	storage.WholesalerRepoI

	getResp   *models.Wholesaler
	getErr    error
	delResp   *models.DeleteResult
	delErr    error
	deleteReq models.DeleteRequest
}

func (f *fakeWholesalerRepo) GetByID(_ context.Context, _ string) (*models.Wholesaler, error) {
	return f.getResp, f.getErr
}

func (f *fakeWholesalerRepo) Delete(_ context.Context, _ string, req models.DeleteRequest) (*models.DeleteResult, error) {
	f.deleteReq = req
	return f.delResp, f.delErr
}

type fakeStorage struct {
	wholesaler *fakeWholesalerRepo
	query      *fakeQueryRepo
}

func (f *fakeStorage) CloseDB()                                            {}
func (f *fakeStorage) Wholesaler() storage.WholesalerRepoI                 { return f.wholesaler }
func (f *fakeStorage) Category() storage.CategoryRepoI                     { return nil }
func (f *fakeStorage) ProductDefinition() storage.ProductDefinitionRepoI   { return nil }
func (f *fakeStorage) Offering() storage.OfferingRepoI                     { return nil }
func (f *fakeStorage) Order() storage.OrderRepoI                           { return nil }
func (f *fakeStorage) Query() storage.QueryRepoI                           { return f.query }

func newTestRouter(t *testing.T, strg storage.StorageI) *gin.Engine {
	t.Helper()

	registry := whitelist.DefaultRegistry()
	assert.NoError(t, registry.Validate())

	return api.SetUpRouter(cfg, log, strg, registry, nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestRunQueryTransformsRecordset(t *testing.T) {
	f := faker.New()
	wholesalerName := f.Company().Name()

	strg := &fakeStorage{
		query: &fakeQueryRepo{
			rows: []map[string]any{
				{"offering_id": "o-1", "price": 9.99, "w.name": wholesalerName},
			},
		},
	}
	router := newTestRouter(t, strg)

	w := doJSON(t, router, http.MethodPost, "/v1/query/offerings", gin.H{
		"payload": gin.H{
			"select": []string{"offering_id", "price", "w.name"},
			"where": gin.H{
				"key":      "wio.price",
				"operator": "LESS_THAN",
				"value":    10,
			},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Results  []map[string]any     `json:"results"`
			Metadata models.QueryMetadata `json:"metadata"`
		} `json:"data"`
		Meta models.ResponseMeta `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.False(t, resp.Meta.Timestamp.IsZero())
	assert.Len(t, resp.Data.Results, 1)
	assert.Equal(t, map[string]any{"name": wholesalerName}, resp.Data.Results[0]["wholesaler"])
	assert.Equal(t, 1, resp.Data.Metadata.ParameterCount)

	// The executed SQL is the compiler's output, placeholders only.
	assert.Contains(t, strg.query.lastSQL, "$1")
	assert.NotContains(t, strg.query.lastSQL, "10")
}

func TestRunQueryRejectsUnknownView(t *testing.T) {
	strg := &fakeStorage{query: &fakeQueryRepo{}}
	router := newTestRouter(t, strg)

	w := doJSON(t, router, http.MethodPost, "/v1/query/pg_catalog", gin.H{
		"payload": gin.H{"select": []string{"name"}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.ErrorCode)

	// Rejection happens before anything reaches the database.
	assert.Empty(t, strg.query.lastSQL)
}

func TestRunQueryBaseTableTarget(t *testing.T) {
	strg := &fakeStorage{
		query: &fakeQueryRepo{
			rows: []map[string]any{
				{"wholesaler_id": "w-1", "category_id": "c-1", "comment": "seasonal"},
			},
		},
	}
	router := newTestRouter(t, strg)

	w := doJSON(t, router, http.MethodPost, "/v1/query/wholesaler_category", gin.H{
		"payload": gin.H{"select": []string{"wholesaler_id", "category_id", "comment"}},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Results []map[string]any `json:"results"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Results, 1)
	assert.Equal(t, "seasonal", resp.Data.Results[0]["comment"])
}

func TestRunQuerySelectAliasSurvivesTransform(t *testing.T) {
	strg := &fakeStorage{
		query: &fakeQueryRepo{
			rows: []map[string]any{
				{"supplier_name": "Acme", "region": "north"},
			},
		},
	}
	router := newTestRouter(t, strg)

	w := doJSON(t, router, http.MethodPost, "/v1/query/wholesalers", gin.H{
		"payload": gin.H{"select": []string{"name AS supplier_name", "region"}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, strg.query.lastSQL, `w.name AS "supplier_name"`)

	var resp struct {
		Data struct {
			Results  []map[string]any     `json:"results"`
			Metadata models.QueryMetadata `json:"metadata"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Results, 1)
	assert.Equal(t, "Acme", resp.Data.Results[0]["supplier_name"])
	assert.Equal(t, map[string]string{"supplier_name": "w.name"}, resp.Data.Metadata.ResultAliases)
}

func TestDeleteConflictEnvelope(t *testing.T) {
	strg := &fakeStorage{
		wholesaler: &fakeWholesalerRepo{
			delErr: &models.DependencyConflictError{
				Report: models.DependencyReport{
					Hard: []string{},
					Soft: []string{"3 category assignment(s)"},
				},
			},
		},
	}
	router := newTestRouter(t, strg)

	w := doJSON(t, router, http.MethodDelete, "/v1/wholesaler/w-1", gin.H{"cascade": false})

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DEPENDENCY_CONFLICT", resp.ErrorCode)
	assert.NotNil(t, resp.Dependencies)
	assert.Equal(t, []string{"3 category assignment(s)"}, resp.Dependencies.Soft)
	assert.NotNil(t, resp.CascadeAvailable)
	assert.True(t, *resp.CascadeAvailable)
}

func TestDeleteHardConflictCascadeUnavailable(t *testing.T) {
	strg := &fakeStorage{
		wholesaler: &fakeWholesalerRepo{
			delErr: &models.DependencyConflictError{
				Report: models.DependencyReport{
					Hard: []string{"2 order(s)"},
					Soft: []string{},
				},
			},
		},
	}
	router := newTestRouter(t, strg)

	w := doJSON(t, router, http.MethodDelete, "/v1/wholesaler/w-1", gin.H{"cascade": true, "force_cascade": true})

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.CascadeAvailable)
	assert.False(t, *resp.CascadeAvailable)
}

func TestDeleteSuccessPassesCascadeFlags(t *testing.T) {
	repo := &fakeWholesalerRepo{
		delResp: &models.DeleteResult{
			Deleted: map[string]any{"wholesaler_id": "w-1", "name": "Acme"},
			Stats:   map[string]int64{"wholesaler_category": 3},
		},
	}
	router := newTestRouter(t, &fakeStorage{wholesaler: repo})

	w := doJSON(t, router, http.MethodDelete, "/v1/wholesaler/w-1", gin.H{"cascade": true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, repo.deleteReq.Cascade)
	assert.False(t, repo.deleteReq.ForceCascade)

	var resp struct {
		Success bool                `json:"success"`
		Data    models.DeleteResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Acme", resp.Data.Deleted["name"])
	assert.Equal(t, int64(3), resp.Data.Stats["wholesaler_category"])
}

func TestGetWholesalerNotFound(t *testing.T) {
	strg := &fakeStorage{
		wholesaler: &fakeWholesalerRepo{
			getErr: errors.Wrap(pgx.ErrNoRows, "get wholesaler"),
		},
	}
	router := newTestRouter(t, strg)

	w := doJSON(t, router, http.MethodGet, "/v1/wholesaler/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.ErrorCode)
}
