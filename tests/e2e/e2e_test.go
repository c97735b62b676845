package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	stdimage "image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"

	"realty/internal/database"
	"realty/internal/domain/auth"
	"realty/internal/domain/content"
	"realty/internal/domain/document"
	"realty/internal/domain/image"
	"realty/internal/domain/property"
	"realty/internal/middleware"
	jwtsvc "realty/internal/pkg/jwt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "secret123"
)

type env struct {
	router     *gin.Engine
	uploadsDir string
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // one in-memory database across the pool

	require.NoError(t, database.Migrate(db))
	require.NoError(t, auth.SeedAdmin(context.Background(), db, adminEmail, adminPassword))

	uploadsDir := t.TempDir()
	staticBase := "/static/uploads"

	imageRepo := image.NewRepository(db)
	documentRepo := document.NewRepository(db)
	propertyRepo := property.NewRepository(db, imageRepo, documentRepo, uploadsDir, staticBase, "")
	contentRepo := content.NewRepository(db)

	imageService := image.NewService(imageRepo, propertyRepo, uploadsDir, staticBase)
	documentService := document.NewService(documentRepo, propertyRepo, uploadsDir, staticBase)

	j := jwtsvc.New("e2e-secret", time.Hour)

	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	auth.NewHandler(db, j).RegisterRoutes(v1)

	admin := v1.Group("")
	admin.Use(middleware.JWTAuth(j), middleware.AdminOnly())

	property.NewHandler(propertyRepo).RegisterRoutes(v1, admin)
	image.NewHandler(imageService).RegisterRoutes(admin)
	document.NewHandler(documentService).RegisterRoutes(v1, admin)
	content.NewHandler(contentRepo).RegisterRoutes(v1, admin)

	return &env{router: r, uploadsDir: uploadsDir}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

func (e *env) do(t *testing.T, method, path, token string, body []byte, contentType string) (int, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w.Code, resp
}

func (e *env) doJSON(t *testing.T, method, path, token string, payload any) (int, apiResponse) {
	t.Helper()
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}
	return e.do(t, method, path, token, body, "application/json")
}

func (e *env) login(t *testing.T) string {
	t.Helper()
	code, resp := e.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	})
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (e *env) uploadImage(t *testing.T, token, propertyID, filename string) string {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("property_id", propertyID))
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(pngBytes(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	code, resp := e.do(t, http.MethodPost, "/api/v1/images/upload", token, buf.Bytes(), mw.FormDataContentType())
	require.Equal(t, http.StatusCreated, code, "upload failed: %s", resp.Error)

	var img image.Image
	require.NoError(t, json.Unmarshal(resp.Data, &img))
	return img.ID
}

func TestListingLifecycle(t *testing.T) {
	e := setupEnv(t)
	token := e.login(t)

	// Admin surface is closed without a token.
	code, _ := e.doJSON(t, http.MethodPost, "/api/v1/properties", "", map[string]any{"title": "x"})
	require.Equal(t, http.StatusUnauthorized, code)

	// First listing in an empty database gets prop-001.
	code, resp := e.doJSON(t, http.MethodPost, "/api/v1/properties", token, map[string]any{
		"title":            "Two-bedroom apartment",
		"price":            185000,
		"currency":         "EUR",
		"transaction_type": "sale",
		"property_type":    "apartment",
		"city_region":      "Sofia",
		"area":             86,
	})
	require.Equal(t, http.StatusCreated, code, resp.Error)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.NotEmpty(t, created.ID)

	code, resp = e.do(t, http.MethodGet, "/api/v1/properties/prop-001", "", nil, "")
	require.Equal(t, http.StatusOK, code)

	var prop property.Property
	require.NoError(t, json.Unmarshal(resp.Data, &prop))
	assert.Equal(t, created.ID, prop.ID)
	assert.Equal(t, "prop-001", prop.PropertyCode)

	// Three uploads: the first becomes main automatically.
	img1 := e.uploadImage(t, token, created.ID, "front.png")
	img2 := e.uploadImage(t, token, created.ID, "kitchen.png")
	img3 := e.uploadImage(t, token, created.ID, "bedroom.png")

	// Originals and thumbnails land under the property's code directory.
	entries, err := os.ReadDir(filepath.Join(e.uploadsDir, "prop-001"))
	require.NoError(t, err)
	assert.Len(t, entries, 6)

	// Deleting the main image promotes the next one by sort order.
	code, _ = e.do(t, http.MethodDelete, "/api/v1/images/"+img1, token, nil, "")
	require.Equal(t, http.StatusOK, code)

	code, resp = e.do(t, http.MethodGet, "/api/v1/properties/prop-001", "", nil, "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &prop))
	require.Len(t, prop.Images, 2)
	assert.Equal(t, img2, prop.Images[0].ID)
	assert.True(t, prop.Images[0].IsMain)
	assert.NotEmpty(t, prop.Images[0].ThumbnailURL)

	// Explicitly promoting the other image demotes the current main.
	code, _ = e.do(t, http.MethodPut,
		fmt.Sprintf("/api/v1/properties/%s/images/%s/main", created.ID, img3), token, nil, "")
	require.Equal(t, http.StatusOK, code)

	code, resp = e.do(t, http.MethodGet, "/api/v1/properties/"+created.ID, "", nil, "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &prop))
	assert.Equal(t, img3, prop.Images[0].ID)

	mains := 0
	for _, img := range prop.Images {
		if img.IsMain {
			mains++
		}
	}
	assert.Equal(t, 1, mains)

	// Deleting the listing removes rows and the upload directory.
	code, _ = e.do(t, http.MethodDelete, "/api/v1/properties/"+created.ID, token, nil, "")
	require.Equal(t, http.StatusOK, code)

	code, _ = e.do(t, http.MethodGet, "/api/v1/properties/prop-001", "", nil, "")
	assert.Equal(t, http.StatusNotFound, code)

	_, err = os.Stat(filepath.Join(e.uploadsDir, "prop-001"))
	assert.True(t, os.IsNotExist(err))
}

func TestSearchPaginationMeta(t *testing.T) {
	e := setupEnv(t)
	token := e.login(t)

	for i := 0; i < 5; i++ {
		code, resp := e.doJSON(t, http.MethodPost, "/api/v1/properties", token, map[string]any{
			"title":            fmt.Sprintf("Listing %d", i+1),
			"price":            100000 + i,
			"transaction_type": "sale",
			"city_region":      "Sofia",
			"area":             50,
		})
		require.Equal(t, http.StatusCreated, code, resp.Error)
	}

	code, resp := e.do(t, http.MethodGet, "/api/v1/properties?page=2&limit=2", "", nil, "")
	require.Equal(t, http.StatusOK, code)

	var meta struct {
		Page    int   `json:"page"`
		Limit   int   `json:"limit"`
		Total   int64 `json:"total"`
		Pages   int   `json:"pages"`
		HasPrev bool  `json:"hasPrev"`
		HasNext bool  `json:"hasNext"`
	}
	require.NoError(t, json.Unmarshal(resp.Meta, &meta))
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 2, meta.Limit)
	assert.Equal(t, int64(5), meta.Total)
	assert.Equal(t, 3, meta.Pages)
	assert.True(t, meta.HasPrev)
	assert.True(t, meta.HasNext)

	var items []property.Property
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	assert.Len(t, items, 2)
}

func TestPagesAndServicesPublicRead(t *testing.T) {
	e := setupEnv(t)
	token := e.login(t)

	code, resp := e.doJSON(t, http.MethodPost, "/api/v1/pages", token, map[string]any{
		"slug":    "about",
		"title":   "About us",
		"content": "Family-run agency.",
	})
	require.Equal(t, http.StatusCreated, code, resp.Error)

	var page content.Page
	require.NoError(t, json.Unmarshal(resp.Data, &page))

	code, resp = e.doJSON(t, http.MethodPost, "/api/v1/sections", token, map[string]any{
		"page_id": page.ID,
		"key":     "team",
		"title":   "Our team",
		"body":    "Six brokers.",
	})
	require.Equal(t, http.StatusCreated, code, resp.Error)

	code, resp = e.do(t, http.MethodGet, "/api/v1/pages/about", "", nil, "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	require.Len(t, page.Sections, 1)
	assert.Equal(t, "team", page.Sections[0].Key)

	code, resp = e.doJSON(t, http.MethodPost, "/api/v1/services", token, map[string]any{
		"title": "Property valuation",
	})
	require.Equal(t, http.StatusCreated, code, resp.Error)

	code, resp = e.do(t, http.MethodGet, "/api/v1/services", "", nil, "")
	require.Equal(t, http.StatusOK, code)

	var services []content.SiteService
	require.NoError(t, json.Unmarshal(resp.Data, &services))
	assert.Len(t, services, 1)
}
