package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"virtualab/config"
	"virtualab/database"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/routers"
	"virtualab/storage"
	"virtualab/utils"
)

const (
	ReviewerKey = "reviewer-secret"
	Password    = "password123"
)

// PNG and MP4 are minimal payloads that pass content sniffing.
var (
	PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	MP4 = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom")
)

// Env is one isolated application instance.
type Env struct {
	App   *fiber.App
	DB    *gorm.DB
	Store *storage.MemoryStore
}

// Setup configures an in-memory sqlite database, an in-memory blob store and
// a fresh app.
func Setup(t *testing.T) *Env {
	t.Helper()

	config.AppConfig = &config.Config{
		AllowedOrigins:      "*",
		DBDriver:            "sqlite",
		JWTKey:              "test-secret",
		AccessExpireMinutes: 60,
		SaltRound:           bcrypt.MinCost,
		ReviewerKey:         ReviewerKey,
		StorageDriver:       "memory",
		KeepAliveSpec:       "@every 15m",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and serializes writers.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	store := storage.NewMemoryStore()
	storage.Store = store

	return &Env{App: routers.NewApp(), DB: db, Store: store}
}

// CreateUser inserts an approved user with its role record and the shared test password.
func CreateUser(t *testing.T, db *gorm.DB, userType int, username string) models.User {
	t.Helper()

	hashed, err := utils.HashPassword(Password)
	require.NoError(t, err)

	user := models.User{
		FullName:           "User " + username,
		Username:           username,
		Email:              username + "@school.test",
		Password:           hashed,
		UserType:           userType,
		RegistrationStatus: models.RegistrationApproved,
		School:             "SMA 1",
	}
	require.NoError(t, db.Create(&user).Error)

	if userType == models.UserTypeTeacher {
		require.NoError(t, db.Create(&models.Teacher{TeacherID: user.ID, NIP: "NIP-" + username}).Error)
	} else {
		require.NoError(t, db.Create(&models.Student{StudentID: user.ID, NISN: fmt.Sprintf("%010d", user.ID)}).Error)
	}
	return user
}

// Token issues an access token for user.
func Token(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.Username)
	require.NoError(t, err)
	return token
}

// Envelope is the JSON body every endpoint answers with.
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Decode unmarshals the data field into v.
func (e Envelope) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, v), "data: %s", e.Data)
}

// Request describes one call against the app.
type Request struct {
	Method      string
	Path        string
	Token       string
	ReviewerKey string
	JSON        interface{}
	Body        io.Reader
	ContentType string
}

// Do runs req and returns the status code with the decoded envelope. Binary
// responses leave the envelope empty and return the raw body.
func (e *Env) Do(t *testing.T, req Request) (int, Envelope, []byte) {
	t.Helper()

	body := req.Body
	contentType := req.ContentType
	if req.JSON != nil {
		raw, err := json.Marshal(req.JSON)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
		contentType = fiber.MIMEApplicationJSON
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, body)
	if contentType != "" {
		httpReq.Header.Set(fiber.HeaderContentType, contentType)
	}
	if req.Token != "" {
		httpReq.Header.Set(fiber.HeaderAuthorization, "Bearer "+req.Token)
	}
	if req.ReviewerKey != "" {
		httpReq.Header.Set(middleware.ReviewerHeader, req.ReviewerKey)
	}

	resp, err := e.App.Test(httpReq, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env Envelope
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	}
	return resp.StatusCode, env, raw
}

// Multipart builds a multipart body with the given fields and, when content
// is not nil, a "file" part.
func Multipart(t *testing.T, fields map[string]string, filename string, content []byte) (io.Reader, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if content != nil {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}
