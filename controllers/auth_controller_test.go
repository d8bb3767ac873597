package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"party-planner-api/config"
	"party-planner-api/middleware"
	"party-planner-api/models"
	"party-planner-api/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Provider{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderLine{},
		&models.Address{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// testConfig installs a minimal configuration for handler tests
func testConfig() *config.Config {
	cfg := &config.Config{
		GoEnv:           "test",
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	config.SetConfig(cfg)
	return cfg
}

// mockAuthMiddleware injects a session identity without a real cookie
func mockAuthMiddleware(userID uint, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("is_admin", isAdmin)
		c.Next()
	}
}

// itoa formats an id for building request paths
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return string(hash)
}

func cookieValue(w *httptest.ResponseRecorder, name string) string {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func TestSignup(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	testConfig()

	existing := models.User{
		Name:     "Existing User",
		Email:    "taken@example.com",
		Password: hashPassword(t, "password123"),
		IsActive: true,
	}
	db.Create(&existing)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successfully create account",
			requestBody: map[string]interface{}{
				"name":     "New User",
				"email":    "new@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "New User", data["name"])
				assert.Equal(t, "new@example.com", data["email"])
				assert.Equal(t, false, data["isAdmin"])
				// Password hash must never appear in responses
				_, hasPassword := data["password"]
				assert.False(t, hasPassword)
			},
		},
		{
			name: "Email is lowercased",
			requestBody: map[string]interface{}{
				"name":     "Cased User",
				"email":    "Cased@Example.COM",
				"password": "password123",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "cased@example.com", data["email"])
			},
		},
		{
			name: "Fail with duplicate email",
			requestBody: map[string]interface{}{
				"name":     "Another User",
				"email":    "taken@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "EMAIL_TAKEN",
		},
		{
			name: "Fail with short name",
			requestBody: map[string]interface{}{
				"name":     "A",
				"email":    "short@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with invalid email",
			requestBody: map[string]interface{}{
				"name":     "Bad Email",
				"email":    "not-an-email",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with short password",
			requestBody: map[string]interface{}{
				"name":     "Short Password",
				"email":    "shortpw@example.com",
				"password": "12345",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/signup", Signup)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/signup", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	testConfig()
	services.SetTokenStore(services.NewMockTokenStore())

	user := models.User{
		Name:     "Login User",
		Email:    "login@example.com",
		Password: hashPassword(t, "password123"),
		IsActive: true,
	}
	db.Create(&user)

	disabled := models.User{
		Name:     "Disabled User",
		Email:    "disabled@example.com",
		Password: hashPassword(t, "password123"),
		IsActive: false,
	}
	db.Create(&disabled)
	// Gorm treats false as a zero value on create
	db.Model(&disabled).Update("is_active", false)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Successfully log in",
			requestBody: map[string]interface{}{
				"email":    "login@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Fail with wrong password",
			requestBody: map[string]interface{}{
				"email":    "login@example.com",
				"password": "wrong-password",
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "INVALID_CREDENTIALS",
		},
		{
			name: "Fail with unknown email",
			requestBody: map[string]interface{}{
				"email":    "nobody@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "INVALID_CREDENTIALS",
		},
		{
			name: "Fail with disabled account",
			requestBody: map[string]interface{}{
				"email":    "disabled@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "ACCOUNT_DISABLED",
		},
		{
			name: "Fail with missing password",
			requestBody: map[string]interface{}{
				"email": "login@example.com",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/login", Login)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
				return
			}

			// Successful login sets both session cookies
			assert.NotEmpty(t, cookieValue(w, middleware.AccessTokenCookie))
			assert.NotEmpty(t, cookieValue(w, middleware.RefreshTokenCookie))

			data := response["data"].(map[string]interface{})
			assert.Equal(t, "login@example.com", data["email"])
			_, hasPassword := data["password"]
			assert.False(t, hasPassword)
		})
	}
}

func TestRefreshToken_Rotation(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	cfg := testConfig()

	store := services.NewMockTokenStore()
	services.SetTokenStore(store)

	user := models.User{
		Name:     "Refresh User",
		Email:    "refresh@example.com",
		Password: hashPassword(t, "password123"),
		IsActive: true,
	}
	db.Create(&user)

	oldToken, err := store.Issue(nil, user.ID, cfg.RefreshTokenTTL)
	assert.NoError(t, err)

	router := setupTestRouter()
	router.POST("/refresh-token", RefreshToken)

	req, _ := http.NewRequest(http.MethodPost, "/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: oldToken})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// The old token must be burned and a different one set
	assert.False(t, store.Has(oldToken))
	newToken := cookieValue(w, middleware.RefreshTokenCookie)
	assert.NotEmpty(t, newToken)
	assert.NotEqual(t, oldToken, newToken)
	assert.True(t, store.Has(newToken))
	assert.NotEmpty(t, cookieValue(w, middleware.AccessTokenCookie))
}

func TestRefreshToken_Failures(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	cfg := testConfig()

	store := services.NewMockTokenStore()
	services.SetTokenStore(store)

	inactive := models.User{
		Name:     "Inactive User",
		Email:    "inactive@example.com",
		Password: hashPassword(t, "password123"),
	}
	db.Create(&inactive)
	db.Model(&inactive).Update("is_active", false)

	inactiveToken, _ := store.Issue(nil, inactive.ID, cfg.RefreshTokenTTL)

	tests := []struct {
		name           string
		cookie         string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Fail without cookie",
			cookie:         "",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "MISSING_REFRESH_TOKEN",
		},
		{
			name:           "Fail with unknown token",
			cookie:         "not-a-real-token",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "INVALID_REFRESH_TOKEN",
		},
		{
			name:           "Fail when account is disabled",
			cookie:         inactiveToken,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "ACCOUNT_UNAVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/refresh-token", RefreshToken)

			req, _ := http.NewRequest(http.MethodPost, "/refresh-token", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: tt.cookie})
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)
			assert.False(t, response["success"].(bool))

			errorData := response["error"].(map[string]interface{})
			assert.Equal(t, tt.expectedError, errorData["code"])
		})
	}
}

func TestLogout(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	cfg := testConfig()

	store := services.NewMockTokenStore()
	services.SetTokenStore(store)

	token, _ := store.Issue(nil, 1, cfg.RefreshTokenTTL)

	router := setupTestRouter()
	router.POST("/logout", Logout)

	req, _ := http.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: token})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, store.Has(token), "Refresh token should be revoked on logout")

	// Both cookies are expired
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.AccessTokenCookie || cookie.Name == middleware.RefreshTokenCookie {
			assert.Empty(t, cookie.Value)
			assert.True(t, cookie.MaxAge < 0)
		}
	}
}
