package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"party-planner-api/config"
	"party-planner-api/models"
)

func validAddressBody() map[string]interface{} {
	return map[string]interface{}{
		"venue":    "Grand Hall",
		"place":    "MG Road",
		"landmark": "Opposite Metro Station",
		"city":     "Kochi",
		"district": "Ernakulam",
		"state":    "Kerala",
		"pincode":  "682001",
		"phone":    "9876543210",
	}
}

func TestAddAddress(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	user := models.User{Name: "Address User", Email: "addr@example.com", Password: "x", IsActive: true}
	db.Create(&user)

	tests := []struct {
		name           string
		mutate         func(body map[string]interface{})
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Successfully save address",
			mutate:         func(map[string]interface{}) {},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Landmark is optional",
			mutate:         func(body map[string]interface{}) { delete(body, "landmark") },
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Fail with short pincode",
			mutate:         func(body map[string]interface{}) { body["pincode"] = "68200" },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail with non-numeric pincode",
			mutate:         func(body map[string]interface{}) { body["pincode"] = "68200a" },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail with signed pincode",
			mutate:         func(body map[string]interface{}) { body["pincode"] = "-12345" },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail with signed phone",
			mutate:         func(body map[string]interface{}) { body["phone"] = "+919876543" },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail with short phone",
			mutate:         func(body map[string]interface{}) { body["phone"] = "98765" },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail with missing venue",
			mutate:         func(body map[string]interface{}) { delete(body, "venue") },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/address/add", mockAuthMiddleware(user.ID, false), AddAddress)

			requestBody := validAddressBody()
			tt.mutate(requestBody)

			body, _ := json.Marshal(requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/address/add", bytes.NewBuffer(body))
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

			// Addresses always belong to the session user
			data := response["data"].(map[string]interface{})
			assert.Equal(t, float64(user.ID), data["userId"])
		})
	}
}

func TestListAddresses(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	user := models.User{Name: "Address User", Email: "addr@example.com", Password: "x", IsActive: true}
	db.Create(&user)
	other := models.User{Name: "Other User", Email: "other@example.com", Password: "x", IsActive: true}
	db.Create(&other)

	db.Create(&models.Address{
		UserID: user.ID, Venue: "Grand Hall", Place: "MG Road", City: "Kochi",
		District: "Ernakulam", State: "Kerala", Pincode: "682001", Phone: "9876543210",
	})
	hidden := models.Address{
		UserID: user.ID, Venue: "Old Venue", Place: "Old Road", City: "Kochi",
		District: "Ernakulam", State: "Kerala", Pincode: "682002", Phone: "9876543211",
	}
	db.Create(&hidden)
	db.Model(&hidden).Update("is_deleted", true)
	db.Create(&models.Address{
		UserID: other.ID, Venue: "Other Venue", Place: "Other Road", City: "Chennai",
		District: "Chennai", State: "Tamil Nadu", Pincode: "600001", Phone: "9876543212",
	})

	t.Run("Lists only live own addresses", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/address/:userId", mockAuthMiddleware(user.ID, false), ListAddresses)

		req, _ := http.NewRequest(http.MethodGet, "/address/"+itoa(user.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)

		data := response["data"].([]interface{})
		assert.Equal(t, 1, len(data))
		assert.Equal(t, "Grand Hall", data[0].(map[string]interface{})["venue"])
	})

	t.Run("Cannot list another user's addresses", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/address/:userId", mockAuthMiddleware(user.ID, false), ListAddresses)

		req, _ := http.NewRequest(http.MethodGet, "/address/"+itoa(other.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUpdateAddress(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	user := models.User{Name: "Address User", Email: "addr@example.com", Password: "x", IsActive: true}
	db.Create(&user)
	other := models.User{Name: "Other User", Email: "other@example.com", Password: "x", IsActive: true}
	db.Create(&other)

	address := models.Address{
		UserID: user.ID, Venue: "Grand Hall", Place: "MG Road", City: "Kochi",
		District: "Ernakulam", State: "Kerala", Pincode: "682001", Phone: "9876543210",
	}
	db.Create(&address)

	tests := []struct {
		name           string
		callerID       uint
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		verify         func(t *testing.T)
	}{
		{
			name:     "Successfully update city",
			callerID: user.ID,
			requestBody: map[string]interface{}{
				"id":   address.ID,
				"city": "Thrissur",
			},
			expectedStatus: http.StatusOK,
			verify: func(t *testing.T) {
				var got models.Address
				db.First(&got, address.ID)
				assert.Equal(t, "Thrissur", got.City)
			},
		},
		{
			name:     "Fail with bad pincode",
			callerID: user.ID,
			requestBody: map[string]interface{}{
				"id":      address.ID,
				"pincode": "12",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:     "Fail with bad phone",
			callerID: user.ID,
			requestBody: map[string]interface{}{
				"id":    address.ID,
				"phone": "12345abcde",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:     "Another user cannot update",
			callerID: other.ID,
			requestBody: map[string]interface{}{
				"id":   address.ID,
				"city": "Hijacked",
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "FORBIDDEN",
		},
		{
			name:     "Fail on unknown id",
			callerID: user.ID,
			requestBody: map[string]interface{}{
				"id":   99999,
				"city": "Nowhere",
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "ADDRESS_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.PUT("/address/update", mockAuthMiddleware(tt.callerID, false), UpdateAddress)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPut, "/address/update", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				var response map[string]interface{}
				err := json.Unmarshal(w.Body.Bytes(), &response)
				assert.NoError(t, err)
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			}
			if tt.verify != nil {
				tt.verify(t)
			}
		})
	}
}

func TestDeleteAddress(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	user := models.User{Name: "Address User", Email: "addr@example.com", Password: "x", IsActive: true}
	db.Create(&user)

	address := models.Address{
		UserID: user.ID, Venue: "Grand Hall", Place: "MG Road", City: "Kochi",
		District: "Ernakulam", State: "Kerala", Pincode: "682001", Phone: "9876543210",
	}
	db.Create(&address)

	router := setupTestRouter()
	router.DELETE("/address/:addressId", mockAuthMiddleware(user.ID, false), DeleteAddress)

	req, _ := http.NewRequest(http.MethodDelete, "/address/"+itoa(address.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Delete returns no body
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())

	var got models.Address
	assert.NoError(t, db.First(&got, address.ID).Error)
	assert.True(t, got.IsDeleted)

	// Deleting twice is a 404
	req, _ = http.NewRequest(http.MethodDelete, "/address/"+itoa(address.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddressFormatted(t *testing.T) {
	address := models.Address{
		Venue: "Grand Hall", Place: "MG Road", Landmark: "Opposite Metro Station",
		City: "Kochi", District: "Ernakulam", State: "Kerala",
		Pincode: "682001", Phone: "9876543210",
	}
	assert.Equal(t,
		"Grand Hall, MG Road, Opposite Metro Station, Kochi, Ernakulam, Kerala - 682001, Phone: 9876543210",
		address.Formatted())

	address.Landmark = ""
	assert.Equal(t,
		"Grand Hall, MG Road, Kochi, Ernakulam, Kerala - 682001, Phone: 9876543210",
		address.Formatted())
}
