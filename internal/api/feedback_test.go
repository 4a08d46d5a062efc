package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseplan/backend/internal/middleware"
	"github.com/pulseplan/backend/internal/service"
	"github.com/pulseplan/backend/internal/testhelpers"
	"github.com/pulseplan/backend/internal/types"
)

func setupFeedbackRouter(t *testing.T) *gin.Engine {
	db := testhelpers.SetupSQLiteTestDB(t)
	handler := NewFeedbackHandler(service.NewFeedbackService(db, nil))

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestCreateFeedbackAnonymous(t *testing.T) {
	router := setupFeedbackRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/feedback", gin.H{
		"type":        "bug",
		"title":       "Streak shows wrong number",
		"description": "After missing two days my streak still showed 5.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID     string  `json:"id"`
		Status string  `json:"status"`
		UserID *string `json:"user_id"`
	}
	decodeJSON(t, w, &resp)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "open", resp.Status)
	assert.Nil(t, resp.UserID)

	// Round-trip through the read endpoint.
	w = doJSON(t, router, http.MethodGet, "/api/v1/feedback/"+resp.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

// Mounted behind the optional auth middleware, feedback attributes the
// submission to the token's user while still accepting anonymous requests.
func TestCreateFeedbackAttributesAuthenticatedUser(t *testing.T) {
	db := testhelpers.SetupSQLiteTestDB(t)
	userID := seedUser(t, db)
	authService := service.NewAuthService(db, "test-secret")
	handler := NewFeedbackHandler(service.NewFeedbackService(db, nil))

	router := gin.New()
	group := router.Group("/api/v1")
	group.Use(middleware.OptionalAuthMiddleware(authService))
	handler.RegisterRoutes(group)

	token, err := authService.GenerateToken(&types.TokenClaims{UserID: userID, Username: "tester"})
	require.NoError(t, err)

	payload, err := json.Marshal(gin.H{
		"type":        "feature",
		"title":       "Weekly summary email",
		"description": "A weekly digest of streak and macro totals would help.",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		UserID *string `json:"user_id"`
	}
	decodeJSON(t, w, &resp)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, userID.String(), *resp.UserID)

	// The same router still takes anonymous submissions.
	w = doJSON(t, router, http.MethodPost, "/api/v1/feedback", gin.H{
		"type":        "bug",
		"title":       "Anonymous report",
		"description": "Submitted without a token.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp.UserID = nil
	decodeJSON(t, w, &resp)
	assert.Nil(t, resp.UserID)
}

func TestCreateFeedbackRejectsBadType(t *testing.T) {
	router := setupFeedbackRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/feedback", gin.H{
		"type":        "complaint",
		"title":       "Title",
		"description": "Description",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFeedbackNotFound(t *testing.T) {
	router := setupFeedbackRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/feedback/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
