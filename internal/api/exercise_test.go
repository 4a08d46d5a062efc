package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupExerciseRouter() *gin.Engine {
	router := gin.New()
	group := router.Group("/api/v1")
	group.Use(authAs(uuid.New()))
	NewExerciseHandler().RegisterRoutes(group)
	return router
}

func TestGetExerciseMedia(t *testing.T) {
	router := setupExerciseRouter()

	w := doJSON(t, router, http.MethodGet, "/api/v1/exercises/media?name=Supino+Reto+Com+Barra", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		CanonicalName string `json:"canonical_name"`
		VideoURL      string `json:"video_url"`
	}
	decodeJSON(t, w, &resp)
	assert.Equal(t, "Barbell Bench Press", resp.CanonicalName)
	assert.NotEmpty(t, resp.VideoURL)
}

func TestGetExerciseMediaNotFound(t *testing.T) {
	router := setupExerciseRouter()

	w := doJSON(t, router, http.MethodGet, "/api/v1/exercises/media?name=completely+unknown+exercise+xyz", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetExerciseMediaMissingName(t *testing.T) {
	router := setupExerciseRouter()

	w := doJSON(t, router, http.MethodGet, "/api/v1/exercises/media", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
