package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseplan/backend/internal/models"
	"github.com/pulseplan/backend/internal/testhelpers"
	"github.com/pulseplan/backend/internal/types"
)

func newTestAuthService(t *testing.T) *AuthService {
	db := testhelpers.SetupSQLiteTestDB(t)
	return NewAuthService(db, "test-secret")
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana Silva", "ana@example.com", "password123", "anasilva", nil)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash, "password must be stored hashed")

	loggedIn, profile, err := svc.Login(ctx, "ana@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Equal(t, "anasilva", profile.Username)
	assert.Zero(t, profile.CurrentStreak)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "password123", "ana1", nil)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Ana", "ana@example.com", "password456", "ana2", nil)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterStoresOnboardingPreferences(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	prefs := &types.UserPreferences{
		DietaryPrefs: []string{"vegetarian", " ", "custom"},
		Allergies:    []string{"peanuts", ""},
	}
	user, err := svc.Register(ctx, "Ana", "ana@example.com", "password123", "ana", prefs)
	require.NoError(t, err)

	var dietary []models.DietaryPreference
	require.NoError(t, svc.db.Where("user_id = ?", user.ID).Find(&dietary).Error)
	require.Len(t, dietary, 2, "blank preferences are dropped")

	var allergens []models.Allergen
	require.NoError(t, svc.db.Where("user_id = ?", user.ID).Find(&allergens).Error)
	require.Len(t, allergens, 1)
	assert.Equal(t, "peanuts", allergens[0].AllergenName)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "password123", "ana", nil)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ana@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "ana@example.com", "password123", "ana", nil)
	require.NoError(t, err)

	token, err := svc.GenerateToken(&types.TokenClaims{UserID: user.ID, Username: "ana"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ana", claims.Username)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestAuthService(t)
	other := NewAuthService(svc.db, "different-secret")

	user, err := svc.Register(context.Background(), "Ana", "ana@example.com", "password123", "ana", nil)
	require.NoError(t, err)

	token, err := other.GenerateToken(&types.TokenClaims{UserID: user.ID, Username: "ana"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
