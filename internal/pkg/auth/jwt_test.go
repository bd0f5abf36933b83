package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okanyildiz/schoolroster/internal/app/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       3,
		Email:    "teacher@school.org",
		RoleType: models.RoleTeacher,
		IsActive: true,
	}
}

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "schoolroster.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, 86400, refreshExpiresIn)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "teacher@school.org", claims.Email)
	assert.Equal(t, "TEACHER", claims.RoleType)
	assert.Equal(t, "schoolroster.test", claims.Issuer)
}

func TestValidateTokenRejections(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour})
		access, _, _, _, err := other.GenerateTokenPair(testUser())
		require.NoError(t, err)

		_, err = svc.ValidateToken(access)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTestJWTService(-time.Minute)
		access, _, _, _, err := expired.GenerateTokenPair(testUser())
		require.NoError(t, err)

		_, err = expired.ValidateToken(access)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "empty header", header: "", wantErr: ErrInvalidFormat},
		{name: "bearer prefix", header: "Bearer abc123", want: "abc123"},
		{name: "bare token", header: "abc123", want: "abc123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
