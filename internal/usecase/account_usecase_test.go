package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"career-portal-backend/internal/domain"
	"career-portal-backend/internal/usecase"
	"career-portal-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for x := 0; x < 64; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.RGBA{R: 10, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAccountUsecase(t *testing.T) {
	validate := validation.New()

	t.Run("Should create the account from the auth claims once", func(t *testing.T) {
		gw := newGateway()
		uc := usecase.NewAccountUsecase(gw, nil, validate)
		ctx := userCtx("u1")

		acc, err := uc.EnsureAccount(ctx)
		require.NoError(t, err)
		assert.Equal(t, "u1", acc.UID)
		assert.Equal(t, "Signed In u1", acc.DisplayName)
		assert.Equal(t, "u1@example.com", acc.Email)
		assert.Equal(t, domain.RoleCandidate, acc.Role)
		assert.False(t, acc.ProfileComplete)

		// A later sign-in keeps edits
		name := "Ann Lee"
		_, err = uc.UpdateAccount(ctx, &domain.UpdateAccountRequest{DisplayName: &name})
		require.NoError(t, err)
		acc, err = uc.EnsureAccount(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Ann Lee", acc.DisplayName)
	})

	t.Run("Should show auth claims before the account exists", func(t *testing.T) {
		uc := usecase.NewAccountUsecase(newGateway(), nil, validate)
		acc, err := uc.GetAccount(userCtx("u2"))
		require.NoError(t, err)
		assert.Equal(t, "Signed In u2", acc.DisplayName)
		assert.Equal(t, "u2@example.com", acc.Email)
	})

	t.Run("Should only write the fields that were sent", func(t *testing.T) {
		gw := newGateway()
		uc := usecase.NewAccountUsecase(gw, nil, validate)
		ctx := userCtx("u3")
		_, err := uc.EnsureAccount(ctx)
		require.NoError(t, err)

		title := "  Engineer "
		acc, err := uc.UpdateAccount(ctx, &domain.UpdateAccountRequest{JobTitle: &title})
		require.NoError(t, err)
		assert.Equal(t, "Engineer", acc.JobTitle)
		assert.Equal(t, "Signed In u3", acc.DisplayName)
		assert.Equal(t, "u3@example.com", acc.Email)
	})

	t.Run("Should reject an invalid phone", func(t *testing.T) {
		uc := usecase.NewAccountUsecase(newGateway(), nil, validate)
		phone := "call me"
		_, err := uc.UpdateAccount(userCtx("u4"), &domain.UpdateAccountRequest{Phone: &phone})
		assertAppError(t, err, http.StatusBadRequest)
		assert.Contains(t, err.Error(), "Phone")
	})

	t.Run("Should keep the desired job title on a title edit", func(t *testing.T) {
		gw := newGateway()
		ctx := userCtx("u5")
		require.NoError(t, gw.WriteProfile(ctx, "u5", domain.Document{
			"jobPreferences": map[string]any{"desiredJobTitle": "Lead Dev"},
		}))
		uc := usecase.NewAccountUsecase(gw, nil, validate)

		title := "Intern"
		phone := "+1 555 0100"
		acc, err := uc.UpdateAccount(ctx, &domain.UpdateAccountRequest{JobTitle: &title, Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, "Lead Dev", acc.JobTitle)
		assert.Equal(t, "+1 555 0100", acc.Phone)

		p, err := usecase.NewProfileUsecase(gw, validate).GetProfile(ctx, domain.DisplayPolicy)
		require.NoError(t, err)
		assert.Equal(t, acc.JobTitle, p.JobTitle)
	})

	t.Run("Should apply a title edit when no desired title is set", func(t *testing.T) {
		gw := newGateway()
		ctx := userCtx("u6")
		require.NoError(t, gw.WriteProfile(ctx, "u6", domain.Document{
			"jobPreferences": map[string]any{"jobType": "Full-time"},
		}))
		uc := usecase.NewAccountUsecase(gw, nil, validate)

		title := "Intern"
		acc, err := uc.UpdateAccount(ctx, &domain.UpdateAccountRequest{JobTitle: &title})
		require.NoError(t, err)
		assert.Equal(t, "Intern", acc.JobTitle)
	})

	t.Run("Should refuse a uid that reaches into another user's documents", func(t *testing.T) {
		gw := newGateway()
		require.NoError(t, gw.WriteProfile(context.Background(), "victim", domain.Document{"summary": "Original"}))
		uc := usecase.NewAccountUsecase(gw, nil, validate)

		summary := "Overwritten"
		for _, uid := range []string{"victim/profile/details", "../victim", "victim/resumes/r1", ""} {
			_, err := uc.UpdateAccount(userCtx(uid), &domain.UpdateAccountRequest{Summary: &summary})
			assertAppError(t, err, http.StatusUnauthorized)
		}

		p, err := usecase.NewProfileUsecase(gw, validate).GetProfile(userCtx("victim"), domain.DisplayPolicy)
		require.NoError(t, err)
		assert.Equal(t, "Original", p.Summary)
	})
}

func TestUploadPhoto(t *testing.T) {
	validate := validation.New()

	t.Run("Should answer 503 without photo storage", func(t *testing.T) {
		uc := usecase.NewAccountUsecase(newGateway(), nil, validate)
		_, err := uc.UploadPhoto(userCtx("u1"), testPNG(t))
		assertAppError(t, err, http.StatusServiceUnavailable)
	})

	t.Run("Should reject files that are not images", func(t *testing.T) {
		photos := new(MockPhotoStorage)
		uc := usecase.NewAccountUsecase(newGateway(), photos, validate)
		_, err := uc.UploadPhoto(userCtx("u1"), []byte("%PDF-1.4 not an image"))
		assertAppError(t, err, http.StatusBadRequest)
		photos.AssertNotCalled(t, "PutPhoto", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should store a compressed JPEG and record its URL", func(t *testing.T) {
		photos := new(MockPhotoStorage)
		photos.On("PutPhoto", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "profile-photos/u1/") && strings.HasSuffix(key, ".jpg")
		}), mock.Anything, "image/jpeg").Return("https://cdn.example.com/p.jpg", nil)

		uc := usecase.NewAccountUsecase(newGateway(), photos, validate)
		acc, err := uc.UploadPhoto(userCtx("u1"), testPNG(t))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/p.jpg", acc.PhotoURL)
		photos.AssertExpectations(t)
	})

	t.Run("Should report a failed upload as a gateway error", func(t *testing.T) {
		photos := new(MockPhotoStorage)
		photos.On("PutPhoto", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("bucket gone"))

		uc := usecase.NewAccountUsecase(newGateway(), photos, validate)
		_, err := uc.UploadPhoto(userCtx("u1"), testPNG(t))
		assertAppError(t, err, http.StatusBadGateway)
	})
}
