package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"career-portal-backend/internal/domain"
	"career-portal-backend/internal/reconcile"
	"career-portal-backend/pkg/apperror"
	"career-portal-backend/pkg/logger"
	"career-portal-backend/pkg/media"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type accountUsecase struct {
	gw       domain.PersistenceGateway
	photos   domain.PhotoStorage
	validate *validator.Validate
	now      func() time.Time
}

// NewAccountUsecase wires the account operations. photos may be nil, in
// which case photo uploads answer 503.
func NewAccountUsecase(gw domain.PersistenceGateway, photos domain.PhotoStorage, validate *validator.Validate) domain.AccountUsecase {
	return &accountUsecase{
		gw:       gw,
		photos:   photos,
		validate: validate,
		now:      time.Now,
	}
}

// EnsureAccount creates the basic record from the auth claims at first
// sign-in and is a no-op afterwards.
func (u *accountUsecase) EnsureAccount(ctx context.Context) (*domain.BasicAccountRecord, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := u.gw.ReadAccount(ctx, cu.UID)
	if err != nil {
		logger.Log.Error("read account failed", "user_id", cu.UID, "error", err)
		return nil, apperror.LoadFailed(err)
	}
	if doc != nil {
		acc := reconcile.NormalizeAccount(cu.UID, doc)
		return &acc, nil
	}

	now := u.now().UTC()
	doc = domain.Document{
		"uid":             cu.UID,
		"displayName":     cu.DisplayName,
		"email":           cu.Email,
		"role":            domain.RoleCandidate,
		"profileComplete": false,
		"createdAt":       now,
		"lastUpdated":     now,
	}
	if err := u.gw.WriteAccount(ctx, cu.UID, doc); err != nil {
		logger.Log.Error("create account failed", "user_id", cu.UID, "error", err)
		return nil, apperror.SaveFailed(err)
	}
	logger.Log.Info("account created", "user_id", cu.UID)

	acc := reconcile.NormalizeAccount(cu.UID, doc)
	return &acc, nil
}

func (u *accountUsecase) GetAccount(ctx context.Context) (*domain.BasicAccountRecord, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := u.gw.ReadAccount(ctx, cu.UID)
	if err != nil {
		logger.Log.Error("read account failed", "user_id", cu.UID, "error", err)
		return nil, apperror.LoadFailed(err)
	}

	acc := reconcile.NormalizeAccount(cu.UID, doc)
	// Not written yet: show what the auth provider knows
	if doc == nil {
		acc.DisplayName = cu.DisplayName
		acc.Email = cu.Email
	}
	return &acc, nil
}

func (u *accountUsecase) UpdateAccount(ctx context.Context, req *domain.UpdateAccountRequest) (*domain.BasicAccountRecord, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	partial := domain.Document{"lastUpdated": u.now().UTC()}
	set := func(key string, v *string) {
		if v != nil {
			partial[key] = strings.TrimSpace(*v)
		}
	}
	set("displayName", req.DisplayName)
	set("jobTitle", req.JobTitle)
	set("phone", req.Phone)
	set("location", req.Location)
	set("summary", req.Summary)

	if req.JobTitle != nil {
		desired, err := u.desiredJobTitle(ctx, cu.UID)
		if err != nil {
			return nil, err
		}
		// The account title follows the desired title while one is set
		if desired != "" {
			partial["jobTitle"] = desired
		}
	}

	if err := u.gw.WriteAccount(ctx, cu.UID, partial); err != nil {
		logger.Log.Error("update account failed", "user_id", cu.UID, "error", err)
		return nil, apperror.SaveFailed(err)
	}
	return u.GetAccount(ctx)
}

func (u *accountUsecase) desiredJobTitle(ctx context.Context, uid string) (string, error) {
	doc, err := u.gw.ReadProfile(ctx, uid)
	if err != nil {
		logger.Log.Error("read profile failed", "user_id", uid, "error", err)
		return "", apperror.LoadFailed(err)
	}
	return reconcile.NormalizePreferences(reconcile.Sub(doc, "jobPreferences")).DesiredJobTitle, nil
}

// UploadPhoto validates, shrinks and stores a profile photo, then records
// its URL on the account.
func (u *accountUsecase) UploadPhoto(ctx context.Context, data []byte) (*domain.BasicAccountRecord, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u.photos == nil {
		return nil, apperror.Unavailable("Photo upload is not configured")
	}
	if len(data) == 0 {
		return nil, apperror.BadRequest("Photo is empty")
	}
	if len(data) > media.MaxPhotoBytes {
		return nil, apperror.BadRequest("Photo must be 5MB or smaller")
	}
	if _, err := media.DetectImageType(data); err != nil {
		return nil, apperror.BadRequest("Only JPEG, PNG and WebP images are allowed")
	}

	compressed, err := media.CompressImage(data, media.PhotoMaxDimension, media.PhotoQuality)
	if err != nil {
		logger.Log.Warn("photo compression failed", "user_id", cu.UID, "error", err)
		return nil, apperror.BadRequest("Could not process image")
	}

	key := fmt.Sprintf("profile-photos/%s/%s.jpg", cu.UID, uuid.NewString())
	url, err := u.photos.PutPhoto(ctx, key, compressed, "image/jpeg")
	if err != nil {
		logger.Log.Error("photo upload failed", "user_id", cu.UID, "error", err)
		return nil, apperror.BadGateway("Failed to upload photo", err)
	}

	if err := u.gw.WriteAccount(ctx, cu.UID, domain.Document{
		"photoURL":    url,
		"lastUpdated": u.now().UTC(),
	}); err != nil {
		logger.Log.Error("save photo url failed", "user_id", cu.UID, "error", err)
		return nil, apperror.SaveFailed(err)
	}
	return u.GetAccount(ctx)
}
