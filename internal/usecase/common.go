package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"career-portal-backend/internal/domain"
	"career-portal-backend/pkg/apperror"
	"career-portal-backend/pkg/validation"
)

// currentUser returns the authenticated caller or a 401. A uid that cannot
// name its own documents is rejected like a missing one.
func currentUser(ctx context.Context) (domain.CurrentUser, error) {
	cu, ok := domain.CurrentUserFrom(ctx)
	if !ok {
		return domain.CurrentUser{}, apperror.Unauthorized("User not authenticated")
	}
	if !domain.ValidSegment(cu.UID) {
		return domain.CurrentUser{}, apperror.Unauthorized("Invalid user id")
	}
	return cu, nil
}

// resumeMissing reports whether a gateway error means the resume id names
// nothing the caller owns.
func resumeMissing(err error) bool {
	return errors.Is(err, domain.ErrDocumentNotFound) || errors.Is(err, domain.ErrInvalidPathSegment)
}

func validationError(err error) error {
	return apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
}

// toValue converts typed values (entry slices, structs) into the plain
// JSON shapes documents hold, so every store sees the same types.
func toValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// listOf is the validation wrapper for list payloads.
type listOf[T any] struct {
	Items []T `validate:"dive"`
}

// compact drops entries that are still the blank template.
func compact[T comparable](items []T) []T {
	var zero T
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it != zero {
			out = append(out, it)
		}
	}
	return out
}

func removeAt[T any](items []T, index int) ([]T, bool) {
	if index < 0 || index >= len(items) {
		return items, false
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...), true
}
