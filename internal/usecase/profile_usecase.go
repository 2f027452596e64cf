package usecase

import (
	"context"
	"strings"
	"time"

	"career-portal-backend/internal/domain"
	"career-portal-backend/internal/reconcile"
	"career-portal-backend/pkg/apperror"
	"career-portal-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const maxSkillLength = 60

type profileUsecase struct {
	gw       domain.PersistenceGateway
	validate *validator.Validate
	now      func() time.Time
}

func NewProfileUsecase(gw domain.PersistenceGateway, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{
		gw:       gw,
		validate: validate,
		now:      time.Now,
	}
}

func (u *profileUsecase) GetProfile(ctx context.Context, policy domain.ListPolicy) (*domain.ResolvedProfile, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	p, err := loadProfile(ctx, u.gw, cu.UID, policy)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile writes the whole edit form. Lists replace what was stored,
// blank template rows are dropped and skills are de-duplicated.
func (u *profileUsecase) SaveProfile(ctx context.Context, rec *domain.DetailedProfileRecord) (*domain.ResolvedProfile, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.validate.Struct(rec); err != nil {
		return nil, validationError(err)
	}

	existing, err := u.gw.ReadProfile(ctx, cu.UID)
	if err != nil {
		logger.Log.Error("read profile failed", "user_id", cu.UID, "error", err)
		return nil, apperror.LoadFailed(err)
	}

	clean := domain.DetailedProfileRecord{
		PersonalInfo:   rec.PersonalInfo,
		Education:      compact(rec.Education),
		Experience:     compact(rec.Experience),
		Certifications: compact(rec.Certifications),
		Skills:         reconcile.DedupeSkills(rec.Skills),
		JobPreferences: rec.JobPreferences,
	}
	partial, err := domain.ToDocument(clean)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := u.now().UTC()
	partial["metadata"] = profileMetadata(existing, now, map[string]any{"profileComplete": true})

	if err := u.gw.WriteProfile(ctx, cu.UID, partial); err != nil {
		logger.Log.Error("write profile failed", "user_id", cu.UID, "error", err)
		return nil, apperror.SaveFailed(err)
	}

	p, err := syncAccount(ctx, u.gw, cu.UID, now)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AddSkill appends one skill. Skills behave as a case-insensitive set, so
// adding one that is already there is a conflict.
func (u *profileUsecase) AddSkill(ctx context.Context, skill string) (*domain.ResolvedProfile, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, apperror.BadRequest("Skill is required")
	}
	if len([]rune(skill)) > maxSkillLength {
		return nil, apperror.BadRequest("Skill must be at most 60 characters")
	}

	p, err := loadProfile(ctx, u.gw, cu.UID, domain.DisplayPolicy)
	if err != nil {
		return nil, err
	}
	skills := reconcile.DedupeSkills(append(append([]string{}, p.Skills...), skill))
	if len(skills) == len(reconcile.DedupeSkills(p.Skills)) {
		return nil, apperror.Conflict("Skill already added")
	}

	return u.writeList(ctx, cu.UID, domain.ListSkills, skills)
}

// RemoveEntry deletes one entry of a profile list by position.
func (u *profileUsecase) RemoveEntry(ctx context.Context, list domain.ProfileList, index int) (*domain.ResolvedProfile, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !list.IsValid() {
		return nil, apperror.BadRequest("Unknown profile list")
	}

	p, err := loadProfile(ctx, u.gw, cu.UID, domain.DisplayPolicy)
	if err != nil {
		return nil, err
	}

	var (
		value any
		ok    bool
	)
	switch list {
	case domain.ListEducation:
		value, ok = removeAt(p.Education, index)
	case domain.ListExperience:
		value, ok = removeAt(p.Experience, index)
	case domain.ListCertifications:
		value, ok = removeAt(p.Certifications, index)
	case domain.ListSkills:
		value, ok = removeAt(p.Skills, index)
	}
	if !ok {
		return nil, apperror.NotFound("Entry not found")
	}

	return u.writeList(ctx, cu.UID, list, value)
}

func (u *profileUsecase) writeList(ctx context.Context, uid string, list domain.ProfileList, items any) (*domain.ResolvedProfile, error) {
	value, err := toValue(items)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	now := u.now().UTC()
	partial := domain.Document{
		string(list): value,
		"metadata":   map[string]any{"updatedAt": now},
	}
	if err := u.gw.WriteProfile(ctx, uid, partial); err != nil {
		logger.Log.Error("write profile list failed", "user_id", uid, "list", list, "error", err)
		return nil, apperror.SaveFailed(err)
	}
	if err := u.gw.WriteAccount(ctx, uid, domain.Document{"lastUpdated": now}); err != nil {
		logger.Log.Error("touch account failed", "user_id", uid, "error", err)
		return nil, apperror.SaveFailed(err)
	}

	p, err := loadProfile(ctx, u.gw, uid, domain.DisplayPolicy)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// loadProfile reads both records and merges them.
func loadProfile(ctx context.Context, gw domain.PersistenceGateway, uid string, policy domain.ListPolicy) (domain.ResolvedProfile, error) {
	basic, err := gw.ReadAccount(ctx, uid)
	if err != nil {
		logger.Log.Error("read account failed", "user_id", uid, "error", err)
		return domain.ResolvedProfile{}, apperror.LoadFailed(err)
	}
	detailed, err := gw.ReadProfile(ctx, uid)
	if err != nil {
		logger.Log.Error("read profile failed", "user_id", uid, "error", err)
		return domain.ResolvedProfile{}, apperror.LoadFailed(err)
	}
	return reconcile.MergeProfileWith(basic, detailed, policy), nil
}

// syncAccount copies the merged identity fields back onto the basic
// account record. The merged job title already prefers the desired title,
// which keeps the account title in step with the job preferences.
func syncAccount(ctx context.Context, gw domain.PersistenceGateway, uid string, now time.Time) (domain.ResolvedProfile, error) {
	p, err := loadProfile(ctx, gw, uid, domain.DisplayPolicy)
	if err != nil {
		return p, err
	}

	partial := domain.Document{
		"profileComplete": p.ProfileComplete,
		"lastUpdated":     now,
	}
	for key, v := range map[string]string{
		"displayName": p.FullName,
		"jobTitle":    p.JobTitle,
		"email":       p.Email,
		"phone":       p.Phone,
		"location":    p.Location,
		"summary":     p.Summary,
	} {
		if v != "" {
			partial[key] = v
		}
	}

	if err := gw.WriteAccount(ctx, uid, partial); err != nil {
		logger.Log.Error("account sync failed", "user_id", uid, "error", err)
		return p, apperror.SaveFailed(err)
	}
	return p, nil
}

// profileMetadata builds the metadata partial of a profile write, adding
// createdAt the first time.
func profileMetadata(existing domain.Document, now time.Time, extra map[string]any) map[string]any {
	meta := map[string]any{"updatedAt": now}
	if reconcile.ResolveTime(existing, "metadata.createdAt").IsZero() {
		meta["createdAt"] = now
	}
	for k, v := range extra {
		meta[k] = v
	}
	return meta
}
