package usecase

import (
	"context"
	"encoding/json"
	"time"

	"career-portal-backend/internal/domain"
	"career-portal-backend/internal/reconcile"
	"career-portal-backend/pkg/apperror"
	"career-portal-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type setupUsecase struct {
	gw       domain.PersistenceGateway
	validate *validator.Validate
	now      func() time.Time
}

// NewSetupUsecase drives the employee and employer setup wizards. The
// current step is stored with the data it belongs to: metadata.setupStep
// on the detailed profile, setupStep on the employer document.
func NewSetupUsecase(gw domain.PersistenceGateway, validate *validator.Validate) domain.SetupUsecase {
	return &setupUsecase{
		gw:       gw,
		validate: validate,
		now:      time.Now,
	}
}

func (u *setupUsecase) GetState(ctx context.Context, kind domain.SetupKind) (*domain.SetupState, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, apperror.BadRequest("Unknown setup kind")
	}
	state, _, err := u.load(ctx, cu.UID, kind)
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Next saves the data of the current step and advances by one. The last
// step completes the wizard instead.
func (u *setupUsecase) Next(ctx context.Context, kind domain.SetupKind, req *domain.SetupStepRequest) (*domain.SetupState, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, apperror.BadRequest("Unknown setup kind")
	}

	state, existing, err := u.load(ctx, cu.UID, kind)
	if err != nil {
		return nil, err
	}
	if state.Complete {
		return nil, apperror.Conflict("Setup is already complete")
	}
	if req.Step != state.Step {
		return nil, apperror.Conflict("Setup step is out of date, reload and try again")
	}

	partial, err := u.stepData(kind, state.StepName, req.Data)
	if err != nil {
		return nil, err
	}

	wizard := domain.Wizard{Step: state.Step, Total: state.Total}
	complete := wizard.IsLast()
	next := wizard.Next()
	now := u.now().UTC()

	switch kind {
	case domain.SetupEmployee:
		extra := map[string]any{"setupStep": next.Step}
		if complete {
			extra["profileComplete"] = true
		}
		partial["metadata"] = profileMetadata(existing, now, extra)
		if err := u.gw.WriteProfile(ctx, cu.UID, partial); err != nil {
			logger.Log.Error("write setup step failed", "user_id", cu.UID, "step", state.StepName, "error", err)
			return nil, apperror.SaveFailed(err)
		}
		if complete {
			if _, err := syncAccount(ctx, u.gw, cu.UID, now); err != nil {
				return nil, err
			}
		}

	case domain.SetupEmployer:
		partial["setupStep"] = next.Step
		partial["updatedAt"] = now
		if complete {
			partial["setupComplete"] = true
		}
		if err := u.gw.WriteEmployer(ctx, cu.UID, partial); err != nil {
			logger.Log.Error("write setup step failed", "user_id", cu.UID, "step", state.StepName, "error", err)
			return nil, apperror.SaveFailed(err)
		}
		if complete {
			if err := u.gw.WriteAccount(ctx, cu.UID, domain.Document{
				"role":        domain.RoleEmployer,
				"lastUpdated": now,
			}); err != nil {
				logger.Log.Error("employer role update failed", "user_id", cu.UID, "error", err)
				return nil, apperror.SaveFailed(err)
			}
		}
	}

	if complete {
		logger.Log.Info("setup completed", "user_id", cu.UID, "kind", kind)
	}
	return newSetupState(kind, next.Step, complete), nil
}

// Back moves one step back. Only the step index is written; the data of
// the step being left stays as it was.
func (u *setupUsecase) Back(ctx context.Context, kind domain.SetupKind) (*domain.SetupState, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, apperror.BadRequest("Unknown setup kind")
	}

	state, _, err := u.load(ctx, cu.UID, kind)
	if err != nil {
		return nil, err
	}
	wizard := domain.Wizard{Step: state.Step, Total: state.Total}
	if state.Complete || wizard.IsFirst() {
		return state, nil
	}
	prev := wizard.Back()

	switch kind {
	case domain.SetupEmployee:
		err = u.gw.WriteProfile(ctx, cu.UID, domain.Document{
			"metadata": map[string]any{"setupStep": prev.Step},
		})
	case domain.SetupEmployer:
		err = u.gw.WriteEmployer(ctx, cu.UID, domain.Document{"setupStep": prev.Step})
	}
	if err != nil {
		logger.Log.Error("write setup step failed", "user_id", cu.UID, "error", err)
		return nil, apperror.SaveFailed(err)
	}
	return newSetupState(kind, prev.Step, false), nil
}

// load returns the stored wizard position and the document it lives in.
func (u *setupUsecase) load(ctx context.Context, uid string, kind domain.SetupKind) (*domain.SetupState, domain.Document, error) {
	var (
		doc     domain.Document
		err     error
		stepKey = "metadata.setupStep"
		doneKey = "metadata.profileComplete"
	)
	if kind == domain.SetupEmployer {
		doc, err = u.gw.ReadEmployer(ctx, uid)
		stepKey = "setupStep"
		doneKey = "setupComplete"
	} else {
		doc, err = u.gw.ReadProfile(ctx, uid)
	}
	if err != nil {
		logger.Log.Error("read setup state failed", "user_id", uid, "kind", kind, "error", err)
		return nil, nil, apperror.LoadFailed(err)
	}

	step := reconcile.ResolveInt(doc, stepKey)
	complete := reconcile.ResolveBool(doc, doneKey)
	return newSetupState(kind, step, complete), doc, nil
}

func newSetupState(kind domain.SetupKind, step int, complete bool) *domain.SetupState {
	steps := kind.Steps()
	// Clamp whatever was stored
	w := domain.Wizard{Step: step, Total: len(steps)}
	if w.Step < 0 {
		w.Step = 0
	}
	if w.Step > w.Total-1 {
		w.Step = w.Total - 1
	}
	return &domain.SetupState{
		Kind:     kind,
		Step:     w.Step,
		StepName: steps[w.Step],
		Total:    w.Total,
		Complete: complete,
	}
}

// stepData decodes and validates the payload of one step and returns the
// partial document it writes.
func (u *setupUsecase) stepData(kind domain.SetupKind, step string, data json.RawMessage) (domain.Document, error) {
	var payload any
	switch kind {
	case domain.SetupEmployee:
		switch step {
		case "personal":
			payload = &domain.PersonalInfo{}
		case "education":
			payload = &domain.EducationStep{}
		case "experience":
			payload = &domain.ExperienceStep{}
		case "skills":
			payload = &domain.SkillsStep{}
		case "preferences":
			payload = &domain.JobPreferences{}
		}
	case domain.SetupEmployer:
		switch step {
		case "company":
			payload = &domain.EmployerCompanyStep{}
		case "details":
			payload = &domain.EmployerDetailsStep{}
		case "contact":
			payload = &domain.EmployerContactStep{}
		}
	}
	if payload == nil {
		return nil, apperror.BadRequest("Unknown setup step")
	}

	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, apperror.BadRequest("Invalid step data")
	}
	if err := u.validate.Struct(payload); err != nil {
		return nil, validationError(err)
	}

	switch p := payload.(type) {
	case *domain.PersonalInfo:
		doc, err := domain.ToDocument(p)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return domain.Document{"personalInfo": map[string]any(doc)}, nil
	case *domain.EducationStep:
		p.Education = compact(p.Education)
	case *domain.ExperienceStep:
		p.Experience = compact(p.Experience)
	case *domain.SkillsStep:
		p.Skills = reconcile.DedupeSkills(p.Skills)
		p.Certifications = compact(p.Certifications)
	case *domain.JobPreferences:
		doc, err := domain.ToDocument(p)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return domain.Document{"jobPreferences": map[string]any(doc)}, nil
	}

	doc, err := domain.ToDocument(payload)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return doc, nil
}
