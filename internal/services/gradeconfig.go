package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradepoint/gradepoint-backend/internal/gradescale"
	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/platform/apierr"
	"github.com/gradepoint/gradepoint-backend/internal/repos"
	"github.com/gradepoint/gradepoint-backend/internal/types"
	"github.com/gradepoint/gradepoint-backend/internal/validation"
)

type CreateGradeConfigInput struct {
	Name          string   `json:"name" validate:"required,min=1,max=10"`
	Points        float64  `json:"points" validate:"min=0,max=10"`
	Description   *string  `json:"description" validate:"omitnil,max=100"`
	MinPercentage *float64 `json:"min_percentage" validate:"omitnil,min=0,max=100"`
	MaxPercentage *float64 `json:"max_percentage" validate:"omitnil,min=0,max=100"`
}

type UpdateGradeConfigInput struct {
	Name          *string  `json:"name" validate:"omitnil,min=1,max=10"`
	Points        *float64 `json:"points" validate:"omitnil,min=0,max=10"`
	Description   *string  `json:"description" validate:"omitnil,max=100"`
	MinPercentage *float64 `json:"min_percentage" validate:"omitnil,min=0,max=100"`
	MaxPercentage *float64 `json:"max_percentage" validate:"omitnil,min=0,max=100"`
}

// DeleteGradeResult reports what grade deletion did to dependent subjects.
type DeleteGradeResult struct {
	Reassigned       int    `json:"reassigned"`
	ReplacementGrade string `json:"replacement_grade,omitempty"`
}

// GradeConfigService owns the user's grading scale. Delete is the
// grade-lifecycle coordinator: dependent subjects are reassigned to the
// highest remaining grade, affected semester caches recomputed, and the
// config removed, all in one transaction.
type GradeConfigService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.GradeConfig, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateGradeConfigInput) (*types.GradeConfig, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdateGradeConfigInput) (*types.GradeConfig, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (*DeleteGradeResult, error)
	ResetToDefaults(ctx context.Context, userID uuid.UUID) ([]*types.GradeConfig, error)
}

type gradeConfigService struct {
	db           *gorm.DB
	gradeConfigs repos.GradeConfigRepo
	subjects     repos.SubjectRepo
	semesterSvc  SemesterService
	events       EventService
	cache        *AnalyticsCache
	seed         []gradescale.Grade
	log          *logger.Logger
}

func NewGradeConfigService(
	db *gorm.DB,
	gradeConfigs repos.GradeConfigRepo,
	subjects repos.SubjectRepo,
	semesterSvc SemesterService,
	events EventService,
	cache *AnalyticsCache,
	seed []gradescale.Grade,
	baseLog *logger.Logger,
) GradeConfigService {
	svcLog := baseLog.With("service", "GradeConfigService")
	if len(seed) == 0 {
		seed = gradescale.Get(gradescale.DefaultSystem)
	}
	return &gradeConfigService{
		db:           db,
		gradeConfigs: gradeConfigs,
		subjects:     subjects,
		semesterSvc:  semesterSvc,
		events:       events,
		cache:        cache,
		seed:         seed,
		log:          svcLog,
	}
}

// List returns the user's grade configs, seeding the default scale on first
// touch so a fresh account always has grades to assign.
func (s *gradeConfigService) List(ctx context.Context, userID uuid.UUID) ([]*types.GradeConfig, error) {
	configs, err := s.gradeConfigs.GetByUserID(ctx, nil, userID)
	if err != nil {
		s.log.Error("Failed to list grade configs", "user_id", userID.String(), "error", err)
		return nil, err
	}
	if len(configs) > 0 {
		return configs, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		configs, err = s.seedDefaults(ctx, tx, userID)
		return err
	})
	if err != nil {
		s.log.Error("Failed to seed grade configs", "user_id", userID.String(), "error", err)
		return nil, err
	}
	return configs, nil
}

func (s *gradeConfigService) Create(ctx context.Context, userID uuid.UUID, input CreateGradeConfigInput) (*types.GradeConfig, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var created *types.GradeConfig
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.gradeConfigs.GetByUserAndPoints(ctx, tx, userID, input.Points)
		if err != nil {
			return err
		}
		if existing != nil {
			return apierr.Conflict("grade %q already has %v points", existing.Name, input.Points)
		}

		maxOrder, err := s.gradeConfigs.MaxOrder(ctx, tx, userID)
		if err != nil {
			return err
		}
		row := &types.GradeConfig{
			UserID:        userID,
			Name:          input.Name,
			Points:        input.Points,
			Description:   input.Description,
			MinPercentage: input.MinPercentage,
			MaxPercentage: input.MaxPercentage,
			Order:         maxOrder + 1,
		}
		rows, err := s.gradeConfigs.Create(ctx, tx, []*types.GradeConfig{row})
		if err != nil {
			return err
		}
		created = rows[0]
		return s.events.Record(ctx, tx, userID, "grade_config.created", created.ID, map[string]interface{}{
			"name":   created.Name,
			"points": created.Points,
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update edits a config in place. Subjects keep their snapshotted points:
// changing a grade's value affects future assignments only.
func (s *gradeConfigService) Update(ctx context.Context, userID, id uuid.UUID, input UpdateGradeConfigInput) (*types.GradeConfig, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	cfg, err := s.ownedConfig(ctx, nil, userID, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Points != nil && *input.Points != cfg.Points {
			existing, err := s.gradeConfigs.GetByUserAndPoints(ctx, tx, userID, *input.Points)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != id {
				return apierr.Conflict("grade %q already has %v points", existing.Name, *input.Points)
			}
			updates["points"] = *input.Points
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.MinPercentage != nil {
			updates["min_percentage"] = *input.MinPercentage
		}
		if input.MaxPercentage != nil {
			updates["max_percentage"] = *input.MaxPercentage
		}

		if err := s.gradeConfigs.Update(ctx, tx, id, updates); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, userID, "grade_config.updated", id, nil)
	})
	if err != nil {
		return nil, err
	}
	return s.gradeConfigs.GetByID(ctx, nil, id)
}

// Delete removes a grade config. When subjects still reference the grade
// label they are reassigned to the highest-points remaining config and each
// affected semester's cache is recomputed, atomically with the delete.
// Deleting the user's only config while subjects depend on it is refused.
func (s *gradeConfigService) Delete(ctx context.Context, userID, id uuid.UUID) (*DeleteGradeResult, error) {
	result := &DeleteGradeResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cfg, err := s.ownedConfig(ctx, tx, userID, id)
		if err != nil {
			return err
		}

		dependents, err := s.subjects.GetByUserAndGrade(ctx, tx, userID, cfg.Name)
		if err != nil {
			return err
		}

		if len(dependents) > 0 {
			configs, err := s.gradeConfigs.GetByUserID(ctx, tx, userID)
			if err != nil {
				return err
			}
			var replacement *types.GradeConfig
			for _, c := range configs {
				if c.ID == cfg.ID {
					continue
				}
				if replacement == nil || c.Points > replacement.Points {
					replacement = c
				}
			}
			if replacement == nil {
				return apierr.InvariantViolation(
					"cannot delete grade %q: %d subjects use it and no other grade remains",
					cfg.Name, len(dependents),
				)
			}

			ids := make([]uuid.UUID, 0, len(dependents))
			semesterSet := make(map[uuid.UUID]struct{})
			for _, sub := range dependents {
				ids = append(ids, sub.ID)
				semesterSet[sub.SemesterID] = struct{}{}
			}
			if err := s.subjects.ReplaceGrade(ctx, tx, ids, replacement.Name, replacement.Points); err != nil {
				return err
			}
			for semesterID := range semesterSet {
				if err := s.semesterSvc.RecalculateAggregates(ctx, tx, semesterID); err != nil {
					return err
				}
			}
			result.Reassigned = len(dependents)
			result.ReplacementGrade = replacement.Name
		}

		if err := s.gradeConfigs.DeleteByID(ctx, tx, id); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, userID, "grade_config.deleted", id, map[string]interface{}{
			"grade":       cfg.Name,
			"reassigned":  result.Reassigned,
			"replacement": result.ReplacementGrade,
		})
	})
	if err != nil {
		s.log.Error("Failed to delete grade config", "grade_config_id", id.String(), "error", err)
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)
	return result, nil
}

// ResetToDefaults drops custom grade configs that nothing references and
// restores any missing default grades. Custom configs still carried by
// subjects are kept so no grade label dangles.
func (s *gradeConfigService) ResetToDefaults(ctx context.Context, userID uuid.UUID) ([]*types.GradeConfig, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		configs, err := s.gradeConfigs.GetByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if len(configs) == 0 {
			_, err = s.seedDefaults(ctx, tx, userID)
			return err
		}

		byName := make(map[string]*types.GradeConfig, len(configs))
		customs := make([]*types.GradeConfig, 0)
		referenced := make(map[uuid.UUID]bool)
		for _, cfg := range configs {
			byName[cfg.Name] = cfg
			if cfg.IsDefault {
				continue
			}
			customs = append(customs, cfg)
			dependents, err := s.subjects.GetByUserAndGrade(ctx, tx, userID, cfg.Name)
			if err != nil {
				return err
			}
			if len(dependents) > 0 {
				referenced[cfg.ID] = true
			}
		}

		deleted := 0
		if len(referenced) == 0 {
			// No custom grade is carried by a subject, so one bulk delete
			// clears them all.
			if err := s.gradeConfigs.DeleteNonDefaultByUserID(ctx, tx, userID); err != nil {
				return err
			}
			for _, cfg := range customs {
				delete(byName, cfg.Name)
			}
			deleted = len(customs)
		} else {
			for _, cfg := range customs {
				if referenced[cfg.ID] {
					continue
				}
				if err := s.gradeConfigs.DeleteByID(ctx, tx, cfg.ID); err != nil {
					return err
				}
				delete(byName, cfg.Name)
				deleted++
			}
		}

		missing := make([]*types.GradeConfig, 0)
		for _, g := range s.seed {
			if _, ok := byName[g.Name]; ok {
				continue
			}
			missing = append(missing, &types.GradeConfig{
				UserID:    userID,
				Name:      g.Name,
				Points:    g.Points,
				Order:     g.Order,
				IsDefault: true,
			})
		}
		if _, err := s.gradeConfigs.Create(ctx, tx, missing); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, userID, "grade_config.reset", uuid.Nil, map[string]interface{}{
			"deleted":  deleted,
			"restored": len(missing),
		})
	})
	if err != nil {
		s.log.Error("Failed to reset grade configs", "user_id", userID.String(), "error", err)
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)
	return s.gradeConfigs.GetByUserID(ctx, nil, userID)
}

func (s *gradeConfigService) seedDefaults(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.GradeConfig, error) {
	rows := make([]*types.GradeConfig, 0, len(s.seed))
	for _, g := range s.seed {
		rows = append(rows, &types.GradeConfig{
			UserID:    userID,
			Name:      g.Name,
			Points:    g.Points,
			Order:     g.Order,
			IsDefault: true,
		})
	}
	return s.gradeConfigs.Create(ctx, tx, rows)
}

func (s *gradeConfigService) ownedConfig(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.GradeConfig, error) {
	cfg, err := s.gradeConfigs.GetByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("grade config %s not found", id)
		}
		return nil, err
	}
	if cfg.UserID != userID {
		return nil, apierr.NotFound("grade config %s not found", id)
	}
	return cfg, nil
}
