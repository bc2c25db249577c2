package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// PlanUsecaseは/plansの業務ロジック。
type PlanUsecase struct {
	plans repo.FuturePlanRepository
}

func NewPlanUsecase(plans repo.FuturePlanRepository) *PlanUsecase {
	return &PlanUsecase{plans: plans}
}

type PlanDTO struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	GoalType    *string `json:"goal_type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TargetDate  *string `json:"target_date"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type CreatePlanInput struct {
	Title       string
	Description string
	GoalType    *string
	TargetDate  *string
	Status      *string
}

type UpdatePlanInput struct {
	Title       *string
	Description *string
	GoalType    *string
	TargetDate  *string
	Status      *string
}

func validPlanStatus(s string) bool {
	switch model.PlanStatus(s) {
	case model.PlanStatusActive, model.PlanStatusAchieved, model.PlanStatusDeferred, model.PlanStatusAbandoned:
		return true
	}
	return false
}

func (u *PlanUsecase) Create(ctx context.Context, userID int64, in CreatePlanInput) (*PlanDTO, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "Title is required")
	}

	// planはdescriptionも必須（todoと違う）
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "Description is required")
	}

	p := &model.FuturePlan{
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      model.PlanStatusActive,
	}

	if in.GoalType != nil {
		g := strings.TrimSpace(*in.GoalType)
		if len(g) > 50 {
			return nil, NewHTTPError(http.StatusBadRequest, "goal_type must be a string of max 50 chars")
		}
		if g != "" {
			p.GoalType = &g
		}
	}

	if in.Status != nil {
		s := strings.ToLower(*in.Status)
		if !validPlanStatus(s) {
			return nil, NewHTTPError(http.StatusBadRequest, "Invalid status. Allowed values are: active, achieved, deferred, abandoned")
		}
		p.Status = model.PlanStatus(s)
	}

	if in.TargetDate != nil && *in.TargetDate != "" {
		d, err := parseDate(*in.TargetDate)
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, "Invalid target_date format. Please use YYYY-MM-DD.")
		}
		p.TargetDate = &d
	}

	if err := u.plans.Create(ctx, p); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toPlanDTO(p)
	return &dto, nil
}

func (u *PlanUsecase) List(ctx context.Context, userID int64) ([]PlanDTO, error) {
	plans, err := u.plans.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dtos := make([]PlanDTO, 0, len(plans))
	for i := range plans {
		dtos = append(dtos, toPlanDTO(&plans[i]))
	}
	return dtos, nil
}

func (u *PlanUsecase) Get(ctx context.Context, userID, planID int64) (*PlanDTO, error) {
	p, err := u.findOwned(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	dto := toPlanDTO(p)
	return &dto, nil
}

func (u *PlanUsecase) Update(ctx context.Context, userID, planID int64, in UpdatePlanInput) (*PlanDTO, error) {
	p, err := u.findOwned(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, NewHTTPError(http.StatusBadRequest, "Title must be a non-empty string")
		}
		p.Title = title
	}

	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, NewHTTPError(http.StatusBadRequest, "Description must be a non-empty string")
		}
		p.Description = description
	}

	if in.GoalType != nil {
		g := strings.TrimSpace(*in.GoalType)
		if len(g) > 50 {
			return nil, NewHTTPError(http.StatusBadRequest, "goal_type must be a string of max 50 chars")
		}
		if g != "" {
			p.GoalType = &g
		} else {
			p.GoalType = nil
		}
	}

	if in.Status != nil {
		s := strings.ToLower(*in.Status)
		if !validPlanStatus(s) {
			return nil, NewHTTPError(http.StatusBadRequest, "Invalid status. Allowed values are: active, achieved, deferred, abandoned")
		}
		p.Status = model.PlanStatus(s)
	}

	if in.TargetDate != nil {
		if *in.TargetDate == "" {
			p.TargetDate = nil
		} else {
			d, err := parseDate(*in.TargetDate)
			if err != nil {
				return nil, NewHTTPError(http.StatusBadRequest, "Invalid target_date format. Please use YYYY-MM-DD.")
			}
			p.TargetDate = &d
		}
	}

	if err := u.plans.Update(ctx, p); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toPlanDTO(p)
	return &dto, nil
}

func (u *PlanUsecase) Delete(ctx context.Context, userID, planID int64) error {
	if _, err := u.findOwned(ctx, userID, planID); err != nil {
		return err
	}

	if err := u.plans.DeleteByID(ctx, planID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Future plan not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func (u *PlanUsecase) findOwned(ctx context.Context, userID, planID int64) (*model.FuturePlan, error) {
	p, err := u.plans.FindByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "Future plan not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if p.UserID != userID {
		return nil, NewHTTPError(http.StatusForbidden, "Forbidden: You do not have permission to access this plan")
	}

	return p, nil
}

func toPlanDTO(p *model.FuturePlan) PlanDTO {
	return PlanDTO{
		ID:          p.ID,
		UserID:      p.UserID,
		GoalType:    p.GoalType,
		Title:       p.Title,
		Description: p.Description,
		TargetDate:  formatDate(p.TargetDate),
		Status:      string(p.Status),
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}
