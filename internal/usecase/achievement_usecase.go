package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// AchievementUsecaseは/achievementsの業務ロジック。
type AchievementUsecase struct {
	achievements repo.AchievementRepository
}

func NewAchievementUsecase(achievements repo.AchievementRepository) *AchievementUsecase {
	return &AchievementUsecase{achievements: achievements}
}

type AchievementDTO struct {
	ID                  int64    `json:"id"`
	UserID              int64    `json:"user_id"`
	Title               string   `json:"title"`
	Description         *string  `json:"description"`
	QuantifiableResults *string  `json:"quantifiable_results"`
	CoreSkills          []string `json:"core_skills_json"`
	DateAchieved        *string  `json:"date_achieved"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

type CreateAchievementInput struct {
	Title               string
	Description         *string
	QuantifiableResults *string
	CoreSkills          *[]string
	DateAchieved        *string
}

type UpdateAchievementInput struct {
	Title               *string
	Description         *string
	QuantifiableResults *string
	CoreSkills          *[]string
	DateAchieved        *string
}

func (u *AchievementUsecase) Create(ctx context.Context, userID int64, in CreateAchievementInput) (*AchievementDTO, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "Title is required and must be a non-empty string")
	}

	a := &model.Achievement{
		UserID:     userID,
		Title:      title,
		CoreSkills: []string{},
	}

	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			a.Description = &d
		}
	}

	if in.QuantifiableResults != nil {
		if q := strings.TrimSpace(*in.QuantifiableResults); q != "" {
			a.QuantifiableResults = &q
		}
	}

	if in.CoreSkills != nil {
		a.CoreSkills = *in.CoreSkills
	}

	if in.DateAchieved != nil && *in.DateAchieved != "" {
		d, err := parseDate(*in.DateAchieved)
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, "Invalid date_achieved format. Please use YYYY-MM-DD.")
		}
		a.DateAchieved = &d
	}

	if err := u.achievements.Create(ctx, a); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toAchievementDTO(a)
	return &dto, nil
}

func (u *AchievementUsecase) List(ctx context.Context, userID int64) ([]AchievementDTO, error) {
	items, err := u.achievements.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dtos := make([]AchievementDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toAchievementDTO(&items[i]))
	}
	return dtos, nil
}

func (u *AchievementUsecase) Get(ctx context.Context, userID, achievementID int64) (*AchievementDTO, error) {
	a, err := u.findOwned(ctx, userID, achievementID)
	if err != nil {
		return nil, err
	}

	dto := toAchievementDTO(a)
	return &dto, nil
}

func (u *AchievementUsecase) Update(ctx context.Context, userID, achievementID int64, in UpdateAchievementInput) (*AchievementDTO, error) {
	a, err := u.findOwned(ctx, userID, achievementID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, NewHTTPError(http.StatusBadRequest, "Title is required and must be a non-empty string")
		}
		a.Title = title
	}

	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			a.Description = &d
		} else {
			a.Description = nil
		}
	}

	if in.QuantifiableResults != nil {
		if q := strings.TrimSpace(*in.QuantifiableResults); q != "" {
			a.QuantifiableResults = &q
		} else {
			a.QuantifiableResults = nil
		}
	}

	if in.CoreSkills != nil {
		a.CoreSkills = *in.CoreSkills
	}

	if in.DateAchieved != nil {
		if *in.DateAchieved == "" {
			a.DateAchieved = nil
		} else {
			d, err := parseDate(*in.DateAchieved)
			if err != nil {
				return nil, NewHTTPError(http.StatusBadRequest, "Invalid date_achieved format. Please use YYYY-MM-DD.")
			}
			a.DateAchieved = &d
		}
	}

	if err := u.achievements.Update(ctx, a); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toAchievementDTO(a)
	return &dto, nil
}

func (u *AchievementUsecase) Delete(ctx context.Context, userID, achievementID int64) error {
	if _, err := u.findOwned(ctx, userID, achievementID); err != nil {
		return err
	}

	if err := u.achievements.DeleteByID(ctx, achievementID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Achievement not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func (u *AchievementUsecase) findOwned(ctx context.Context, userID, achievementID int64) (*model.Achievement, error) {
	a, err := u.achievements.FindByID(ctx, achievementID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "Achievement not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if a.UserID != userID {
		return nil, NewHTTPError(http.StatusForbidden, "Forbidden: You do not have permission to access this achievement")
	}

	return a, nil
}

func toAchievementDTO(a *model.Achievement) AchievementDTO {
	skills := a.CoreSkills
	if skills == nil {
		skills = []string{}
	}

	return AchievementDTO{
		ID:                  a.ID,
		UserID:              a.UserID,
		Title:               a.Title,
		Description:         a.Description,
		QuantifiableResults: a.QuantifiableResults,
		CoreSkills:          skills,
		DateAchieved:        formatDate(a.DateAchieved),
		CreatedAt:           formatTime(a.CreatedAt),
		UpdatedAt:           formatTime(a.UpdatedAt),
	}
}
