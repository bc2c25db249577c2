package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ProfileUsecaseは/anchor/profileの業務ロジック。
// Profileは登録時に作られるが、無ければGETが自動で作る（旧データ救済）。
type ProfileUsecase struct {
	profiles repo.ProfileRepository
	users    repo.UserRepository
}

func NewProfileUsecase(profiles repo.ProfileRepository, users repo.UserRepository) *ProfileUsecase {
	return &ProfileUsecase{profiles: profiles, users: users}
}

type ProfileDTO struct {
	UserID            int64   `json:"user_id"`
	ProfessionalTitle *string `json:"professional_title"`
	OneLinerBio       *string `json:"one_liner_bio"`
	Skill             *string `json:"skill"`
	Summary           *string `json:"summary"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// 部分更新。nil=未指定、空文字=クリア。
type UpdateProfileInput struct {
	ProfessionalTitle *string
	OneLinerBio       *string
	Skill             *string
	Summary           *string
}

func (in UpdateProfileInput) empty() bool {
	return in.ProfessionalTitle == nil && in.OneLinerBio == nil && in.Skill == nil && in.Summary == nil
}

func (u *ProfileUsecase) Get(ctx context.Context, userID int64) (*ProfileDTO, error) {
	p, err := u.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := toProfileDTO(p)
	return &dto, nil
}

// ErrNoProfileFieldsはPUTに既知フィールドが1つも無かった印。
// エラーではなく200で「何も更新していない」と返す（元仕様）。
var ErrNoProfileFields = errors.New("no relevant profile fields")

func (u *ProfileUsecase) Update(ctx context.Context, userID int64, in UpdateProfileInput) (*ProfileDTO, error) {
	if in.empty() {
		return nil, ErrNoProfileFields
	}

	p, err := u.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	apply := func(dst **string, src *string) {
		if src == nil {
			return
		}
		if s := strings.TrimSpace(*src); s != "" {
			*dst = &s
		} else {
			*dst = nil
		}
	}

	apply(&p.ProfessionalTitle, in.ProfessionalTitle)
	apply(&p.OneLinerBio, in.OneLinerBio)
	apply(&p.Skill, in.Skill)
	apply(&p.Summary, in.Summary)

	if err := u.profiles.Update(ctx, p); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toProfileDTO(p)
	return &dto, nil
}

func (u *ProfileUsecase) findOrCreate(ctx context.Context, userID int64) (*model.Profile, error) {
	p, err := u.profiles.FindByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Profile行が無い。ユーザー自体が無いなら404。
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created := &model.Profile{UserID: userID}
	if err := u.profiles.Create(ctx, created); err != nil {
		// 同時リクエストが先に作ったなら読み直す
		if errors.Is(err, repo.ErrConflict) {
			return u.profiles.FindByUserID(ctx, userID)
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "Could not retrieve or create user profile.")
	}

	return created, nil
}

func toProfileDTO(p *model.Profile) ProfileDTO {
	return ProfileDTO{
		UserID:            p.UserID,
		ProfessionalTitle: p.ProfessionalTitle,
		OneLinerBio:       p.OneLinerBio,
		Skill:             p.Skill,
		Summary:           p.Summary,
		CreatedAt:         formatTime(p.CreatedAt),
		UpdatedAt:         formatTime(p.UpdatedAt),
	}
}
