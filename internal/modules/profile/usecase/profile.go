package usecase

import (
	"context"
	"fmt"
	"strings"

	"writerly/internal/modules/profile/domain"
	"writerly/internal/modules/profile/dto"
	profilein "writerly/internal/modules/profile/port/in"
	profileout "writerly/internal/modules/profile/port/out"
	apperrors "writerly/internal/platform/errors"
)

type Interactor struct {
	gateway profileout.Gateway
}

func NewInteractor(gateway profileout.Gateway) profilein.Usecase {
	return &Interactor{gateway: gateway}
}

func (i *Interactor) Get(ctx context.Context, username string) (dto.ProfileOutput, error) {
	if domain.IsSelf(username) {
		profile, err := i.gateway.Me(ctx)
		if err != nil {
			return dto.ProfileOutput{}, fmt.Errorf("get own profile: %w", err)
		}
		return toOutput(profile, true), nil
	}
	profile, err := i.gateway.Get(ctx, strings.TrimSpace(username))
	if err != nil {
		return dto.ProfileOutput{}, fmt.Errorf("get profile %s: %w", username, err)
	}
	return toOutput(profile, false), nil
}

// Works lists a user's works. For "me" the username comes from the own
// profile first.
func (i *Interactor) Works(ctx context.Context, username string) ([]dto.WorkSummaryOutput, error) {
	name := strings.TrimSpace(username)
	if domain.IsSelf(name) {
		me, err := i.gateway.Me(ctx)
		if err != nil {
			return nil, fmt.Errorf("get own profile: %w", err)
		}
		name = me.Username
	}
	works, err := i.gateway.Works(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list works of %s: %w", name, err)
	}
	out := make([]dto.WorkSummaryOutput, 0, len(works))
	for _, w := range works {
		out = append(out, dto.WorkSummaryOutput{
			ID:            w.ID,
			Title:         w.Title,
			Genre:         w.Genre,
			WordCount:     w.WordCount,
			RatingAverage: w.RatingAverage,
			RatingCount:   w.RatingCount,
			ViewsCount:    w.ViewsCount,
			CreatedAt:     w.CreatedAt.Time,
		})
	}
	return out, nil
}

func (i *Interactor) Follow(ctx context.Context, username string) error {
	name, err := otherUser(username)
	if err != nil {
		return err
	}
	if err := i.gateway.Follow(ctx, name); err != nil {
		return fmt.Errorf("follow %s: %w", name, err)
	}
	return nil
}

func (i *Interactor) Unfollow(ctx context.Context, username string) error {
	name, err := otherUser(username)
	if err != nil {
		return err
	}
	if err := i.gateway.Unfollow(ctx, name); err != nil {
		return fmt.Errorf("unfollow %s: %w", name, err)
	}
	return nil
}

func (i *Interactor) UpdateMe(ctx context.Context, input dto.UpdateInput) (dto.ProfileOutput, error) {
	update := domain.Update{
		Bio:      strings.TrimSpace(input.Bio),
		Location: strings.TrimSpace(input.Location),
		Website:  strings.TrimSpace(input.Website),
	}
	if err := update.Validate(); err != nil {
		return dto.ProfileOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	profile, err := i.gateway.UpdateMe(ctx, update)
	if err != nil {
		return dto.ProfileOutput{}, fmt.Errorf("update profile: %w", err)
	}
	return toOutput(profile, true), nil
}

func otherUser(username string) (string, error) {
	name := strings.TrimSpace(username)
	if domain.IsSelf(name) {
		return "", fmt.Errorf("%w: a username other than %q is required", apperrors.ErrInvalidInput, domain.Me)
	}
	return name, nil
}

func toOutput(p domain.Profile, own bool) dto.ProfileOutput {
	return dto.ProfileOutput{
		ID:             p.ID,
		Username:       p.Username,
		Bio:            p.Bio,
		AvatarURL:      p.AvatarURL,
		Location:       p.Location,
		Website:        p.Website,
		Role:           p.Role,
		WorksCount:     p.WorksCount,
		FollowersCount: p.FollowersCount,
		FollowingCount: p.FollowingCount,
		CreatedAt:      p.CreatedAt.Time,
		IsFollowing:    p.IsFollowing,
		Own:            own,
	}
}
