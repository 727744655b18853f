package service

import (
	"context"

	"rating_of_titles/internal/models"
	"rating_of_titles/internal/repository"
)

// TitleService owns title semantics; persistence details live in the
// repository, the transaction per mutation included.
type TitleService struct {
	titles repository.Titles
}

func NewTitleService(titles repository.Titles) *TitleService {
	return &TitleService{titles: titles}
}

var _ TitleList = (*TitleService)(nil)

// ListAll returns the ratings board: every distinct title name once, with
// its type and the mean of the non-null ratings across all users.
func (s *TitleService) ListAll(ctx context.Context) ([]models.TitleAggregate, error) {
	return s.titles.ListAggregated(ctx)
}

// ListForUser returns the rows owned by the given id under the given
// denormalized name. A mismatch between the two yields an empty list.
func (s *TitleService) ListForUser(ctx context.Context, userID int, userName string) ([]models.Title, error) {
	return s.titles.ListByOwner(ctx, userID, userName)
}

// Get returns the caller's title or models.ErrTitleNotFound; a title owned
// by someone else is indistinguishable from a nonexistent one.
func (s *TitleService) Get(ctx context.Context, titleID, userID int) (*models.Title, error) {
	return s.titles.GetOwned(ctx, titleID, userID)
}

// Create persists a new title owned by userID and returns the stored row.
func (s *TitleService) Create(ctx context.Context, userID int, in TitleParams) (*models.Title, error) {
	t := models.Title{
		TitleName:   in.TitleName,
		Rating:      in.Rating,
		TitleType:   in.TitleType,
		TitleStatus: in.TitleStatus,
		UserID:      userID,
		UserName:    in.UserName,
	}
	id, err := s.titles.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return &t, nil
}

// Update applies the patch to the caller's title and returns the row with
// the assignments folded in; absent fields keep their prior values.
func (s *TitleService) Update(ctx context.Context, titleID, userID int, patch models.TitlePatch) (*models.Title, error) {
	t, err := s.titles.GetOwned(ctx, titleID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.titles.Update(ctx, titleID, patch); err != nil {
		return nil, err
	}
	applyPatch(t, patch)
	return t, nil
}

// Delete removes the caller's title after the ownership check.
func (s *TitleService) Delete(ctx context.Context, titleID, userID int) error {
	if _, err := s.titles.GetOwned(ctx, titleID, userID); err != nil {
		return err
	}
	return s.titles.Delete(ctx, titleID)
}

func applyPatch(t *models.Title, p models.TitlePatch) {
	if p.TitleName != nil {
		t.TitleName = *p.TitleName
	}
	if p.Rating != nil {
		t.Rating = p.Rating
	}
	if p.TitleType != nil {
		t.TitleType = *p.TitleType
	}
	if p.TitleStatus != nil {
		t.TitleStatus = *p.TitleStatus
	}
	if p.UserName != nil {
		t.UserName = *p.UserName
	}
}
