package repository

import (
	"context"
	"database/sql"

	"rating_of_titles/internal/models"
)

type Users interface {
	Create(ctx context.Context, username, email, hash, role string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	RolesOf(ctx context.Context, userID int) ([]models.Role, error)
}

type Titles interface {
	ListAggregated(ctx context.Context) ([]models.TitleAggregate, error)
	ListByOwner(ctx context.Context, userID int, userName string) ([]models.Title, error)
	GetOwned(ctx context.Context, titleID, userID int) (*models.Title, error)
	Create(ctx context.Context, t models.Title) (int, error)
	Update(ctx context.Context, titleID int, fields models.TitlePatch) error
	Delete(ctx context.Context, titleID int) error
}

type Repository struct {
	Users  Users
	Titles Titles
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:  NewUserRepository(db),
		Titles: NewTitleRepository(db),
	}
}
