package service

import (
	"context"

	"rating_of_titles/internal/models"
	"rating_of_titles/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, in SignUpParams) (string, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// TitleList exposes the title collection: the cross-user ratings board
// plus the owner-scoped CRUD operations.
type TitleList interface {
	ListAll(ctx context.Context) ([]models.TitleAggregate, error)
	ListForUser(ctx context.Context, userID int, userName string) ([]models.Title, error)
	Get(ctx context.Context, titleID, userID int) (*models.Title, error)
	Create(ctx context.Context, userID int, in TitleParams) (*models.Title, error)
	Update(ctx context.Context, titleID, userID int, patch models.TitlePatch) (*models.Title, error)
	Delete(ctx context.Context, titleID, userID int) error
}

// SignUpParams is the validated registration input.
type SignUpParams struct {
	Username string
	Email    string
	Password string
	Role     string // optional
}

// TitleParams is the validated title-creation input.
type TitleParams struct {
	TitleName   string
	Rating      *int
	TitleType   string
	TitleStatus string
	UserName    string
}

// AuthConfig carries the process-wide token settings; rotating the signing
// key invalidates every outstanding token.
type AuthConfig struct {
	SigningKey   string
	TokenTTLDays int
}

type Service struct {
	Authorization
	TitleList
}

func NewService(repos *repository.Repository, auth AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, auth),
		TitleList:     NewTitleService(repos.Titles),
	}
}
