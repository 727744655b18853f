package handlers

import (
	"context"
	"net/http"

	"rating_of_titles/internal/models"
	"rating_of_titles/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpToken   string
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUp      service.SignUpParams
	lastGenUsername string
	lastGenPassword string
	lastParseToken  string
}

func (m *mockAuth) SignUp(_ context.Context, in service.SignUpParams) (string, error) {
	m.lastSignUp = in
	return m.signUpToken, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockTitles struct {
	board    []models.TitleAggregate
	boardErr error

	userTitles   []models.Title
	userListErr  error
	lastListUser int
	lastListName string

	getTitle *models.Title
	getErr   error

	created   *models.Title
	createErr error
	lastOwner int
	lastInput service.TitleParams

	updated    *models.Title
	updateErr  error
	lastPatch  models.TitlePatch
	lastPatchI int

	deleteErr   error
	deleteCalls int
	lastDeleted int
}

func (m *mockTitles) ListAll(_ context.Context) ([]models.TitleAggregate, error) {
	return m.board, m.boardErr
}
func (m *mockTitles) ListForUser(_ context.Context, userID int, userName string) ([]models.Title, error) {
	m.lastListUser = userID
	m.lastListName = userName
	return m.userTitles, m.userListErr
}
func (m *mockTitles) Get(_ context.Context, titleID, userID int) (*models.Title, error) {
	return m.getTitle, m.getErr
}
func (m *mockTitles) Create(_ context.Context, userID int, in service.TitleParams) (*models.Title, error) {
	m.lastOwner = userID
	m.lastInput = in
	return m.created, m.createErr
}
func (m *mockTitles) Update(_ context.Context, titleID, userID int, patch models.TitlePatch) (*models.Title, error) {
	m.lastPatchI = titleID
	m.lastPatch = patch
	return m.updated, m.updateErr
}
func (m *mockTitles) Delete(_ context.Context, titleID, userID int) error {
	m.deleteCalls++
	m.lastDeleted = titleID
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
