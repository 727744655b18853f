package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"rating_of_titles/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		email      string
		hash       string
		role       string
		mockExpect func(sqlmock.Sqlmock)
		wantID     int
		wantErr    error
		errContain string
	}{
		{
			name:     "success without role",
			username: "alice",
			email:    "a@x.com",
			hash:     "h123",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "a@x.com", "h123").
					WillReturnResult(sqlmock.NewResult(42, 1))
				m.ExpectCommit()
			},
			wantID: 42,
		},
		{
			name:     "success with new role linked in same tx",
			username: "bob",
			email:    "b@x.com",
			hash:     "h456",
			role:     "admin",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("bob", "b@x.com", "h456").
					WillReturnResult(sqlmock.NewResult(7, 1))
				m.ExpectQuery(regexp.QuoteMeta(selectRoleByNameSQL)).
					WithArgs("admin").
					WillReturnError(sql.ErrNoRows)
				m.ExpectExec(regexp.QuoteMeta(insertRoleSQL)).
					WithArgs("admin").
					WillReturnResult(sqlmock.NewResult(3, 1))
				m.ExpectExec(regexp.QuoteMeta(insertRoleLinkSQL)).
					WithArgs(7, int64(3)).
					WillReturnResult(sqlmock.NewResult(1, 1))
				m.ExpectCommit()
			},
			wantID: 7,
		},
		{
			name:     "success with existing role",
			username: "carol",
			email:    "c@x.com",
			hash:     "h789",
			role:     "viewer",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("carol", "c@x.com", "h789").
					WillReturnResult(sqlmock.NewResult(8, 1))
				m.ExpectQuery(regexp.QuoteMeta(selectRoleByNameSQL)).
					WithArgs("viewer").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
				m.ExpectExec(regexp.QuoteMeta(insertRoleLinkSQL)).
					WithArgs(8, int64(5)).
					WillReturnResult(sqlmock.NewResult(1, 1))
				m.ExpectCommit()
			},
			wantID: 8,
		},
		{
			name:     "duplicate email rolls back",
			username: "dave",
			email:    "a@x.com",
			hash:     "h000",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("dave", "a@x.com", "h000").
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"))
				m.ExpectRollback()
			},
			wantErr: models.ErrEmailTaken,
		},
		{
			name:     "role link failure rolls back whole registration",
			username: "erin",
			email:    "e@x.com",
			hash:     "h111",
			role:     "admin",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("erin", "e@x.com", "h111").
					WillReturnResult(sqlmock.NewResult(9, 1))
				m.ExpectQuery(regexp.QuoteMeta(selectRoleByNameSQL)).
					WithArgs("admin").
					WillReturnError(errors.New("db query failed"))
				m.ExpectRollback()
			},
			errContain: "select role",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			id, err := repo.Create(context.Background(), tt.username, tt.email, tt.hash, tt.role)

			if tt.wantErr != nil || tt.errContain != "" {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				if tt.errContain != "" && !strings.Contains(err.Error(), tt.errContain) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContain, err.Error())
				}
				if id != 0 {
					t.Fatalf("expected id=0 on error, got %d", id)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Fatalf("unexpected id: want %d, got %d", tt.wantID, id)
			}
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	userColumns := []string{"id", "username", "email", "password_hash"}

	tests := []struct {
		name       string
		username   string
		mockExpect func(sqlmock.Sqlmock)
		wantUser   *models.User
		wantErr    error
	}{
		{
			name:     "found",
			username: "alice",
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(userColumns).
					AddRow(7, "alice", "a@x.com", "h123")
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("alice").
					WillReturnRows(rows)
			},
			wantUser: &models.User{
				ID:           7,
				Username:     "alice",
				Email:        "a@x.com",
				PasswordHash: "h123",
			},
		},
		{
			name:     "zero rows is not found",
			username: "missing",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("missing").
					WillReturnRows(sqlmock.NewRows(userColumns))
			},
			wantErr: models.ErrUserNotFound,
		},
		{
			name:     "two rows is ambiguous",
			username: "twin",
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(userColumns).
					AddRow(1, "twin", "t1@x.com", "h1").
					AddRow(2, "twin", "t2@x.com", "h2")
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("twin").
					WillReturnRows(rows)
			},
			wantErr: models.ErrAmbiguousUser,
		},
		{
			name:     "query error",
			username: "bob",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("bob").
					WillReturnError(errors.New("db query failed"))
			},
			wantErr: nil, // wrapped driver error, checked below
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			u, err := repo.GetByUsername(context.Background(), tt.username)

			if tt.wantUser == nil {
				if err == nil {
					t.Fatalf("expected error, got user %+v", u)
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *u != *tt.wantUser {
				t.Fatalf("unexpected user: want %+v, got %+v", tt.wantUser, u)
			}
		})
	}
}

func TestUserRepository_RolesOf(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "description"}).
		AddRow(1, "admin", "all access").
		AddRow(2, "viewer", nil)
	mock.ExpectQuery(regexp.QuoteMeta(selectRolesOfUserSQL)).
		WithArgs(7).
		WillReturnRows(rows)

	roles, err := repo.RolesOf(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(roles))
	}
	if roles[0].Name != "admin" || roles[0].Description != "all access" {
		t.Fatalf("unexpected first role: %+v", roles[0])
	}
	if roles[1].Name != "viewer" || roles[1].Description != "" {
		t.Fatalf("unexpected second role: %+v", roles[1])
	}
}
