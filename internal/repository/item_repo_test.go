package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"noteshare/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func itemFixture(exp *time.Time) models.Item {
	return models.Item{Title: "t1", Content: "c1", UserID: 3, ExpirationDate: exp}
}

func newMockItemRepo(t *testing.T) (*ItemRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewItemRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

var itemCols = []string{"id", "title", "content", "user_id", "expiration_date", "username"}

func TestItemRepository_Create(t *testing.T) {
	exp := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		expiration     *time.Time
		mockExpect     func(sqlmock.Sqlmock)
		wantID         int
		wantErr        bool
		errContainsStr string
	}{
		{
			name:       "success with expiration",
			expiration: &exp,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertItemSQL)).
					WithArgs("t1", "c1", 3, exp).
					WillReturnResult(sqlmock.NewResult(11, 1))
			},
			wantID: 11,
		},
		{
			name:       "success without expiration stores NULL",
			expiration: nil,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertItemSQL)).
					WithArgs("t1", "c1", 3, nil).
					WillReturnResult(sqlmock.NewResult(12, 1))
			},
			wantID: 12,
		},
		{
			name:       "exec error",
			expiration: nil,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertItemSQL)).
					WithArgs("t1", "c1", 3, nil).
					WillReturnError(errors.New("db exec failed"))
			},
			wantErr:        true,
			errContainsStr: "insert item",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockItemRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			id, err := repo.Create(context.Background(), itemFixture(tt.expiration))

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errContainsStr != "" && !contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
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

func TestItemRepository_GetByID(t *testing.T) {
	exp := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)

	t.Run("found with expiration", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectItemByIDSQL)).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows(itemCols).AddRow(5, "t", "c", 3, exp, "alice"))

		it, err := repo.GetByID(context.Background(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if it == nil {
			t.Fatalf("expected item, got nil")
		}
		if it.ID != 5 || it.OwnerUsername != "alice" {
			t.Fatalf("unexpected item: %+v", it)
		}
		if it.ExpirationDate == nil || !it.ExpirationDate.Equal(exp) {
			t.Fatalf("unexpected expiration: %v", it.ExpirationDate)
		}
	})

	t.Run("found with NULL expiration", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectItemByIDSQL)).
			WithArgs(6).
			WillReturnRows(sqlmock.NewRows(itemCols).AddRow(6, "t", "c", 3, nil, "alice"))

		it, err := repo.GetByID(context.Background(), 6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if it.ExpirationDate != nil {
			t.Fatalf("expected nil expiration, got %v", it.ExpirationDate)
		}
	})

	t.Run("missing row returns nil, nil", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectItemByIDSQL)).
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows(itemCols))

		it, err := repo.GetByID(context.Background(), 9)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if it != nil {
			t.Fatalf("expected nil item, got %+v", it)
		}
	})
}

func TestItemRepository_ListActive(t *testing.T) {
	now := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("passes filter args and scans rows", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectActiveItemsSQL)).
			WithArgs(now, 10, 0).
			WillReturnRows(sqlmock.NewRows(itemCols).
				AddRow(1, "a", "x", 3, nil, "alice").
				AddRow(2, "b", "y", 4, now.Add(time.Hour), "bob"))

		items, err := repo.ListActive(context.Background(), now, 0, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].ID != 1 || items[1].OwnerUsername != "bob" {
			t.Fatalf("unexpected items: %+v", items)
		}
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectActiveItemsSQL)).
			WithArgs(now, 5, 20).
			WillReturnError(errors.New("db down"))

		if _, err := repo.ListActive(context.Background(), now, 20, 5); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}

func TestItemRepository_DeleteOwned(t *testing.T) {
	tests := []struct {
		name        string
		mockExpect  func(sqlmock.Sqlmock)
		wantDeleted bool
		wantErr     bool
	}{
		{
			name: "owned row deleted",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(deleteOwnedItemSQL)).
					WithArgs(5, 3).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantDeleted: true,
		},
		{
			name: "missing or foreign row deletes nothing",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(deleteOwnedItemSQL)).
					WithArgs(5, 3).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantDeleted: false,
		},
		{
			name: "exec error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(deleteOwnedItemSQL)).
					WithArgs(5, 3).
					WillReturnError(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockItemRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			deleted, err := repo.DeleteOwned(context.Background(), 5, 3)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if deleted != tt.wantDeleted {
				t.Fatalf("deleted: want %v, got %v", tt.wantDeleted, deleted)
			}
		})
	}
}

func TestItemRepository_DeleteExpired(t *testing.T) {
	now := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("reports number of swept rows", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteExpiredItemSQL)).
			WithArgs(now).
			WillReturnResult(sqlmock.NewResult(0, 3))

		n, err := repo.DeleteExpired(context.Background(), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 3 {
			t.Fatalf("expected 3 swept rows, got %d", n)
		}
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteExpiredItemSQL)).
			WithArgs(now).
			WillReturnError(errors.New("db down"))

		if _, err := repo.DeleteExpired(context.Background(), now); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}
