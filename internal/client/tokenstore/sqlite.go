package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/repositories/metadata"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/common"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/dbx"
)

// SQLiteStore persists the session in the metadata table so it survives
// restarts of the client.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore expects db to be migrated (see repositories.OpenDatabase).
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) get(ctx context.Context, key string) (string, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SQLiteStore) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, common.AccessTokenKey)
}

func (s *SQLiteStore) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, common.RefreshTokenKey)
}

func (s *SQLiteStore) UserID(ctx context.Context) (string, error) {
	return s.get(ctx, common.UserIDKey)
}

func (s *SQLiteStore) SetTokens(ctx context.Context, access, refresh string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.AccessTokenKey, []byte(access)); err != nil {
			return err
		}
		if refresh == "" {
			return nil
		}
		return repo.Set(ctx, common.RefreshTokenKey, []byte(refresh))
	})
	if err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SetUserID(ctx context.Context, id string) error {
	return metadata.NewSQLiteRepository(s.db).Set(ctx, common.UserIDKey, []byte(id))
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	err := metadata.NewSQLiteRepository(s.db).Delete(ctx, common.AccessTokenKey, common.RefreshTokenKey, common.UserIDKey)
	if err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}
