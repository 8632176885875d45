package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"tasktracker/internal/adapter/database/sqlite"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/port"
)

type UserRepository struct {
	db      *sqlite.DB
	scanner *sqlite.Scanner
}

func NewUserRepository(db *sqlite.DB) port.UserRepository {
	return &UserRepository{
		db:      db,
		scanner: sqlite.NewScanner(),
	}
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("id", "uuid", "login").
		From("users").
		Where(sq.Eq{"uuid": uid}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var data domain.User

	rows, err := ur.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.User{}, err
	}

	defer rows.Close()

	err = ur.scanner.ScanRowToStruct(rows, &data)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		slog.Error("Error getting user by uuid", "error", err)
		return domain.User{}, err
	}

	return data, nil
}

func (ur *UserRepository) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("*").
		From("users").
		Where(sq.Eq{"login": login}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var data domain.User

	rows, err := ur.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.User{}, err
	}

	defer rows.Close()

	err = ur.scanner.ScanRowToStruct(rows, &data)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		slog.Error("Error getting user by login", "error", err)
		return domain.User{}, err
	}

	return data, nil
}

func (ur *UserRepository) getByUUIDTx(ctx context.Context, tx *sql.Tx, uid string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("id", "uuid", "login").
		From("users").
		Where(sq.Eq{"uuid": uid}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var data domain.User

	rows, err := tx.QueryContext(ctx, stmt, args...)
	if err != nil {
		return domain.User{}, err
	}
	defer rows.Close()

	err = ur.scanner.ScanRowToStruct(rows, &data)

	if err != nil {
		slog.Error("Error getting user by uuid", "error", err)
		return domain.User{}, err
	}

	return data, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	uid := user.UUID.String()

	// Transaction keeps the insert and re-read on the same connection.
	tx, err := ur.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return domain.User{}, err
	}
	defer tx.Rollback()

	query := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "login", "encrypted_password", "created_date", "update_date").
		Values(uid, user.Login, user.EncryptedPassword, user.CreatedAt, user.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	_, err = tx.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	saved, err := ur.getByUUIDTx(ctx, tx, uid)

	if err != nil {
		return domain.User{}, err
	}

	return saved, tx.Commit()
}

func (ur *UserRepository) DeleteByUUID(ctx context.Context, uid string) error {
	tx, err := ur.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return err
	}
	defer tx.Rollback()

	query := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"uuid": uid})

	stmt, args, err := query.ToSql()

	if err != nil {
		slog.Error("Error deleting user", "error", err)
		return err
	}

	result, err := tx.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error deleting user", "error", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		slog.Error("Error getting rows affected", "error", err)
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return tx.Commit()
}
