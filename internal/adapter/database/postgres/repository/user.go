package repository

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"tasktracker/internal/adapter/database/postgres"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/port"
)

const userColumns = "id, uuid, login, encrypted_password, created_date, update_date"

type UserRepository struct {
	db *postgres.DB
}

func NewUserRepository(db *postgres.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.UUID,
		&user.Login,
		&user.EncryptedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns).
		From("users").
		Where(sq.Eq{"uuid": uid}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User
	err = scanUser(ur.db.QueryRow(ctx, stmt, args...), &user)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		slog.Error("Error getting user by uuid", "error", err)
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns).
		From("users").
		Where(sq.Eq{"login": login}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User
	err = scanUser(ur.db.QueryRow(ctx, stmt, args...), &user)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		slog.Error("Error getting user by login", "error", err)
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "login", "encrypted_password", "created_date", "update_date").
		Values(user.UUID.String(), user.Login, user.EncryptedPassword, user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING " + userColumns)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var saved domain.User
	if err := scanUser(ur.db.QueryRow(ctx, stmt, args...), &saved); err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	return saved, nil
}

func (ur *UserRepository) DeleteByUUID(ctx context.Context, uid string) error {
	query := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"uuid": uid}).
		Suffix("RETURNING uuid")

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	var deleted string
	if err := ur.db.QueryRow(ctx, stmt, args...).Scan(&deleted); err != nil {
		return domain.ErrUserNotFound
	}

	return nil
}
