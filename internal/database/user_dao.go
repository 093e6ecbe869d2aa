package database

import (
	"context"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/profitrider/backend/internal/model"
)

type UserDAO struct {
	Logger *slog.Logger
	*DB
}

func NewUserDAO(logger *slog.Logger, db *DB) *UserDAO {
	return &UserDAO{
		Logger: logger.With("dao", "user"),
		DB:     db,
	}
}

func (dao *UserDAO) Get(ctx context.Context, id model.ID) (model.User, error) {
	query, args, err := dao.Builder.
		Select("*").
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	var user model.User
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&user); err != nil {
		if IsNoRows(err) {
			return model.User{}, model.NewError("user", model.ErrNotFound)
		}

		return model.User{}, err
	}

	return user, nil
}

func (dao *UserDAO) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query, args, err := dao.Builder.
		Select("*").
		From("users").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	var user model.User
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&user); err != nil {
		if IsNoRows(err) {
			return model.User{}, model.NewError("user", model.ErrNotFound)
		}

		return model.User{}, err
	}

	return user, nil
}

type RegisterUserDTO struct {
	Username     string
	Email        string
	PasswordHash string
}

// Register inserts the user and its profile in one transaction. The profile
// row is created exactly once, here, so a user can never exist without one
// or end up with duplicates.
func (dao *UserDAO) Register(ctx context.Context, dto RegisterUserDTO) (model.ID, error) {
	tx, err := dao.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := dao.Builder.
		Insert("users").
		Columns("username", "email", "password_hash").
		Values(dto.Username, dto.Email, dto.PasswordHash).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	var id model.ID
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if IsUniqueViolation(err) {
			return 0, model.NewError("user", model.ErrExists)
		}

		return 0, err
	}

	query, args, err = dao.Builder.
		Insert("user_profiles").
		Columns("user_id").
		Values(id).
		ToSql()
	if err != nil {
		return 0, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, err
	}

	return id, tx.Commit()
}
