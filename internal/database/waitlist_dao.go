package database

import (
	"context"
	"log/slog"

	"github.com/profitrider/backend/internal/model"
)

type WaitlistDAO struct {
	Logger *slog.Logger
	*DB
}

func NewWaitlistDAO(logger *slog.Logger, db *DB) *WaitlistDAO {
	return &WaitlistDAO{
		Logger: logger.With("dao", "waitlist"),
		DB:     db,
	}
}

func (dao *WaitlistDAO) Insert(ctx context.Context, email, source string) (model.ID, error) {
	query, args, err := dao.Builder.
		Insert("waitlist").
		Columns("email", "source").
		Values(email, source).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	var id model.ID
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&id); err != nil {
		if IsUniqueViolation(err) {
			return 0, model.NewError("waitlist entry", model.ErrExists)
		}

		return 0, err
	}

	return id, nil
}
