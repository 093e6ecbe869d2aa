package database

import (
	"context"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/profitrider/backend/internal/model"
)

// RefDataDAO reads the static reference tables (countries, platforms). The
// derivation engine only ever looks these up, never mutates them.
type RefDataDAO struct {
	Logger *slog.Logger
	*DB
}

func NewRefDataDAO(logger *slog.Logger, db *DB) *RefDataDAO {
	return &RefDataDAO{
		Logger: logger.With("dao", "refdata"),
		DB:     db,
	}
}

func (dao *RefDataDAO) FindCountries(ctx context.Context) ([]model.Country, error) {
	query, args, err := dao.Builder.
		Select("*").
		From("countries").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	countries := []model.Country{}
	if err := dao.SelectContext(ctx, &countries, query, args...); err != nil {
		return nil, err
	}

	return countries, nil
}

func (dao *RefDataDAO) GetCountry(ctx context.Context, id model.ID) (model.Country, error) {
	query, args, err := dao.Builder.
		Select("*").
		From("countries").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Country{}, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	var country model.Country
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&country); err != nil {
		if IsNoRows(err) {
			return model.Country{}, model.NewError("country", model.ErrNotFound)
		}

		return model.Country{}, err
	}

	return country, nil
}

type FindPlatformsFilter struct {
	Country *model.ID
}

func (dao *RefDataDAO) FindPlatforms(ctx context.Context, filter FindPlatformsFilter) ([]model.Platform, error) {
	builder := dao.Builder.
		Select("p.*", "c.name AS country_name").
		From("platforms p").
		Join("countries c ON c.id = p.country_id").
		OrderBy("p.name ASC")

	if filter.Country != nil {
		builder = builder.Where(squirrel.Eq{"p.country_id": *filter.Country})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	platforms := []model.Platform{}
	if err := dao.SelectContext(ctx, &platforms, query, args...); err != nil {
		return nil, err
	}

	return platforms, nil
}

type InsertPlatformDTO struct {
	Name           string
	BaseFeePercent decimal.Decimal
	Country        model.ID
}

func (dao *RefDataDAO) InsertPlatform(ctx context.Context, dto InsertPlatformDTO) (model.ID, error) {
	query, args, err := dao.Builder.
		Insert("platforms").
		Columns("name", "base_fee_percentage", "country_id").
		Values(dto.Name, dto.BaseFeePercent, dto.Country).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	var id model.ID
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&id); err != nil {
		if IsForeignKeyViolation(err) {
			return 0, model.NewError("country", model.ErrNotFound)
		}

		return 0, err
	}

	return id, nil
}
