package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/profitrider/backend/internal/model"
)

type ProfileDAO struct {
	Logger *slog.Logger
	*DB
}

func NewProfileDAO(logger *slog.Logger, db *DB) *ProfileDAO {
	return &ProfileDAO{
		Logger: logger.With("dao", "profile"),
		DB:     db,
	}
}

func (dao *ProfileDAO) GetByUser(ctx context.Context, user model.ID) (model.UserProfile, error) {
	query, args, err := dao.Builder.
		Select("*").
		From("user_profiles").
		Where(squirrel.Eq{"user_id": user}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.UserProfile{}, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	var profile model.UserProfile
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&profile); err != nil {
		if IsNoRows(err) {
			return model.UserProfile{}, model.NewError("profile", model.ErrNotFound)
		}

		return model.UserProfile{}, err
	}

	return profile, nil
}

type UpdateProfileDTO struct {
	Country       *model.ID
	CountryUnset  bool
	TransportType *model.TransportType
	CourierType   *model.CourierType
	FeePercent    *decimal.Decimal

	RentAmount    *decimal.Decimal
	RentFrequency *model.RentFrequency

	DefaultFuelCostPerKm         *decimal.Decimal
	DefaultDepreciationRatePerKm *decimal.Decimal
	DefaultStartTime             *model.NullClockTime
	DefaultEndTime               *model.NullClockTime
}

func (dao *ProfileDAO) Update(ctx context.Context, user model.ID, dto UpdateProfileDTO) error {
	data := make(map[string]any, 11)
	data["updated_at"] = time.Now()
	if dto.Country != nil {
		data["country_id"] = *dto.Country
	} else if dto.CountryUnset {
		data["country_id"] = nil
	}
	if dto.TransportType != nil {
		data["transport_type"] = *dto.TransportType
	}
	if dto.CourierType != nil {
		data["courier_type"] = *dto.CourierType
	}
	if dto.FeePercent != nil {
		data["fee_percent"] = *dto.FeePercent
	}
	if dto.RentAmount != nil {
		data["rent_amount"] = *dto.RentAmount
	}
	if dto.RentFrequency != nil {
		data["rent_frequency"] = *dto.RentFrequency
	}
	if dto.DefaultFuelCostPerKm != nil {
		data["default_fuel_cost_per_km"] = *dto.DefaultFuelCostPerKm
	}
	if dto.DefaultDepreciationRatePerKm != nil {
		data["default_depreciation_rate_per_km"] = *dto.DefaultDepreciationRatePerKm
	}
	if dto.DefaultStartTime != nil {
		data["default_start_time"] = *dto.DefaultStartTime
	}
	if dto.DefaultEndTime != nil {
		data["default_end_time"] = *dto.DefaultEndTime
	}

	query, args, err := dao.Builder.
		Update("user_profiles").
		SetMap(data).
		Where(squirrel.Eq{"user_id": user}).
		ToSql()
	if err != nil {
		return err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	res, err := dao.ExecContext(ctx, query, args...)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return model.NewError("country", model.ErrNotFound)
		}

		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.NewError("profile", model.ErrNotFound)
	}

	return nil
}
