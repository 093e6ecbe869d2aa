package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/profitrider/backend/internal/engine"
	"github.com/profitrider/backend/internal/model"
	"github.com/profitrider/backend/internal/report"
)

// CreditCostPerSession is deducted from non-pro users on every session
// creation.
const CreditCostPerSession = 10

type SessionDAO struct {
	Logger *slog.Logger
	*DB
}

func NewSessionDAO(logger *slog.Logger, db *DB) *SessionDAO {
	return &SessionDAO{
		Logger: logger.With("dao", "session"),
		DB:     db,
	}
}

func (dao *SessionDAO) Get(ctx context.Context, id, user model.ID) (model.WorkSession, error) {
	query, args, err := dao.Builder.
		Select("*").
		From("work_sessions").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"user_id": user}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.WorkSession{}, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	var session model.WorkSession
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&session); err != nil {
		if IsNoRows(err) {
			return model.WorkSession{}, model.NewError("session", model.ErrNotFound)
		}

		return model.WorkSession{}, err
	}

	return session, nil
}

// Find lists a user's sessions, newest first (date, then start time).
func (dao *SessionDAO) Find(ctx context.Context, user model.ID, opts FindOptions) ([]model.WorkSession, error) {
	query, args, err := dao.Builder.
		Select("*").
		From("work_sessions").
		Where(squirrel.Eq{"user_id": user}).
		OrderBy("sess_date DESC", "start_time DESC").
		Limit(uint64(opts.Limit)).
		Offset(uint64(opts.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	sessions := make([]model.WorkSession, 0, opts.Limit)
	if err := dao.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (dao *SessionDAO) CountByUser(ctx context.Context, user model.ID) (int, error) {
	query, args, err := dao.Builder.
		Select("COUNT(*)").
		From("work_sessions").
		Where(squirrel.Eq{"user_id": user}).
		ToSql()
	if err != nil {
		return 0, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	var count int
	if err := dao.QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// FindInWindow selects a user's sessions within an inclusive date window,
// oldest first. An unbounded window selects everything.
func (dao *SessionDAO) FindInWindow(ctx context.Context, user model.ID, w report.Window) ([]model.WorkSession, error) {
	builder := dao.Builder.
		Select("*").
		From("work_sessions").
		Where(squirrel.Eq{"user_id": user}).
		OrderBy("sess_date ASC", "start_time ASC")

	if w.Bounded {
		builder = builder.
			Where(squirrel.GtOrEq{"sess_date": w.From}).
			Where(squirrel.LtOrEq{"sess_date": w.To})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	sessions := []model.WorkSession{}
	if err := dao.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, err
	}

	return sessions, nil
}

// FindRecent returns the newest sessions for recency display.
func (dao *SessionDAO) FindRecent(ctx context.Context, user model.ID, limit int) ([]model.WorkSession, error) {
	return dao.Find(ctx, user, FindOptions{Limit: limit})
}

// Create derives and persists a new session. The whole sequence runs in one
// transaction holding a row lock on the owner's profile, so the
// first-session-of-day rent decision and the credit deduction are atomic
// with respect to other creations for the same user.
func (dao *SessionDAO) Create(ctx context.Context, session *model.WorkSession) error {
	tx, err := dao.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	profile, err := dao.lockProfile(ctx, tx, session.User)
	if err != nil {
		return err
	}

	if profile != nil && !profile.IsPro {
		if profile.Credits < CreditCostPerSession {
			return model.NewError("profile", model.ErrCreditsExhausted)
		}
		if err := dao.deductCredits(ctx, tx, session.User); err != nil {
			return err
		}
	}

	snapshot, err := dao.snapshot(ctx, tx, profile)
	if err != nil {
		return err
	}

	ownsRent, err := dao.ownsDailyRent(ctx, tx, session.User, session.Date, 0)
	if err != nil {
		return err
	}

	engine.Derive(deriveInputs(session), snapshot, ownsRent).Apply(session)

	query, args, err := dao.Builder.
		Insert("work_sessions").
		SetMap(sessionValues(session)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	row := tx.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt); err != nil {
		if IsForeignKeyViolation(err) {
			return model.NewError("platform", model.ErrNotFound)
		}

		return err
	}

	return tx.Commit()
}

// Update re-derives every computed field from the new raw inputs. The
// session being saved is excluded from the first-of-day check so it can keep
// the rent it already owns.
func (dao *SessionDAO) Update(ctx context.Context, session *model.WorkSession) error {
	tx, err := dao.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	profile, err := dao.lockProfile(ctx, tx, session.User)
	if err != nil {
		return err
	}

	snapshot, err := dao.snapshot(ctx, tx, profile)
	if err != nil {
		return err
	}

	ownsRent, err := dao.ownsDailyRent(ctx, tx, session.User, session.Date, session.ID)
	if err != nil {
		return err
	}

	engine.Derive(deriveInputs(session), snapshot, ownsRent).Apply(session)

	values := sessionValues(session)
	values["updated_at"] = time.Now()

	query, args, err := dao.Builder.
		Update("work_sessions").
		SetMap(values).
		Where(squirrel.Eq{"id": session.ID}).
		Where(squirrel.Eq{"user_id": session.User}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	row := tx.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&session.UpdatedAt); err != nil {
		if IsNoRows(err) {
			return model.NewError("session", model.ErrNotFound)
		}
		if IsForeignKeyViolation(err) {
			return model.NewError("platform", model.ErrNotFound)
		}

		return err
	}

	return tx.Commit()
}

func (dao *SessionDAO) Delete(ctx context.Context, id, user model.ID) error {
	query, args, err := dao.Builder.
		Delete("work_sessions").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"user_id": user}).
		ToSql()
	if err != nil {
		return err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	res, err := dao.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.NewError("session", model.ErrNotFound)
	}

	return nil
}

// lockProfile takes the per-user row lock that serializes session saves. A
// missing profile is not an error: derivation degrades to safe defaults and
// there is no credit balance to guard.
func (dao *SessionDAO) lockProfile(ctx context.Context, tx *sqlx.Tx, user model.ID) (*model.UserProfile, error) {
	query, args, err := dao.Builder.
		Select("*").
		From("user_profiles").
		Where(squirrel.Eq{"user_id": user}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	var profile model.UserProfile
	row := tx.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&profile); err != nil {
		if IsNoRows(err) {
			return nil, nil
		}

		return nil, err
	}

	return &profile, nil
}

func (dao *SessionDAO) deductCredits(ctx context.Context, tx *sqlx.Tx, user model.ID) error {
	query, args, err := dao.Builder.
		Update("user_profiles").
		Set("credits", squirrel.Expr("credits - ?", CreditCostPerSession)).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": user}).
		ToSql()
	if err != nil {
		return err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// snapshot resolves the profile fields the engine reads, including the
// country tax rate. An unresolvable country degrades to a zero rate rather
// than failing the save.
func (dao *SessionDAO) snapshot(ctx context.Context, tx *sqlx.Tx, profile *model.UserProfile) (*engine.ProfileSnapshot, error) {
	if profile == nil {
		return nil, nil
	}

	snapshot := &engine.ProfileSnapshot{
		TransportType: profile.TransportType,
		CourierType:   profile.CourierType,
		FeePercent:    profile.FeePercent,
		RentAmount:    profile.RentAmount,
		RentFrequency: profile.RentFrequency,
	}

	if profile.Country == nil {
		return snapshot, nil
	}

	query, args, err := dao.Builder.
		Select("tax_rate_percentage").
		From("countries").
		Where(squirrel.Eq{"id": *profile.Country}).
		ToSql()
	if err != nil {
		return nil, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	var rate decimal.Decimal
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&rate); err != nil {
		if IsNoRows(err) {
			dao.Logger.Warn("profile references unknown country, taxing at zero",
				"profileId", profile.ID, "countryId", *profile.Country)
			return snapshot, nil
		}

		return nil, err
	}

	snapshot.TaxRatePercent = rate
	return snapshot, nil
}

// ownsDailyRent reports whether the session being saved is the first of its
// date for the user. exclude skips the session's own row on update.
func (dao *SessionDAO) ownsDailyRent(ctx context.Context, tx *sqlx.Tx, user model.ID, date time.Time, exclude model.ID) (bool, error) {
	builder := dao.Builder.
		Select("COUNT(*)").
		From("work_sessions").
		Where(squirrel.Eq{"user_id": user}).
		Where(squirrel.Eq{"sess_date": date})

	if exclude != 0 {
		builder = builder.Where(squirrel.NotEq{"id": exclude})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, err
	}

	dao.Logger.Debug("query", "sql", query, "args", args)

	var count int
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}

	return count == 0, nil
}

func deriveInputs(session *model.WorkSession) engine.Inputs {
	return engine.Inputs{
		Date:             session.Date,
		StartTime:        session.StartTime,
		EndTime:          session.EndTime,
		GrossEarnings:    session.GrossEarnings,
		Tips:             session.Tips,
		FuelCost:         session.FuelCost,
		DepreciationCost: session.DepreciationCost,
		OtherExpenses:    session.OtherExpenses,
		PlatformFees:     session.PlatformFees,
		TotalDistanceKm:  session.TotalDistanceKm,
		TotalOrders:      session.TotalOrders,
	}
}

func sessionValues(session *model.WorkSession) map[string]any {
	return map[string]any{
		"user_id":           session.User,
		"platform_id":       session.Platform,
		"sess_date":         session.Date,
		"start_time":        session.StartTime,
		"end_time":          session.EndTime,
		"total_orders":      session.TotalOrders,
		"total_distance_km": session.TotalDistanceKm,
		"gross_earnings":    session.GrossEarnings,
		"tips":              session.Tips,
		"fuel_cost":         session.FuelCost,
		"depreciation_cost": session.DepreciationCost,
		"other_expenses":    session.OtherExpenses,
		"platform_fees":     session.PlatformFees,
		"duration_hours":    session.DurationHours,
		"vehicle_rent":      session.VehicleRent,
		"application_fee":   session.ApplicationFee,
		"total_earnings":    session.TotalEarnings,
		"tax_estimate":      session.TaxEstimate,
		"net_profit":        session.NetProfit,
		"profit_per_hour":   session.ProfitPerHour,
		"profit_per_km":     session.ProfitPerKm,
		"profit_per_order":  session.ProfitPerOrder,
	}
}
