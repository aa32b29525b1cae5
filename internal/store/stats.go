package store

import (
	"bitwise74/user-api/internal/model"
	"bitwise74/user-api/pkg/util"
	"context"

	"gorm.io/gorm"
)

// DashboardStats counts today's activity as logins since local midnight plus
// files created since local midnight
func (s *Store) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats

	midnight := util.StartOfDay(s.now()).UTC()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var todayLogins, todayFiles int64

		counts := []struct {
			dst   *int64
			model any
			where string
			args  []any
		}{
			{&stats.TotalUsers, &model.User{}, "", nil},
			{&stats.TotalAdmins, &model.User{}, "role = ?", []any{model.RoleAdmin}},
			{&stats.TotalFiles, &model.File{}, "", nil},
			{&todayLogins, &model.User{}, "derniere_connexion >= ?", []any{midnight}},
			{&todayFiles, &model.File{}, "date_creation >= ?", []any{midnight}},
		}

		for _, c := range counts {
			q := tx.Model(c.model)
			if c.where != "" {
				q = q.Where(c.where, c.args...)
			}

			if err := q.Count(c.dst).Error; err != nil {
				return err
			}
		}

		stats.TodayActivity = todayLogins + todayFiles
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *Store) UserStats(ctx context.Context, userID uint) (*model.UserStats, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrNotFound
	}

	var stats model.UserStats

	err = s.db.WithContext(ctx).
		Model(&model.File{}).
		Where("cree_par_id = ?", userID).
		Select("COUNT(*) AS files_count, COALESCE(SUM(vues), 0) AS views_count").
		Scan(&stats).
		Error
	if err != nil {
		return nil, err
	}

	stats.LastLogin = util.RelativeTime(user.LastLogin, s.now())
	return &stats, nil
}
