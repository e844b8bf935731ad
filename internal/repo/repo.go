package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/medistock/internal/models"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) AutoMigrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(models.All()...)
}

// Transaction runs fn against a repo bound to a single database transaction.
func (r *GormRepo) Transaction(ctx context.Context, fn func(tx *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// likePattern builds a case-insensitive substring pattern for `LOWER(col) LIKE ? ESCAPE '!'`.
func likePattern(q string) string {
	var b []byte
	for _, c := range []byte(strings.ToLower(strings.TrimSpace(q))) {
		switch c {
		case '!', '%', '_':
			b = append(b, '!')
		}
		b = append(b, c)
	}
	return "%" + string(b) + "%"
}
