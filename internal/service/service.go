// Package service содержит каталог предложений, журналы заказов и отзывов
// и сводную статистику. Каждая операция проходит шлюзы политики доступа
// перед обращением к хранилищу.
package service

import (
	"context"
	"errors"
	"time"

	"coderr/internal/observability"
	"coderr/models"

	"go.uber.org/zap"
)

// ProfileStore - проекция профилей внешнего сервиса идентификации
type ProfileStore interface {
	GetProfile(ctx context.Context, id int64) (*models.UserProfile, error)
}

// Deps - общие зависимости сервисов
type Deps struct {
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Now     func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = observability.NewMetrics()
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	return d
}

// notFound переводит отсутствие записи в ошибку 404 с именем ресурса
func notFound(err error, resource string, id int64) error {
	if errors.Is(err, models.ErrRecordNotFound) {
		return &models.NotFoundError{Resource: resource, ID: id}
	}
	return err
}

func isDuplicate(err error) bool {
	var dup *models.DuplicateError
	return errors.As(err, &dup)
}

// denied логирует отказ политики и считает его в метриках
func (d Deps) denied(err error, p *models.Principal, resource string) error {
	var perr *models.PermissionError
	if errors.As(err, &perr) {
		d.Metrics.IncrDenial(resource)
		d.Logger.Warn("access denied",
			zap.String("resource", resource),
			zap.Int64("user_id", principalUserID(p)),
			zap.String("reason", perr.Error()),
		)
	}
	return err
}

func principalUserID(p *models.Principal) int64 {
	if p == nil {
		return 0
	}
	return p.UserID
}
