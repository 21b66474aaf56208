package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Xdennizhu20X/back-abg/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports whether the two backing stores answer: Postgres (registros)
// and Redis (cola de notificaciones). When Redis is up it also exposes how
// many notification mails are stuck in the DLQ, so a scheduler probing this
// endpoint notices delivery problems before the ganaderos do.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		baseDatos := "conectada"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			baseDatos = "error"
		}

		notificaciones := "conectada"
		var correosFallidos *int64
		if rdb.Ping(ctx).Err() != nil {
			notificaciones = "error"
		} else if n, err := worker.CorreosFallidos(ctx, rdb); err == nil {
			correosFallidos = &n
		}

		status := http.StatusOK
		if baseDatos != "conectada" || notificaciones != "conectada" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":             status == http.StatusOK,
			"base_datos":     baseDatos,
			"notificaciones": notificaciones,
		}
		if correosFallidos != nil {
			body["correos_fallidos"] = *correosFallidos
		}
		c.JSON(status, body)
	}
}
