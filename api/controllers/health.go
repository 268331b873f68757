package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shopmart-io/shopmart-backend/api/responses"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Live reports process liveness.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// Ready reports readiness by pinging the database and cache.
func Ready(dbPing, redisPing pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok", "cache": "ok"}

		if dbPing == nil {
			checks["database"] = "unconfigured"
		} else if err := dbPing.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}

		if redisPing == nil {
			checks["cache"] = "unconfigured"
		} else if err := redisPing.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache unreachable"))
			return
		}

		responses.WriteSuccess(w, checks)
	}
}
