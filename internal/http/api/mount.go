package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/http/middleware"
)

// Module attaches a feature's endpoints to a Controller.
type Module interface {
	Mount(c *Controller)
}

type ModuleFunc func(c *Controller)

func (f ModuleFunc) Mount(c *Controller) { f(c) }

// GroupConfig describes one mounted route group. Auth puts the admin JWT
// check in front of every module in the group.
type GroupConfig struct {
	Prefix     string
	Auth       bool
	SecretKey  string
	Middleware []gin.HandlerFunc
}

// MountGroup creates the group under parent and mounts modules on it.
// Enabling Auth without a SecretKey is a startup error.
func MountGroup(parent gin.IRouter, cfg GroupConfig, modules ...Module) *gin.RouterGroup {
	handlers := append([]gin.HandlerFunc{}, cfg.Middleware...)
	if cfg.Auth {
		if cfg.SecretKey == "" {
			log.Fatal().Str("prefix", cfg.Prefix).Msg("auth group mounted without a secret key")
		}
		handlers = append(handlers, middleware.JWTMiddleware(cfg.SecretKey))
	}

	grp := parent.Group(cfg.Prefix, handlers...)
	controller := &Controller{Group: grp}
	for _, m := range modules {
		m.Mount(controller)
	}

	log.Debug().
		Str("prefix", grp.BasePath()).
		Bool("auth", cfg.Auth).
		Int("modules", len(modules)).
		Msg("mounted route group")
	return grp
}
