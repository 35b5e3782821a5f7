package controllers

import (
	"frutaria/config"
	"frutaria/tools"

	"github.com/gin-gonic/gin"
)

// Env reúne os handles construídos no boot (config, mailer, cliente do
// índice de busca). Nada de estado global: tudo entra pelo contexto da
// request, no mesmo esquema do db.SetDBtoContext.
type Env struct {
	Cfg    config.Configuration
	Mailer *tools.Mailer
	Search *tools.SearchIndexClient
}

const envKey = "env"

// Use este middleware no setup do gin
func SetEnvToContext(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(envKey, env)
		c.Next()
	}
}

func EnvInstance(c *gin.Context) *Env {
	v, ok := c.Get(envKey)
	if !ok {
		return nil
	}
	env, _ := v.(*Env)
	return env
}
