package app

import (
	"log/slog"
	"os"

	"github.com/WuorBhang/fund-transfer/internal/treasury"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.treasury.enabled") {
		closer, err := treasury.New(treasury.Dependency{
			Config:    a.config,
			Router:    a.router,
			Goroutine: a.goroutine,
			Context:   a.ctx,
			UUID:      a.uuid,
			Snowflake: a.snowflake,
		})
		if err != nil {
			slog.Error("failed to init module treasury", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			a.closerFn["Treasury"] = closer
		}
	}
}
