package main

import (
	"context"

	"github.com/gin-gonic/gin"
	deltapprof "github.com/grafana/pyroscope-go/godeltaprof/http/pprof"
	"github.com/mileusna/crontab"

	"tileworld.ai/sprite-gateway/app/domain/cron"
	"tileworld.ai/sprite-gateway/app/interfaces/http/routes"
	"tileworld.ai/sprite-gateway/app/utils/logger"
	"tileworld.ai/sprite-gateway/config/environment_variables"
)

// Application bundles everything the server process needs after injection.
type Application struct {
	APIRoute    *routes.APIRoute
	CronService *cron.CronService
	Initializer *AssetInitializer
}

func main() {
	environment_variables.EnvironmentVariables.LoadFromEnv()

	app, err := InitializeApplication()
	if err != nil {
		logger.GetLogger().Fatalf("failed to initialize application: %v", err)
	}

	ctx := context.Background()
	if err := app.Initializer.Install(ctx); err != nil {
		logger.GetLogger().Fatalf("failed to initialize assets: %v", err)
	}

	ctab := crontab.New()
	app.CronService.Start(ctx, ctab)

	router := gin.Default()
	app.APIRoute.RegisterRouter(router)
	registerProfilers(router)

	generatedDir := environment_variables.EnvironmentVariables.GENERATED_DIR
	router.Static("/generated", generatedDir)

	addr := ":" + environment_variables.EnvironmentVariables.SERVER_PORT
	logger.GetLogger().Infof("sprite gateway listening on %s, serving images from %s", addr, generatedDir)
	if err := router.Run(addr); err != nil {
		logger.GetLogger().Fatalf("server stopped: %v", err)
	}
}

func registerProfilers(router *gin.Engine) {
	router.GET("/debug/pprof/delta_heap", gin.WrapF(deltapprof.Heap))
	router.GET("/debug/pprof/delta_block", gin.WrapF(deltapprof.Block))
	router.GET("/debug/pprof/delta_mutex", gin.WrapF(deltapprof.Mutex))
}
