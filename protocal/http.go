package protocal

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"uxpilot/configs"
	httpAdapter "uxpilot/internal/adapters/input/http"
	"uxpilot/internal/adapters/output/filestore"
	"uxpilot/internal/adapters/output/memory"
	openaiAdapter "uxpilot/internal/adapters/output/openai"
	"uxpilot/internal/adapters/output/postgres"
	"uxpilot/internal/application"
	"uxpilot/internal/domain"
	"uxpilot/internal/ports/output"
	"uxpilot/pkg/database_driver/gorm"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeHTTP func
func ServeHTTP() error {
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	logrus.Info(configs.GetViper().Env)

	app := fiber.New(fiber.Config{
		// Leave headroom above the 5 MiB media cap for multipart framing.
		BodyLimit: domain.MaxUploadBytes + 1024*1024,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	// Output adapter (media store)
	mediaStore, err := filestore.NewMediaStore(configs.GetViper().Media.Path)
	if err != nil {
		return err
	}

	// Output adapters (repositories): PostgreSQL when configured, in-memory
	// otherwise so the tool runs standalone.
	var (
		scriptRepo output.ScriptRepository
		resultRepo output.ResultRepository
		dbConGorm  *gorm.DB
	)
	if configs.GetViper().Postgres.Host != "" {
		dbConGorm, err = gorm.ConnectToPostgreSQL(
			configs.GetViper().Postgres.Host,
			configs.GetViper().Postgres.Port,
			configs.GetViper().Postgres.Username,
			configs.GetViper().Postgres.Password,
			configs.GetViper().Postgres.DbName,
			configs.GetViper().Postgres.SSLMode,
		)
		if err != nil {
			return err
		}
		scriptRepo = postgres.NewScriptRepository(dbConGorm.Postgres)
		resultRepo = postgres.NewResultRepository(dbConGorm.Postgres)
	} else {
		logrus.Info("Postgres not configured, using in-memory repositories")
		scriptRepo = memory.NewScriptRepository()
		resultRepo = memory.NewResultRepository()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			log.Println("Gracefull shut down ...")
			if dbConGorm != nil {
				gorm.DisconnectPostgres(dbConGorm.Postgres)
			}
			err := app.Shutdown()
			if err != nil {
				log.Println("Error when shutdown server: ", err)
			}
		}
	}()

	// Output adapter factory (assistants client): one client per test run,
	// bound to the per-request API key.
	openAICfg := configs.GetViper().OpenAI
	newClient := func(apiKey string) output.AssistantClient {
		return openaiAdapter.NewAssistantClient(apiKey, openAICfg.BaseURL, time.Duration(openAICfg.Timeout)*time.Second)
	}

	// Wire up the hexagonal architecture layers
	// Application services (use cases)
	mediaSrv := application.NewMediaService(mediaStore)
	uxtestSrv := application.NewUXTestService(
		mediaStore,
		resultRepo,
		newClient,
		openAICfg.APIKey,
		openAICfg.Model,
		time.Duration(openAICfg.PollInterval)*time.Millisecond,
		time.Duration(openAICfg.RunTimeout)*time.Second,
	)
	scriptSrv := application.NewScriptService(scriptRepo)
	resultSrv := application.NewResultService(resultRepo)
	// Input adapter (HTTP handler)
	hdl := httpAdapter.New(mediaSrv, uxtestSrv, scriptSrv, resultSrv)

	// Uploaded media is served as static files under the public prefix
	app.Static("/"+configs.GetViper().Media.PublicPrefix, configs.GetViper().Media.Path)

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)

	// Core pipeline endpoints
	app.Post("/upload", hdl.Upload)
	app.Get("/media/:mediaId", hdl.ListMedia)
	app.Post("/uxtest", hdl.ConductTest)

	apiv1 := app.Group("/v1/api")
	{
		apiv1.Get("/script", hdl.GetScripts)
		apiv1.Get("/script/:id", hdl.GetScript)
		apiv1.Post("/script", hdl.SaveScript)
		apiv1.Delete("/script/:id", hdl.DeleteScript)
		apiv1.Get("/result", hdl.GetResults)
		apiv1.Get("/result/:id", hdl.GetResult)
	}

	err = app.Listen(":" + configs.GetViper().App.Port)
	if err != nil {
		return err
	}

	logrus.Println("Listerning on port: ", configs.GetViper().App.Port)
	return nil
}
