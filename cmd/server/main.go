package main

import (
	"context"
	"database/sql"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/contentd/contentd"
	"github.com/contentd/contentd/config"
)

type App struct {
	config *config.AppConfig
	bunDB  *bun.DB
	auth   contentd.Authenticator
	auther *contentd.RouteAuthenticator
	repo   contentd.RepositoryManager
	srv    router.Server[*fiber.App]
	logger *glog.BaseLogger
}

func (a *App) Config() *config.AppConfig {
	return a.config
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("contentd"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := config.Load()
	if err != nil {
		lgr.GetLogger("config").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	ctx := context.Background()

	if err := WithPersistence(ctx, app); err != nil {
		log.Fatal(err)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		log.Fatal(err)
	}

	if err := WithHTTPAuth(ctx, app); err != nil {
		log.Fatal(err)
	}

	RegisterRoutes(app)

	app.srv.Serve(":" + cfg.GetServer().GetPort())

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	db, err := sql.Open(sqliteshim.ShimName, app.Config().GetPersistence().GetDSN())
	if err != nil {
		return err
	}

	persistence.RegisterModel((*contentd.User)(nil))
	persistence.RegisterModel((*contentd.Content)(nil))
	persistence.RegisterModel((*contentd.Category)(nil))

	client, err := persistence.New(app.Config().GetPersistence(), db, sqlitedialect.New())
	if err != nil {
		return err
	}

	client.SetLogger(app.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(contentd.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	app.bunDB = client.DB()
	app.repo = contentd.NewRepositoryManager(client.DB())

	return app.repo.Validate()
}

func WithHTTPServer(ctx context.Context, app *App) error {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName:       "contentd",
			UnescapePath:  true,
			StrictRouting: false,
		}))
	})

	srv.Router().WithLogger(app.GetLogger("router"))

	app.srv = srv
	return nil
}

// userFinderAdapter narrows the repository's variadic lookup to the single
// method the identity provider needs.
type userFinderAdapter struct {
	users contentd.Users
}

func (a userFinderAdapter) GetByIdentifier(ctx context.Context, identifier string) (*contentd.User, error) {
	return a.users.GetByIdentifier(ctx, identifier)
}

func WithHTTPAuth(ctx context.Context, app *App) error {
	cfg := app.Config().GetAuth()

	userProvider := contentd.NewUserProvider(userFinderAdapter{users: app.repo.Users()})
	userProvider.WithLogger(app.GetLogger("auth:prv"))

	authenticator := contentd.NewAuthenticator(userProvider, cfg)
	authenticator.WithLogger(app.GetLogger("auth:authn"))

	app.auth = authenticator

	httpAuth, err := contentd.NewHTTPAuthenticator(authenticator, cfg)
	if err != nil {
		return err
	}

	httpAuth.Logger = app.GetLogger("auth:http")
	app.auther = httpAuth

	return nil
}

func RegisterRoutes(app *App) {
	cfg := app.Config().GetAuth()
	api := app.srv.Router().Group("/api")

	protected := app.auther.ProtectedRoute(cfg, app.auther.MakeClientRouteAuthErrorHandler(false))

	contentd.RegisterAuthRoutes(api, protected,
		func(ac *contentd.AuthController) *contentd.AuthController {
			ac.Auther = app.auther
			ac.Repo = app.repo
			ac.Logger = app.GetLogger("auth:ctrl")
			ac.ContextKey = cfg.GetContextKey()
			return ac
		})

	contents := contentd.NewContentController(app.repo)
	contents.Logger = app.GetLogger("contents")
	contents.ContextKey = cfg.GetContextKey()
	contents.RegisterRoutes(api, protected)

	categories := contentd.NewCategoryController(app.repo)
	categories.Logger = app.GetLogger("categories")
	categories.RegisterRoutes(api, protected)
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
