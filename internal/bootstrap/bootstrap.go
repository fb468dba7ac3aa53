package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	authinadapter "writerly/internal/modules/auth/adapter/in"
	authoutadapter "writerly/internal/modules/auth/adapter/out"
	authservice "writerly/internal/modules/auth/service"
	authusecase "writerly/internal/modules/auth/usecase"
	browseinadapter "writerly/internal/modules/browse/adapter/in"
	browseoutadapter "writerly/internal/modules/browse/adapter/out"
	browseusecase "writerly/internal/modules/browse/usecase"
	dashboardinadapter "writerly/internal/modules/dashboard/adapter/in"
	dashboardoutadapter "writerly/internal/modules/dashboard/adapter/out"
	dashboardusecase "writerly/internal/modules/dashboard/usecase"
	engagementinadapter "writerly/internal/modules/engagement/adapter/in"
	engagementoutadapter "writerly/internal/modules/engagement/adapter/out"
	engagementusecase "writerly/internal/modules/engagement/usecase"
	notificationsinadapter "writerly/internal/modules/notifications/adapter/in"
	notificationsoutadapter "writerly/internal/modules/notifications/adapter/out"
	notificationsusecase "writerly/internal/modules/notifications/usecase"
	plugininadapter "writerly/internal/modules/plugin/adapter/in"
	pluginoutadapter "writerly/internal/modules/plugin/adapter/out"
	pluginservice "writerly/internal/modules/plugin/service"
	pluginusecase "writerly/internal/modules/plugin/usecase"
	professionalinadapter "writerly/internal/modules/professional/adapter/in"
	professionaloutadapter "writerly/internal/modules/professional/adapter/out"
	professionalusecase "writerly/internal/modules/professional/usecase"
	profileinadapter "writerly/internal/modules/profile/adapter/in"
	profileoutadapter "writerly/internal/modules/profile/adapter/out"
	profileusecase "writerly/internal/modules/profile/usecase"
	readinginadapter "writerly/internal/modules/reading/adapter/in"
	readingoutadapter "writerly/internal/modules/reading/adapter/out"
	readingusecase "writerly/internal/modules/reading/usecase"
	worksinadapter "writerly/internal/modules/works/adapter/in"
	worksoutadapter "writerly/internal/modules/works/adapter/out"
	worksusecase "writerly/internal/modules/works/usecase"
	"writerly/internal/platform/clock"
	"writerly/internal/platform/config"
	"writerly/internal/platform/httpapi"
	"writerly/internal/platform/logging"
	"writerly/internal/platform/storage"
	uiapp "writerly/internal/ui/app"
)

type App struct {
	AuthCLI          authinadapter.CLIHandler
	WorksCLI         worksinadapter.CLIHandler
	BrowseCLI        browseinadapter.CLIHandler
	EngagementCLI    engagementinadapter.CLIHandler
	ReadingCLI       readinginadapter.CLIHandler
	NotificationsCLI notificationsinadapter.CLIHandler
	DashboardCLI     dashboardinadapter.CLIHandler
	ProfileCLI       profileinadapter.CLIHandler
	ProfessionalCLI  professionalinadapter.CLIHandler
	PluginCLI        plugininadapter.CLIHandler

	Config config.Config
	Logger hclog.Logger

	closers []io.Closer
}

func New(cfg config.Config) (*App, error) {
	logger, logFile, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	app := &App{Config: cfg, Logger: logger, closers: []io.Closer{logFile}}
	if err := app.wire(cfg, logger); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) wire(cfg config.Config, logger hclog.Logger) error {
	clk := clock.SystemClock{}

	kv, err := storage.Open(cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	a.closers = append(a.closers, kv)

	authStore := authservice.NewAuthStore(authoutadapter.NewKVSessionStore(kv), logger)
	if err := authStore.Restore(context.Background()); err != nil {
		logger.Warn("starting signed out", "error", err)
	}

	client := httpapi.NewClient(cfg.APIURL, authStore, cfg.RequestTimeout, httpapi.WithLogger(logger))
	client.OnUnauthorized(func() {
		_ = authStore.Logout(context.Background())
	})

	authUC := authusecase.NewInteractor(authStore, authoutadapter.NewHTTPGateway(client), authoutadapter.NewJWTInspector())

	worksUC := worksusecase.NewInteractor(
		worksoutadapter.NewHTTPGateway(client),
		worksoutadapter.NewLocalDocumentReader(),
		worksoutadapter.NewMarkdownExporter(),
	)
	browseUC := browseusecase.NewInteractor(browseoutadapter.NewHTTPGateway(client))

	history, err := readingoutadapter.NewSQLiteHistoryStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("new reading history: %w", err)
	}
	if c, ok := history.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
	readingUC := readingusecase.NewInteractor(clk, readingoutadapter.NewHTTPGateway(client), history, logger, cfg.ReadingInterval)

	engagementUC := engagementusecase.NewInteractor(
		engagementoutadapter.NewHTTPGateway(client),
		engagementoutadapter.NewReadingUnlockAdapter(readingUC),
	)
	notificationsUC := notificationsusecase.NewInteractor(
		notificationsoutadapter.NewHTTPGateway(client), clk, cfg.NotificationInterval, logger,
	)
	dashboardUC := dashboardusecase.NewInteractor(dashboardoutadapter.NewHTTPGateway(client))
	profileUC := profileusecase.NewInteractor(profileoutadapter.NewHTTPGateway(client))
	professionalUC := professionalusecase.NewInteractor(professionaloutadapter.NewHTTPGateway(client))

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.PluginDir()),
		pluginoutadapter.NewGRPCHost(logger),
		pluginoutadapter.NewWorksSourceAdapter(worksUC),
		logger,
	))

	a.AuthCLI = authinadapter.NewCLIHandler(authUC)
	a.WorksCLI = worksinadapter.NewCLIHandler(worksUC)
	a.BrowseCLI = browseinadapter.NewCLIHandler(browseUC)
	a.EngagementCLI = engagementinadapter.NewCLIHandler(engagementUC)
	a.ReadingCLI = readinginadapter.NewCLIHandler(readingUC)
	a.NotificationsCLI = notificationsinadapter.NewCLIHandler(notificationsUC)
	a.DashboardCLI = dashboardinadapter.NewCLIHandler(dashboardUC)
	a.ProfileCLI = profileinadapter.NewCLIHandler(profileUC)
	a.ProfessionalCLI = professionalinadapter.NewCLIHandler(professionalUC)
	a.PluginCLI = plugininadapter.NewCLIHandler(pluginUC)
	return nil
}

// Close releases storage handles and the log file, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(startPath string, app *App) error {
	model := uiapp.NewModel(uiapp.Ports{
		Auth:          app.AuthCLI,
		Works:         app.WorksCLI,
		Browse:        app.BrowseCLI,
		Engagement:    app.EngagementCLI,
		Reading:       app.ReadingCLI,
		Notifications: app.NotificationsCLI,
		Dashboard:     app.DashboardCLI,
		Profile:       app.ProfileCLI,
		Professional:  app.ProfessionalCLI,
		Plugin:        app.PluginCLI,
	}, startPath, app.Config.NotificationInterval, app.Logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
