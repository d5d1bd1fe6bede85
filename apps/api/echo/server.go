package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/slrtce/smartschedule/core"
	"github.com/slrtce/smartschedule/core/notification"
	"github.com/slrtce/smartschedule/core/teacher"
	"github.com/slrtce/smartschedule/core/timetable"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		TeacherSvc     *teacher.Service
		TimetableSvc   *timetable.Service
		NotifSvc       *notification.Service
		Dispatcher     *notification.Dispatcher
		Logger         core.Logger
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan struct{}
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan struct{}),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := core.Conf.GetBool("debug")

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || core.Conf.GetBool("testMode")) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAuthAPI(v1, s.opts.TeacherSvc)
	registerTeacherAPI(v1, jwt, s.opts.TeacherSvc, s.opts.TimetableSvc, s.opts.Dispatcher)
	registerTimetableAPI(v1, jwt, s.opts.TimetableSvc, s.opts.TeacherSvc, s.opts.Dispatcher)
	registerNotificationAPI(v1, jwt, s.opts.NotifSvc)
}

func (s *server) Start() {
	go func() {
		<-s.shutdown
		_ = s.Stop(context.Background())
	}()
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// signalShutdown is handed to the error handler so a core.shutdown error can
// stop the server gracefully.
func (s *server) signalShutdown() {
	select {
	case <-s.shutdown:
	default:
		close(s.shutdown)
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+core.Conf.GetString("appName")+" API!")
}
