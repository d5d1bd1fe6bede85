package main

import (
	"log"
	"os"

	"github.com/slrtce/smartschedule/apps/api/echo"
	"github.com/slrtce/smartschedule/core"
	"github.com/slrtce/smartschedule/core/notification"
	"github.com/slrtce/smartschedule/core/teacher"
	"github.com/slrtce/smartschedule/core/timetable"
	"github.com/slrtce/smartschedule/services/email"
	"github.com/slrtce/smartschedule/services/logger"
	"github.com/slrtce/smartschedule/storage/database"
	"github.com/slrtce/smartschedule/storage/database/sqlx"
	"github.com/slrtce/smartschedule/storage/snapshot"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lshortfile)

	var logger core.Logger
	if core.Conf.GetBool("debug") {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std)
	}

	var (
		teacherRepo teacher.Repository
		ttRepo      timetable.Repository
		notifRepo   notification.Repository
	)
	switch core.Conf.GetString("dbEngine") {
	case "postgres":
		db, err := database.Open()
		errAndDie(std, err)
		defer db.Close()
		errAndDie(std, database.Migrate(db, "storage/database/migrations"))
		teacherRepo = sqlxrepos.NewTeacherRepository(db)
		ttRepo = sqlxrepos.NewTimetableRepository(db)
		notifRepo = sqlxrepos.NewNotificationRepository(db)
	default:
		db, err := snapshotdb.Open(core.Conf.GetString("dataDir"))
		errAndDie(std, err)
		teacherRepo = snapshotdb.NewTeacherRepository(db)
		ttRepo = snapshotdb.NewTimetableRepository(db)
		notifRepo = snapshotdb.NewNotificationRepository(db)
	}

	var mailSvc core.EmailService
	if core.Conf.GetBool("debug") {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	notifSvc := notification.NewService(notifRepo, logger)
	gen := timetable.NewGenerator(core.Conf.GetDuration("generationDelay"))
	ttSvc := timetable.NewService(ttRepo, gen, logger)
	teacherSvc := teacher.NewService(teacherRepo, notifSvc, ttSvc, logger)
	dispatcher := notification.NewDispatcher(notifSvc, mailSvc, logger)

	app := echoapi.NewServer(
		&echoapi.Options{
			Address:      core.Conf.GetString("serverAddress"),
			TeacherSvc:   teacherSvc,
			TimetableSvc: ttSvc,
			NotifSvc:     notifSvc,
			Dispatcher:   dispatcher,
			Logger:       logger,
		},
	)
	app.Start()
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
