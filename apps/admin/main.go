package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/slrtce/smartschedule/core"
	"github.com/slrtce/smartschedule/core/teacher"
	"github.com/slrtce/smartschedule/storage/database"
	"github.com/slrtce/smartschedule/storage/database/sqlx"
	"github.com/slrtce/smartschedule/storage/snapshot"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var (
		db          *sqlx.DB
		teacherRepo teacher.Repository
	)
	switch core.Conf.GetString("dbEngine") {
	case "postgres":
		var err error
		db, err = database.Open()
		errAndDie(err)
		defer db.Close()
		teacherRepo = sqlxrepos.NewTeacherRepository(db)
	default:
		sdb, err := snapshotdb.Open(core.Conf.GetString("dataDir"))
		errAndDie(err)
		teacherRepo = snapshotdb.NewTeacherRepository(sdb)
	}

	// start CLI
	cli := commandLine{
		db:          db,
		teacherRepo: teacherRepo,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
