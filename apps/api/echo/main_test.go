package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/slrtce/smartschedule/core"
	"github.com/slrtce/smartschedule/core/notification"
	"github.com/slrtce/smartschedule/core/teacher"
	"github.com/slrtce/smartschedule/core/timetable"
	"github.com/slrtce/smartschedule/services/email"
	"github.com/slrtce/smartschedule/storage/snapshot"
	"github.com/slrtce/smartschedule/tests"
)

func TestMain(m *testing.M) {
	// exercise the production error paths, not the debug passthrough
	core.Conf.Set("debug", false)
	core.Conf.Set("testMode", true)
	os.Exit(m.Run())
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type testEnv struct {
	server      Server
	teacherRepo teacher.Repository
	ttRepo      timetable.Repository
	notifRepo   notification.Repository
	teacherSvc  *teacher.Service
	ttSvc       *timetable.Service
	notifSvc    *notification.Service
}

func setup(t *testing.T) *testEnv {
	db, err := snapshotdb.Open(t.TempDir())
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	env := &testEnv{
		teacherRepo: snapshotdb.NewTeacherRepository(db),
		ttRepo:      snapshotdb.NewTimetableRepository(db),
		notifRepo:   snapshotdb.NewNotificationRepository(db),
	}

	mailSvc := emailsvc.NewConsoleServiceMock()
	env.notifSvc = notification.NewService(env.notifRepo, nopLogger{})
	env.ttSvc = timetable.NewService(env.ttRepo, timetable.NewGenerator(0), nopLogger{})
	env.teacherSvc = teacher.NewService(env.teacherRepo, env.notifSvc, env.ttSvc, nopLogger{})
	dispatcher := notification.NewDispatcher(env.notifSvc, mailSvc, nopLogger{})

	env.server = NewServer(
		&Options{
			DisableReqLogs: true,
			TeacherSvc:     env.teacherSvc,
			TimetableSvc:   env.ttSvc,
			NotifSvc:       env.notifSvc,
			Dispatcher:     dispatcher,
			Logger:         nopLogger{},
		},
	)
	return env
}

func (env *testEnv) createTeacher(t *testing.T, id, name, email, phone, year string) teacher.Teacher {
	return testutil.CreateTeacher(t, env.teacherRepo, id, name, email, phone, year, "s3cr3T#pwd")
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func adminToken(t *testing.T) string {
	token, err := GenerateToken(getAdminClaims())
	if err != nil {
		t.Fatalf("adminToken() failed: %v", err)
	}
	return token
}

func teacherToken(t *testing.T, tchr teacher.Teacher) string {
	token, err := GenerateToken(GetTeacherClaims(tchr))
	if err != nil {
		t.Fatalf("teacherToken() failed: %v", err)
	}
	return token
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decodeBody() failed: %v\nbody: %s", err, rec.Body.String())
	}
}
