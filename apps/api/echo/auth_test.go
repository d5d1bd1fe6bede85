package echoapi

import (
	"net/http"
	"testing"

	"github.com/slrtce/smartschedule/core/timetable"
)

func Test_authApi_login(t *testing.T) {
	env := setup(t)

	tchr := env.createTeacher(t, "t1", "Anita Rao", "anita.rao@slrtce.in", "9876543210", timetable.YearFirst)

	tests := []struct {
		name     string
		body     LoginRequest
		wantCode int
	}{
		{name: "admin ok", body: LoginRequest{Role: "admin", Email: "admin@slrtce.in", Password: "admin123"}, wantCode: http.StatusOK},
		{name: "admin wrong password", body: LoginRequest{Role: "admin", Email: "admin@slrtce.in", Password: "nope"}, wantCode: http.StatusBadRequest},
		{name: "admin wrong email", body: LoginRequest{Role: "admin", Email: "boss@slrtce.in", Password: "admin123"}, wantCode: http.StatusBadRequest},
		{name: "teacher ok", body: LoginRequest{Role: "teacher", Email: tchr.Email, Password: "s3cr3T#pwd"}, wantCode: http.StatusOK},
		{name: "teacher email case insensitive", body: LoginRequest{Role: "teacher", Email: "Anita.Rao@slrtce.in", Password: "s3cr3T#pwd"}, wantCode: http.StatusOK},
		{name: "teacher wrong password", body: LoginRequest{Role: "teacher", Email: tchr.Email, Password: "nope"}, wantCode: http.StatusBadRequest},
		{name: "teacher unknown email", body: LoginRequest{Role: "teacher", Email: "ghost@slrtce.in", Password: "s3cr3T#pwd"}, wantCode: http.StatusBadRequest},
		{name: "unknown role", body: LoginRequest{Role: "student", Email: tchr.Email, Password: "s3cr3T#pwd"}, wantCode: http.StatusBadRequest},
		{name: "missing fields", body: LoginRequest{}, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/auth/login", marshalObj(t, tt.body))
			env.server.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("login code = %d, want %d\nbody: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode == http.StatusOK {
				var res LoginResponse
				decodeBody(t, rec, &res)
				if res.Token == "" {
					t.Error("login returned an empty token")
				}
			}
		})
	}
}

func Test_authApi_tokenRequired(t *testing.T) {
	env := setup(t)

	req, rec := newRequest(http.MethodGet, "/v1/notifications")
	env.server.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
