package echoapi

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/slrtce/smartschedule/core"
	"github.com/slrtce/smartschedule/core/notification"
	"github.com/slrtce/smartschedule/core/teacher"
)

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// appJWTConfig is the default JWT auth middleware config.
var appJWTConfig = middleware.JWTConfig{
	SigningKey:    []byte(core.Conf.GetString("secretKey")),
	SigningMethod: middleware.AlgorithmHS256,
	ContextKey:    "userToken",
	Claims:        new(Claims),
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	IsAdmin bool   `json:"is_admin,omitempty"`
}

func getAdminClaims() *Claims {
	return newClaims(notification.AdminUserID, "Admin", core.Conf.GetString("adminEmail"), RoleAdmin)
}

func GetTeacherClaims(t teacher.Teacher) *Claims {
	return newClaims(t.ID, t.Name, t.Email, RoleTeacher)
}

func newClaims(subject, name, email, role string) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.GetString("appName"),
			Subject:   subject,
			Audience:  "Academia",
			ExpiresAt: now.Add(core.Conf.GetDuration("jwtExpirationDelta")).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:    name,
		Email:   email,
		Role:    role,
		IsAdmin: role == RoleAdmin,
	}
}

func authenticate(data LoginRequest, svc *teacher.Service) (*Claims, error) {
	if data.Role == RoleAdmin {
		emailOK := subtle.ConstantTimeCompare([]byte(data.Email), []byte(core.Conf.GetString("adminEmail"))) == 1
		pwdOK := subtle.ConstantTimeCompare([]byte(data.Password), []byte(core.Conf.GetString("adminPassword"))) == 1
		if !(emailOK && pwdOK) {
			return nil, errAuthenticationFailed
		}
		return getAdminClaims(), nil
	}

	t, err := svc.GetByEmail(data.Email)
	if err != nil {
		if errors.Cause(err) == teacher.ErrNotFound {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "finding teacher by email")
	}
	if err = t.CheckPassword(data.Password); err != nil {
		return nil, errAuthenticationFailed
	}
	return GetTeacherClaims(t), nil
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

type authApi struct {
	teacherSvc *teacher.Service
}

func registerAuthAPI(g *echo.Group, teacherSvc *teacher.Service) {
	api := authApi{teacherSvc: teacherSvc}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := authenticate(data, api.teacherSvc)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

type (
	LoginRequest struct {
		Role     string `json:"role" validate:"required,oneof=admin teacher"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Role = core.CleanString(lr.Role, true /* lower */)
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}
