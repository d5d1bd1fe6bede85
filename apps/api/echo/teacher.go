package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/slrtce/smartschedule/core"
	"github.com/slrtce/smartschedule/core/notification"
	"github.com/slrtce/smartschedule/core/teacher"
	"github.com/slrtce/smartschedule/core/timetable"
)

type teacherApi struct {
	svc        *teacher.Service
	ttSvc      *timetable.Service
	dispatcher *notification.Dispatcher
}

func registerTeacherAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *teacher.Service,
	ttSvc *timetable.Service,
	dispatcher *notification.Dispatcher,
) {
	api := teacherApi{svc: svc, ttSvc: ttSvc, dispatcher: dispatcher}

	tg := g.Group("/teachers")

	// un-authed endpoints
	tg.POST("/register", api.register)

	// authed endpoints
	ag := tg.Group("", jwt)
	ag.GET("", api.query, adminMiddleware())

	// detail endpoints
	dg := ag.Group("/:id", selfOrAdminMiddleware())
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy, adminMiddleware())
	dg.POST("/notify", api.notify, adminMiddleware())
}

// Handlers

func (api *teacherApi) register(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	t, err := api.svc.Register(data)
	if err != nil {
		return errors.Wrap(err, "registering teacher")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *teacherApi) query(ctx echo.Context) error {
	teachers, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	if teachers == nil {
		teachers = []teacher.Teacher{}
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	t, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == teacher.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding teacher by ID")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherApi) update(ctx echo.Context) error {
	orig, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == teacher.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding teacher by ID")
	}

	var data teacher.UpdateTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	if err := data.Validate(orig, api.svc); err != nil {
		return err
	}

	t, err := api.svc.Update(orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		if errors.Cause(err) == teacher.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *teacherApi) notify(ctx echo.Context) error {
	t, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == teacher.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding teacher by ID")
	}

	var data NotifyRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NotifyRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	res, err := api.dispatcher.Notify(t, data.Message, data.ScheduleContext)
	if err != nil {
		return errors.Wrap(err, "dispatching notification")
	}
	return ctx.JSON(http.StatusOK, res)
}

type NotifyRequest struct {
	Message         string                        `json:"message" validate:"required"`
	ScheduleContext *notification.ScheduleContext `json:"schedule_context"`
}

func (nr *NotifyRequest) Validate() error {
	nr.Message = core.CleanString(nr.Message)
	return core.Validate.Struct(nr)
}
