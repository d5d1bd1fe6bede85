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

type timetableApi struct {
	svc        *timetable.Service
	teacherSvc *teacher.Service
	dispatcher *notification.Dispatcher
}

func registerTimetableAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *timetable.Service,
	teacherSvc *teacher.Service,
	dispatcher *notification.Dispatcher,
) {
	api := timetableApi{svc: svc, teacherSvc: teacherSvc, dispatcher: dispatcher}

	tg := g.Group("/timetables", jwt)

	tg.POST("/generate", api.generate, adminMiddleware())
	tg.GET("", api.query)

	dg := tg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware())
	dg.DELETE("", api.destroy, adminMiddleware())
}

// Handlers

func (api *timetableApi) generate(ctx echo.Context) error {
	var params timetable.GenerateParams
	if err := ctx.Bind(&params); err != nil {
		return errors.Wrap(err, "binding to GenerateParams")
	}

	teachers, err := api.teacherSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	if params.Teachers == nil {
		names := make([]string, 0, len(teachers))
		for _, t := range teachers {
			names = append(names, t.Name)
		}
		params.Teachers = names
	}

	tt, err := api.svc.Generate(ctx.Request().Context(), params)
	if err != nil {
		return errors.Wrap(err, "generating timetable")
	}

	bulk, err := api.dispatcher.NotifyBulk(tt, teachers)
	if err != nil {
		return errors.Wrap(err, "dispatching bulk notification")
	}

	return ctx.JSON(http.StatusCreated, GenerateResponse{Timetable: tt, BulkSummary: bulk})
}

func (api *timetableApi) query(ctx echo.Context) error {
	tts, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying timetables")
	}
	if tts == nil {
		tts = []timetable.Timetable{}
	}
	return ctx.JSON(http.StatusOK, tts)
}

func (api *timetableApi) retrieve(ctx echo.Context) error {
	tt, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == timetable.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding timetable by ID")
	}
	return ctx.JSON(http.StatusOK, tt)
}

func (api *timetableApi) update(ctx echo.Context) error {
	var data UpdateTimetableRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTimetableRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	data.Timetable.ID = ctx.Param("id")
	tt, err := api.svc.Update(data.Timetable)
	if err != nil {
		if errors.Cause(err) == timetable.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating timetable")
	}

	// a lecture-change context triggers a dispatch to the affected teacher
	var dispatch *notification.DispatchResult
	if data.ChangeContext != nil {
		res, err := api.dispatchChange(tt, data.ChangeContext)
		if err != nil {
			return err
		}
		dispatch = &res
	}

	return ctx.JSON(http.StatusOK, UpdateTimetableResponse{Timetable: tt, Dispatch: dispatch})
}

func (api *timetableApi) dispatchChange(tt timetable.Timetable, cc *ChangeContext) (notification.DispatchResult, error) {
	teachers, err := api.teacherSvc.QueryAll()
	if err != nil {
		return notification.DispatchResult{}, errors.Wrap(err, "querying teachers")
	}
	for _, t := range teachers {
		if t.Name == cc.Lecture.Teacher {
			return api.dispatcher.Notify(t, cc.Message, &notification.ScheduleContext{Day: cc.Day, Lecture: cc.Lecture})
		}
	}
	// the slot may be unassigned; nothing to dispatch then
	return notification.DispatchResult{
		Status: notification.StatusSkipped,
		Reason: "no teacher on record for the changed slot",
	}, nil
}

func (api *timetableApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		if errors.Cause(err) == timetable.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting timetable")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	GenerateResponse struct {
		Timetable   timetable.Timetable             `json:"timetable"`
		BulkSummary notification.BulkDispatchResult `json:"bulk_summary"`
	}

	// ChangeContext identifies the edited slot so the affected teacher can
	// be notified along with the new timetable.
	ChangeContext struct {
		Day     string            `json:"day" validate:"required"`
		Lecture timetable.Lecture `json:"lecture" validate:"required"`
		Message string            `json:"message" validate:"required"`
	}

	UpdateTimetableRequest struct {
		Timetable     timetable.Timetable `json:"timetable" validate:"required"`
		ChangeContext *ChangeContext      `json:"change_context"`
	}

	UpdateTimetableResponse struct {
		Timetable timetable.Timetable          `json:"timetable"`
		Dispatch  *notification.DispatchResult `json:"dispatch,omitempty"`
	}
)

func (ur *UpdateTimetableRequest) Validate() error {
	return core.Validate.Struct(ur)
}
