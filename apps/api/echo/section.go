package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lamms/lamms/core/section"
)

type sectionApi struct {
	svc *section.Service
}

func registerSectionAPI(g *echo.Group, svc *section.Service) {
	api := sectionApi{svc: svc}

	sg := g.Group("/sections")
	sg.GET("", api.list)
	sg.POST("", api.create)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

// bindPayload reads the section payload. Path and query params are never merged into it.
func bindPayload(ctx echo.Context) (section.Payload, error) {
	var payload section.Payload
	if err := decodeJSON(ctx, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = section.Payload{}
	}
	return payload, nil
}

func (api *sectionApi) list(ctx echo.Context) error {
	sections, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing sections")
	}
	if sections == nil {
		sections = []section.Section{}
	}
	return ctx.JSON(http.StatusOK, sections)
}

func (api *sectionApi) create(ctx echo.Context) error {
	payload, err := bindPayload(ctx)
	if err != nil {
		return err
	}
	sec, err := api.svc.Create(ctx.Request().Context(), payload)
	if err != nil {
		return errors.Wrap(err, "creating section")
	}
	return ctx.JSON(http.StatusCreated, sec)
}

func (api *sectionApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	sec, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding section by ID")
	}
	return ctx.JSON(http.StatusOK, sec)
}

func (api *sectionApi) update(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	payload, err := bindPayload(ctx)
	if err != nil {
		return err
	}
	sec, err := api.svc.Update(ctx.Request().Context(), id, payload)
	if err != nil {
		return errors.Wrap(err, "updating section")
	}
	return ctx.JSON(http.StatusOK, sec)
}

func (api *sectionApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	sec, err := api.svc.Delete(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deleting section")
	}
	return ctx.JSON(http.StatusOK, sec)
}
