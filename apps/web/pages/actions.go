package pages

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lamms/lamms/client"
)

// sectionPages are the views section forms post from and redirect back to.
var sectionPages = []string{"/pages/section", "/admin-section"}

type sectionActions struct {
	sections SectionClient
}

// RegisterSectionActions handles the create/update/delete forms of the section views.
func RegisterSectionActions(e *echo.Echo, sections SectionClient) {
	a := sectionActions{sections: sections}
	for _, page := range sectionPages {
		g := e.Group(page)
		g.POST("", a.create(page))
		g.POST("/:id", a.update(page))
		g.POST("/:id/delete", a.destroy(page))
	}
}

// formPayload turns the submitted form into a section payload. Empty fields are left out.
func formPayload(ctx echo.Context) (map[string]interface{}, error) {
	form, err := ctx.FormParams()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}
	payload := make(map[string]interface{}, len(form))
	for k, v := range form {
		if k == "id" || len(v) == 0 || v[0] == "" {
			continue
		}
		payload[k] = v[0]
	}
	return payload, nil
}

func (a sectionActions) create(page string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		payload, err := formPayload(ctx)
		if err != nil {
			return err
		}
		if _, err = a.sections.CreateSection(ctx.Request().Context(), payload); err != nil {
			return trapResponseErr(err, "creating section")
		}
		return ctx.Redirect(http.StatusSeeOther, page)
	}
}

func (a sectionActions) update(page string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		payload, err := formPayload(ctx)
		if err != nil {
			return err
		}
		if _, err = a.sections.UpdateSection(ctx.Request().Context(), ctx.Param("id"), payload); err != nil {
			return trapResponseErr(err, "updating section")
		}
		return ctx.Redirect(http.StatusSeeOther, page)
	}
}

func (a sectionActions) destroy(page string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if _, err := a.sections.DeleteSection(ctx.Request().Context(), ctx.Param("id")); err != nil {
			return trapResponseErr(err, "deleting section")
		}
		return ctx.Redirect(http.StatusSeeOther, page)
	}
}

// trapResponseErr forwards the status of a failed backend response.
func trapResponseErr(err error, msg string) error {
	var respErr *client.ResponseError
	if errors.As(err, &respErr) {
		return echo.NewHTTPError(respErr.Response.StatusCode, respErr.Error()).SetInternal(err)
	}
	return errors.Wrap(err, msg)
}
