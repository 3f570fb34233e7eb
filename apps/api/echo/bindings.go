package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lamms/lamms/core"
)

var orderingParam = "ordering"

// Ordering binds `?ordering=field,-other` to DB orderings. A leading "-" means descending.
type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// idParam reads the `:id` path param. Non integer ids can never match a record.
func idParam(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

// decodeJSON decodes the request body into v as is. An empty body leaves v untouched.
func decodeJSON(ctx echo.Context, v interface{}) error {
	if ctx.Request().ContentLength == 0 {
		return nil
	}
	return ctx.Echo().JSONSerializer.Deserialize(ctx, v)
}
