package router

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/lamms/lamms/core"
)

type (
	// Loader fetches the data a view renders.
	Loader func(ctx context.Context, r *http.Request) (interface{}, error)

	// Page is what layouts and views are executed with.
	Page struct {
		AppName string
		Route   *Route
		Nav     []*Route // routes sharing the active layout
		Query   map[string]string
		Data    interface{}
	}

	Router struct {
		appName string
		fsys    fs.FS
		logger  core.Logger
		routes  []*Route
		loaders map[string]Loader // by route name
	}
)

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"join":  strings.Join,
	"field": func(obj map[string]interface{}, key string) string {
		if v, ok := obj[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
		return ""
	},
}

func New(appName string, fsys fs.FS, logger core.Logger, loaders map[string]Loader) *Router {
	return &Router{
		appName: appName,
		fsys:    fsys,
		logger:  logger,
		routes:  Routes(),
		loaders: loaders,
	}
}

func (rt *Router) Routes() []*Route {
	return rt.routes
}

func (rt *Router) Resolve(path string) (Match, bool) {
	return Resolve(rt.routes, path)
}

func (rt *Router) nav(layout *Layout) []*Route {
	var nav []*Route
	for _, r := range rt.routes {
		if r.Layout == layout {
			nav = append(nav, r)
		}
	}
	return nav
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	match, ok := rt.Resolve(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	body, err := rt.render(r, match.Route)
	if err != nil {
		msg := http.StatusText(http.StatusInternalServerError)
		rt.logger.Error(msg, errors.Wrapf(err, "rendering %s", r.URL.Path))
		http.Error(w, msg, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

func (rt *Router) render(r *http.Request, route *Route) ([]byte, error) {
	tmpl, err := route.View.Template(rt.fsys, route.Layout)
	if err != nil {
		return nil, err
	}

	page := Page{
		AppName: rt.appName,
		Route:   route,
		Nav:     rt.nav(route.Layout),
		Query:   make(map[string]string),
	}
	for k := range r.URL.Query() {
		page.Query[k] = r.URL.Query().Get(k)
	}
	if load, ok := rt.loaders[route.Name]; ok {
		if page.Data, err = load(r.Context(), r); err != nil {
			return nil, errors.Wrapf(err, "loading %s data", route.Name)
		}
	}

	var buf bytes.Buffer
	if err = tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return nil, errors.Wrapf(err, "executing view %s", route.View.Name)
	}
	return buf.Bytes(), nil
}
