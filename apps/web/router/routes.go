// Package router maps frontend paths to a layout and a lazily loaded view.
package router

import (
	"html/template"
	"io/fs"
	"sync"

	"github.com/pkg/errors"
)

const (
	layoutsDir = "templates/layouts"
	viewsDir   = "templates/views"
)

type (
	// Layout is a root page shell. Its template defines "layout" and renders the "content" of the active view.
	Layout struct {
		Name string
		Path string
	}

	// View is a page body. Its template is parsed on first use and kept afterwards.
	View struct {
		Name string // e.g. "pages/Section"

		once sync.Once
		tmpl *template.Template
		err  error
	}

	Route struct {
		Path   string
		Name   string
		Layout *Layout
		View   *View
	}

	// Match is the outcome of resolving a path.
	Match struct {
		Route *Route
	}
)

var (
	AppLayout   = &Layout{Name: "app", Path: "/"}
	AdminLayout = &Layout{Name: "admin", Path: "/admin"}
)

// Routes returns a fresh route table, in resolution order.
func Routes() []*Route {
	route := func(layout *Layout, path, name, view string) *Route {
		return &Route{Path: path, Name: name, Layout: layout, View: &View{Name: view}}
	}
	return []*Route{
		route(AppLayout, "/", "dashboard", "Dashboard"),
		route(AppLayout, "/pages/attendance", "attendance", "pages/Attendance"),
		route(AppLayout, "/pages/report", "report", "pages/Report"),
		route(AppLayout, "/pages/section", "section", "pages/Section"),
		route(AppLayout, "/pages/settings", "settings", "pages/Settings"),

		route(AdminLayout, "/admin", "admin-dashboard", "admin/AdminDashboard"),
		route(AdminLayout, "/admin-graph", "admin-graph", "pages/Admin/Admin-Graph"),
		route(AdminLayout, "/admin-teacher", "admin-teacher", "pages/Admin/Admin-Teacher"),
		route(AdminLayout, "/admin-student", "admin-student", "pages/Admin/Admin-Student"),
		route(AdminLayout, "/admin-section", "admin-section", "pages/Admin/Admin-Section"),
		route(AdminLayout, "/admin-settings", "admin-settings", "pages/Admin/Admin-Settings"),
	}
}

// Resolve returns the first route whose path is exactly `path`.
func Resolve(routes []*Route, path string) (Match, bool) {
	for _, r := range routes {
		if r.Path == path {
			return Match{Route: r}, true
		}
	}
	return Match{}, false
}

// Template parses the view together with `layout` the first time it is called.
func (v *View) Template(fsys fs.FS, layout *Layout) (*template.Template, error) {
	v.once.Do(func() {
		v.tmpl, v.err = template.New(v.Name).Funcs(funcs).ParseFS(fsys,
			layoutsDir+"/"+layout.Name+".gohtml",
			viewsDir+"/"+v.Name+".gohtml",
		)
		if v.err != nil {
			v.err = errors.Wrapf(v.err, "parsing view %s", v.Name)
		}
	})
	return v.tmpl, v.err
}

func (v *View) loaded() bool {
	return v.tmpl != nil || v.err != nil
}
