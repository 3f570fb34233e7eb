package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lamms/lamms/core"
	"github.com/lamms/lamms/core/grade"
)

// addGrade validates and creates a grade.Grade
func (cli *commandLine) addGrade(name, code string, order int, isActive bool) error {
	ng := grade.NewGrade{
		Name:         name,
		Code:         code,
		IsActive:     core.BoolPtr(isActive),
		DisplayOrder: order,
	}
	if err := ng.Validate(cli.validate, cli.gradeSvc); err != nil {
		return err
	}
	grd, err := cli.gradeSvc.Create(context.Background(), ng)
	if err != nil {
		return err
	}
	fmt.Printf("grade %q created with id %d\n", grd.Name, grd.ID)
	return nil
}

func (cli *commandLine) listGrades(search string) error {
	filter := grade.QueryFilter{Search: search}
	filter.Clean()
	grades, err := cli.gradeSvc.Query(context.Background(), filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCODE\tACTIVE\tORDER")
	for _, g := range grades {
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%d\n", g.ID, g.Name, g.Code.String, g.IsActive, g.DisplayOrder)
	}
	return w.Flush()
}
