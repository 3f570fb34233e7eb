package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/lamms/lamms/core/grade"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db       *sql.DB
	gradeSvc *grade.Service
	photos   photoStore
	validate *validator.Validate
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (up, up-by-one, up-to VERSION, down, down-to VERSION, redo, reset, status, version, create NAME [sql|go], fix)")
	fmt.Println("  addgrade -name NAME [-code CODE] [-order N] [-inactive] - add a grade")
	fmt.Println("  listgrades [-search TEXT] - list grades in display order")
	fmt.Println("  seedphotos - store the built-in gallery pictures in Redis")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addGradeCmd := flag.NewFlagSet("addgrade", flag.ExitOnError)
	addGradeName := addGradeCmd.String("name", "", "The grade name, e.g. \"Grade 3\". Must be unique.")
	addGradeCode := addGradeCmd.String("code", "", "An optional short code, e.g. \"G3\".")
	addGradeOrder := addGradeCmd.Int("order", 0, "The display order.")
	addGradeInactive := addGradeCmd.Bool("inactive", false, "Create the grade deactivated.")

	listGradesCmd := flag.NewFlagSet("listgrades", flag.ExitOnError)
	listGradesSearch := listGradesCmd.String("search", "", "Only grades whose name or code contains TEXT.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addgrade":
		if err := addGradeCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addGradeName == "" {
			addGradeCmd.Usage()
			return errHelp
		}
		return cli.addGrade(*addGradeName, *addGradeCode, *addGradeOrder, !*addGradeInactive)
	case "listgrades":
		if err := listGradesCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listGrades(*listGradesSearch)
	case "seedphotos":
		return cli.seedPhotos()
	default:
		cli.printUsage()
		return errHelp
	}
}
