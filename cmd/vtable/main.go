// A command line tool for evaluating declarative table models.
//
// Evaluate a model and print all tables as JSON:
//
//	vtable eval model.yaml
//
// Only print some tables:
//
//	vtable eval model.yaml --table orders --table sales
//
// Check that a model evaluates cleanly:
//
//	vtable check model.yaml
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/vtable"
	"www.velocidex.com/golang/vtable/explain"
	"www.velocidex.com/golang/vtable/functions"
	"www.velocidex.com/golang/vtable/model"
	"www.velocidex.com/golang/vtable/types"
)

var (
	app     = kingpin.New("vtable", "Evaluate declarative table models.")
	verbose = app.Flag("verbose", "Explain the evaluation on stderr.").Short('v').Bool()

	eval_command = app.Command("eval", "Evaluate a model and print its tables.")
	eval_model   = eval_command.Arg("model", "The model file.").Required().ExistingFile()
	eval_tables  = eval_command.Flag("table", "Only print these tables.").Strings()
	eval_indent  = eval_command.Flag("indent", "Indent the JSON output.").Bool()

	check_command = app.Command("check", "Check that a model evaluates.")
	check_model   = check_command.Arg("model", "The model file.").Required().ExistingFile()

	describe_command = app.Command("describe", "Describe a model's tables and fields.")
	describe_model   = describe_command.Arg("model", "The model file.").ExistingFile()
)

func makeLogger() *log.Logger {
	return log.New(os.Stderr, "vtable: ", 0)
}

func loadDataSource(path string) (*vtable.DataSource, error) {
	m, err := model.LoadFile(path)
	if err != nil {
		return nil, err
	}

	logger := makeLogger()
	options := []vtable.Option{vtable.WithLogger(logger)}
	if *verbose {
		options = append(options,
			vtable.WithExplainer(explain.NewLoggingExplainer(logger)))
	}

	return m.DataSource(options...)
}

func writeJson(out io.Writer, value interface{}, indent bool) error {
	var serialized []byte
	var err error
	if indent {
		serialized, err = json.MarshalIndent(value, "", "  ")
	} else {
		serialized, err = json.Marshal(value)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = fmt.Fprintln(out, string(serialized))
	return err
}

func doEval(out io.Writer) error {
	data_source, err := loadDataSource(*eval_model)
	if err != nil {
		return err
	}

	result := ordereddict.NewDict()
	if len(*eval_tables) == 0 {
		for _, table := range data_source.Tables() {
			result.Set(string(table.Id()), table.Frame())
		}
	} else {
		for _, name := range *eval_tables {
			table, pres := data_source.GetTable(types.TableId(name))
			if !pres {
				return errors.Wrap(types.TableNotFound, name)
			}
			result.Set(name, table.Frame())
		}
	}

	return writeJson(out, result, *eval_indent)
}

func doCheck(out io.Writer) error {
	data_source, err := loadDataSource(*check_model)
	if err != nil {
		return err
	}

	for _, table := range data_source.Tables() {
		fmt.Fprintf(out, "%v: %v rows\n", table.Id(), table.Frame().Len())
	}
	return writeJson(out, data_source.GetStats().Snapshot(), false)
}

func describeTable(table types.Table) *ordereddict.Dict {
	fields := []*ordereddict.Dict{}
	for _, field := range table.Fields() {
		fields = append(fields, ordereddict.NewDict().
			Set("Name", field.Name()).
			Set("Kind", field.Kind()).
			Set("PrimaryKey", field.IsPrimaryKey()).
			Set("Derived", field.IsDerived()))
	}

	return ordereddict.NewDict().
		Set("Table", string(table.Id())).
		Set("PrimaryKey", table.PrimaryKeyName()).
		Set("Fields", fields)
}

func doDescribe(out io.Writer) error {
	// Without a model just list the available functions.
	if *describe_model == "" {
		for _, info := range functions.Describe() {
			fmt.Fprintf(out, "%-10v %v\n", info.Name, info.Doc)
		}
		return nil
	}

	m, err := model.LoadFile(*describe_model)
	if err != nil {
		return err
	}

	tables, err := m.BuildTables()
	if err != nil {
		return err
	}

	result := []*ordereddict.Dict{}
	for _, table := range tables {
		result = append(result, describeTable(table))
	}
	return writeJson(out, result, true)
}

func main() {
	app.HelpFlag.Short('h')

	var err error
	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case eval_command.FullCommand():
		err = doEval(os.Stdout)
	case check_command.FullCommand():
		err = doCheck(os.Stdout)
	case describe_command.FullCommand():
		err = doDescribe(os.Stdout)
	}

	kingpin.FatalIfError(err, "")
}
