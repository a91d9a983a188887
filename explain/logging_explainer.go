package explain

import (
	"fmt"
	"log"
	"strings"

	"www.velocidex.com/golang/vtable/types"
)

type descriptor struct {
	Table string
	Field string
	Kind  string
}

func (self descriptor) String() string {
	if self.Table == "" {
		return fmt.Sprintf("%v (%v)", self.Field, self.Kind)
	}
	return fmt.Sprintf("%v.%v (%v)", self.Table, self.Field, self.Kind)
}

func describe(field types.Field) descriptor {
	result := descriptor{
		Field: field.Name(),
		Kind:  field.Kind(),
	}
	if field.Table() != nil {
		result.Table = field.Table().Id().String()
	}
	return result
}

func describeAll(fields []types.Field) string {
	result := make([]string, 0, len(fields))
	for _, field := range fields {
		result = append(result, describe(field).String())
	}
	return strings.Join(result, ", ")
}

// Logs every evaluation event to the logger.
type LoggingExplainer struct {
	logger *log.Logger
}

func NewLoggingExplainer(logger *log.Logger) *LoggingExplainer {
	return &LoggingExplainer{logger: logger}
}

func (self *LoggingExplainer) StartEvaluation(fields []types.Field) {
	self.log("DEBUG:Explain start evaluation of %v fields: %v",
		len(fields), describeAll(fields))
}

func (self *LoggingExplainer) ReferencesChecked(field types.Field, replaced int) {
	self.log("DEBUG:  references of %v checked: %v replaced with default",
		describe(field), replaced)
}

func (self *LoggingExplainer) FieldEvaluated(field types.Field, pass int) {
	self.log("DEBUG:  pass %v: evaluated %v", pass, describe(field))
}

func (self *LoggingExplainer) Produced(table types.Table, groups int) {
	self.log("DEBUG:  table %v produced %v groups", table.Id(), groups)
}

func (self *LoggingExplainer) Deadlock(fields []types.Field) {
	self.log("ERROR:Unable to make progress, stuck fields: %v",
		describeAll(fields))
}

func (self *LoggingExplainer) log(format string, a ...interface{}) {
	if self.logger != nil {
		self.logger.Print(fmt.Sprintf(format, a...))
	}
}

var _ types.Explainer = (*LoggingExplainer)(nil)
