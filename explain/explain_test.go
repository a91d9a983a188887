package explain

import (
	"log"
	"testing"

	"github.com/Velocidex/ordereddict"
	"github.com/sebdah/goldie/v2"
	"www.velocidex.com/golang/vtable/types"
)

type CapturingLogger struct {
	rows []string
}

func (self *CapturingLogger) Write(b []byte) (int, error) {
	self.rows = append(self.rows, string(b))
	return len(b), nil
}

type testTable struct {
	types.Table
	id types.TableId
}

func (self testTable) Id() types.TableId {
	return self.id
}

type testField struct {
	types.Field
	name  string
	kind  string
	table types.Table
}

func (self testField) Name() string        { return self.name }
func (self testField) Kind() string        { return self.kind }
func (self testField) Table() types.Table { return self.table }

func TestLoggingExplainer(t *testing.T) {
	orders := testTable{id: "orders"}
	sales := testTable{id: "sales"}

	customer_id := testField{name: "customer_id", kind: "foreign_key", table: orders}
	customer := testField{name: "customer", kind: "lookup", table: orders}
	total := testField{name: "total", kind: "aggregated", table: sales}

	result := ordereddict.NewDict()
	for _, test_case := range []struct {
		name string
		run  func(explainer types.Explainer)
	}{
		{"Start", func(explainer types.Explainer) {
			explainer.StartEvaluation([]types.Field{customer, total})
		}},
		{"References", func(explainer types.Explainer) {
			explainer.ReferencesChecked(customer_id, 2)
		}},
		{"Evaluated", func(explainer types.Explainer) {
			explainer.FieldEvaluated(customer, 1)
			explainer.Produced(sales, 3)
		}},
		{"Deadlock", func(explainer types.Explainer) {
			explainer.Deadlock([]types.Field{total})
		}},
	} {
		logger := &CapturingLogger{}
		test_case.run(NewLoggingExplainer(log.New(logger, "", 0)))

		// The null explainer must accept the same calls.
		test_case.run(NULL_EXPLAINER)

		result.Set(test_case.name, logger.rows)
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("fixtures"),
		goldie.WithNameSuffix(".golden"),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)
	g.AssertJson(t, "TestLoggingExplainer", result)
}
