package benchmarks

import (
	"fmt"
	"testing"

	"github.com/Velocidex/ordereddict"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/vtable"
	"www.velocidex.com/golang/vtable/fields"
	"www.velocidex.com/golang/vtable/frame"
	"www.velocidex.com/golang/vtable/functions"
	"www.velocidex.com/golang/vtable/types"
)

var pk = fields.Constraints{PrimaryKey: true, Unique: true}

func makeFrame(b *testing.B, columns *ordereddict.Dict) types.Frame {
	result, err := frame.FromColumns(columns)
	require.NoError(b, err)
	return result
}

// Builds a customers table with `count` rows and an orders table
// with `count` * 10 rows referencing it.
func makeTables(b *testing.B, count int) []types.Table {
	ids := make([]int64, 0, count)
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		ids = append(ids, int64(i))
		names = append(names, fmt.Sprintf("customer %v", i%100))
	}

	customers, err := vtable.NewTable("customers", makeFrame(b,
		ordereddict.NewDict().
			Set("id", ids).
			Set("name", names)),
		vtable.NewFields().
			Add("id", fields.Must(fields.NewIntField(pk))).
			Add("name", fields.Must(fields.NewStringField(fields.Constraints{}))))
	require.NoError(b, err)

	order_ids := make([]int64, 0, count*10)
	customer_ids := make([]int64, 0, count*10)
	amounts := make([]float64, 0, count*10)
	for i := 0; i < count*10; i++ {
		order_ids = append(order_ids, int64(i))
		customer_ids = append(customer_ids, int64(i%(count+1)))
		amounts = append(amounts, float64(i%7)+0.5)
	}

	double, err := functions.GetFunction("add", nil)
	require.NoError(b, err)

	orders, err := vtable.NewTable("orders", makeFrame(b,
		ordereddict.NewDict().
			Set("id", order_ids).
			Set("customer_id", customer_ids).
			Set("amount", amounts)),
		vtable.NewFields().
			Add("id", fields.Must(fields.NewIntField(pk))).
			Add("customer_id", fields.NewForeignKey("customers", int64(-1))).
			Add("amount", fields.Must(fields.NewFloatField(fields.Constraints{}))).
			Add("customer", fields.NewLookupField("customers", "name")).
			Add("double", fields.NewComputedField(double, "amount", "amount")))
	require.NoError(b, err)

	sales, err := vtable.NewAggregationTable("sales", vtable.Aggregation{
		Source:  "orders",
		SortBy:  []string{"id"},
		GroupBy: []string{"customer"},
	}, vtable.NewFields().
		Add("id", fields.NewAutoIncrementKeyField()).
		Add("customer", fields.NewGroupKeyField("customer")).
		Add("total", fields.Must(fields.NewAggregatedField("double", "sum"))))
	require.NoError(b, err)

	return []types.Table{sales, orders, customers}
}

func runBenchmark(b *testing.B, count int) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		tables := makeTables(b, count)
		b.StartTimer()

		data_source, err := vtable.NewDataSource(tables)
		require.NoError(b, err)

		sales, _ := data_source.GetTable("sales")
		require.Equal(b, 100, sales.Frame().Len())
	}
}

func BenchmarkDataSource1k(b *testing.B) {
	runBenchmark(b, 1000)
}

func BenchmarkDataSource10k(b *testing.B) {
	runBenchmark(b, 10000)
}
