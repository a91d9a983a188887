package vtable

import (
	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/types"
)

// Fields is an ordered declaration of the fields of a table. The
// order of declaration is the column order of derived fields and the
// order in which fields are considered during evaluation.
//
//	fields := vtable.NewFields().
//	    Add("id", fields.Must(fields.NewIntField(
//	        fields.Constraints{PrimaryKey: true, Unique: true}))).
//	    Add("name", fields.Must(fields.NewStringField(fields.Constraints{})))
type Fields struct {
	fields *ordereddict.Dict
	err    error
}

func NewFields() *Fields {
	return &Fields{
		fields: ordereddict.NewDict(),
	}
}

func (self *Fields) Add(name string, field types.Field) *Fields {
	if self.err != nil {
		return self
	}

	_, pres := self.fields.Get(name)
	if pres {
		self.err = errors.Errorf("Field %v is declared twice", name)
		return self
	}

	if field == nil {
		self.err = errors.Errorf("Field %v is nil", name)
		return self
	}

	self.fields.Set(name, field)
	return self
}

func (self *Fields) Len() int {
	return self.fields.Len()
}
