package fields

import (
	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/types"
)

// Name of the join key in the reduced referenced frame. It can not
// clash with a real column.
const lookup_key = "\x00lookup_key"

type referencer interface {
	types.Field
	ReferencedTable() types.TableId
}

// A LookupField pulls a column of the referenced table through a
// foreign key of its own table. The source column may itself be a
// derived column (including another lookup), so chains of lookups
// resolve transitively.
type LookupField struct {
	BaseField
	to           types.TableId
	source_field string
	via          string

	foreign_key referencer
}

func NewLookupField(to types.TableId, source_field string) *LookupField {
	return &LookupField{
		to:           to,
		source_field: source_field,
	}
}

// Via names the foreign key field to join on. Without it the table
// must have exactly one foreign key to the referenced table.
func (self *LookupField) Via(foreign_key string) *LookupField {
	self.via = foreign_key
	return self
}

func (self *LookupField) Kind() string {
	return "lookup"
}

func (self *LookupField) IsDerived() bool {
	return true
}

func (self *LookupField) IsEvaluated() bool {
	return self.hasColumn()
}

// Resolves the foreign key this lookup joins on.
func (self *LookupField) CheckReferences() error {
	_, err := self.getTable(self.to)
	if err != nil {
		return err
	}

	if self.via != "" {
		field, pres := self.table.GetField(self.via)
		if !pres {
			return errors.Wrapf(types.ForeignKeyNotFound,
				"Field %v joins via %v which does not exist",
				QualifiedName(self), self.via)
		}

		foreign_key, ok := field.(referencer)
		if !ok || foreign_key.ReferencedTable() != self.to {
			return errors.Wrapf(types.ForeignKeyNotFound,
				"Field %v joins via %v which is not a foreign key to %v",
				QualifiedName(self), self.via, self.to)
		}
		self.foreign_key = foreign_key
		return nil
	}

	var candidates []referencer
	for _, field := range self.table.Fields() {
		foreign_key, ok := field.(referencer)
		if ok && foreign_key.ReferencedTable() == self.to {
			candidates = append(candidates, foreign_key)
		}
	}

	switch len(candidates) {
	case 0:
		return errors.Wrapf(types.ForeignKeyNotFound,
			"Field %v needs a foreign key to %v", QualifiedName(self), self.to)
	case 1:
		self.foreign_key = candidates[0]
		return nil
	}

	names := []string{}
	for _, candidate := range candidates {
		names = append(names, candidate.Name())
	}
	return errors.Wrapf(types.AmbiguousForeignKey,
		"Field %v may join via any of %v; use Via() to pick one",
		QualifiedName(self), names)
}

func (self *LookupField) IsReadyToBeEvaluated() bool {
	if self.foreign_key == nil || !self.foreign_key.IsEvaluated() {
		return false
	}

	referenced, err := self.getTable(self.to)
	if err != nil {
		return false
	}

	return IsColumnEvaluated(referenced, self.source_field) &&
		IsColumnEvaluated(referenced, referenced.PrimaryKeyName())
}

func (self *LookupField) Evaluate() error {
	referenced, err := self.getTable(self.to)
	if err != nil {
		return err
	}

	referenced_frame := referenced.Frame()
	source_values, pres := referenced_frame.Column(self.source_field)
	if !pres {
		return errors.Wrapf(types.ColumnNotFound,
			"Field %v pulls %v.%v", QualifiedName(self),
			self.to, self.source_field)
	}

	// Reduce the referenced table to key -> value.
	reduced, err := referenced_frame.Select(referenced.PrimaryKeyName())
	if err != nil {
		return err
	}

	reduced, err = reduced.Rename(referenced.PrimaryKeyName(), lookup_key)
	if err != nil {
		return err
	}

	err = reduced.SetColumn(self.name, source_values)
	if err != nil {
		return err
	}

	merged, err := self.table.Frame().LeftMerge(
		reduced, self.foreign_key.Name(), lookup_key)
	if err != nil {
		return errors.Wrapf(err, "Field %v", QualifiedName(self))
	}

	self.table.SetFrame(merged)
	return nil
}
