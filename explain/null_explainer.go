package explain

import (
	"www.velocidex.com/golang/vtable/types"
)

var (
	NULL_EXPLAINER = &NullExplainer{}
)

type NullExplainer struct{}

func (self *NullExplainer) StartEvaluation(fields []types.Field) {}

func (self *NullExplainer) ReferencesChecked(field types.Field, replaced int) {}

func (self *NullExplainer) FieldEvaluated(field types.Field, pass int) {}

func (self *NullExplainer) Produced(table types.Table, groups int) {}

func (self *NullExplainer) Deadlock(fields []types.Field) {}
