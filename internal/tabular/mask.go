package tabular

// MaskToken is the fixed replacement written over every masked value. It is
// not configurable per field: masking is one-way and lossy by design.
const MaskToken = "****"

// Mask replaces the value of every named field with MaskToken in every
// record of the table. Names absent from a record or from the schema are
// silently ignored, so one field list can be applied to heterogeneously
// shaped inputs. Masking never adds or removes fields and is idempotent.
//
// When the table carries a schema, each masked column's declared type is
// coerced to TypeString: the token is textual and may be incompatible with
// the column's original type. Unmasked columns keep their types.
func Mask(t *Table, fields []string) {
	if t == nil || len(fields) == 0 {
		return
	}
	for _, name := range fields {
		if i := t.Schema.Index(name); i >= 0 {
			t.Schema[i].Type = TypeString
		}
	}
	for _, rec := range t.Records {
		for _, name := range fields {
			rec.Set(name, MaskToken)
		}
	}
}
