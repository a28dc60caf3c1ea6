// Package fields extracts the fixed guide fields from acquired text by
// trying ordered regular-expression rules per field, most specific first,
// and accepting the first match that passes the field's validation.
package fields

// GuideFields is the fixed output record for one document. Every field is
// always present; an unmatched field is the empty string, never absent.
type GuideFields struct {
	RegistroANS     string
	NumeroGuia      string
	DataAutorizacao string
	Nome            string
	ValorConsulta   string
}

// Values returns the field values in reporting order, matching
// constants.FieldLabels.
func (f GuideFields) Values() []string {
	return []string{f.RegistroANS, f.NumeroGuia, f.DataAutorizacao, f.Nome, f.ValorConsulta}
}

// IsEmpty reports whether no field matched.
func (f GuideFields) IsEmpty() bool {
	for _, v := range f.Values() {
		if v != "" {
			return false
		}
	}
	return true
}
