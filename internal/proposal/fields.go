// Package proposal turns a submitted proposal form into a stamped PDF.
//
// Fields is the single declaration of every value the service understands:
// its canonical key, the form names it may arrive under, its kind and the
// value used when it is absent. Nothing else in the service reads form keys
// directly.
package proposal

import (
	"net/url"
	"strings"
)

// Kind is the shape of a proposal field.
type Kind int

const (
	// KindText is a single line of text.
	KindText Kind = iota
	// KindList is a comma-separated list.
	KindList
	// KindImage is an uploaded PNG or JPEG file.
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Canonical field keys.
const (
	KeyClient      = "client"
	KeyResponsible = "responsible"
	KeyPayment     = "payment"
	KeyLeadTime    = "leadTime"
	KeyShipping    = "shipping"
	KeyItems       = "items"
	KeyValues      = "values"
	KeyTotal       = "total"
	KeyImage       = "image"
)

// Field declares one expected form value.
type Field struct {
	Key string
	// Title is the human label used by the demo form.
	Title string
	// FormNames are accepted in order; the first non-empty one wins.
	FormNames []string
	Kind      Kind
	Default   string
}

// Fields lists every proposal field. The Portuguese form names are the ones
// used by existing front ends.
var Fields = []Field{
	{Key: KeyClient, Title: "Cliente", FormNames: []string{"client", "cliente"}, Kind: KindText},
	{Key: KeyResponsible, Title: "Responsável", FormNames: []string{"responsible", "responsavel"}, Kind: KindText},
	{Key: KeyPayment, Title: "Condições de pagamento", FormNames: []string{"payment", "pagamento"}, Kind: KindText},
	{Key: KeyLeadTime, Title: "Prazo de produção", FormNames: []string{"leadTime", "prazo"}, Kind: KindText},
	{Key: KeyShipping, Title: "Frete", FormNames: []string{"shipping", "frete"}, Kind: KindText},
	{Key: KeyItems, Title: "Itens (separados por vírgula)", FormNames: []string{"items", "itens"}, Kind: KindList},
	{Key: KeyValues, Title: "Valores (separados por vírgula, ou ponto e vírgula)", FormNames: []string{"values", "valores"}, Kind: KindList},
	{Key: KeyTotal, Title: "Total", FormNames: []string{"total"}, Kind: KindText},
	{Key: KeyImage, Title: "Imagem do produto", FormNames: []string{"image", "imagem"}, Kind: KindImage},
}

// Lookup returns the field declared under key.
func Lookup(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// IsTextField reports whether key names a single-line text field, the only
// kind a layout can anchor directly.
func IsTextField(key string) bool {
	f, ok := Lookup(key)
	return ok && f.Kind == KindText
}

// value returns the trimmed form value for f, or its default.
func (f Field) value(form url.Values) string {
	for _, name := range f.FormNames {
		if v := strings.TrimSpace(form.Get(name)); v != "" {
			return v
		}
	}
	return f.Default
}

func mustLookup(key string) Field {
	f, ok := Lookup(key)
	if !ok {
		panic("proposal: undeclared field " + key)
	}
	return f
}
