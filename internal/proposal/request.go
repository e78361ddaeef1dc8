package proposal

import (
	"net/url"
	"strings"
)

// Request is one submitted proposal. It is built once at the request boundary
// by FromForm and never modified afterwards; methods use value receivers and
// return copies.
type Request struct {
	Client       string
	Responsible  string
	PaymentTerms string
	LeadTime     string
	Shipping     string
	Items        []string
	Values       []string
	Total        string
	Image        []byte
}

// FromForm reads every declared field from form. image is the raw uploaded
// file, or nil when none was sent.
func FromForm(form url.Values, image []byte) Request {
	text := func(key string) string { return mustLookup(key).value(form) }

	return Request{
		Client:       text(KeyClient),
		Responsible:  text(KeyResponsible),
		PaymentTerms: text(KeyPayment),
		LeadTime:     text(KeyLeadTime),
		Shipping:     text(KeyShipping),
		Items:        SplitList(text(KeyItems)),
		Values:       SplitValues(text(KeyValues)),
		Total:        text(KeyTotal),
		Image:        append([]byte(nil), image...),
	}
}

// FromValues builds a Request from canonical keys, as used by the CLI.
func FromValues(values map[string]string, image []byte) Request {
	form := url.Values{}
	for k, v := range values {
		form.Set(k, v)
	}
	return FromForm(form, image)
}

// TextValues returns the text fields keyed by their canonical key.
func (r Request) TextValues() map[string]string {
	return map[string]string{
		KeyClient:      r.Client,
		KeyResponsible: r.Responsible,
		KeyPayment:     r.PaymentTerms,
		KeyLeadTime:    r.LeadTime,
		KeyShipping:    r.Shipping,
		KeyTotal:       r.Total,
	}
}

// HasImage reports whether an image was uploaded.
func (r Request) HasImage() bool {
	return len(r.Image) > 0
}

// Mismatched reports whether the item and value lists differ in length.
func (r Request) Mismatched() bool {
	return len(r.Items) != len(r.Values)
}

// SplitList splits a comma-separated list and trims each entry. Empty input
// yields no entries; empty entries between separators are kept so items and
// values stay aligned by position.
func SplitList(s string) []string {
	return split(s, ",")
}

// SplitValues splits the value list. Values are amounts, and amounts written
// with decimal commas ("1.250,00") cannot be comma-separated, so a value list
// containing a semicolon is split on semicolons instead. Items never switch.
func SplitValues(s string) []string {
	if strings.Contains(s, ";") {
		return split(s, ";")
	}
	return split(s, ",")
}

func split(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
