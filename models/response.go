package models

import "math"

// Column names a header in the survey CSV.
type Column string

const (
	ColTicket             Column = "Ticket"
	ColFrequency          Column = "Wine frequency consumption"
	ColPaymentMode        Column = "Payment mode"
	ColPlace              Column = "Place to drink"
	ColAdditionalProducts Column = "Additional products"
	ColGender             Column = "Gender"
	ColEducation          Column = "Education"
	ColAge                Column = "Age"
	ColFreqNum            Column = "Freq_num"
)

// CategoricalColumns are the free-text columns the cleaner trims.
var CategoricalColumns = []Column{
	ColFrequency, ColPaymentMode, ColPlace, ColAdditionalProducts,
	ColGender, ColEducation, ColAge,
}

// RequiredColumns must be present in the input header.
var RequiredColumns = append([]Column{ColTicket}, CategoricalColumns...)

// FrequencyScale maps consumption-frequency labels to an ordinal scale.
// There is no 6: the survey has no answer between "5 to 6 times per week"
// and "Once per day".
var FrequencyScale = map[string]int{
	"Once per month":           1,
	"More than once per month": 2,
	"1 to 2 times per week":    3,
	"3 to 4 times per week":    4,
	"5 to 6 times per week":    5,
	"Once per day":             7,
}

// Response is a single survey answer. Loaded as raw text, then cleaned in place.
type Response struct {
	RawTicket string
	Ticket    float64 // NaN when the source cell is empty

	Frequency          string
	PaymentMode        string
	Place              string
	AdditionalProducts string
	Gender             string
	Education          string
	Age                string

	FreqNum   int
	FreqKnown bool

	// Missing holds the categorical columns whose source cell was empty. A
	// cell that only held whitespace is not missing; it trims to "".
	Missing ColumnSet
}

// ColumnSet is a set of columns.
type ColumnSet map[Column]bool

// IsMissing reports whether col had no value in the source file.
func (r *Response) IsMissing(col Column) bool {
	return r.Missing[col]
}

// MarkMissing records that col had no value in the source file.
func (r *Response) MarkMissing(col Column) {
	if r.Missing == nil {
		r.Missing = make(ColumnSet)
	}
	r.Missing[col] = true
}

// HasTicket reports whether the ticket value is present.
func (r *Response) HasTicket() bool {
	return !math.IsNaN(r.Ticket)
}

// Value returns the categorical value stored under col.
func (r *Response) Value(col Column) string {
	switch col {
	case ColFrequency:
		return r.Frequency
	case ColPaymentMode:
		return r.PaymentMode
	case ColPlace:
		return r.Place
	case ColAdditionalProducts:
		return r.AdditionalProducts
	case ColGender:
		return r.Gender
	case ColEducation:
		return r.Education
	case ColAge:
		return r.Age
	case ColTicket:
		return r.RawTicket
	}
	return ""
}

// SetValue stores v under col. Unknown columns are ignored.
func (r *Response) SetValue(col Column, v string) {
	switch col {
	case ColFrequency:
		r.Frequency = v
	case ColPaymentMode:
		r.PaymentMode = v
	case ColPlace:
		r.Place = v
	case ColAdditionalProducts:
		r.AdditionalProducts = v
	case ColGender:
		r.Gender = v
	case ColEducation:
		r.Education = v
	case ColAge:
		r.Age = v
	case ColTicket:
		r.RawTicket = v
	}
}

// ResponseTable is the whole survey dataset. Its row count is fixed at load.
type ResponseTable struct {
	Source    string
	Responses []*Response
}

// Len returns the number of rows.
func (t *ResponseTable) Len() int {
	return len(t.Responses)
}
