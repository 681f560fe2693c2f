package lead

// Field names match the worksheet header row exactly. The order here IS
// the wire contract: field N lives in column N+1 of the sheet.
const (
	FieldPriority    = "Priority"
	FieldCompanyName = "Company Name"
	FieldIndustry    = "Industry"
	FieldType        = "Type"
	FieldLocation    = "Location"
	FieldJobLink     = "Job Link"
	FieldWebsite     = "Website"
	FieldContactRole = "Contact Person/Role"
	FieldStatus      = "Status"
	FieldDateAdded   = "Date Added"
	FieldLastAction  = "Last Action"
	FieldNotes       = "Notes"
)

// Fields is the fixed 12-column layout, in storage order.
var Fields = []string{
	FieldPriority,
	FieldCompanyName,
	FieldIndustry,
	FieldType,
	FieldLocation,
	FieldJobLink,
	FieldWebsite,
	FieldContactRole,
	FieldStatus,
	FieldDateAdded,
	FieldLastAction,
	FieldNotes,
}

var columnIndex = func() map[string]int {
	m := make(map[string]int, len(Fields))
	for i, f := range Fields {
		m[f] = i + 1
	}
	return m
}()

// ColumnOf maps a field name to its 1-based column index.
func ColumnOf(field string) (int, bool) {
	col, ok := columnIndex[field]
	return col, ok
}

// A1Column converts a 1-based column index to its A1 letter. The layout
// never exceeds 12 columns, so a single letter is enough.
func A1Column(col int) string {
	return string(rune('A' + col - 1))
}

// LastColumn is the A1 letter of the final column in the layout.
var LastColumn = A1Column(len(Fields))
