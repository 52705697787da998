package table

type Editable string

const (
	Always Editable = "always"
	Never  Editable = "never"
)

type Column struct {
	Title    string   `json:"title"`
	Field    string   `json:"field"`
	Type     string   `json:"type"`
	Editable Editable `json:"editable,omitempty"`
}

// Result is the shape the table widget expects back from its data callback.
// Paging is disabled, so Page is always zero and TotalCount is len(Data).
type Result struct {
	Columns    []Column    `json:"columns,omitempty"`
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	TotalCount int         `json:"totalCount"`
}

func NewResult(columns []Column, data interface{}, count int) Result {
	return Result{
		Columns:    columns,
		Data:       data,
		Page:       0,
		TotalCount: count,
	}
}

// EditableFields returns the fields a row editor may change.
func EditableFields(columns []Column) map[string]bool {
	fields := make(map[string]bool, len(columns))
	for _, c := range columns {
		if c.Editable != Never {
			fields[c.Field] = true
		}
	}
	return fields
}
