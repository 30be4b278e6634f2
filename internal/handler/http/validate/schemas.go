package validate

import "article-inventory/internal/handler/http/pathutil"

// InvalidIDMessage is the violation message for a malformed {id}.
const InvalidIDMessage = "Article ID must be a valid number."

// IDSchema parses the {id} path parameter as a base-10 integer.
var IDSchema Schema[int64] = SchemaFunc[int64](func(in Fragment) Result[int64] {
	id, err := pathutil.ParseID(in.Lookup("id"))
	if err != nil {
		return Invalid[int64](Violation{
			Path:    []string{"id"},
			Message: InvalidIDMessage,
			Code:    CodeCustom,
		})
	}
	return Valid(id)
})

// ListQuery is the coerced query string of the article list route.
type ListQuery struct {
	// Name is nil when the parameter is absent or empty.
	Name       *string
	ExactMatch bool
}

// ListQuerySchema reads name and exactMatch. exactMatch is true only for the
// literal "true"; every other value means false.
var ListQuerySchema Schema[ListQuery] = SchemaFunc[ListQuery](func(in Fragment) Result[ListQuery] {
	var q ListQuery
	if name := in.Lookup("name"); name != "" {
		q.Name = &name
	}
	q.ExactMatch = in.Lookup("exactMatch") == "true"
	return Valid(q)
})
