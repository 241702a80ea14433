package api_errors

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

const (
	CodeValidation      = "BAD_USER_INPUT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeUpstreamAuth    = "UPSTREAM_AUTH_ERROR"
	CodeIntegrity       = "INTEGRITY_ERROR"
	CodeSchema          = "GRAPHQL_VALIDATION_FAILED"
	CodeInternal        = "INTERNAL_ERROR"
)

// NewError creates a standardized GraphQL error
func NewError(message string, code string, extensions map[string]interface{}) *gqlerror.Error {
	if extensions == nil {
		extensions = make(map[string]interface{})
	}
	extensions["code"] = code

	return &gqlerror.Error{
		Message:    message,
		Extensions: extensions,
	}
}

// NewFieldError attaches the failed field's path so partial responses stay addressable.
func NewFieldError(message string, code string, path []interface{}) *gqlerror.Error {
	err := NewError(message, code, nil)
	err.Path = toAstPath(path)
	return err
}

func toAstPath(path []interface{}) ast.Path {
	out := make(ast.Path, 0, len(path))
	for _, element := range path {
		switch v := element.(type) {
		case string:
			out = append(out, ast.PathName(v))
		case int:
			out = append(out, ast.PathIndex(v))
		}
	}
	return out
}
