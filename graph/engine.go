package graph

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"
	"gorm.io/gorm"

	api_errors "github.com/photostack/photostack/api/errors"
	er "github.com/photostack/photostack/internal/errors"
	"github.com/photostack/photostack/internal/logger"
	"github.com/photostack/photostack/internal/models"
	"github.com/photostack/photostack/internal/repository"
	"github.com/photostack/photostack/internal/tracing"
	"github.com/photostack/photostack/services"
)

// Request is one inbound GraphQL call.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Response mirrors the requested field tree. A failed field contributes an
// entry to Errors and a null value; resolved siblings are kept.
type Response struct {
	Data   map[string]interface{} `json:"data"`
	Errors gqlerror.List          `json:"errors,omitempty"`
}

// fieldFunc computes one field's value from its parent record and coerced
// arguments. Scalar fields never touch the store; relational fields join
// through the repositories.
type fieldFunc func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error)

// Engine resolves requested field trees against the schema using a dispatch
// table keyed by (type name, field name), built once at construction.
type Engine struct {
	schema       *ast.Schema
	fields       map[string]map[string]fieldFunc
	repositories *repository.Repositories
	services     *services.Services
	log          logger.Logger
}

func NewEngine(repos *repository.Repositories, svcs *services.Services, log logger.Logger) (*Engine, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{
		Name:  "photostack.graphql",
		Input: SchemaDocument,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load schema")
	}

	engine := &Engine{
		schema:       schema,
		repositories: repos,
		services:     svcs,
		log:          log,
	}
	engine.registerFields()
	return engine, nil
}

// Execute parses, validates and resolves one request. Validation failures
// (unknown fields, out-of-range enum values) are rejected before any store
// access.
func (e *Engine) Execute(ctx context.Context, req Request) *Response {
	span, ctx := opentracing.StartSpanFromContext(ctx, "Engine.Execute")
	defer span.Finish()
	tracing.TagComponentGraphql(span)

	doc, listErr := gqlparser.LoadQuery(e.schema, req.Query)
	if len(listErr) > 0 {
		return &Response{Errors: tagErrors(listErr, api_errors.CodeSchema)}
	}

	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		return &Response{Errors: gqlerror.List{
			api_errors.NewError("operation not found", api_errors.CodeSchema, nil),
		}}
	}

	vars, varErr := validator.VariableValues(e.schema, op, req.Variables)
	if varErr != nil {
		return &Response{Errors: gqlerror.List{
			api_errors.NewError(varErr.Error(), api_errors.CodeValidation, nil),
		}}
	}

	rootType := "Query"
	if op.Operation == ast.Mutation {
		rootType = "Mutation"
	}
	span.SetTag("graphql.operation", string(op.Operation))

	data, errs := e.resolveSelectionSet(ctx, rootType, nil, op.SelectionSet, vars, nil)
	if len(errs) > 0 {
		tracing.TraceErr(span, errs)
	}
	return &Response{Data: data, Errors: errs}
}

// resolveSelectionSet walks the requested fields of one object. Only fields
// present in the tree execute, so unrequested relational fields never touch
// the store.
func (e *Engine) resolveSelectionSet(ctx context.Context, typeName string, parent interface{}, sel ast.SelectionSet, vars map[string]interface{}, path []interface{}) (map[string]interface{}, gqlerror.List) {
	data := make(map[string]interface{})
	var errs gqlerror.List

	for _, field := range collectFields(typeName, sel) {
		alias := field.Alias
		if alias == "" {
			alias = field.Name
		}
		fieldPath := append(append([]interface{}{}, path...), alias)

		if field.Name == "__typename" {
			data[alias] = typeName
			continue
		}

		resolve, ok := e.fields[typeName][field.Name]
		if !ok {
			// validation guarantees the field exists; reaching here means the
			// dispatch table is out of sync with the schema
			errs = append(errs, api_errors.NewFieldError("no resolver registered for "+typeName+"."+field.Name, api_errors.CodeInternal, fieldPath))
			data[alias] = nil
			continue
		}

		value, err := resolve(ctx, parent, field.ArgumentMap(vars))
		if err != nil {
			errs = append(errs, e.fieldError(err, fieldPath))
			data[alias] = nil
			continue
		}

		if len(field.SelectionSet) == 0 {
			data[alias] = value
			continue
		}

		childType := field.Definition.Type.Name()
		completed, childErrs := e.completeValue(ctx, childType, value, field.SelectionSet, vars, fieldPath)
		errs = append(errs, childErrs...)
		data[alias] = completed
	}

	return data, errs
}

// completeValue recursively applies the nested selection set to object and
// list results.
func (e *Engine) completeValue(ctx context.Context, typeName string, value interface{}, sel ast.SelectionSet, vars map[string]interface{}, path []interface{}) (interface{}, gqlerror.List) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *models.Photo:
		return e.resolveObject(ctx, typeName, v, sel, vars, path)
	case *models.User:
		return e.resolveObject(ctx, typeName, v, sel, vars, path)
	case *AuthPayload:
		return e.resolveObject(ctx, typeName, v, sel, vars, path)
	case []*models.Photo:
		return e.completeList(ctx, typeName, toInterfaces(v), sel, vars, path)
	case []*models.User:
		return e.completeList(ctx, typeName, toInterfaces(v), sel, vars, path)
	default:
		return nil, gqlerror.List{
			api_errors.NewFieldError("unexpected resolver result for "+typeName, api_errors.CodeInternal, path),
		}
	}
}

func (e *Engine) resolveObject(ctx context.Context, typeName string, parent interface{}, sel ast.SelectionSet, vars map[string]interface{}, path []interface{}) (interface{}, gqlerror.List) {
	if isNil(parent) {
		return nil, nil
	}
	return e.resolveSelectionSet(ctx, typeName, parent, sel, vars, path)
}

func (e *Engine) completeList(ctx context.Context, typeName string, items []interface{}, sel ast.SelectionSet, vars map[string]interface{}, path []interface{}) (interface{}, gqlerror.List) {
	result := make([]interface{}, 0, len(items))
	var errs gqlerror.List
	for i, item := range items {
		itemPath := append(append([]interface{}{}, path...), i)
		completed, itemErrs := e.completeValue(ctx, typeName, item, sel, vars, itemPath)
		errs = append(errs, itemErrs...)
		result = append(result, completed)
	}
	return result, errs
}

// fieldError maps resolver failures onto the wire error taxonomy.
func (e *Engine) fieldError(err error, path []interface{}) *gqlerror.Error {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		return gqlErr
	}

	code := api_errors.CodeInternal
	switch {
	case errors.Is(err, er.ErrUnauthenticated):
		code = api_errors.CodeUnauthenticated
	case errors.Is(err, er.ErrUpstreamAuth), errors.Is(err, er.ErrConnectionTimeout):
		code = api_errors.CodeUpstreamAuth
	case errors.Is(err, er.ErrPhotoOwnerMissing):
		code = api_errors.CodeIntegrity
	case errors.Is(err, er.ErrInvalidInput):
		code = api_errors.CodeValidation
	case errors.Is(err, gorm.ErrRecordNotFound):
		code = api_errors.CodeIntegrity
	}
	if e.log != nil && code == api_errors.CodeInternal {
		e.log.Errorf("field resolution failed at %v: %v", path, err)
	}
	return api_errors.NewFieldError(err.Error(), code, path)
}

// collectFields flattens the selection set, expanding fragments in place.
func collectFields(typeName string, sel ast.SelectionSet) []*ast.Field {
	var fields []*ast.Field
	for _, selection := range sel {
		switch s := selection.(type) {
		case *ast.Field:
			fields = append(fields, s)
		case *ast.InlineFragment:
			if s.TypeCondition == "" || s.TypeCondition == typeName {
				fields = append(fields, collectFields(typeName, s.SelectionSet)...)
			}
		case *ast.FragmentSpread:
			if s.Definition != nil && (s.Definition.TypeCondition == "" || s.Definition.TypeCondition == typeName) {
				fields = append(fields, collectFields(typeName, s.Definition.SelectionSet)...)
			}
		}
	}
	return fields
}

func tagErrors(list gqlerror.List, code string) gqlerror.List {
	for _, err := range list {
		if err.Extensions == nil {
			err.Extensions = make(map[string]interface{})
		}
		if _, ok := err.Extensions["code"]; !ok {
			err.Extensions["code"] = code
		}
	}
	return list
}

func toInterfaces[T any](items []T) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func isNil(value interface{}) bool {
	switch v := value.(type) {
	case *models.Photo:
		return v == nil
	case *models.User:
		return v == nil
	case *AuthPayload:
		return v == nil
	}
	return value == nil
}
