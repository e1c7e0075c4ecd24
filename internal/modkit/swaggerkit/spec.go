package swaggerkit

import (
	"net/http"
	"slices"
	"strings"
	"sync"
)

// Operation describes one documented endpoint; Path is relative to the API base
type Operation struct {
	Method  string
	Path    string
	Summary string
	Tag     string
}

var (
	mu  sync.Mutex
	ops = map[string]Operation{}
)

// Register documents operations; re-registering a method and path replaces it
func Register(in ...Operation) {
	mu.Lock()
	defer mu.Unlock()
	for _, op := range in {
		ops[strings.ToLower(op.Method)+" "+op.Path] = op
	}
}

func registered() []Operation {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Operation, 0, len(ops))
	for _, op := range ops {
		out = append(out, op)
	}
	slices.SortFunc(out, func(a, b Operation) int { return strings.Compare(a.Path+a.Method, b.Path+b.Method) })
	return out
}

// Spec assembles an OpenAPI 3.0 document from the registered operations
func Spec(title, version, baseURL string) map[string]any {
	paths := map[string]any{}
	for _, op := range registered() {
		node, _ := paths[op.Path].(map[string]any)
		if node == nil {
			node = map[string]any{}
			paths[op.Path] = node
		}
		o := map[string]any{
			"summary":   op.Summary,
			"tags":      []any{op.Tag},
			"responses": map[string]any{"200": map[string]any{"description": "OK"}},
		}
		if op.Method == http.MethodPost {
			o["requestBody"] = map[string]any{
				"required": true,
				"content": map[string]any{
					"application/json": map[string]any{"schema": map[string]any{"type": "object"}},
				},
			}
		}
		node[strings.ToLower(op.Method)] = o
	}

	spec := map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": title, "version": version},
		"servers": []any{map[string]any{"url": baseURL}},
		"paths":   paths,
	}
	ensureErrorResponseDefinition(spec)
	addDefaultResponse(spec, "500", "Internal Server Error", 500, "internal error")
	addDefaultResponse(spec, "400", "Bad Request", 400, "organization_id must be a valid UUID")
	return spec
}

// ensureErrorResponseDefinition adds the error envelope schema if missing
func ensureErrorResponseDefinition(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// addDefaultResponse injects an error response into every operation lacking one for status
func addDefaultResponse(spec map[string]any, status, description string, code int, msg string) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": code,
					"status":      description,
					"error":       msg,
				},
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, exists := responses[status]; !exists {
				responses[status] = resp
			}
		}
	}
}
