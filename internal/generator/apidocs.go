package generator

import (
	"encoding/json"
	"strings"

	"github.com/matthewbaird/appforge/internal/schema"
)

// APIDocs emits an OpenAPI-shaped description object covering every endpoint.
// Request/response schemas default to free-form objects when the endpoint
// declares none.
func APIDocs(endpoints []schema.Endpoint) map[string]any {
	paths := make(map[string]any)
	for _, e := range endpoints {
		op := map[string]any{
			"operationId": e.Name,
			"summary":     e.Description,
			"responses": map[string]any{
				"default": map[string]any{
					"description": "response",
					"content": map[string]any{
						"application/json": map[string]any{
							"schema": schemaOrAny(e.ResponseSchema),
						},
					},
				},
			},
		}
		if e.Method == schema.POST || e.Method == schema.PUT || e.Method == schema.PATCH {
			op["requestBody"] = map[string]any{
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": schemaOrAny(e.RequestSchema),
					},
				},
			}
		}
		if e.Authentication {
			op["security"] = []map[string]any{{"bearerAuth": []string{}}}
		}

		item, ok := paths[e.Path].(map[string]any)
		if !ok {
			item = make(map[string]any)
			paths[e.Path] = item
		}
		item[strings.ToLower(string(e.Method))] = op
	}

	return map[string]any{
		"openapi": "3.1.0",
		"info": map[string]any{
			"title":   "Generated API",
			"version": "1.0.0",
		},
		"paths": paths,
		"components": map[string]any{
			"securitySchemes": map[string]any{
				"bearerAuth": map[string]any{
					"type":   "http",
					"scheme": "bearer",
				},
			},
		},
	}
}

// apiDocsJSON renders the document as indented JSON. MarshalIndent sorts map
// keys, so the output is byte-stable for a given endpoint list.
func apiDocsJSON(endpoints []schema.Endpoint) string {
	data, err := json.MarshalIndent(APIDocs(endpoints), "", "  ")
	if err != nil {
		panic(err)
	}
	return string(data) + "\n"
}

func schemaOrAny(s map[string]any) map[string]any {
	if len(s) > 0 {
		return s
	}
	return map[string]any{"type": "object"}
}
