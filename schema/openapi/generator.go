// Package openapi describes the persisted options object of a Registry as an
// OpenAPI 3 document, so tools that speak OpenAPI can validate or edit an
// options file.
package openapi

import (
	"fmt"

	opts "github.com/goliatone/go-options-menu"
)

const intPattern = "^-?[0-9]+$"

// Generate builds the OpenAPI document for registry. Every option becomes a
// string property; absent keys are legal so nothing is required.
func Generate(registry *opts.Registry, options ...GeneratorOption) (opts.SchemaDocument, error) {
	if registry == nil {
		return opts.SchemaDocument{}, fmt.Errorf("openapi: registry cannot be nil")
	}
	cfg := defaultGeneratorConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	fields, _ := registry.Schema().Document.([]opts.FieldDescriptor)
	properties := make(map[string]any, len(fields))
	order := make([]string, 0, len(fields))
	for _, field := range fields {
		properties[field.Path] = propertySchema(field)
		order = append(order, field.Path)
	}

	document := map[string]any{
		"openapi": cfg.openAPIVersion,
		"info":    buildInfo(cfg.info),
		"paths":   buildPaths(cfg),
		"components": map[string]any{
			"schemas": map[string]any{
				cfg.component: map[string]any{
					"type":                 "object",
					"properties":           properties,
					"additionalProperties": map[string]any{"type": "string"},
					"x-option-order":       order,
				},
			},
		},
	}
	if err := validateDocument(document); err != nil {
		return opts.SchemaDocument{}, err
	}
	return opts.SchemaDocument{Format: opts.SchemaFormatOpenAPI, Document: document}, nil
}

func propertySchema(field opts.FieldDescriptor) map[string]any {
	schema := map[string]any{
		"type":          "string",
		"default":       field.Fallback,
		"x-option-kind": field.Kind,
		"x-go-type":     field.Type,
	}
	if field.Label != "" {
		schema["description"] = field.Label
	}
	switch field.Kind {
	case opts.KindBool.String():
		schema["enum"] = []string{"true", "false"}
	case opts.KindEnum.String():
		schema["enum"] = append([]string(nil), field.Variants...)
	case opts.KindInt.String():
		schema["pattern"] = intPattern
		if field.Bounds != nil {
			schema["x-minimum"] = field.Bounds.Min
			schema["x-maximum"] = field.Bounds.Max
			schema["x-step"] = field.Bounds.Step
		}
	}
	return schema
}

func buildInfo(info openapiInfo) map[string]any {
	out := map[string]any{
		"title":   info.Title,
		"version": info.Version,
	}
	if info.Description != "" {
		out["description"] = info.Description
	}
	return out
}

func buildPaths(cfg generatorConfig) map[string]any {
	operationID := cfg.operationID
	if operationID == "" {
		operationID = fmt.Sprintf("%s:%s", cfg.method, cfg.path)
	}
	operation := map[string]any{
		"operationId": operationID,
		"requestBody": map[string]any{
			"required": true,
			"content": map[string]any{
				cfg.contentType: map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/" + cfg.component},
				},
			},
		},
		"responses": map[string]any{
			"204": map[string]any{"description": "Saved"},
		},
	}
	if cfg.summary != "" {
		operation["summary"] = cfg.summary
	}
	return map[string]any{
		cfg.path: map[string]any{cfg.method: operation},
	}
}

func validateDocument(document map[string]any) error {
	if v, _ := document["openapi"].(string); v == "" {
		return fmt.Errorf("openapi: document missing version string")
	}
	info, _ := document["info"].(map[string]any)
	if title, _ := info["title"].(string); title == "" {
		return fmt.Errorf("openapi: info.title must be set")
	}
	if version, _ := info["version"].(string); version == "" {
		return fmt.Errorf("openapi: info.version must be set")
	}
	paths, _ := document["paths"].(map[string]any)
	for path := range paths {
		if len(path) == 0 || path[0] != '/' {
			return fmt.Errorf("openapi: path %q must start with '/'", path)
		}
	}
	return nil
}
