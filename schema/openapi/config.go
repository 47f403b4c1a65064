package openapi

import "strings"

type generatorConfig struct {
	openAPIVersion string
	info           openapiInfo
	path           string
	method         string
	operationID    string
	summary        string
	contentType    string
	component      string
}

type openapiInfo struct {
	Title       string
	Version     string
	Description string
}

func defaultGeneratorConfig() generatorConfig {
	return generatorConfig{
		openAPIVersion: "3.0.3",
		info: openapiInfo{
			Title:   "Options",
			Version: "1.0.0",
		},
		path:        "/options",
		method:      "put",
		contentType: "application/json",
		component:   "Options",
	}
}

// GeneratorOption configures the OpenAPI generator behaviour.
type GeneratorOption func(*generatorConfig)

// WithOpenAPIVersion overrides the OpenAPI version string (default: 3.0.3).
func WithOpenAPIVersion(version string) GeneratorOption {
	return func(cfg *generatorConfig) {
		if version != "" {
			cfg.openAPIVersion = version
		}
	}
}

// WithInfo configures the info block. Empty strings retain the defaults.
func WithInfo(title, version, description string) GeneratorOption {
	return func(cfg *generatorConfig) {
		if title != "" {
			cfg.info.Title = title
		}
		if version != "" {
			cfg.info.Version = version
		}
		cfg.info.Description = description
	}
}

// WithOperation sets the path and method the options document is accepted on.
func WithOperation(path, method, summary string) GeneratorOption {
	return func(cfg *generatorConfig) {
		if path != "" {
			cfg.path = path
		}
		if method != "" {
			cfg.method = strings.ToLower(method)
		}
		cfg.summary = summary
	}
}

// WithOperationID overrides the derived "<method>:<path>" operation id.
func WithOperationID(id string) GeneratorOption {
	return func(cfg *generatorConfig) {
		cfg.operationID = id
	}
}

// WithContentType sets the request body content type.
func WithContentType(contentType string) GeneratorOption {
	return func(cfg *generatorConfig) {
		if contentType != "" {
			cfg.contentType = contentType
		}
	}
}

// WithComponent names the schema published under components.schemas.
func WithComponent(name string) GeneratorOption {
	return func(cfg *generatorConfig) {
		if name = strings.TrimSpace(name); name != "" {
			cfg.component = name
		}
	}
}
