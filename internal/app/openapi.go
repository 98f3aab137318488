package app

import _ "embed"

// OpenAPISpec is the OpenAPI document served at /docs
//
//go:embed openapi.yaml
var OpenAPISpec []byte
