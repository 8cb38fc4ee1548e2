// Package api embeds the OpenAPI document served at /swagger and used to
// validate incoming requests.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPISpec []byte
