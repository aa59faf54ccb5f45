//go:build swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

// apiDoc describes the public routes. It is served at /swagger/doc.json.
const apiDoc = `{
  "swagger": "2.0",
  "info": {"title": "{{.Title}}", "version": "{{.Version}}", "description": "{{escape .Description}}"},
  "basePath": "{{.BasePath}}",
  "schemes": {{ marshal .Schemes }},
  "paths": {
    "/health": {"get": {"summary": "Liveness", "produces": ["application/json"],
      "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/HealthResponse"}}}}},
    "/": {"get": {"summary": "Welcome message", "produces": ["application/json"],
      "responses": {"200": {"description": "envelope with string data"}}}},
    "/api/version": {"get": {"summary": "API version", "produces": ["application/json"],
      "responses": {"200": {"description": "envelope with string data"}}}},
    "/api/status": {"get": {"summary": "Model slot status", "produces": ["application/json"],
      "responses": {"200": {"description": "status", "schema": {"$ref": "#/definitions/StatusResponse"}}}}},
    "/api/pii/detect": {"post": {"summary": "Detect PII entities", "consumes": ["application/json"], "produces": ["application/json"],
      "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/DetectRequest"}}],
      "responses": {
        "200": {"description": "envelope; detection failures have success=false"},
        "400": {"description": "invalid JSON body", "schema": {"$ref": "#/definitions/ErrorResponse"}},
        "415": {"description": "unsupported content type", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}}
  },
  "definitions": {
    "DetectRequest": {"type": "object", "properties": {"text": {"type": "string", "example": "My name is John Doe"}}},
    "HealthResponse": {"type": "object", "properties": {"status": {"type": "string"}, "message": {"type": "string"}}},
    "ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "code": {"type": "integer"}}},
    "StatusResponse": {"type": "object", "properties": {"model": {"type": "string"}, "state": {"type": "string"},
      "labels": {"type": "array", "items": {"type": "string"}}, "waiting": {"type": "integer"}, "inflight": {"type": "integer"}}}
  }
}`

func init() {
	swag.Register(swag.Name, &swag.Spec{
		Version:          Version,
		BasePath:         "/",
		Schemes:          []string{"http"},
		Title:            "glinerd API",
		Description:      "HTTP API for GLiNER entity extraction.",
		InfoInstanceName: "swagger",
		SwaggerTemplate:  apiDoc,
		LeftDelim:        "{{",
		RightDelim:       "}}",
	})
}

// MountSwagger serves the Swagger UI under /swagger/.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
