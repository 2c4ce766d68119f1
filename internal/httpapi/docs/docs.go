// Package docs registers the Swagger document for the preflight API.
// Keep in sync with the godoc annotations in internal/httpapi/server.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.HealthResponse"}
                    }
                }
            }
        },
        "/preflight": {
            "get": {
                "description": "Runs the model path checks. 503 when a required check fails.",
                "produces": ["application/json"],
                "tags": ["preflight"],
                "summary": "Check the configured model path",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.PreflightResponse"}
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {"$ref": "#/definitions/types.PreflightResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "types.PreflightCheck": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "model_path_exists"},
                "ok": {"type": "boolean", "example": true},
                "required": {"type": "boolean", "example": true},
                "detail": {"type": "string", "example": "model path does not exist: /models/m.gguf"}
            }
        },
        "types.PreflightResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean", "example": true},
                "model_path": {"type": "string", "example": "/models/codellama-13b-instruct.Q4_K_M.gguf"},
                "checks": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/types.PreflightCheck"}
                },
                "checked_at_unix": {"type": "integer", "example": 1700000000}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "modelguard API",
	Description:      "Preflight checks for a local model-weights file.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
