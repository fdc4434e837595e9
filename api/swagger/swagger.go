package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "HIMARPL API",
        "description": "Public read API for departments, members and news, plus the greetings demo resource.",
        "version": "1.0"
    },
    "basePath": "/",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "in": "header", "name": "X-API-Key"}
    },
    "tags": [
        {"name": "Departments", "description": "Executive board and representative council departments"},
        {"name": "Users", "description": "Organization members"},
        {"name": "News", "description": "Published posts tagged as news"},
        {"name": "Greetings", "description": "Greeting demo resource, API key required"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "{{.BasePath}}/departments": {
            "get": {
                "tags": ["Departments"],
                "summary": "List departments",
                "description": "At least one of type, year or acronym is required.",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string", "enum": ["be", "dp"]},
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "acronym", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer", "minimum": 1},
                    {"name": "limit", "in": "query", "type": "integer", "minimum": 1, "maximum": 50}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListEnvelope"}},
                    "400": {"description": "Invalid type or no filter", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "{{.BasePath}}/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer", "minimum": 1},
                    {"name": "limit", "in": "query", "type": "integer", "minimum": 1, "maximum": 50},
                    {"name": "orderBy", "in": "query", "type": "string", "enum": ["name", "email", "username"]},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "periodYears", "in": "query", "type": "string", "description": "Comma separated years"},
                    {"name": "departmentIds", "in": "query", "type": "string", "description": "Comma separated ids"},
                    {"name": "positionNames", "in": "query", "type": "string", "description": "Comma separated names"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListEnvelope"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "{{.BasePath}}/news": {
            "get": {
                "tags": ["News"],
                "summary": "List news",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer", "minimum": 1},
                    {"name": "limit", "in": "query", "type": "integer", "minimum": 1, "maximum": 50},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListEnvelope"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "{{.BasePath}}/greetings": {
            "get": {
                "tags": ["Greetings"],
                "summary": "Get a greeting message",
                "security": [{"ApiKeyAuth": []}],
                "parameters": [
                    {"name": "name", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Greeting"}},
                    "304": {"description": "Not modified"},
                    "401": {"description": "Missing or invalid API key", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "post": {
                "tags": ["Greetings"],
                "summary": "Create a custom greeting",
                "security": [{"ApiKeyAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateGreetingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Greeting"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "401": {"description": "Missing or invalid API key", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "put": {
                "tags": ["Greetings"],
                "summary": "Update an existing greeting",
                "security": [{"ApiKeyAuth": []}],
                "parameters": [
                    {"name": "id", "in": "query", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateGreetingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Greeting"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "401": {"description": "Missing or invalid API key", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Greetings"],
                "summary": "Delete a greeting",
                "security": [{"ApiKeyAuth": []}],
                "parameters": [
                    {"name": "id", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "400": {"description": "Missing id", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "401": {"description": "Missing or invalid API key", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "PageMeta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "ListEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"type": "object"}},
                "timestamp": {"type": "string", "format": "date-time"},
                "code": {"type": "string", "example": "SUCCESS"},
                "metadata": {"$ref": "#/definitions/PageMeta"}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "required": ["error", "code", "timestamp"],
            "properties": {
                "error": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "code": {"type": "string", "enum": ["BAD_REQUEST", "INVALID_PARAMETERS", "UNAUTHORIZED", "NOT_FOUND", "TOO_MANY_REQUESTS", "INTERNAL_ERROR"]},
                "metadata": {"type": "object"},
                "details": {"type": "object"}
            }
        },
        "Greeting": {
            "type": "object",
            "required": ["message", "timestamp"],
            "properties": {
                "message": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "metadata": {"type": "object"}
            }
        },
        "CreateGreetingRequest": {
            "type": "object",
            "required": ["name", "language"],
            "properties": {
                "name": {"type": "string"},
                "language": {"type": "string", "enum": ["en", "es", "fr"]},
                "metadata": {"type": "object"}
            }
        },
        "UpdateGreetingRequest": {
            "type": "object",
            "properties": {
                "language": {"type": "string", "enum": ["en", "es", "fr"]},
                "metadata": {"type": "object"}
            }
        }
    }
}`

// SwaggerInfo holds the values templated into the document. BasePath is the API prefix the
// list and greetings routes are mounted under.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Title:            "HIMARPL API",
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
