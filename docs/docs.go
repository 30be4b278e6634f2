// Package docs holds the OpenAPI document served by the Swagger UI at
// /api-docs/. Keep it in step with the swag annotations on the article
// handlers.
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
        "/articles": {
            "get": {
                "description": "Returns matching articles partitioned into active and inactive, ordered by id",
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "List articles",
                "parameters": [
                    {"type": "string", "description": "Name filter (substring unless exactMatch)", "name": "name", "in": "query"},
                    {"type": "string", "description": "\"true\" for an exact name match", "name": "exactMatch", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/article.ListDTO"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Creates a new active article",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Create article",
                "parameters": [
                    {"description": "Article", "name": "article", "in": "body", "required": true, "schema": {"$ref": "#/definitions/article.CreateArticleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/article.DTO"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/validate.FailureBody"}},
                    "401": {"description": "Missing or invalid API key", "schema": {"$ref": "#/definitions/respond.MessageBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/articles/{id}": {
            "get": {
                "description": "Returns the article with the given id, active or not",
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Get article",
                "parameters": [
                    {"type": "integer", "description": "Article ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/article.DTO"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/validate.FailureBody"}},
                    "404": {"description": "Article not found.", "schema": {"$ref": "#/definitions/respond.MessageBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            },
            "patch": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Applies the fields present in the body. An empty body returns the article unchanged. is_active true reactivates.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Update article",
                "parameters": [
                    {"type": "integer", "description": "Article ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "article", "in": "body", "required": true, "schema": {"$ref": "#/definitions/article.UpdateArticleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/article.DTO"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/validate.FailureBody"}},
                    "401": {"description": "Missing or invalid API key", "schema": {"$ref": "#/definitions/respond.MessageBody"}},
                    "404": {"description": "Article not found for update.", "schema": {"$ref": "#/definitions/respond.MessageBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/articles/{id}/deactivate": {
            "patch": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Marks the article inactive. Records are never deleted.",
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Deactivate article",
                "parameters": [
                    {"type": "integer", "description": "Article ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Article deactivated successfully.", "schema": {"$ref": "#/definitions/respond.MessageBody"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/validate.FailureBody"}},
                    "401": {"description": "Missing or invalid API key", "schema": {"$ref": "#/definitions/respond.MessageBody"}},
                    "404": {"description": "Article not found for deactivation.", "schema": {"$ref": "#/definitions/respond.MessageBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "article.CreateArticleRequest": {
            "type": "object",
            "required": ["brand", "name"],
            "properties": {
                "brand": {"type": "string", "maxLength": 200, "minLength": 2, "example": "LogiTech"},
                "name": {"type": "string", "maxLength": 200, "minLength": 3, "example": "Mechanical Keyboard"}
            }
        },
        "article.UpdateArticleRequest": {
            "type": "object",
            "properties": {
                "brand": {"type": "string", "maxLength": 200, "minLength": 2, "example": "Logitech"},
                "is_active": {"type": "boolean", "example": true},
                "name": {"type": "string", "maxLength": 200, "minLength": 3, "example": "Wireless Keyboard"}
            }
        },
        "article.DTO": {
            "type": "object",
            "properties": {
                "brand": {"type": "string", "example": "LogiTech"},
                "id": {"type": "integer", "example": 1},
                "is_active": {"type": "boolean", "example": true},
                "modified_at": {"type": "string", "example": "2025-10-26T12:00:00Z"},
                "name": {"type": "string", "example": "Mechanical Keyboard"}
            }
        },
        "article.ListDTO": {
            "type": "object",
            "properties": {
                "active": {"type": "array", "items": {"$ref": "#/definitions/article.DTO"}},
                "inactive": {"type": "array", "items": {"$ref": "#/definitions/article.DTO"}}
            }
        },
        "respond.MessageBody": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "respond.ErrorBody": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "stack": {"type": "string"}
            }
        },
        "validate.FailureBody": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"$ref": "#/definitions/validate.Violation"}},
                "message": {"type": "string", "example": "Validation failed"}
            }
        },
        "validate.Violation": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "too_small"},
                "message": {"type": "string"},
                "path": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "description": "Shared secret configured by API_KEY_SECRET.",
            "type": "apiKey",
            "name": "x-api-key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Article Inventory API",
	Description:      "CRUD API for inventory articles guarded by a shared API key.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
