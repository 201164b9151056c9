// Package docs registers the Threads API description with swag so gin-swagger
// can serve it under /docs.
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
                "tags": ["system"],
                "summary": "Liveness and database check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/feed": {
            "get": {
                "produces": ["application/json"],
                "tags": ["threads"],
                "summary": "Top-level posts, newest first",
                "parameters": [
                    {"type": "integer", "description": "page number, 1-based", "name": "page", "in": "query"},
                    {"type": "integer", "description": "page size (default 20, max 100)", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.FeedPage"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "The signed-in user's profile for editing",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserProfile"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["profile"],
                "summary": "Create or update the signed-in user's profile",
                "parameters": [
                    {"description": "profile", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.saveProfileReq"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "429": {"description": "Too Many Requests", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Search other users",
                "parameters": [
                    {"type": "string", "description": "case-insensitive substring of username or name", "name": "q", "in": "query"},
                    {"type": "integer", "description": "page number, 1-based", "name": "page", "in": "query"},
                    {"type": "integer", "description": "page size (default 30, max 100)", "name": "size", "in": "query"},
                    {"type": "string", "description": "asc or desc on creation time", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserPage"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Public profile with communities",
                "parameters": [
                    {"type": "string", "description": "external user id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserProfile"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/users/{id}/threads": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "A user's threads with communities, replies and reply authors",
                "parameters": [
                    {"type": "string", "description": "external user id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserThreads"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/activity": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["activity"],
                "summary": "Replies other users left on the signed-in user's threads",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ThreadView"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "domain.AuthorSummary": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "image": {"type": "string"}
            }
        },
        "domain.CommunitySummary": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "image": {"type": "string"}
            }
        },
        "domain.ThreadView": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "text": {"type": "string"},
                "parentId": {"type": "string"},
                "createdAt": {"type": "string"},
                "author": {"$ref": "#/definitions/domain.AuthorSummary"},
                "community": {"$ref": "#/definitions/domain.CommunitySummary"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/domain.ThreadView"}}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "id": {"type": "string"},
                "username": {"type": "string"},
                "name": {"type": "string"},
                "bio": {"type": "string"},
                "image": {"type": "string"},
                "onboarded": {"type": "boolean"},
                "threads": {"type": "array", "items": {"type": "string"}},
                "communities": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"}
            }
        },
        "domain.UserPage": {
            "type": "object",
            "properties": {
                "users": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}},
                "isNext": {"type": "boolean"}
            }
        },
        "domain.FeedPage": {
            "type": "object",
            "properties": {
                "posts": {"type": "array", "items": {"$ref": "#/definitions/domain.ThreadView"}},
                "isNext": {"type": "boolean"}
            }
        },
        "domain.UserProfile": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/domain.User"},
                "communities": {"type": "array", "items": {"$ref": "#/definitions/domain.CommunitySummary"}}
            }
        },
        "domain.UserThreads": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/domain.User"},
                "threads": {"type": "array", "items": {"$ref": "#/definitions/domain.ThreadView"}}
            }
        },
        "http.saveProfileReq": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "name": {"type": "string"},
                "bio": {"type": "string"},
                "image": {"type": "string"},
                "path": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Threads API",
	Description:      "Profiles, user directory, threads and activity.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
