// Package docs registers the OpenAPI document for the read-only /api routes.
//
// Regenerate after changing handler annotations:
//
//	swag init -g cmd/api/main.go -o docs
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
                "description": "Returns one page of articles, optionally filtered by a search field and keyword.",
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "List articles",
                "parameters": [
                    {"minimum": 0, "type": "integer", "default": 0, "description": "Page number (0-based)", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 10, "description": "Page size", "name": "size", "in": "query"},
                    {"type": "string", "default": "createdAt,desc", "description": "Sort order as field,dir", "name": "sort", "in": "query"},
                    {"enum": ["TITLE", "CONTENT", "ID", "NICKNAME", "HASHTAG"], "type": "string", "description": "Search field", "name": "searchType", "in": "query"},
                    {"type": "string", "description": "Search keyword", "name": "searchValue", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pagination.Response-dto_ArticleDTO"}},
                    "400": {"description": "Invalid query parameters", "schema": {"$ref": "#/definitions/api.Error"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/api.Error"}}
                }
            }
        },
        "/articles/{id}": {
            "get": {
                "description": "Returns the article and all of its comments, oldest comment first.",
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Get article",
                "parameters": [
                    {"type": "integer", "description": "Article id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ArticleWithCommentsDTO"}},
                    "404": {"description": "Article not found", "schema": {"$ref": "#/definitions/api.Error"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/api.Error"}}
                }
            }
        },
        "/articles/{id}/articleComments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List article comments",
                "parameters": [
                    {"type": "integer", "description": "Article id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ArticleCommentDTO"}}},
                    "404": {"description": "Article not found", "schema": {"$ref": "#/definitions/api.Error"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/api.Error"}}
                }
            }
        },
        "/hashtags": {
            "get": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "List hashtags",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/api.Error"}}
                }
            }
        }
    },
    "definitions": {
        "api.Error": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "article not found"}}
        },
        "dto.UserAccountDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "userId": {"type": "string", "example": "heechan"},
                "email": {"type": "string", "example": "hee@example.com"},
                "nickname": {"type": "string", "example": "hee"},
                "memo": {"type": "string"},
                "createdAt": {"type": "string", "example": "2024-01-15T10:30:00Z"},
                "createdBy": {"type": "string", "example": "heechan"},
                "modifiedAt": {"type": "string", "example": "2024-01-15T10:30:00Z"},
                "modifiedBy": {"type": "string", "example": "heechan"}
            }
        },
        "dto.ArticleDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "userAccount": {"$ref": "#/definitions/dto.UserAccountDTO"},
                "title": {"type": "string", "example": "Spring Boot with Go"},
                "content": {"type": "string", "example": "Notes on porting a board"},
                "hashtag": {"type": "string", "example": "#go"},
                "createdAt": {"type": "string", "example": "2024-01-15T10:30:00Z"},
                "createdBy": {"type": "string", "example": "heechan"},
                "modifiedAt": {"type": "string", "example": "2024-01-15T10:30:00Z"},
                "modifiedBy": {"type": "string", "example": "heechan"}
            }
        },
        "dto.ArticleCommentDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "articleId": {"type": "integer", "example": 1},
                "userAccount": {"$ref": "#/definitions/dto.UserAccountDTO"},
                "content": {"type": "string", "example": "nice post"},
                "createdAt": {"type": "string", "example": "2024-01-15T10:30:00Z"},
                "createdBy": {"type": "string", "example": "heechan"},
                "modifiedAt": {"type": "string", "example": "2024-01-15T10:30:00Z"},
                "modifiedBy": {"type": "string", "example": "heechan"}
            }
        },
        "dto.ArticleWithCommentsDTO": {
            "allOf": [
                {"$ref": "#/definitions/dto.ArticleDTO"},
                {
                    "type": "object",
                    "properties": {
                        "articleComments": {"type": "array", "items": {"$ref": "#/definitions/dto.ArticleCommentDTO"}}
                    }
                }
            ]
        },
        "pagination.Metadata": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "size": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "sort": {"type": "array", "items": {"type": "string"}}
            }
        },
        "pagination.Response-dto_ArticleDTO": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/dto.ArticleDTO"}},
                "pagination": {"$ref": "#/definitions/pagination.Metadata"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Project Board API",
	Description:      "Read-only JSON access to board articles, comments and hashtags.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
