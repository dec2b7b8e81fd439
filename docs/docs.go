// Package docs registers the OpenAPI document served under /swagger. Keep it
// in step with the handler annotations.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.OK"}}
                }
            }
        },
        "/posts": {
            "get": {
                "description": "List posts newest first, optionally by tag membership and author",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [
                    {"type": "string", "description": "Only posts carrying this tag", "name": "tag", "in": "query"},
                    {"type": "string", "description": "Only posts by this username", "name": "author", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/post.PostResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Create a post by an existing author; tags default to [] and published to true",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create a new post",
                "parameters": [
                    {"description": "Post creation request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/post.CreatePostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Created"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}": {
            "get": {
                "description": "Get a single post with its comments",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get post by ID",
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/post.PostResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}/comments": {
            "post": {
                "description": "Append a comment by an existing user to a post",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Comment on a post",
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Comment", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/post.CreateCommentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.OK"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "description": "Get every user in storage order",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List all users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/user.UserResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Create a user with a unique username and email",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create a new user",
                "parameters": [
                    {"description": "User creation request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.CreateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Created"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "post.CommentResponse": {
            "type": "object",
            "properties": {
                "author_username": {"type": "string"},
                "content": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "post.CreateCommentRequest": {
            "type": "object",
            "required": ["author_username", "content"],
            "properties": {
                "author_username": {"type": "string", "minLength": 3},
                "content": {"type": "string", "maxLength": 5000, "minLength": 1}
            }
        },
        "post.CreatePostRequest": {
            "type": "object",
            "required": ["author_username", "body", "title"],
            "properties": {
                "author_username": {"type": "string", "minLength": 3},
                "body": {"type": "string"},
                "cover_image": {"type": "string"},
                "published": {"type": "boolean"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "title": {"type": "string", "maxLength": 200, "minLength": 3}
            }
        },
        "post.PostResponse": {
            "type": "object",
            "properties": {
                "author_username": {"type": "string"},
                "body": {"type": "string"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/post.CommentResponse"}},
                "cover_image": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "published": {"type": "boolean"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "title": {"type": "string"}
            }
        },
        "response.Created": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "errors": {}
            }
        },
        "response.OK": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"}
            }
        },
        "user.CreateUserRequest": {
            "type": "object",
            "required": ["email", "name", "username"],
            "properties": {
                "avatar_url": {"type": "string"},
                "bio": {"type": "string", "maxLength": 500},
                "email": {"type": "string"},
                "name": {"type": "string", "maxLength": 120, "minLength": 1},
                "username": {"type": "string", "maxLength": 30, "minLength": 3},
                "website": {"type": "string"}
            }
        },
        "user.UserResponse": {
            "type": "object",
            "properties": {
                "avatar_url": {"type": "string"},
                "bio": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "username": {"type": "string"},
                "website": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Blog API",
	Description:      "Users, posts and embedded comments over a document store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
