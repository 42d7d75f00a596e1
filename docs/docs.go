// Package docs registers the gateway's OpenAPI document with swag so
// echo-swagger can serve it under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in against the club backend",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "session token and auth model"},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/Error"}},
                    "429": {"description": "too many attempts"}
                }
            }
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "End the session", "responses": {"204": {"description": "signed out"}}}
        },
        "/me": {
            "get": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Current session", "responses": {"200": {"description": "user, auth model and permissions"}}}
        },
        "/me/navigation": {
            "get": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Menu entries visible to the session", "responses": {"200": {"description": "navigation items and screen grants"}}}
        },
        "/cart": {
            "get": {"tags": ["cart"], "security": [{"BearerAuth": []}], "summary": "View the open cart", "responses": {"200": {"description": "cart snapshot"}, "404": {"description": "no open cart"}}},
            "post": {"tags": ["cart"], "security": [{"BearerAuth": []}], "summary": "Open a cart", "responses": {"201": {"description": "cart snapshot"}}},
            "delete": {"tags": ["cart"], "security": [{"BearerAuth": []}], "summary": "Discard the cart", "responses": {"204": {"description": "discarded"}}}
        },
        "/cart/submit": {
            "post": {
                "tags": ["cart"],
                "security": [{"BearerAuth": []}],
                "summary": "Submit the cart as a sale",
                "responses": {
                    "201": {"description": "sale, fresh cart and catalog staleness"},
                    "409": {"description": "submission already in progress"},
                    "422": {"description": "empty cart or no game selected", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/sales/history": {
            "get": {"tags": ["reports"], "security": [{"BearerAuth": []}], "summary": "Sales history with totals", "responses": {"200": {"description": "page of sales"}}}
        },
        "/receipts": {
            "get": {"tags": ["reports"], "security": [{"BearerAuth": []}], "summary": "Receipts recorded for the signed-in seller", "responses": {"200": {"description": "receipts, newest first"}}}
        },
        "/budgets/export": {
            "get": {"tags": ["reports"], "security": [{"BearerAuth": []}], "summary": "Budget spreadsheet", "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "responses": {"200": {"description": "xlsx file"}}}
        },
        "/{screen}": {
            "get": {
                "tags": ["screens"],
                "security": [{"BearerAuth": []}],
                "summary": "List a screen's records",
                "parameters": [
                    {"in": "path", "name": "screen", "required": true, "type": "string"},
                    {"in": "query", "name": "q", "type": "string"},
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {"200": {"description": "page of records"}, "403": {"description": "missing permission"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "Error": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "redirect": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Soldiers Admin Gateway",
	Description:      "Backend-for-frontend of the Soldiers club admin dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
