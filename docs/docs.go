// Package docs holds the OpenAPI document served at /api-docs.
// Keep it in sync with the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "gdbrns",
            "url": "https://github.com/gdbrns/go-whatsapp-web-relay-api"
        },
        "license": {
            "name": "MIT",
            "url": "https://github.com/gdbrns/go-whatsapp-web-relay-api/blob/main/LICENSE"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Get The Server Status",
                "produces": ["application/json"],
                "tags": ["Root"],
                "summary": "Show The Status of The Server",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/index.StatusResponse"}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports whether the WhatsApp session is connected and logged in",
                "produces": ["application/json"],
                "tags": ["Root"],
                "summary": "Health Check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/health.Response"}
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {"$ref": "#/definitions/health.Response"}
                    }
                }
            }
        },
        "/qr": {
            "get": {
                "description": "Returns the most recent pairing QR code as a PNG data URL",
                "produces": ["application/json"],
                "tags": ["Session"],
                "summary": "Get The Latest Pairing QR Code",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/qr.Response"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/router.ErrorResponse"}
                    }
                }
            }
        },
        "/webhook": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Replace the URL that receives session events. Any non-empty string is accepted.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Webhook"],
                "summary": "Set Webhook URL",
                "parameters": [
                    {
                        "description": "Webhook destination",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.RequestWebhook"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/router.SuccessResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/router.ErrorResponse"}
                    }
                }
            }
        },
        "/messages/send": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Send a text message to a user or group",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Messages"],
                "summary": "Send Text Message",
                "parameters": [
                    {
                        "description": "Message",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.RequestSendMessage"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/router.SuccessResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/router.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/router.ErrorResponse"}
                    }
                }
            }
        },
        "/messages/media": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Fetch media from a URL and send it with an optional caption",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Messages"],
                "summary": "Send Media Message",
                "parameters": [
                    {
                        "description": "Media",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.RequestSendMedia"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/router.SuccessResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/router.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/router.ErrorResponse"}
                    }
                }
            }
        },
        "/messages/react": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "React to a message with a single emoji",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Messages"],
                "summary": "React To Message",
                "parameters": [
                    {
                        "description": "Reaction",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.RequestReact"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/router.SuccessResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/router.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/router.ErrorResponse"}
                    }
                }
            }
        },
        "/groups/participants/add": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Add one or more participants to a group",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Groups"],
                "summary": "Add Group Participants",
                "parameters": [
                    {
                        "description": "Group and participants",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.RequestAddParticipants"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/router.SuccessResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/router.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/router.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "health.Response": {
            "type": "object",
            "properties": {
                "connected": {"type": "boolean"},
                "logged_in": {"type": "boolean"},
                "status": {"type": "string"}
            }
        },
        "index.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "qr.Response": {
            "type": "object",
            "properties": {
                "qr": {"type": "string"}
            }
        },
        "router.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "router.SuccessResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "types.RequestAddParticipants": {
            "type": "object",
            "properties": {
                "groupId": {"type": "string"},
                "participants": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            }
        },
        "types.RequestReact": {
            "type": "object",
            "properties": {
                "messageId": {"type": "string"},
                "reaction": {"type": "string"}
            }
        },
        "types.RequestSendMedia": {
            "type": "object",
            "properties": {
                "caption": {"type": "string"},
                "mediaUrl": {"type": "string"},
                "to": {"type": "string"}
            }
        },
        "types.RequestSendMessage": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "to": {"type": "string"}
            }
        },
        "types.RequestWebhook": {
            "type": "object",
            "properties": {
                "url": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT Bearer token, required only when HTTP_AUTH_JWT_SECRET is set",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Go WhatsApp Web Relay REST API",
	Description:      "HTTP relay over a single WhatsApp Web session: send messages, media and reactions, manage group participants, and receive session events through a webhook",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
