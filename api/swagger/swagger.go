package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Tutor Match API",
        "description": "Matches students with tutors by subject, week day and time of day.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Classes", "description": "Availability search and class registration"},
        {"name": "Connections", "description": "Student to teacher contact events"},
        {"name": "Favorites", "description": "Per-device favorite classes"}
    ],
    "paths": {
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "Search available classes",
                "parameters": [
                    {"name": "subject", "in": "query", "type": "string", "required": true},
                    {"name": "week_day", "in": "query", "type": "integer", "required": true, "minimum": 0, "maximum": 6},
                    {"name": "time", "in": "query", "type": "string", "required": true, "pattern": "^[0-9]{2}:[0-9]{2}$"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassSearchEnvelope"}},
                    "400": {"description": "Missing or malformed filters", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Register a teacher, a class and its weekly schedule atomically",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload or constraint violation", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Registration failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get a class with its teacher and schedule",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/connections": {
            "get": {
                "tags": ["Connections"],
                "summary": "Count connections",
                "parameters": [
                    {"name": "teacher_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Connections"],
                "summary": "Record that a student contacted a teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateConnectionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown teacher", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/favorites": {
            "get": {
                "tags": ["Favorites"],
                "summary": "List favorite classes of the calling device",
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/favorites/{classId}": {
            "get": {
                "tags": ["Favorites"],
                "summary": "Tell whether a class is a favorite",
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": true},
                    {"name": "classId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Favorites"],
                "summary": "Mark a class as favorite",
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": true},
                    {"name": "classId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Favorites"],
                "summary": "Remove a class from favorites",
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": true},
                    {"name": "classId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ScheduleItem": {
            "type": "object",
            "properties": {
                "week_day": {"type": "integer", "minimum": 0, "maximum": 6},
                "from": {"type": "string", "example": "08:00"},
                "to": {"type": "string", "example": "10:00"}
            },
            "required": ["week_day", "from", "to"]
        },
        "CreateClassRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "avatar": {"type": "string"},
                "whatsapp": {"type": "string"},
                "bio": {"type": "string"},
                "subject": {"type": "string"},
                "cost": {"type": "number", "minimum": 0},
                "schedule": {
                    "type": "array",
                    "minItems": 1,
                    "items": {"$ref": "#/definitions/ScheduleItem"}
                }
            },
            "required": ["name", "avatar", "whatsapp", "bio", "subject", "cost", "schedule"]
        },
        "ClassSearchResult": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "teacher_id": {"type": "string"},
                "name": {"type": "string"},
                "avatar": {"type": "string"},
                "whatsapp": {"type": "string"},
                "bio": {"type": "string"},
                "subject": {"type": "string"},
                "cost": {"type": "number"}
            }
        },
        "CreateConnectionRequest": {
            "type": "object",
            "properties": {
                "teacher_id": {"type": "string"}
            },
            "required": ["teacher_id"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        },
        "ClassSearchEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ClassSearchResult"}
                },
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
