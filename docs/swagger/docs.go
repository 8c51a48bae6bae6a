// Package swagger registers the OpenAPI document served under /swagger.
package swagger

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
        "/connections/{connectionId}": {
            "delete": {
                "description": "Forgets the last synced scene version of a connection.",
                "tags": ["scenes"],
                "summary": "Close Connection",
                "parameters": [
                    {"type": "string", "description": "Connection ID", "name": "connectionId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/files/{prefix}": {
            "put": {
                "description": "Uploads encoded files under a prefix. Per-file failures are reported in erroredFiles.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Upload Files",
                "parameters": [
                    {"type": "string", "description": "Object prefix (URL encoded)", "name": "prefix", "in": "path", "required": true},
                    {"description": "Files with base64 data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/files.UploadRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/files.UploadResult"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/files/{prefix}/download": {
            "post": {
                "description": "Downloads and decrypts files under a prefix. Per-file failures are reported in erroredFiles.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Download Files",
                "parameters": [
                    {"type": "string", "description": "Object prefix (URL encoded)", "name": "prefix", "in": "path", "required": true},
                    {"type": "string", "description": "Room key", "name": "X-Room-Key", "in": "header", "required": true},
                    {"description": "File ids", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/files.DownloadRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/files.DownloadResult"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Checks database reachability, the scenes table schema and the files bucket. Optionally migrates the table and creates the bucket.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health Check",
                "parameters": [
                    {"type": "boolean", "description": "Migrate schema and create bucket", "name": "fix", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Healthy", "schema": {"$ref": "#/definitions/health.Report"}},
                    "503": {"description": "Unhealthy", "schema": {"$ref": "#/definitions/health.Report"}}
                }
            }
        },
        "/rooms/{roomId}/scene": {
            "get": {
                "description": "Fetches and decrypts the stored scene of a room.",
                "produces": ["application/json"],
                "tags": ["scenes"],
                "summary": "Load Scene",
                "parameters": [
                    {"type": "string", "description": "Room ID", "name": "roomId", "in": "path", "required": true},
                    {"type": "string", "description": "Room key", "name": "X-Room-Key", "in": "header", "required": true},
                    {"type": "string", "description": "Connection ID", "name": "X-Connection-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/scenes.SceneResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "Wrong room key", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Empty room", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Storage failure", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "description": "Reconciles the posted elements with the stored scene and replaces the snapshot. Returns written=false when already synced.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["scenes"],
                "summary": "Save Scene",
                "parameters": [
                    {"type": "string", "description": "Room ID", "name": "roomId", "in": "path", "required": true},
                    {"type": "string", "description": "Room key", "name": "X-Room-Key", "in": "header", "required": true},
                    {"type": "string", "description": "Connection ID", "name": "X-Connection-ID", "in": "header", "required": true},
                    {"description": "Local elements", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/scenes.SaveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/scenes.SceneResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "Wrong room key", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Storage failure", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "files.DownloadRequest": {
            "type": "object",
            "properties": {
                "ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "files.DownloadResult": {
            "type": "object",
            "properties": {
                "erroredFiles": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "loadedFiles": {"type": "array", "items": {"$ref": "#/definitions/files.FileRecord"}}
            }
        },
        "files.File": {
            "type": "object",
            "properties": {
                "data": {"type": "string", "format": "byte"},
                "id": {"type": "string"}
            }
        },
        "files.FileRecord": {
            "type": "object",
            "properties": {
                "created": {"type": "integer"},
                "data": {"type": "string", "format": "byte"},
                "id": {"type": "string"},
                "lastRetrieved": {"type": "integer"},
                "mimeType": {"type": "string"}
            }
        },
        "files.UploadRequest": {
            "type": "object",
            "properties": {
                "files": {"type": "array", "items": {"$ref": "#/definitions/files.File"}}
            }
        },
        "files.UploadResult": {
            "type": "object",
            "properties": {
                "erroredFiles": {"type": "array", "items": {"type": "string"}},
                "savedFiles": {"type": "array", "items": {"type": "string"}}
            }
        },
        "health.ComponentReport": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "health.Report": {
            "type": "object",
            "properties": {
                "database": {"$ref": "#/definitions/health.ComponentReport"},
                "healthy": {"type": "boolean"},
                "schema": {"$ref": "#/definitions/health.SchemaReport"},
                "storage": {"$ref": "#/definitions/health.ComponentReport"}
            }
        },
        "health.SchemaReport": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "missing_columns": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "table": {"type": "string"}
            }
        },
        "scenes.SaveRequest": {
            "type": "object",
            "properties": {
                "elements": {"type": "array", "items": {"type": "object"}}
            }
        },
        "scenes.SceneResponse": {
            "type": "object",
            "properties": {
                "elements": {"type": "array", "items": {"type": "object"}},
                "roomId": {"type": "string"},
                "sceneVersion": {"type": "integer"},
                "written": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Scene Sync API",
	Description:      "Encrypted scene persistence and file transfer for collaborative whiteboard rooms.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
