// Package docs holds the OpenAPI description served at /swagger/*.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/{guard}/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Register a principal",
                "parameters": [
                    {"type": "string", "description": "cliente | recepcionista | asistente | especialista", "name": "guard", "in": "path", "required": true},
                    {"description": "Registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.registerResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/{guard}/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Login",
                "parameters": [
                    {"type": "string", "description": "cliente | recepcionista | asistente | especialista", "name": "guard", "in": "path", "required": true},
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/{guard}/logout": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Logout",
                "parameters": [
                    {"type": "string", "name": "guard", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}}}
            }
        },
        "/{guard}/autenticado": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Authenticated principal",
                "parameters": [
                    {"type": "string", "name": "guard", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authenticatedResponse"}}}
            }
        },
        "/{guard}/all": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "List principals",
                "parameters": [
                    {"type": "string", "name": "guard", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dataResponse"}}}
            }
        },
        "/{guard}/update": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Update a principal",
                "parameters": [
                    {"type": "string", "name": "guard", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.principalUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dataResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/cita/create": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["citas"],
                "summary": "Create appointment (staff)",
                "parameters": [
                    {"description": "Appointment", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.staffAppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.dataResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/cita/registrar-propia": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["citas"],
                "summary": "Create own appointment (client)",
                "parameters": [
                    {"description": "Date and services", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.selfAppointmentRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.dataResponse"}}}
            }
        },
        "/cita/update": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["citas"],
                "summary": "Update appointment",
                "parameters": [
                    {"description": "Appointment with codigo", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.staffAppointmentRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dataResponse"}}}
            }
        },
        "/cita/all": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["citas"],
                "summary": "List appointments",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dataResponse"}}}
            }
        },
        "/cita/mis-citas": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["citas"],
                "summary": "Own appointments (client)",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dataResponse"}}}
            }
        },
        "/cita/get": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["citas"],
                "summary": "Get appointment",
                "parameters": [
                    {"description": "codigo", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.codeRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dataResponse"}}}
            }
        },
        "/pedido/create": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pedidos"],
                "summary": "Create order (staff)",
                "parameters": [
                    {"description": "Order", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.staffOrderRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.dataResponse"}}}
            }
        },
        "/pedido/registrar-propio": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pedidos"],
                "summary": "Create own order (client)",
                "parameters": [
                    {"description": "Address and products", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.selfOrderRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.dataResponse"}}}
            }
        },
        "/pedido/update": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pedidos"],
                "summary": "Update order",
                "parameters": [
                    {"description": "Order with codigo", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.staffOrderRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dataResponse"}}}
            }
        },
        "/pedido/get": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pedidos"],
                "summary": "Get order",
                "parameters": [
                    {"description": "codigo", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.codeRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dataResponse"}}}
            }
        },
        "/servicio/all": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalogo"],
                "summary": "List services",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dataResponse"}}}
            }
        },
        "/producto/all": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalogo"],
                "summary": "List products",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dataResponse"}}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.registerRequest": {
            "type": "object",
            "required": ["cedula", "nombre", "email", "password", "edad", "sexo"],
            "properties": {
                "cedula": {"type": "string", "maxLength": 20},
                "nombre": {"type": "string", "maxLength": 255},
                "email": {"type": "string", "maxLength": 255},
                "password": {"type": "string", "minLength": 5},
                "edad": {"type": "integer", "minimum": 0, "maximum": 150},
                "sexo": {"type": "string"},
                "urlImage": {"type": "string"},
                "salario": {"type": "number", "minimum": 0},
                "rol": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.principalUpdateRequest": {
            "type": "object",
            "properties": {
                "cedula": {"type": "string"},
                "nombre": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "edad": {"type": "integer"},
                "sexo": {"type": "string"},
                "urlImage": {"type": "string"},
                "salario": {"type": "number"},
                "rol": {"type": "string"}
            }
        },
        "handler.registerResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"type": "object"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"type": "object"},
                "token": {"type": "string"},
                "role": {"type": "string"},
                "permissions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.authenticatedResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "data": {"type": "object"},
                "role": {"type": "string"},
                "permissions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.dataResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "data": {}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "handler.codeRequest": {
            "type": "object",
            "required": ["codigo"],
            "properties": {
                "codigo": {"type": "string"}
            }
        },
        "handler.staffAppointmentRequest": {
            "type": "object",
            "required": ["idCliente", "fechaCita", "estado", "costoTotal"],
            "properties": {
                "codigo": {"type": "string"},
                "idCliente": {"type": "string"},
                "idRecepcionista": {"type": "string"},
                "fechaCita": {"type": "string"},
                "estado": {"type": "string"},
                "costoTotal": {"type": "number", "minimum": 0},
                "servicio_codigos": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.selfAppointmentRequest": {
            "type": "object",
            "required": ["fechaCita", "servicio_codigos"],
            "properties": {
                "fechaCita": {"type": "string"},
                "servicio_codigos": {"type": "array", "minItems": 1, "items": {"type": "string"}}
            }
        },
        "handler.productLineRequest": {
            "type": "object",
            "required": ["codigo", "cantidad"],
            "properties": {
                "codigo": {"type": "string"},
                "cantidad": {"type": "integer", "minimum": 1}
            }
        },
        "handler.staffOrderRequest": {
            "type": "object",
            "required": ["idCliente", "direccion", "fechaRegistro", "estado", "costoTotal"],
            "properties": {
                "codigo": {"type": "string"},
                "idCliente": {"type": "string"},
                "idAsistenteVentas": {"type": "string"},
                "direccion": {"type": "string", "maxLength": 255},
                "fechaRegistro": {"type": "string"},
                "estado": {"type": "string"},
                "costoTotal": {"type": "number", "minimum": 0},
                "productos_con_cantidades": {"type": "array", "items": {"$ref": "#/definitions/handler.productLineRequest"}}
            }
        },
        "handler.selfOrderRequest": {
            "type": "object",
            "required": ["direccion", "productos_con_cantidades"],
            "properties": {
                "direccion": {"type": "string", "maxLength": 255},
                "fechaRegistro": {"type": "string"},
                "productos_con_cantidades": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/handler.productLineRequest"}}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}}
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
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "backen-Maria API",
	Description:      "Accounts, appointments (citas) and orders (pedidos).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
