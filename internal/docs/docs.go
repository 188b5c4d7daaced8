// Package docs holds the OpenAPI document served under /swagger. It follows
// the layout swag init generates so it can be regenerated from the handler
// annotations.
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
        "/despesas": {
            "get": {
                "produces": ["application/json"],
                "tags": ["despesas"],
                "summary": "List expenses",
                "parameters": [
                    {"type": "integer", "name": "X-Usuario-ID", "in": "header", "required": true},
                    {"type": "integer", "name": "pagina", "in": "query"},
                    {"type": "integer", "name": "tamanho_pagina", "in": "query"},
                    {"type": "string", "name": "ordenar", "in": "query"},
                    {"type": "string", "name": "direcao", "in": "query"},
                    {"type": "string", "name": "de", "in": "query"},
                    {"type": "string", "name": "ate", "in": "query"},
                    {"type": "string", "name": "grupo_recorrencia", "in": "query"},
                    {"type": "string", "name": "busca", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["despesas"],
                "summary": "Save an expense",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SaveTransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/handlers.SaveTransactionResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.SaveTransactionResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/despesas/excluir": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["despesas"],
                "summary": "Delete an expense (JSON body)",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.DeleteTransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/handlers.DeleteTransactionResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/despesas/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["despesas"],
                "summary": "Delete an expense",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "escopo", "in": "query", "enum": ["apenas_esta", "esta_e_futuras"]},
                    {"type": "string", "name": "data", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/handlers.DeleteTransactionResponse"}},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "sucesso": {"type": "boolean", "example": false},
                "erro": {"type": "string"},
                "codigo": {"type": "string"}
            }
        },
        "handlers.SaveTransactionRequest": {
            "type": "object",
            "required": ["usuario_id", "familiar_id", "destino_id", "categoria_id", "forma_pagamento", "valor", "data"],
            "properties": {
                "id": {"type": "integer"},
                "usuario_id": {"type": "integer"},
                "familiar_id": {"type": "integer"},
                "destino_id": {"type": "integer"},
                "categoria_id": {"type": "integer"},
                "forma_pagamento": {"type": "string"},
                "valor": {"type": "string", "example": "100.00"},
                "data": {"type": "string", "example": "2024-01-31"},
                "observacoes": {"type": "string"},
                "recorrente": {"type": "boolean"},
                "parcelas": {"type": "integer", "example": 12}
            }
        },
        "handlers.SaveTransactionResponse": {
            "type": "object",
            "properties": {
                "sucesso": {"type": "boolean", "example": true},
                "mensagem": {"type": "string"},
                "grupo_recorrencia": {"type": "string"},
                "quantidade": {"type": "integer"},
                "ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "handlers.DeleteTransactionRequest": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "integer"},
                "escopo": {"type": "string", "example": "esta_e_futuras"},
                "data": {"type": "string", "example": "2024-02-01"}
            }
        },
        "handlers.DeleteTransactionResponse": {
            "type": "object",
            "properties": {
                "sucesso": {"type": "boolean", "example": true},
                "mensagem": {"type": "string"},
                "excluidos": {"type": "integer"},
                "escopo": {"type": "string"},
                "grupo_recorrencia": {"type": "string"},
                "sem_recorrencia": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "FamFinance API",
	Description:      "Family finance tracker: expenses, incomes, recurring installments and catalogs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
