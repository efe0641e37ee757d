// Package docs 注册 swagger 文档，供 gin-swagger 在 /swagger 下展示
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
            "get": {"tags": ["系统"], "summary": "健康检查", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/cron/generate": {
            "get": {"tags": ["生成"], "summary": "生成今日谜题", "security": [{"ApiKeyAuth": []}],
                "parameters": [{"type": "string", "description": "cron 或 admin 密钥", "name": "secret", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/util.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "post": {"tags": ["生成"], "summary": "生成今日谜题", "security": [{"ApiKeyAuth": []}],
                "parameters": [{"type": "string", "description": "cron 或 admin 密钥", "name": "secret", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/util.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/puzzle": {
            "get": {"tags": ["谜题"], "summary": "获取今日谜题", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/themes": {
            "get": {"tags": ["谜题"], "summary": "主题列表",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/guess": {
            "post": {"tags": ["谜题"], "summary": "按会话提交猜测", "consumes": ["application/json"],
                "parameters": [{"description": "会话和猜测", "name": "body", "in": "body", "required": true,
                    "schema": {"$ref": "#/definitions/controller.sessionGuessRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/guess/champion": {
            "post": {"tags": ["谜题"], "summary": "猜角色", "consumes": ["application/json"],
                "parameters": [{"description": "猜测内容和已找到的位置", "name": "body", "in": "body", "required": true,
                    "schema": {"$ref": "#/definitions/controller.championGuessRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/guess/theme": {
            "post": {"tags": ["谜题"], "summary": "猜主题", "consumes": ["application/json"],
                "parameters": [{"description": "猜测内容和尝试次数", "name": "body", "in": "body", "required": true,
                    "schema": {"$ref": "#/definitions/controller.themeGuessRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/giveup": {
            "post": {"tags": ["谜题"], "summary": "放弃并查看答案",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/solution": {
            "get": {"tags": ["谜题"], "summary": "查看答案",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/stats": {
            "get": {"tags": ["统计"], "summary": "今日通关次数分布",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/stats/{date}": {
            "get": {"tags": ["统计"], "summary": "指定日期的通关次数分布",
                "parameters": [{"type": "string", "description": "日期 YYYY-MM-DD", "name": "date", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/history": {
            "get": {"tags": ["统计"], "summary": "往期谜题",
                "parameters": [{"type": "integer", "description": "条数，默认 30，最多 100", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        }
    },
    "definitions": {
        "util.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
            }
        },
        "controller.championGuessRequest": {
            "type": "object",
            "required": ["guess"],
            "properties": {
                "guess": {"type": "string"},
                "foundSlots": {"type": "array", "items": {"type": "string", "enum": ["A", "B"]}}
            }
        },
        "controller.themeGuessRequest": {
            "type": "object",
            "required": ["guess"],
            "properties": {
                "guess": {"type": "string"},
                "attempts": {"type": "integer"}
            }
        },
        "controller.sessionGuessRequest": {
            "type": "object",
            "required": ["guess"],
            "properties": {
                "guess": {"type": "string"},
                "session": {"$ref": "#/definitions/model.GuessSession"}
            }
        },
        "model.GuessSession": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "foundSlots": {"type": "array", "items": {"type": "string"}},
                "wrongGuesses": {"type": "array", "items": {"type": "string"}},
                "attempts": {"type": "integer"},
                "phase": {"type": "string", "enum": ["seeking_pair", "seeking_theme", "won"]},
                "givenUp": {"type": "boolean"},
                "themeStart": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Fusion 每日谜题 API",
	Description:      "每日融合图片竞猜后端服务。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
