// Package docs holds the OpenAPI document served under /api-docs. Regenerate with go generate ./cmd/kanban-api.
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
		"/board": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"board"
				],
				"summary": "List boards",
				"responses": {
					"200": {
						"description": "Boards of the caller",
						"schema": {
							"$ref": "#/definitions/model.BoardListResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"board"
				],
				"summary": "Create a board",
				"responses": {
					"200": {
						"description": "Created board",
						"schema": {
							"$ref": "#/definitions/model.BoardResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "",
						"name": "board",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.CreateBoardDTO"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/board/{boardId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"board"
				],
				"summary": "Get a board with its tasks and subtasks",
				"responses": {
					"200": {
						"description": "Board tree",
						"schema": {
							"$ref": "#/definitions/model.BoardTree"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Board ID",
						"name": "boardId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"board"
				],
				"summary": "Delete a board",
				"responses": {
					"200": {
						"description": "Board deleted",
						"schema": {
							"$ref": "#/definitions/model.MessageResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Board ID",
						"name": "boardId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"board"
				],
				"summary": "Rename a board",
				"responses": {
					"200": {
						"description": "Updated board",
						"schema": {
							"$ref": "#/definitions/model.BoardResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Board ID",
						"name": "boardId",
						"in": "path",
						"required": true
					},
					{
						"description": "",
						"name": "board",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.UpdateBoardDTO"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/board/{boardId}/task": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"task"
				],
				"summary": "List the tasks of a board",
				"responses": {
					"200": {
						"description": "Tasks of the board",
						"schema": {
							"$ref": "#/definitions/model.TaskListResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Board ID",
						"name": "boardId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"task"
				],
				"summary": "Add a task to a board",
				"responses": {
					"200": {
						"description": "Created task",
						"schema": {
							"$ref": "#/definitions/model.TaskResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Board ID",
						"name": "boardId",
						"in": "path",
						"required": true
					},
					{
						"description": "",
						"name": "task",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.CreateTaskDTO"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/task/{taskId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"task"
				],
				"summary": "Get a task with its subtasks",
				"responses": {
					"200": {
						"description": "Task tree",
						"schema": {
							"$ref": "#/definitions/model.TaskTree"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Task ID",
						"name": "taskId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"task"
				],
				"summary": "Delete a task",
				"responses": {
					"200": {
						"description": "Task deleted",
						"schema": {
							"$ref": "#/definitions/model.MessageResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Task ID",
						"name": "taskId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"task"
				],
				"summary": "Update a task",
				"responses": {
					"200": {
						"description": "Updated task",
						"schema": {
							"$ref": "#/definitions/model.TaskResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Task ID",
						"name": "taskId",
						"in": "path",
						"required": true
					},
					{
						"description": "",
						"name": "task",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.UpdateTaskDTO"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/task/{taskId}/subtask": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"subtask"
				],
				"summary": "List the subtasks of a task",
				"responses": {
					"200": {
						"description": "Subtasks of the task",
						"schema": {
							"$ref": "#/definitions/model.SubtaskListResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Task ID",
						"name": "taskId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"subtask"
				],
				"summary": "Add a subtask to a task",
				"responses": {
					"200": {
						"description": "Created subtask",
						"schema": {
							"$ref": "#/definitions/model.SubtaskResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Task ID",
						"name": "taskId",
						"in": "path",
						"required": true
					},
					{
						"description": "",
						"name": "subtask",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.CreateSubtaskDTO"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/subtask/{subtaskId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"subtask"
				],
				"summary": "Get a subtask",
				"responses": {
					"200": {
						"description": "Subtask",
						"schema": {
							"$ref": "#/definitions/entity.Subtask"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Subtask ID",
						"name": "subtaskId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"subtask"
				],
				"summary": "Delete a subtask",
				"responses": {
					"200": {
						"description": "Subtask deleted",
						"schema": {
							"$ref": "#/definitions/model.MessageResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Subtask ID",
						"name": "subtaskId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"subtask"
				],
				"summary": "Update a subtask",
				"responses": {
					"200": {
						"description": "Updated subtask",
						"schema": {
							"$ref": "#/definitions/model.SubtaskResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Subtask ID",
						"name": "subtaskId",
						"in": "path",
						"required": true
					},
					{
						"description": "",
						"name": "subtask",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.UpdateSubtaskDTO"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/user/register": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"user"
				],
				"summary": "Register a user",
				"responses": {
					"201": {
						"description": "Registered user",
						"schema": {
							"$ref": "#/definitions/model.UserResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "",
						"name": "user",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.RegisterUserDTO"
						}
					}
				]
			}
		},
		"/user/login": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"user"
				],
				"summary": "Log in",
				"responses": {
					"200": {
						"description": "Bearer token",
						"schema": {
							"$ref": "#/definitions/model.TokenResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "",
						"name": "credentials",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.LoginDTO"
						}
					}
				]
			}
		},
		"/health": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"health"
				],
				"summary": "Health check",
				"responses": {
					"200": {
						"description": "Service is healthy",
						"schema": {
							"$ref": "#/definitions/model.HealthResponse"
						}
					},
					"503": {
						"description": "A required component is down",
						"schema": {
							"$ref": "#/definitions/model.HealthResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"entity.Board": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"ownerId": {
					"type": "string"
				},
				"createdDate": {
					"type": "string"
				},
				"updatedDate": {
					"type": "string"
				}
			}
		},
		"entity.Task": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"boardId": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"createdDate": {
					"type": "string"
				},
				"updatedDate": {
					"type": "string"
				}
			}
		},
		"entity.Subtask": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"taskId": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"isCompleted": {
					"type": "boolean"
				},
				"createdDate": {
					"type": "string"
				},
				"updatedDate": {
					"type": "string"
				}
			}
		},
		"entity.User": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"createdDate": {
					"type": "string"
				},
				"updatedDate": {
					"type": "string"
				}
			}
		},
		"model.BoardResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"board": {
					"$ref": "#/definitions/entity.Board"
				}
			}
		},
		"model.BoardListResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"boards": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/entity.Board"
					}
				}
			}
		},
		"model.TaskResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"task": {
					"$ref": "#/definitions/entity.Task"
				}
			}
		},
		"model.TaskListResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"tasks": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/entity.Task"
					}
				}
			}
		},
		"model.SubtaskResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"subtask": {
					"$ref": "#/definitions/entity.Subtask"
				}
			}
		},
		"model.SubtaskListResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"subtasks": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/entity.Subtask"
					}
				}
			}
		},
		"model.UserResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/entity.User"
				}
			}
		},
		"model.TokenResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"token": {
					"type": "string"
				}
			}
		},
		"model.MessageResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				}
			}
		},
		"model.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				}
			}
		},
		"model.BoardTree": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"ownerId": {
					"type": "string"
				},
				"createdDate": {
					"type": "string"
				},
				"updatedDate": {
					"type": "string"
				},
				"tasks": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.TaskTree"
					}
				}
			}
		},
		"model.TaskTree": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"boardId": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"createdDate": {
					"type": "string"
				},
				"updatedDate": {
					"type": "string"
				},
				"subtasks": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/entity.Subtask"
					}
				}
			}
		},
		"model.CreateBoardDTO": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				}
			},
			"required": [
				"name"
			]
		},
		"model.UpdateBoardDTO": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				}
			}
		},
		"model.CreateTaskDTO": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				}
			},
			"required": [
				"name"
			]
		},
		"model.UpdateTaskDTO": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				}
			}
		},
		"model.CreateSubtaskDTO": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"isCompleted": {
					"type": "boolean"
				}
			},
			"required": [
				"name"
			]
		},
		"model.UpdateSubtaskDTO": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"isCompleted": {
					"type": "boolean"
				}
			}
		},
		"model.RegisterUserDTO": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string",
					"minLength": 6
				}
			},
			"required": [
				"email",
				"name",
				"password"
			]
		},
		"model.LoginDTO": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"model.HealthStatus": {
			"type": "string",
			"enum": [
				"UP",
				"DOWN",
				"UNKNOWN",
				"DISABLED"
			]
		},
		"model.ComponentHealthStatus": {
			"type": "object",
			"properties": {
				"status": {
					"$ref": "#/definitions/model.HealthStatus"
				},
				"details": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				}
			}
		},
		"model.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"$ref": "#/definitions/model.HealthStatus"
				},
				"database": {
					"$ref": "#/definitions/model.ComponentHealthStatus"
				},
				"cache": {
					"$ref": "#/definitions/model.ComponentHealthStatus"
				},
				"queue": {
					"$ref": "#/definitions/model.ComponentHealthStatus"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Bearer token issued by /user/login",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "",
	BasePath:		 "/",
	Schemes:		  []string{},
	Title:			"kanban-api",
	Description:	  "Boards, tasks and subtasks owned by authenticated users.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
