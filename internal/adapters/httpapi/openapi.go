package httpapi

import (
	"net/http"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/httpjson"
)

// handleOpenAPI décrit l'API locale consommée par l'interface graphique.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	jsonOK := func(schemaRef string) map[string]any {
		return map[string]any{
			"description": "OK",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": schemaRef},
				},
			},
		}
	}

	jsonErr := map[string]any{
		"description": "Error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/Error"},
			},
		},
	}

	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "PB2 Launcher API",
			"version": "v1",
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Error": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"error": map[string]any{"type": "string"},
						"code":  map[string]any{"type": "string", "enum": []any{"network_error", "http_status", "io_error", "internal"}},
					},
					"required": []any{"error"},
				},
				"LoginRequest": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"username": map[string]any{"type": "string"},
						"password": map[string]any{"type": "string", "description": "Mot de passe en clair ou MD5 hexadécimal (32 caractères)."},
					},
					"required":             []any{"username", "password"},
					"additionalProperties": false,
				},
				"LoginAccepted": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"attemptId": map[string]any{"type": "string"},
						"state":     map[string]any{"type": "string", "enum": []any{"pending"}},
					},
				},
				"LoginOutcome": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"message":   map[string]any{"type": "string"},
						"succeeded": map[string]any{"type": "boolean"},
						"method":    map[string]any{"type": "string", "enum": []any{"website_password", "website_md5", "standalone_launcher"}},
					},
				},
				"Session": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"signedIn":    map[string]any{"type": "boolean"},
						"signedInAs":  map[string]any{"type": "string"},
						"pending":     map[string]any{"type": "boolean"},
						"attemptId":   map[string]any{"type": "string"},
						"lastOutcome": map[string]any{"$ref": "#/components/schemas/LoginOutcome"},
						"lastError":   map[string]any{"type": "string"},
					},
				},
				"AssetStatusList": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"kind":  map[string]any{"type": "string", "enum": []any{"player", "game"}},
							"state": map[string]any{"type": "string", "enum": []any{"missing", "present", "stale", "current"}},
							"path":  map[string]any{"type": "string"},
						},
					},
				},
				"NewsPage": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"page": map[string]any{"type": "integer", "minimum": 0},
						"items": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"date": map[string]any{"type": "string"},
									"text": map[string]any{"type": "string"},
									"segments": map[string]any{
										"type": "array",
										"items": map[string]any{
											"type": "object",
											"properties": map[string]any{
												"kind": map[string]any{"type": "string", "enum": []any{"text", "link"}},
												"text": map[string]any{"type": "string"},
												"url":  map[string]any{"type": "string"},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
		"paths": map[string]any{
			"/api/v1/health": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/version": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/events": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "SSE: login.*, update.*, download.*, launch.*"}}},
			},
			"/api/v1/login": map[string]any{
				"post": map[string]any{
					"requestBody": map[string]any{
						"required": true,
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/LoginRequest"},
							},
						},
					},
					"responses": map[string]any{
						"202": jsonOK("#/components/schemas/LoginAccepted"),
						"400": jsonErr,
					},
				},
			},
			"/api/v1/session": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Session")}},
			},
			"/api/v1/assets": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/AssetStatusList"), "502": jsonErr}},
			},
			"/api/v1/update": map[string]any{
				"post": map[string]any{"responses": map[string]any{"202": map[string]any{"description": "Cycle lancé"}}},
			},
			"/api/v1/play": map[string]any{
				"post": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "Processus lancé"}, "500": jsonErr}},
			},
			"/api/v1/news": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						map[string]any{"name": "page", "in": "query", "schema": map[string]any{"type": "integer", "minimum": 0}},
					},
					"responses": map[string]any{"200": jsonOK("#/components/schemas/NewsPage"), "400": jsonErr, "502": jsonErr},
				},
			},
			"/api/v1/news/pages": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}, "502": jsonErr}},
			},
		},
	}

	httpjson.Write(w, http.StatusOK, spec)
}
