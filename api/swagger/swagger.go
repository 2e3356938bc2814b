package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "MeepleMeet API", "description": "Board-game discussions, sessions, space rentals and invitations.", "version": "1.0.0"},
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [{"name": "Authentication"}, {"name": "Accounts"}, {"name": "Shops"}, {"name": "SpaceRenters"}, {"name": "Rentals"}, {"name": "Discussions"}, {"name": "Sessions"}, {"name": "Notifications"}, {"name": "Exports"}, {"name": "Observability"}],
    "paths": {
        "/auth/register": {
            "post": {"tags": ["Authentication"], "summary": "Register account", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/auth/login": {
            "post": {"tags": ["Authentication"], "summary": "Authenticate account", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/auth/refresh": {
            "post": {"tags": ["Authentication"], "summary": "Refresh access token", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/auth/logout": {
            "post": {"tags": ["Authentication"], "summary": "Revoke refresh token", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/auth/me": {
            "get": {"tags": ["Authentication"], "summary": "Current account", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/accounts/{id}": {
            "get": {"tags": ["Accounts"], "summary": "Get account", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Accounts"], "summary": "Update profile", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAccountRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Accounts"], "summary": "Delete account", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/accounts/handle/{handle}": {
            "get": {"tags": ["Accounts"], "summary": "Find account by handle", "parameters": [{"name": "handle", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/shops": {
            "get": {"tags": ["Shops"], "summary": "List shops", "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "ownerId", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Shops"], "summary": "Create shop", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ShopRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/shops/{id}": {
            "get": {"tags": ["Shops"], "summary": "Get shop", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Shops"], "summary": "Update shop", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ShopRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Shops"], "summary": "Delete shop", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/space-renters": {
            "get": {"tags": ["SpaceRenters"], "summary": "List space renters", "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "ownerId", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["SpaceRenters"], "summary": "Create space renter", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SpaceRenterRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/space-renters/{id}": {
            "get": {"tags": ["SpaceRenters"], "summary": "Get space renter", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["SpaceRenters"], "summary": "Update space renter", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SpaceRenterRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["SpaceRenters"], "summary": "Delete space renter", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/space-renters/{id}/opening-hours": {
            "get": {"tags": ["SpaceRenters"], "summary": "Opening hours with display lines", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/space-renters/{id}/rentals": {
            "get": {"tags": ["Rentals"], "summary": "List rentals of a space renter", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}, {"name": "active", "in": "query", "type": "boolean"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/space-renters/{id}/exports": {
            "post": {"tags": ["Exports"], "summary": "Export rentals", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RentalReportRequest"}}], "responses": {"202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/rentals": {
            "get": {"tags": ["Rentals"], "summary": "List my rentals", "parameters": [{"name": "active", "in": "query", "type": "boolean"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Rentals"], "summary": "Rent a space", "description": "Rejected selections return 400 with one of: Cannot select a time in the past. / Start time must be before end time. / Multi-day rentals require direct contact with space renter. / Space renter is closed on this day. / Outside opening hours (HH:mm - HH:mm).", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRentalRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/rentals/compatibility": {
            "post": {"tags": ["Rentals"], "summary": "Check a session time against a rental", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CompatibilityRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/rentals/{id}": {
            "get": {"tags": ["Rentals"], "summary": "Get rental", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/rentals/{id}/resource": {
            "get": {"tags": ["Rentals"], "summary": "Rental resource info", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/rentals/{id}/cancel": {
            "post": {"tags": ["Rentals"], "summary": "Cancel rental", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/discussions": {
            "get": {"tags": ["Discussions"], "summary": "List my discussions", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Discussions"], "summary": "Create discussion", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DiscussionRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/discussions/{id}": {
            "get": {"tags": ["Discussions"], "summary": "Get discussion", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Discussions"], "summary": "Update discussion", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DiscussionRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Discussions"], "summary": "Delete discussion", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/discussions/{id}/participants": {
            "post": {"tags": ["Discussions"], "summary": "Add participant", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ParticipantRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/discussions/{id}/participants/{accountId}": {
            "delete": {"tags": ["Discussions"], "summary": "Remove participant or leave", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}, {"name": "accountId", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/discussions/{id}/messages": {
            "get": {"tags": ["Discussions"], "summary": "List messages", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Discussions"], "summary": "Post message", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MessageRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/discussions/{id}/session": {
            "get": {"tags": ["Sessions"], "summary": "Get session", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Sessions"], "summary": "Schedule session", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SessionRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Sessions"], "summary": "Update session", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SessionRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Sessions"], "summary": "Delete session", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/discussions/{id}/session/join": {
            "post": {"tags": ["Sessions"], "summary": "Join session", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/notifications": {
            "get": {"tags": ["Notifications"], "summary": "List my notifications", "parameters": [{"name": "unread", "in": "query", "type": "boolean"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Notifications"], "summary": "Send invitation", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SendNotificationRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/notifications/{id}": {
            "delete": {"tags": ["Notifications"], "summary": "Delete notification", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/notifications/{id}/read": {
            "post": {"tags": ["Notifications"], "summary": "Mark read", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/notifications/{id}/accept": {
            "post": {"tags": ["Notifications"], "summary": "Accept invitation", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/exports/{id}": {
            "get": {"tags": ["Exports"], "summary": "Export job status", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/exports/download/{token}": {
            "get": {"tags": ["Exports"], "summary": "Download export via signed token", "produces": ["text/csv", "application/pdf"], "parameters": [{"name": "token", "in": "path", "required": true, "type": "string", "description": ""}], "responses": {"200": {"description": "File"}, "403": {"description": "Invalid token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/admin/metrics": {
            "get": {"tags": ["Observability"], "summary": "Metrics snapshot", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        }
    },
    "definitions": {
        "TimeSlot": {"type": "object", "properties": {"open": {"type": "string"}, "close": {"type": "string"}}},
        "OpeningHours": {"type": "object", "properties": {"day": {"type": "integer"}, "hours": {"type": "array", "items": {"$ref": "#/definitions/TimeSlot"}}}},
        "Location": {"type": "object", "properties": {"name": {"type": "string"}, "latitude": {"type": "number"}, "longitude": {"type": "number"}}},
        "RegisterRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "handle": {"type": "string"}, "name": {"type": "string"}}},
        "LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "RefreshTokenRequest": {"type": "object", "properties": {"refresh_token": {"type": "string"}}},
        "UpdateAccountRequest": {"type": "object", "properties": {"handle": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"}, "push_token": {"type": "string"}, "shop_owner": {"type": "boolean"}, "space_renter": {"type": "boolean"}}},
        "ShopRequest": {"type": "object", "properties": {"name": {"type": "string"}, "phone": {"type": "string"}, "email": {"type": "string"}, "website": {"type": "string"}, "address": {"$ref": "#/definitions/Location"}, "opening_hours": {"type": "array", "items": {"$ref": "#/definitions/OpeningHours"}}, "game_collection": {"type": "array", "items": {"type": "object", "properties": {"game_id": {"type": "string"}, "quantity": {"type": "integer"}}}}}},
        "SpaceRenterRequest": {"type": "object", "properties": {"name": {"type": "string"}, "phone": {"type": "string"}, "email": {"type": "string"}, "website": {"type": "string"}, "address": {"$ref": "#/definitions/Location"}, "opening_hours": {"type": "array", "items": {"$ref": "#/definitions/OpeningHours"}}, "spaces": {"type": "array", "items": {"type": "object", "properties": {"seats": {"type": "integer"}, "cost_per_hour": {"type": "number"}}}}}},
        "CreateRentalRequest": {"type": "object", "properties": {"space_renter_id": {"type": "string"}, "space_index": {"type": "integer"}, "start_date": {"type": "string", "example": "2026-03-02"}, "start_time": {"type": "string", "example": "10:00"}, "end_date": {"type": "string"}, "end_time": {"type": "string"}, "notes": {"type": "string"}}},
        "CompatibilityRequest": {"type": "object", "properties": {"rental_id": {"type": "string"}, "date": {"type": "string"}, "time": {"type": "string"}}},
        "DiscussionRequest": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}}},
        "ParticipantRequest": {"type": "object", "properties": {"account_id": {"type": "string"}}},
        "MessageRequest": {"type": "object", "properties": {"content": {"type": "string"}}},
        "SessionRequest": {"type": "object", "properties": {"name": {"type": "string"}, "game_id": {"type": "string"}, "date": {"type": "string", "format": "date-time"}, "location": {"$ref": "#/definitions/Location"}, "participants": {"type": "array", "items": {"type": "string"}}, "rental_id": {"type": "string"}}},
        "SendNotificationRequest": {"type": "object", "properties": {"receiver_id": {"type": "string"}, "type": {"type": "string", "enum": ["JOIN_DISCUSSION", "JOIN_SESSION"]}, "target_id": {"type": "string"}}},
        "RentalReportRequest": {"type": "object", "properties": {"format": {"type": "string", "enum": ["csv", "pdf"]}}},
        "Pagination": {"type": "object", "properties": {"page": {"type": "integer"}, "page_size": {"type": "integer"}, "total_count": {"type": "integer"}}},
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}}},
        "ResponseEnvelope": {"type": "object", "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "pagination": {"$ref": "#/definitions/Pagination"}, "meta": {"type": "object"}}}
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
