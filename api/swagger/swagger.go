package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Tutor Match API",
        "description": "Tutor availability matching and capacity service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Matching", "description": "Tutor eligibility search for contracts"},
        {"name": "Availability", "description": "Tutor availability slots and booking capacity"}
    ],
    "paths": {
        "/contracts/{id}/available-tutors": {
            "get": {
                "tags": ["Matching"],
                "summary": "List tutors able to take a contract",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "sortByRating", "in": "query", "type": "boolean"},
                    {"name": "sortByDistance", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Contract not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/matching/preview": {
            "post": {
                "tags": ["Matching"],
                "summary": "Preview matching for an unsaved contract schedule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PreviewMatchRequest"}},
                    {"name": "sortByRating", "in": "query", "type": "boolean"},
                    {"name": "sortByDistance", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid schedule", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutors/{id}/availability-slots": {
            "get": {
                "tags": ["Availability"],
                "summary": "List a tutor's active availability slots",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Availability"],
                "summary": "Declare a new availability slot",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AvailabilitySlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Overlapping slot", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutors/{id}/availability-slots/{slotId}": {
            "put": {
                "tags": ["Availability"],
                "summary": "Edit an availability slot",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "slotId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AvailabilitySlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Overlapping slot", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability-slots/{id}/bookings": {
            "post": {
                "tags": ["Availability"],
                "summary": "Adjust a slot's booking counter",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdjustBookingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot full or concurrent update", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "SchedulePayload": {
            "type": "object",
            "required": ["days", "start_time", "end_time", "effective_from"],
            "properties": {
                "days": {"type": "array", "items": {"type": "string", "enum": ["SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"]}},
                "start_time": {"type": "string", "example": "09:00"},
                "end_time": {"type": "string", "example": "10:30"},
                "effective_from": {"type": "string", "example": "2024-01-01"},
                "effective_until": {"type": "string", "example": "2024-06-30"}
            }
        },
        "PreviewMatchRequest": {
            "type": "object",
            "required": ["schedule", "mode", "child_id"],
            "properties": {
                "schedule": {"$ref": "#/definitions/SchedulePayload"},
                "mode": {"type": "string", "enum": ["online", "offline"]},
                "child_id": {"type": "string"},
                "center_id": {"type": "string"}
            }
        },
        "AvailabilitySlotRequest": {
            "type": "object",
            "required": ["schedule", "max_bookings"],
            "properties": {
                "schedule": {"$ref": "#/definitions/SchedulePayload"},
                "can_teach_online": {"type": "boolean"},
                "can_teach_offline": {"type": "boolean"},
                "max_bookings": {"type": "integer", "minimum": 1}
            }
        },
        "AdjustBookingRequest": {
            "type": "object",
            "required": ["delta"],
            "properties": {
                "delta": {"type": "integer", "enum": [-1, 1]}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
