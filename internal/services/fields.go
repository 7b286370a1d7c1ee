package services

import (
	"time"

	"github.com/desertthunder/tdx/internal/docstore"
	"github.com/desertthunder/tdx/internal/models"
)

// Field-map decoding for documents read back from the store. JSON decoding
// yields float64 for numbers and omits cleared fields, so everything here is
// tolerant of both absence and numeric form.

func fieldString(f docstore.Fields, key string) string {
	if s, ok := f[key].(string); ok {
		return s
	}
	return ""
}

func fieldInt(f docstore.Fields, key string) int64 {
	switch n := f[key].(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

func fieldTime(f docstore.Fields, key string) time.Time {
	if t, ok := docstore.TimeAt(f[key]); ok {
		return t
	}
	return time.Time{}
}

func fieldTimePtr(f docstore.Fields, key string) *time.Time {
	if t, ok := docstore.TimeAt(f[key]); ok {
		return &t
	}
	return nil
}

func listFromFields(f docstore.Fields) *models.List {
	return &models.List{
		ID:             fieldString(f, "id"),
		UserID:         fieldString(f, "userId"),
		Name:           fieldString(f, "name"),
		Description:    fieldString(f, "description"),
		TodoCount:      fieldInt(f, "todoCount"),
		CompletedCount: fieldInt(f, "completedCount"),
		CreatedAt:      fieldTime(f, "createdAt"),
		UpdatedAt:      fieldTime(f, "updatedAt"),
	}
}

func todoFromFields(f docstore.Fields) *models.Todo {
	return &models.Todo{
		ID:          fieldString(f, "id"),
		ListID:      fieldString(f, "listId"),
		UserID:      fieldString(f, "userId"),
		Title:       fieldString(f, "title"),
		Description: fieldString(f, "description"),
		Status:      models.Status(fieldString(f, "status")),
		Priority:    models.Priority(fieldString(f, "priority")),
		DueDate:     fieldTimePtr(f, "dueDate"),
		CompletedAt: fieldTimePtr(f, "completedAt"),
		CreatedAt:   fieldTime(f, "createdAt"),
		UpdatedAt:   fieldTime(f, "updatedAt"),
	}
}

func userFromFields(f docstore.Fields) *models.User {
	return &models.User{
		ID:        fieldString(f, "uid"),
		Name:      fieldString(f, "name"),
		Email:     fieldString(f, "email"),
		CreatedAt: fieldTime(f, "createdAt"),
		UpdatedAt: fieldTime(f, "updatedAt"),
	}
}
