package models

type RbacFunc func(userID string, role UserRole, path string) bool
