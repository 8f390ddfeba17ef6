// Package types defines the Board and TaskTable interfaces, the Task entity,
// its lifecycle rules, list queries, preferences, and the tagged error type
// shared by the kanban storage backend and its callers.
package types
