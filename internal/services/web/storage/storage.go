package storage

import (
	"context"
	"errors"
	"strings"
	"time"
)

// DefaultDocumentTitle is shown for documents saved without a title.
const DefaultDocumentTitle = "Untitled"

var (
	// ErrNotFound reports a missing group or document.
	ErrNotFound = errors.New("record not found")
	// ErrNameTaken reports a group name already used by another group.
	ErrNameTaken = errors.New("group name already in use")
	// ErrAlreadyTemplate reports an attempt to templatize a template.
	ErrAlreadyTemplate = errors.New("document is already a template")
)

// Group is a named set of members that share collections.
type Group struct {
	ID          string
	Name        string
	MemberCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Document is one editable document. Templates are documents flagged as
// reusable starting points.
type Document struct {
	ID               string
	Title            string
	Text             string
	CollectionID     string
	Template         bool
	TemplateSourceID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TitleWithDefault returns the title, or DefaultDocumentTitle when blank.
func (d Document) TitleWithDefault() string {
	if title := strings.TrimSpace(d.Title); title != "" {
		return title
	}
	return DefaultDocumentTitle
}

// GroupStore persists groups.
type GroupStore interface {
	ListGroups(ctx context.Context) ([]Group, error)
	GetGroup(ctx context.Context, groupID string) (Group, error)
	PutGroup(ctx context.Context, group Group) error
	// RenameGroup applies a new name atomically and returns the updated group.
	RenameGroup(ctx context.Context, groupID string, name string) (Group, error)
}

// DocumentStore persists documents and templates.
type DocumentStore interface {
	ListDocuments(ctx context.Context) ([]Document, error)
	GetDocument(ctx context.Context, documentID string) (Document, error)
	PutDocument(ctx context.Context, document Document) error
	// TemplatizeDocument copies a document into a new template. The source
	// document is left untouched.
	TemplatizeDocument(ctx context.Context, documentID string) (Document, error)
}

// Store is the full persistence contract used by the web service.
type Store interface {
	GroupStore
	DocumentStore
	Close() error
}
