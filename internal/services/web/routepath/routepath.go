// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root      = "/"
	Health    = "/up"
	AppPrefix = "/app/"

	AppGroups              = "/app/groups"
	GroupsPrefix           = "/app/groups/"
	AppGroupPattern        = GroupsPrefix + "{groupID}"
	AppGroupEditPattern    = GroupsPrefix + "{groupID}/edit"
	AppGroupRestPattern    = GroupsPrefix + "{groupID}/{rest...}"
	AppDocuments           = "/app/documents"
	DocumentsPrefix        = "/app/documents/"
	AppDocumentPattern     = DocumentsPrefix + "{documentID}"
	AppDocumentTemplatize  = DocumentsPrefix + "{documentID}/templatize"
	AppDocumentRestPattern = DocumentsPrefix + "{documentID}/{rest...}"
)

// AppGroup returns the group detail route.
func AppGroup(groupID string) string {
	return GroupsPrefix + escapeSegment(groupID)
}

// AppGroupEdit returns the group rename route.
func AppGroupEdit(groupID string) string {
	return AppGroup(groupID) + "/edit"
}

// AppDocument returns the canonical document route.
func AppDocument(documentID string) string {
	return DocumentsPrefix + escapeSegment(documentID)
}

// AppDocumentTemplatizePath returns the route that turns a document into a
// template.
func AppDocumentTemplatizePath(documentID string) string {
	return AppDocument(documentID) + "/templatize"
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
