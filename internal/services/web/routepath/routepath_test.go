package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Health != "/up" {
		t.Fatalf("Health = %q", Health)
	}
	if GroupsPrefix != AppGroups+"/" {
		t.Fatalf("GroupsPrefix = %q", GroupsPrefix)
	}
	if DocumentsPrefix != AppDocuments+"/" {
		t.Fatalf("DocumentsPrefix = %q", DocumentsPrefix)
	}
}

func TestEntityRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "group", got: AppGroup("g-1"), want: "/app/groups/g-1"},
		{name: "group edit", got: AppGroupEdit("g-1"), want: "/app/groups/g-1/edit"},
		{name: "document", got: AppDocument("doc-1"), want: "/app/documents/doc-1"},
		{name: "templatize", got: AppDocumentTemplatizePath("doc-1"), want: "/app/documents/doc-1/templatize"},
		{name: "trimmed", got: AppDocument("  doc-1 "), want: "/app/documents/doc-1"},
		{name: "escaped", got: AppGroup("a/b c"), want: "/app/groups/a%2Fb%20c"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}
