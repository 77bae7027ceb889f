package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/quillroom/internal/platform/id"
	sqlitemigrate "github.com/louisbranch/quillroom/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/louisbranch/quillroom/internal/services/web/storage"
	"github.com/louisbranch/quillroom/internal/services/web/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store provides SQLite-backed persistence for groups and documents.
type Store struct {
	sqlDB *sql.DB
	newID id.Generator
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the id source for created records.
func WithIDGenerator(gen id.Generator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens and migrates a SQLite store at path.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, newID: id.NewID, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	if _, err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ListGroups returns every group ordered by name.
func (s *Store) ListGroups(ctx context.Context) ([]webstorage.Group, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, member_count, created_at, updated_at
		 FROM user_groups
		 ORDER BY name_key, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []webstorage.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("list groups: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// GetGroup loads one group by id.
func (s *Store) GetGroup(ctx context.Context, groupID string) (webstorage.Group, error) {
	if err := s.ready(); err != nil {
		return webstorage.Group{}, err
	}
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return webstorage.Group{}, fmt.Errorf("group id is required")
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, member_count, created_at, updated_at
		 FROM user_groups
		 WHERE id = ?`,
		groupID,
	)
	group, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return webstorage.Group{}, webstorage.ErrNotFound
	}
	if err != nil {
		return webstorage.Group{}, fmt.Errorf("get group: %w", err)
	}
	return group, nil
}

// PutGroup inserts or replaces a group. A missing id is generated.
func (s *Store) PutGroup(ctx context.Context, group webstorage.Group) error {
	if err := s.ready(); err != nil {
		return err
	}
	group.Name = strings.TrimSpace(group.Name)
	if group.Name == "" {
		return fmt.Errorf("group name is required")
	}
	group.ID = strings.TrimSpace(group.ID)
	if group.ID == "" {
		generated, err := s.newID()
		if err != nil {
			return err
		}
		group.ID = generated
	}
	now := s.now().UTC()
	if group.CreatedAt.IsZero() {
		group.CreatedAt = now
	}
	if group.UpdatedAt.IsZero() {
		group.UpdatedAt = group.CreatedAt
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO user_groups (id, name, name_key, member_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    name = excluded.name,
		    name_key = excluded.name_key,
		    member_count = excluded.member_count,
		    updated_at = excluded.updated_at`,
		group.ID,
		group.Name,
		nameKey(group.Name),
		group.MemberCount,
		timeToUnixMillis(group.CreatedAt),
		timeToUnixMillis(group.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return webstorage.ErrNameTaken
	}
	if err != nil {
		return fmt.Errorf("put group: %w", err)
	}
	return nil
}

// RenameGroup updates the group name and returns the stored group.
func (s *Store) RenameGroup(ctx context.Context, groupID string, name string) (webstorage.Group, error) {
	if err := s.ready(); err != nil {
		return webstorage.Group{}, err
	}
	groupID = strings.TrimSpace(groupID)
	name = strings.TrimSpace(name)
	if groupID == "" {
		return webstorage.Group{}, fmt.Errorf("group id is required")
	}
	if name == "" {
		return webstorage.Group{}, fmt.Errorf("group name is required")
	}

	result, err := s.sqlDB.ExecContext(ctx,
		`UPDATE user_groups SET name = ?, name_key = ?, updated_at = ? WHERE id = ?`,
		name,
		nameKey(name),
		timeToUnixMillis(s.now().UTC()),
		groupID,
	)
	if isUniqueViolation(err) {
		return webstorage.Group{}, webstorage.ErrNameTaken
	}
	if err != nil {
		return webstorage.Group{}, fmt.Errorf("rename group: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return webstorage.Group{}, fmt.Errorf("rename group: %w", err)
	}
	if affected == 0 {
		return webstorage.Group{}, webstorage.ErrNotFound
	}
	return s.GetGroup(ctx, groupID)
}

// ListDocuments returns documents, newest first.
func (s *Store) ListDocuments(ctx context.Context) ([]webstorage.Document, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, title, text, collection_id, template, template_source_id, created_at, updated_at
		 FROM documents
		 ORDER BY updated_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var documents []webstorage.Document
	for rows.Next() {
		document, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		documents = append(documents, document)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return documents, nil
}

// GetDocument loads one document by id.
func (s *Store) GetDocument(ctx context.Context, documentID string) (webstorage.Document, error) {
	if err := s.ready(); err != nil {
		return webstorage.Document{}, err
	}
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return webstorage.Document{}, fmt.Errorf("document id is required")
	}
	return getDocument(ctx, s.sqlDB, documentID)
}

// PutDocument inserts or replaces a document. A missing id is generated.
func (s *Store) PutDocument(ctx context.Context, document webstorage.Document) error {
	if err := s.ready(); err != nil {
		return err
	}
	document.ID = strings.TrimSpace(document.ID)
	if document.ID == "" {
		generated, err := s.newID()
		if err != nil {
			return err
		}
		document.ID = generated
	}
	now := s.now().UTC()
	if document.CreatedAt.IsZero() {
		document.CreatedAt = now
	}
	if document.UpdatedAt.IsZero() {
		document.UpdatedAt = document.CreatedAt
	}
	if err := insertDocument(ctx, s.sqlDB, document, true); err != nil {
		return fmt.Errorf("put document: %w", err)
	}
	return nil
}

// TemplatizeDocument copies the source document into a new template inside
// one transaction.
func (s *Store) TemplatizeDocument(ctx context.Context, documentID string) (webstorage.Document, error) {
	if err := s.ready(); err != nil {
		return webstorage.Document{}, err
	}
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return webstorage.Document{}, fmt.Errorf("document id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return webstorage.Document{}, fmt.Errorf("templatize document: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	source, err := getDocument(ctx, tx, documentID)
	if err != nil {
		return webstorage.Document{}, err
	}
	if source.Template {
		return webstorage.Document{}, webstorage.ErrAlreadyTemplate
	}
	templateID, err := s.newID()
	if err != nil {
		return webstorage.Document{}, err
	}
	now := s.now().UTC()
	template := webstorage.Document{
		ID:               templateID,
		Title:            source.Title,
		Text:             source.Text,
		CollectionID:     source.CollectionID,
		Template:         true,
		TemplateSourceID: source.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := insertDocument(ctx, tx, template, false); err != nil {
		return webstorage.Document{}, fmt.Errorf("templatize document: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return webstorage.Document{}, fmt.Errorf("templatize document: commit: %w", err)
	}
	return template, nil
}

func (s *Store) ready() error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func getDocument(ctx context.Context, q execQuerier, documentID string) (webstorage.Document, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, title, text, collection_id, template, template_source_id, created_at, updated_at
		 FROM documents
		 WHERE id = ?`,
		documentID,
	)
	document, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return webstorage.Document{}, webstorage.ErrNotFound
	}
	if err != nil {
		return webstorage.Document{}, fmt.Errorf("get document: %w", err)
	}
	return document, nil
}

func insertDocument(ctx context.Context, q execQuerier, document webstorage.Document, upsert bool) error {
	query := `INSERT INTO documents (
	    id, title, text, collection_id, template, template_source_id, created_at, updated_at
	 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if upsert {
		query += `
	 ON CONFLICT(id) DO UPDATE SET
	    title = excluded.title,
	    text = excluded.text,
	    collection_id = excluded.collection_id,
	    template = excluded.template,
	    template_source_id = excluded.template_source_id,
	    updated_at = excluded.updated_at`
	}
	_, err := q.ExecContext(ctx, query,
		document.ID,
		document.Title,
		document.Text,
		strings.TrimSpace(document.CollectionID),
		boolToInt(document.Template),
		strings.TrimSpace(document.TemplateSourceID),
		timeToUnixMillis(document.CreatedAt),
		timeToUnixMillis(document.UpdatedAt),
	)
	return err
}

func scanGroup(row rowScanner) (webstorage.Group, error) {
	var group webstorage.Group
	var createdAt, updatedAt int64
	if err := row.Scan(&group.ID, &group.Name, &group.MemberCount, &createdAt, &updatedAt); err != nil {
		return webstorage.Group{}, err
	}
	group.CreatedAt = unixMillisToTime(createdAt)
	group.UpdatedAt = unixMillisToTime(updatedAt)
	return group, nil
}

func scanDocument(row rowScanner) (webstorage.Document, error) {
	var document webstorage.Document
	var template int64
	var createdAt, updatedAt int64
	if err := row.Scan(
		&document.ID,
		&document.Title,
		&document.Text,
		&document.CollectionID,
		&template,
		&document.TemplateSourceID,
		&createdAt,
		&updatedAt,
	); err != nil {
		return webstorage.Document{}, err
	}
	document.Template = template != 0
	document.CreatedAt = unixMillisToTime(createdAt)
	document.UpdatedAt = unixMillisToTime(updatedAt)
	return document, nil
}

// nameKey folds names for case-insensitive uniqueness. SQLite's lower() only
// folds ASCII, so the key is computed here.
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "user_groups.name_key")
}

var _ webstorage.Store = (*Store)(nil)

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value == 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}
