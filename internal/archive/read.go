package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/stepfile"
)

// FileInfo describes an archived file.
type FileInfo struct {
	ID      int64
	Name    string
	Digest  string
	Schema  string
	Records int
}

// RecordRow is one archived data line.
type RecordRow struct {
	FileID   int64
	ID       ir.ID
	Keyword  string
	TypeName string
	Line     string
	Digest   string
}

// RefRow is one archived reference.
type RefRow struct {
	Source ir.ID
	Field  string
	Target ir.ID
}

// Files lists archived files in archive order.
func (a *Archive) Files(ctx context.Context) ([]FileInfo, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, name, digest, schema_name, record_count
		FROM files
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	var files []FileInfo
	for rows.Next() {
		var fi FileInfo
		if err := rows.Scan(&fi.ID, &fi.Name, &fi.Digest, &fi.Schema, &fi.Records); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, fi)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}
	return files, nil
}

// ReadFile reassembles the text of an archived file.
func (a *Archive) ReadFile(ctx context.Context, fileID int64) (string, error) {
	var preamble string
	err := a.db.QueryRowContext(ctx, `SELECT preamble FROM files WHERE id = ?`, fileID).Scan(&preamble)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("read file %d: %w", fileID, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read file %d: %w", fileID, err)
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT line FROM records
		WHERE file_id = ?
		ORDER BY record_id ASC
	`, fileID)
	if err != nil {
		return "", fmt.Errorf("read file %d: %w", fileID, err)
	}
	defer rows.Close()

	var sb strings.Builder
	sb.WriteString(preamble)
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return "", fmt.Errorf("read file %d: %w", fileID, err)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("read file %d: %w", fileID, err)
	}
	sb.WriteString(stepfile.Trailer)
	return sb.String(), nil
}

// RecordsByKeyword returns the records of a file written with keyword,
// in identifier order.
func (a *Archive) RecordsByKeyword(ctx context.Context, fileID int64, keyword string) ([]RecordRow, error) {
	return a.queryRecords(ctx, `
		SELECT file_id, record_id, keyword, type_name, line, digest
		FROM records
		WHERE file_id = ? AND keyword = ?
		ORDER BY record_id ASC
	`, fileID, keyword)
}

// RecordsByDigest returns every archived record with the given content
// digest, across files.
func (a *Archive) RecordsByDigest(ctx context.Context, digest string) ([]RecordRow, error) {
	return a.queryRecords(ctx, `
		SELECT file_id, record_id, keyword, type_name, line, digest
		FROM records
		WHERE digest = ?
		ORDER BY file_id ASC, record_id ASC
	`, digest)
}

func (a *Archive) queryRecords(ctx context.Context, query string, args ...any) ([]RecordRow, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []RecordRow
	for rows.Next() {
		var r RecordRow
		var id int64
		if err := rows.Scan(&r.FileID, &id, &r.Keyword, &r.TypeName, &r.Line, &r.Digest); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.ID = ir.ID(id)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// ReferencesTo returns the references of a file that point at target,
// ordered by source record and field position.
func (a *Archive) ReferencesTo(ctx context.Context, fileID int64, target ir.ID) ([]RefRow, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT source_id, field, target_id
		FROM refs
		WHERE file_id = ? AND target_id = ?
		ORDER BY source_id ASC, position ASC
	`, fileID, int64(target))
	if err != nil {
		return nil, fmt.Errorf("query references: %w", err)
	}
	defer rows.Close()

	var out []RefRow
	for rows.Next() {
		var source, tgt int64
		var r RefRow
		if err := rows.Scan(&source, &r.Field, &tgt); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		r.Source = ir.ID(source)
		r.Target = ir.ID(tgt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate references: %w", err)
	}
	return out, nil
}
