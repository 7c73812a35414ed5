package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/model"
	"github.com/roach88/stepgraph/internal/stepfile"
)

// WriteFile archives f under name. A file whose text is already archived
// is not stored again; its existing id is returned with inserted false.
func (a *Archive) WriteFile(ctx context.Context, name string, f *stepfile.File) (fileID int64, inserted bool, err error) {
	text := f.String()
	digest := ir.FileDigest(text)

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("write file: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO files (digest, name, schema_name, preamble, record_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(digest) DO NOTHING
	`,
		digest,
		name,
		schemaName(f.Header),
		stepfile.Preamble(f.Header),
		f.Data.Len(),
	)
	if err != nil {
		return 0, false, fmt.Errorf("write file: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return 0, false, fmt.Errorf("write file: %w", err)
	} else if n == 0 {
		if err := tx.QueryRowContext(ctx, `SELECT id FROM files WHERE digest = ?`, digest).Scan(&fileID); err != nil {
			return 0, false, fmt.Errorf("write file: %w", err)
		}
		slog.Info("file already archived", "name", name, "file_id", fileID, "digest", digest)
		return fileID, false, nil
	}
	fileID, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("write file: %w", err)
	}

	if err := writeRecords(ctx, tx, fileID, f.Data); err != nil {
		return 0, false, fmt.Errorf("write file: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("write file: %w", err)
	}

	slog.Info("file archived", "name", name, "file_id", fileID, "records", f.Data.Len())
	return fileID, true, nil
}

func writeRecords(ctx context.Context, tx *sql.Tx, fileID int64, s *model.Store) error {
	recStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (file_id, record_id, keyword, type_name, line, digest)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer recStmt.Close()

	refStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO refs (file_id, source_id, position, field, target_id)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer refStmt.Close()

	for id, rec := range s.All() {
		if _, err := recStmt.ExecContext(ctx,
			fileID,
			int64(id),
			model.Keyword(rec),
			model.TypeName(rec),
			stepfile.InstanceText(id, rec),
			ir.RecordDigest(model.Format(rec)),
		); err != nil {
			return fmt.Errorf("record %s: %w", id, err)
		}
		for pos, ref := range model.References(rec) {
			if _, err := refStmt.ExecContext(ctx, fileID, int64(id), pos, ref.Field, int64(ref.ID)); err != nil {
				return fmt.Errorf("record %s: %w", id, err)
			}
		}
	}
	return nil
}

// DeleteFile removes an archived file with its records and references.
func (a *Archive) DeleteFile(ctx context.Context, fileID int64) error {
	res, err := a.db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, fileID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete file %d: %w", fileID, ErrNotFound)
	}
	return nil
}

// ErrNotFound is returned when an archived file does not exist.
var ErrNotFound = errors.New("not found")

func schemaName(h stepfile.Header) string {
	names := make([]string, len(h.Schema.Schemas))
	for i, s := range h.Schema.Schemas {
		names[i] = string(s)
	}
	return strings.Join(names, ",")
}
