package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/brandon/mcp-mailstore/pkg/types"
)

// RetrieveFolderOperations reads folders under shared access
type RetrieveFolderOperations struct {
	db *LockableDatabase
}

// NewRetrieveFolderOperations creates folder read operations over db
func NewRetrieveFolderOperations(db *LockableDatabase) *RetrieveFolderOperations {
	return &RetrieveFolderOperations{db: db}
}

// GetFolder returns the folder with the given id, or nil if there is none
func (o *RetrieveFolderOperations) GetFolder(folderID int64) (*types.FolderDetails, error) {
	var result *types.FolderDetails
	err := o.db.Execute(false, func(q Querier) error {
		query := "SELECT " + folderSelect() + " FROM folders WHERE id = ?"
		details, err := scanFolder(q.QueryRow(query, folderID))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get folder: %w", err)
		}
		result = &details
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetFolders lists folders ordered by id, optionally leaving out local-only folders
func (o *RetrieveFolderOperations) GetFolders(excludeLocalOnly bool) ([]types.FolderDetails, error) {
	query := "SELECT " + folderSelect() + " FROM folders"
	if excludeLocalOnly {
		query += " WHERE local_only = 0"
	}
	query += " ORDER BY id"

	var folders []types.FolderDetails
	err := o.db.Execute(false, func(q Querier) error {
		var err error
		folders, err = queryFolders(q, query)
		return err
	})
	if err != nil {
		return nil, err
	}
	return folders, nil
}

// GetDisplayFolders lists the folders visible in the given display mode along
// with their unread message count. Every non-empty, non-deleted message of the
// outbox counts, read or not. A nil outboxFolderID means there is no outbox.
//
// It panics for FolderModeNone, which callers must filter out.
func (o *RetrieveFolderOperations) GetDisplayFolders(displayMode types.FolderMode, outboxFolderID *int64) ([]types.FolderDetails, error) {
	selection := displayModeSelection(displayMode)

	var outboxID int64
	if outboxFolderID != nil {
		outboxID = *outboxFolderID
	}

	query := `
		SELECT ` + folderSelect() + `, (
			SELECT COUNT(messages.id)
			FROM messages
			WHERE messages.folder_id = folders.id
			  AND messages.empty = 0 AND messages.deleted = 0
			  AND (messages.read = 0 OR folders.id = ?)
		)
		FROM folders
		` + selection + `
		ORDER BY folders.id`

	var folders []types.FolderDetails
	err := o.db.Execute(false, func(q Querier) error {
		rows, err := q.Query(query, outboxID)
		if err != nil {
			return fmt.Errorf("failed to query display folders: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var messageCount int
			details, err := scanFolder(rows, &messageCount)
			if err != nil {
				return fmt.Errorf("failed to scan folder: %w", err)
			}
			details.MessageCount = messageCount
			folders = append(folders, details)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return folders, nil
}

func displayModeSelection(displayMode types.FolderMode) string {
	switch displayMode {
	case types.FolderModeAll:
		return ""
	case types.FolderModeFirstClass:
		return "WHERE display_class = '" + string(types.FolderClassFirst) + "'"
	case types.FolderModeFirstAndSecondClass:
		return "WHERE display_class IN ('" + string(types.FolderClassFirst) + "', '" + string(types.FolderClassSecond) + "')"
	case types.FolderModeNotSecondClass:
		return "WHERE display_class != '" + string(types.FolderClassSecond) + "'"
	default:
		panic(fmt.Sprintf("invalid folder display mode: %s", displayMode))
	}
}

// GetFolderID looks up a folder id by server id
func (o *RetrieveFolderOperations) GetFolderID(serverID string) (int64, bool, error) {
	var (
		id    int64
		found bool
	)
	err := o.db.Execute(false, func(q Querier) error {
		err := q.QueryRow("SELECT id FROM folders WHERE server_id = ?", serverID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get folder id: %w", err)
		}
		found = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return id, found, nil
}

// GetMessageCount counts the non-empty, non-deleted messages of a folder
func (o *RetrieveFolderOperations) GetMessageCount(folderID int64) (int, error) {
	return o.countMessages("folder_id = ? AND empty = 0 AND deleted = 0", folderID)
}

// GetUnreadMessageCount counts the unread, non-empty, non-deleted messages of a folder
func (o *RetrieveFolderOperations) GetUnreadMessageCount(folderID int64) (int, error) {
	return o.countMessages("folder_id = ? AND empty = 0 AND deleted = 0 AND read = 0", folderID)
}

func (o *RetrieveFolderOperations) countMessages(where string, folderID int64) (int, error) {
	var count int
	err := o.db.Execute(false, func(q Querier) error {
		if err := q.QueryRow("SELECT COUNT(id) FROM messages WHERE "+where, folderID).Scan(&count); err != nil {
			return fmt.Errorf("failed to count messages: %w", err)
		}
		return nil
	})
	return count, err
}

func queryFolders(q Querier, query string, args ...interface{}) ([]types.FolderDetails, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	var folders []types.FolderDetails
	for rows.Next() {
		details, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, details)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read folders: %w", err)
	}
	return folders, nil
}
