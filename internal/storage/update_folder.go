package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/emersion/go-imap"

	"github.com/brandon/mcp-mailstore/pkg/types"
)

type folderColumn string

const (
	columnTopGroup     folderColumn = "top_group"
	columnIntegrate    folderColumn = "integrate"
	columnPollClass    folderColumn = "poll_class"
	columnDisplayClass folderColumn = "display_class"
	columnNotifyClass  folderColumn = "notify_class"
	columnPushClass    folderColumn = "push_class"
)

// UpdateFolderOperations changes folder rows under exclusive access.
// Writes are unconditional; the last writer of a column wins.
type UpdateFolderOperations struct {
	db *LockableDatabase
}

// NewUpdateFolderOperations creates folder write operations over db
func NewUpdateFolderOperations(db *LockableDatabase) *UpdateFolderOperations {
	return &UpdateFolderOperations{db: db}
}

// ChangeFolder renames and retypes the folder with the given server id.
// An unknown server id changes nothing.
func (o *UpdateFolderOperations) ChangeFolder(serverID, name string, folderType types.FolderType) error {
	return o.db.Execute(true, func(q Querier) error {
		_, err := q.Exec("UPDATE folders SET name = ?, type = ? WHERE server_id = ?",
			name, toDatabaseFolderType(folderType), serverID)
		if err != nil {
			return fmt.Errorf("failed to change folder: %w", err)
		}
		return nil
	})
}

// ChangeFolderFromMailbox applies a remote LIST entry to the matching folder
func (o *UpdateFolderOperations) ChangeFolderFromMailbox(info *imap.MailboxInfo) error {
	return o.ChangeFolder(info.Name, info.Name, RemoteFolderType(info))
}

// UpdateFolderSettings writes the top group, unified inbox and class settings in one statement
func (o *UpdateFolderOperations) UpdateFolderSettings(details types.FolderDetails) error {
	if err := validateFolderClasses(details); err != nil {
		return err
	}

	return o.db.Execute(true, func(q Querier) error {
		return writeFolderSettings(q, details)
	})
}

// ModifyFolderSettings reads the folder, lets modify change its settings and
// writes them back, all in one exclusive unit. It returns nil if there is no
// folder with that id. An error from modify aborts without writing.
func (o *UpdateFolderOperations) ModifyFolderSettings(folderID int64, modify func(details *types.FolderDetails) error) (*types.FolderDetails, error) {
	var result *types.FolderDetails
	err := o.db.Execute(true, func(q Querier) error {
		query := "SELECT " + folderSelect() + " FROM folders WHERE id = ?"
		details, err := scanFolder(q.QueryRow(query, folderID))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get folder: %w", err)
		}

		if err := modify(&details); err != nil {
			return err
		}
		details.Folder.ID = folderID
		if err := validateFolderClasses(details); err != nil {
			return err
		}
		if err := writeFolderSettings(q, details); err != nil {
			return err
		}
		result = &details
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func validateFolderClasses(details types.FolderDetails) error {
	classes := []types.FolderClass{details.SyncClass, details.DisplayClass, details.NotifyClass, details.PushClass}
	for _, class := range classes {
		if !class.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidFolderClass, class)
		}
	}
	return nil
}

func writeFolderSettings(q Querier, details types.FolderDetails) error {
	_, err := q.Exec(`
		UPDATE folders SET
			top_group = ?,
			integrate = ?,
			poll_class = ?,
			display_class = ?,
			notify_class = ?,
			push_class = ?
		WHERE id = ?`,
		boolToInt(details.IsInTopGroup),
		boolToInt(details.IsIntegrate),
		string(details.SyncClass),
		string(details.DisplayClass),
		string(details.NotifyClass),
		string(details.PushClass),
		details.Folder.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update folder settings: %w", err)
	}
	return nil
}

// SetIncludeInUnifiedInbox sets whether the folder is part of the unified inbox
func (o *UpdateFolderOperations) SetIncludeInUnifiedInbox(folderID int64, include bool) error {
	return o.updateFolderColumn(folderID, columnIntegrate, boolToInt(include))
}

// SetInTopGroup sets whether the folder is listed in the top group
func (o *UpdateFolderOperations) SetInTopGroup(folderID int64, inTopGroup bool) error {
	return o.updateFolderColumn(folderID, columnTopGroup, boolToInt(inTopGroup))
}

func (o *UpdateFolderOperations) SetDisplayClass(folderID int64, class types.FolderClass) error {
	return o.setFolderClass(folderID, columnDisplayClass, class)
}

func (o *UpdateFolderOperations) SetSyncClass(folderID int64, class types.FolderClass) error {
	return o.setFolderClass(folderID, columnPollClass, class)
}

func (o *UpdateFolderOperations) SetNotificationClass(folderID int64, class types.FolderClass) error {
	return o.setFolderClass(folderID, columnNotifyClass, class)
}

func (o *UpdateFolderOperations) SetPushClass(folderID int64, class types.FolderClass) error {
	return o.setFolderClass(folderID, columnPushClass, class)
}

func (o *UpdateFolderOperations) setFolderClass(folderID int64, column folderColumn, class types.FolderClass) error {
	if !class.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFolderClass, class)
	}
	return o.updateFolderColumn(folderID, column, string(class))
}

func (o *UpdateFolderOperations) updateFolderColumn(folderID int64, column folderColumn, value interface{}) error {
	return o.db.Execute(true, func(q Querier) error {
		query := fmt.Sprintf("UPDATE folders SET %s = ? WHERE id = ?", column)
		if _, err := q.Exec(query, value, folderID); err != nil {
			return fmt.Errorf("failed to update folder %s: %w", column, err)
		}
		return nil
	})
}
