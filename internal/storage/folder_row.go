package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/brandon/mcp-mailstore/pkg/types"
)

// ErrInvalidFolderClass is returned when a stored class is not one of the known values
var ErrInvalidFolderClass = errors.New("invalid folder class")

// folderColumns is the projection read by every folder query. scanFolder
// decodes in the same order; change both together.
var folderColumns = []string{
	"id",
	"name",
	"type",
	"server_id",
	"local_only",
	"top_group",
	"integrate",
	"poll_class",
	"display_class",
	"notify_class",
	"push_class",
}

// folderSelect returns the projection qualified with the folders table
func folderSelect() string {
	qualified := make([]string, len(folderColumns))
	for i, column := range folderColumns {
		qualified[i] = "folders." + column
	}
	return strings.Join(qualified, ", ")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanFolder decodes one row of folderColumns, followed by any extra destinations
func scanFolder(row rowScanner, extra ...interface{}) (types.FolderDetails, error) {
	var (
		details                                       types.FolderDetails
		folderType                                    string
		serverID                                      sql.NullString
		localOnly, topGroup, integrate                int
		syncClass, displayClass, notifyClass, pushCls sql.NullString
	)

	dest := []interface{}{
		&details.Folder.ID,
		&details.Folder.Name,
		&folderType,
		&serverID,
		&localOnly,
		&topGroup,
		&integrate,
		&syncClass,
		&displayClass,
		&notifyClass,
		&pushCls,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return details, err
	}

	details.Folder.Type = fromDatabaseFolderType(folderType)
	details.Folder.ServerID = serverID.String
	details.Folder.IsLocalOnly = localOnly == 1
	details.IsInTopGroup = topGroup == 1
	details.IsIntegrate = integrate == 1

	var err error
	if details.SyncClass, err = parseFolderClass(syncClass); err != nil {
		return details, err
	}
	if details.DisplayClass, err = parseFolderClass(displayClass); err != nil {
		return details, err
	}
	if details.NotifyClass, err = parseFolderClass(notifyClass); err != nil {
		return details, err
	}
	if details.PushClass, err = parseFolderClass(pushCls); err != nil {
		return details, err
	}
	return details, nil
}

// parseFolderClass maps a NULL column to INHERITED
func parseFolderClass(value sql.NullString) (types.FolderClass, error) {
	if !value.Valid {
		return types.FolderClassInherited, nil
	}
	class := types.FolderClass(value.String)
	if !class.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFolderClass, value.String)
	}
	return class, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var folderTypeTokens = map[types.FolderType]string{
	types.FolderTypeRegular: "regular",
	types.FolderTypeInbox:   "inbox",
	types.FolderTypeOutbox:  "outbox",
	types.FolderTypeDrafts:  "drafts",
	types.FolderTypeSent:    "sent",
	types.FolderTypeTrash:   "trash",
	types.FolderTypeSpam:    "spam",
	types.FolderTypeArchive: "archive",
}

// toDatabaseFolderType returns the persisted token for a folder type
func toDatabaseFolderType(folderType types.FolderType) string {
	if token, ok := folderTypeTokens[folderType]; ok {
		return token
	}
	return folderTypeTokens[types.FolderTypeRegular]
}

func fromDatabaseFolderType(token string) types.FolderType {
	for folderType, t := range folderTypeTokens {
		if t == token {
			return folderType
		}
	}
	return types.FolderTypeRegular
}

// FolderMapper converts a folder row into a caller specific value
type FolderMapper[T any] func(types.FolderDetails) T

// MapFolder applies mapper to a single optional folder
func MapFolder[T any](details *types.FolderDetails, mapper FolderMapper[T]) (T, bool) {
	var zero T
	if details == nil {
		return zero, false
	}
	return mapper(*details), true
}

// MapFolders applies mapper to each folder, keeping order
func MapFolders[T any](folders []types.FolderDetails, mapper FolderMapper[T]) []T {
	result := make([]T, 0, len(folders))
	for _, folder := range folders {
		result = append(result, mapper(folder))
	}
	return result
}
