package tools

import (
	"fmt"

	"github.com/brandon/mcp-mailstore/internal/storage"
	"github.com/brandon/mcp-mailstore/pkg/types"
)

// folderInfo is the tool view of a folder. Counts are only present when the
// query produced them.
type folderInfo struct {
	types.Folder
	TopGroup     bool              `json:"top_group"`
	Integrate    bool              `json:"integrate"`
	SyncClass    types.FolderClass `json:"sync_class"`
	DisplayClass types.FolderClass `json:"display_class"`
	NotifyClass  types.FolderClass `json:"notify_class"`
	PushClass    types.FolderClass `json:"push_class"`
	MessageCount *int              `json:"message_count,omitempty"`
	UnreadCount  *int              `json:"unread_count,omitempty"`
}

func toFolderInfo(details types.FolderDetails) folderInfo {
	return folderInfo{
		Folder:       details.Folder,
		TopGroup:     details.IsInTopGroup,
		Integrate:    details.IsIntegrate,
		SyncClass:    details.SyncClass,
		DisplayClass: details.DisplayClass,
		NotifyClass:  details.NotifyClass,
		PushClass:    details.PushClass,
	}
}

// toDisplayFolderInfo keeps the unread count of a display folder row
func toDisplayFolderInfo(details types.FolderDetails) folderInfo {
	info := toFolderInfo(details)
	unread := details.MessageCount
	info.UnreadCount = &unread
	return info
}

var displayModes = map[string]types.FolderMode{
	string(types.FolderModeAll):                 types.FolderModeAll,
	string(types.FolderModeFirstClass):          types.FolderModeFirstClass,
	string(types.FolderModeFirstAndSecondClass): types.FolderModeFirstAndSecondClass,
	string(types.FolderModeNotSecondClass):      types.FolderModeNotSecondClass,
}

// ListFoldersTool lists the folders of an account
type ListFoldersTool struct {
	toolBase
}

// Name returns the tool name
func (t *ListFoldersTool) Name() string {
	return "list_folders"
}

// Description returns the tool description
func (t *ListFoldersTool) Description() string {
	return "List folders of an account. With display_mode, only visible folders are returned together with their unread message count"
}

// InputSchema returns the JSON schema for tool inputs
func (t *ListFoldersTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_uuid": accountProperty(),
			"display_mode": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"ALL", "FIRST_CLASS", "FIRST_AND_SECOND_CLASS", "NOT_SECOND_CLASS"},
				"description": "Optional: filter by display class and include unread counts",
			},
			"outbox_folder_id": map[string]interface{}{
				"type":        "integer",
				"description": "Optional: outbox folder, all of its messages are counted",
			},
			"exclude_local_only": map[string]interface{}{
				"type":        "boolean",
				"description": "Optional: leave out local-only folders (ignored with display_mode)",
			},
		},
		"required": []string{"account_uuid"},
	}
}

// Execute executes the tool
func (t *ListFoldersTool) Execute(params map[string]interface{}) (interface{}, error) {
	_, store, err := t.messageStore(params)
	if err != nil {
		return nil, err
	}

	modeName, err := stringParam(params, "display_mode", false)
	if err != nil {
		return nil, err
	}

	if modeName == "" {
		excludeLocalOnly, _ := boolParam(params, "exclude_local_only")
		folders, err := store.GetFolders(excludeLocalOnly)
		if err != nil {
			return nil, fmt.Errorf("failed to list folders: %w", err)
		}
		return storage.MapFolders(folders, toFolderInfo), nil
	}

	mode, ok := displayModes[modeName]
	if !ok {
		return nil, fmt.Errorf("invalid display_mode: %s", modeName)
	}

	var outboxFolderID *int64
	id, ok, err := int64Param(params, "outbox_folder_id")
	if err != nil {
		return nil, err
	}
	if ok {
		outboxFolderID = &id
	}

	folders, err := store.GetDisplayFolders(mode, outboxFolderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list display folders: %w", err)
	}
	return storage.MapFolders(folders, toDisplayFolderInfo), nil
}

// GetFolderTool returns one folder by id or server id
type GetFolderTool struct {
	toolBase
}

// Name returns the tool name
func (t *GetFolderTool) Name() string {
	return "get_folder"
}

// Description returns the tool description
func (t *GetFolderTool) Description() string {
	return "Get a folder with its settings and message counts, by folder_id or server_id"
}

// InputSchema returns the JSON schema for tool inputs
func (t *GetFolderTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_uuid": accountProperty(),
			"folder_id":    folderIDProperty(),
			"server_id": map[string]interface{}{
				"type":        "string",
				"description": "Folder identifier on the mail server",
			},
		},
		"required": []string{"account_uuid"},
	}
}

// Execute executes the tool
func (t *GetFolderTool) Execute(params map[string]interface{}) (interface{}, error) {
	_, store, err := t.messageStore(params)
	if err != nil {
		return nil, err
	}

	folderID, ok, err := int64Param(params, "folder_id")
	if err != nil {
		return nil, err
	}
	if !ok {
		serverID, err := stringParam(params, "server_id", false)
		if err != nil {
			return nil, err
		}
		if serverID == "" {
			return nil, fmt.Errorf("folder_id or server_id is required")
		}
		folderID, ok, err = store.GetFolderID(serverID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up folder: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("folder not found: %s", serverID)
		}
	}

	details, err := store.GetFolder(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	info, ok := storage.MapFolder(details, toFolderInfo)
	if !ok {
		return nil, fmt.Errorf("folder not found: %d", folderID)
	}

	messageCount, err := store.GetMessageCount(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}
	unreadCount, err := store.GetUnreadMessageCount(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}

	info.MessageCount = &messageCount
	info.UnreadCount = &unreadCount
	return info, nil
}
