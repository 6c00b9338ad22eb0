package tools

import (
	"fmt"

	"github.com/emersion/go-imap"
	"github.com/sirupsen/logrus"

	"github.com/brandon/mcp-mailstore/internal/storage"
	"github.com/brandon/mcp-mailstore/pkg/types"
)

var folderTypes = map[string]types.FolderType{
	string(types.FolderTypeRegular): types.FolderTypeRegular,
	string(types.FolderTypeInbox):   types.FolderTypeInbox,
	string(types.FolderTypeOutbox):  types.FolderTypeOutbox,
	string(types.FolderTypeDrafts):  types.FolderTypeDrafts,
	string(types.FolderTypeSent):    types.FolderTypeSent,
	string(types.FolderTypeTrash):   types.FolderTypeTrash,
	string(types.FolderTypeSpam):    types.FolderTypeSpam,
	string(types.FolderTypeArchive): types.FolderTypeArchive,
}

// ChangeFolderTool renames and retypes a folder identified by its server id
type ChangeFolderTool struct {
	toolBase
}

func (t *ChangeFolderTool) Name() string {
	return "change_folder"
}

func (t *ChangeFolderTool) Description() string {
	return "Rename and retype a folder by server id. With attributes, the type is derived from IMAP special-use flags"
}

func (t *ChangeFolderTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_uuid": accountProperty(),
			"server_id": map[string]interface{}{
				"type":        "string",
				"description": "Folder identifier on the mail server",
			},
			"name": map[string]interface{}{
				"type":        "string",
				"description": "New display name (optional with attributes, defaults to server_id)",
			},
			"type": map[string]interface{}{
				"type": "string",
				"enum": []string{"REGULAR", "INBOX", "OUTBOX", "DRAFTS", "SENT", "TRASH", "SPAM", "ARCHIVE"},
			},
			"attributes": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Optional: IMAP LIST attributes such as \\Trash",
			},
		},
		"required": []string{"account_uuid", "server_id"},
	}
}

func (t *ChangeFolderTool) Execute(params map[string]interface{}) (interface{}, error) {
	acc, store, err := t.messageStore(params)
	if err != nil {
		return nil, err
	}
	serverID, err := stringParam(params, "server_id", true)
	if err != nil {
		return nil, err
	}

	if rawAttrs, ok := params["attributes"].([]interface{}); ok {
		info := &imap.MailboxInfo{Name: serverID}
		for _, attr := range rawAttrs {
			if s, ok := attr.(string); ok {
				info.Attributes = append(info.Attributes, s)
			}
		}
		name, err := stringParam(params, "name", false)
		if err != nil {
			return nil, err
		}
		folderType := storage.RemoteFolderType(info)
		if name == "" {
			name = serverID
			err = store.ChangeFolderFromMailbox(info)
		} else {
			err = store.ChangeFolder(serverID, name, folderType)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to change folder: %w", err)
		}
		return map[string]interface{}{"server_id": serverID, "name": name, "type": folderType}, nil
	}

	name, err := stringParam(params, "name", true)
	if err != nil {
		return nil, err
	}
	typeName, err := stringParam(params, "type", true)
	if err != nil {
		return nil, err
	}
	folderType, ok := folderTypes[typeName]
	if !ok {
		return nil, fmt.Errorf("invalid type: %s", typeName)
	}

	if err := store.ChangeFolder(serverID, name, folderType); err != nil {
		return nil, fmt.Errorf("failed to change folder: %w", err)
	}

	t.logger.WithFields(logrus.Fields{
		"account":   acc.UUID,
		"server_id": serverID,
		"type":      folderType,
	}).Info("Changed folder")
	return map[string]interface{}{"server_id": serverID, "name": name, "type": folderType}, nil
}

// UpdateFolderSettingsTool writes several folder settings at once
type UpdateFolderSettingsTool struct {
	toolBase
}

func (t *UpdateFolderSettingsTool) Name() string {
	return "update_folder_settings"
}

func (t *UpdateFolderSettingsTool) Description() string {
	return "Update top group, unified inbox and class settings of a folder in one write. Omitted settings keep their current value"
}

func (t *UpdateFolderSettingsTool) InputSchema() map[string]interface{} {
	classProperty := map[string]interface{}{"type": "string", "enum": classEnum}
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_uuid":  accountProperty(),
			"folder_id":     folderIDProperty(),
			"top_group":     map[string]interface{}{"type": "boolean"},
			"integrate":     map[string]interface{}{"type": "boolean"},
			"sync_class":    classProperty,
			"display_class": classProperty,
			"notify_class":  classProperty,
			"push_class":    classProperty,
		},
		"required": []string{"account_uuid", "folder_id"},
	}
}

func (t *UpdateFolderSettingsTool) Execute(params map[string]interface{}) (interface{}, error) {
	_, store, err := t.messageStore(params)
	if err != nil {
		return nil, err
	}
	folderID, err := requiredFolderID(params)
	if err != nil {
		return nil, err
	}

	details, err := store.ModifyFolderSettings(folderID, func(folder *types.FolderDetails) error {
		if v, ok := boolParam(params, "top_group"); ok {
			folder.IsInTopGroup = v
		}
		if v, ok := boolParam(params, "integrate"); ok {
			folder.IsIntegrate = v
		}
		classes := map[string]*types.FolderClass{
			"sync_class":    &folder.SyncClass,
			"display_class": &folder.DisplayClass,
			"notify_class":  &folder.NotifyClass,
			"push_class":    &folder.PushClass,
		}
		for key, target := range classes {
			if _, present := params[key]; !present {
				continue
			}
			class, err := folderClassParam(params, key)
			if err != nil {
				return err
			}
			*target = class
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update folder settings: %w", err)
	}
	info, ok := storage.MapFolder(details, toFolderInfo)
	if !ok {
		return nil, fmt.Errorf("folder not found: %d", folderID)
	}
	return info, nil
}

// SetFolderClassTool changes one class of a folder
type SetFolderClassTool struct {
	toolBase
}

func (t *SetFolderClassTool) Name() string {
	return "set_folder_class"
}

func (t *SetFolderClassTool) Description() string {
	return "Set the sync, display, notify or push class of a folder"
}

func (t *SetFolderClassTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_uuid": accountProperty(),
			"folder_id":    folderIDProperty(),
			"purpose": map[string]interface{}{
				"type": "string",
				"enum": []string{"sync", "display", "notify", "push"},
			},
			"class": map[string]interface{}{"type": "string", "enum": classEnum},
		},
		"required": []string{"account_uuid", "folder_id", "purpose", "class"},
	}
}

func (t *SetFolderClassTool) Execute(params map[string]interface{}) (interface{}, error) {
	_, store, err := t.messageStore(params)
	if err != nil {
		return nil, err
	}
	folderID, err := requiredFolderID(params)
	if err != nil {
		return nil, err
	}
	purpose, err := stringParam(params, "purpose", true)
	if err != nil {
		return nil, err
	}
	class, err := folderClassParam(params, "class")
	if err != nil {
		return nil, err
	}

	switch purpose {
	case "sync":
		err = store.SetSyncClass(folderID, class)
	case "display":
		err = store.SetDisplayClass(folderID, class)
	case "notify":
		err = store.SetNotificationClass(folderID, class)
	case "push":
		err = store.SetPushClass(folderID, class)
	default:
		return nil, fmt.Errorf("invalid purpose: %s", purpose)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set %s class: %w", purpose, err)
	}
	return map[string]interface{}{"folder_id": folderID, "purpose": purpose, "class": class}, nil
}

// SetUnifiedInboxTool toggles unified inbox inclusion of a folder
type SetUnifiedInboxTool struct {
	toolBase
}

func (t *SetUnifiedInboxTool) Name() string {
	return "set_unified_inbox"
}

func (t *SetUnifiedInboxTool) Description() string {
	return "Include or exclude a folder from the unified inbox"
}

func (t *SetUnifiedInboxTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_uuid": accountProperty(),
			"folder_id":    folderIDProperty(),
			"include":      map[string]interface{}{"type": "boolean"},
			"top_group": map[string]interface{}{
				"type":        "boolean",
				"description": "Optional: also move the folder in or out of the top group",
			},
		},
		"required": []string{"account_uuid", "folder_id", "include"},
	}
}

func (t *SetUnifiedInboxTool) Execute(params map[string]interface{}) (interface{}, error) {
	_, store, err := t.messageStore(params)
	if err != nil {
		return nil, err
	}
	folderID, err := requiredFolderID(params)
	if err != nil {
		return nil, err
	}
	include, ok := boolParam(params, "include")
	if !ok {
		return nil, fmt.Errorf("include is required")
	}

	topGroup, withTopGroup := boolParam(params, "top_group")
	if !withTopGroup {
		if err := store.SetIncludeInUnifiedInbox(folderID, include); err != nil {
			return nil, fmt.Errorf("failed to set unified inbox: %w", err)
		}
		return map[string]interface{}{"folder_id": folderID, "include": include}, nil
	}

	details, err := store.ModifyFolderSettings(folderID, func(folder *types.FolderDetails) error {
		folder.IsIntegrate = include
		folder.IsInTopGroup = topGroup
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set unified inbox: %w", err)
	}
	if details == nil {
		return nil, fmt.Errorf("folder not found: %d", folderID)
	}
	return map[string]interface{}{"folder_id": folderID, "include": include, "top_group": topGroup}, nil
}
