package tools

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mcp-mailstore/internal/account"
	"github.com/brandon/mcp-mailstore/internal/mailstore"
	"github.com/brandon/mcp-mailstore/pkg/types"
)

// toolBase carries the dependencies shared by all tools
type toolBase struct {
	accounts *account.Manager
	stores   *mailstore.Manager
	logger   *logrus.Logger
}

// messageStore resolves the account_uuid parameter to its store
func (b toolBase) messageStore(params map[string]interface{}) (types.Account, mailstore.MessageStore, error) {
	id, err := stringParam(params, "account_uuid", true)
	if err != nil {
		return types.Account{}, nil, err
	}
	acc, ok := b.accounts.GetAccount(id)
	if !ok {
		return types.Account{}, nil, fmt.Errorf("account not found: %s", id)
	}
	store, err := b.stores.GetMessageStore(acc)
	if err != nil {
		return types.Account{}, nil, fmt.Errorf("failed to open message store: %w", err)
	}
	return acc, store, nil
}

func stringParam(params map[string]interface{}, key string, required bool) (string, error) {
	value, ok := params[key].(string)
	if !ok || value == "" {
		if required {
			return "", fmt.Errorf("%s is required", key)
		}
		return "", nil
	}
	return value, nil
}

func boolParam(params map[string]interface{}, key string) (bool, bool) {
	value, ok := params[key].(bool)
	return value, ok
}

// int64Param accepts whole JSON numbers as well as numeric strings
func int64Param(params map[string]interface{}, key string) (int64, bool, error) {
	switch value := params[key].(type) {
	case nil:
		return 0, false, nil
	case float64:
		// 2^63 is exact as a float64, anything at or above it overflows
		if value != math.Trunc(value) || value < math.MinInt64 || value >= math.MaxInt64 {
			return 0, false, fmt.Errorf("invalid %s: %v is not an integer", key, value)
		}
		return int64(value), true, nil
	case string:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("invalid %s: %w", key, err)
		}
		return id, true, nil
	default:
		return 0, false, fmt.Errorf("invalid %s: %v", key, value)
	}
}

func requiredFolderID(params map[string]interface{}) (int64, error) {
	id, ok, err := int64Param(params, "folder_id")
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("folder_id is required")
	}
	return id, nil
}

func folderClassParam(params map[string]interface{}, key string) (types.FolderClass, error) {
	value, err := stringParam(params, key, true)
	if err != nil {
		return "", err
	}
	class := types.FolderClass(value)
	if !class.Valid() {
		return "", fmt.Errorf("invalid %s: %s", key, value)
	}
	return class, nil
}

var classEnum = []string{
	string(types.FolderClassFirst),
	string(types.FolderClassSecond),
	string(types.FolderClassNone),
	string(types.FolderClassInherited),
}

func accountProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Account UUID",
	}
}

func folderIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Folder ID",
	}
}
