package tools

import "fmt"

// ListAccountsTool lists configured accounts
type ListAccountsTool struct {
	toolBase
}

func (t *ListAccountsTool) Name() string {
	return "list_accounts"
}

func (t *ListAccountsTool) Description() string {
	return "List configured mail accounts"
}

func (t *ListAccountsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *ListAccountsTool) Execute(params map[string]interface{}) (interface{}, error) {
	return t.accounts.ListAccounts(), nil
}

// RemoveAccountTool removes an account, dropping its cached store
type RemoveAccountTool struct {
	toolBase
}

func (t *RemoveAccountTool) Name() string {
	return "remove_account"
}

func (t *RemoveAccountTool) Description() string {
	return "Remove a mail account from this session"
}

func (t *RemoveAccountTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_uuid": accountProperty(),
		},
		"required": []string{"account_uuid"},
	}
}

func (t *RemoveAccountTool) Execute(params map[string]interface{}) (interface{}, error) {
	id, err := stringParam(params, "account_uuid", true)
	if err != nil {
		return nil, err
	}
	if !t.accounts.RemoveAccount(id) {
		return nil, fmt.Errorf("account not found: %s", id)
	}
	return map[string]interface{}{"removed": id}, nil
}
