package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandon/mcp-mailstore/pkg/types"
)

func TestGetFolder(t *testing.T) {
	db := newTestDatabase(t)
	ops := NewRetrieveFolderOperations(db)
	folderID := createFolder(t, db, testFolder{
		name:         "Trash",
		folderType:   "trash",
		serverID:     "folder1",
		topGroup:     true,
		integrate:    true,
		syncClass:    "FIRST_CLASS",
		displayClass: "SECOND_CLASS",
		notifyClass:  "NO_CLASS",
		pushClass:    "INHERITED",
	})

	folder, err := ops.GetFolder(folderID)
	require.NoError(t, err)
	require.NotNil(t, folder)

	assert.Equal(t, types.FolderDetails{
		Folder: types.Folder{
			ID:       folderID,
			Name:     "Trash",
			Type:     types.FolderTypeTrash,
			ServerID: "folder1",
		},
		IsInTopGroup: true,
		IsIntegrate:  true,
		SyncClass:    types.FolderClassFirst,
		DisplayClass: types.FolderClassSecond,
		NotifyClass:  types.FolderClassNone,
		PushClass:    types.FolderClassInherited,
	}, *folder)
}

func TestGetFolder_NotFound(t *testing.T) {
	db := newTestDatabase(t)
	ops := NewRetrieveFolderOperations(db)

	folder, err := ops.GetFolder(42)
	require.NoError(t, err)
	assert.Nil(t, folder)
}

func TestGetFolder_NullClassIsInherited(t *testing.T) {
	db := newTestDatabase(t)
	ops := NewRetrieveFolderOperations(db)

	var folderID int64
	err := db.Execute(true, func(q Querier) error {
		res, err := q.Exec(`INSERT INTO folders (name, server_id, poll_class, display_class, notify_class, push_class)
			VALUES ('Legacy', 'legacy', NULL, NULL, NULL, NULL)`)
		if err != nil {
			return err
		}
		folderID, err = res.LastInsertId()
		return err
	})
	require.NoError(t, err)

	folder, err := ops.GetFolder(folderID)
	require.NoError(t, err)
	require.NotNil(t, folder)
	assert.Equal(t, types.FolderClassInherited, folder.SyncClass)
	assert.Equal(t, types.FolderClassInherited, folder.DisplayClass)
	assert.Equal(t, types.FolderClassInherited, folder.NotifyClass)
	assert.Equal(t, types.FolderClassInherited, folder.PushClass)
}

func TestGetFolder_InvalidClass(t *testing.T) {
	db := newTestDatabase(t)
	ops := NewRetrieveFolderOperations(db)
	folderID := createFolder(t, db, testFolder{serverID: "folder1", pushClass: "SOMETIMES"})

	_, err := ops.GetFolder(folderID)
	assert.ErrorIs(t, err, ErrInvalidFolderClass)
}

func TestGetFolders(t *testing.T) {
	db := newTestDatabase(t)
	ops := NewRetrieveFolderOperations(db)
	inboxID := createFolder(t, db, testFolder{name: "Inbox", folderType: "inbox", serverID: "INBOX"})
	outboxID := createFolder(t, db, testFolder{name: "Outbox", folderType: "outbox", localOnly: true})
	archiveID := createFolder(t, db, testFolder{name: "Archive", folderType: "archive", serverID: "Archive"})

	t.Run("all folders ordered by id", func(t *testing.T) {
		folders, err := ops.GetFolders(false)
		require.NoError(t, err)

		ids := MapFolders(folders, func(f types.FolderDetails) int64 { return f.Folder.ID })
		assert.Equal(t, []int64{inboxID, outboxID, archiveID}, ids)

		assert.Equal(t, types.FolderTypeOutbox, folders[1].Folder.Type)
		assert.True(t, folders[1].Folder.IsLocalOnly)
		assert.Empty(t, folders[1].Folder.ServerID)
	})

	t.Run("exclude local-only folders", func(t *testing.T) {
		folders, err := ops.GetFolders(true)
		require.NoError(t, err)

		names := MapFolders(folders, func(f types.FolderDetails) string { return f.Folder.Name })
		assert.Equal(t, []string{"Inbox", "Archive"}, names)
		for _, folder := range folders {
			assert.False(t, folder.Folder.IsLocalOnly)
		}
	})
}

func TestGetFolders_Empty(t *testing.T) {
	db := newTestDatabase(t)
	ops := NewRetrieveFolderOperations(db)

	folders, err := ops.GetFolders(false)
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestGetDisplayFolders_Modes(t *testing.T) {
	db := newTestDatabase(t)
	ops := NewRetrieveFolderOperations(db)
	first := createFolder(t, db, testFolder{serverID: "first", displayClass: "FIRST_CLASS"})
	second := createFolder(t, db, testFolder{serverID: "second", displayClass: "SECOND_CLASS"})
	none := createFolder(t, db, testFolder{serverID: "none", displayClass: "NO_CLASS"})
	inherited := createFolder(t, db, testFolder{serverID: "inherited", displayClass: "INHERITED"})

	tests := []struct {
		mode     types.FolderMode
		expected []int64
	}{
		{types.FolderModeAll, []int64{first, second, none, inherited}},
		{types.FolderModeFirstClass, []int64{first}},
		{types.FolderModeFirstAndSecondClass, []int64{first, second}},
		{types.FolderModeNotSecondClass, []int64{first, none, inherited}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			folders, err := ops.GetDisplayFolders(tt.mode, nil)
			require.NoError(t, err)
			ids := MapFolders(folders, func(f types.FolderDetails) int64 { return f.Folder.ID })
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestGetDisplayFolders_NoneModePanics(t *testing.T) {
	db := newTestDatabase(t)
	ops := NewRetrieveFolderOperations(db)

	assert.PanicsWithValue(t, "invalid folder display mode: NONE", func() {
		_, _ = ops.GetDisplayFolders(types.FolderModeNone, nil)
	})

	// The lock was never taken
	_, err := ops.GetFolders(false)
	assert.NoError(t, err)
}

func TestGetDisplayFolders_UnreadCount(t *testing.T) {
	db := newTestDatabase(t)
	ops := NewRetrieveFolderOperations(db)
	folderID := createFolder(t, db, testFolder{serverID: "folder1"})
	messageID := createMessage(t, db, folderID, testMessage{})

	folders, err := ops.GetDisplayFolders(types.FolderModeAll, nil)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, 1, folders[0].MessageCount)

	markMessageRead(t, db, messageID)

	folders, err = ops.GetDisplayFolders(types.FolderModeAll, nil)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, 0, folders[0].MessageCount)
}

func TestGetDisplayFolders_CountsOnlyVisibleMessages(t *testing.T) {
	db := newTestDatabase(t)
	ops := NewRetrieveFolderOperations(db)
	inboxID := createFolder(t, db, testFolder{serverID: "INBOX"})
	outboxID := createFolder(t, db, testFolder{folderType: "outbox", localOnly: true})

	createMessage(t, db, inboxID, testMessage{})
	createMessage(t, db, inboxID, testMessage{read: true})
	createMessage(t, db, inboxID, testMessage{empty: true})
	createMessage(t, db, inboxID, testMessage{deleted: true})

	createMessage(t, db, outboxID, testMessage{})
	createMessage(t, db, outboxID, testMessage{read: true})
	createMessage(t, db, outboxID, testMessage{read: true, deleted: true})

	t.Run("with outbox", func(t *testing.T) {
		folders, err := ops.GetDisplayFolders(types.FolderModeAll, &outboxID)
		require.NoError(t, err)
		counts := MapFolders(folders, func(f types.FolderDetails) int { return f.MessageCount })
		assert.Equal(t, []int{1, 2}, counts)
	})

	t.Run("without outbox", func(t *testing.T) {
		folders, err := ops.GetDisplayFolders(types.FolderModeAll, nil)
		require.NoError(t, err)
		counts := MapFolders(folders, func(f types.FolderDetails) int { return f.MessageCount })
		assert.Equal(t, []int{1, 1}, counts)
	})
}

func TestGetFolderID(t *testing.T) {
	db := newTestDatabase(t)
	ops := NewRetrieveFolderOperations(db)
	createFolder(t, db, testFolder{serverID: "folder1"})
	folderID := createFolder(t, db, testFolder{serverID: "folder2"})

	id, found, err := ops.GetFolderID("folder2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, folderID, id)

	_, found, err = ops.GetFolderID("missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetMessageCounts(t *testing.T) {
	db := newTestDatabase(t)
	ops := NewRetrieveFolderOperations(db)
	folderID := createFolder(t, db, testFolder{serverID: "folder1"})
	createMessage(t, db, folderID, testMessage{})
	createMessage(t, db, folderID, testMessage{read: true})
	createMessage(t, db, folderID, testMessage{deleted: true})

	total, err := ops.GetMessageCount(folderID)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	unread, err := ops.GetUnreadMessageCount(folderID)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestMapFolder(t *testing.T) {
	name, ok := MapFolder(&types.FolderDetails{Folder: types.Folder{Name: "Inbox"}},
		func(f types.FolderDetails) string { return f.Folder.Name })
	assert.True(t, ok)
	assert.Equal(t, "Inbox", name)

	_, ok = MapFolder(nil, func(f types.FolderDetails) string { return f.Folder.Name })
	assert.False(t, ok)
}
