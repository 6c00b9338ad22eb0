package storage

import (
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestDatabase(t *testing.T) *LockableDatabase {
	t.Helper()
	db, err := OpenLockableDatabase(filepath.Join(t.TempDir(), "store.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() }) //nolint:errcheck
	return db
}

// testFolder describes a raw folders row; zero values get defaults
type testFolder struct {
	name         string
	folderType   string
	serverID     string
	localOnly    bool
	topGroup     bool
	integrate    bool
	syncClass    string
	displayClass string
	notifyClass  string
	pushClass    string
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func createFolder(t *testing.T, db *LockableDatabase, f testFolder) int64 {
	t.Helper()
	var serverID interface{}
	if f.serverID != "" {
		serverID = f.serverID
	}

	var id int64
	err := db.Execute(true, func(q Querier) error {
		res, err := q.Exec(`
			INSERT INTO folders (name, type, server_id, local_only, top_group, integrate,
				poll_class, display_class, notify_class, push_class)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			orDefault(f.name, "Folder"),
			orDefault(f.folderType, "regular"),
			serverID,
			boolToInt(f.localOnly),
			boolToInt(f.topGroup),
			boolToInt(f.integrate),
			orDefault(f.syncClass, "INHERITED"),
			orDefault(f.displayClass, "NO_CLASS"),
			orDefault(f.notifyClass, "INHERITED"),
			orDefault(f.pushClass, "INHERITED"),
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	require.NoError(t, err)
	return id
}

type testMessage struct {
	read    bool
	empty   bool
	deleted bool
}

func createMessage(t *testing.T, db *LockableDatabase, folderID int64, m testMessage) int64 {
	t.Helper()
	var id int64
	err := db.Execute(true, func(q Querier) error {
		res, err := q.Exec("INSERT INTO messages (folder_id, read, empty, deleted) VALUES (?, ?, ?, ?)",
			folderID, boolToInt(m.read), boolToInt(m.empty), boolToInt(m.deleted))
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	require.NoError(t, err)
	return id
}

func markMessageRead(t *testing.T, db *LockableDatabase, messageID int64) {
	t.Helper()
	err := db.Execute(true, func(q Querier) error {
		_, err := q.Exec("UPDATE messages SET read = 1 WHERE id = ?", messageID)
		return err
	})
	require.NoError(t, err)
}

// rawFolder is a folders row as persisted
type rawFolder struct {
	id           int64
	name         string
	folderType   string
	serverID     sql.NullString
	localOnly    int
	topGroup     int
	integrate    int
	syncClass    string
	displayClass string
	notifyClass  string
	pushClass    string
}

func readFolders(t *testing.T, db *LockableDatabase) []rawFolder {
	t.Helper()
	var folders []rawFolder
	err := db.Execute(false, func(q Querier) error {
		rows, err := q.Query(`
			SELECT id, name, type, server_id, local_only, top_group, integrate,
				poll_class, display_class, notify_class, push_class
			FROM folders ORDER BY id`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var f rawFolder
			if err := rows.Scan(&f.id, &f.name, &f.folderType, &f.serverID, &f.localOnly, &f.topGroup,
				&f.integrate, &f.syncClass, &f.displayClass, &f.notifyClass, &f.pushClass); err != nil {
				return err
			}
			folders = append(folders, f)
		}
		return rows.Err()
	})
	require.NoError(t, err)
	return folders
}
