package storage

// Schema contains SQL schema definitions for an account's store
const Schema = `
-- Folders table
CREATE TABLE IF NOT EXISTS folders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT 'regular',
    server_id TEXT UNIQUE,
    local_only INTEGER NOT NULL DEFAULT 0,
    top_group INTEGER NOT NULL DEFAULT 0,
    integrate INTEGER NOT NULL DEFAULT 0,
    poll_class TEXT DEFAULT 'INHERITED',
    display_class TEXT DEFAULT 'NO_CLASS',
    notify_class TEXT DEFAULT 'INHERITED',
    push_class TEXT DEFAULT 'INHERITED'
);

-- Messages table (only the columns folder queries rely on)
CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    folder_id INTEGER NOT NULL,
    uid TEXT,
    empty INTEGER NOT NULL DEFAULT 0,
    deleted INTEGER NOT NULL DEFAULT 0,
    read INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (folder_id) REFERENCES folders(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_messages_folder_id ON messages(folder_id);
CREATE INDEX IF NOT EXISTS idx_folders_server_id ON folders(server_id);
`
