package types

// FolderType is the semantic purpose of a folder
type FolderType string

const (
	FolderTypeRegular FolderType = "REGULAR"
	FolderTypeInbox   FolderType = "INBOX"
	FolderTypeOutbox  FolderType = "OUTBOX"
	FolderTypeDrafts  FolderType = "DRAFTS"
	FolderTypeSent    FolderType = "SENT"
	FolderTypeTrash   FolderType = "TRASH"
	FolderTypeSpam    FolderType = "SPAM"
	FolderTypeArchive FolderType = "ARCHIVE"
)

// FolderClass is a user classification controlling one behavior of a folder
// (sync, display, notification or push)
type FolderClass string

const (
	FolderClassFirst     FolderClass = "FIRST_CLASS"
	FolderClassSecond    FolderClass = "SECOND_CLASS"
	FolderClassNone      FolderClass = "NO_CLASS"
	FolderClassInherited FolderClass = "INHERITED"
)

// Valid reports whether c is one of the four known classes
func (c FolderClass) Valid() bool {
	switch c {
	case FolderClassFirst, FolderClassSecond, FolderClassNone, FolderClassInherited:
		return true
	}
	return false
}

// FolderMode selects which folders are shown based on their display class
type FolderMode string

const (
	FolderModeNone                FolderMode = "NONE"
	FolderModeAll                 FolderMode = "ALL"
	FolderModeFirstClass          FolderMode = "FIRST_CLASS"
	FolderModeFirstAndSecondClass FolderMode = "FIRST_AND_SECOND_CLASS"
	FolderModeNotSecondClass      FolderMode = "NOT_SECOND_CLASS"
)

// Folder represents a mail folder of an account's store
type Folder struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Type        FolderType `json:"type"`
	ServerID    string     `json:"server_id,omitempty"`
	IsLocalOnly bool       `json:"local_only"`
}

// FolderDetails is a folder together with its visibility and classification settings
type FolderDetails struct {
	Folder       Folder      `json:"folder"`
	IsInTopGroup bool        `json:"top_group"`
	IsIntegrate  bool        `json:"integrate"`
	SyncClass    FolderClass `json:"sync_class"`
	DisplayClass FolderClass `json:"display_class"`
	NotifyClass  FolderClass `json:"notify_class"`
	PushClass    FolderClass `json:"push_class"`

	// Only set by display folder queries
	MessageCount int `json:"message_count"`
}

// Account identifies a mail account
type Account struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}
