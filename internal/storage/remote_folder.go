package storage

import (
	"strings"

	"github.com/emersion/go-imap"

	"github.com/brandon/mcp-mailstore/pkg/types"
)

var specialUseTypes = map[string]types.FolderType{
	imap.SentAttr:    types.FolderTypeSent,
	imap.DraftsAttr:  types.FolderTypeDrafts,
	imap.TrashAttr:   types.FolderTypeTrash,
	imap.JunkAttr:    types.FolderTypeSpam,
	imap.ArchiveAttr: types.FolderTypeArchive,
}

// RemoteFolderType derives a folder type from an IMAP LIST entry using the
// INBOX name and RFC 6154 special-use attributes
func RemoteFolderType(info *imap.MailboxInfo) types.FolderType {
	if strings.EqualFold(info.Name, imap.InboxName) {
		return types.FolderTypeInbox
	}
	for _, attr := range info.Attributes {
		for specialUse, folderType := range specialUseTypes {
			if strings.EqualFold(attr, specialUse) {
				return folderType
			}
		}
	}
	return types.FolderTypeRegular
}
