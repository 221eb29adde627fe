// Package authz holds the visibility and permission rules as pure predicates.
// Every mutating entry point checks here before touching the store. All
// functions are total and default to deny when permission data is missing.
package authz

import "github.com/flowfam/family-api/internal/models"

// CanViewNote reports whether the viewer may see a note: the creator always
// can, everyone else only when explicitly shared with.
func CanViewNote(viewerID uint64, note models.FamilyNote) bool {
	if viewerID == note.CreatorID {
		return true
	}
	for _, share := range note.Shares {
		if share.MemberID == viewerID {
			return true
		}
	}
	return false
}

func documentPermission(viewerID uint64, doc models.Document, flag func(models.DocumentPermission) bool) bool {
	if viewerID == doc.UploadedBy {
		return true
	}
	for _, perm := range doc.Permissions {
		if perm.MemberID == viewerID {
			return flag(perm)
		}
	}
	return false
}

// CanViewDocument reports whether the viewer may see a document. The uploader
// always has full rights regardless of explicit permission rows.
func CanViewDocument(viewerID uint64, doc models.Document) bool {
	return documentPermission(viewerID, doc, func(p models.DocumentPermission) bool { return p.CanView })
}

func CanDownloadDocument(viewerID uint64, doc models.Document) bool {
	return documentPermission(viewerID, doc, func(p models.DocumentPermission) bool { return p.CanDownload })
}

func CanEditDocument(viewerID uint64, doc models.Document) bool {
	return documentPermission(viewerID, doc, func(p models.DocumentPermission) bool { return p.CanEdit })
}

func CanDeleteDocument(viewerID uint64, doc models.Document) bool {
	return documentPermission(viewerID, doc, func(p models.DocumentPermission) bool { return p.CanDelete })
}

// CanManageFamily reports whether the member may mutate the family directory
// (add, edit or delete members, upload documents). Parents only.
func CanManageFamily(member models.FamilyMember) bool {
	return member.Role == models.RoleParent
}

// CanChangeRole reports whether the actor may change a member's role. Role
// changes are self-service only: a member may toggle their own role, never
// someone else's.
func CanChangeRole(actorID, targetID uint64) bool {
	return actorID == targetID
}
