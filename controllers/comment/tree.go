package commentController

import "edumart/models"

// CommentNode is a comment with its direct replies attached.
type CommentNode struct {
	models.Comment
	UserName string         `json:"user_name"`
	Replies  []*CommentNode `json:"replies"`
}

// BuildCommentTree assembles flat rows into a reply tree. Comments whose
// parent is missing (deleted, or filtered out) are promoted to roots so
// the thread never silently loses entries.
func BuildCommentTree(comments []models.Comment, userNames map[uint]string) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &CommentNode{
			Comment:  comments[i],
			UserName: userNames[comments[i].UserID],
			Replies:  []*CommentNode{},
		}
	}

	roots := make([]*CommentNode, 0, len(comments))
	for i := range comments {
		node := nodes[comments[i].ID]
		if comments[i].ParentID != nil {
			if parent, found := nodes[*comments[i].ParentID]; found {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}
