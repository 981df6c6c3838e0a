package commentController

import (
	"testing"

	"edumart/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func uintPtr(v uint) *uint { return &v }

func comment(id uint, parentID *uint, text string) models.Comment {
	return models.Comment{Model: gorm.Model{ID: id}, ContentID: 1, UserID: 1, ParentID: parentID, Text: text}
}

func TestBuildCommentTreeNesting(t *testing.T) {
	comments := []models.Comment{
		comment(1, nil, "root"),
		comment(2, uintPtr(1), "reply"),
		comment(3, uintPtr(2), "reply to reply"),
		comment(4, nil, "second root"),
	}

	tree := BuildCommentTree(comments, map[uint]string{1: "Alice"})

	assert.Len(t, tree, 2)
	assert.Equal(t, "root", tree[0].Text)
	assert.Equal(t, "Alice", tree[0].UserName)
	assert.Len(t, tree[0].Replies, 1)
	assert.Equal(t, "reply", tree[0].Replies[0].Text)
	assert.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, "second root", tree[1].Text)
	assert.Empty(t, tree[1].Replies)
}

func TestBuildCommentTreeOrphanPromotedToRoot(t *testing.T) {
	// Parent 99 is not in the result set (deleted); its reply must not vanish
	comments := []models.Comment{
		comment(1, nil, "root"),
		comment(2, uintPtr(99), "orphan"),
	}

	tree := BuildCommentTree(comments, nil)

	assert.Len(t, tree, 2)
	assert.Equal(t, "orphan", tree[1].Text)
}

func TestBuildCommentTreeEmpty(t *testing.T) {
	tree := BuildCommentTree(nil, nil)
	assert.Empty(t, tree)
}
