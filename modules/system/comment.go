package system

import (
	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/internal/signature"
)

// Comment is a canvas annotation. It computes nothing; the text sits in
// config so documents and undo history carry it.
type Comment struct {
	ops.Base
}

// NewComment returns a comment operator.
func NewComment() *Comment { return &Comment{} }

func (*Comment) Path() ops.OpPath { return CommentPath }

func (*Comment) Setup(_ *ops.ExecContext, sig *signature.Registry) error {
	signature.AddConfig[string](sig, "text").
		Meta(signature.StringMeta{Multiline: true}).
		OnNodeBody(true)
	return nil
}
