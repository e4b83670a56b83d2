// Package controller provides output adapters for displaying engine results.
package controller

import (
	m "github.com/sika7/editor4ai-go/internal/model"
)

// UI defines the interface for displaying engine results. Implementations
// can use different output methods (plain text, styled terminal output).
type UI interface {
	DisplayRead(content string, err error) error
	DisplayMatches(matches []m.SearchMatch, err error) error
	DisplayTree(node m.TreeNode, err error) error
	DisplayEdit(result m.EditResult, err error) error
}
