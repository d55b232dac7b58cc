// Package todo implements markdown todo lists kept one file per user, year
// and project.
//
// Each list is a sequence of lines such as
//
//	$ cat ~/.local/share/mdtodo/ajm/2025/main.md
//	- [ ] 09:15:00 02-nov-2025 Call Bob #w:mon:fri
//	- [x] 01-nov-2025 Wash car 10:00:00 03-nov-2025
//	- [ ] 01-nov-2025 [[Groceries]]
//
// The record engine is pure: Parse turns text into records, Reconcile merges a
// client's edited view back into the authoritative records, NextOccurrence
// derives the successor of a completed recurring todo, Sort applies the
// canonical ordering and Serialize writes records back out.
//
// Store is the storage collaborator. It maps (user, year, project) keys to
// files and serialises every read-modify-write per key.
package todo

import "strings"

// Link is a wiki-style [[...]] reference to another project list.
type Link struct {
	// Text is the text between the brackets, as written.
	Text string `json:"text"`

	// TargetKey is the normalised project name the link points at.
	TargetKey string `json:"target_key"`
}

// NewLink builds a link for the given bracket text.
func NewLink(text string) *Link {
	return &Link{Text: text, TargetKey: LinkTargetKey(text)}
}

// FindLink returns the first [[...]] reference in text, or nil.
func FindLink(text string) *Link {
	m := linkRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return NewLink(m[1])
}

// LinkTargetKey converts link text to a project name: lowercase, spaces to
// underscores.
func LinkTargetKey(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}

// Markup returns the bracketed form of the link.
func (l Link) Markup() string {
	return "[[" + l.Text + "]]"
}

func cloneLink(l *Link) *Link {
	if l == nil {
		return nil
	}
	out := *l
	return &out
}

// DefaultProject is the project used when none is named.
const DefaultProject = "main"
