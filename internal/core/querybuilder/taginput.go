package querybuilder

import "strings"

// Tag delimiter keys. Enter commits the pending tag and must be swallowed so
// the surrounding form's submit-on-Enter default never fires mid-composition.
const (
	KeyEnter = "Enter"
	KeyComma = ","
)

// TagInput edits an ordered keyword list. Duplicates are allowed and order is
// preserved for display and serialization.
type TagInput struct {
	tags    []string
	pending strings.Builder
}

// NewTagInput starts from an existing keyword list (the form's defaults).
func NewTagInput(tags []string) *TagInput {
	t := &TagInput{}
	t.tags = append(t.tags, tags...)
	return t
}

// Keystroke feeds one key into the input. It returns true when the key was
// consumed by the tag editor and must not propagate to the form.
func (t *TagInput) Keystroke(key string) bool {
	switch key {
	case KeyEnter, KeyComma:
		t.commit()
		return true
	default:
		t.pending.WriteString(key)
		return false
	}
}

// commit turns the pending buffer into a tag. Whitespace-only buffers are
// dropped rather than added as empty tags.
func (t *TagInput) commit() {
	tag := strings.TrimSpace(t.pending.String())
	t.pending.Reset()
	if tag == "" {
		return
	}
	t.tags = append(t.tags, tag)
}

// Remove deletes the tag at index i, keeping the rest in order.
func (t *TagInput) Remove(i int) {
	if i < 0 || i >= len(t.tags) {
		return
	}
	t.tags = append(t.tags[:i], t.tags[i+1:]...)
}

// Tags returns a copy of the current tag list.
func (t *TagInput) Tags() []string {
	out := make([]string, len(t.tags))
	copy(out, t.tags)
	return out
}
