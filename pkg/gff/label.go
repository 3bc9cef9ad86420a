package gff

import (
	"bytes"
	"fmt"
	"strings"
)

// labelTable interns labels in first-seen order. It is owned by a single
// encode call.
type labelTable struct {
	index  map[string]uint32
	labels []string
}

func newLabelTable() *labelTable {
	return &labelTable{index: make(map[string]uint32)}
}

// intern returns the index of label, appending it on first use.
func (t *labelTable) intern(label string) (uint32, error) {
	if i, ok := t.index[label]; ok {
		return i, nil
	}
	if err := checkLabel(label); err != nil {
		return 0, err
	}
	i := uint32(len(t.labels))
	t.labels = append(t.labels, label)
	t.index[label] = i
	return i, nil
}

func (t *labelTable) len() int { return len(t.labels) }

// bytes renders the label array: each label null-padded to 16 bytes.
func (t *labelTable) bytes() []byte {
	out := make([]byte, len(t.labels)*labelSize)
	for i, l := range t.labels {
		copy(out[i*labelSize:], l)
	}
	return out
}

// checkLabel rejects labels that cannot survive the label array: longer than
// a slot, or holding a NUL that decodeLabel would treat as padding.
func checkLabel(label string) error {
	if len(label) > MaxLabelLen {
		return fmt.Errorf("%w: %q", ErrLabelTooLong, label)
	}
	if strings.IndexByte(label, 0) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	return nil
}

// decodeLabel trims a 16-byte slot at its first NUL.
func decodeLabel(slot []byte) string {
	if i := bytes.IndexByte(slot, 0); i >= 0 {
		slot = slot[:i]
	}
	return string(slot)
}
