// Package sentinel converts list fields to and from the form persisted in
// the document store. The Realtime Database drops empty arrays, so an empty
// list is written as the single placeholder value EmptyArray and turned back
// into an empty list on read.
package sentinel

import (
	"bytes"
	"encoding/json"
)

const EmptyArray = "emptyArray"

// ForStorage replaces an empty list with the placeholder list.
func ForStorage(list []string) []string {
	if len(list) == 0 {
		return []string{EmptyArray}
	}
	return list
}

// ForRead replaces the placeholder list with an empty list.
func ForRead(list []string) []string {
	if IsPlaceholder(list) {
		return []string{}
	}
	if list == nil {
		return []string{}
	}
	return list
}

func IsPlaceholder(list []string) bool {
	return len(list) == 1 && list[0] == EmptyArray
}

// List is a typed list that marshals to the placeholder when empty and
// accepts the placeholder (or null) when unmarshalled.
type List[T any] []T

func (l List[T]) MarshalJSON() ([]byte, error) {
	if len(l) == 0 {
		return json.Marshal(ForStorage(nil))
	}
	return json.Marshal([]T(l))
}

func (l *List[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = List[T]{}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	if len(raw) == 1 {
		var s string
		if json.Unmarshal(raw[0], &s) == nil && IsPlaceholder([]string{s}) {
			*l = List[T]{}
			return nil
		}
	}

	out := make(List[T], 0, len(raw))
	for _, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return err
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// Slice returns the list as a plain non-nil slice.
func (l List[T]) Slice() []T {
	if l == nil {
		return []T{}
	}
	return []T(l)
}
