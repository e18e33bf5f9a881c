package services

import (
	"encoding/json"
	"slices"
	"strings"
	"unicode/utf8"
)

// replyKeys are tried in order on the reply object.
var replyKeys = []string{"message", "response", "output", "text", "answer"}

// minReplyRunes is the shortest string accepted when no reply key matches.
const minReplyRunes = 10

// ExtractChatReply pulls the assistant's answer out of a reply of unknown
// shape. It returns "" when nothing usable is found.
func ExtractChatReply(raw json.RawMessage) string {
	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return ""
	}

	if s, ok := root.(string); ok {
		return strings.TrimSpace(s)
	}

	node := root
	if arr, ok := node.([]any); ok && len(arr) > 0 {
		node = arr[0]
	}
	if obj, ok := node.(map[string]any); ok {
		for _, key := range replyKeys {
			if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}

	return firstLongString(root)
}

// firstLongString searches depth-first, visiting object keys in sorted order.
func firstLongString(v any) string {
	switch node := v.(type) {
	case string:
		s := strings.TrimSpace(node)
		if utf8.RuneCountInString(s) >= minReplyRunes {
			return s
		}
	case []any:
		for _, item := range node {
			if s := firstLongString(item); s != "" {
				return s
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if s := firstLongString(node[k]); s != "" {
				return s
			}
		}
	}
	return ""
}
