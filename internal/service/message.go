package service

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_]+)\}`)

// RenderMessage substitutes {placeholder} tokens into an email template.
// A token with no value in data is a formatting error; the caller treats it
// as a per-recipient failure.
func RenderMessage(template string, data map[string]string) (string, error) {
	var unknown []string
	result := placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		key := strings.Trim(m, "{}")
		v, ok := data[key]
		if !ok {
			unknown = append(unknown, key)
			return m
		}
		return v
	})
	if len(unknown) > 0 {
		return "", fmt.Errorf("unknown placeholders in message template: %s", strings.Join(unknown, ", "))
	}
	return result, nil
}
