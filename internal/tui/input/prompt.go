// Package input parses prompt input: slash-command matching, completion and
// splitting a submission into a command and its argument.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Usage       string
	Description string
}

// PromptMatchingCommands returns commands that match the current input prefix.
// Input that is not a slash command, or already has an argument, matches nothing.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") || strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(input)
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// ParseCommand splits a submitted prompt into a lower-case command name and
// its trimmed argument. Text without a leading slash has no name.
func ParseCommand(value string) (name, arg string) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "/") {
		return "", value
	}
	name, arg, _ = strings.Cut(value, " ")
	return strings.ToLower(name), strings.TrimSpace(arg)
}
