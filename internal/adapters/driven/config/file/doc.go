// Package file provides file-based implementations of the ConfigStore
// and PromptStore ports. Configuration lives in a TOML file and prompts
// in user-editable text files under the SARA config directory.
package file
