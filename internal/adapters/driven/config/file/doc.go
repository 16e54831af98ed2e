// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the kb home directory (~/.kb by default).
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - VocabularyStore: YAML preset tag list
//   - PromptStore: user-editable prompt templates
//   - PromptWatcher: reloads prompts when the directory changes
package file
