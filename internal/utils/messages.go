package utils

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

//go:embed messages/messages.yaml
var messagesYAML []byte

// Messages holds the reply texts of the bot.
type Messages struct {
	Help            string `yaml:"help"`
	UnknownCommand  string `yaml:"unknown_command"`
	InvalidLanguage string `yaml:"invalid_language"`
	LanguageSaved   string `yaml:"language_saved"`
	Settings        string `yaml:"settings"`
	SettingsEmpty   string `yaml:"settings_empty"`

	LanguageUnavailable string `yaml:"language_unavailable"`
}

func LoadMessages() (*Messages, error) {
	var messages Messages
	if err := yaml.Unmarshal(messagesYAML, &messages); err != nil {
		return nil, fmt.Errorf("error parsing messages yaml: %w", err)
	}
	return &messages, nil
}

// WithLanguage fills the {{.Language}} placeholder of a template.
func WithLanguage(template, language string) string {
	return strings.ReplaceAll(template, "{{.Language}}", language)
}
