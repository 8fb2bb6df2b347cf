package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2"
)

const configTemplate = `# Optional log level, default "info"
loglevel = "info"

[catbox]
# Optional. Account userhash, found at https://catbox.moe/user/manage.php
# Without it only anonymous uploads and anonymous albums are possible, and
# anonymous albums can never be edited or deleted.
userhash = "{{CATBOX_USERHASH}}"

# Optional API endpoint, default "https://catbox.moe/user/api.php"
endpoint = "https://catbox.moe/user/api.php"

# Optional request timeout in secs, default 0 (no timeout).
timeout = 0

[relay]
# Optional bind address for 'gocatbox serve', default "127.0.0.1"
bind_address = "127.0.0.1"

# Optional TCP port, default 8787
port = 8787

# Optional basic auth for the relay. Set both or neither.
username = ""
password = ""
`

// Prompter asks the user for a userhash.
type Prompter func() (string, error)

// ValidateUserHash accepts an empty hash (anonymous) or an alphanumeric one.
func ValidateUserHash(hash string) error {
	for _, r := range hash {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return errors.New("userhash must only contain letters and digits")
		}
	}
	return nil
}

// PromptUserHash asks for the userhash on the terminal.
func PromptUserHash() (string, error) {
	var hash string
	prompt := &survey.Password{
		Message: "Catbox userhash (leave empty for anonymous use):",
		Help:    "Shown on https://catbox.moe/user/manage.php after logging in",
	}
	validator := func(ans interface{}) error {
		s, _ := ans.(string)
		return ValidateUserHash(strings.TrimSpace(s))
	}
	if err := survey.AskOne(prompt, &hash, survey.WithValidator(validator)); err != nil {
		return "", err
	}
	return strings.TrimSpace(hash), nil
}

// RenderConfig fills the config template with userHash.
func RenderConfig(userHash string) (string, error) {
	if err := ValidateUserHash(userHash); err != nil {
		return "", err
	}
	return strings.Replace(configTemplate, "{{CATBOX_USERHASH}}", userHash, 1), nil
}

// GenerateConfig writes a configuration file using the userhash returned by prompt
func GenerateConfig(configPath string, prompt Prompter) error {
	fmt.Printf("Generating config %s\n", configPath)

	userHash, err := prompt()
	if err != nil {
		return fmt.Errorf("failed to read userhash: %w", err)
	}

	config, err := RenderConfig(userHash)
	if err != nil {
		return err
	}

	// Check if config file already exists and back it up
	if _, err := os.Stat(configPath); err == nil {
		backupPath := configPath + ".bak"
		fmt.Printf("Backing up config %s\n", configPath)
		if err := os.Rename(configPath, backupPath); err != nil {
			return fmt.Errorf("failed to backup config: %w", err)
		}
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The userhash grants delete rights, keep the file private.
	fmt.Printf("Writing %s\n", configPath)
	if err := os.WriteFile(configPath, []byte(config), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
