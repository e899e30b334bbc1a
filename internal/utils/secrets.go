package utils

import (
	"fmt"
	"os"
	"strings"
)

// ReadSecret reads a secret from the Docker secrets directory, falling back
// to the given environment variable for local development.
func ReadSecret(secretName, envKey string) (string, error) {
	filePath := fmt.Sprintf("/run/secrets/%s", secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err == nil {
		secret := strings.TrimSpace(string(secretBytes))
		if secret == "" {
			return "", fmt.Errorf("secret file %s is empty", filePath)
		}
		return secret, nil
	}

	if value := strings.TrimSpace(os.Getenv(envKey)); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("secret %s not found: no file at %s and %s is not set", secretName, filePath, envKey)
}
