package install

import (
	"fmt"

	"github.com/joho/godotenv"
)

// apiKeyVars are the credentials the application reads from its .env.
// Either the plain OpenAI key or the Azure pair will do.
var apiKeyVars = []string{"OPENAI_API_KEY", "AZURE_OPENAI_API_KEY"}

// inspectSecrets parses a staged .env and returns advisory warnings.
// Secrets problems are never fatal: the file can be filled in after
// install, the app just won't transcribe until it is.
func inspectSecrets(path string) []string {
	env, err := godotenv.Read(path)
	if err != nil {
		return []string{fmt.Sprintf("could not parse %s: %v", path, err)}
	}

	for _, key := range apiKeyVars {
		if env[key] != "" {
			return nil
		}
	}
	return []string{"no OPENAI_API_KEY or AZURE_OPENAI_API_KEY set in .env; add one before first use"}
}
